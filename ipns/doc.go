// Package ipns implements the IPNS (InterPlanetary Name System) naming
// layer: Ed25519 keypairs and their multihash-derived names, the
// Revision model a name owner mutates over time, the CBOR signature
// payload and protobuf wire envelope that carry a revision, and the
// validator that checks a record's authenticity against a public key.
//
// The codec and validator in this package are pure and stateless: they
// perform no I/O and hold no shared state, so the same Entry may be
// validated concurrently from multiple goroutines without coordination.
// Transport (HTTP publish/resolve) lives in the sibling ipnsclient
// package.
package ipns
