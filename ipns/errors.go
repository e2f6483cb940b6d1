package ipns

import (
	"errors"

	"github.com/primal-host/ipnsgo/ipns/ipnspb"
)

// Sentinel errors for the ipns package. Most are wrapped with
// fmt.Errorf("%w: ...", ...) at the point they are raised so
// errors.Is still matches while the message carries the operation
// that triggered it; ErrInvalidV1 and ErrInvalidV2Signature are
// returned unwrapped.
var (
	// ErrInvalidName is returned when a name's multibase/multihash
	// encoding is malformed or uses an unsupported hash function.
	ErrInvalidName = errors.New("ipns: invalid name")

	// ErrKeyNotEmbedded is returned by Name.PublicKey when the name's
	// multihash is not an identity hash, so the public key cannot be
	// recovered from the name alone.
	ErrKeyNotEmbedded = errors.New("ipns: public key not embedded in name")

	// ErrInvalidKey is returned when a keypair protobuf fails to parse
	// or names an unsupported key type.
	ErrInvalidKey = errors.New("ipns: invalid keypair encoding")

	// ErrCbor is returned on CBOR encode/decode failure of the
	// signature payload.
	ErrCbor = errors.New("ipns: cbor codec error")

	// ErrDecode is returned on protobuf decode failure of the wire
	// envelope. It is the same value as ipnspb.ErrDecode, which
	// ipnspb.Unmarshal wraps.
	ErrDecode = ipnspb.ErrDecode

	// ErrInvalidV1 is returned when v1 signature verification fails.
	ErrInvalidV1 = errors.New("ipns: invalid v1 signature")

	// ErrInvalidV2Signature is returned when v2 signature verification
	// fails.
	ErrInvalidV2Signature = errors.New("ipns: invalid v2 signature")

	// ErrInvalidV2Data is returned when the CBOR payload disagrees
	// with the top-level protobuf fields of a hybrid record, or when
	// the CBOR payload itself cannot be parsed.
	ErrInvalidV2Data = errors.New("ipns: v2 data inconsistent with entry")

	// ErrSigningFailed is returned when the underlying signer rejects
	// a message.
	ErrSigningFailed = errors.New("ipns: signing failed")
)
