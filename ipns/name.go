package ipns

import (
	"bytes"
	"fmt"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
)

// Name is the multihash of a public key: a stable identifier for an
// IPNS record that does not itself require the publisher to be
// online. When the multihash uses the identity hash function (the
// common case for Ed25519 keys), the public key is recoverable from
// the Name alone.
type Name struct {
	mh []byte // the raw multihash bytes
}

// NameFromBytes treats b as a raw public-key protobuf and computes its
// identity multihash, matching Name.FromBytes in the spec.
func NameFromBytes(pubKeyProto []byte) (Name, error) {
	mh, err := multihash.Sum(pubKeyProto, multihash.IDENTITY, len(pubKeyProto))
	if err != nil {
		return Name{}, fmt.Errorf("%w: identity multihash: %v", ErrInvalidName, err)
	}
	return Name{mh: []byte(mh)}, nil
}

// NameFromPublicKey derives the Name for a public key directly.
func NameFromPublicKey(pub *PublicKey) (Name, error) {
	return NameFromBytes(pub.Marshal())
}

// ParseName multibase-decodes s (expecting the "k" base36-lowercase
// prefix) and verifies the result is a well-formed multihash.
func ParseName(s string) (Name, error) {
	_, data, err := multibase.Decode(s)
	if err != nil {
		return Name{}, fmt.Errorf("%w: multibase decode %q: %v", ErrInvalidName, s, err)
	}
	if _, err := multihash.Decode(data); err != nil {
		return Name{}, fmt.Errorf("%w: multihash decode %q: %v", ErrInvalidName, s, err)
	}
	return Name{mh: data}, nil
}

// String renders the canonical printable form: base36-lowercase
// multibase of the multihash, beginning with "k" (and "k51..." for
// the typical Ed25519 identity-hashed case).
func (n Name) String() string {
	s, err := multibase.Encode(multibase.Base36, n.mh)
	if err != nil {
		// Base36 is always a valid multibase encoding target; this
		// can only fail if n.mh is empty, i.e. a zero-value Name.
		return ""
	}
	return s
}

// Bytes returns the raw multihash bytes backing the Name.
func (n Name) Bytes() []byte {
	return append([]byte(nil), n.mh...)
}

// Equal reports byte equality of the underlying multihash.
func (n Name) Equal(o Name) bool {
	return bytes.Equal(n.mh, o.mh)
}

// IsZero reports whether n is the zero-value Name.
func (n Name) IsZero() bool {
	return len(n.mh) == 0
}

// PublicKey recovers the embedded public key from an identity-hashed
// Name. It fails with ErrKeyNotEmbedded if the Name's hash function is
// not identity.
func (n Name) PublicKey() (*PublicKey, error) {
	dh, err := multihash.Decode(n.mh)
	if err != nil {
		return nil, fmt.Errorf("%w: multihash decode: %v", ErrInvalidName, err)
	}
	if dh.Code != multihash.IDENTITY {
		return nil, fmt.Errorf("%w: name uses hash function %d, not identity", ErrKeyNotEmbedded, dh.Code)
	}
	return ParsePublicKeyProto(dh.Digest)
}

// WritableName is a Name together with the keypair that may publish
// updates to it.
type WritableName struct {
	kp *Keypair
}

// NewWritableName generates a fresh Ed25519 keypair and wraps it as a
// WritableName.
func NewWritableName() (*WritableName, error) {
	kp, err := GenerateEd25519()
	if err != nil {
		return nil, err
	}
	return &WritableName{kp: kp}, nil
}

// DecodeWritableName parses a libp2p keypair protobuf (the on-disk key
// file format) into a WritableName.
func DecodeWritableName(b []byte) (*WritableName, error) {
	kp, err := ParsePrivateKeyProto(b)
	if err != nil {
		return nil, err
	}
	return &WritableName{kp: kp}, nil
}

// Encode serializes the keypair back to the libp2p protobuf form
// suitable for writing to a key file.
func (w *WritableName) Encode() []byte {
	return w.kp.MarshalPrivateKey()
}

// Keypair returns the underlying keypair.
func (w *WritableName) Keypair() *Keypair {
	return w.kp
}

// ToName derives the Name this WritableName may publish to.
func (w *WritableName) ToName() (Name, error) {
	return NameFromPublicKey(w.kp.Public())
}
