package ipns

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
)

// PublicKey wraps an Ed25519 public key together with the libp2p key
// type tag, so it can be marshaled back to the same protobuf form a
// Name's identity multihash embeds.
type PublicKey struct {
	Type KeyType
	Raw  ed25519.PublicKey
}

// Marshal encodes the public key as a libp2p crypto.pb PublicKey
// message: the same wire layout DecodeWritableName expects for
// private keys, minus the private material.
func (p *PublicKey) Marshal() []byte {
	return marshalKeyProto(p.Type, p.Raw)
}

// ParsePublicKeyProto decodes a libp2p crypto.pb PublicKey message.
func ParsePublicKeyProto(b []byte) (*PublicKey, error) {
	typ, data, err := unmarshalKeyProto(b)
	if err != nil {
		return nil, err
	}
	if typ != KeyTypeEd25519 {
		return nil, fmt.Errorf("%w: unsupported key type %d", ErrInvalidKey, typ)
	}
	if len(data) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: ed25519 public key must be %d bytes, got %d", ErrInvalidKey, ed25519.PublicKeySize, len(data))
	}
	return &PublicKey{Type: typ, Raw: ed25519.PublicKey(data)}, nil
}

// Verify reports whether sig is a valid Ed25519 signature of msg under
// this public key.
func (p *PublicKey) Verify(msg, sig []byte) bool {
	return ed25519.Verify(p.Raw, msg, sig)
}

// Keypair holds an Ed25519 private key and the key type tag persisted
// alongside it. A Keypair exclusively owns its private material; use
// Public to obtain the shareable PublicKey.
type Keypair struct {
	Type KeyType
	Priv ed25519.PrivateKey
}

// GenerateEd25519 creates a fresh Ed25519 keypair using a
// cryptographically secure random source.
func GenerateEd25519() (*Keypair, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: generate ed25519 key: %v", ErrSigningFailed, err)
	}
	return &Keypair{Type: KeyTypeEd25519, Priv: priv}, nil
}

// Public returns the public half of the keypair.
func (k *Keypair) Public() *PublicKey {
	pub, ok := k.Priv.Public().(ed25519.PublicKey)
	if !ok {
		// crypto/ed25519.PrivateKey.Public always returns an
		// ed25519.PublicKey; this branch is unreachable in practice.
		panic("ipns: ed25519 private key produced a non-ed25519 public key")
	}
	return &PublicKey{Type: k.Type, Raw: pub}
}

// Sign signs msg with the private key.
func (k *Keypair) Sign(msg []byte) ([]byte, error) {
	if k.Type != KeyTypeEd25519 {
		return nil, fmt.Errorf("%w: unsupported key type %d", ErrSigningFailed, k.Type)
	}
	return ed25519.Sign(k.Priv, msg), nil
}

// MarshalPrivateKey encodes the keypair as a libp2p crypto.pb
// PrivateKey message: the language-neutral persisted form used by
// DecodeWritableName and the CLI's key files.
func (k *Keypair) MarshalPrivateKey() []byte {
	return marshalKeyProto(k.Type, k.Priv)
}

// ParsePrivateKeyProto decodes a libp2p crypto.pb PrivateKey message
// into a Keypair.
func ParsePrivateKeyProto(b []byte) (*Keypair, error) {
	typ, data, err := unmarshalKeyProto(b)
	if err != nil {
		return nil, err
	}
	if typ != KeyTypeEd25519 {
		return nil, fmt.Errorf("%w: unsupported key type %d", ErrInvalidKey, typ)
	}
	if len(data) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: ed25519 private key must be %d bytes, got %d", ErrInvalidKey, ed25519.PrivateKeySize, len(data))
	}
	return &Keypair{Type: typ, Priv: ed25519.PrivateKey(data)}, nil
}
