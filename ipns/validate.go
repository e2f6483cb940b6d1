package ipns

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/primal-host/ipnsgo/ipns/cborsig"
	"github.com/primal-host/ipnsgo/ipns/ipnspb"
)

// sigPrefixV2 is the literal 15-byte ASCII prefix prepended to the
// exact CBOR payload bytes (as received, never re-encoded) to form
// the v2 signed message.
const sigPrefixV2 = "ipns-signature:"

// eolSuffix is the literal marker inserted between a v1 entry's value
// and validity bytes to form the v1 signed message.
const eolSuffix = "EOL"

// BuildEntry materializes a Revision into a v2-only IpnsEntry: only
// SignatureV2 and Data are populated, leaving every v1 field at its
// default (empty/zero) state per the v2-only production policy.
// Publishing services distinguish v2-only records from legacy hybrid
// records by precisely this empty-v1-fields condition.
func BuildEntry(rev Revision, kp *Keypair) (*ipnspb.Entry, error) {
	validity := []byte(rev.ValidityString())
	payload, err := cborsig.Encode([]byte(rev.Value), validity, rev.Sequence, uint64(rev.TTL.Nanoseconds()))
	if err != nil {
		return nil, fmt.Errorf("%w: encode signature payload: %v", ErrCbor, err)
	}

	msg := append([]byte(sigPrefixV2), payload...)
	sig, err := kp.Sign(msg)
	if err != nil {
		return nil, fmt.Errorf("%w: sign v2 payload: %v", ErrSigningFailed, err)
	}

	return &ipnspb.Entry{
		SignatureV2: sig,
		Data:        payload,
	}, nil
}

// Validate verifies entry's signature(s) against publicKey and, for
// hybrid records, enforces that the top-level v1 fields agree with the
// authoritative CBOR payload.
func Validate(entry *ipnspb.Entry, publicKey *PublicKey) error {
	v2Present := len(entry.SignatureV2) > 0 && len(entry.Data) > 0

	if v2Present {
		msg := append([]byte(sigPrefixV2), entry.Data...)
		if !publicKey.Verify(msg, entry.SignatureV2) {
			return ErrInvalidV2Signature
		}

		payload, err := cborsig.Decode(entry.Data)
		if err != nil {
			return fmt.Errorf("%w: decode signature payload: %v", ErrInvalidV2Data, err)
		}

		v2Only := len(entry.Value) == 0 && len(entry.Validity) == 0 &&
			entry.Sequence == 0 && entry.TTL == 0
		if v2Only {
			return nil
		}

		switch {
		case !bytes.Equal(entry.Value, payload.Value):
			return fmt.Errorf("%w: value mismatch", ErrInvalidV2Data)
		case !bytes.Equal(entry.Validity, payload.Validity):
			return fmt.Errorf("%w: validity mismatch", ErrInvalidV2Data)
		case entry.Sequence != payload.Sequence:
			return fmt.Errorf("%w: sequence mismatch", ErrInvalidV2Data)
		case entry.TTL != payload.TTL:
			return fmt.Errorf("%w: ttl mismatch", ErrInvalidV2Data)
		case uint64(entry.ValidityType) != payload.ValidityType:
			return fmt.Errorf("%w: validity_type mismatch", ErrInvalidV2Data)
		}
		return nil
	}

	msg := bytes.Join([][]byte{entry.Value, []byte(eolSuffix), entry.Validity}, nil)
	if !publicKey.Verify(msg, entry.Signature) {
		return ErrInvalidV1
	}
	return nil
}

// Project decodes a validated entry back into a Revision for name. If
// Data is non-empty its fields are authoritative; otherwise the
// top-level protobuf fields are used.
func Project(entry *ipnspb.Entry, name Name) (Revision, error) {
	if len(entry.Data) > 0 {
		payload, err := cborsig.Decode(entry.Data)
		if err != nil {
			return Revision{}, fmt.Errorf("%w: decode signature payload: %v", ErrCbor, err)
		}
		return projectFields(name, payload.Value, payload.Validity, payload.Sequence, payload.TTL)
	}
	return projectFields(name, entry.Value, entry.Validity, entry.Sequence, entry.TTL)
}

func projectFields(name Name, value, validity []byte, sequence, ttl uint64) (Revision, error) {
	if ttl > math.MaxInt64 {
		return Revision{}, fmt.Errorf("ipns: ttl %d exceeds int64 range", ttl)
	}
	t, err := ParseValidity(string(validity))
	if err != nil {
		return Revision{}, err
	}
	return NewRevision(name, string(value), t, time.Duration(int64(ttl)), sequence), nil
}
