// Package cborsig implements the deterministic CBOR SignaturePayload
// that is the v2 IPNS signature input: a five-entry map with fixed
// text keys, encoded with shortest-form integers and definite-length
// containers so independent implementations reproduce identical bytes.
//
// The encoder is grounded on the teacher's manual cbor-gen writer
// usage (internal/account/plc.go's CborEncodePLCOp): a hand-driven
// sequence of WriteMajorTypeHeader calls rather than a reflective
// marshaler, because that is the level of control canonical-byte
// signature input requires. The decoder is tolerant per spec and
// parses the same small set of major-type primitives directly, so it
// accepts any valid CBOR map carrying the five expected keys
// regardless of key order.
package cborsig

import (
	"bufio"
	"bytes"
	"fmt"

	cbg "github.com/whyrusleeping/cbor-gen"
)

// Payload is the decoded form of the five-entry SignaturePayload map.
type Payload struct {
	Value        []byte
	Validity     []byte
	ValidityType uint64
	Sequence     uint64
	TTL          uint64
}

// field key order is fixed by the spec: Value, Validity, ValidityType,
// Sequence, TTL. Re-encoding must reproduce these bytes exactly since
// they are the v2 signature input.
const (
	keyValue        = "Value"
	keyValidity     = "Validity"
	keyValidityType = "ValidityType"
	keySequence     = "Sequence"
	keyTTL          = "TTL"
)

// Encode produces the deterministic CBOR map that is the v2 signature
// input. ValidityType is always encoded as the literal integer 0.
func Encode(value, validity []byte, sequence, ttl uint64) ([]byte, error) {
	var buf bytes.Buffer
	cw := cbg.NewCborWriter(&buf)

	if err := cw.WriteMajorTypeHeader(cbg.MajMap, 5); err != nil {
		return nil, fmt.Errorf("%w: write map header: %v", errCbor, err)
	}

	if err := writeKeyBytes(cw, keyValue, value); err != nil {
		return nil, err
	}
	if err := writeKeyBytes(cw, keyValidity, validity); err != nil {
		return nil, err
	}
	if err := writeKeyUint(cw, keyValidityType, 0); err != nil {
		return nil, err
	}
	if err := writeKeyUint(cw, keySequence, sequence); err != nil {
		return nil, err
	}
	if err := writeKeyUint(cw, keyTTL, ttl); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeTextString(cw *cbg.CborWriter, s string) error {
	if err := cw.WriteMajorTypeHeader(cbg.MajTextString, uint64(len(s))); err != nil {
		return err
	}
	_, err := cw.Write([]byte(s))
	return err
}

func writeKeyBytes(cw *cbg.CborWriter, key string, val []byte) error {
	if err := writeTextString(cw, key); err != nil {
		return fmt.Errorf("%w: write key %q: %v", errCbor, key, err)
	}
	if err := cw.WriteMajorTypeHeader(cbg.MajByteString, uint64(len(val))); err != nil {
		return fmt.Errorf("%w: write byte string header for %q: %v", errCbor, key, err)
	}
	if _, err := cw.Write(val); err != nil {
		return fmt.Errorf("%w: write byte string value for %q: %v", errCbor, key, err)
	}
	return nil
}

func writeKeyUint(cw *cbg.CborWriter, key string, val uint64) error {
	if err := writeTextString(cw, key); err != nil {
		return fmt.Errorf("%w: write key %q: %v", errCbor, key, err)
	}
	if err := cw.WriteMajorTypeHeader(cbg.MajUnsignedInt, val); err != nil {
		return fmt.Errorf("%w: write uint value for %q: %v", errCbor, key, err)
	}
	return nil
}

// Decode is tolerant: it accepts any valid definite-length CBOR map
// that yields the five expected keys with the expected major types,
// regardless of the order they appear in.
func Decode(b []byte) (*Payload, error) {
	r := bufio.NewReader(bytes.NewReader(b))

	major, count, err := cbg.CborReadHeader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read map header: %v", errCbor, err)
	}
	if major != cbg.MajMap {
		return nil, fmt.Errorf("%w: expected a map, got major type %d", errCbor, major)
	}

	var p Payload
	var sawValue, sawValidity, sawValidityType, sawSequence, sawTTL bool

	for i := uint64(0); i < count; i++ {
		key, err := readTextString(r)
		if err != nil {
			return nil, fmt.Errorf("%w: read key %d: %v", errCbor, i, err)
		}

		switch key {
		case keyValue:
			v, err := readByteString(r)
			if err != nil {
				return nil, fmt.Errorf("%w: read Value: %v", errCbor, err)
			}
			p.Value = v
			sawValue = true
		case keyValidity:
			v, err := readByteString(r)
			if err != nil {
				return nil, fmt.Errorf("%w: read Validity: %v", errCbor, err)
			}
			p.Validity = v
			sawValidity = true
		case keyValidityType:
			v, err := readUint(r)
			if err != nil {
				return nil, fmt.Errorf("%w: read ValidityType: %v", errCbor, err)
			}
			p.ValidityType = v
			sawValidityType = true
		case keySequence:
			v, err := readUint(r)
			if err != nil {
				return nil, fmt.Errorf("%w: read Sequence: %v", errCbor, err)
			}
			p.Sequence = v
			sawSequence = true
		case keyTTL:
			v, err := readUint(r)
			if err != nil {
				return nil, fmt.Errorf("%w: read TTL: %v", errCbor, err)
			}
			p.TTL = v
			sawTTL = true
		default:
			return nil, fmt.Errorf("%w: unexpected key %q", errCbor, key)
		}
	}

	if !sawValue || !sawValidity || !sawValidityType || !sawSequence || !sawTTL {
		return nil, fmt.Errorf("%w: missing one or more required keys", errCbor)
	}
	return &p, nil
}
