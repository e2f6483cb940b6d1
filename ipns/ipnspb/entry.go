// Package ipnspb implements the IpnsEntry wire envelope: a flat
// protobuf message overlaying the v1 (legacy) and v2 (current)
// signature schemes in a single record. Field numbers are fixed by
// the upstream IPNS protobuf schema and must match exactly for
// byte-exact interoperability with other implementations.
//
// There is no .proto file to run through protoc here — the toolchain
// is not invoked as part of this build — so Marshal/Unmarshal are
// hand-written directly against google.golang.org/protobuf's protowire
// package, the same low-level primitives protoc-gen-go generated code
// itself calls.
package ipnspb

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrDecode is returned when an Entry cannot be parsed from bytes.
var ErrDecode = errors.New("ipnspb: protobuf decode error")

// Field numbers from the IPNS protobuf schema (IpnsEntry). These are
// part of the wire contract and must never change.
const (
	fieldValue        = protowire.Number(1)
	fieldSignature    = protowire.Number(2)
	fieldValidityType = protowire.Number(3)
	fieldValidity     = protowire.Number(4)
	fieldSequence     = protowire.Number(5)
	fieldTTL          = protowire.Number(6)
	fieldPubKey       = protowire.Number(7)
	fieldSignatureV2  = protowire.Number(8)
	fieldData         = protowire.Number(9)
)

// ValidityEOL is the only validity type this system ever emits: an
// end-of-life wall-clock expiry.
const ValidityEOL int32 = 0

// Entry is the flat wire envelope carrying a signed IPNS revision. The
// v1 fields (Value, Signature, ValidityType, Validity, Sequence, TTL)
// and the v2 fields (SignatureV2, Data) are both present on the
// struct; which are populated depends on whether the record is v1,
// v2-only, or hybrid — see the Validator in the ipns package for how
// that distinction is made and enforced.
type Entry struct {
	Value        []byte
	Signature    []byte
	ValidityType int32
	Validity     []byte
	Sequence     uint64
	TTL          uint64
	PubKey       []byte
	SignatureV2  []byte
	Data         []byte
}

// Marshal encodes the entry using standard protobuf wire encoding.
// Zero-value scalar fields and empty/nil byte fields are omitted,
// matching proto3 field-presence semantics — this is what makes a
// v2-only entry's empty v1 fields genuinely absent on the wire rather
// than present-but-zero.
func (e *Entry) Marshal() []byte {
	var b []byte
	if len(e.Value) > 0 {
		b = appendBytesField(b, fieldValue, e.Value)
	}
	if len(e.Signature) > 0 {
		b = appendBytesField(b, fieldSignature, e.Signature)
	}
	if e.ValidityType != 0 {
		b = appendVarintField(b, fieldValidityType, uint64(e.ValidityType))
	}
	if len(e.Validity) > 0 {
		b = appendBytesField(b, fieldValidity, e.Validity)
	}
	if e.Sequence != 0 {
		b = appendVarintField(b, fieldSequence, e.Sequence)
	}
	if e.TTL != 0 {
		b = appendVarintField(b, fieldTTL, e.TTL)
	}
	if len(e.PubKey) > 0 {
		b = appendBytesField(b, fieldPubKey, e.PubKey)
	}
	if len(e.SignatureV2) > 0 {
		b = appendBytesField(b, fieldSignatureV2, e.SignatureV2)
	}
	if len(e.Data) > 0 {
		b = appendBytesField(b, fieldData, e.Data)
	}
	return b
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// Unmarshal decodes an Entry from standard protobuf wire bytes.
// Unknown fields are tolerated and dropped: they are skipped during
// decode and never reappear on re-encode.
func Unmarshal(b []byte) (*Entry, error) {
	var e Entry
	for len(b) > 0 {
		num, wireType, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: bad tag: %v", ErrDecode, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldValue && wireType == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, fmt.Errorf("%w: value: %v", ErrDecode, err)
			}
			e.Value = v
			b = b[n:]
		case num == fieldSignature && wireType == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, fmt.Errorf("%w: signature: %v", ErrDecode, err)
			}
			e.Signature = v
			b = b[n:]
		case num == fieldValidityType && wireType == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: validity_type: %v", ErrDecode, protowire.ParseError(n))
			}
			e.ValidityType = int32(v)
			b = b[n:]
		case num == fieldValidity && wireType == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, fmt.Errorf("%w: validity: %v", ErrDecode, err)
			}
			e.Validity = v
			b = b[n:]
		case num == fieldSequence && wireType == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: sequence: %v", ErrDecode, protowire.ParseError(n))
			}
			e.Sequence = v
			b = b[n:]
		case num == fieldTTL && wireType == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: ttl: %v", ErrDecode, protowire.ParseError(n))
			}
			e.TTL = v
			b = b[n:]
		case num == fieldPubKey && wireType == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, fmt.Errorf("%w: pub_key: %v", ErrDecode, err)
			}
			e.PubKey = v
			b = b[n:]
		case num == fieldSignatureV2 && wireType == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, fmt.Errorf("%w: signature_v2: %v", ErrDecode, err)
			}
			e.SignatureV2 = v
			b = b[n:]
		case num == fieldData && wireType == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, fmt.Errorf("%w: data: %v", ErrDecode, err)
			}
			e.Data = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, wireType, b)
			if n < 0 {
				return nil, fmt.Errorf("%w: unknown field %d: %v", ErrDecode, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return &e, nil
}

func consumeBytes(b []byte) ([]byte, int, error) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}
	return append([]byte(nil), v...), n, nil
}
