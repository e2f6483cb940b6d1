package ipnspb

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestEntry_MarshalUnmarshalRoundTrip(t *testing.T) {
	e := &Entry{
		SignatureV2: []byte("sig-v2"),
		Data:        []byte("cbor-payload"),
		PubKey:      []byte("pubkey-bytes"),
	}

	b := e.Marshal()
	got, err := Unmarshal(b)
	require.NoError(t, err)
	require.Equal(t, e.SignatureV2, got.SignatureV2)
	require.Equal(t, e.Data, got.Data)
	require.Equal(t, e.PubKey, got.PubKey)
	require.Empty(t, got.Value)
	require.Empty(t, got.Signature)
	require.Zero(t, got.Sequence)
	require.Zero(t, got.TTL)
}

func TestEntry_MarshalOmitsEmptyFields(t *testing.T) {
	e := &Entry{SignatureV2: []byte("x"), Data: []byte("y")}
	b := e.Marshal()

	for len(b) > 0 {
		num, wireType, n := protowire.ConsumeTag(b)
		require.GreaterOrEqual(t, n, 0)
		b = b[n:]
		require.True(t, num == fieldSignatureV2 || num == fieldData, "unexpected field %d on wire", num)
		skip := protowire.ConsumeFieldValue(num, wireType, b)
		require.GreaterOrEqual(t, skip, 0)
		b = b[skip:]
	}
}

func TestEntry_HybridRoundTrip(t *testing.T) {
	e := &Entry{
		Value:        []byte("/ipfs/bafyabc"),
		Signature:    []byte("v1-sig"),
		ValidityType: ValidityEOL,
		Validity:     []byte("2030-01-01T00:00:00.000000000Z"),
		Sequence:     3,
		TTL:          60_000_000_000,
		PubKey:       []byte("pubkey-bytes"),
		SignatureV2:  []byte("v2-sig"),
		Data:         []byte("v2-payload"),
	}

	got, err := Unmarshal(e.Marshal())
	require.NoError(t, err)
	require.Equal(t, e, got)
}

func TestUnmarshal_SkipsUnknownFields(t *testing.T) {
	b := protowire.AppendTag(nil, fieldValue, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte("val"))
	// Field 42 is not part of the schema; it must be skipped, not error.
	b = protowire.AppendTag(b, 42, protowire.VarintType)
	b = protowire.AppendVarint(b, 12345)

	got, err := Unmarshal(b)
	require.NoError(t, err)
	require.Equal(t, []byte("val"), got.Value)
}

func TestUnmarshal_RejectsTruncated(t *testing.T) {
	b := protowire.AppendTag(nil, fieldValue, protowire.BytesType)
	// Truncate right after the tag: no length/bytes follow.
	_, err := Unmarshal(b)
	require.Error(t, err)
}
