package ipns

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/primal-host/ipnsgo/ipns/cborsig"
	"github.com/primal-host/ipnsgo/ipns/ipnspb"
)

func TestBuildEntry_ValidateProject_RoundTrip(t *testing.T) {
	kp, err := GenerateEd25519()
	require.NoError(t, err)
	name, err := NameFromPublicKey(kp.Public())
	require.NoError(t, err)

	rev := V0(name, "/ipfs/bafyabc")

	entry, err := BuildEntry(rev, kp)
	require.NoError(t, err)

	// v2-only production policy: every legacy field stays empty/zero.
	require.Empty(t, entry.Value)
	require.Empty(t, entry.Signature)
	require.Zero(t, entry.ValidityType)
	require.Empty(t, entry.Validity)
	require.Zero(t, entry.Sequence)
	require.Zero(t, entry.TTL)
	require.NotEmpty(t, entry.SignatureV2)
	require.NotEmpty(t, entry.Data)

	require.NoError(t, Validate(entry, kp.Public()))

	got, err := Project(entry, name)
	require.NoError(t, err)
	require.Equal(t, rev.Value, got.Value)
	require.Equal(t, rev.Sequence, got.Sequence)
	require.Equal(t, rev.TTL, got.TTL)
	require.True(t, rev.Validity.Equal(got.Validity))
}

func TestValidate_RejectsTamperedSignatureV2(t *testing.T) {
	kp, err := GenerateEd25519()
	require.NoError(t, err)
	name, err := NameFromPublicKey(kp.Public())
	require.NoError(t, err)

	entry, err := BuildEntry(V0(name, "/ipfs/bafyabc"), kp)
	require.NoError(t, err)

	entry.SignatureV2[0] ^= 0xFF

	err = Validate(entry, kp.Public())
	require.ErrorIs(t, err, ErrInvalidV2Signature)
}

func TestValidate_RejectsTamperedData(t *testing.T) {
	kp, err := GenerateEd25519()
	require.NoError(t, err)
	name, err := NameFromPublicKey(kp.Public())
	require.NoError(t, err)

	entry, err := BuildEntry(V0(name, "/ipfs/bafyabc"), kp)
	require.NoError(t, err)

	entry.Data[0] ^= 0xFF

	err = Validate(entry, kp.Public())
	require.ErrorIs(t, err, ErrInvalidV2Signature)
}

func TestValidate_V2Only_IgnoresTopLevelFieldBitFlips(t *testing.T) {
	kp, err := GenerateEd25519()
	require.NoError(t, err)
	name, err := NameFromPublicKey(kp.Public())
	require.NoError(t, err)

	entry, err := BuildEntry(V0(name, "/ipfs/bafyabc"), kp)
	require.NoError(t, err)

	// Only SignatureV2/Data are authoritative on a v2-only record, so
	// junk in the top-level fields that do not mark a record as hybrid
	// (the v1 Signature and ValidityType) has no bearing on validation.
	// Populating Value, Validity, Sequence or TTL makes the record a
	// hybrid, which TestValidate_HybridRejectsInconsistentSequence covers.
	entry.Signature = []byte("junk-v1-signature")
	entry.ValidityType = 7

	require.NoError(t, Validate(entry, kp.Public()))
}

func TestValidate_HybridRejectsInconsistentSequence(t *testing.T) {
	kp, err := GenerateEd25519()
	require.NoError(t, err)
	name, err := NameFromPublicKey(kp.Public())
	require.NoError(t, err)

	rev := V0(name, "/ipfs/bafyabc")
	entry, err := BuildEntry(rev, kp)
	require.NoError(t, err)

	// Promote to a hybrid record by also populating the legacy fields
	// consistently with the payload, then desync Sequence.
	payload, err := cborsig.Decode(entry.Data)
	require.NoError(t, err)
	entry.Value = payload.Value
	entry.Validity = payload.Validity
	entry.Sequence = payload.Sequence
	entry.TTL = payload.TTL

	require.NoError(t, Validate(entry, kp.Public()))

	entry.Sequence = payload.Sequence + 1
	err = Validate(entry, kp.Public())
	require.ErrorIs(t, err, ErrInvalidV2Data)
}

func TestValidate_LegacyV1Accepted(t *testing.T) {
	kp, err := GenerateEd25519()
	require.NoError(t, err)
	name, err := NameFromPublicKey(kp.Public())
	require.NoError(t, err)

	validity := FormatValidity(time.Now().Add(time.Hour))
	value := []byte("/ipfs/bafyv1")

	msg := append(append([]byte{}, value...), []byte(eolSuffix)...)
	msg = append(msg, []byte(validity)...)
	sig, err := kp.Sign(msg)
	require.NoError(t, err)

	entry := &ipnspb.Entry{
		Value:        value,
		Signature:    sig,
		ValidityType: ipnspb.ValidityEOL,
		Validity:     []byte(validity),
	}
	require.NoError(t, Validate(entry, kp.Public()))

	rev, err := Project(entry, name)
	require.NoError(t, err)
	require.Equal(t, string(value), rev.Value)
}
