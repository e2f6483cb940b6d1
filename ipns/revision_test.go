package ipns

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testName(t *testing.T) Name {
	t.Helper()
	kp, err := GenerateEd25519()
	require.NoError(t, err)
	name, err := NameFromPublicKey(kp.Public())
	require.NoError(t, err)
	return name
}

func TestRevision_V0Defaults(t *testing.T) {
	name := testName(t)
	rev := V0(name, "such value. much wow")

	require.Equal(t, uint64(0), rev.Sequence)
	require.Equal(t, DefaultTTL, rev.TTL)
	require.WithinDuration(t, time.Now().Add(DefaultLifetime), rev.Validity, time.Minute)
}

func TestRevision_Increment(t *testing.T) {
	name := testName(t)
	rev := V0(name, "v1")

	next := rev.Increment("v2")

	require.Equal(t, rev.Sequence+1, next.Sequence)
	require.Equal(t, "v2", next.Value)
	require.Equal(t, rev.TTL, next.TTL)
	require.True(t, next.Validity.After(rev.Validity.Add(-time.Minute)))
}

func TestValidityRoundTrip(t *testing.T) {
	t1 := time.Date(2025, 1, 2, 3, 4, 5, 123456789, time.UTC)
	s := FormatValidity(t1)
	require.Equal(t, "2025-01-02T03:04:05.123456789Z", s)

	t2, err := ParseValidity(s)
	require.NoError(t, err)
	require.True(t, t1.Equal(t2))
	require.Equal(t, t1.UnixNano(), t2.UnixNano())
}
