package ipns

import (
	"fmt"
	"time"
)

// DefaultLifetime is the validity window applied to freshly produced
// and incremented revisions: now + 1 year.
const DefaultLifetime = 365 * 24 * time.Hour

// DefaultTTL is the advisory cache lifetime applied to v0 revisions:
// 5 minutes, matching the historical IPNS default observed across
// implementations.
const DefaultTTL = 5 * time.Minute

// validityLayout is RFC-3339 with nanosecond precision and a literal
// "Z" suffix, the exact string form that appears in both the
// protobuf validity field and the CBOR Validity byte string.
const validityLayout = "2006-01-02T15:04:05.000000000Z"

// Revision is the logical, in-memory payload a WritableName publishes
// over time: a value at a sequence number, valid until validity, with
// an advisory cache ttl.
type Revision struct {
	Name     Name
	Value    string
	Validity time.Time
	Sequence uint64
	TTL      time.Duration
}

// NewRevision builds a Revision from explicit fields.
func NewRevision(name Name, value string, validity time.Time, ttl time.Duration, sequence uint64) Revision {
	return Revision{
		Name:     name,
		Value:    value,
		Validity: validity.UTC(),
		Sequence: sequence,
		TTL:      ttl,
	}
}

// V0 builds the first revision for a name: sequence 0, validity now +
// DefaultLifetime, ttl DefaultTTL.
func V0(name Name, value string) Revision {
	return NewRevision(name, value, time.Now().Add(DefaultLifetime), DefaultTTL, 0)
}

// V0WithValidity builds the first revision for a name with an explicit
// validity and ttl.
func V0WithValidity(name Name, value string, validity time.Time, ttl time.Duration) Revision {
	return NewRevision(name, value, validity, ttl, 0)
}

// Increment derives the next revision: the same name and ttl, the new
// value, sequence+1, and validity reset to now + DefaultLifetime.
func (r Revision) Increment(value string) Revision {
	return NewRevision(r.Name, value, time.Now().Add(DefaultLifetime), r.TTL, r.Sequence+1)
}

// ValidityString renders r.Validity as RFC-3339 with nanosecond
// precision and a trailing "Z". This exact string is what appears in
// both the protobuf validity field and the CBOR Validity byte string.
func (r Revision) ValidityString() string {
	return FormatValidity(r.Validity)
}

// FormatValidity renders t as RFC-3339 UTC with nanosecond precision
// and a trailing "Z".
func FormatValidity(t time.Time) string {
	return t.UTC().Format(validityLayout)
}

// ParseValidity parses the RFC-3339 validity string produced by
// FormatValidity. It accepts the canonical nanosecond form as well as
// any RFC-3339 variant (fewer fractional digits, explicit offset)
// since a receiver should tolerate records written by conforming but
// independently-timestamped implementations.
func ParseValidity(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("ipns: parse validity %q: %w", s, err)
	}
	return t.UTC(), nil
}
