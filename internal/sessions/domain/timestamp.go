package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// timestampLayouts are the accepted ISO-8601 shapes, with and without a
// zone offset and fractional seconds.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// Timestamp is an ISO-8601 instant that remembers the exact text it was
// parsed from. Values read back from storage serialize byte-for-byte as the
// caller supplied them, whatever offset or precision that was.
type Timestamp struct {
	t   time.Time
	raw string
}

// ParseTimestamp parses an ISO-8601 string into a Timestamp.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{t: t, raw: s}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}

// Time returns the parsed instant.
func (ts Timestamp) Time() time.Time {
	return ts.t
}

// String returns the verbatim text the timestamp was parsed from.
func (ts Timestamp) String() string {
	return ts.raw
}

// IsZero reports whether the timestamp was never set.
func (ts Timestamp) IsZero() bool {
	return ts.raw == ""
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(ts.raw)
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be an ISO-8601 string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
