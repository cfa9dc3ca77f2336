package domain

import (
	"fmt"
	"time"
)

// StampLayout is the compact UTC timestamp taskwarrior uses on the wire.
const StampLayout = "20060102T150405Z" // YYYYMMDDTHHMMSSZ

// TimestampFields lists the attributes whose values are compact stamps.
var TimestampFields = []string{
	FieldEntry,
	FieldModified,
	FieldStart,
	FieldEnd,
	FieldDue,
	FieldUntil,
	FieldScheduled,
	FieldWait,
}

// IsTimestampField reports whether name holds a compact stamp.
func IsTimestampField(name string) bool {
	for _, f := range TimestampFields {
		if f == name {
			return true
		}
	}
	return false
}

// FormatStamp renders t as a compact stamp. Sub-second precision is truncated.
// Callers check IsStampable first; other years do not fit the layout.
func FormatStamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(StampLayout)
}

// IsStampable reports whether t falls in years 0000..9999 (UTC), the only
// instants with a 16-character stamp.
func IsStampable(t time.Time) bool {
	y := t.UTC().Year()
	return y >= 0 && y <= 9999
}

// ParseStamp parses exactly YYYYMMDDTHHMMSSZ into a UTC instant.
func ParseStamp(s string) (time.Time, error) {
	if len(s) != len(StampLayout) {
		return time.Time{}, fmt.Errorf("%w: %q has length %d, want %d", ErrInvalidStamp, s, len(s), len(StampLayout))
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch i {
		case 8:
			if c != 'T' {
				return time.Time{}, fmt.Errorf("%w: %q missing 'T' separator", ErrInvalidStamp, s)
			}
		case 15:
			if c != 'Z' {
				return time.Time{}, fmt.Errorf("%w: %q missing 'Z' suffix", ErrInvalidStamp, s)
			}
		default:
			if c < '0' || c > '9' {
				return time.Time{}, fmt.Errorf("%w: %q has non-digit at position %d", ErrInvalidStamp, s, i)
			}
		}
	}
	t, err := time.Parse(StampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidStamp, err)
	}
	return t.UTC(), nil
}
