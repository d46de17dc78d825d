package utils

import "time"

// FormatRFC3339 renders a time as the RFC3339 UTC string used for stored
// timestamps.
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseRFC3339 parses a stored RFC3339 timestamp
func ParseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
