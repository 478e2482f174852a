package models

import (
	"regexp"
	"time"
)

// DateLayout is the calendar-date format used across the document:
// snapshot keys, import arrival dates, report rows.
const DateLayout = "2006-01-02"

var snapshotDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidSnapshotDate reports whether s is a well-formed snapshot key.
func ValidSnapshotDate(s string) bool {
	return snapshotDatePattern.MatchString(s)
}

// ParseDate parses a stored date string. Both plain calendar dates and
// full RFC 3339 timestamps are accepted; anything else reports false.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Midnight truncates t to UTC midnight of its own calendar date, so
// day arithmetic ignores the time of day carried by stored timestamps.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
