package pii

import (
	"strings"
	"time"
)

// AdultAge is the minimum client age in whole calendar years.
const AdultAge = 18

var dobLayouts = []string{time.DateOnly, time.RFC3339, time.RFC3339Nano}

// ParseDOB parses a date of birth as an ISO calendar date or RFC3339 timestamp.
// Only the calendar date is kept.
func ParseDOB(dob string) (time.Time, bool) {
	dob = strings.TrimSpace(dob)
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, dob); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// IsAdult reports whether a person born on dob is at least AdultAge years old
// on the calendar date of now. The cutoff is computed with calendar
// arithmetic, so a Feb 29 "today" rolls the cutoff to Mar 1.
// Unparseable dates are treated as not adult.
func IsAdult(dob string, now time.Time) bool {
	birth, ok := ParseDOB(dob)
	if !ok {
		return false
	}
	cutoff := time.Date(now.Year()-AdultAge, now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !birth.After(cutoff)
}
