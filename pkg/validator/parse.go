package validator

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/cases"
)

// parseInt parses a 32-bit signed integer, tolerating surrounding whitespace
// and a leading sign.
func parseInt(s string) (int, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// parseDate parses a date in any of the common layouts understood by dateparse.
// Values without a zone are read as UTC. Bare numbers are rejected: dateparse
// would read them as Unix timestamps or lone years.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || isNumber(s) {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// isNumber reports whether s is an optionally signed run of digits.
func isNumber(s string) bool {
	s = strings.TrimLeft(s, "+-")
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// dateOnly drops the time of day, keeping the calendar date as seen in t's location.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// folder is stateless and safe for concurrent use.
var folder = cases.Fold()

// fold returns the case-folded form of s used for case-insensitive matching.
func fold(s string) string {
	return folder.String(s)
}
