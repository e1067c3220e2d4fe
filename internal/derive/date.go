// Package derive computes the report window from CLI input.
package derive

import (
	"fmt"
	"strings"
	"time"
)

// DayLayout is the date format accepted by --till and used in JQL clauses.
const DayLayout = "2006-01-02"

// ParseDay parses a strict YYYY-MM-DD date string into a UTC time at
// midnight. Unlike a lenient parser, anything else is an error so a typo in
// --till never silently falls back to another window.
func ParseDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	t, err := time.Parse(DayLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	return t.UTC(), nil
}

// Window computes the report window ending at till and reaching back
// daysAgo days. Both endpoints are inclusive. daysAgo must not be negative
// so that the end date never precedes the start date.
func Window(till time.Time, daysAgo int) (since, end time.Time, err error) {
	if daysAgo < 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("days-ago must not be negative, got %d", daysAgo)
	}

	end = till.UTC().Truncate(24 * time.Hour)
	since = end.AddDate(0, 0, -daysAgo)
	return since, end, nil
}

// FormatDay renders a time as YYYY-MM-DD in UTC.
func FormatDay(t time.Time) string {
	return t.UTC().Format(DayLayout)
}
