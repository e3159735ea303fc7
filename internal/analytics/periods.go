package analytics

import (
	"strings"
	"time"
)

const (
	labelLayout  = "Jan 2006"
	periodLayout = "2006-01-02"
)

// periodLayouts are tried in order when turning a period key into a date.
var periodLayouts = []string{
	"2006-01-02",
	"2006-01",
	time.RFC3339,
	"2006/01/02",
	"01/2006",
	"Jan-2006",
	"Jan 2006",
	"January 2006",
}

// ParsePeriod interprets a period key as the first instant of its month (UTC).
func ParsePeriod(period string) (time.Time, bool) {
	s := strings.TrimSpace(period)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// PeriodLabel pretty-prints a period key as "Jan 2006". Keys that do not parse
// are returned unchanged.
func PeriodLabel(period string) string {
	t, ok := ParsePeriod(period)
	if !ok {
		return period
	}
	return t.Format(labelLayout)
}

// addMonths steps forward by whole months, clamping to the last day of the
// target month so 31 January + 1 month is 28/29 February.
func addMonths(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()
	day := min(t.Day(), lastDay)
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}
