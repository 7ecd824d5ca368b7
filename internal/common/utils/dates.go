package utils

import (
	"time"

	"github.com/hirosato/lidere-backoffice/internal/domain/errors"
)

// DateLayout is the persisted form of calendar dates
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time
func ParseDate(value string) (time.Time, error) {
	if err := ValidateISODate(value); err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, errors.NewValidationError("invalid date value")
	}
	return t, nil
}

// FormatDate formats t as YYYY-MM-DD in UTC
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Today returns the current UTC date at midnight
func Today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddCalendarMonths returns the date n calendar months after start. When the
// target month is shorter than start's day, the result is the last day of
// that month. It is always computed from start, so a series built with
// increasing n never drifts: Jan 31 yields Feb 29 (leap year) then Mar 31.
func AddCalendarMonths(start time.Time, n int) time.Time {
	y, m, d := start.Date()

	// first day of the target month
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, start.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, start.Location())
}
