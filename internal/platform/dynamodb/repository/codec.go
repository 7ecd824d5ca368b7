package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hirosato/lidere-backoffice/internal/common/utils"
)

// Amounts are stored as decimal strings, dates as YYYY-MM-DD and timestamps
// as RFC3339 with nanoseconds, all in UTC.

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatOptionalTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTimestamp(*t)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return utils.FormatDate(*t)
}

func parseTimestamp(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, malformed("%s %q is not a timestamp", field, value)
	}
	return t.UTC(), nil
}

func parseOptionalTimestamp(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseTimestamp(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.ParseInLocation(utils.DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, malformed("%s %q is not a date", field, value)
	}
	return t, nil
}

func parseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseAmount(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, malformed("%s %q is not a decimal", field, value)
	}
	return d, nil
}

func requireString(field, value string) error {
	if value == "" {
		return malformed("%s is missing", field)
	}
	return nil
}
