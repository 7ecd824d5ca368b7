package utils

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hirosato/lidere-backoffice/internal/domain/errors"
)

var (
	// EmailRegex validates email addresses
	EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// DateRegex validates ISO 8601 date strings (YYYY-MM-DD)
	DateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	if !EmailRegex.MatchString(email) {
		return errors.NewValidationError("invalid email format")
	}
	return nil
}

// ValidateISODate validates an ISO 8601 date string (YYYY-MM-DD)
func ValidateISODate(date string) error {
	if !DateRegex.MatchString(date) {
		return errors.NewValidationError("invalid date format, should be YYYY-MM-DD")
	}

	// Parse the date to ensure it's valid
	_, err := time.Parse(DateLayout, date)
	if err != nil {
		return errors.NewValidationError("invalid date value")
	}

	return nil
}

// ValidatePositiveAmount validates that a money amount is strictly positive
func ValidatePositiveAmount(amount decimal.Decimal, fieldName string) error {
	if !amount.IsPositive() {
		return errors.NewValidationError(fieldName + " must be greater than zero")
	}
	return nil
}

// ValidateCompanyID validates the owning company of an entity
func ValidateCompanyID(companyID string) error {
	if strings.TrimSpace(companyID) == "" {
		return errors.NewValidationError("companyId is required")
	}
	// '#' delimits the company inside index sort keys
	if strings.Contains(companyID, "#") {
		return errors.NewValidationError("companyId must not contain '#'")
	}
	return nil
}

// ValidateRequiredString validates that a string is not empty
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewValidationError(fieldName + " is required")
	}
	return nil
}
