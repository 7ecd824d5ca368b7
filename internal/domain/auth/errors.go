package auth

import (
	"errors"
	"fmt"
)

// Standard error definitions for auth domain
var (
	ErrEmailInUse      = errors.New("email already registered")
	ErrWeakPassword    = errors.New("password rejected by policy")
	ErrInvalidInput    = errors.New("invalid input")
	ErrProviderFailure = errors.New("identity provider failure")
)

// EmailInUseError returns an error for an email that already has an identity
func EmailInUseError(email string) error {
	return fmt.Errorf("%w: %s", ErrEmailInUse, email)
}

// ValidationError returns an error for invalid input
func ValidationError(details string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, details)
}
