package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes shared by every domain package
const (
	CodeNotFound               = "NOT_FOUND"
	CodeInvalidState           = "INVALID_STATE"
	CodeValidation             = "VALIDATION_ERROR"
	CodeExternalServiceFailure = "EXTERNAL_SERVICE_FAILURE"
	CodeDuplicateRecord        = "DUPLICATE_RECORD"
	CodeConflict               = "CONFLICT"
	CodeInternal               = "INTERNAL_ERROR"
)

// AppError is a custom error type for application errors
type AppError struct {
	Code       string
	Message    string
	StatusCode int // Same rule as HTTP status codes
	Err        error
	Details    map[string]interface{}
}

// Error returns a string representation of the error
func (e AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is implements the errors.Is interface
func (e AppError) Is(target error) bool {
	if target, ok := target.(AppError); ok {
		return target.Code == e.Code
	}
	return false
}

// Unwrap returns the underlying error
func (e AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a single detail to the error
func (e AppError) WithDetail(key string, value interface{}) AppError {
	details := make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// UserMessage is the text safe to show to an end user. Failures of the
// underlying services are reported generically.
func (e AppError) UserMessage() string {
	switch e.Code {
	case CodeExternalServiceFailure, CodeInternal:
		return "the operation could not be completed, please try again later"
	default:
		return e.Message
	}
}

// CodeOf returns the AppError code carried by err, or CodeInternal when err
// is not an AppError.
func CodeOf(err error) string {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// HasCode reports whether err carries the given AppError code
func HasCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// AsAppError converts err into an AppError, wrapping unclassified errors as
// internal failures.
func AsAppError(err error) AppError {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError("an unexpected error occurred", err)
}

// NewValidationError creates a new validation error
func NewValidationError(message string) AppError {
	return AppError{
		Code:       CodeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) AppError {
	return AppError{
		Code:       CodeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewInvalidStateError creates an error for an operation that the entity's
// current lifecycle state does not permit
func NewInvalidStateError(message string) AppError {
	return AppError{
		Code:       CodeInvalidState,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewDuplicateRecordError creates a new duplicate record error
func NewDuplicateRecordError(message string) AppError {
	return AppError{
		Code:       CodeDuplicateRecord,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewExternalServiceError wraps a failure of the persistence or identity layer
func NewExternalServiceError(message string, err error) AppError {
	return AppError{
		Code:       CodeExternalServiceFailure,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Err:        err,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string) AppError {
	return AppError{
		Code:       CodeConflict,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) AppError {
	return AppError{
		Code:       CodeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}
