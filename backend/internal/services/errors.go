package services

import "errors"

// Failure taxonomy shared by all services. Handlers translate these to HTTP
// statuses; nothing below the handler layer knows about HTTP.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError carries a human-readable reason for malformed or
// referentially invalid input (unknown building, out-of-enum status, ...).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}
