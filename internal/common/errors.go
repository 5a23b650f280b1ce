// Package common defines shared constants and sentinel errors used across
// the coursehub server and client. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal           = errors.New("internal error")
	ErrorValidation         = errors.New("validation error")
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorUnauthenticated    = errors.New("unauthenticated")

	// Auth errors (invalid, expired, forged or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Credential and token internals.
	ErrHashingFailure      = errors.New("password hashing failed")
	ErrVerificationFailure = errors.New("password verification failed")
	ErrTokenIssuance       = errors.New("token issuance failed")
)

// ValidationError carries a message that is safe to return to the client.
// It matches ErrorValidation with errors.Is.
type ValidationError struct {
	Message string
}

// NewValidationError returns a *ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrorValidation
}
