// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Parsing errors.
	ErrNoValidAmount     = errors.New("could not detect a valid amount")
	ErrMalformedResponse = errors.New("malformed classifier response")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError reports a transcript that was rejected before any parsing work.
// Reason is meant to be shown to the user as-is.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid transcript: " + e.Reason
}

// NewValidationError creates a validation error with the given reason.
func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

// ProviderError is returned when the remote classifier cannot produce a usable answer.
// Timeouts wrap context.DeadlineExceeded.
type ProviderError struct {
	Err      error
	Provider string
	Body     string
	Status   int
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s provider error (status %d): %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("%s provider error: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError wraps err as a failure of the named provider.
func NewProviderError(provider string, err error) error {
	return &ProviderError{Provider: provider, Err: err}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsProviderError reports whether err is, or wraps, a ProviderError.
func IsProviderError(err error) bool {
	var providerErr *ProviderError
	return errors.As(err, &providerErr)
}
