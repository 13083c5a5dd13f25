// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrInvalidInput indicates the caller provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidVerdict indicates a feedback verdict outside {like, dislike}.
	ErrInvalidVerdict = errors.New("verdict must be \"like\" or \"dislike\"")

	// ErrCorpusUnavailable indicates filtering left zero usable records.
	// Searches degrade to fallback responses; this is never fatal.
	ErrCorpusUnavailable = errors.New("no records available after exclusion filtering")

	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")
)

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Unwrap makes every ValidationError match ErrInvalidInput via errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidation reports whether err is a validation failure of any kind.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
