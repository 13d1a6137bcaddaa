// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or request input fails validation.
	// More specific errors wrap it, so callers should check with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or out of range.
	ErrInvalidID = fmt.Errorf("%w: invalid ID", ErrValidation)

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = fmt.Errorf("%w: invalid email format", ErrValidation)

	// ErrEmptyEmail is returned when an email address is missing.
	ErrEmptyEmail = fmt.Errorf("%w: email cannot be empty", ErrValidation)

	// ErrPasswordTooShort is returned when a password is below MinPasswordLength.
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least %d characters long",
		ErrValidation, MinPasswordLength)

	// ErrPasswordTooLong is returned when a password exceeds MaxPasswordLength bytes.
	ErrPasswordTooLong = fmt.Errorf("%w: password must be at most %d bytes long",
		ErrValidation, MaxPasswordLength)

	// ErrEmptyTitle is returned when a task has no title.
	ErrEmptyTitle = fmt.Errorf("%w: title cannot be empty", ErrValidation)

	// ErrTitleTooLong is returned when a task title exceeds MaxTitleLength.
	ErrTitleTooLong = fmt.Errorf("%w: title must be at most %d characters long",
		ErrValidation, MaxTitleLength)

	// ErrEmptyOwner is returned when a task has no owner.
	ErrEmptyOwner = fmt.Errorf("%w: task owner cannot be empty", ErrValidation)

	// ErrInvalidPagination is returned when skip/limit are out of bounds.
	ErrInvalidPagination = fmt.Errorf("%w: invalid pagination", ErrValidation)
)

// ValidationError describes a single invalid input field.
// It unwraps to the underlying cause, which in turn wraps ErrValidation.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field. If err is nil the
// error wraps ErrValidation directly.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Message)
}

// Unwrap supports errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
