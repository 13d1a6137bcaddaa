package auth

import (
	"errors"
	"fmt"
)

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token could not be verified. Every token
	// verification failure matches this error with errors.Is.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = fmt.Errorf("authentication token has expired: %w", ErrInvalidToken)

	// ErrWrongTokenType indicates a valid token was presented where a token
	// of another type is required (e.g. a refresh token on a protected route)
	ErrWrongTokenType = fmt.Errorf("wrong authentication token type: %w", ErrInvalidToken)

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrWeakSecret is returned when the configured signing secret is too short
	ErrWeakSecret = errors.New("jwt secret must be at least 32 characters")
)
