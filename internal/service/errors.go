package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
var (
	// ErrInvalidCredentials is returned by Login for an unknown email or a
	// wrong password. The two cases are deliberately indistinguishable.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrInvalidRefreshToken is returned by Refresh when the token fails
	// verification, is not a refresh token, or names a user that no longer exists.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
