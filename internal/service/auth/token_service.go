package auth

import (
	"context"
	"fmt"
	"time"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenService defines operations for issuing and verifying JWT authentication tokens.
type TokenService interface {
	// IssueAccess creates a signed access token for userID.
	// Returns the token string and the instant it expires.
	IssueAccess(ctx context.Context, userID int64) (string, time.Time, error)

	// IssueRefresh creates a signed refresh token for userID. Refresh tokens
	// have a longer lifetime and are only accepted by the refresh operation.
	IssueRefresh(ctx context.Context, userID int64) (string, time.Time, error)

	// Verify checks the signature and expiry of token and returns its claims.
	// Any failure matches ErrInvalidToken; expiry additionally matches
	// ErrExpiredToken. Verify does not check the token type, callers do that
	// with Claims.RequireType.
	Verify(ctx context.Context, token string) (*Claims, error)
}

// Claims represents the verified contents of a token.
type Claims struct {
	// UserID is the identifier of the user the token was issued for.
	UserID int64 `json:"uid"`

	// TokenType indicates the purpose of the token ("access" or "refresh").
	TokenType string `json:"type"`

	Subject   string    `json:"sub"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
	ID        string    `json:"jti"`
}

// RequireType returns ErrWrongTokenType unless the token has type tokenType.
func (c *Claims) RequireType(tokenType string) error {
	if c == nil || c.TokenType != tokenType {
		actual := ""
		if c != nil {
			actual = c.TokenType
		}
		return fmt.Errorf("expected %q token, got %q: %w", tokenType, actual, ErrWrongTokenType)
	}
	return nil
}
