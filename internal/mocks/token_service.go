package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing
type MockTokenService struct {
	// IssueAccessFn allows test cases to mock the IssueAccess behavior
	IssueAccessFn func(ctx context.Context, userID int64) (string, time.Time, error)

	// IssueRefreshFn allows test cases to mock the IssueRefresh behavior
	IssueRefreshFn func(ctx context.Context, userID int64) (string, time.Time, error)

	// VerifyFn allows test cases to mock the Verify behavior
	VerifyFn func(ctx context.Context, token string) (*auth.Claims, error)

	// Default values used when functions aren't explicitly defined
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	Err          error
	VerifyErr    error
	Claims       *auth.Claims
}

var _ auth.TokenService = (*MockTokenService)(nil)

// IssueAccess implements the auth.TokenService interface
func (m *MockTokenService) IssueAccess(ctx context.Context, userID int64) (string, time.Time, error) {
	if m.IssueAccessFn != nil {
		return m.IssueAccessFn(ctx, userID)
	}
	return m.AccessToken, m.ExpiresAt, m.Err
}

// IssueRefresh implements the auth.TokenService interface
func (m *MockTokenService) IssueRefresh(ctx context.Context, userID int64) (string, time.Time, error) {
	if m.IssueRefreshFn != nil {
		return m.IssueRefreshFn(ctx, userID)
	}
	return m.RefreshToken, m.ExpiresAt, m.Err
}

// Verify implements the auth.TokenService interface
func (m *MockTokenService) Verify(ctx context.Context, token string) (*auth.Claims, error) {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, token)
	}
	return m.Claims, m.VerifyErr
}
