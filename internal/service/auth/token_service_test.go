package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

var fixedTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func testAuthConfig(secret string) config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                  secret,
		AccessTokenLifetimeMinutes: 30,
		RefreshTokenLifetimeDays:   7,
		BcryptCost:                 4,
	}
}

// clock is a settable time source shared by a service and its test.
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func newTestService(t *testing.T, c *clock) TokenService {
	t.Helper()
	svc, err := NewTokenServiceWithClock(testAuthConfig(testSecret), c.Now)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService(testAuthConfig("too-short"))
	assert.ErrorIs(t, err, ErrWeakSecret)

	cfg := testAuthConfig(testSecret)
	cfg.AccessTokenLifetimeMinutes = 0
	_, err = NewTokenService(cfg)
	assert.Error(t, err)

	svc, err := NewTokenService(testAuthConfig(testSecret))
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t, &clock{now: fixedTime})

	t.Run("access token", func(t *testing.T) {
		t.Parallel()
		token, expiresAt, err := svc.IssueAccess(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, fixedTime.Add(30*time.Minute), expiresAt)

		claims, err := svc.Verify(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), claims.UserID)
		assert.Equal(t, "42", claims.Subject)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
		assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
		assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
		assert.NotEmpty(t, claims.ID)
		assert.NoError(t, claims.RequireType(TokenTypeAccess))
	})

	t.Run("refresh token", func(t *testing.T) {
		t.Parallel()
		token, expiresAt, err := svc.IssueRefresh(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, fixedTime.Add(7*24*time.Hour), expiresAt)

		claims, err := svc.Verify(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
		assert.Equal(t, TokenTypeRefresh, claims.TokenType)
		assert.NoError(t, claims.RequireType(TokenTypeRefresh))
	})

	t.Run("each token gets a unique id", func(t *testing.T) {
		t.Parallel()
		first, _, err := svc.IssueAccess(ctx, 1)
		require.NoError(t, err)
		second, _, err := svc.IssueAccess(ctx, 1)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)

		c1, err := svc.Verify(ctx, first)
		require.NoError(t, err)
		c2, err := svc.Verify(ctx, second)
		require.NoError(t, err)
		assert.NotEqual(t, c1.ID, c2.ID)
	})
}

func TestVerifyExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := &clock{now: fixedTime}
	svc := newTestService(t, c)

	token, expiresAt, err := svc.IssueAccess(ctx, 1)
	require.NoError(t, err)

	c.now = expiresAt.Add(-time.Second)
	_, err = svc.Verify(ctx, token)
	require.NoError(t, err, "token must be valid just before expiry")

	c.now = expiresAt
	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	c.now = expiresAt.Add(time.Hour)
	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t, &clock{now: fixedTime})

	valid, _, err := svc.IssueAccess(ctx, 1)
	require.NoError(t, err)

	other, err := NewTokenServiceWithClock(
		testAuthConfig("another-secret-that-is-long-enough-too"),
		func() time.Time { return fixedTime },
	)
	require.NoError(t, err)
	foreign, _, err := other.IssueAccess(ctx, 1)
	require.NoError(t, err)

	claims := jwtCustomClaims{
		UserID:    1,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			IssuedAt:  jwt.NewNumericDate(fixedTime),
			ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
		},
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry := claims
	noExpiry.ExpiresAt = nil
	withoutExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, noExpiry).SignedString([]byte(testSecret))
	require.NoError(t, err)

	mismatch := claims
	mismatch.Subject = "2"
	mismatched, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mismatch).SignedString([]byte(testSecret))
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"truncated", parts[0] + "." + parts[1]},
		{"tampered payload", tampered},
		{"wrong secret", foreign},
		{"algorithm HS512", hs512},
		{"algorithm none", none},
		{"missing expiry", withoutExp},
		{"subject and uid disagree", mismatched},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.NotPanics(t, func() {
				got, err := svc.Verify(ctx, tt.token)
				assert.ErrorIs(t, err, ErrInvalidToken)
				assert.Nil(t, got)
			})
		})
	}
}

func TestClaimsRequireType(t *testing.T) {
	t.Parallel()

	access := &Claims{TokenType: TokenTypeAccess}
	assert.NoError(t, access.RequireType(TokenTypeAccess))

	err := access.RequireType(TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)
	assert.ErrorIs(t, err, ErrInvalidToken)

	var nilClaims *Claims
	assert.ErrorIs(t, nilClaims.RequireType(TokenTypeAccess), ErrWrongTokenType)
}
