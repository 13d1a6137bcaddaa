package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

// MinSecretLength is the minimum accepted length of the signing secret.
const MinSecretLength = 32

// hmacTokenService is an implementation of TokenService using HMAC-SHA256 signing.
type hmacTokenService struct {
	signingKey           []byte
	accessTokenLifetime  time.Duration
	refreshTokenLifetime time.Duration
	timeFunc             func() time.Time // Injectable for testing
}

// jwtCustomClaims defines the structure of JWT claims we use
type jwtCustomClaims struct {
	UserID    int64  `json:"uid"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

var _ TokenService = (*hmacTokenService)(nil)

// NewTokenService creates a TokenService using HMAC-SHA256 signing and the wall clock.
func NewTokenService(cfg config.AuthConfig) (TokenService, error) {
	return NewTokenServiceWithClock(cfg, time.Now)
}

// NewTokenServiceWithClock creates a TokenService that reads the current
// time from now, for both issuance and verification.
func NewTokenServiceWithClock(cfg config.AuthConfig, now func() time.Time) (TokenService, error) {
	if len(cfg.JWTSecret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	if cfg.AccessTokenLifetimeMinutes <= 0 || cfg.RefreshTokenLifetimeDays <= 0 {
		return nil, fmt.Errorf("token lifetimes must be positive")
	}
	if now == nil {
		now = time.Now
	}

	return &hmacTokenService{
		signingKey:           []byte(cfg.JWTSecret),
		accessTokenLifetime:  cfg.AccessTokenLifetime(),
		refreshTokenLifetime: cfg.RefreshTokenLifetime(),
		timeFunc:             now,
	}, nil
}

// IssueAccess implements TokenService.
func (s *hmacTokenService) IssueAccess(ctx context.Context, userID int64) (string, time.Time, error) {
	return s.issue(ctx, userID, TokenTypeAccess, s.accessTokenLifetime)
}

// IssueRefresh implements TokenService.
func (s *hmacTokenService) IssueRefresh(ctx context.Context, userID int64) (string, time.Time, error) {
	return s.issue(ctx, userID, TokenTypeRefresh, s.refreshTokenLifetime)
}

func (s *hmacTokenService) issue(
	ctx context.Context,
	userID int64,
	tokenType string,
	lifetime time.Duration,
) (string, time.Time, error) {
	log := logger.FromContext(ctx)

	// Numeric dates have second precision, so truncate before computing expiry
	// to keep the returned instant identical to the exp claim.
	now := s.timeFunc().UTC().Truncate(time.Second)
	expiresAt := now.Add(lifetime)

	claims := jwtCustomClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign JWT",
			"error", err,
			"user_id", userID,
			"token_type", tokenType,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", time.Time{}, fmt.Errorf("failed to sign %s token with HMAC-SHA256: %w", tokenType, err)
	}

	return signed, expiresAt, nil
}

// Verify implements TokenService.
func (s *hmacTokenService) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.timeFunc),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired", "error", err)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed):
			log.Debug("token validation failed: malformed token", "error", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("token validation failed: invalid signature", "error", err)
		default:
			log.Debug("token validation failed",
				"error", err,
				"error_type", fmt.Sprintf("%T", err))
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid || claims.ExpiresAt == nil {
		log.Debug("token validation failed: invalid claims")
		return nil, ErrInvalidToken
	}

	// The subject is authoritative; uid must agree with it.
	subjectID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || subjectID != claims.UserID {
		log.Debug("token validation failed: subject mismatch",
			"subject", claims.Subject,
			"uid", claims.UserID)
		return nil, ErrInvalidToken
	}

	result := &Claims{
		UserID:    claims.UserID,
		TokenType: claims.TokenType,
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}

	log.Debug("token validated successfully",
		"user_id", claims.UserID,
		"token_type", claims.TokenType,
		"token_id", claims.ID)

	return result, nil
}
