package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TokenTypeBearer is the token_type reported to clients.
const TokenTypeBearer = "bearer"

// dummyPassword is hashed once at construction. Login compares against that
// hash when the email is unknown so both failure paths cost one bcrypt check.
const dummyPassword = "timing-equalization-password"

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	// ExpiresAt is the expiry of the access token.
	ExpiresAt time.Time
}

// AccountService provides registration and authentication operations.
type AccountService interface {
	// Register creates an account. Returns a domain validation error for a
	// malformed email or password and store.ErrEmailExists for a taken email.
	Register(ctx context.Context, email, password string) (*domain.User, error)

	// Login exchanges credentials for a token pair.
	// Returns ErrInvalidCredentials for any credential failure.
	Login(ctx context.Context, email, password string) (*TokenPair, error)

	// Refresh exchanges a valid refresh token for a new token pair.
	// Returns ErrInvalidRefreshToken for any token or subject failure.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// CurrentUser returns the public view of the authenticated principal.
	CurrentUser(principal *domain.User) domain.PublicUser
}

type accountService struct {
	users     store.UserStore
	txRunner  store.TxRunner
	hasher    auth.PasswordHasher
	tokens    auth.TokenService
	dummyHash string
	logger    *slog.Logger
}

var _ AccountService = (*accountService)(nil)

// NewAccountService creates an AccountService.
func NewAccountService(
	users store.UserStore,
	txRunner store.TxRunner,
	hasher auth.PasswordHasher,
	tokens auth.TokenService,
	logger *slog.Logger,
) (AccountService, error) {
	if users == nil || txRunner == nil || hasher == nil || tokens == nil {
		return nil, errors.New("account service: all dependencies are required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy password hash: %w", err)
	}

	return &accountService{
		users:     users,
		txRunner:  txRunner,
		hasher:    hasher,
		tokens:    tokens,
		dummyHash: dummyHash,
		logger:    logger.With("component", "account_service"),
	}, nil
}

// Register implements AccountService.
func (s *accountService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if err := domain.ValidateRegistration(email, password); err != nil {
		s.logger.Debug("registration rejected by validation", "error", err)
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:          email,
		HashedPassword: hashed,
	}

	err = s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.users.WithTx(tx)

		_, err := txStore.GetByEmail(ctx, email)
		if err == nil {
			return store.ErrEmailExists
		}
		if !errors.Is(err, store.ErrUserNotFound) {
			return err
		}

		// A concurrent registration can still win the race; the unique
		// constraint then surfaces as ErrEmailExists from Create.
		return txStore.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register an existing email")
			return nil, err
		}
		s.logger.Error("failed to save user to database", "error", err)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login implements AccountService.
func (s *accountService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			s.logger.Debug("login failed: unknown email")
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for login", "error", err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		s.logger.Debug("login failed: password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("user logged in", "user_id", user.ID)
	return pair, nil
}

// Refresh implements AccountService.
func (s *accountService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.Verify(ctx, refreshToken)
	if err != nil {
		s.logger.Debug("refresh failed: token rejected", "error", err)
		return nil, ErrInvalidRefreshToken
	}

	if err := claims.RequireType(auth.TokenTypeRefresh); err != nil {
		s.logger.Debug("refresh failed: wrong token type", "token_type", claims.TokenType)
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("refresh failed: subject no longer exists", "user_id", claims.UserID)
			return nil, ErrInvalidRefreshToken
		}
		s.logger.Error("failed to look up refresh token subject", "error", err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	pair, err := s.issuePair(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("tokens refreshed", "user_id", user.ID)
	return pair, nil
}

// CurrentUser implements AccountService.
func (s *accountService) CurrentUser(principal *domain.User) domain.PublicUser {
	return principal.Public()
}

func (s *accountService) issuePair(ctx context.Context, userID int64) (*TokenPair, error) {
	access, expiresAt, err := s.tokens.IssueAccess(ctx, userID)
	if err != nil {
		s.logger.Error("failed to issue access token", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, _, err := s.tokens.IssueRefresh(ctx, userID)
	if err != nil {
		s.logger.Error("failed to issue refresh token", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    TokenTypeBearer,
		ExpiresAt:    expiresAt,
	}, nil
}
