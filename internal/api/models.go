package api

import (
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
)

// RegisterRequest defines the payload for the user registration endpoint.
// Email syntax and password length are checked by the account service.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	// RefreshToken is the JWT refresh token to be used to obtain a new token pair
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse defines the successful response for the login and refresh endpoints.
type TokenResponse struct {
	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"access_token"`

	// RefreshToken is the JWT token used to obtain future access tokens
	RefreshToken string `json:"refresh_token"`

	// TokenType is always "bearer"
	TokenType string `json:"token_type"`

	// ExpiresAt is the RFC 3339 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description *string `json:"description"`
}

// TaskListResponse is one page of the caller's tasks.
type TaskListResponse struct {
	Items []*domain.Task `json:"items"`
	Total int            `json:"total"`
	Skip  int            `json:"skip"`
	Limit int            `json:"limit"`
}

func tokenPairToResponse(pair *service.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresAt:    pair.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

func taskListToResponse(list *domain.TaskList) TaskListResponse {
	items := list.Items
	if items == nil {
		items = []*domain.Task{}
	}
	return TaskListResponse{
		Items: items,
		Total: list.Total,
		Skip:  list.Page.Skip,
		Limit: list.Page.Limit,
	}
}
