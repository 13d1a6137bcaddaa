package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Safe messages returned to clients.
const (
	msgUnexpected         = "An unexpected error occurred"
	msgValidation         = "Validation error"
	msgEmailExists        = "Email already registered"
	msgNotAuthenticated   = "Not authenticated"
	msgInvalidToken       = "Invalid token"
	msgInvalidCredentials = "Incorrect email or password"
	msgInvalidRefresh     = "Invalid refresh token"
	msgTaskNotFound       = "Task not found"
	msgNotFound           = "Resource not found"
	msgInvalidEntity      = "Invalid entity data"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	// Validation errors
	case errors.Is(err, domain.ErrValidation),
		errors.As(err, &validationErrs),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusUnprocessableEntity

	// Conflict errors are reported as a plain bad request
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusBadRequest

	// Missing credentials
	case errors.Is(err, auth.ErrMissingToken):
		return http.StatusForbidden

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRefreshToken):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	var (
		validationErr  *domain.ValidationError
		validationErrs validator.ValidationErrors
	)

	switch {
	case errors.As(err, &validationErr):
		return validationMessage(validationErr)

	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)

	case errors.Is(err, domain.ErrValidation):
		return msgValidation

	case errors.Is(err, store.ErrInvalidEntity):
		return msgInvalidEntity

	case errors.Is(err, store.ErrEmailExists):
		return msgEmailExists

	case errors.Is(err, auth.ErrMissingToken):
		return msgNotAuthenticated

	case errors.Is(err, service.ErrInvalidCredentials):
		return msgInvalidCredentials

	case errors.Is(err, service.ErrInvalidRefreshToken):
		return msgInvalidRefresh

	case errors.Is(err, auth.ErrInvalidToken):
		return msgInvalidToken

	case errors.Is(err, store.ErrTaskNotFound):
		return msgTaskNotFound

	case errors.Is(err, store.ErrNotFound):
		return msgNotFound

	default:
		return msgUnexpected
	}
}

// HandleAPIError writes the response for err: the mapped status, the safe
// message, and a WWW-Authenticate challenge on 401. For 500 responses a
// non-empty fallback replaces the generic message. The full error is only
// logged, after redaction.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError turns the first validator failure into a short
// message naming the field and the failed rule.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return msgValidation
	}

	fieldErr := validationErrs[0]
	return fmt.Sprintf("Invalid %s: %s", fieldErr.Field(), getValidationTagMessage(fieldErr.Tag()))
}

func validationMessage(err *domain.ValidationError) string {
	if err.Field == "" {
		return fmt.Sprintf("%s: %s", msgValidation, err.Message)
	}
	return fmt.Sprintf("Invalid %s: %s", err.Field, err.Message)
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
