package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Response messages for authentication failures.
const (
	MsgNotAuthenticated   = "Not authenticated"
	MsgInvalidToken       = "Invalid token"
	MsgAuthenticationFail = "Authentication error"
)

// AuthMiddleware provides bearer token authentication for routes.
type AuthMiddleware struct {
	tokens auth.TokenService
	users  store.UserStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokens auth.TokenService, users store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
	}
}

// Authenticate verifies the bearer access token on every request and stores
// the resolved user in the request context.
//
// A missing header, empty credentials or a non-bearer scheme is rejected with
// 403. A token that fails verification, is not an access token, or names a
// user that no longer exists is rejected with 401 and a WWW-Authenticate
// challenge. A storage failure while resolving the user is a 500.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContext(ctx)

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, MsgNotAuthenticated, auth.ErrMissingToken)
			return
		}

		claims, err := m.tokens.Verify(ctx, token)
		if err != nil {
			unauthorized(w, r, err)
			return
		}

		if err := claims.RequireType(auth.TokenTypeAccess); err != nil {
			unauthorized(w, r, err)
			return
		}

		user, err := m.users.GetByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				unauthorized(w, r, err)
				return
			}
			log.Error("failed to resolve token subject",
				redact.ErrorAttr(err),
				slog.Int64("user_id", claims.UserID))
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, MsgAuthenticationFail, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithPrincipal(ctx, user)))
	})
}

func unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, MsgInvalidToken, err)
}

// bearerToken extracts the credentials from an Authorization header of the
// form "Bearer <token>". The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, credentials, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	credentials = strings.TrimSpace(credentials)
	if credentials == "" {
		return "", false
	}
	return credentials, true
}
