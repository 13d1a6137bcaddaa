package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service/auth"
)

var jsonNull = []byte("null")

// principalFromRequest returns the user placed in the context by the auth
// middleware. It writes a 403 and returns false when there is none, which
// only happens if a protected handler is mounted without the middleware.
func principalFromRequest(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	principal, ok := shared.PrincipalFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, auth.ErrMissingToken, "")
		return nil, false
	}
	return principal, true
}

// getPathID extracts a positive integer ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}

	return id, nil
}

// parsePage reads skip and limit from the query string, applying the
// defaults for absent parameters. Range checks are left to domain.Page.
func parsePage(r *http.Request) (domain.Page, error) {
	page := domain.Page{Skip: 0, Limit: domain.DefaultPageLimit}
	query := r.URL.Query()

	if raw := query.Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil {
			return page, domain.NewValidationError("skip", "must be an integer", domain.ErrInvalidPagination)
		}
		page.Skip = skip
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return page, domain.NewValidationError("limit", "must be an integer", domain.ErrInvalidPagination)
		}
		page.Limit = limit
	}

	return page, page.Validate()
}

// decodeTaskPatch reads a partial task update. Keys are inspected raw so
// that an explicit null can be told apart from an absent key: a null
// description clears it, while a null title or completed flag is rejected.
// Unknown keys are ignored.
func decodeTaskPatch(w http.ResponseWriter, r *http.Request) (domain.TaskPatch, error) {
	var (
		fields map[string]json.RawMessage
		patch  domain.TaskPatch
	)

	if err := shared.DecodeJSON(w, r, &fields); err != nil {
		return patch, err
	}
	if fields == nil {
		return patch, domain.NewValidationError("body", "must be a JSON object", nil)
	}

	if raw, ok := fields["title"]; ok {
		var title string
		if isNull(raw) || json.Unmarshal(raw, &title) != nil {
			return patch, domain.NewValidationError("title", "must be a string", domain.ErrEmptyTitle)
		}
		patch.Title = &title
	}

	if raw, ok := fields["description"]; ok {
		patch.DescriptionSet = true
		if !isNull(raw) {
			var description string
			if err := json.Unmarshal(raw, &description); err != nil {
				return patch, domain.NewValidationError("description", "must be a string or null", nil)
			}
			patch.Description = &description
		}
	}

	if raw, ok := fields["completed"]; ok {
		var completed bool
		if isNull(raw) || json.Unmarshal(raw, &completed) != nil {
			return patch, domain.NewValidationError("completed", "must be a boolean", nil)
		}
		patch.Completed = &completed
	}

	return patch, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), jsonNull)
}
