package shared

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	RespondWithJSON(rr, httptest.NewRequest(http.MethodGet, "/health", nil), http.StatusOK,
		map[string]string{"status": "healthy"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"healthy"}`, rr.Body.String())
}

func TestRespondWithError_IncludesTraceID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/tasks/1", nil)
	req = req.WithContext(SetTraceID(req.Context()))
	rr := httptest.NewRecorder()

	RespondWithError(rr, req, http.StatusNotFound, "Task not found")

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Task not found", resp["error"])
	assert.Equal(t, GetTraceID(req.Context()), resp["trace_id"])
	assert.NotContains(t, resp, "Code")
}

func TestRespondWithError_OmitsEmptyTraceID(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	RespondWithError(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusForbidden, "Not authenticated")

	assert.JSONEq(t, `{"error":"Not authenticated"}`, rr.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "client error logs at debug", status: http.StatusUnauthorized, wantLevel: "DEBUG"},
		{name: "server error logs at error", status: http.StatusInternalServerError, wantLevel: "ERROR"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			ctx := logger.WithLogger(context.Background(), log)
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil).WithContext(ctx)
			rr := httptest.NewRecorder()

			cause := errors.New("dial failed: postgres://app:hunter2@db:5432/tasks")
			RespondWithErrorAndLog(rr, req, tt.status, "Something went wrong", cause)

			assert.Equal(t, tt.status, rr.Code)
			assert.NotContains(t, rr.Body.String(), "hunter2")

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "Something went wrong", entry["user_message"])
			assert.NotContains(t, buf.String(), "hunter2")
		})
	}
}
