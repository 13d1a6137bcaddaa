package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
)

// dbPingTimeout bounds the database health probe.
const dbPingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves the liveness and database readiness probes.
type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{db: db, logger: logger.With(slog.String("component", "health_handler"))}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "healthy"})
}

// DatabaseHealth handles GET /health/db. It reports 503 when the database
// cannot be reached.
func (h *HealthHandler) DatabaseHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbPingTimeout)
	defer cancel()

	if h.db == nil {
		shared.RespondWithJSON(w, r, http.StatusServiceUnavailable,
			map[string]string{"status": "unhealthy", "database": "not configured"})
		return
	}

	if err := h.db.PingContext(ctx); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("database health check failed",
			redact.ErrorAttr(err))
		shared.RespondWithJSON(w, r, http.StatusServiceUnavailable,
			map[string]string{"status": "unhealthy", "database": "disconnected"})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK,
		map[string]string{"status": "healthy", "database": "connected"})
}
