package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		want  slog.Level
		valid bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			level, ok := logger.ParseLevel(tt.name)
			assert.Equal(t, tt.want, level)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

// Setup replaces the slog default, so these tests do not run in parallel.
func TestSetup(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	t.Run("filters below configured level", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.Setup(config.ServerConfig{LogLevel: "warn"}, &buf)

		log.Info("hidden")
		log.Warn("shown", "key", "value")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 1)

		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
		assert.Equal(t, "shown", entry["msg"])
		assert.Equal(t, "WARN", entry["level"])
		assert.Equal(t, "value", entry["key"])
	})

	t.Run("invalid level falls back to info and warns", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.Setup(config.ServerConfig{LogLevel: "chatty"}, &buf)

		assert.Contains(t, buf.String(), "invalid log level configured")
		assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
		assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))
	})

	t.Run("installs default logger", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.Setup(config.ServerConfig{LogLevel: "info"}, &buf)
		assert.Same(t, log, slog.Default())
	})
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	scoped := slog.New(slog.NewJSONHandler(&buf, nil)).With("trace_id", "abc")
	fallback := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	ctx := logger.WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, logger.FromContext(ctx))
	assert.Same(t, scoped, logger.FromContextOrDefault(ctx, fallback))

	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.NotNil(t, logger.FromContextOrDefault(context.Background(), nil))

	logger.FromContext(ctx).Info("hello")
	assert.Contains(t, buf.String(), `"trace_id":"abc"`)
}
