package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))

func testConfig(prefix string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   8080,
			LogLevel:               "info",
			APIPrefix:              prefix,
			CORSAllowedOrigins:     []string{"http://localhost:5173"},
			ShutdownTimeoutSeconds: 1,
		},
		Database: config.DatabaseConfig{
			URL:          "postgres://localhost:5432/tasks",
			MaxOpenConns: 10,
		},
		Auth: config.AuthConfig{
			JWTSecret:                  "test-secret-that-is-at-least-32-characters",
			AccessTokenLifetimeMinutes: 30,
			RefreshTokenLifetimeDays:   7,
			BcryptCost:                 4,
		},
	}
}

// newTestApplication assembles the application on in-memory stores.
func newTestApplication(t *testing.T, prefix string) *application {
	t.Helper()

	app, err := buildApplication(testConfig(prefix), testLogger, dependencies{
		userStore: mocks.NewMockUserStore(),
		taskStore: mocks.NewMockTaskStore(),
		txRunner:  &mocks.NoopTxRunner{},
		hasher:    &mocks.MockPasswordHasher{},
	})
	require.NoError(t, err)
	return app
}
