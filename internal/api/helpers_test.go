package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-at-least-32-characters"

var testLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// testClock is a settable clock shared by token issuance and verification.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type apiFixture struct {
	users  *mocks.MockUserStore
	tasks  *mocks.MockTaskStore
	clock  *testClock
	server *httptest.Server
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	f := &apiFixture{
		users: mocks.NewMockUserStore(),
		tasks: mocks.NewMockTaskStore(),
		clock: &testClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)},
	}

	tokens, err := auth.NewTokenServiceWithClock(config.AuthConfig{
		JWTSecret:                  testSecret,
		AccessTokenLifetimeMinutes: 30,
		RefreshTokenLifetimeDays:   7,
		BcryptCost:                 4,
	}, f.clock.Now)
	require.NoError(t, err)

	tx := &mocks.NoopTxRunner{}
	accounts, err := service.NewAccountService(f.users, tx, &mocks.MockPasswordHasher{}, tokens, testLogger)
	require.NoError(t, err)
	taskService, err := service.NewTaskService(f.tasks, tx, testLogger)
	require.NoError(t, err)

	authHandler := NewAuthHandler(accounts, testLogger)
	taskHandler := NewTaskHandler(taskService, testLogger)
	authMiddleware := middleware.NewAuthMiddleware(tokens, f.users)

	r := chi.NewRouter()
	r.Use(middleware.NewTraceMiddleware(testLogger))
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)
	r.Post("/auth/refresh", authHandler.Refresh)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/auth/me", authHandler.Me)
		r.Post("/tasks", taskHandler.CreateTask)
		r.Get("/tasks", taskHandler.ListTasks)
		r.Get("/tasks/{id}", taskHandler.GetTask)
		r.Patch("/tasks/{id}", taskHandler.UpdateTask)
		r.Delete("/tasks/{id}", taskHandler.DeleteTask)
	})

	f.server = httptest.NewServer(r)
	t.Cleanup(f.server.Close)
	return f
}

// do sends a request with an optional JSON body and bearer token.
func (f *apiFixture) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, f.server.URL+path, reader)
	require.NoError(t, err)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// register creates an account and returns its access token pair.
func (f *apiFixture) register(t *testing.T, email, password string) TokenResponse {
	t.Helper()

	resp := f.do(t, http.MethodPost, "/auth/register", "", RegisterRequest{Email: email, Password: password})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/auth/login", "", LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tokens TokenResponse
	decodeBody(t, resp, &tokens)
	return tokens
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	msg, _ := body["error"].(string)
	return msg
}
