package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/api"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the application is assembled without a database.
	db     *sql.DB
	pinger api.Pinger

	userStore store.UserStore
	taskStore store.TaskStore

	tokenService   auth.TokenService
	accountService service.AccountService
	taskService    service.TaskService
}

// dependencies are the storage-facing parts of the application. Production
// wiring uses PostgreSQL; tests substitute in-memory implementations.
type dependencies struct {
	db        *sql.DB
	userStore store.UserStore
	taskStore store.TaskStore
	txRunner  store.TxRunner
	hasher    auth.PasswordHasher
}

// newApplication creates the application backed by db.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	return buildApplication(cfg, logger, dependencies{
		db:        db,
		userStore: postgres.NewPostgresUserStore(db, logger),
		taskStore: postgres.NewPostgresTaskStore(db, logger),
		txRunner:  store.NewDBTxRunner(db),
		hasher:    auth.NewBcryptHasher(cfg.Auth.BcryptCost),
	})
}

func buildApplication(cfg *config.Config, logger *slog.Logger, deps dependencies) (*application, error) {
	app := &application{
		config:    cfg,
		logger:    logger,
		db:        deps.db,
		userStore: deps.userStore,
		taskStore: deps.taskStore,
	}
	if deps.db != nil {
		app.pinger = deps.db
	}

	var err error
	app.tokenService, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("token service initialized",
		"access_token_lifetime_minutes", cfg.Auth.AccessTokenLifetimeMinutes,
		"refresh_token_lifetime_days", cfg.Auth.RefreshTokenLifetimeDays)

	app.accountService, err = service.NewAccountService(
		deps.userStore,
		deps.txRunner,
		deps.hasher,
		app.tokenService,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}

	app.taskService, err = service.NewTaskService(deps.taskStore, deps.txRunner, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		closeDatabase(app.db, app.logger)
	}
	app.logger.Info("application shutdown completed")
}
