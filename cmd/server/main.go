// Package main implements the entry point for the tasks API server, which
// serves account registration, token authentication and per-user task
// management over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
)

// flagMigrate runs a single migration command and exits.
const flagMigrate = "migrate"

// errHelp is returned by run when --help was requested.
var errHelp = errors.New("help requested")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errHelp) {
			return
		}
		slog.Error("server exited with error", redact.ErrorAttr(err))
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	flags   *pflag.FlagSet
	migrate string
}

func parseFlags(args []string, out io.Writer) (*options, error) {
	flags := pflag.NewFlagSet("server", pflag.ContinueOnError)
	flags.SetOutput(out)
	config.RegisterFlags(flags)
	migrate := flags.String(flagMigrate, "", "run a migration command and exit: up, down, status or version")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, errHelp
		}
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if *migrate != "" && !isMigrationCommand(*migrate) {
		return nil, fmt.Errorf("unknown migration command %q", *migrate)
	}

	return &options{flags: flags, migrate: *migrate}, nil
}

// run loads configuration, connects to the database and either executes
// the requested migration command or serves HTTP until ctx is canceled.
func run(ctx context.Context, args []string, out io.Writer) error {
	opts, err := parseFlags(args, out)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.flags)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server, out)
	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"api_prefix", cfg.Server.APIPrefix,
		"auto_migrate", cfg.Database.AutoMigrate)

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	if opts.migrate != "" {
		defer closeDatabase(db, log)
		return runMigrations(ctx, db, opts.migrate, log)
	}

	if cfg.Database.AutoMigrate {
		if err := runMigrations(ctx, db, migrateUp, log); err != nil {
			closeDatabase(db, log)
			return err
		}
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		closeDatabase(db, log)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
