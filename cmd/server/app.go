package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/tasknest/tasknest-api/internal/config"
	"github.com/tasknest/tasknest-api/internal/platform/postgres"
	"github.com/tasknest/tasknest-api/internal/service"
	"github.com/tasknest/tasknest-api/internal/service/auth"
	"github.com/tasknest/tasknest-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore store.UserStore
	taskStore store.TaskStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	taskService      service.TaskService
	accountService   service.AccountService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, bcrypt.DefaultCost, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	app.taskService, err = service.NewTaskService(app.taskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.accountService, err = service.NewAccountService(db, app.taskStore, app.userStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
