// Package main implements the entry point for the task-tracking API
// server: per-user to-do lists with due dates and recurring tasks.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/tasknest/tasknest-api/internal/config"
	"github.com/tasknest/tasknest-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status, version, reset) and exit")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// run loads configuration, wires the application together, and either
// executes a migration command or serves HTTP until shutdown.
func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	if migrateCmd != "" {
		return runMigrations(cfg, migrateCmd)
	}

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		// The connection outlives newApplication only on success.
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("failed to close database connection", "error", closeErr)
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := app.Run(ctx); err != nil {
		return err
	}

	return nil
}
