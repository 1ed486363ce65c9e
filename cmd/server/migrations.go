package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/tasknest/tasknest-api/internal/config"
)

// migrationsDir is the on-disk location of the goose SQL migrations,
// relative to the working directory the server is launched from.
const migrationsDir = "migrations"

// slogGooseLogger adapts goose's logger interface to slog.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

// runMigrations executes the given goose command against the configured
// database and returns once it completes.
func runMigrations(cfg *config.Config, command string) error {
	goose.SetLogger(&slogGooseLogger{})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database connection", "error", closeErr)
		}
	}()

	slog.Info("running migration command", "command", command, "dir", migrationsDir)

	switch command {
	case "up":
		err = goose.Up(db, migrationsDir)
	case "down":
		err = goose.Down(db, migrationsDir)
	case "reset":
		err = goose.Reset(db, migrationsDir)
	case "status":
		err = goose.Status(db, migrationsDir)
	case "version":
		err = goose.Version(db, migrationsDir)
	default:
		return fmt.Errorf(
			"unknown migration command %q (valid: up, down, reset, status, version)", command)
	}
	if err != nil {
		return fmt.Errorf("migration command %q failed: %w", command, err)
	}

	return nil
}
