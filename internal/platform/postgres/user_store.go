package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest-api/internal/domain"
	"github.com/tasknest/tasknest-api/internal/platform/logger"
	"github.com/tasknest/tasknest-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db         store.DBTX
	bcryptCost int
	logger     *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed
// by the caller, and the bcrypt cost used when hashing passwords on Create.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, bcryptCost int, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:         db,
		bcryptCost: bcryptCost,
		logger:     logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create.
// It hashes the user's plaintext password and saves the record,
// returning store.ErrEmailExists when the email is already registered.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	if user.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
		if err != nil {
			log.Error("failed to hash password",
				slog.String("error", err.Error()),
				slog.String("user_id", user.ID.String()))
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = string(hashed)
		user.Password = ""
	}

	query := `
		INSERT INTO users (id, email, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.HashedPassword,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate email during user creation",
				slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	log.Info("user created successfully", slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, email, hashed_password, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, MapError(err)
	}

	return user, nil
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, email, hashed_password, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found by email")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by email", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return user, nil
}

// Delete implements store.UserStore.Delete.
func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM users
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return MapError(err)
	}

	if rowsAffected == 0 {
		log.Debug("user not found for delete", slog.String("user_id", id.String()))
		return store.ErrUserNotFound
	}

	log.Info("user deleted", slog.String("user_id", id.String()))
	return nil
}

// WithTx implements store.UserStore.WithTx.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return NewPostgresUserStore(tx, s.bcryptCost, s.logger)
}

// scanUser scans one user row.
func (s *PostgresUserStore) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
