package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest-api/internal/platform/logger"
	"github.com/tasknest/tasknest-api/internal/store"
)

// AccountService handles account-level operations that span both the
// user record and everything the user owns.
type AccountService interface {
	// DeleteAccount removes every task belonging to the owner and then
	// the user record itself, atomically. Other users' tasks are
	// untouched; the per-statement user_id filters guarantee that even
	// inside the transaction.
	DeleteAccount(ctx context.Context, owner uuid.UUID) error
}

// accountServiceImpl implements the AccountService interface.
type accountServiceImpl struct {
	db        *sql.DB
	taskStore store.TaskStore
	userStore store.UserStore
	logger    *slog.Logger
}

// NewAccountService creates a new AccountService.
// It returns an error if any of the required dependencies are nil.
func NewAccountService(
	db *sql.DB,
	taskStore store.TaskStore,
	userStore store.UserStore,
	logger *slog.Logger,
) (AccountService, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if taskStore == nil {
		return nil, fmt.Errorf("task store cannot be nil")
	}
	if userStore == nil {
		return nil, fmt.Errorf("user store cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &accountServiceImpl{
		db:        db,
		taskStore: taskStore,
		userStore: userStore,
		logger:    logger.With(slog.String("component", "account_service")),
	}, nil
}

// DeleteAccount implements AccountService.DeleteAccount.
func (s *accountServiceImpl) DeleteAccount(ctx context.Context, owner uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		removed, err := s.taskStore.WithTx(tx).ForOwner(owner).DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete tasks: %w", err)
		}

		if err := s.userStore.WithTx(tx).Delete(ctx, owner); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}

		log.Info("account deleted",
			slog.String("user_id", owner.String()),
			slog.Int64("tasks_removed", removed))
		return nil
	})
	if err != nil {
		log.Error("account deletion failed",
			slog.String("error", err.Error()),
			slog.String("user_id", owner.String()))
		return err
	}

	return nil
}
