package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest-api/internal/domain"
	"github.com/tasknest/tasknest-api/internal/platform/logger"
	"github.com/tasknest/tasknest-api/internal/store"
)

// taskColumns is the column list shared by every task query so scans
// stay consistent across operations.
const taskColumns = "id, user_id, title, done, due_date, recurrence, created_at, updated_at"

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// ForOwner implements store.TaskStore.ForOwner.
// The returned handle appends a user_id filter to every query it runs,
// which is what keeps one user's operations from reaching another's tasks.
func (s *PostgresTaskStore) ForOwner(userID uuid.UUID) store.OwnedTaskStore {
	return &ownedTaskStore{
		db:     s.db,
		userID: userID,
		logger: s.logger.With(slog.String("user_id", userID.String())),
	}
}

// WithTx implements store.TaskStore.WithTx.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return NewPostgresTaskStore(tx, s.logger)
}

// ownedTaskStore is the owner-scoped handle returned by ForOwner.
type ownedTaskStore struct {
	db     store.DBTX
	userID uuid.UUID
	logger *slog.Logger
}

// Ensure ownedTaskStore implements store.OwnedTaskStore interface
var _ store.OwnedTaskStore = (*ownedTaskStore)(nil)

// scanTask scans one task row from the shared column list.
func scanTask(row interface{ Scan(dest ...any) error }) (*domain.Task, error) {
	var task domain.Task
	var dueDate sql.NullTime
	var recurrence string

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Done,
		&dueDate,
		&recurrence,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		t := dueDate.Time
		task.DueDate = &t
	}
	task.Recurrence = domain.Recurrence(recurrence)

	return &task, nil
}

// List implements store.OwnedTaskStore.List.
func (s *ownedTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1
	`

	rows, err := s.db.QueryContext(ctx, query, s.userID)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	// Return empty slice instead of nil if no tasks found
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Create implements store.OwnedTaskStore.Create.
// It saves a new task to the database, handling domain validation.
func (s *ownedTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if task.UserID != s.userID {
		return fmt.Errorf("%w: task owner does not match scoped handle", store.ErrInvalidEntity)
	}

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.UserID,
		task.Title,
		task.Done,
		task.DueDate,
		task.Recurrence,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("recurrence", string(task.Recurrence)))
	return nil
}

// SetDone implements store.OwnedTaskStore.SetDone.
// The conditional `done <> $n` update makes the transition check atomic:
// of two concurrent toggles to the same value, only one sees a row
// affected, so a recurring task's completion can spawn at most one
// successor.
func (s *ownedTaskStore) SetDone(ctx context.Context, id uuid.UUID, done bool) (*domain.Task, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET done = $3, updated_at = $4
		WHERE id = $1 AND user_id = $2 AND done <> $3
		RETURNING ` + taskColumns + `
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id, s.userID, done, time.Now().UTC()))
	if err == nil {
		log.Info("task done flag updated",
			slog.String("task_id", id.String()),
			slog.Bool("done", done))
		return task, true, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		log.Error("failed to update done flag",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, false, MapError(err)
	}

	// Either the task is already in the requested state or the owner has
	// no such task; a plain read distinguishes the two.
	selectQuery := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`
	task, err = scanTask(s.db.QueryRowContext(ctx, selectQuery, id, s.userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for done update", slog.String("task_id", id.String()))
			return nil, false, store.ErrTaskNotFound
		}
		log.Error("failed to read task after done update",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, false, MapError(err)
	}

	log.Debug("done flag already in requested state",
		slog.String("task_id", id.String()),
		slog.Bool("done", done))
	return task, false, nil
}

// UpdateFields implements store.OwnedTaskStore.UpdateFields.
// Only explicitly provided fields are touched; the update's ClearDueDate
// flag distinguishes "remove the deadline" from "leave it alone".
func (s *ownedTaskStore) UpdateFields(ctx context.Context, id uuid.UUID, update store.TaskUpdate) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var setClauses []string
	var args []any

	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			log.Warn("task validation failed during update",
				slog.String("error", domain.ErrTaskTitleEmpty.Error()),
				slog.String("task_id", id.String()))
			return nil, domain.ErrTaskTitleEmpty
		}
		args = append(args, *update.Title)
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", len(args)))
	}

	if update.ClearDueDate {
		setClauses = append(setClauses, "due_date = NULL")
	} else if update.DueDate != nil {
		args = append(args, *update.DueDate)
		setClauses = append(setClauses, fmt.Sprintf("due_date = $%d", len(args)))
	}

	if update.Recurrence != nil {
		if !domain.IsValidRecurrence(*update.Recurrence) {
			log.Warn("task validation failed during update",
				slog.String("error", domain.ErrInvalidRecurrence.Error()),
				slog.String("task_id", id.String()))
			return nil, domain.ErrInvalidRecurrence
		}
		args = append(args, *update.Recurrence)
		setClauses = append(setClauses, fmt.Sprintf("recurrence = $%d", len(args)))
	}

	args = append(args, time.Now().UTC())
	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", len(args)))

	args = append(args, id)
	idPos := len(args)
	args = append(args, s.userID)
	userPos := len(args)

	query := fmt.Sprintf(`
		UPDATE tasks
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING `+taskColumns+`
	`, strings.Join(setClauses, ", "), idPos, userPos)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for field update", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task fields",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	log.Info("task fields updated", slog.String("task_id", id.String()))
	return task, nil
}

// Delete implements store.OwnedTaskStore.Delete.
// Deleting a missing or unowned id is a silent no-op.
func (s *ownedTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM tasks
		WHERE id = $1 AND user_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, id, s.userID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	if rowsAffected == 0 {
		log.Debug("task not found for delete", slog.String("task_id", id.String()))
		return nil
	}

	log.Info("task deleted", slog.String("task_id", id.String()))
	return nil
}

// DeleteAll implements store.OwnedTaskStore.DeleteAll.
func (s *ownedTaskStore) DeleteAll(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM tasks
		WHERE user_id = $1
	`

	result, err := s.db.ExecContext(ctx, query, s.userID)
	if err != nil {
		log.Error("failed to delete tasks for owner", slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected", slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	log.Info("deleted all tasks for owner", slog.Int64("count", rowsAffected))
	return rowsAffected, nil
}
