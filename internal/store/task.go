package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest-api/internal/domain"
)

// TaskUpdate describes a partial update of a task. Nil pointer fields
// are left untouched. The due date carries an explicit clear signal:
// ClearDueDate removes the deadline, DueDate (when non-nil) replaces
// it, and with both unset the stored value is preserved.
type TaskUpdate struct {
	Title        *string
	DueDate      *time.Time
	ClearDueDate bool
	Recurrence   *domain.Recurrence
}

// IsZero reports whether the update would change nothing.
func (u TaskUpdate) IsZero() bool {
	return u.Title == nil && u.DueDate == nil && !u.ClearDueDate && u.Recurrence == nil
}

// TaskStore defines the interface for task data persistence.
//
// Task operations are only reachable through an owner-scoped handle:
// callers obtain an OwnedTaskStore bound to one user and every query
// behind it filters by (id, user_id), so no operation can observe or
// mutate another user's tasks.
type TaskStore interface {
	// ForOwner returns a handle whose operations are all scoped to the
	// given owner.
	ForOwner(userID uuid.UUID) OwnedTaskStore

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}

// OwnedTaskStore performs task operations on behalf of a single owner.
type OwnedTaskStore interface {
	// List retrieves all tasks belonging to the owner. Ordering is not
	// guaranteed by the store; presentation concerns sort client-side.
	List(ctx context.Context) ([]*domain.Task, error)

	// Create saves a new task. The task's UserID must match the handle's
	// owner. Returns validation errors if the task data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// SetDone updates only the done flag of the task with the given id.
	// It returns the task in its new state and whether the flag actually
	// transitioned. Setting a flag to its current value succeeds without
	// a transition. Returns ErrTaskNotFound if the owner has no such task.
	//
	// The transition check is atomic: two concurrent completions of the
	// same task observe at most one false->true transition between them.
	SetDone(ctx context.Context, id uuid.UUID, done bool) (*domain.Task, bool, error)

	// UpdateFields applies the given partial update to the task with the
	// given id and returns the updated task. Returns ErrTaskNotFound if
	// the owner has no such task, and a domain validation error if an
	// explicitly provided title is empty.
	UpdateFields(ctx context.Context, id uuid.UUID, update TaskUpdate) (*domain.Task, error)

	// Delete removes the task with the given id. Deleting a missing or
	// unowned id is a silent no-op.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAll removes every task belonging to the owner and returns the
	// number of removed tasks. Used by account deletion only.
	DeleteAll(ctx context.Context) (int64, error)
}
