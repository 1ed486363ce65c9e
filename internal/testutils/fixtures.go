package testutils

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tasknest/tasknest-api/internal/domain"
)

// TaskOption customizes a task fixture.
type TaskOption func(*domain.Task)

// WithDone sets the task's done flag.
func WithDone(done bool) TaskOption {
	return func(t *domain.Task) { t.Done = done }
}

// WithDueDate sets the task's due date.
func WithDueDate(due time.Time) TaskOption {
	return func(t *domain.Task) { t.DueDate = &due }
}

// WithRecurrence sets the task's recurrence rule.
func WithRecurrence(rule domain.Recurrence) TaskOption {
	return func(t *domain.Task) { t.Recurrence = rule }
}

// NewTask builds a valid task for the given owner and fails the test if
// construction does not succeed.
func NewTask(t *testing.T, owner uuid.UUID, title string, opts ...TaskOption) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(owner, title, nil, domain.RecurrenceNone)
	if err != nil {
		t.Fatalf("failed to build task fixture: %v", err)
	}
	for _, opt := range opts {
		opt(task)
	}
	return task
}

// NewUser builds a valid user and fails the test if construction does
// not succeed.
func NewUser(t *testing.T, email string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(email, "correct-horse-battery")
	if err != nil {
		t.Fatalf("failed to build user fixture: %v", err)
	}
	return user
}
