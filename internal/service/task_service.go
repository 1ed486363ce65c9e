package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest-api/internal/domain"
	"github.com/tasknest/tasknest-api/internal/domain/recurrence"
	"github.com/tasknest/tasknest-api/internal/platform/logger"
	"github.com/tasknest/tasknest-api/internal/platform/metrics"
	"github.com/tasknest/tasknest-api/internal/store"
)

// SetDoneResult is what a toggle operation produced. Task is nil when
// the owner has no task with the requested id (the filtered-update
// no-op). Successor is non-nil only when a false->true transition on a
// recurring task spawned the next occurrence.
type SetDoneResult struct {
	Task      *domain.Task
	Successor *domain.Task
}

// TaskService provides the task operations behind the HTTP surface.
//
// Missing or unowned ids are silent no-ops: mutations return a nil task
// rather than an error, mirroring the store's filtered-update
// semantics. Callers that need a strict existence check inspect the
// returned record.
type TaskService interface {
	// List returns all tasks belonging to the owner.
	List(ctx context.Context, owner uuid.UUID) ([]*domain.Task, error)

	// Create validates and persists a new task for the owner.
	Create(ctx context.Context, owner uuid.UUID, title string, dueDate *time.Time, recurrence domain.Recurrence) (*domain.Task, error)

	// SetDone updates the done flag of the owner's task and, when the
	// flag transitions to done on a recurring task, inserts the next
	// occurrence. A failed successor insert is logged and surfaced via
	// metrics but never fails or rolls back the completion.
	SetDone(ctx context.Context, owner uuid.UUID, id uuid.UUID, done bool) (SetDoneResult, error)

	// UpdateFields applies a partial update to the owner's task.
	UpdateFields(ctx context.Context, owner uuid.UUID, id uuid.UUID, update store.TaskUpdate) (*domain.Task, error)

	// Delete removes the owner's task; missing ids are a no-op.
	Delete(ctx context.Context, owner uuid.UUID, id uuid.UUID) error
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
	timeFunc  func() time.Time // Injectable for testing
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, fmt.Errorf("task store cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_service")),
		timeFunc:  time.Now,
	}, nil
}

// List implements TaskService.List.
func (s *taskServiceImpl) List(ctx context.Context, owner uuid.UUID) ([]*domain.Task, error) {
	return s.taskStore.ForOwner(owner).List(ctx)
}

// Create implements TaskService.Create.
func (s *taskServiceImpl) Create(
	ctx context.Context,
	owner uuid.UUID,
	title string,
	dueDate *time.Time,
	rule domain.Recurrence,
) (*domain.Task, error) {
	task, err := domain.NewTask(owner, title, dueDate, rule)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.ForOwner(owner).Create(ctx, task); err != nil {
		return nil, err
	}

	metrics.TasksCreated.WithLabelValues("user").Inc()
	return task, nil
}

// SetDone implements TaskService.SetDone.
func (s *taskServiceImpl) SetDone(
	ctx context.Context,
	owner uuid.UUID,
	id uuid.UUID,
	done bool,
) (SetDoneResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	scoped := s.taskStore.ForOwner(owner)

	task, transitioned, err := scoped.SetDone(ctx, id, done)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return SetDoneResult{}, nil
		}
		return SetDoneResult{}, err
	}

	// The spawn is gated on the transition, not the done state: setting
	// an already-done task to done again must not produce a second
	// successor.
	if !transitioned || !done {
		return SetDoneResult{Task: task}, nil
	}

	metrics.TasksCompleted.Inc()

	if task.Recurrence == domain.RecurrenceNone {
		return SetDoneResult{Task: task}, nil
	}

	successor, err := recurrence.NextOccurrence(task, s.timeFunc())
	if err != nil {
		// Completion stands; the missing occurrence is reconciled out of band.
		log.Error("failed to build successor occurrence",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		metrics.RecurrenceSpawnFailures.Inc()
		return SetDoneResult{Task: task}, nil
	}
	if successor == nil {
		return SetDoneResult{Task: task}, nil
	}

	if err := scoped.Create(ctx, successor); err != nil {
		log.Error("failed to insert successor occurrence",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("successor_id", successor.ID.String()))
		metrics.RecurrenceSpawnFailures.Inc()
		return SetDoneResult{Task: task}, nil
	}

	metrics.TasksCreated.WithLabelValues("recurrence").Inc()
	log.Info("spawned successor occurrence",
		slog.String("task_id", task.ID.String()),
		slog.String("successor_id", successor.ID.String()),
		slog.String("recurrence", string(task.Recurrence)),
		slog.Time("next_due", *successor.DueDate))

	return SetDoneResult{Task: task, Successor: successor}, nil
}

// UpdateFields implements TaskService.UpdateFields.
func (s *taskServiceImpl) UpdateFields(
	ctx context.Context,
	owner uuid.UUID,
	id uuid.UUID,
	update store.TaskUpdate,
) (*domain.Task, error) {
	task, err := s.taskStore.ForOwner(owner).UpdateFields(ctx, id, update)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

// Delete implements TaskService.Delete.
func (s *taskServiceImpl) Delete(ctx context.Context, owner uuid.UUID, id uuid.UUID) error {
	return s.taskStore.ForOwner(owner).Delete(ctx, id)
}
