package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest-api/internal/domain"
	"github.com/tasknest/tasknest-api/internal/mocks"
	"github.com/tasknest/tasknest-api/internal/store"
	"github.com/tasknest/tasknest-api/internal/testutils"
)

func newTestTaskService(t *testing.T, taskStore *mocks.MemoryTaskStore) TaskService {
	t.Helper()

	svc, err := NewTaskService(taskStore, slog.New(testutils.NewCaptureHandler()))
	require.NoError(t, err)
	return svc
}

func TestNewTaskServiceValidation(t *testing.T) {
	logger := slog.New(testutils.NewCaptureHandler())

	_, err := NewTaskService(nil, logger)
	assert.Error(t, err)

	_, err = NewTaskService(mocks.NewMemoryTaskStore(), nil)
	assert.Error(t, err)
}

func TestTaskServiceList(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	taskStore := mocks.NewMemoryTaskStore()
	taskStore.Seed(
		testutils.NewTask(t, owner, "mine"),
		testutils.NewTask(t, other, "not mine"),
	)
	svc := newTestTaskService(t, taskStore)

	tasks, err := svc.List(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "mine", tasks[0].Title)
}

func TestTaskServiceListEmpty(t *testing.T) {
	svc := newTestTaskService(t, mocks.NewMemoryTaskStore())

	tasks, err := svc.List(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestTaskServiceCreate(t *testing.T) {
	owner := uuid.New()
	taskStore := mocks.NewMemoryTaskStore()
	svc := newTestTaskService(t, taskStore)

	due := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	task, err := svc.Create(context.Background(), owner, "pay rent", &due, domain.RecurrenceMonthly)
	require.NoError(t, err)

	assert.Equal(t, owner, task.UserID)
	assert.False(t, task.Done)

	stored, ok := taskStore.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, "pay rent", stored.Title)
}

func TestTaskServiceCreateRejectsEmptyTitle(t *testing.T) {
	svc := newTestTaskService(t, mocks.NewMemoryTaskStore())

	_, err := svc.Create(context.Background(), uuid.New(), "  ", nil, domain.RecurrenceNone)
	assert.ErrorIs(t, err, domain.ErrTaskTitleEmpty)
}

func TestTaskServiceSetDoneMissingTask(t *testing.T) {
	svc := newTestTaskService(t, mocks.NewMemoryTaskStore())

	result, err := svc.SetDone(context.Background(), uuid.New(), uuid.New(), true)
	require.NoError(t, err)
	assert.Nil(t, result.Task)
	assert.Nil(t, result.Successor)
}

func TestTaskServiceSetDoneOtherOwnersTask(t *testing.T) {
	owner := uuid.New()
	intruder := uuid.New()
	taskStore := mocks.NewMemoryTaskStore()
	task := testutils.NewTask(t, owner, "private")
	taskStore.Seed(task)
	svc := newTestTaskService(t, taskStore)

	result, err := svc.SetDone(context.Background(), intruder, task.ID, true)
	require.NoError(t, err)
	assert.Nil(t, result.Task)

	stored, ok := taskStore.Get(task.ID)
	require.True(t, ok)
	assert.False(t, stored.Done)
}

func TestTaskServiceSetDoneSpawnsSuccessor(t *testing.T) {
	owner := uuid.New()
	due := time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC)
	taskStore := mocks.NewMemoryTaskStore()
	task := testutils.NewTask(t, owner, "backup the database",
		testutils.WithDueDate(due),
		testutils.WithRecurrence(domain.RecurrenceDaily))
	taskStore.Seed(task)
	svc := newTestTaskService(t, taskStore)

	result, err := svc.SetDone(context.Background(), owner, task.ID, true)
	require.NoError(t, err)

	require.NotNil(t, result.Task)
	assert.True(t, result.Task.Done)

	require.NotNil(t, result.Successor)
	assert.NotEqual(t, task.ID, result.Successor.ID)
	assert.False(t, result.Successor.Done)
	assert.Equal(t, "backup the database", result.Successor.Title)
	assert.Equal(t, domain.RecurrenceDaily, result.Successor.Recurrence)

	wantDue := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	require.NotNil(t, result.Successor.DueDate)
	assert.True(t, result.Successor.DueDate.Equal(wantDue),
		"expected due %v, got %v", wantDue, result.Successor.DueDate)

	assert.Equal(t, 2, taskStore.Len())
}

func TestTaskServiceSetDoneIdempotent(t *testing.T) {
	owner := uuid.New()
	taskStore := mocks.NewMemoryTaskStore()
	task := testutils.NewTask(t, owner, "water the ferns",
		testutils.WithRecurrence(domain.RecurrenceWeekly))
	taskStore.Seed(task)
	svc := newTestTaskService(t, taskStore)

	first, err := svc.SetDone(context.Background(), owner, task.ID, true)
	require.NoError(t, err)
	require.NotNil(t, first.Successor)
	assert.Equal(t, 2, taskStore.Len())

	// Completing an already-done task again must not spawn a second
	// occurrence.
	second, err := svc.SetDone(context.Background(), owner, task.ID, true)
	require.NoError(t, err)
	require.NotNil(t, second.Task)
	assert.True(t, second.Task.Done)
	assert.Nil(t, second.Successor)
	assert.Equal(t, 2, taskStore.Len())
}

func TestTaskServiceSetDoneNonRecurring(t *testing.T) {
	owner := uuid.New()
	taskStore := mocks.NewMemoryTaskStore()
	task := testutils.NewTask(t, owner, "one-off errand")
	taskStore.Seed(task)
	svc := newTestTaskService(t, taskStore)

	result, err := svc.SetDone(context.Background(), owner, task.ID, true)
	require.NoError(t, err)
	require.NotNil(t, result.Task)
	assert.Nil(t, result.Successor)
	assert.Equal(t, 1, taskStore.Len())
}

func TestTaskServiceSetDoneUncompleteNeverSpawns(t *testing.T) {
	owner := uuid.New()
	taskStore := mocks.NewMemoryTaskStore()
	task := testutils.NewTask(t, owner, "daily standup",
		testutils.WithDone(true),
		testutils.WithRecurrence(domain.RecurrenceDaily))
	taskStore.Seed(task)
	svc := newTestTaskService(t, taskStore)

	result, err := svc.SetDone(context.Background(), owner, task.ID, false)
	require.NoError(t, err)
	require.NotNil(t, result.Task)
	assert.False(t, result.Task.Done)
	assert.Nil(t, result.Successor)
	assert.Equal(t, 1, taskStore.Len())
}

func TestTaskServiceSetDoneSpawnFailureKeepsCompletion(t *testing.T) {
	owner := uuid.New()
	taskStore := mocks.NewMemoryTaskStore()
	task := testutils.NewTask(t, owner, "rotate the logs",
		testutils.WithRecurrence(domain.RecurrenceDaily))
	taskStore.Seed(task)

	handler := testutils.NewCaptureHandler()
	svc, err := NewTaskService(taskStore, slog.New(handler))
	require.NoError(t, err)

	taskStore.CreateErr = errors.New("insert failed")

	result, err := svc.SetDone(context.Background(), owner, task.ID, true)
	require.NoError(t, err)
	require.NotNil(t, result.Task)
	assert.True(t, result.Task.Done)
	assert.Nil(t, result.Successor)

	stored, ok := taskStore.Get(task.ID)
	require.True(t, ok)
	assert.True(t, stored.Done)
	assert.Equal(t, 1, taskStore.Len())

	assert.True(t, handler.HasMessage("failed to insert successor occurrence"))
}

func TestTaskServiceUpdateFields(t *testing.T) {
	owner := uuid.New()
	taskStore := mocks.NewMemoryTaskStore()
	due := time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC)
	task := testutils.NewTask(t, owner, "old title", testutils.WithDueDate(due))
	taskStore.Seed(task)
	svc := newTestTaskService(t, taskStore)

	newTitle := "new title"
	updated, err := svc.UpdateFields(context.Background(), owner, task.ID,
		store.TaskUpdate{Title: &newTitle, ClearDueDate: true})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "new title", updated.Title)
	assert.Nil(t, updated.DueDate)
}

func TestTaskServiceUpdateFieldsMissingTask(t *testing.T) {
	svc := newTestTaskService(t, mocks.NewMemoryTaskStore())

	title := "anything"
	updated, err := svc.UpdateFields(context.Background(), uuid.New(), uuid.New(),
		store.TaskUpdate{Title: &title})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestTaskServiceDelete(t *testing.T) {
	owner := uuid.New()
	taskStore := mocks.NewMemoryTaskStore()
	task := testutils.NewTask(t, owner, "throwaway")
	taskStore.Seed(task)
	svc := newTestTaskService(t, taskStore)

	require.NoError(t, svc.Delete(context.Background(), owner, task.ID))
	assert.Equal(t, 0, taskStore.Len())

	// Deleting again is a silent no-op.
	require.NoError(t, svc.Delete(context.Background(), owner, task.ID))
}
