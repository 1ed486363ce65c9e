package mocks

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tasknest/tasknest-api/internal/domain"
	"github.com/tasknest/tasknest-api/internal/store"
)

// MemoryTaskStore is an in-memory store.TaskStore. Tasks are held in a
// map keyed by id; all owner scoping behaves like the SQL
// implementation, including the silent no-op semantics for missing or
// unowned ids.
type MemoryTaskStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task

	// CreateErr, when set, is returned by every Create call. It lets
	// tests force a failed successor insert.
	CreateErr error
}

// NewMemoryTaskStore creates an empty MemoryTaskStore.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
}

// Seed inserts tasks directly, bypassing validation.
func (m *MemoryTaskStore) Seed(tasks ...*domain.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range tasks {
		copied := *t
		m.tasks[t.ID] = &copied
	}
}

// Get returns a copy of the task with the given id, if present.
func (m *MemoryTaskStore) Get(id uuid.UUID) (*domain.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, false
	}
	copied := *t
	return &copied, true
}

// Len returns the number of stored tasks across all owners.
func (m *MemoryTaskStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// ForOwner implements store.TaskStore.
func (m *MemoryTaskStore) ForOwner(owner uuid.UUID) store.OwnedTaskStore {
	return &memoryOwnedTaskStore{parent: m, owner: owner}
}

// WithTx implements store.TaskStore. The in-memory store has no
// transactions, so the same store is returned.
func (m *MemoryTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

type memoryOwnedTaskStore struct {
	parent *MemoryTaskStore
	owner  uuid.UUID
}

func (s *memoryOwnedTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()

	result := make([]*domain.Task, 0)
	for _, t := range s.parent.tasks {
		if t.UserID == s.owner {
			copied := *t
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *memoryOwnedTaskStore) Create(ctx context.Context, task *domain.Task) error {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()

	if s.parent.CreateErr != nil {
		return s.parent.CreateErr
	}
	if err := task.Validate(); err != nil {
		return err
	}
	copied := *task
	s.parent.tasks[task.ID] = &copied
	return nil
}

func (s *memoryOwnedTaskStore) SetDone(
	ctx context.Context,
	id uuid.UUID,
	done bool,
) (*domain.Task, bool, error) {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()

	t, ok := s.parent.tasks[id]
	if !ok || t.UserID != s.owner {
		return nil, false, store.ErrTaskNotFound
	}
	if t.Done == done {
		copied := *t
		return &copied, false, nil
	}
	t.Done = done
	t.UpdatedAt = time.Now().UTC()
	copied := *t
	return &copied, true, nil
}

func (s *memoryOwnedTaskStore) UpdateFields(
	ctx context.Context,
	id uuid.UUID,
	update store.TaskUpdate,
) (*domain.Task, error) {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()

	t, ok := s.parent.tasks[id]
	if !ok || t.UserID != s.owner {
		return nil, store.ErrTaskNotFound
	}
	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, domain.ErrTaskTitleEmpty
		}
		t.Title = *update.Title
	}
	if update.ClearDueDate {
		t.DueDate = nil
	} else if update.DueDate != nil {
		due := *update.DueDate
		t.DueDate = &due
	}
	if update.Recurrence != nil {
		if !domain.IsValidRecurrence(*update.Recurrence) {
			return nil, domain.ErrInvalidRecurrence
		}
		t.Recurrence = *update.Recurrence
	}
	t.UpdatedAt = time.Now().UTC()
	copied := *t
	return &copied, nil
}

func (s *memoryOwnedTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()

	t, ok := s.parent.tasks[id]
	if !ok || t.UserID != s.owner {
		return nil
	}
	delete(s.parent.tasks, t.ID)
	return nil
}

func (s *memoryOwnedTaskStore) DeleteAll(ctx context.Context) (int64, error) {
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()

	var removed int64
	for id, t := range s.parent.tasks {
		if t.UserID == s.owner {
			delete(s.parent.tasks, id)
			removed++
		}
	}
	return removed, nil
}
