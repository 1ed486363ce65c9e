package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/tasknest/tasknest-api/internal/domain"
	"github.com/tasknest/tasknest-api/internal/store"
)

// MemoryUserStore is an in-memory store.UserStore. Passwords are kept
// as provided; tests that need verification pair it with a stub
// PasswordVerifier.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User

	// CreateErr, when set, is returned by every Create call.
	CreateErr error
}

// NewMemoryUserStore creates an empty MemoryUserStore.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[uuid.UUID]*domain.User)}
}

// Seed inserts users directly, bypassing validation and hashing.
func (m *MemoryUserStore) Seed(users ...*domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range users {
		copied := *u
		m.users[u.ID] = &copied
	}
}

// Create implements store.UserStore. The plaintext password is copied
// into HashedPassword verbatim so stub verifiers can compare directly.
func (m *MemoryUserStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateErr != nil {
		return m.CreateErr
	}
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	user.HashedPassword = user.Password
	user.Password = ""
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

// GetByID implements store.UserStore.
func (m *MemoryUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

// GetByEmail implements store.UserStore.
func (m *MemoryUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// Delete implements store.UserStore.
func (m *MemoryUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

// WithTx implements store.UserStore. The in-memory store has no
// transactions, so the same store is returned.
func (m *MemoryUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
