//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tasknest/tasknest-api/internal/domain"
	"github.com/tasknest/tasknest-api/internal/store"
)

// testDBEnvVar names the connection string for the integration database.
// Tests are skipped when it is unset.
const testDBEnvVar = "TASKNEST_TEST_DB_URL"

const migrationsPath = "../../../migrations"

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv(testDBEnvVar)
	if url == "" {
		t.Skipf("set %s to run integration tests", testDBEnvVar)
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(db, migrationsPath))
	return db
}

// withRollback runs the test body inside a transaction that is always
// rolled back, keeping the database clean between tests.
func withRollback(
	t *testing.T,
	db *sql.DB,
	fn func(taskStore store.TaskStore, userStore store.UserStore),
) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	logger := slog.Default()
	taskStore := NewPostgresTaskStore(db, logger).WithTx(tx)
	userStore := NewPostgresUserStore(db, bcrypt.MinCost, logger).WithTx(tx)
	fn(taskStore, userStore)
}

func createTestUser(t *testing.T, userStore store.UserStore) *domain.User {
	t.Helper()

	user, err := domain.NewUser(uuid.New().String()[:8]+"@example.com", "a-long-enough-password")
	require.NoError(t, err)
	require.NoError(t, userStore.Create(context.Background(), user))
	return user
}

func TestTaskStoreCRUD(t *testing.T) {
	db := openTestDB(t)

	withRollback(t, db, func(taskStore store.TaskStore, userStore store.UserStore) {
		ctx := context.Background()
		user := createTestUser(t, userStore)
		scoped := taskStore.ForOwner(user.ID)

		due := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
		task, err := domain.NewTask(user.ID, "integration chore", &due, domain.RecurrenceWeekly)
		require.NoError(t, err)
		require.NoError(t, scoped.Create(ctx, task))

		tasks, err := scoped.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "integration chore", tasks[0].Title)
		require.NotNil(t, tasks[0].DueDate)
		assert.True(t, tasks[0].DueDate.Equal(due))

		// Toggle with transition detection.
		updated, transitioned, err := scoped.SetDone(ctx, task.ID, true)
		require.NoError(t, err)
		assert.True(t, transitioned)
		assert.True(t, updated.Done)

		// Same state again: no transition.
		updated, transitioned, err = scoped.SetDone(ctx, task.ID, true)
		require.NoError(t, err)
		assert.False(t, transitioned)
		assert.True(t, updated.Done)

		// Partial update clearing the due date.
		newTitle := "renamed chore"
		patched, err := scoped.UpdateFields(ctx, task.ID, store.TaskUpdate{
			Title:        &newTitle,
			ClearDueDate: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "renamed chore", patched.Title)
		assert.Nil(t, patched.DueDate)

		// Delete is a silent no-op the second time.
		require.NoError(t, scoped.Delete(ctx, task.ID))
		require.NoError(t, scoped.Delete(ctx, task.ID))

		tasks, err = scoped.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})
}

func TestTaskStoreOwnerIsolation(t *testing.T) {
	db := openTestDB(t)

	withRollback(t, db, func(taskStore store.TaskStore, userStore store.UserStore) {
		ctx := context.Background()
		alice := createTestUser(t, userStore)
		mallory := createTestUser(t, userStore)

		task, err := domain.NewTask(alice.ID, "alice's task", nil, domain.RecurrenceNone)
		require.NoError(t, err)
		require.NoError(t, taskStore.ForOwner(alice.ID).Create(ctx, task))

		malloryScoped := taskStore.ForOwner(mallory.ID)

		tasks, err := malloryScoped.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, tasks)

		_, _, err = malloryScoped.SetDone(ctx, task.ID, true)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		_, err = malloryScoped.UpdateFields(ctx, task.ID, store.TaskUpdate{ClearDueDate: true})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		require.NoError(t, malloryScoped.Delete(ctx, task.ID))

		remaining, err := taskStore.ForOwner(alice.ID).List(ctx)
		require.NoError(t, err)
		assert.Len(t, remaining, 1)
	})
}

func TestUserStoreDuplicateEmail(t *testing.T) {
	db := openTestDB(t)

	withRollback(t, db, func(taskStore store.TaskStore, userStore store.UserStore) {
		ctx := context.Background()
		user := createTestUser(t, userStore)

		dup, err := domain.NewUser(user.Email, "a-long-enough-password")
		require.NoError(t, err)

		err = userStore.Create(ctx, dup)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})
}

func TestUserStoreHashesPassword(t *testing.T) {
	db := openTestDB(t)

	withRollback(t, db, func(taskStore store.TaskStore, userStore store.UserStore) {
		ctx := context.Background()
		user, err := domain.NewUser("hash-check@example.com", "a-long-enough-password")
		require.NoError(t, err)
		require.NoError(t, userStore.Create(ctx, user))

		stored, err := userStore.GetByEmail(ctx, "hash-check@example.com")
		require.NoError(t, err)

		assert.Empty(t, stored.Password)
		assert.NotEqual(t, "a-long-enough-password", stored.HashedPassword)
		assert.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(stored.HashedPassword), []byte("a-long-enough-password")))
	})
}

func TestDeleteAllForOwner(t *testing.T) {
	db := openTestDB(t)

	withRollback(t, db, func(taskStore store.TaskStore, userStore store.UserStore) {
		ctx := context.Background()
		user := createTestUser(t, userStore)
		other := createTestUser(t, userStore)
		scoped := taskStore.ForOwner(user.ID)

		for _, title := range []string{"one", "two", "three"} {
			task, err := domain.NewTask(user.ID, title, nil, domain.RecurrenceNone)
			require.NoError(t, err)
			require.NoError(t, scoped.Create(ctx, task))
		}
		otherTask, err := domain.NewTask(other.ID, "untouched", nil, domain.RecurrenceNone)
		require.NoError(t, err)
		require.NoError(t, taskStore.ForOwner(other.ID).Create(ctx, otherTask))

		removed, err := scoped.DeleteAll(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 3, removed)

		otherTasks, err := taskStore.ForOwner(other.ID).List(ctx)
		require.NoError(t, err)
		assert.Len(t, otherTasks, 1)
	})
}
