package todo

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	domain "github.com/example/todo-tracker/domain/todo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestStore opens a Test-environment store in a temporary directory.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), Options{Env: EnvTest, Dir: t.TempDir()})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func newTask(title string, createdAt int64) domain.Task {
	return domain.New(uuid.New().String(), title, false, createdAt, createdAt)
}

func ids(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	return out
}

func TestOpen_CreatesStoreFileAndSchema(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := Open(context.Background(), Options{Env: EnvTest, Dir: dir})
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "todos_test.db"), store.Path())
	assert.FileExists(t, store.Path())
	assert.True(t, store.db.Migrator().HasTable("todos"))

	type column struct {
		Name string
		Type string
		Pk   int
	}
	var columns []column
	err = store.db.Raw("SELECT name, type, pk FROM pragma_table_info('todos') ORDER BY cid").Scan(&columns).Error
	require.NoError(t, err)
	require.Len(t, columns, 5)

	want := []column{
		{Name: "id", Type: "TEXT", Pk: 1},
		{Name: "title", Type: "TEXT"},
		{Name: "is_completed", Type: "INTEGER"},
		{Name: "created_at", Type: "INTEGER"},
		{Name: "updated_at", Type: "INTEGER"},
	}
	for i, c := range columns {
		assert.Equal(t, want[i].Name, c.Name)
		assert.Equal(t, want[i].Type, strings.ToUpper(c.Type))
		assert.Equal(t, want[i].Pk, c.Pk, "pk flag for %s", c.Name)
	}
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := Open(ctx, Options{Env: EnvTest, Dir: dir})
	require.NoError(t, err)
	task := newTask("persist me", 42)
	require.NoError(t, first.Insert(ctx, task))
	require.NoError(t, first.Close())

	second, err := Open(ctx, Options{Env: EnvTest, Dir: dir})
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, got)
}

func TestOpen_StorageUnavailable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o644))

	_, err := Open(context.Background(), Options{Env: EnvTest, Dir: blocker})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "open", storeErr.Op)
}

func TestOpen_LocationIsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(EnvTest.Location(dir), 0o755))

	_, err := Open(context.Background(), Options{Env: EnvTest, Dir: dir})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestStore_InsertGetRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	tests := []domain.Task{
		domain.New(uuid.New().String(), "plain", false, 1700000000000, 1700000000000),
		domain.New(uuid.New().String(), "done already", true, 1, 2),
		domain.New(uuid.New().String(), "unicode ✓ naïve", false, 0, 0),
		domain.New(uuid.New().String(), "", false, 5, 5),
	}

	for _, task := range tests {
		t.Run(task.Title, func(t *testing.T) {
			require.NoError(t, store.Insert(ctx, task))
			got, err := store.Get(ctx, task.ID)
			require.NoError(t, err)
			assert.Equal(t, task, got)
		})
	}
}

func TestStore_InsertDuplicate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	original := newTask("original", 100)
	require.NoError(t, store.Insert(ctx, original))

	dup := domain.New(original.ID, "impostor", true, 999, 999)
	err := store.Insert(ctx, dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	got, err := store.Get(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestStore_GetNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "missing")
}

func TestStore_ListAll(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		tasks, err := store.ListAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	// Inserted out of order on purpose.
	c := newTask("c", 300)
	a := newTask("a", 100)
	b := newTask("b", 200)
	for _, task := range []domain.Task{c, a, b} {
		require.NoError(t, store.Insert(ctx, task))
	}

	t.Run("ordered by created_at", func(t *testing.T) {
		tasks, err := store.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{a.ID, b.ID, c.ID}, ids(tasks))
	})
}

func TestStore_ListRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var inserted []domain.Task
	for i := 1; i <= 4; i++ {
		task := newTask("task", int64(i*100))
		require.NoError(t, store.Insert(ctx, task))
		inserted = append(inserted, task)
	}

	for k := 0; k <= len(inserted); k++ {
		tasks, err := store.ListRecent(ctx, k)
		require.NoError(t, err)
		require.Len(t, tasks, k)

		for i, task := range tasks {
			want := inserted[len(inserted)-1-i]
			assert.Equal(t, want.ID, task.ID, "k=%d position %d", k, i)
		}
	}

	t.Run("limit above count", func(t *testing.T) {
		tasks, err := store.ListRecent(ctx, 50)
		require.NoError(t, err)
		assert.Len(t, tasks, len(inserted))
	})

	t.Run("negative limit", func(t *testing.T) {
		_, err := store.ListRecent(ctx, -1)
		assert.ErrorIs(t, err, ErrQuery)
	})
}

func TestStore_MarkComplete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	task := domain.New(uuid.New().String(), "finish", false, domain.NowMillis(), domain.NowMillis())
	require.NoError(t, store.Insert(ctx, task))

	require.NoError(t, store.MarkComplete(ctx, task.ID))
	first, err := store.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, first.Completed)
	assert.Greater(t, first.UpdatedAt, task.UpdatedAt)
	assert.Equal(t, task.CreatedAt, first.CreatedAt)
	assert.Equal(t, task.Title, first.Title)

	// Idempotent: stays complete, updated_at moves again.
	require.NoError(t, store.MarkComplete(ctx, task.ID))
	second, err := store.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, second.Completed)
	assert.Greater(t, second.UpdatedAt, first.UpdatedAt)
}

func TestStore_MarkCompleteNotFound(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	existing := newTask("untouched", 100)
	require.NoError(t, store.Insert(ctx, existing))

	err := store.MarkComplete(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	tasks, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Task{existing}, tasks)
}

func TestStore_ListIncomplete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	open1 := newTask("open 1", 100)
	done := domain.New(uuid.New().String(), "done", true, 150, 150)
	open2 := newTask("open 2", 200)
	for _, task := range []domain.Task{open2, done, open1} {
		require.NoError(t, store.Insert(ctx, task))
	}

	tasks, err := store.ListIncomplete(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{open1.ID, open2.ID}, ids(tasks))

	require.NoError(t, store.MarkComplete(ctx, open1.ID))

	tasks, err = store.ListIncomplete(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{open2.ID}, ids(tasks))
}

func TestStore_Scenario(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	a := newTask("A", 100)
	b := newTask("B", 200)
	require.NoError(t, store.Insert(ctx, a))
	require.NoError(t, store.Insert(ctx, b))

	recent, err := store.ListRecent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, ids(recent))

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, ids(all))

	require.NoError(t, store.MarkComplete(ctx, a.ID))

	incomplete, err := store.ListIncomplete(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, ids(incomplete))
}

func TestStore_ClosedStoreReturnsConnectionError(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Stop(ctx))
	require.NoError(t, store.Stop(ctx), "second Stop should be a no-op")

	assert.ErrorIs(t, store.Insert(ctx, newTask("late", 1)), ErrConnection)
	_, err := store.Get(ctx, "x")
	assert.ErrorIs(t, err, ErrConnection)
	_, err = store.ListAll(ctx)
	assert.ErrorIs(t, err, ErrConnection)
	_, err = store.ListRecent(ctx, 1)
	assert.ErrorIs(t, err, ErrConnection)
	_, err = store.ListIncomplete(ctx)
	assert.ErrorIs(t, err, ErrConnection)
	assert.ErrorIs(t, store.MarkComplete(ctx, "x"), ErrConnection)
}

func TestStore_StartAfterStop(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	task := newTask("survives restart", 10)
	require.NoError(t, store.Insert(ctx, task))
	require.NoError(t, store.Stop(ctx))
	require.NoError(t, store.Start(ctx))

	got, err := store.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, got)
}

func TestStore_Health(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, newTask("one", 1)))

	status := store.Health(ctx)
	assert.True(t, status.Healthy)
	assert.Equal(t, "operational", status.Message)
	assert.Equal(t, "sqlite", status.Details["driver"])
	assert.Equal(t, "test", status.Details["env"])
	assert.Equal(t, int64(1), status.Details["tasks"])

	require.NoError(t, store.Stop(ctx))

	status = store.Health(ctx)
	assert.False(t, status.Healthy)
	assert.Equal(t, "database not initialized", status.Message)
}

func TestStore_Name(t *testing.T) {
	store := NewStore(Options{Env: EnvTest})
	assert.Equal(t, "todo", store.Name())
	assert.Equal(t, "todos_test.db", store.Path())
	assert.Equal(t, EnvTest, store.Env())
}
