package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssselery/techtrack/internal/model"
	"github.com/ssselery/techtrack/internal/session"
	"github.com/ssselery/techtrack/internal/storage"
	"github.com/ssselery/techtrack/tests/testutil"
)

var testNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func newTestManager(t *testing.T) (*Manager, *session.Session, *storage.MemoryStore) {
	t.Helper()

	store := storage.NewMemoryStore()
	sess := session.New(store)
	m := New(store, sess)
	m.now = func() time.Time { return testNow }
	return m, sess, store
}

func TestFirstTimeIdentityGetsSeedCatalog(t *testing.T) {
	m, _, _ := newTestManager(t)

	list := m.List(context.Background())
	require.Len(t, list, 3)
	assert.Equal(t, "React", list[0].Title)
	assert.Equal(t, model.StatusNotStarted, list[0].Status)
}

func TestAddAllocatesSequentialIDs(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	m.Clear(ctx)

	for i := 1; i <= 5; i++ {
		created := m.Add(ctx, model.Technology{Title: "t"})
		assert.Equal(t, i, created.ID)
	}

	list := m.List(ctx)
	require.Len(t, list, 5)
	for i, tech := range list {
		assert.Equal(t, i+1, tech.ID, "ids must be exactly 1..n with no gaps")
	}
}

func TestAddFillsDefaultsAndRoundTrips(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	created := m.Add(ctx, model.Technology{Title: "Go", Category: "language"})

	assert.Equal(t, model.StatusNotStarted, created.Status)
	assert.Equal(t, "2026-08-29", created.CreatedAt)
	assert.Empty(t, created.Notes)

	got, ok := m.GetByID(ctx, created.ID)
	require.True(t, ok)
	assert.Equal(t, created, got)
}

func TestGetByIDUnknown(t *testing.T) {
	m, _, _ := newTestManager(t)

	_, ok := m.GetByID(context.Background(), 999)
	assert.False(t, ok)
}

func TestUpdateStatusAndNotes(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	created := m.Add(ctx, model.Technology{Title: "Go"})

	m.UpdateStatus(ctx, created.ID, model.StatusInProgress)
	m.UpdateNotes(ctx, created.ID, "going well")

	got, ok := m.GetByID(ctx, created.ID)
	require.True(t, ok)
	assert.Equal(t, model.StatusInProgress, got.Status)
	assert.Equal(t, "going well", got.Notes)
	assert.Equal(t, created.CreatedAt, got.CreatedAt, "CreatedAt is immutable")
}

func TestUpdateStatusUnknownIDIsNoOp(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	before := m.List(ctx)
	m.UpdateStatus(ctx, 999, model.StatusCompleted)
	assert.Equal(t, before, m.List(ctx))
}

func TestUpdateDeadline(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	created := m.Add(ctx, model.Technology{Title: "Go"})

	err := m.UpdateDeadline(ctx, created.ID, model.Deadline{
		Date:    "2026-01-01",
		Comment: "finish the basics",
	})
	require.Error(t, err, "past date must be rejected")
	assert.True(t, model.IsValidationError(err))

	err = m.UpdateDeadline(ctx, created.ID, model.Deadline{
		Date:    "2026-12-31",
		Comment: "hi",
	})
	require.Error(t, err, "short comment must be rejected")

	require.NoError(t, m.UpdateDeadline(ctx, created.ID, model.Deadline{
		Date:    "2026-12-31",
		Comment: "finish the basics",
	}))

	got, ok := m.GetByID(ctx, created.ID)
	require.True(t, ok)
	require.NotNil(t, got.Deadline)
	assert.Equal(t, "2026-12-31", got.Deadline.Date)
}

func TestIdentityIsolation(t *testing.T) {
	m, sess, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, sess.Login(ctx, "alice"))
	m.Clear(ctx)
	m.Add(ctx, model.Technology{Title: "Rust"})

	require.NoError(t, sess.Login(ctx, "bob"))
	m.Clear(ctx)
	m.Add(ctx, model.Technology{Title: "Zig"})
	m.Add(ctx, model.Technology{Title: "Elixir"})

	// Switching back and forth repeatedly never leaks records.
	for i := 0; i < 3; i++ {
		require.NoError(t, sess.Login(ctx, "alice"))
		list := m.List(ctx)
		require.Len(t, list, 1)
		assert.Equal(t, "Rust", list[0].Title)

		require.NoError(t, sess.Login(ctx, "bob"))
		list = m.List(ctx)
		require.Len(t, list, 2)
		assert.Equal(t, "Zig", list[0].Title)
	}
}

func TestPersistReloadRoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()
	sess := session.New(store)
	ctx := context.Background()

	m := New(store, sess)
	m.now = func() time.Time { return testNow }
	m.Clear(ctx)
	m.Add(ctx, model.Technology{Title: "Go", Notes: "n"})
	m.Add(ctx, model.Technology{Title: "Rust"})
	want := m.List(ctx)

	// Simulated restart: a fresh manager over the same medium.
	reloaded := New(store, sess)
	assert.Equal(t, want, reloaded.List(ctx))
}

func TestPersistReloadRoundTripSQLite(t *testing.T) {
	// Same restart property against the durable medium.
	store := testutil.NewTestStore(t)
	sess := session.New(store)
	ctx := context.Background()

	m := New(store, sess)
	m.now = func() time.Time { return testNow }
	m.Clear(ctx)
	m.Add(ctx, model.Technology{Title: "Go", Category: "language"})
	want := m.List(ctx)

	reloaded := New(store, sess)
	assert.Equal(t, want, reloaded.List(ctx))
}

func TestClearAndResetToDefaults(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	m.Clear(ctx)
	assert.Empty(t, m.List(ctx))

	m.ResetToDefaults(ctx)
	assert.Len(t, m.List(ctx), 3)
}

func TestAddBatchCommitsToSnapshotIdentityOnly(t *testing.T) {
	m, sess, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, sess.Login(ctx, "alice"))
	m.Clear(ctx)

	drafts := []model.Technology{{Title: "Go"}, {Title: "Rust"}}

	count, ok := m.AddBatch(ctx, "alice", drafts)
	require.True(t, ok)
	assert.Equal(t, 2, count)
	assert.Len(t, m.List(ctx), 2)

	// A batch snapshotted under a now-inactive identity is dropped.
	require.NoError(t, sess.Login(ctx, "bob"))
	count, ok = m.AddBatch(ctx, "alice", drafts)
	assert.False(t, ok)
	assert.Zero(t, count)

	require.NoError(t, sess.Login(ctx, "alice"))
	assert.Len(t, m.List(ctx), 2, "dropped batch must not have been applied")
}

func TestInvalidateReloadsFromStorage(t *testing.T) {
	m, _, store := newTestManager(t)
	ctx := context.Background()

	m.Clear(ctx)
	m.Add(ctx, model.Technology{Title: "Go"})

	// Someone else resets the stored guest catalog (logout does this).
	store.Set(ctx, storage.CatalogKey(model.GuestIdentity), []model.Technology{})
	m.Invalidate(model.GuestIdentity)

	assert.Empty(t, m.List(ctx))
}

func TestStorageWriteFailureKeepsMemoryAuthoritative(t *testing.T) {
	// A store whose writes never land: the in-memory list must still
	// serve reads for the rest of the session.
	store := storage.NewMemoryStore()
	sess := session.New(store)
	m := New(rejectingStore{store}, sess)
	m.now = func() time.Time { return testNow }
	ctx := context.Background()

	m.Clear(ctx)
	created := m.Add(ctx, model.Technology{Title: "Go"})

	got, ok := m.GetByID(ctx, created.ID)
	require.True(t, ok)
	assert.Equal(t, "Go", got.Title)
}

// rejectingStore swallows writes, simulating a medium that rejects them.
type rejectingStore struct {
	inner storage.Store
}

func (r rejectingStore) Get(ctx context.Context, key string, dest interface{}) bool {
	return r.inner.Get(ctx, key, dest)
}

func (r rejectingStore) Set(ctx context.Context, key string, value interface{}) {}

func (r rejectingStore) Delete(ctx context.Context, key string) {}
