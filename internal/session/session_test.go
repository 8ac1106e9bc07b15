package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssselery/techtrack/internal/model"
	"github.com/ssselery/techtrack/internal/storage"
)

func TestSessionDefaultsToGuest(t *testing.T) {
	s := New(storage.NewMemoryStore())

	assert.Equal(t, model.GuestIdentity, s.Current())
	assert.Nil(t, s.User())
}

func TestLoginSetsAndPersistsIdentity(t *testing.T) {
	store := storage.NewMemoryStore()
	s := New(store)
	ctx := context.Background()

	require.NoError(t, s.Login(ctx, "alice"))
	assert.Equal(t, "alice", s.Current())

	var saved model.User
	require.True(t, store.Get(ctx, storage.UserKey, &saved))
	assert.Equal(t, "alice", saved.Username)
}

func TestLoginTrimsAndValidates(t *testing.T) {
	s := New(storage.NewMemoryStore())
	ctx := context.Background()

	err := s.Login(ctx, " x ")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
	assert.Equal(t, model.GuestIdentity, s.Current())

	require.NoError(t, s.Login(ctx, "  bob  "))
	assert.Equal(t, "bob", s.Current())
}

func TestSessionRestoresPersistedIdentity(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, New(store).Login(ctx, "carol"))

	// Simulated restart: a fresh session over the same medium.
	assert.Equal(t, "carol", New(store).Current())
}

func TestSessionIgnoresCorruptIdentityPointer(t *testing.T) {
	store := storage.NewMemoryStore()
	store.SetRaw(storage.UserKey, "{broken")

	assert.Equal(t, model.GuestIdentity, New(store).Current())
}

func TestLogoutClearsPointerAndResetsGuestCatalog(t *testing.T) {
	store := storage.NewMemoryStore()
	s := New(store)
	ctx := context.Background()

	// Give the guest identity a stored catalog first.
	store.Set(ctx, storage.CatalogKey(model.GuestIdentity), model.DefaultCatalog())

	require.NoError(t, s.Login(ctx, "alice"))
	store.Set(ctx, storage.CatalogKey("alice"), model.DefaultCatalog())

	s.Logout(ctx)

	assert.Equal(t, model.GuestIdentity, s.Current())

	var user model.User
	assert.False(t, store.Get(ctx, storage.UserKey, &user))

	// Guest catalog is reset to empty; alice's data is untouched.
	var guest []model.Technology
	require.True(t, store.Get(ctx, storage.CatalogKey(model.GuestIdentity), &guest))
	assert.Empty(t, guest)

	var alice []model.Technology
	require.True(t, store.Get(ctx, storage.CatalogKey("alice"), &alice))
	assert.Len(t, alice, 3)
}

func TestLogoutHooksRun(t *testing.T) {
	s := New(storage.NewMemoryStore())
	ctx := context.Background()

	called := 0
	s.AddLogoutHook(func(context.Context) { called++ })

	require.NoError(t, s.Login(ctx, "alice"))
	s.Logout(ctx)

	assert.Equal(t, 1, called)
}
