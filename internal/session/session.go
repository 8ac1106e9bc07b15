// Package session holds the active identity and namespaces all
// persisted state by it. Switching identity never deletes another
// identity's data; each catalog and history lives under its own key
// and becomes visible again when that identity logs back in.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ssselery/techtrack/internal/model"
	"github.com/ssselery/techtrack/internal/storage"
)

// Session tracks the current user identity: either a named identity
// set by Login, or the implicit guest identity.
type Session struct {
	store storage.Store
	log   *logrus.Entry

	mu          sync.Mutex
	user        *model.User
	logoutHooks []func(context.Context)
}

// New creates a Session over the given storage port, restoring the
// persisted identity pointer if one exists. A corrupt pointer falls
// back to the guest identity.
func New(store storage.Store) *Session {
	s := &Session{
		store: store,
		log:   logrus.WithField("component", "session"),
	}

	var user model.User
	if store.Get(context.Background(), storage.UserKey, &user) && user.Username != "" {
		s.user = &user
	}

	return s
}

// Current returns the active identity name: the logged-in username,
// or "guest" when nobody is logged in.
func (s *Session) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return model.GuestIdentity
	}
	return s.user.Username
}

// User returns the logged-in user, or nil for the guest identity.
func (s *Session) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Login sets the active identity and persists the pointer. The
// existing catalog and history of the named identity, if any, become
// visible again.
func (s *Session) Login(ctx context.Context, username string) error {
	if err := model.ValidateUsername(username); err != nil {
		return err
	}
	username = strings.TrimSpace(username)

	s.mu.Lock()
	s.user = &model.User{Username: username}
	s.mu.Unlock()

	s.store.Set(ctx, storage.UserKey, model.User{Username: username})
	s.log.WithField("identity", username).Info("logged in")
	return nil
}

// Logout clears the active identity pointer and resets the guest
// catalog to empty, so a returning anonymous session starts clean.
// The logged-out identity's own data is left untouched.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	previous := model.GuestIdentity
	if s.user != nil {
		previous = s.user.Username
	}
	s.user = nil
	hooks := make([]func(context.Context), len(s.logoutHooks))
	copy(hooks, s.logoutHooks)
	s.mu.Unlock()

	s.store.Delete(ctx, storage.UserKey)
	s.store.Set(ctx, storage.CatalogKey(model.GuestIdentity), []model.Technology{})

	for _, hook := range hooks {
		hook(ctx)
	}

	s.log.WithField("identity", previous).Info("logged out")
}

// AddLogoutHook registers a callback invoked after Logout has cleared
// the identity pointer. Callers use it to drop caches scoped to the
// guest identity.
func (s *Session) AddLogoutHook(fn func(context.Context)) {
	s.mu.Lock()
	s.logoutHooks = append(s.logoutHooks, fn)
	s.mu.Unlock()
}
