// Package catalog owns the per-identity list of tracked technologies:
// CRUD operations, stable id allocation, default seeding for
// first-time identities, and bulk clear/reset.
package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ssselery/techtrack/internal/model"
	"github.com/ssselery/techtrack/internal/session"
	"github.com/ssselery/techtrack/internal/storage"
)

// Manager holds the catalogs for all identities seen this session.
// The in-memory list is the authoritative copy; every mutation is
// persisted best-effort through the storage port.
type Manager struct {
	store   storage.Store
	session *session.Session
	log     *logrus.Entry

	mu    sync.Mutex
	lists map[string][]model.Technology

	// now is swapped in tests to pin CreatedAt dates.
	now func() time.Time
}

// New creates a Manager over the given storage port and session.
func New(store storage.Store, sess *session.Session) *Manager {
	return &Manager{
		store:   store,
		session: sess,
		log:     logrus.WithField("component", "catalog"),
		lists:   make(map[string][]model.Technology),
		now:     time.Now,
	}
}

// load returns the cached list for identity, reading it from storage
// on first access. Identities with no stored entry are seeded with
// the built-in default catalog.
func (m *Manager) load(ctx context.Context, identity string) []model.Technology {
	if list, ok := m.lists[identity]; ok {
		return list
	}

	var list []model.Technology
	if !m.store.Get(ctx, storage.CatalogKey(identity), &list) {
		list = model.DefaultCatalog()
	}
	if list == nil {
		list = []model.Technology{}
	}

	m.lists[identity] = list
	return list
}

// persist writes the identity's list back to storage, best-effort.
func (m *Manager) persist(ctx context.Context, identity string, list []model.Technology) {
	m.lists[identity] = list
	m.store.Set(ctx, storage.CatalogKey(identity), list)
}

// nextID returns max(existing ids) + 1, or 1 for an empty catalog.
func nextID(list []model.Technology) int {
	max := 0
	for _, t := range list {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

// List returns a copy of the active identity's catalog.
func (m *Manager) List(ctx context.Context) []model.Technology {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.load(ctx, m.session.Current())
	out := make([]model.Technology, len(list))
	copy(out, list)
	return out
}

// Add fills omitted optional fields with defaults, allocates the next
// sequential id, appends the record to the active identity's catalog,
// and persists. It returns the created record.
func (m *Manager) Add(ctx context.Context, draft model.Technology) model.Technology {
	m.mu.Lock()
	defer m.mu.Unlock()

	identity := m.session.Current()
	list := m.load(ctx, identity)

	created := model.NewTechnology(nextID(list), draft, m.now())
	m.persist(ctx, identity, append(list, created))

	m.log.WithFields(logrus.Fields{
		"identity": identity,
		"id":       created.ID,
		"title":    created.Title,
	}).Debug("added technology")

	return created
}

// AddBatch commits a batch of drafts to the catalog of the given
// identity, but only if that identity is still the active one. It
// returns the number of records committed and whether the batch was
// applied at all. The whole batch commits under one lock, so no
// caller observes a partially applied import.
func (m *Manager) AddBatch(ctx context.Context, identity string, drafts []model.Technology) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.Current() != identity {
		return 0, false
	}

	list := m.load(ctx, identity)
	now := m.now()
	for _, draft := range drafts {
		list = append(list, model.NewTechnology(nextID(list), draft, now))
	}
	m.persist(ctx, identity, list)

	return len(drafts), true
}

// GetByID looks up a record by numeric id in the active identity's
// catalog. It reports false if the id is absent.
func (m *Manager) GetByID(ctx context.Context, id int) (model.Technology, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.load(ctx, m.session.Current()) {
		if t.ID == id {
			return t, true
		}
	}
	return model.Technology{}, false
}

// UpdateStatus replaces the status of the record with the matching id
// and persists. Unknown ids are a no-op.
func (m *Manager) UpdateStatus(ctx context.Context, id int, status string) {
	m.update(ctx, id, func(t *model.Technology) {
		t.Status = status
	})
}

// UpdateNotes replaces the notes of the record with the matching id
// and persists. Unknown ids are a no-op.
func (m *Manager) UpdateNotes(ctx context.Context, id int, notes string) {
	m.update(ctx, id, func(t *model.Technology) {
		t.Notes = notes
	})
}

// UpdateDeadline validates and sets the study deadline of the record
// with the matching id. Unknown ids are a no-op.
func (m *Manager) UpdateDeadline(ctx context.Context, id int, d model.Deadline) error {
	if err := model.ValidateDeadline(d, m.now()); err != nil {
		return err
	}

	m.update(ctx, id, func(t *model.Technology) {
		deadline := d
		t.Deadline = &deadline
	})
	return nil
}

// update applies fn to the matching record and persists the list.
// The mutation is atomic with respect to the in-memory list.
func (m *Manager) update(ctx context.Context, id int, fn func(*model.Technology)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	identity := m.session.Current()
	list := m.load(ctx, identity)

	for i := range list {
		if list[i].ID == id {
			fn(&list[i])
			m.persist(ctx, identity, list)
			return
		}
	}
}

// Clear empties the catalog for the active identity and persists.
func (m *Manager) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.persist(ctx, m.session.Current(), []model.Technology{})
}

// ResetToDefaults replaces the active identity's catalog with the
// built-in seed list and persists.
func (m *Manager) ResetToDefaults(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.persist(ctx, m.session.Current(), model.DefaultCatalog())
}

// Invalidate drops the cached list for identity so the next access
// reloads from storage. The session's logout hook uses it after the
// guest catalog has been reset.
func (m *Manager) Invalidate(identity string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.lists, identity)
}
