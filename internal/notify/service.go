// Package notify maintains the dual-channel notification subsystem: a
// per-identity durable history of notifications plus a volatile queue
// of ephemeral toasts with automatic expiry. The two channels share
// ids but have independent lifecycles; a history entry outlives its
// toast.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ssselery/techtrack/internal/model"
	"github.com/ssselery/techtrack/internal/session"
	"github.com/ssselery/techtrack/internal/storage"
)

// DefaultToastTTL is how long a toast stays in the queue before it is
// removed automatically.
const DefaultToastTTL = 3 * time.Second

// Service owns notification state for all identities seen this
// session. History entries are persisted per identity; the toast
// queue is never persisted and resets on restart.
type Service struct {
	store   storage.Store
	session *session.Session
	sched   Scheduler
	ttl     time.Duration
	log     *logrus.Entry

	mu        sync.Mutex
	histories map[string][]model.Notification
	toasts    []model.Toast
	cancels   map[int64]func()
	lastID    int64

	// now is swapped in tests to pin notification ids.
	now func() time.Time
}

// New creates a Service using the given scheduler for toast expiry.
// A non-positive ttl falls back to DefaultToastTTL.
func New(store storage.Store, sess *session.Session, sched Scheduler, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	return &Service{
		store:     store,
		session:   sess,
		sched:     sched,
		ttl:       ttl,
		log:       logrus.WithField("component", "notify"),
		histories: make(map[string][]model.Notification),
		cancels:   make(map[int64]func()),
		now:       time.Now,
	}
}

// load returns the cached history for identity, reading it from
// storage on first access. A missing or corrupt entry starts empty.
func (s *Service) load(ctx context.Context, identity string) []model.Notification {
	if history, ok := s.histories[identity]; ok {
		return history
	}

	var history []model.Notification
	if !s.store.Get(ctx, storage.NotificationsKey(identity), &history) || history == nil {
		history = []model.Notification{}
	}

	s.histories[identity] = history
	return history
}

// persist writes the identity's history back to storage, best-effort.
func (s *Service) persist(ctx context.Context, identity string, history []model.Notification) {
	s.histories[identity] = history
	s.store.Set(ctx, storage.NotificationsKey(identity), history)
}

// Notify creates one unread history entry and one toast sharing its
// id, prepends both (newest first), persists the history, and
// schedules automatic toast removal. Back-to-back calls in the same
// millisecond still get distinct, monotonically increasing ids.
func (s *Service) Notify(ctx context.Context, title, description string, typ model.NotificationType) model.Notification {
	if !model.ValidNotificationType(typ) {
		typ = model.NotificationInfo
	}

	s.mu.Lock()

	createdAt := s.now()
	id := createdAt.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	n := model.Notification{
		ID:          id,
		Title:       title,
		Description: description,
		Type:        typ,
		CreatedAt:   createdAt,
	}

	identity := s.session.Current()
	history := s.load(ctx, identity)
	s.persist(ctx, identity, append([]model.Notification{n}, history...))

	s.toasts = append([]model.Toast{{
		ID:          id,
		Title:       title,
		Description: description,
		Type:        typ,
	}}, s.toasts...)

	s.cancels[id] = s.sched.AfterFunc(s.ttl, func() {
		s.expireToast(id)
	})

	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"identity": identity,
		"id":       id,
		"type":     typ,
	}).Debug("notification created")

	return n
}

// expireToast removes a toast once its timer fires. Only the toast
// queue is affected; the history entry stays.
func (s *Service) expireToast(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.cancels, id)
	s.removeToastLocked(id)
}

func (s *Service) removeToastLocked(id int64) {
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return
		}
	}
}

// Dismiss removes a toast immediately and cancels its expiry timer.
func (s *Service) Dismiss(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cancel, ok := s.cancels[id]; ok {
		cancel()
		delete(s.cancels, id)
	}
	s.removeToastLocked(id)
}

// Toasts returns a copy of the current toast queue, newest first.
func (s *Service) Toasts() []model.Toast {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// History returns a copy of the active identity's notification
// history, newest first.
func (s *Service) History(ctx context.Context) []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.load(ctx, s.session.Current())
	out := make([]model.Notification, len(history))
	copy(out, history)
	return out
}

// MarkRead marks a single history entry as read. The transition is
// one-way; unknown ids are a no-op.
func (s *Service) MarkRead(ctx context.Context, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	identity := s.session.Current()
	history := s.load(ctx, identity)

	for i := range history {
		if history[i].ID == id {
			if !history[i].Read {
				history[i].Read = true
				s.persist(ctx, identity, history)
			}
			return
		}
	}
}

// MarkAllAsRead marks every existing history entry of the active
// identity as read. Entries added afterward are unaffected.
func (s *Service) MarkAllAsRead(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	identity := s.session.Current()
	history := s.load(ctx, identity)

	for i := range history {
		history[i].Read = true
	}
	s.persist(ctx, identity, history)
}

// ClearAll empties the history for the active identity and persists.
// Toasts are untouched; they expire on their own schedule.
func (s *Service) ClearAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.persist(ctx, s.session.Current(), []model.Notification{})
}

// Unread reports how many history entries of the active identity are
// still unread.
func (s *Service) Unread(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.load(ctx, s.session.Current()) {
		if !n.Read {
			count++
		}
	}
	return count
}
