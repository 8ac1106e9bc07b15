package notify

import (
	"sort"
	"sync"
	"time"
)

// Scheduler schedules a callback after a delay and hands back a
// cancel function. It exists so tests can advance virtual time
// deterministically instead of sleeping on real timers.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler is the production Scheduler backed by time.AfterFunc.
type TimerScheduler struct{}

// AfterFunc schedules fn after d on a real timer.
func (TimerScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// ManualScheduler is a virtual-time Scheduler for tests. Callbacks
// fire only when Advance moves the clock past their deadline.
type ManualScheduler struct {
	mu      sync.Mutex
	elapsed time.Duration
	nextID  int
	pending map[int]manualEntry
}

type manualEntry struct {
	at time.Duration
	fn func()
}

// NewManualScheduler creates a ManualScheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[int]manualEntry)}
}

// AfterFunc registers fn to fire once the virtual clock has advanced
// by d from now. The returned cancel removes it if it has not fired.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.pending[id] = manualEntry{at: s.elapsed + d, fn: fn}
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
	}
}

// Advance moves the virtual clock forward by d and fires every due
// callback in deadline order.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.elapsed += d

	var due []manualEntry
	for id, e := range s.pending {
		if e.at <= s.elapsed {
			due = append(due, e)
			delete(s.pending, id)
		}
	}
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, e := range due {
		e.fn()
	}
}

// Pending reports how many callbacks are still scheduled.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
