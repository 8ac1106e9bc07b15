package storage

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is a map-backed Store used as the injectable storage
// fake in tests. Values are held in their serialized form so that
// Get/Set round-trip through JSON exactly like the durable medium.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get unmarshals the value stored under key into dest and reports
// whether a usable value was found.
func (s *MemoryStore) Get(ctx context.Context, key string, dest interface{}) bool {
	s.mu.Lock()
	raw, ok := s.values[key]
	s.mu.Unlock()

	if !ok {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

// Set marshals value and stores it under key. A value that cannot be
// marshaled is dropped, matching the durable medium's fire-and-forget
// contract.
func (s *MemoryStore) Set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.values[key] = string(data)
	s.mu.Unlock()
}

// Delete removes the value stored under key.
func (s *MemoryStore) Delete(ctx context.Context, key string) {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
}

// SetRaw stores an unvalidated serialized value under key. Tests use
// it to simulate a corrupt entry in the durable medium.
func (s *MemoryStore) SetRaw(key, raw string) {
	s.mu.Lock()
	s.values[key] = raw
	s.mu.Unlock()
}

// Has reports whether any value (valid or not) is stored under key.
func (s *MemoryStore) Has(key string) bool {
	s.mu.Lock()
	_, ok := s.values[key]
	s.mu.Unlock()
	return ok
}
