package storage

import (
	"context"
	"fmt"
)

// UserKey is where the active identity pointer is persisted.
const UserKey = "user"

// CatalogKey returns the persistence key for an identity's catalog.
func CatalogKey(identity string) string {
	return fmt.Sprintf("catalog:%s", identity)
}

// NotificationsKey returns the persistence key for an identity's
// notification history.
func NotificationsKey(identity string) string {
	return fmt.Sprintf("notifications:%s", identity)
}

// Store is the persistent keyed store: a get/set abstraction over a
// durable key-value medium holding JSON-serializable values.
//
// Get reports false for a missing or corrupt key so callers can fall
// back to a default; corruption never surfaces as an error. Set is
// fire-and-forget: if the medium rejects the write, the failure is
// swallowed and the caller's in-memory value stays authoritative for
// the session.
type Store interface {
	// Get unmarshals the value stored under key into dest and reports
	// whether a usable value was found.
	Get(ctx context.Context, key string, dest interface{}) bool

	// Set marshals value and stores it under key, best-effort.
	Set(ctx context.Context, key string, value interface{})

	// Delete removes the value stored under key, best-effort.
	Delete(ctx context.Context, key string)
}
