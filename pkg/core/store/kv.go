// Package store provides the durable key/value backing for the
// dashboard. Only two records exist: the saved profile and the history
// log. The store is a best-effort cache, not a source of truth, so
// every consumer must tolerate absence, corruption, and write failure.
package store

import "context"

// Record keys. Absence of either is a valid fresh-install state.
const (
	KeyProfile = "profile"
	KeyHistory = "history"
)

// KV is a minimal durable key/value store.
type KV interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put writes the value wholesale, replacing any previous one.
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
