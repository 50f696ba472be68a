// Package store implements the key-value Persistent Store that holds all
// application state as opaque JSON strings. Backends know nothing about
// trips or sections; business rules live in the service layer.
package store

import (
	"context"
	"errors"
	"slices"
)

// ErrQuotaExceeded is returned when a write would exceed the backend's size
// limit. The failed write leaves the store unchanged.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Store is the contract every backend satisfies. Each Set is a whole-value
// overwrite: the last writer wins and nothing is merged.
type Store interface {
	// Get returns the value stored under key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// SetMany stores every entry or none of them.
	SetMany(ctx context.Context, entries map[string]string) error

	// Delete removes the given keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	// Keys lists the keys starting with prefix in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Change is the storage-change signal raised after a successful write.
type Change struct {
	Key string `json:"key"`
}

// Publisher receives change signals. notify.Hub is the production implementation.
type Publisher interface {
	Publish(c Change)
}

// sortedKeys returns the keys of entries in ascending order so multi-key
// writes happen in a deterministic sequence.
func sortedKeys(entries map[string]string) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
