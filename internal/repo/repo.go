// Package repo maps the UsTinerary data model onto the key-value Persistent
// Store. Each resource has its own file with an interface and a store-backed
// implementation. No business logic lives here, only keys and JSON mapping.
package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ustinerary/planner/internal/store"
)

// Storage keys. Each key carries a schema version; a version bump starts from
// empty data rather than migrating the old value.
const keyTrips = "trips.v1"

// TripPrefix is the prefix shared by every per-trip key of tripID.
func TripPrefix(tripID string) string { return "trip." + tripID + "." }

func sectionsKey(tripID string) string  { return TripPrefix(tripID) + "sections.v1" }
func detailsKey(tripID string) string   { return TripPrefix(tripID) + "details.v17" }
func budgetKey(tripID string) string    { return TripPrefix(tripID) + "budget.v1" }
func assigneesKey(tripID string) string { return TripPrefix(tripID) + "assignees.v1" }
func profileKey(userID string) string   { return "profile." + userID + ".v1" }

func pollKey(tripID, entryID string) string {
	return TripPrefix(tripID) + "polls." + entryID + ".v1"
}

// Batch collects encoded values for a multi-key write that must land
// all-or-nothing. Resources stage into it; a Committer writes it.
type Batch map[string]string

func (b Batch) put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	b[key] = string(raw)
	return nil
}

// Committer writes a Batch in one store operation.
type Committer interface {
	Commit(ctx context.Context, b Batch) error
}

type storeCommitter struct {
	s store.Store
}

// NewCommitter constructs a Committer over s.
func NewCommitter(s store.Store) Committer {
	return &storeCommitter{s: s}
}

func (c *storeCommitter) Commit(ctx context.Context, b Batch) error {
	if len(b) == 0 {
		return nil
	}
	if err := c.s.SetMany(ctx, b); err != nil {
		return fmt.Errorf("repo.Committer.Commit: %w", err)
	}
	return nil
}

// getJSON decodes the value under key into a T. A missing key, or a value
// that no longer decodes, reads as absent so callers fall back to defaults.
func getJSON[T any](ctx context.Context, s store.Store, key string) (T, bool, error) {
	var v T
	raw, found, err := s.Get(ctx, key)
	if err != nil || !found {
		return v, false, err
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		var zero T
		return zero, false, nil
	}
	return v, true, nil
}

func setJSON(ctx context.Context, s store.Store, key string, v any) error {
	b := Batch{}
	if err := b.put(key, v); err != nil {
		return err
	}
	return s.Set(ctx, key, b[key])
}
