package repo

import (
	"context"
	"fmt"
	"slices"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/store"
)

// TripRepo defines the persistence operations for Trips. All trips live in
// one list value; every write replaces the whole list.
type TripRepo interface {
	// List returns all trips in stored order. Never nil.
	List(ctx context.Context) ([]domain.Trip, error)

	// Get returns the trip with id. found is false when no such trip exists.
	Get(ctx context.Context, id string) (trip domain.Trip, found bool, err error)

	// Put replaces the trip with the same ID, or appends it when new.
	Put(ctx context.Context, trip domain.Trip) error

	// StagePut is Put deferred into b.
	StagePut(ctx context.Context, b Batch, trip domain.Trip) error

	// Delete removes the trip record and every per-trip key.
	// found is false when no such trip existed.
	Delete(ctx context.Context, id string) (found bool, err error)
}

type kvTripRepo struct {
	s store.Store
}

// NewTripRepo constructs a TripRepo backed by s.
func NewTripRepo(s store.Store) TripRepo {
	return &kvTripRepo{s: s}
}

func (r *kvTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	trips, _, err := getJSON[[]domain.Trip](ctx, r.s, keyTrips)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}

func (r *kvTripRepo) Get(ctx context.Context, id string) (domain.Trip, bool, error) {
	trips, err := r.List(ctx)
	if err != nil {
		return domain.Trip{}, false, fmt.Errorf("repo.TripRepo.Get: %w", err)
	}
	for _, t := range trips {
		if t.ID == id {
			return t, true, nil
		}
	}
	return domain.Trip{}, false, nil
}

func (r *kvTripRepo) Put(ctx context.Context, trip domain.Trip) error {
	b := Batch{}
	if err := r.StagePut(ctx, b, trip); err != nil {
		return fmt.Errorf("repo.TripRepo.Put: %w", err)
	}
	if err := r.s.Set(ctx, keyTrips, b[keyTrips]); err != nil {
		return fmt.Errorf("repo.TripRepo.Put: %w", err)
	}
	return nil
}

func (r *kvTripRepo) StagePut(ctx context.Context, b Batch, trip domain.Trip) error {
	trips, err := r.List(ctx)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(trips, func(t domain.Trip) bool { return t.ID == trip.ID })
	if i >= 0 {
		trips[i] = trip
	} else {
		trips = append(trips, trip)
	}
	return b.put(keyTrips, trips)
}

func (r *kvTripRepo) Delete(ctx context.Context, id string) (bool, error) {
	trips, err := r.List(ctx)
	if err != nil {
		return false, fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	kept := slices.DeleteFunc(slices.Clone(trips), func(t domain.Trip) bool { return t.ID == id })
	found := len(kept) != len(trips)
	if found {
		if err := setJSON(ctx, r.s, keyTrips, kept); err != nil {
			return false, fmt.Errorf("repo.TripRepo.Delete: %w", err)
		}
	}

	// Per-trip keys are dropped even when the trip record is already gone.
	keys, err := r.s.Keys(ctx, TripPrefix(id))
	if err != nil {
		return found, fmt.Errorf("repo.TripRepo.Delete: list trip keys: %w", err)
	}
	if err := r.s.Delete(ctx, keys...); err != nil {
		return found, fmt.Errorf("repo.TripRepo.Delete: drop trip keys: %w", err)
	}
	return found, nil
}
