package repo

import (
	"context"
	"fmt"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/store"
)

// PollRepo stores one tally per detail entry.
type PollRepo interface {
	// Get returns the entry's tally, or an empty one.
	Get(ctx context.Context, tripID, entryID string) (domain.Poll, error)
	Save(ctx context.Context, tripID, entryID string, p domain.Poll) error
	// Delete drops the tallies of the given entries.
	Delete(ctx context.Context, tripID string, entryIDs ...string) error
}

type kvPollRepo struct {
	s store.Store
}

// NewPollRepo constructs a PollRepo backed by s.
func NewPollRepo(s store.Store) PollRepo {
	return &kvPollRepo{s: s}
}

func (r *kvPollRepo) Get(ctx context.Context, tripID, entryID string) (domain.Poll, error) {
	p, _, err := getJSON[domain.Poll](ctx, r.s, pollKey(tripID, entryID))
	if err != nil {
		return domain.Poll{}, fmt.Errorf("repo.PollRepo.Get: %w", err)
	}
	if p.Voters == nil {
		p.Voters = map[string]domain.Choice{}
	}
	return p, nil
}

func (r *kvPollRepo) Save(ctx context.Context, tripID, entryID string, p domain.Poll) error {
	if err := setJSON(ctx, r.s, pollKey(tripID, entryID), p); err != nil {
		return fmt.Errorf("repo.PollRepo.Save: %w", err)
	}
	return nil
}

func (r *kvPollRepo) Delete(ctx context.Context, tripID string, entryIDs ...string) error {
	if len(entryIDs) == 0 {
		return nil
	}
	keys := make([]string, len(entryIDs))
	for i, id := range entryIDs {
		keys[i] = pollKey(tripID, id)
	}
	if err := r.s.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("repo.PollRepo.Delete: %w", err)
	}
	return nil
}
