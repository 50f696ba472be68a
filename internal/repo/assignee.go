package repo

import (
	"context"
	"fmt"

	"github.com/ustinerary/planner/internal/store"
)

// AssigneeRepo stores the section key to user ID map of each trip.
type AssigneeRepo interface {
	// Get returns the trip's assignments; never nil.
	Get(ctx context.Context, tripID string) (map[string]string, error)
	Save(ctx context.Context, tripID string, a map[string]string) error
	Stage(b Batch, tripID string, a map[string]string) error
}

type kvAssigneeRepo struct {
	s store.Store
}

// NewAssigneeRepo constructs an AssigneeRepo backed by s.
func NewAssigneeRepo(s store.Store) AssigneeRepo {
	return &kvAssigneeRepo{s: s}
}

func (r *kvAssigneeRepo) Get(ctx context.Context, tripID string) (map[string]string, error) {
	a, _, err := getJSON[map[string]string](ctx, r.s, assigneesKey(tripID))
	if err != nil {
		return nil, fmt.Errorf("repo.AssigneeRepo.Get: %w", err)
	}
	if a == nil {
		a = map[string]string{}
	}
	return a, nil
}

func (r *kvAssigneeRepo) Save(ctx context.Context, tripID string, a map[string]string) error {
	if err := setJSON(ctx, r.s, assigneesKey(tripID), a); err != nil {
		return fmt.Errorf("repo.AssigneeRepo.Save: %w", err)
	}
	return nil
}

func (r *kvAssigneeRepo) Stage(b Batch, tripID string, a map[string]string) error {
	return b.put(assigneesKey(tripID), a)
}
