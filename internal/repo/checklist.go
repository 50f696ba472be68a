package repo

import (
	"context"
	"fmt"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/store"
)

// ChecklistRepo stores the sections and checklist items of each trip.
type ChecklistRepo interface {
	// Get returns the stored checklist, or the built-in sections with their
	// default items when the trip has none yet.
	Get(ctx context.Context, tripID string) (domain.Checklist, error)
	Save(ctx context.Context, tripID string, c domain.Checklist) error
	Stage(b Batch, tripID string, c domain.Checklist) error
}

type kvChecklistRepo struct {
	s store.Store
}

// NewChecklistRepo constructs a ChecklistRepo backed by s.
func NewChecklistRepo(s store.Store) ChecklistRepo {
	return &kvChecklistRepo{s: s}
}

func (r *kvChecklistRepo) Get(ctx context.Context, tripID string) (domain.Checklist, error) {
	c, found, err := getJSON[domain.Checklist](ctx, r.s, sectionsKey(tripID))
	if err != nil {
		return domain.Checklist{}, fmt.Errorf("repo.ChecklistRepo.Get: %w", err)
	}
	if !found || len(c.Items) == 0 {
		return domain.DefaultChecklist(), nil
	}
	return c, nil
}

func (r *kvChecklistRepo) Save(ctx context.Context, tripID string, c domain.Checklist) error {
	if err := setJSON(ctx, r.s, sectionsKey(tripID), c); err != nil {
		return fmt.Errorf("repo.ChecklistRepo.Save: %w", err)
	}
	return nil
}

func (r *kvChecklistRepo) Stage(b Batch, tripID string, c domain.Checklist) error {
	return b.put(sectionsKey(tripID), c)
}
