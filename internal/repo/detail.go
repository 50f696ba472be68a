package repo

import (
	"context"
	"fmt"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/store"
)

// DetailRepo stores the detail entries of each trip, all sections in one value.
type DetailRepo interface {
	// Get returns the trip's entries; never nil.
	Get(ctx context.Context, tripID string) (domain.SectionDetails, error)
	Save(ctx context.Context, tripID string, d domain.SectionDetails) error
	Stage(b Batch, tripID string, d domain.SectionDetails) error
}

type kvDetailRepo struct {
	s store.Store
}

// NewDetailRepo constructs a DetailRepo backed by s.
func NewDetailRepo(s store.Store) DetailRepo {
	return &kvDetailRepo{s: s}
}

func (r *kvDetailRepo) Get(ctx context.Context, tripID string) (domain.SectionDetails, error) {
	d, _, err := getJSON[domain.SectionDetails](ctx, r.s, detailsKey(tripID))
	if err != nil {
		return nil, fmt.Errorf("repo.DetailRepo.Get: %w", err)
	}
	if d == nil {
		d = domain.SectionDetails{}
	}
	return d, nil
}

func (r *kvDetailRepo) Save(ctx context.Context, tripID string, d domain.SectionDetails) error {
	if err := setJSON(ctx, r.s, detailsKey(tripID), d); err != nil {
		return fmt.Errorf("repo.DetailRepo.Save: %w", err)
	}
	return nil
}

func (r *kvDetailRepo) Stage(b Batch, tripID string, d domain.SectionDetails) error {
	return b.put(detailsKey(tripID), d)
}
