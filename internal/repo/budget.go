package repo

import (
	"context"
	"fmt"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/store"
)

// BudgetRepo stores the budget of each trip.
type BudgetRepo interface {
	// Get returns the stored budget, or a zero total with no allocations.
	Get(ctx context.Context, tripID string) (domain.Budget, error)
	Save(ctx context.Context, tripID string, b domain.Budget) error
	Stage(b Batch, tripID string, budget domain.Budget) error
}

type kvBudgetRepo struct {
	s store.Store
}

// NewBudgetRepo constructs a BudgetRepo backed by s.
func NewBudgetRepo(s store.Store) BudgetRepo {
	return &kvBudgetRepo{s: s}
}

func (r *kvBudgetRepo) Get(ctx context.Context, tripID string) (domain.Budget, error) {
	b, _, err := getJSON[domain.Budget](ctx, r.s, budgetKey(tripID))
	if err != nil {
		return domain.Budget{}, fmt.Errorf("repo.BudgetRepo.Get: %w", err)
	}
	if b.Sections == nil {
		b.Sections = map[string]float64{}
	}
	return b, nil
}

func (r *kvBudgetRepo) Save(ctx context.Context, tripID string, b domain.Budget) error {
	if err := setJSON(ctx, r.s, budgetKey(tripID), b); err != nil {
		return fmt.Errorf("repo.BudgetRepo.Save: %w", err)
	}
	return nil
}

func (r *kvBudgetRepo) Stage(b Batch, tripID string, budget domain.Budget) error {
	return b.put(budgetKey(tripID), budget)
}
