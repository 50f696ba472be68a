package service

import (
	"context"
	"fmt"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/repo"
)

// BudgetService implements the trip budget ledger. Edits are admin-only.
type BudgetService struct {
	trips      repo.TripRepo
	checklists repo.ChecklistRepo
	budgets    repo.BudgetRepo
}

// NewBudgetService constructs a BudgetService.
func NewBudgetService(trips repo.TripRepo, checklists repo.ChecklistRepo, budgets repo.BudgetRepo) *BudgetService {
	return &BudgetService{trips: trips, checklists: checklists, budgets: budgets}
}

// Get returns the budget with its allocated and remaining amounts.
// Remaining may be negative.
func (s *BudgetService) Get(ctx context.Context, tripID string) (domain.BudgetSummary, error) {
	if _, err := loadTrip(ctx, s.trips, tripID); err != nil {
		return domain.BudgetSummary{}, fmt.Errorf("service.BudgetService.Get: %w", err)
	}
	b, err := s.budgets.Get(ctx, tripID)
	if err != nil {
		return domain.BudgetSummary{}, fmt.Errorf("service.BudgetService.Get: %w", err)
	}
	return b.Summary(), nil
}

// SetTotal replaces the trip total.
func (s *BudgetService) SetTotal(ctx context.Context, user domain.ActingUser, tripID string, amount float64) (domain.BudgetSummary, error) {
	if err := requireAdmin(user); err != nil {
		return domain.BudgetSummary{}, err
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return domain.BudgetSummary{}, err
	}
	if _, err := loadTrip(ctx, s.trips, tripID); err != nil {
		return domain.BudgetSummary{}, fmt.Errorf("service.BudgetService.SetTotal: %w", err)
	}
	return s.update(ctx, tripID, "SetTotal", func(b *domain.Budget) { b.Total = amount })
}

// SetAllocation replaces the amount allocated to one section.
func (s *BudgetService) SetAllocation(ctx context.Context, user domain.ActingUser, tripID, key string, amount float64) (domain.BudgetSummary, error) {
	if err := requireAdmin(user); err != nil {
		return domain.BudgetSummary{}, err
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return domain.BudgetSummary{}, err
	}
	if _, err := loadSections(ctx, s.trips, s.checklists, tripID, key); err != nil {
		return domain.BudgetSummary{}, fmt.Errorf("service.BudgetService.SetAllocation: %w", err)
	}
	return s.update(ctx, tripID, "SetAllocation", func(b *domain.Budget) { b.Sections[key] = amount })
}

func (s *BudgetService) update(ctx context.Context, tripID, op string, fn func(*domain.Budget)) (domain.BudgetSummary, error) {
	b, err := s.budgets.Get(ctx, tripID)
	if err != nil {
		return domain.BudgetSummary{}, fmt.Errorf("service.BudgetService.%s: %w", op, err)
	}
	fn(&b)
	if err := s.budgets.Save(ctx, tripID, b); err != nil {
		return domain.BudgetSummary{}, fmt.Errorf("service.BudgetService.%s: %w", op, err)
	}
	return b.Summary(), nil
}
