package domain

import (
	"fmt"
	"maps"
	"math"
)

// Budget is a trip's total budget and its per-section allocations.
// Allocations are expected to be non-negative but this is not enforced,
// and nothing stops allocations from exceeding the total.
type Budget struct {
	Total    float64            `json:"total"`
	Sections map[string]float64 `json:"sections"`
}

// BudgetSummary is a budget together with its derived amounts.
type BudgetSummary struct {
	Total     float64            `json:"total"`
	Allocated float64            `json:"allocated"`
	Remaining float64            `json:"remaining"`
	Sections  map[string]float64 `json:"sections"`
}

// Allocated sums the per-section allocations.
func (b Budget) Allocated() float64 {
	var sum float64
	for _, v := range b.Sections {
		sum += v
	}
	return sum
}

// Remaining is Total minus Allocated. A negative value means the trip is
// over-allocated, which is a valid state.
func (b Budget) Remaining() float64 {
	return b.Total - b.Allocated()
}

// Summary derives the allocated and remaining amounts.
func (b Budget) Summary() BudgetSummary {
	sections := maps.Clone(b.Sections)
	if sections == nil {
		sections = map[string]float64{}
	}
	return BudgetSummary{
		Total:     b.Total,
		Allocated: b.Allocated(),
		Remaining: b.Remaining(),
		Sections:  sections,
	}
}

// ValidateAmount rejects NaN and infinities, which cannot be stored as JSON.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: amount must be a finite number", ErrValidation)
	}
	return nil
}
