package service

import (
	"context"
	"fmt"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/repo"
)

// AssignmentService records which user owns each section of a trip.
type AssignmentService struct {
	trips      repo.TripRepo
	checklists repo.ChecklistRepo
	assignees  repo.AssigneeRepo
}

// NewAssignmentService constructs an AssignmentService.
func NewAssignmentService(trips repo.TripRepo, checklists repo.ChecklistRepo, assignees repo.AssigneeRepo) *AssignmentService {
	return &AssignmentService{trips: trips, checklists: checklists, assignees: assignees}
}

// List returns the section key to user ID map of a trip.
func (s *AssignmentService) List(ctx context.Context, tripID string) (map[string]string, error) {
	if _, err := loadTrip(ctx, s.trips, tripID); err != nil {
		return nil, fmt.Errorf("service.AssignmentService.List: %w", err)
	}
	a, err := s.assignees.Get(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.AssignmentService.List: %w", err)
	}
	return a, nil
}

// Assign sets the owner of a section; an empty userID clears it. The user ID
// is not checked against the directory.
func (s *AssignmentService) Assign(ctx context.Context, user domain.ActingUser, tripID, key, userID string) (map[string]string, error) {
	if err := requireAdmin(user); err != nil {
		return nil, err
	}
	if _, err := loadSections(ctx, s.trips, s.checklists, tripID, key); err != nil {
		return nil, fmt.Errorf("service.AssignmentService.Assign: %w", err)
	}
	a, err := s.assignees.Get(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.AssignmentService.Assign: %w", err)
	}
	if userID == "" {
		delete(a, key)
	} else {
		a[key] = userID
	}
	if err := s.assignees.Save(ctx, tripID, a); err != nil {
		return nil, fmt.Errorf("service.AssignmentService.Assign: %w", err)
	}
	return a, nil
}
