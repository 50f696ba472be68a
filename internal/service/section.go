package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/repo"
)

// SectionRepos groups the resources a section rename or delete rewrites.
type SectionRepos struct {
	Trips      repo.TripRepo
	Checklists repo.ChecklistRepo
	Details    repo.DetailRepo
	Budgets    repo.BudgetRepo
	Assignees  repo.AssigneeRepo
	Polls      repo.PollRepo
	Committer  repo.Committer
}

// SectionService manages the sections and checklist items of a trip.
// Every mutation is admin-only.
type SectionService struct {
	r SectionRepos
	options
}

// NewSectionService constructs a SectionService.
func NewSectionService(r SectionRepos, opts ...Option) *SectionService {
	return &SectionService{r: r, options: newOptions(opts)}
}

// List returns the trip's sections in display order with their items.
func (s *SectionService) List(ctx context.Context, tripID string) (domain.Checklist, error) {
	if _, err := loadTrip(ctx, s.r.Trips, tripID); err != nil {
		return domain.Checklist{}, fmt.Errorf("service.SectionService.List: %w", err)
	}
	c, err := s.r.Checklists.Get(ctx, tripID)
	if err != nil {
		return domain.Checklist{}, fmt.Errorf("service.SectionService.List: %w", err)
	}
	return c, nil
}

// AddSection derives a key from name and appends an empty custom section.
func (s *SectionService) AddSection(ctx context.Context, user domain.ActingUser, tripID, name string) (string, error) {
	if err := requireAdmin(user); err != nil {
		return "", err
	}
	key, err := domain.DeriveSectionKey(name)
	if err != nil {
		return "", err
	}
	c, err := s.List(ctx, tripID)
	if err != nil {
		return "", err
	}
	if c.Has(key) {
		return "", fmt.Errorf("%w: %q", domain.ErrDuplicateKey, key)
	}

	c.Add(key)
	if err := s.r.Checklists.Save(ctx, tripID, c); err != nil {
		return "", fmt.Errorf("service.SectionService.AddSection: %w", err)
	}
	return key, nil
}

// RenameSection re-keys a custom section and carries its items, detail
// entries, budget allocation, comments and assignee over to the new key.
// All of them are written together or not at all.
func (s *SectionService) RenameSection(ctx context.Context, user domain.ActingUser, tripID, oldKey, newName string) (string, error) {
	if err := requireAdmin(user); err != nil {
		return "", err
	}
	if domain.IsBuiltIn(oldKey) {
		return "", fmt.Errorf("%w: %q cannot be renamed", domain.ErrBuiltIn, oldKey)
	}
	newKey, err := domain.DeriveSectionKey(newName)
	if err != nil {
		return "", err
	}
	c, err := loadSections(ctx, s.r.Trips, s.r.Checklists, tripID, oldKey)
	if err != nil {
		return "", fmt.Errorf("service.SectionService.RenameSection: %w", err)
	}
	if newKey == oldKey {
		return oldKey, nil
	}
	if c.Has(newKey) {
		return "", fmt.Errorf("%w: %q", domain.ErrDuplicateKey, newKey)
	}

	st, err := s.loadState(ctx, tripID)
	if err != nil {
		return "", fmt.Errorf("service.SectionService.RenameSection: %w", err)
	}

	c.Rename(oldKey, newKey)
	if entries, ok := st.details[oldKey]; ok {
		st.details[newKey] = entries
		delete(st.details, oldKey)
	}
	if amount, ok := st.budget.Sections[oldKey]; ok {
		st.budget.Sections[newKey] = amount
		delete(st.budget.Sections, oldKey)
	}
	if userID, ok := st.assignees[oldKey]; ok {
		st.assignees[newKey] = userID
		delete(st.assignees, oldKey)
	}
	if sec, ok := st.trip.Sections[oldKey]; ok {
		st.trip.Sections[newKey] = sec
		delete(st.trip.Sections, oldKey)
	}

	if err := s.commit(ctx, tripID, c, st); err != nil {
		return "", fmt.Errorf("service.SectionService.RenameSection: %w", err)
	}
	return newKey, nil
}

// DeleteSection removes a custom section together with everything stored
// under its key, including the polls of its entries.
func (s *SectionService) DeleteSection(ctx context.Context, user domain.ActingUser, tripID, key string) error {
	if err := requireAdmin(user); err != nil {
		return err
	}
	if domain.IsBuiltIn(key) {
		return fmt.Errorf("%w: %q cannot be deleted", domain.ErrBuiltIn, key)
	}
	c, err := loadSections(ctx, s.r.Trips, s.r.Checklists, tripID, key)
	if err != nil {
		return fmt.Errorf("service.SectionService.DeleteSection: %w", err)
	}
	st, err := s.loadState(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.SectionService.DeleteSection: %w", err)
	}

	var entryIDs []string
	for _, e := range st.details[key] {
		entryIDs = append(entryIDs, e.ID)
	}
	c.Remove(key)
	delete(st.details, key)
	delete(st.budget.Sections, key)
	delete(st.assignees, key)
	delete(st.trip.Sections, key)

	if err := s.commit(ctx, tripID, c, st); err != nil {
		return fmt.Errorf("service.SectionService.DeleteSection: %w", err)
	}
	if err := s.r.Polls.Delete(ctx, tripID, entryIDs...); err != nil {
		return fmt.Errorf("service.SectionService.DeleteSection: %w", err)
	}
	return nil
}

// AddItem appends a checklist item. Blank text is rejected.
func (s *SectionService) AddItem(ctx context.Context, user domain.ActingUser, tripID, key, text string) error {
	if err := requireAdmin(user); err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: item text is required", domain.ErrValidation)
	}
	c, err := loadSections(ctx, s.r.Trips, s.r.Checklists, tripID, key)
	if err != nil {
		return fmt.Errorf("service.SectionService.AddItem: %w", err)
	}
	c.Items[key] = append(c.Items[key], text)
	if err := s.r.Checklists.Save(ctx, tripID, c); err != nil {
		return fmt.Errorf("service.SectionService.AddItem: %w", err)
	}
	return nil
}

// RemoveItem deletes the item at index from a section.
func (s *SectionService) RemoveItem(ctx context.Context, user domain.ActingUser, tripID, key string, index int) error {
	if err := requireAdmin(user); err != nil {
		return err
	}
	c, err := loadSections(ctx, s.r.Trips, s.r.Checklists, tripID, key)
	if err != nil {
		return fmt.Errorf("service.SectionService.RemoveItem: %w", err)
	}
	if index < 0 || index >= len(c.Items[key]) {
		return fmt.Errorf("%w: item %d of section %q", domain.ErrNotFound, index, key)
	}
	c.Items[key] = slices.Delete(c.Items[key], index, index+1)
	if err := s.r.Checklists.Save(ctx, tripID, c); err != nil {
		return fmt.Errorf("service.SectionService.RemoveItem: %w", err)
	}
	return nil
}

// sectionState is everything keyed by section that lives outside the checklist.
type sectionState struct {
	trip      domain.Trip
	details   domain.SectionDetails
	budget    domain.Budget
	assignees map[string]string
}

func (s *SectionService) loadState(ctx context.Context, tripID string) (sectionState, error) {
	var st sectionState
	var err error
	if st.trip, err = loadTrip(ctx, s.r.Trips, tripID); err != nil {
		return st, err
	}
	if st.trip.Sections == nil {
		st.trip.Sections = map[string]*domain.TripSection{}
	}
	if st.details, err = s.r.Details.Get(ctx, tripID); err != nil {
		return st, err
	}
	if st.budget, err = s.r.Budgets.Get(ctx, tripID); err != nil {
		return st, err
	}
	if st.assignees, err = s.r.Assignees.Get(ctx, tripID); err != nil {
		return st, err
	}
	return st, nil
}

func (s *SectionService) commit(ctx context.Context, tripID string, c domain.Checklist, st sectionState) error {
	b := repo.Batch{}
	if err := s.r.Checklists.Stage(b, tripID, c); err != nil {
		return err
	}
	if err := s.r.Details.Stage(b, tripID, st.details); err != nil {
		return err
	}
	if err := s.r.Budgets.Stage(b, tripID, st.budget); err != nil {
		return err
	}
	if err := s.r.Assignees.Stage(b, tripID, st.assignees); err != nil {
		return err
	}
	if err := s.r.Trips.StagePut(ctx, b, st.trip); err != nil {
		return err
	}
	return s.r.Committer.Commit(ctx, b)
}
