package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/repo"
)

// DetailService implements the structured detail entries of a section and
// their approval workflow.
type DetailService struct {
	trips      repo.TripRepo
	checklists repo.ChecklistRepo
	details    repo.DetailRepo
	polls      repo.PollRepo
	options
}

// NewDetailService constructs a DetailService.
func NewDetailService(trips repo.TripRepo, checklists repo.ChecklistRepo, details repo.DetailRepo, polls repo.PollRepo, opts ...Option) *DetailService {
	return &DetailService{trips: trips, checklists: checklists, details: details, polls: polls, options: newOptions(opts)}
}

// List returns the entries of a section that user may see, in stored order,
// each flagged with whether user may edit or delete it.
func (s *DetailService) List(ctx context.Context, user domain.ActingUser, tripID, key string) ([]domain.EntryView, error) {
	if _, err := loadSections(ctx, s.trips, s.checklists, tripID, key); err != nil {
		return nil, fmt.Errorf("service.DetailService.List: %w", err)
	}
	all, err := s.details.Get(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.DetailService.List: %w", err)
	}
	views := []domain.EntryView{}
	for _, e := range all[key] {
		if !domain.Visible(e, user) {
			continue
		}
		canModify := domain.CanModify(e, user)
		views = append(views, domain.EntryView{DetailEntry: e, CanEdit: canModify, CanDelete: canModify})
	}
	return views, nil
}

// Save creates an entry when in.EntryID is empty and updates it otherwise.
// The payload must be the variant of the section and pass its date checks
// before anything is written.
func (s *DetailService) Save(ctx context.Context, user domain.ActingUser, tripID, key string, in domain.DetailInput) (domain.DetailEntry, error) {
	if _, err := loadSections(ctx, s.trips, s.checklists, tripID, key); err != nil {
		return domain.DetailEntry{}, fmt.Errorf("service.DetailService.Save: %w", err)
	}
	details, err := s.payload(key, in.Details)
	if err != nil {
		return domain.DetailEntry{}, err
	}
	if in.StatusOverride != nil && !user.IsAdmin() {
		return domain.DetailEntry{}, fmt.Errorf("%w: only admins may set the status", domain.ErrForbidden)
	}

	all, err := s.details.Get(ctx, tripID)
	if err != nil {
		return domain.DetailEntry{}, fmt.Errorf("service.DetailService.Save: %w", err)
	}

	now := s.now()
	var entry domain.DetailEntry
	if in.EntryID == "" {
		if !user.IsAdmin() && !user.IsContributor() {
			return domain.DetailEntry{}, fmt.Errorf("%w: only admins and contributors may add details", domain.ErrForbidden)
		}
		entry = domain.DetailEntry{
			ID:        s.newID(),
			Status:    domain.DefaultStatus(user.Role),
			CreatedBy: user.ID,
			CreatedAt: now,
		}
		if in.StatusOverride != nil {
			if !in.StatusOverride.Valid() {
				return domain.DetailEntry{}, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *in.StatusOverride)
			}
			entry.Status = *in.StatusOverride
		}
	} else {
		i, ok := all.Find(key, in.EntryID)
		if !ok {
			return domain.DetailEntry{}, fmt.Errorf("service.DetailService.Save: %w: entry %q", domain.ErrNotFound, in.EntryID)
		}
		entry = all[key][i]
		if !domain.CanModify(entry, user) {
			return domain.DetailEntry{}, fmt.Errorf("%w: entry %q is not editable", domain.ErrForbidden, entry.ID)
		}
		if in.StatusOverride != nil {
			if err := domain.Transition(entry.Status, *in.StatusOverride); err != nil {
				return domain.DetailEntry{}, err
			}
			entry.Status = *in.StatusOverride
		}
	}
	entry.Notes = in.Notes
	entry.PollingEnabled = in.PollingEnabled
	entry.Details = details
	entry.UpdatedAt = now

	if i, ok := all.Find(key, entry.ID); ok {
		all[key][i] = entry
	} else {
		all[key] = append(all[key], entry)
	}
	if err := s.details.Save(ctx, tripID, all); err != nil {
		return domain.DetailEntry{}, fmt.Errorf("service.DetailService.Save: %w", err)
	}
	return entry, nil
}

// payload checks that d is the variant section key accepts and validates it.
// A nil payload becomes the empty variant.
func (s *DetailService) payload(key string, d domain.Details) (domain.Details, error) {
	want := domain.KindForSection(key)
	if d == nil {
		empty, err := domain.DecodeDetails(want, nil)
		if err != nil {
			return nil, err
		}
		d = empty
	}
	if d.Kind() != want {
		return nil, fmt.Errorf("%w: section %q takes %s details, got %s", domain.ErrValidation, key, want, d.Kind())
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Approve moves an entry to approved. Admin only.
func (s *DetailService) Approve(ctx context.Context, user domain.ActingUser, tripID, key, entryID string) (domain.DetailEntry, error) {
	return s.setStatus(ctx, user, tripID, key, entryID, domain.StatusApproved)
}

// Reject moves an entry to rejected. Admin only.
func (s *DetailService) Reject(ctx context.Context, user domain.ActingUser, tripID, key, entryID string) (domain.DetailEntry, error) {
	return s.setStatus(ctx, user, tripID, key, entryID, domain.StatusRejected)
}

func (s *DetailService) setStatus(ctx context.Context, user domain.ActingUser, tripID, key, entryID string, to domain.Status) (domain.DetailEntry, error) {
	if err := requireAdmin(user); err != nil {
		return domain.DetailEntry{}, err
	}
	all, i, err := s.find(ctx, tripID, key, entryID)
	if err != nil {
		return domain.DetailEntry{}, fmt.Errorf("service.DetailService.setStatus: %w", err)
	}
	entry := all[key][i]
	if err := domain.Transition(entry.Status, to); err != nil {
		return domain.DetailEntry{}, err
	}
	if entry.Status == to {
		return entry, nil
	}
	entry.Status = to
	entry.UpdatedAt = s.now()
	all[key][i] = entry
	if err := s.details.Save(ctx, tripID, all); err != nil {
		return domain.DetailEntry{}, fmt.Errorf("service.DetailService.setStatus: %w", err)
	}
	return entry, nil
}

// Delete removes an entry and its poll.
func (s *DetailService) Delete(ctx context.Context, user domain.ActingUser, tripID, key, entryID string) error {
	all, i, err := s.find(ctx, tripID, key, entryID)
	if err != nil {
		return fmt.Errorf("service.DetailService.Delete: %w", err)
	}
	if !domain.CanModify(all[key][i], user) {
		return fmt.Errorf("%w: entry %q is not deletable", domain.ErrForbidden, entryID)
	}
	all[key] = slices.Delete(all[key], i, i+1)
	if err := s.details.Save(ctx, tripID, all); err != nil {
		return fmt.Errorf("service.DetailService.Delete: %w", err)
	}
	if err := s.polls.Delete(ctx, tripID, entryID); err != nil {
		return fmt.Errorf("service.DetailService.Delete: %w", err)
	}
	return nil
}

func (s *DetailService) find(ctx context.Context, tripID, key, entryID string) (domain.SectionDetails, int, error) {
	if _, err := loadSections(ctx, s.trips, s.checklists, tripID, key); err != nil {
		return nil, 0, err
	}
	all, err := s.details.Get(ctx, tripID)
	if err != nil {
		return nil, 0, err
	}
	i, ok := all.Find(key, entryID)
	if !ok {
		return nil, 0, fmt.Errorf("%w: entry %q", domain.ErrNotFound, entryID)
	}
	return all, i, nil
}
