package service

import (
	"context"
	"fmt"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/repo"
)

// PollService implements the up/down votes on detail entries.
type PollService struct {
	trips   repo.TripRepo
	details repo.DetailRepo
	polls   repo.PollRepo
}

// NewPollService constructs a PollService.
func NewPollService(trips repo.TripRepo, details repo.DetailRepo, polls repo.PollRepo) *PollService {
	return &PollService{trips: trips, details: details, polls: polls}
}

// Get returns the tally of an entry user can see.
func (s *PollService) Get(ctx context.Context, user domain.ActingUser, tripID, entryID string) (domain.Poll, error) {
	if _, err := s.visibleEntry(ctx, user, tripID, entryID); err != nil {
		return domain.Poll{}, fmt.Errorf("service.PollService.Get: %w", err)
	}
	p, err := s.polls.Get(ctx, tripID, entryID)
	if err != nil {
		return domain.Poll{}, fmt.Errorf("service.PollService.Get: %w", err)
	}
	return p, nil
}

// Vote records user's vote on an entry that has polling enabled. Each user
// votes at most once per entry.
func (s *PollService) Vote(ctx context.Context, user domain.ActingUser, tripID, entryID, choice string) (domain.Poll, error) {
	if user.IsGuest() {
		return domain.Poll{}, fmt.Errorf("%w: sign in to vote", domain.ErrForbidden)
	}
	c, err := domain.ParseChoice(choice)
	if err != nil {
		return domain.Poll{}, err
	}
	entry, err := s.visibleEntry(ctx, user, tripID, entryID)
	if err != nil {
		return domain.Poll{}, fmt.Errorf("service.PollService.Vote: %w", err)
	}
	if !entry.PollingEnabled {
		return domain.Poll{}, fmt.Errorf("%w: polling is not enabled for entry %q", domain.ErrValidation, entryID)
	}

	p, err := s.polls.Get(ctx, tripID, entryID)
	if err != nil {
		return domain.Poll{}, fmt.Errorf("service.PollService.Vote: %w", err)
	}
	if err := p.Cast(user.ID, c); err != nil {
		return domain.Poll{}, err
	}
	if err := s.polls.Save(ctx, tripID, entryID, p); err != nil {
		return domain.Poll{}, fmt.Errorf("service.PollService.Vote: %w", err)
	}
	return p, nil
}

// visibleEntry finds entryID in the trip. Entries hidden from user read as
// not found.
func (s *PollService) visibleEntry(ctx context.Context, user domain.ActingUser, tripID, entryID string) (domain.DetailEntry, error) {
	if _, err := loadTrip(ctx, s.trips, tripID); err != nil {
		return domain.DetailEntry{}, err
	}
	all, err := s.details.Get(ctx, tripID)
	if err != nil {
		return domain.DetailEntry{}, err
	}
	entry, _, ok := all.Lookup(entryID)
	if !ok || !domain.Visible(entry, user) {
		return domain.DetailEntry{}, fmt.Errorf("%w: entry %q", domain.ErrNotFound, entryID)
	}
	return entry, nil
}
