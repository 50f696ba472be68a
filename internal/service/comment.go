package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/repo"
	"github.com/ustinerary/planner/internal/store"
)

// CommentService implements the per-section discussion stored on the trip record.
type CommentService struct {
	trips      repo.TripRepo
	checklists repo.ChecklistRepo
	options
}

// NewCommentService constructs a CommentService.
func NewCommentService(trips repo.TripRepo, checklists repo.ChecklistRepo, opts ...Option) *CommentService {
	return &CommentService{trips: trips, checklists: checklists, options: newOptions(opts)}
}

// List returns the section's comments, oldest first.
func (s *CommentService) List(ctx context.Context, tripID, key string) ([]domain.Comment, error) {
	trip, err := loadTrip(ctx, s.trips, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.CommentService.List: %w", err)
	}
	out := []domain.Comment{}
	if sec, ok := trip.Sections[key]; ok && sec != nil {
		out = append(out, sec.Comments...)
	}
	slices.SortStableFunc(out, func(a, b domain.Comment) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

// Add posts a comment as user to an existing section. Guests post as
// "Traveler". When the store is full the comment is retried once without the
// author avatar.
func (s *CommentService) Add(ctx context.Context, user domain.ActingUser, tripID, key, text string) (domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Comment{}, fmt.Errorf("%w: comment text is required", domain.ErrValidation)
	}
	if _, err := loadSections(ctx, s.trips, s.checklists, tripID, key); err != nil {
		return domain.Comment{}, fmt.Errorf("service.CommentService.Add: %w", err)
	}
	trip, err := loadTrip(ctx, s.trips, tripID)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("service.CommentService.Add: %w", err)
	}

	c := domain.Comment{
		ID:        s.newID(),
		UserID:    domain.GuestUserID,
		UserName:  domain.GuestUserName,
		Text:      text,
		CreatedAt: s.now(),
	}
	if !user.IsGuest() {
		c.UserID, c.UserName, c.AvatarURL = user.ID, user.Name, user.AvatarURL
	}

	sec := trip.Section(key)
	sec.Comments = append(sec.Comments, c)
	err = s.trips.Put(ctx, trip)
	if errors.Is(err, store.ErrQuotaExceeded) && c.AvatarURL != "" {
		s.log.WarnContext(ctx, "comment too large to store, dropping avatar", "trip_id", tripID, "section", key)
		c.AvatarURL = ""
		sec.Comments[len(sec.Comments)-1] = c
		err = s.trips.Put(ctx, trip)
	}
	if err != nil {
		return domain.Comment{}, fmt.Errorf("service.CommentService.Add: %w", err)
	}
	return c, nil
}

// Delete removes a comment by ID and reports whether it existed.
func (s *CommentService) Delete(ctx context.Context, tripID, key, commentID string) (bool, error) {
	trip, err := loadTrip(ctx, s.trips, tripID)
	if err != nil {
		return false, fmt.Errorf("service.CommentService.Delete: %w", err)
	}
	sec, ok := trip.Sections[key]
	if !ok || sec == nil {
		return false, nil
	}
	i := slices.IndexFunc(sec.Comments, func(c domain.Comment) bool { return c.ID == commentID })
	if i < 0 {
		return false, nil
	}
	sec.Comments = slices.Delete(sec.Comments, i, i+1)
	if err := s.trips.Put(ctx, trip); err != nil {
		return false, fmt.Errorf("service.CommentService.Delete: %w", err)
	}
	return true, nil
}
