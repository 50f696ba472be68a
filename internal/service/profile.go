package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/repo"
	"github.com/ustinerary/planner/internal/store"
)

// ProfileService manages the signed-in user's own profile.
type ProfileService struct {
	repo repo.ProfileRepo
	options
}

// NewProfileService constructs a ProfileService.
func NewProfileService(r repo.ProfileRepo, opts ...Option) *ProfileService {
	return &ProfileService{repo: r, options: newOptions(opts)}
}

// Get returns the stored profile, or one seeded from the identity.
func (s *ProfileService) Get(ctx context.Context, user domain.ActingUser) (domain.Profile, error) {
	if user.IsGuest() {
		return domain.Profile{}, fmt.Errorf("%w: sign in to view a profile", domain.ErrForbidden)
	}
	p, found, err := s.repo.Get(ctx, user.ID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.ProfileService.Get: %w", err)
	}
	if !found {
		p = domain.Profile{Name: user.Name, AvatarURL: user.AvatarURL}
	}
	return p, nil
}

// Save stores the profile. When the store is full the avatar is dropped and
// the rest of the profile is saved.
func (s *ProfileService) Save(ctx context.Context, user domain.ActingUser, p domain.Profile) (domain.ProfileSaveResult, error) {
	if user.IsGuest() {
		return domain.ProfileSaveResult{}, fmt.Errorf("%w: sign in to edit a profile", domain.ErrForbidden)
	}
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)

	var res domain.ProfileSaveResult
	err := s.repo.Save(ctx, user.ID, p)
	if errors.Is(err, store.ErrQuotaExceeded) && p.AvatarURL != "" {
		s.log.WarnContext(ctx, "avatar image too large to save, dropping it", "user_id", user.ID)
		p.AvatarURL = ""
		res.AvatarDropped = true
		err = s.repo.Save(ctx, user.ID, p)
	}
	if err != nil {
		return domain.ProfileSaveResult{}, fmt.Errorf("service.ProfileService.Save: %w", err)
	}
	return res, nil
}
