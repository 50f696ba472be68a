package repo

import (
	"context"
	"fmt"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/store"
)

// ProfileRepo stores one profile per user.
type ProfileRepo interface {
	// Get returns the user's profile. found is false when none was saved.
	Get(ctx context.Context, userID string) (p domain.Profile, found bool, err error)

	// Save overwrites the user's profile. Store errors (including
	// store.ErrQuotaExceeded) are returned wrapped.
	Save(ctx context.Context, userID string, p domain.Profile) error
}

type kvProfileRepo struct {
	s store.Store
}

// NewProfileRepo constructs a ProfileRepo backed by s.
func NewProfileRepo(s store.Store) ProfileRepo {
	return &kvProfileRepo{s: s}
}

func (r *kvProfileRepo) Get(ctx context.Context, userID string) (domain.Profile, bool, error) {
	p, found, err := getJSON[domain.Profile](ctx, r.s, profileKey(userID))
	if err != nil {
		return domain.Profile{}, false, fmt.Errorf("repo.ProfileRepo.Get: %w", err)
	}
	return p, found, nil
}

func (r *kvProfileRepo) Save(ctx context.Context, userID string, p domain.Profile) error {
	if err := setJSON(ctx, r.s, profileKey(userID), p); err != nil {
		return fmt.Errorf("repo.ProfileRepo.Save: %w", err)
	}
	return nil
}
