// Package service contains the business logic of the UsTinerary planner.
// Services validate inputs, enforce role rules and orchestrate repo calls.
// No storage details live here: services depend on repo interfaces.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/repo"
)

// DefaultPhotoTimeout bounds the cover photo lookup during trip creation.
const DefaultPhotoTimeout = 5 * time.Second

// Option configures the collaborators shared by every service.
type Option func(*options)

type options struct {
	now          func() time.Time
	newID        func() string
	log          *slog.Logger
	photoTimeout time.Duration
}

func newOptions(opts []Option) options {
	o := options{
		now:          time.Now,
		newID:        func() string { return uuid.NewString() },
		log:          slog.Default(),
		photoTimeout: DefaultPhotoTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock replaces the wall clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator replaces the uuid generator used for new records.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

// WithLogger sets the logger used for degraded paths.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithPhotoTimeout bounds the cover photo lookup.
func WithPhotoTimeout(d time.Duration) Option {
	return func(o *options) { o.photoTimeout = d }
}

func requireAdmin(user domain.ActingUser) error {
	if !user.IsAdmin() {
		return fmt.Errorf("%w: admin role required", domain.ErrForbidden)
	}
	return nil
}

// loadTrip returns the trip or domain.ErrNotFound.
func loadTrip(ctx context.Context, trips repo.TripRepo, id string) (domain.Trip, error) {
	trip, found, err := trips.Get(ctx, id)
	if err != nil {
		return domain.Trip{}, err
	}
	if !found {
		return domain.Trip{}, fmt.Errorf("%w: trip %q", domain.ErrNotFound, id)
	}
	return trip, nil
}

// loadSections returns the trip's checklist after checking that the trip and
// section key both exist.
func loadSections(ctx context.Context, trips repo.TripRepo, checklists repo.ChecklistRepo, tripID, key string) (domain.Checklist, error) {
	if _, err := loadTrip(ctx, trips, tripID); err != nil {
		return domain.Checklist{}, err
	}
	c, err := checklists.Get(ctx, tripID)
	if err != nil {
		return domain.Checklist{}, err
	}
	if !c.Has(key) {
		return domain.Checklist{}, fmt.Errorf("%w: section %q", domain.ErrNotFound, key)
	}
	return c, nil
}
