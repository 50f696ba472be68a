package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/repo"
)

// PhotoFinder looks up a landmark cover photo for a destination.
type PhotoFinder interface {
	LandmarkPhoto(ctx context.Context, city, country string) (domain.Photo, error)
}

// TripService implements business logic for Trip operations.
type TripService struct {
	repo   repo.TripRepo
	photos PhotoFinder
	options
}

// NewTripService constructs a TripService. photos may be nil, in which case
// every trip gets the default cover photo.
func NewTripService(r repo.TripRepo, photos PhotoFinder, opts ...Option) *TripService {
	return &TripService{repo: r, photos: photos, options: newOptions(opts)}
}

// Create validates and persists a new trip with a unique ID and a cover photo.
func (s *TripService) Create(ctx context.Context, in domain.TripInput) (domain.Trip, error) {
	if err := domain.ValidateTripDates(in.DateStart, in.DateEnd); err != nil {
		return domain.Trip{}, err
	}

	existing, err := s.repo.List(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	id := s.newID()
	for slices.ContainsFunc(existing, func(t domain.Trip) bool { return t.ID == id }) {
		id = s.newID()
	}

	trip := domain.Trip{
		ID:        id,
		Name:      domain.NormalizeTripName(in.Name),
		Location:  strings.TrimSpace(in.Location),
		City:      strings.TrimSpace(in.City),
		Country:   strings.TrimSpace(in.Country),
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		DateStart: in.DateStart,
		DateEnd:   in.DateEnd,
		CreatedAt: s.now(),
	}
	s.attachPhoto(ctx, &trip)

	if err := s.repo.Put(ctx, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return trip, nil
}

// attachPhoto asks the finder for a landmark photo under a timeout and falls
// back to the default photo on any failure.
func (s *TripService) attachPhoto(ctx context.Context, trip *domain.Trip) {
	trip.PhotoURL = domain.DefaultTripPhoto
	trip.UseDefaultPhoto = true

	city := cmp.Or(trip.City, trip.Location)
	if s.photos == nil || city == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.photoTimeout)
	defer cancel()

	photo, err := s.photos.LandmarkPhoto(ctx, city, trip.Country)
	if err != nil || photo.URL == "" {
		s.log.WarnContext(ctx, "cover photo lookup failed, using default", "city", city, "error", err)
		return
	}
	trip.PhotoURL = photo.URL
	trip.UseDefaultPhoto = false
	if photo.Photographer != "" || photo.PhotoLink != "" {
		trip.PhotoAttribution = &domain.Attribution{Photographer: photo.Photographer, PhotoLink: photo.PhotoLink}
	}
}

// Get returns a single trip by ID.
func (s *TripService) Get(ctx context.Context, id string) (domain.Trip, error) {
	trip, err := loadTrip(ctx, s.repo, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return trip, nil
}

// List returns all trips, newest first.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	slices.SortStableFunc(trips, func(a, b domain.Trip) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return trips, nil
}

// Delete removes a trip and all of its per-trip data. Deleting an unknown
// trip succeeds.
func (s *TripService) Delete(ctx context.Context, id string) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if !found {
		s.log.DebugContext(ctx, "deleted trip was already gone", "trip_id", id)
	}
	return nil
}

// Rename sets the trip name. A blank name becomes "Untitled Trip".
func (s *TripService) Rename(ctx context.Context, user domain.ActingUser, id, name string) (domain.Trip, error) {
	return s.mutate(ctx, user, id, "Rename", func(t *domain.Trip) error {
		t.Name = domain.NormalizeTripName(name)
		return nil
	})
}

// UpdateDates sets or clears the trip date range.
func (s *TripService) UpdateDates(ctx context.Context, user domain.ActingUser, id string, start, end *openapi_types.Date) (domain.Trip, error) {
	return s.mutate(ctx, user, id, "UpdateDates", func(t *domain.Trip) error {
		if err := domain.ValidateTripDates(start, end); err != nil {
			return err
		}
		t.DateStart, t.DateEnd = start, end
		return nil
	})
}

func (s *TripService) mutate(ctx context.Context, user domain.ActingUser, id, op string, fn func(*domain.Trip) error) (domain.Trip, error) {
	if err := requireAdmin(user); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	trip, err := loadTrip(ctx, s.repo, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	if err := fn(&trip); err != nil {
		return domain.Trip{}, err
	}
	if err := s.repo.Put(ctx, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	return trip, nil
}

// Upsert replaces the trip with the same ID or inserts it. Last write wins.
func (s *TripService) Upsert(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if strings.TrimSpace(trip.ID) == "" {
		return domain.Trip{}, fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	if err := domain.ValidateTripDates(trip.DateStart, trip.DateEnd); err != nil {
		return domain.Trip{}, err
	}
	trip.Name = domain.NormalizeTripName(trip.Name)
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = s.now()
	}
	if trip.PhotoURL == "" {
		trip.PhotoURL = domain.DefaultTripPhoto
		trip.UseDefaultPhoto = true
	}
	if err := s.repo.Put(ctx, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Upsert: %w", err)
	}
	return trip, nil
}
