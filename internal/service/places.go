package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/repo"
)

// PlaceFinder geocodes free text and searches places around a point.
type PlaceFinder interface {
	Geocode(ctx context.Context, text string) ([]domain.Place, error)
	Nearby(ctx context.Context, lat, lon float64, category string, offset int) ([]domain.Place, error)
}

// placeCategories maps the explorable sections onto provider categories.
var placeCategories = map[string]string{
	domain.SectionHotels:      "accommodation.hotel",
	domain.SectionAttractions: "tourism.attraction",
	domain.SectionFoodDining:  "catering.restaurant",
}

// PlacesService backs the explore view of a trip. Provider failures degrade
// to empty results.
type PlacesService struct {
	trips  repo.TripRepo
	finder PlaceFinder
	options
}

// NewPlacesService constructs a PlacesService. finder may be nil.
func NewPlacesService(trips repo.TripRepo, finder PlaceFinder, opts ...Option) *PlacesService {
	return &PlacesService{trips: trips, finder: finder, options: newOptions(opts)}
}

// Nearby lists places of the given section category around the trip.
func (s *PlacesService) Nearby(ctx context.Context, tripID, category string, offset int) ([]domain.Place, error) {
	providerCategory, ok := placeCategories[category]
	if !ok {
		return nil, fmt.Errorf("%w: unknown place category %q", domain.ErrValidation, category)
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", domain.ErrValidation)
	}
	trip, err := loadTrip(ctx, s.trips, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.PlacesService.Nearby: %w", err)
	}
	if !trip.HasCoordinates() || s.finder == nil {
		return []domain.Place{}, nil
	}

	places, err := s.finder.Nearby(ctx, *trip.Latitude, *trip.Longitude, providerCategory, offset)
	if err != nil {
		s.log.WarnContext(ctx, "nearby places lookup failed", "trip_id", tripID, "category", category, "error", err)
		return []domain.Place{}, nil
	}
	if places == nil {
		places = []domain.Place{}
	}
	return places, nil
}

// Search geocodes a free-text destination.
func (s *PlacesService) Search(ctx context.Context, query string) ([]domain.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" || s.finder == nil {
		return []domain.Place{}, nil
	}
	places, err := s.finder.Geocode(ctx, query)
	if err != nil {
		s.log.WarnContext(ctx, "geocode lookup failed", "query", query, "error", err)
		return []domain.Place{}, nil
	}
	if places == nil {
		places = []domain.Place{}
	}
	return places, nil
}
