package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/service"
)

// mockPlaceFinder is a hand-written test double for service.PlaceFinder.
type mockPlaceFinder struct {
	geocode func(ctx context.Context, text string) ([]domain.Place, error)
	nearby  func(ctx context.Context, lat, lon float64, category string, offset int) ([]domain.Place, error)
}

func (m *mockPlaceFinder) Geocode(ctx context.Context, text string) ([]domain.Place, error) {
	return m.geocode(ctx, text)
}
func (m *mockPlaceFinder) Nearby(ctx context.Context, lat, lon float64, category string, offset int) ([]domain.Place, error) {
	return m.nearby(ctx, lat, lon, category, offset)
}

var _ service.PlaceFinder = (*mockPlaceFinder)(nil)

func parisTrips() []domain.Trip {
	lat, lon := 48.8566, 2.3522
	return []domain.Trip{
		{ID: "paris", Latitude: &lat, Longitude: &lon},
		{ID: "nowhere"},
	}
}

func TestPlacesService_Nearby_MapsCategory(t *testing.T) {
	trips := parisTrips()
	finder := &mockPlaceFinder{
		nearby: func(_ context.Context, lat, lon float64, category string, offset int) ([]domain.Place, error) {
			assert.InDelta(t, 48.8566, lat, 1e-9)
			assert.InDelta(t, 2.3522, lon, 1e-9)
			assert.Equal(t, "catering.restaurant", category)
			assert.Equal(t, 10, offset)
			return []domain.Place{{Name: "Le Procope"}}, nil
		},
	}
	svc := service.NewPlacesService(memoryTripRepo(&trips), finder)

	got, err := svc.Nearby(context.Background(), "paris", domain.SectionFoodDining, 10)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Le Procope", got[0].Name)
}

func TestPlacesService_Nearby_Degrades(t *testing.T) {
	trips := parisTrips()
	finder := &mockPlaceFinder{
		nearby: func(context.Context, float64, float64, string, int) ([]domain.Place, error) {
			return nil, errors.New("quota exceeded upstream")
		},
	}
	svc := service.NewPlacesService(memoryTripRepo(&trips), finder)

	got, err := svc.Nearby(context.Background(), "paris", domain.SectionHotels, 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = svc.Nearby(context.Background(), "nowhere", domain.SectionHotels, 0)
	require.NoError(t, err)
	assert.Empty(t, got, "trips without coordinates have nothing nearby")
}

func TestPlacesService_Nearby_Errors(t *testing.T) {
	trips := parisTrips()
	svc := service.NewPlacesService(memoryTripRepo(&trips), nil)

	_, err := svc.Nearby(context.Background(), "paris", domain.SectionPackList, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Nearby(context.Background(), "paris", domain.SectionHotels, -1)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Nearby(context.Background(), "missing", domain.SectionHotels, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlacesService_Search(t *testing.T) {
	var trips []domain.Trip
	finder := &mockPlaceFinder{
		geocode: func(_ context.Context, text string) ([]domain.Place, error) {
			if text == "boom" {
				return nil, errors.New("timeout")
			}
			return []domain.Place{{Formatted: "Paris, France", City: text}}, nil
		},
	}
	svc := service.NewPlacesService(memoryTripRepo(&trips), finder)

	got, err := svc.Search(context.Background(), " Paris ")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Paris", got[0].City)

	got, err = svc.Search(context.Background(), "boom")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = svc.Search(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, got)
}
