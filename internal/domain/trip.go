// Package domain contains the core data types for the UsTinerary trip planner.
// Apart from the date helpers of the OpenAPI runtime it has no dependencies
// and is imported by every other internal package (store, repo, service, handler).
package domain

import (
	"fmt"
	"strings"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// DefaultTripName is used whenever a trip is created or renamed with a blank name.
const DefaultTripName = "Untitled Trip"

// DefaultTripPhoto is the cover image used when no landmark photo can be found.
const DefaultTripPhoto = "https://images.unsplash.com/photo-1507525428034-b723cf961d3e?q=80&w=1200&auto=format"

// Trip is the top-level aggregate; checklist sections, details, budget,
// assignees and polls of a trip are stored under keys namespaced by its ID.
type Trip struct {
	ID               string                  `json:"id"`
	Name             string                  `json:"name"`
	Location         string                  `json:"location,omitempty"`
	City             string                  `json:"city,omitempty"`
	Country          string                  `json:"country,omitempty"`
	Latitude         *float64                `json:"latitude,omitempty"`
	Longitude        *float64                `json:"longitude,omitempty"`
	DateStart        *openapi_types.Date     `json:"dateStart,omitempty"`
	DateEnd          *openapi_types.Date     `json:"dateEnd,omitempty"`
	PhotoURL         string                  `json:"photoUrl,omitempty"`
	PhotoAttribution *Attribution            `json:"photoAttribution"`
	UseDefaultPhoto  bool                    `json:"useDefaultPhoto"`
	CreatedAt        time.Time               `json:"createdAt"`
	Sections         map[string]*TripSection `json:"sections,omitempty"`
}

// Attribution credits the photographer of a trip's cover photo.
type Attribution struct {
	Photographer string `json:"photographer"`
	PhotoLink    string `json:"photoLink"`
}

// TripSection is the per-section bag stored on the trip record itself.
// It is created lazily the first time a comment is posted to the section.
type TripSection struct {
	Comments []Comment `json:"comments"`
}

// TripInput carries the caller-supplied fields of a new trip.
type TripInput struct {
	Name      string
	Location  string
	City      string
	Country   string
	Latitude  *float64
	Longitude *float64
	DateStart *openapi_types.Date
	DateEnd   *openapi_types.Date
}

// Section returns the bag for key, creating it when absent.
func (t *Trip) Section(key string) *TripSection {
	if t.Sections == nil {
		t.Sections = map[string]*TripSection{}
	}
	s, ok := t.Sections[key]
	if !ok || s == nil {
		s = &TripSection{}
		t.Sections[key] = s
	}
	return s
}

// HasCoordinates reports whether the trip carries a geocoded position.
func (t Trip) HasCoordinates() bool {
	return t.Latitude != nil && t.Longitude != nil
}

// NormalizeTripName trims name and falls back to DefaultTripName when blank.
func NormalizeTripName(name string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return DefaultTripName
}

// ValidateTripDates rejects a date range whose end precedes its start.
// Either bound may be absent.
func ValidateTripDates(start, end *openapi_types.Date) error {
	if start == nil || end == nil {
		return nil
	}
	if end.Time.Before(start.Time) {
		return fmt.Errorf("%w: dateEnd must not be before dateStart", ErrValidation)
	}
	return nil
}
