package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/ustinerary/planner/internal/domain"
)

// CreateTripRequest is the body of POST /trips.
type CreateTripRequest struct {
	Name      string              `json:"name"`
	Location  string              `json:"location"`
	City      string              `json:"city"`
	Country   string              `json:"country"`
	Latitude  *float64            `json:"latitude"`
	Longitude *float64            `json:"longitude"`
	DateStart *openapi_types.Date `json:"dateStart"`
	DateEnd   *openapi_types.Date `json:"dateEnd"`
}

// RenameTripRequest is the body of PUT /trips/{tripID}/name.
type RenameTripRequest struct {
	Name string `json:"name"`
}

// TripDatesRequest is the body of PUT /trips/{tripID}/dates.
type TripDatesRequest struct {
	DateStart *openapi_types.Date `json:"dateStart"`
	DateEnd   *openapi_types.Date `json:"dateEnd"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body CreateTripRequest
	if !bindBody(w, r, &body) {
		return
	}
	created, err := s.svc.Trips.Create(r.Context(), domain.TripInput{
		Name:      body.Name,
		Location:  body.Location,
		City:      body.City,
		Country:   body.Country,
		Latitude:  body.Latitude,
		Longitude: body.Longitude,
		DateStart: body.DateStart,
		DateEnd:   body.DateEnd,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.svc.Trips.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	writeJSON(w, http.StatusOK, trips)
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.svc.Trips.Get(r.Context(), tripID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// UpsertTrip handles PUT /trips/{tripID}: a full replace, or an insert when
// no trip has the ID. The path ID wins over any ID in the body.
func (s *Server) UpsertTrip(w http.ResponseWriter, r *http.Request) {
	var body domain.Trip
	if !bindBody(w, r, &body) {
		return
	}
	body.ID = tripID(r)
	saved, err := s.svc.Trips.Upsert(r.Context(), body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Trips.Delete(r.Context(), tripID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenameTrip handles PUT /trips/{tripID}/name.
func (s *Server) RenameTrip(w http.ResponseWriter, r *http.Request) {
	var body RenameTripRequest
	if !bindBody(w, r, &body) {
		return
	}
	trip, err := s.svc.Trips.Rename(r.Context(), actingUser(r), tripID(r), body.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// UpdateTripDates handles PUT /trips/{tripID}/dates. Either bound may be
// omitted to clear it.
func (s *Server) UpdateTripDates(w http.ResponseWriter, r *http.Request) {
	var body TripDatesRequest
	if !bindBody(w, r, &body) {
		return
	}
	trip, err := s.svc.Trips.UpdateDates(r.Context(), actingUser(r), tripID(r), body.DateStart, body.DateEnd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}
