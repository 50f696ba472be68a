package handler

import (
	"net/http"

	"github.com/ustinerary/planner/internal/domain"
)

// NearbyPlaces handles GET /trips/{tripID}/places?category=&offset=.
// Lookup failures yield an empty list rather than an error.
func (s *Server) NearbyPlaces(w http.ResponseWriter, r *http.Request) {
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, r, err)
		return
	}
	category := r.URL.Query().Get("category")
	if category == "" {
		category = domain.SectionAttractions
	}
	places, err := s.svc.Places.Nearby(r.Context(), tripID(r), category, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePlaces(w, places)
}

// Geocode handles GET /geocode?q=.
func (s *Server) Geocode(w http.ResponseWriter, r *http.Request) {
	places, err := s.svc.Places.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePlaces(w, places)
}

func writePlaces(w http.ResponseWriter, places []domain.Place) {
	if places == nil {
		places = []domain.Place{}
	}
	writeJSON(w, http.StatusOK, places)
}
