package handler

import (
	"net/http"

	"github.com/ustinerary/planner/internal/domain"
)

// ProfileResponse is the body of PUT /profile.
type ProfileResponse struct {
	Profile       domain.Profile `json:"profile"`
	AvatarDropped bool           `json:"avatarDropped"`
}

// GetProfile handles GET /profile for the signed-in user.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Profiles.Get(r.Context(), actingUser(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// SaveProfile handles PUT /profile. When storage is full the avatar is
// dropped and avatarDropped is set in the response.
func (s *Server) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var body domain.Profile
	if !bindBody(w, r, &body) {
		return
	}
	user := actingUser(r)
	res, err := s.svc.Profiles.Save(r.Context(), user, body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	saved, err := s.svc.Profiles.Get(r.Context(), user)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{Profile: saved, AvatarDropped: res.AvatarDropped})
}
