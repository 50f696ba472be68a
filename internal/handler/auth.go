package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/ustinerary/planner/internal/domain"
)

// LoginRequest is the body of POST /auth/login: the directory user to act as.
type LoginRequest struct {
	UserID string `json:"userId"`
}

// LoginResponse carries the bearer token for subsequent requests.
type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      domain.User `json:"user"`
}

// MeResponse describes the caller. User is null for guests.
type MeResponse struct {
	User *domain.User `json:"user"`
}

// ListUsers handles GET /users: the users a client may sign in as.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Users.List())
}

// Login handles POST /auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var body LoginRequest
	if !bindBody(w, r, &body) {
		return
	}
	if body.UserID == "" {
		requestError(w, "userId is required")
		return
	}
	user, err := s.svc.Users.Lookup(body.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	token, expires, err := s.svc.Tokens.Issue(user)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{Token: token, ExpiresAt: expires, User: user})
}

// Logout handles POST /auth/logout. Tokens are stateless, so the client
// signs out by dropping its token; the route exists for symmetry.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me.
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	acting := actingUser(r)
	if acting.IsGuest() {
		writeJSON(w, http.StatusOK, MeResponse{})
		return
	}
	user, err := s.svc.Users.Lookup(acting.ID)
	if errors.Is(err, domain.ErrNotFound) {
		// Token for a user no longer in the directory: report what it claims.
		user = domain.User{ID: acting.ID, Name: acting.Name, Role: acting.Role}
	} else if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MeResponse{User: &user})
}
