package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ustinerary/planner/internal/domain"
)

// CommentRequest is the body of POST /sections/{key}/comments.
type CommentRequest struct {
	Text string `json:"text"`
}

// ListComments handles GET /trips/{tripID}/sections/{key}/comments.
func (s *Server) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.svc.Comments.List(r.Context(), tripID(r), sectionKey(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	writeJSON(w, http.StatusOK, comments)
}

// AddComment handles POST /trips/{tripID}/sections/{key}/comments.
// Guests may comment; they are shown as "Traveler".
func (s *Server) AddComment(w http.ResponseWriter, r *http.Request) {
	var body CommentRequest
	if !bindBody(w, r, &body) {
		return
	}
	c, err := s.svc.Comments.Add(r.Context(), actingUser(r), tripID(r), sectionKey(r), body.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// DeleteComment handles DELETE /trips/{tripID}/sections/{key}/comments/{commentID}.
func (s *Server) DeleteComment(w http.ResponseWriter, r *http.Request) {
	removed, err := s.svc.Comments.Delete(r.Context(), tripID(r), sectionKey(r), chi.URLParam(r, "commentID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !removed {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrorDetail{Code: "not_found", Message: "comment not found"}})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
