package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ustinerary/planner/internal/domain"
)

// DetailRequest is the body of POST and PUT on /sections/{key}/details.
// Kind defaults to the variant of the section; Details is decoded as that
// variant. Status is honoured for admins only.
type DetailRequest struct {
	Kind           domain.DetailKind `json:"kind"`
	Notes          string            `json:"notes"`
	PollingEnabled bool              `json:"pollingEnabled"`
	Details        json.RawMessage   `json:"details"`
	Status         *domain.Status    `json:"status"`
}

// ListDetails handles GET /trips/{tripID}/sections/{key}/details.
// Only entries visible to the caller are returned.
func (s *Server) ListDetails(w http.ResponseWriter, r *http.Request) {
	views, err := s.svc.Details.List(r.Context(), actingUser(r), tripID(r), sectionKey(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if views == nil {
		views = []domain.EntryView{}
	}
	writeJSON(w, http.StatusOK, views)
}

// CreateDetail handles POST /trips/{tripID}/sections/{key}/details.
func (s *Server) CreateDetail(w http.ResponseWriter, r *http.Request) {
	s.saveDetail(w, r, "", http.StatusCreated)
}

// UpdateDetail handles PUT /trips/{tripID}/sections/{key}/details/{entryID}.
func (s *Server) UpdateDetail(w http.ResponseWriter, r *http.Request) {
	s.saveDetail(w, r, entryID(r), http.StatusOK)
}

func (s *Server) saveDetail(w http.ResponseWriter, r *http.Request, id string, status int) {
	var body DetailRequest
	if !bindBody(w, r, &body) {
		return
	}
	in, err := requestToDetailInput(sectionKey(r), id, body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	entry, err := s.svc.Details.Save(r.Context(), actingUser(r), tripID(r), sectionKey(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, status, entry)
}

// DeleteDetail handles DELETE /trips/{tripID}/sections/{key}/details/{entryID}.
func (s *Server) DeleteDetail(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Details.Delete(r.Context(), actingUser(r), tripID(r), sectionKey(r), entryID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApproveDetail handles POST .../details/{entryID}/approve.
func (s *Server) ApproveDetail(w http.ResponseWriter, r *http.Request) {
	entry, err := s.svc.Details.Approve(r.Context(), actingUser(r), tripID(r), sectionKey(r), entryID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// RejectDetail handles POST .../details/{entryID}/reject.
func (s *Server) RejectDetail(w http.ResponseWriter, r *http.Request) {
	entry, err := s.svc.Details.Reject(r.Context(), actingUser(r), tripID(r), sectionKey(r), entryID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// requestToDetailInput decodes the payload variant and builds the service input.
func requestToDetailInput(key, id string, body DetailRequest) (domain.DetailInput, error) {
	kind := body.Kind
	if kind == "" {
		kind = domain.KindForSection(key)
	}
	details, err := domain.DecodeDetails(kind, body.Details)
	if err != nil {
		return domain.DetailInput{}, err
	}
	return domain.DetailInput{
		EntryID:        id,
		Notes:          body.Notes,
		PollingEnabled: body.PollingEnabled,
		Details:        details,
		StatusOverride: body.Status,
	}, nil
}
