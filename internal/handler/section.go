package handler

import (
	"net/http"

	"github.com/ustinerary/planner/internal/domain"
)

// SectionRequest is the body of POST /sections and PUT /sections/{key}.
type SectionRequest struct {
	Name string `json:"name"`
}

// SectionKeyResponse reports the key derived from a section name.
type SectionKeyResponse struct {
	Key string `json:"key"`
}

// ItemRequest is the body of POST /sections/{key}/items.
type ItemRequest struct {
	Text string `json:"text"`
}

// SectionView is one section in display order with its checklist items.
type SectionView struct {
	Key     string   `json:"key"`
	BuiltIn bool     `json:"builtIn"`
	Items   []string `json:"items"`
}

// ListSections handles GET /trips/{tripID}/sections.
func (s *Server) ListSections(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Sections.List(r.Context(), tripID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, checklistToResponse(c))
}

// AddSection handles POST /trips/{tripID}/sections.
func (s *Server) AddSection(w http.ResponseWriter, r *http.Request) {
	var body SectionRequest
	if !bindBody(w, r, &body) {
		return
	}
	key, err := s.svc.Sections.AddSection(r.Context(), actingUser(r), tripID(r), body.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, SectionKeyResponse{Key: key})
}

// RenameSection handles PUT /trips/{tripID}/sections/{key}.
func (s *Server) RenameSection(w http.ResponseWriter, r *http.Request) {
	var body SectionRequest
	if !bindBody(w, r, &body) {
		return
	}
	key, err := s.svc.Sections.RenameSection(r.Context(), actingUser(r), tripID(r), sectionKey(r), body.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SectionKeyResponse{Key: key})
}

// DeleteSection handles DELETE /trips/{tripID}/sections/{key}.
func (s *Server) DeleteSection(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Sections.DeleteSection(r.Context(), actingUser(r), tripID(r), sectionKey(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /trips/{tripID}/sections/{key}/items.
func (s *Server) AddItem(w http.ResponseWriter, r *http.Request) {
	var body ItemRequest
	if !bindBody(w, r, &body) {
		return
	}
	if err := s.svc.Sections.AddItem(r.Context(), actingUser(r), tripID(r), sectionKey(r), body.Text); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveItem handles DELETE /trips/{tripID}/sections/{key}/items/{index}.
func (s *Server) RemoveItem(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r, "index")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.Sections.RemoveItem(r.Context(), actingUser(r), tripID(r), sectionKey(r), index); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// checklistToResponse flattens a checklist into display order.
func checklistToResponse(c domain.Checklist) []SectionView {
	keys := c.Sections()
	out := make([]SectionView, 0, len(keys))
	for _, k := range keys {
		items := c.Items[k]
		if items == nil {
			items = []string{}
		}
		out = append(out, SectionView{Key: k, BuiltIn: domain.IsBuiltIn(k), Items: items})
	}
	return out
}
