package handler

import (
	"net/http"

	"github.com/ustinerary/planner/internal/domain"
)

// AmountRequest is the body of the budget PUT routes.
type AmountRequest struct {
	Amount *float64 `json:"amount"`
}

// AssignRequest is the body of PUT /assignees/{key}. An empty UserID clears
// the assignment.
type AssignRequest struct {
	UserID string `json:"userId"`
}

// VoteRequest is the body of POST /polls/{entryID}/votes.
type VoteRequest struct {
	Choice string `json:"choice"`
}

// PollResponse is a tally with its rounded percentages.
type PollResponse struct {
	Up          int                      `json:"up"`
	Down        int                      `json:"down"`
	UpPercent   int                      `json:"upPercent"`
	DownPercent int                      `json:"downPercent"`
	Voters      map[string]domain.Choice `json:"voters"`
}

// GetBudget handles GET /trips/{tripID}/budget.
func (s *Server) GetBudget(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.Budgets.Get(r.Context(), tripID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// SetBudgetTotal handles PUT /trips/{tripID}/budget/total.
func (s *Server) SetBudgetTotal(w http.ResponseWriter, r *http.Request) {
	amount, ok := bindAmount(w, r)
	if !ok {
		return
	}
	sum, err := s.svc.Budgets.SetTotal(r.Context(), actingUser(r), tripID(r), amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// SetBudgetAllocation handles PUT /trips/{tripID}/budget/sections/{key}.
func (s *Server) SetBudgetAllocation(w http.ResponseWriter, r *http.Request) {
	amount, ok := bindAmount(w, r)
	if !ok {
		return
	}
	sum, err := s.svc.Budgets.SetAllocation(r.Context(), actingUser(r), tripID(r), sectionKey(r), amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func bindAmount(w http.ResponseWriter, r *http.Request) (float64, bool) {
	var body AmountRequest
	if !bindBody(w, r, &body) {
		return 0, false
	}
	if body.Amount == nil {
		requestError(w, "amount is required")
		return 0, false
	}
	return *body.Amount, true
}

// ListAssignees handles GET /trips/{tripID}/assignees.
func (s *Server) ListAssignees(w http.ResponseWriter, r *http.Request) {
	m, err := s.svc.Assignments.List(r.Context(), tripID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNilMap(m))
}

// Assign handles PUT /trips/{tripID}/assignees/{key}.
func (s *Server) Assign(w http.ResponseWriter, r *http.Request) {
	var body AssignRequest
	if !bindBody(w, r, &body) {
		return
	}
	m, err := s.svc.Assignments.Assign(r.Context(), actingUser(r), tripID(r), sectionKey(r), body.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNilMap(m))
}

// GetPoll handles GET /trips/{tripID}/polls/{entryID}.
func (s *Server) GetPoll(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Polls.Get(r.Context(), actingUser(r), tripID(r), entryID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pollToResponse(p))
}

// Vote handles POST /trips/{tripID}/polls/{entryID}/votes.
func (s *Server) Vote(w http.ResponseWriter, r *http.Request) {
	var body VoteRequest
	if !bindBody(w, r, &body) {
		return
	}
	p, err := s.svc.Polls.Vote(r.Context(), actingUser(r), tripID(r), entryID(r), body.Choice)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pollToResponse(p))
}

func pollToResponse(p domain.Poll) PollResponse {
	up, down := p.Percentages()
	voters := p.Voters
	if voters == nil {
		voters = map[string]domain.Choice{}
	}
	return PollResponse{Up: p.Up, Down: p.Down, UpPercent: up, DownPercent: down, Voters: voters}
}

func nonNilMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
