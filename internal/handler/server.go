// Package handler implements the HTTP handlers for the UsTinerary API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, section.go, detail.go, etc.) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/notify"
)

// TripServicer defines the trip operations the handlers depend on.
// Interfaces live here, in the consumer package, so handler tests can inject
// mocks without a store or service layer.
type TripServicer interface {
	Create(ctx context.Context, in domain.TripInput) (domain.Trip, error)
	Get(ctx context.Context, id string) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Delete(ctx context.Context, id string) error
	Rename(ctx context.Context, user domain.ActingUser, id, name string) (domain.Trip, error)
	UpdateDates(ctx context.Context, user domain.ActingUser, id string, start, end *openapi_types.Date) (domain.Trip, error)
	Upsert(ctx context.Context, trip domain.Trip) (domain.Trip, error)
}

// SectionServicer defines the checklist operations.
type SectionServicer interface {
	List(ctx context.Context, tripID string) (domain.Checklist, error)
	AddSection(ctx context.Context, user domain.ActingUser, tripID, name string) (string, error)
	RenameSection(ctx context.Context, user domain.ActingUser, tripID, oldKey, newName string) (string, error)
	DeleteSection(ctx context.Context, user domain.ActingUser, tripID, key string) error
	AddItem(ctx context.Context, user domain.ActingUser, tripID, key, text string) error
	RemoveItem(ctx context.Context, user domain.ActingUser, tripID, key string, index int) error
}

// DetailServicer defines the detail-entry and approval operations.
type DetailServicer interface {
	List(ctx context.Context, user domain.ActingUser, tripID, key string) ([]domain.EntryView, error)
	Save(ctx context.Context, user domain.ActingUser, tripID, key string, in domain.DetailInput) (domain.DetailEntry, error)
	Approve(ctx context.Context, user domain.ActingUser, tripID, key, entryID string) (domain.DetailEntry, error)
	Reject(ctx context.Context, user domain.ActingUser, tripID, key, entryID string) (domain.DetailEntry, error)
	Delete(ctx context.Context, user domain.ActingUser, tripID, key, entryID string) error
}

// BudgetServicer defines the budget ledger operations.
type BudgetServicer interface {
	Get(ctx context.Context, tripID string) (domain.BudgetSummary, error)
	SetTotal(ctx context.Context, user domain.ActingUser, tripID string, amount float64) (domain.BudgetSummary, error)
	SetAllocation(ctx context.Context, user domain.ActingUser, tripID, key string, amount float64) (domain.BudgetSummary, error)
}

// CommentServicer defines the section discussion operations.
type CommentServicer interface {
	List(ctx context.Context, tripID, key string) ([]domain.Comment, error)
	Add(ctx context.Context, user domain.ActingUser, tripID, key, text string) (domain.Comment, error)
	Delete(ctx context.Context, tripID, key, commentID string) (bool, error)
}

// PollServicer defines the voting operations.
type PollServicer interface {
	Get(ctx context.Context, user domain.ActingUser, tripID, entryID string) (domain.Poll, error)
	Vote(ctx context.Context, user domain.ActingUser, tripID, entryID, choice string) (domain.Poll, error)
}

// AssignmentServicer defines the section assignee operations.
type AssignmentServicer interface {
	List(ctx context.Context, tripID string) (map[string]string, error)
	Assign(ctx context.Context, user domain.ActingUser, tripID, key, userID string) (map[string]string, error)
}

// PlacesServicer defines the explore operations.
type PlacesServicer interface {
	Nearby(ctx context.Context, tripID, category string, offset int) ([]domain.Place, error)
	Search(ctx context.Context, query string) ([]domain.Place, error)
}

// ProfileServicer defines the personal profile operations.
type ProfileServicer interface {
	Get(ctx context.Context, user domain.ActingUser) (domain.Profile, error)
	Save(ctx context.Context, user domain.ActingUser, p domain.Profile) (domain.ProfileSaveResult, error)
}

// UserDirectory lists the users a client may sign in as.
type UserDirectory interface {
	List() []domain.User
	Lookup(id string) (domain.User, error)
}

// TokenIssuer signs the token that carries a chosen user.
type TokenIssuer interface {
	Issue(user domain.User) (string, time.Time, error)
}

// ChangeFeed hands out subscriptions to store change notifications.
type ChangeFeed interface {
	Subscribe() *notify.Subscriber
	Unsubscribe(s *notify.Subscriber)
}

// Services groups every dependency of Server. Tests set only the fields the
// routes they exercise need.
type Services struct {
	Trips       TripServicer
	Sections    SectionServicer
	Details     DetailServicer
	Budgets     BudgetServicer
	Comments    CommentServicer
	Polls       PollServicer
	Assignments AssignmentServicer
	Places      PlacesServicer
	Profiles    ProfileServicer
	Users       UserDirectory
	Tokens      TokenIssuer
	Changes     ChangeFeed
}

// Server holds the handler dependencies.
type Server struct {
	svc            Services
	allowedOrigins []string
}

// NewServer constructs the Server with all its dependencies. allowedOrigins
// is checked on websocket upgrades; empty allows any origin.
func NewServer(svc Services, allowedOrigins []string) *Server {
	return &Server{svc: svc, allowedOrigins: allowedOrigins}
}

// Routes returns the chi router for the whole API. Middleware is applied by
// the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Get("/users", s.ListUsers)
	r.Post("/auth/login", s.Login)
	r.Post("/auth/logout", s.Logout)
	r.Get("/auth/me", s.Me)
	r.Get("/profile", s.GetProfile)
	r.Put("/profile", s.SaveProfile)
	r.Get("/geocode", s.Geocode)
	r.Get("/events", s.Events)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpsertTrip)
			r.Delete("/", s.DeleteTrip)
			r.Put("/name", s.RenameTrip)
			r.Put("/dates", s.UpdateTripDates)

			r.Get("/places", s.NearbyPlaces)

			r.Get("/budget", s.GetBudget)
			r.Put("/budget/total", s.SetBudgetTotal)
			r.Put("/budget/sections/{key}", s.SetBudgetAllocation)

			r.Get("/assignees", s.ListAssignees)
			r.Put("/assignees/{key}", s.Assign)

			r.Get("/polls/{entryID}", s.GetPoll)
			r.Post("/polls/{entryID}/votes", s.Vote)

			r.Route("/sections", func(r chi.Router) {
				r.Get("/", s.ListSections)
				r.Post("/", s.AddSection)
				r.Put("/{key}", s.RenameSection)
				r.Delete("/{key}", s.DeleteSection)
				r.Post("/{key}/items", s.AddItem)
				r.Delete("/{key}/items/{index}", s.RemoveItem)

				r.Get("/{key}/details", s.ListDetails)
				r.Post("/{key}/details", s.CreateDetail)
				r.Put("/{key}/details/{entryID}", s.UpdateDetail)
				r.Delete("/{key}/details/{entryID}", s.DeleteDetail)
				r.Post("/{key}/details/{entryID}/approve", s.ApproveDetail)
				r.Post("/{key}/details/{entryID}/reject", s.RejectDetail)

				r.Get("/{key}/comments", s.ListComments)
				r.Post("/{key}/comments", s.AddComment)
				r.Delete("/{key}/comments/{commentID}", s.DeleteComment)
			})
		})
	})
	return r
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(Services{}, nil)
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
