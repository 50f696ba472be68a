package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/repo"
	"github.com/ustinerary/planner/internal/service"
	"github.com/ustinerary/planner/internal/store"
)

var (
	admin        = domain.ActingUser{ID: "u1", Name: "Steve Rogers", Role: domain.RoleAdmin}
	contributor  = domain.ActingUser{ID: "u4", Name: "Clark Kent", AvatarURL: "https://example.com/clark.png", Role: domain.RoleContributor}
	otherContrib = domain.ActingUser{ID: "u5", Name: "Matt Murdock", Role: domain.RoleContributor}
	viewer       = domain.ActingUser{ID: "u6", Name: "Dick Grayson", Role: domain.RoleViewer}
	guest        = domain.ActingUser{}
)

// fixedClock returns a clock that advances one minute per call.
func fixedClock() func() time.Time {
	t := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

// sequentialIDs returns an ID generator yielding id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// planner wires every service over one in-memory store, the way cmd/api does.
type planner struct {
	store    *store.Memory
	trips    *service.TripService
	sections *service.SectionService
	details  *service.DetailService
	budgets  *service.BudgetService
	comments *service.CommentService
	polls    *service.PollService
	assign   *service.AssignmentService
}

func newPlanner(t *testing.T, quota int) *planner {
	t.Helper()
	s := store.NewMemory(quota)
	opts := []service.Option{service.WithClock(fixedClock()), service.WithIDGenerator(sequentialIDs())}

	trips := repo.NewTripRepo(s)
	checklists := repo.NewChecklistRepo(s)
	details := repo.NewDetailRepo(s)
	budgets := repo.NewBudgetRepo(s)
	assignees := repo.NewAssigneeRepo(s)
	polls := repo.NewPollRepo(s)

	return &planner{
		store: s,
		trips: service.NewTripService(trips, nil, opts...),
		sections: service.NewSectionService(service.SectionRepos{
			Trips:      trips,
			Checklists: checklists,
			Details:    details,
			Budgets:    budgets,
			Assignees:  assignees,
			Polls:      polls,
			Committer:  repo.NewCommitter(s),
		}, opts...),
		details:  service.NewDetailService(trips, checklists, details, polls, opts...),
		budgets:  service.NewBudgetService(trips, checklists, budgets),
		comments: service.NewCommentService(trips, checklists, opts...),
		polls:    service.NewPollService(trips, details, polls),
		assign:   service.NewAssignmentService(trips, checklists, assignees),
	}
}

// newTrip creates a trip and returns its ID.
func (p *planner) newTrip(t *testing.T, name string) string {
	t.Helper()
	trip, err := p.trips.Create(context.Background(), domain.TripInput{Name: name, City: "Paris", Country: "France"})
	require.NoError(t, err)
	return trip.ID
}

// addCustomSection adds a custom section as admin and returns its key.
func (p *planner) addCustomSection(t *testing.T, tripID, name string) string {
	t.Helper()
	key, err := p.sections.AddSection(context.Background(), admin, tripID, name)
	require.NoError(t, err)
	return key
}

// storedPoll reads an entry's poll straight from the store, bypassing the
// visibility check of PollService.Get.
func (p *planner) storedPoll(t *testing.T, tripID, entryID string) domain.Poll {
	t.Helper()
	poll, err := repo.NewPollRepo(p.store).Get(context.Background(), tripID, entryID)
	require.NoError(t, err)
	return poll
}
