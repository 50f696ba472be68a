package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/repo"
	"github.com/ustinerary/planner/internal/service"
	"github.com/ustinerary/planner/internal/store"
)

func TestCommentService_AddAndList(t *testing.T) {
	p := newPlanner(t, 0)
	ctx := context.Background()
	tripID := p.newTrip(t, "Paris Trip")

	first, err := p.comments.Add(ctx, contributor, tripID, domain.SectionHotels, "  Near the metro please ")
	require.NoError(t, err)
	_, err = p.comments.Add(ctx, guest, tripID, domain.SectionHotels, "Any pool?")
	require.NoError(t, err)

	got, err := p.comments.List(ctx, tripID, domain.SectionHotels)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID, "oldest first")
	assert.Equal(t, "Near the metro please", got[0].Text)
	assert.Equal(t, "Clark Kent", got[0].UserName)
	assert.Equal(t, domain.GuestUserID, got[1].UserID)
	assert.Equal(t, domain.GuestUserName, got[1].UserName)
}

func TestCommentService_Add_BlankText(t *testing.T) {
	p := newPlanner(t, 0)
	ctx := context.Background()
	tripID := p.newTrip(t, "Paris Trip")

	_, err := p.comments.Add(ctx, admin, tripID, domain.SectionHotels, " \n\t ")

	assert.ErrorIs(t, err, domain.ErrValidation)
	got, err := p.comments.List(ctx, tripID, domain.SectionHotels)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCommentService_Add_UnknownTrip(t *testing.T) {
	p := newPlanner(t, 0)

	_, err := p.comments.Add(context.Background(), admin, "missing", domain.SectionHotels, "hi")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCommentService_Add_UnknownSection(t *testing.T) {
	p := newPlanner(t, 0)
	ctx := context.Background()
	tripID := p.newTrip(t, "Paris Trip")

	_, err := p.comments.Add(ctx, viewer, tripID, "noSuchSection", "orphan")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// A section created later under that key starts with no discussion.
	key := p.addCustomSection(t, tripID, "No Such Section")
	require.Equal(t, "noSuchSection", key)
	got, err := p.comments.List(ctx, tripID, key)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCommentService_Add_QuotaDropsAvatar(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory(0)
	trips := repo.NewTripRepo(s)
	require.NoError(t, trips.Put(ctx, domain.Trip{ID: "t1"}))

	// Allow the comment itself but not a large embedded avatar.
	tight := store.NewMemory(s.Used() + 400)
	tightTrips := repo.NewTripRepo(tight)
	require.NoError(t, tightTrips.Put(ctx, domain.Trip{ID: "t1"}))
	svc := service.NewCommentService(tightTrips, repo.NewChecklistRepo(tight))

	big := contributor
	big.AvatarURL = "data:image/png;base64," + strings.Repeat("A", 1000)

	c, err := svc.Add(ctx, big, "t1", domain.SectionHotels, "Booked!")

	require.NoError(t, err)
	assert.Empty(t, c.AvatarURL)
	got, err := svc.List(ctx, "t1", domain.SectionHotels)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].AvatarURL)
}

func TestCommentService_Delete(t *testing.T) {
	p := newPlanner(t, 0)
	ctx := context.Background()
	tripID := p.newTrip(t, "Paris Trip")

	c, err := p.comments.Add(ctx, contributor, tripID, domain.SectionHotels, "Near the metro")
	require.NoError(t, err)

	removed, err := p.comments.Delete(ctx, tripID, domain.SectionHotels, c.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = p.comments.Delete(ctx, tripID, domain.SectionHotels, c.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = p.comments.Delete(ctx, tripID, "nope", c.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}
