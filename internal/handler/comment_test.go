package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/handler"
)

type mockCommentServicer struct {
	list   func(ctx context.Context, tripID, key string) ([]domain.Comment, error)
	add    func(ctx context.Context, user domain.ActingUser, tripID, key, text string) (domain.Comment, error)
	delete func(ctx context.Context, tripID, key, commentID string) (bool, error)
}

func (m *mockCommentServicer) List(ctx context.Context, tripID, key string) ([]domain.Comment, error) {
	return m.list(ctx, tripID, key)
}
func (m *mockCommentServicer) Add(ctx context.Context, user domain.ActingUser, tripID, key, text string) (domain.Comment, error) {
	return m.add(ctx, user, tripID, key, text)
}
func (m *mockCommentServicer) Delete(ctx context.Context, tripID, key, commentID string) (bool, error) {
	return m.delete(ctx, tripID, key, commentID)
}

var _ handler.CommentServicer = (*mockCommentServicer)(nil)

func commentHandler(m *mockCommentServicer) http.Handler {
	return newHTTPHandler(handler.Services{Comments: m})
}

func TestListComments_EmptyIsArray(t *testing.T) {
	svc := &mockCommentServicer{
		list: func(_ context.Context, _, _ string) ([]domain.Comment, error) { return nil, nil },
	}

	rec := serve(t, commentHandler(svc), guest, http.MethodGet, "/trips/t1/sections/hotels/comments", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestAddComment_GuestAllowed(t *testing.T) {
	svc := &mockCommentServicer{
		add: func(_ context.Context, user domain.ActingUser, _, _, text string) (domain.Comment, error) {
			require.True(t, user.IsGuest())
			return domain.Comment{ID: "c1", UserID: domain.GuestUserID, UserName: domain.GuestUserName, Text: text}, nil
		},
	}

	rec := serve(t, commentHandler(svc), guest, http.MethodPost, "/trips/t1/sections/hotels/comments", map[string]any{"text": "Looks great"})

	require.Equal(t, http.StatusCreated, rec.Code)
	got := decode[domain.Comment](t, rec)
	assert.Equal(t, "Traveler", got.UserName)
	assert.Equal(t, "Looks great", got.Text)
}

func TestAddComment_422Blank(t *testing.T) {
	svc := &mockCommentServicer{
		add: func(_ context.Context, _ domain.ActingUser, _, _, _ string) (domain.Comment, error) {
			return domain.Comment{}, fmt.Errorf("%w: comment text is required", domain.ErrValidation)
		},
	}

	rec := serve(t, commentHandler(svc), admin, http.MethodPost, "/trips/t1/sections/hotels/comments", map[string]any{"text": "   "})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeleteComment_404WhenAbsent(t *testing.T) {
	svc := &mockCommentServicer{
		delete: func(_ context.Context, _, _, id string) (bool, error) { return id == "c1", nil },
	}
	h := commentHandler(svc)

	rec := serve(t, h, guest, http.MethodDelete, "/trips/t1/sections/hotels/comments/c1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(t, h, guest, http.MethodDelete, "/trips/t1/sections/hotels/comments/c2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
