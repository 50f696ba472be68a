package handler_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/handler"
	"github.com/ustinerary/planner/internal/identity"
)

type mockTokenIssuer struct {
	issue func(user domain.User) (string, time.Time, error)
}

func (m *mockTokenIssuer) Issue(user domain.User) (string, time.Time, error) {
	return m.issue(user)
}

var _ handler.TokenIssuer = (*mockTokenIssuer)(nil)

var expiry = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

func authHandler(issue func(domain.User) (string, time.Time, error)) http.Handler {
	return newHTTPHandler(handler.Services{
		Users:  identity.NewDirectory(identity.TestUsers),
		Tokens: &mockTokenIssuer{issue: issue},
	})
}

func TestListUsers(t *testing.T) {
	rec := serve(t, authHandler(nil), guest, http.MethodGet, "/users", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	users := decode[[]domain.User](t, rec)
	assert.Len(t, users, len(identity.TestUsers))
}

func TestLogin_IssuesTokenForDirectoryUser(t *testing.T) {
	h := authHandler(func(u domain.User) (string, time.Time, error) {
		return "token-" + u.ID, expiry, nil
	})

	rec := serve(t, h, guest, http.MethodPost, "/auth/login", map[string]any{"userId": "u4"})

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[handler.LoginResponse](t, rec)
	assert.Equal(t, "token-u4", got.Token)
	assert.Equal(t, domain.RoleContributor, got.User.Role)
	assert.True(t, expiry.Equal(got.ExpiresAt))
}

func TestLogin_Errors(t *testing.T) {
	h := authHandler(func(domain.User) (string, time.Time, error) {
		return "", time.Time{}, errors.New("signing failed")
	})

	assert.Equal(t, http.StatusNotFound, serve(t, h, guest, http.MethodPost, "/auth/login", map[string]any{"userId": "u99"}).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, serve(t, h, guest, http.MethodPost, "/auth/login", map[string]any{}).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(t, h, guest, http.MethodPost, "/auth/login", map[string]any{"userId": "u1"}).Code)
}

func TestMe(t *testing.T) {
	h := authHandler(nil)

	rec := serve(t, h, guest, http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":null}`, rec.Body.String())

	rec = serve(t, h, contributor, http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[handler.MeResponse](t, rec)
	require.NotNil(t, me.User)
	assert.Equal(t, "clark@example.com", me.User.Email)
}

func TestLogout_204(t *testing.T) {
	rec := serve(t, authHandler(nil), admin, http.MethodPost, "/auth/logout", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
