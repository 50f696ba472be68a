package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/stretchr/testify/require"

	"github.com/ustinerary/planner/internal/domain"
	"github.com/ustinerary/planner/internal/handler"
	"github.com/ustinerary/planner/internal/identity"
)

var (
	admin       = domain.ActingUser{ID: "u1", Name: "Steve Rogers", Role: domain.RoleAdmin}
	contributor = domain.ActingUser{ID: "u4", Name: "Clark Kent", Role: domain.RoleContributor}
	guest       = domain.ActingUser{}
)

// ---- mock TripServicer -----------------------------------------------------

type mockTripServicer struct {
	create      func(ctx context.Context, in domain.TripInput) (domain.Trip, error)
	get         func(ctx context.Context, id string) (domain.Trip, error)
	list        func(ctx context.Context) ([]domain.Trip, error)
	delete      func(ctx context.Context, id string) error
	rename      func(ctx context.Context, user domain.ActingUser, id, name string) (domain.Trip, error)
	updateDates func(ctx context.Context, user domain.ActingUser, id string, start, end *openapi_types.Date) (domain.Trip, error)
	upsert      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
}

func (m *mockTripServicer) Create(ctx context.Context, in domain.TripInput) (domain.Trip, error) {
	return m.create(ctx, in)
}
func (m *mockTripServicer) Get(ctx context.Context, id string) (domain.Trip, error) {
	return m.get(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripServicer) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}
func (m *mockTripServicer) Rename(ctx context.Context, user domain.ActingUser, id, name string) (domain.Trip, error) {
	return m.rename(ctx, user, id, name)
}
func (m *mockTripServicer) UpdateDates(ctx context.Context, user domain.ActingUser, id string, start, end *openapi_types.Date) (domain.Trip, error) {
	return m.updateDates(ctx, user, id, start, end)
}
func (m *mockTripServicer) Upsert(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.upsert(ctx, trip)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given services into its chi router,
// the same way main.go does minus the middleware chain.
func newHTTPHandler(svc handler.Services) http.Handler {
	return handler.NewServer(svc, nil).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// serve sends one request as user and returns the recorder. A nil body
// sends no body.
func serve(t *testing.T, h http.Handler, user domain.ActingUser, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, jsonBody(t, body))
		req.Header.Set("Content-Type", "application/json")
	}
	req = req.WithContext(identity.WithUser(req.Context(), user))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[handler.ErrorResponse](t, rec).Error.Code
}

func date(t *testing.T, s string) *openapi_types.Date {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return &openapi_types.Date{Time: d}
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:        "t1",
		Name:      "Paris Trip",
		City:      "Paris",
		Country:   "France",
		PhotoURL:  domain.DefaultTripPhoto,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}
