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

type mockSectionServicer struct {
	list          func(ctx context.Context, tripID string) (domain.Checklist, error)
	addSection    func(ctx context.Context, user domain.ActingUser, tripID, name string) (string, error)
	renameSection func(ctx context.Context, user domain.ActingUser, tripID, oldKey, newName string) (string, error)
	deleteSection func(ctx context.Context, user domain.ActingUser, tripID, key string) error
	addItem       func(ctx context.Context, user domain.ActingUser, tripID, key, text string) error
	removeItem    func(ctx context.Context, user domain.ActingUser, tripID, key string, index int) error
}

func (m *mockSectionServicer) List(ctx context.Context, tripID string) (domain.Checklist, error) {
	return m.list(ctx, tripID)
}
func (m *mockSectionServicer) AddSection(ctx context.Context, user domain.ActingUser, tripID, name string) (string, error) {
	return m.addSection(ctx, user, tripID, name)
}
func (m *mockSectionServicer) RenameSection(ctx context.Context, user domain.ActingUser, tripID, oldKey, newName string) (string, error) {
	return m.renameSection(ctx, user, tripID, oldKey, newName)
}
func (m *mockSectionServicer) DeleteSection(ctx context.Context, user domain.ActingUser, tripID, key string) error {
	return m.deleteSection(ctx, user, tripID, key)
}
func (m *mockSectionServicer) AddItem(ctx context.Context, user domain.ActingUser, tripID, key, text string) error {
	return m.addItem(ctx, user, tripID, key, text)
}
func (m *mockSectionServicer) RemoveItem(ctx context.Context, user domain.ActingUser, tripID, key string, index int) error {
	return m.removeItem(ctx, user, tripID, key, index)
}

var _ handler.SectionServicer = (*mockSectionServicer)(nil)

func sectionHandler(m *mockSectionServicer) http.Handler {
	return newHTTPHandler(handler.Services{Sections: m})
}

func TestListSections_DisplayOrder(t *testing.T) {
	c := domain.DefaultChecklist()
	c.Add("visaTasks")
	svc := &mockSectionServicer{
		list: func(_ context.Context, _ string) (domain.Checklist, error) { return c, nil },
	}

	rec := serve(t, sectionHandler(svc), guest, http.MethodGet, "/trips/t1/sections", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	views := decode[[]handler.SectionView](t, rec)
	require.Len(t, views, len(domain.BuiltInSections)+1)
	assert.Equal(t, domain.SectionHotels, views[0].Key)
	assert.True(t, views[0].BuiltIn)
	last := views[len(views)-1]
	assert.Equal(t, "visaTasks", last.Key)
	assert.False(t, last.BuiltIn)
	assert.NotNil(t, last.Items)
}

func TestAddSection_201ReturnsKey(t *testing.T) {
	svc := &mockSectionServicer{
		addSection: func(_ context.Context, _ domain.ActingUser, _, name string) (string, error) {
			return domain.DeriveSectionKey(name)
		},
	}

	rec := serve(t, sectionHandler(svc), admin, http.MethodPost, "/trips/t1/sections", map[string]any{"name": "Visa Tasks"})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "visaTasks", decode[handler.SectionKeyResponse](t, rec).Key)
}

func TestAddSection_409Duplicate(t *testing.T) {
	svc := &mockSectionServicer{
		addSection: func(_ context.Context, _ domain.ActingUser, _, _ string) (string, error) {
			return "", fmt.Errorf("service.SectionService.AddSection: %w: %q", domain.ErrDuplicateKey, "hotels")
		},
	}

	rec := serve(t, sectionHandler(svc), admin, http.MethodPost, "/trips/t1/sections", map[string]any{"name": "Hotels"})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate_key", errorCode(t, rec))
}

func TestRenameSection_PassesKeys(t *testing.T) {
	var gotOld, gotName string
	svc := &mockSectionServicer{
		renameSection: func(_ context.Context, _ domain.ActingUser, _, oldKey, newName string) (string, error) {
			gotOld, gotName = oldKey, newName
			return "permits", nil
		},
	}

	rec := serve(t, sectionHandler(svc), admin, http.MethodPut, "/trips/t1/sections/visaTasks", map[string]any{"name": "Permits"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "visaTasks", gotOld)
	assert.Equal(t, "Permits", gotName)
	assert.Equal(t, "permits", decode[handler.SectionKeyResponse](t, rec).Key)
}

func TestDeleteSection_409BuiltIn(t *testing.T) {
	svc := &mockSectionServicer{
		deleteSection: func(_ context.Context, _ domain.ActingUser, _, key string) error {
			return fmt.Errorf("%w: %q cannot be deleted", domain.ErrBuiltIn, key)
		},
	}

	rec := serve(t, sectionHandler(svc), admin, http.MethodDelete, "/trips/t1/sections/hotels", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "built_in_section", errorCode(t, rec))
}

func TestAddItem_204(t *testing.T) {
	var gotText string
	svc := &mockSectionServicer{
		addItem: func(_ context.Context, _ domain.ActingUser, _, _, text string) error {
			gotText = text
			return nil
		},
	}

	rec := serve(t, sectionHandler(svc), admin, http.MethodPost, "/trips/t1/sections/visaTasks/items", map[string]any{"text": "Apply for visa"})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "Apply for visa", gotText)
}

func TestRemoveItem_BindsIndex(t *testing.T) {
	got := -1
	svc := &mockSectionServicer{
		removeItem: func(_ context.Context, _ domain.ActingUser, _, _ string, index int) error {
			got = index
			return nil
		},
	}
	h := sectionHandler(svc)

	rec := serve(t, h, admin, http.MethodDelete, "/trips/t1/sections/packList/items/2", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 2, got)

	rec = serve(t, h, admin, http.MethodDelete, "/trips/t1/sections/packList/items/two", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
