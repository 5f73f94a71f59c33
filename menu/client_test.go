package menu_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	perrors "github.com/jrsteele09/restaurant-panel/internal/errors"
	"github.com/jrsteele09/restaurant-panel/menu"
	"github.com/jrsteele09/restaurant-panel/panelapi"
	"github.com/jrsteele09/restaurant-panel/request"
)

// fakeExecutor records descriptors and answers with a canned status and body.
type fakeExecutor struct {
	sent   []request.Descriptor
	status int
	body   any
}

func (f *fakeExecutor) Execute(_ context.Context, d request.Descriptor) (*http.Response, error) {
	f.sent = append(f.sent, d)
	rec := httptest.NewRecorder()
	rec.WriteHeader(f.status)
	if f.body != nil {
		_ = json.NewEncoder(rec).Encode(f.body)
	}
	return rec.Result(), nil
}

func TestCategories(t *testing.T) {
	exec := &fakeExecutor{status: http.StatusOK, body: []panelapi.Category{
		{ID: "c1", Slug: "starters", NameTr: "Başlangıçlar", NameEn: "Starters"},
		{ID: "c2", Slug: "mains", NameTr: "Ana Yemekler", NameEn: "Mains"},
	}}
	client := menu.NewClient(exec)

	categories, err := client.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	require.Equal(t, "Mains", categories[1].NameEn)
	require.Equal(t, http.MethodGet, exec.sent[0].Method)
	require.Equal(t, "/menu/category/list", exec.sent[0].Path)
}

func TestCategoryWrites(t *testing.T) {
	exec := &fakeExecutor{status: http.StatusOK, body: panelapi.Category{ID: "c1", NameTr: "Tatlılar", NameEn: "Desserts"}}
	client := menu.NewClient(exec)
	ctx := context.Background()

	created, err := client.AddCategory(ctx, panelapi.CategoryRequest{NameTr: "Tatlılar", NameEn: "Desserts"})
	require.NoError(t, err)
	require.Equal(t, "c1", created.ID)

	_, err = client.UpdateCategory(ctx, "c1", panelapi.CategoryRequest{NameTr: "Tatlı", NameEn: "Dessert"})
	require.NoError(t, err)

	exec.body = nil
	require.NoError(t, client.DeleteCategory(ctx, "c1"))

	require.Len(t, exec.sent, 3)
	require.Equal(t, http.MethodPost, exec.sent[0].Method)
	require.Equal(t, "/menu/category/add", exec.sent[0].Path)
	require.Equal(t, http.MethodPut, exec.sent[1].Method)
	require.Equal(t, "/menu/category/c1", exec.sent[1].Path)
	require.Equal(t, http.MethodDelete, exec.sent[2].Method)
	require.Equal(t, "/menu/category/c1", exec.sent[2].Path)
}

func TestItems(t *testing.T) {
	exec := &fakeExecutor{status: http.StatusOK, body: []panelapi.MenuItem{{ID: "i1", CategoryID: "c1", Name: "Mercimek", NameEn: "Lentil soup", Price1: 90}}}
	client := menu.NewClient(exec)
	ctx := context.Background()

	items, err := client.Items(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.InDelta(t, 90, items[0].Price1, 0.001)
	require.Equal(t, "/menu/items/c1", exec.sent[0].Path)

	exec.body = panelapi.MenuItem{ID: "i1", CategoryID: "c1"}
	_, err = client.UpdateItem(ctx, "i1", panelapi.MenuItemRequest{CategoryID: "c9", Name: "Mercimek", NameEn: "Lentil soup", Price1: 95})
	require.NoError(t, err)
	require.Equal(t, "/menu/items/i1", exec.sent[1].Path)
	body, ok := exec.sent[1].Body.(panelapi.MenuItemRequest)
	require.True(t, ok)
	require.Empty(t, body.CategoryID)
}

func TestReorderValidatesIDs(t *testing.T) {
	exec := &fakeExecutor{status: http.StatusOK}
	client := menu.NewClient(exec)
	ctx := context.Background()

	require.ErrorIs(t, client.ReorderCategories(ctx, nil), perrors.ErrInvalidRequest)
	require.ErrorIs(t, client.ReorderCategories(ctx, []string{"a", "b", "a"}), perrors.ErrInvalidRequest)
	require.ErrorIs(t, client.ReorderItems(ctx, "c1", []string{""}), perrors.ErrInvalidRequest)
	require.Empty(t, exec.sent)

	require.NoError(t, client.ReorderCategories(ctx, []string{"c2", "c1"}))
	require.NoError(t, client.ReorderItems(ctx, "c1", []string{"i2", "i1"}))
	require.Equal(t, "/menu/category/reorder", exec.sent[0].Path)
	require.Equal(t, panelapi.ReorderRequest{OrderedIDs: []string{"c2", "c1"}}, exec.sent[0].Body)
	require.Equal(t, "/menu/item/reorder/c1", exec.sent[1].Path)
}

func TestErrorStatusesSurface(t *testing.T) {
	exec := &fakeExecutor{status: http.StatusNotFound}
	client := menu.NewClient(exec)

	err := client.DeleteItem(context.Background(), "missing")
	require.ErrorIs(t, err, perrors.ErrNotFound)

	exec.status = http.StatusForbidden
	_, err = client.Categories(context.Background())
	require.ErrorIs(t, err, perrors.ErrPersistentAuthorizationFailure)
}
