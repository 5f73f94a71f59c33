package content_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	perrors "github.com/jrsteele09/restaurant-panel/internal/errors"
	"github.com/jrsteele09/restaurant-panel/panelapi"
	"github.com/jrsteele09/restaurant-panel/server/content"
)

func addCategory(t *testing.T, s *content.Store, tr, en string) panelapi.Category {
	t.Helper()
	category, err := s.AddCategory(panelapi.CategoryRequest{NameTr: tr, NameEn: en})
	require.NoError(t, err)
	return category
}

func TestCategoryLifecycle(t *testing.T) {
	s := content.NewStore()
	starters := addCategory(t, s, "Başlangıçlar", "Cold Starters")
	mains := addCategory(t, s, "Ana Yemekler", "Mains")
	require.Equal(t, "cold-starters", starters.Slug)

	updated, err := s.UpdateCategory(mains.ID, panelapi.CategoryRequest{NameTr: "Ana Yemek", NameEn: "Main Dishes"})
	require.NoError(t, err)
	require.Equal(t, "main-dishes", updated.Slug)

	_, err = s.UpdateCategory("missing", panelapi.CategoryRequest{NameTr: "a", NameEn: "b"})
	require.ErrorIs(t, err, perrors.ErrNotFound)
	_, err = s.AddCategory(panelapi.CategoryRequest{NameTr: " ", NameEn: "b"})
	require.ErrorIs(t, err, perrors.ErrInvalidRequest)

	require.NoError(t, s.ReorderCategories([]string{mains.ID, starters.ID}))
	categories := s.Categories()
	require.Equal(t, mains.ID, categories[0].ID)
	require.Equal(t, starters.ID, categories[1].ID)
}

func TestReorderMustMatchStoredSet(t *testing.T) {
	s := content.NewStore()
	a := addCategory(t, s, "A", "A")
	b := addCategory(t, s, "B", "B")

	require.ErrorIs(t, s.ReorderCategories([]string{a.ID}), perrors.ErrInvalidRequest)
	require.ErrorIs(t, s.ReorderCategories([]string{a.ID, a.ID}), perrors.ErrInvalidRequest)
	require.ErrorIs(t, s.ReorderCategories([]string{a.ID, "zzz"}), perrors.ErrInvalidRequest)
	require.Equal(t, []panelapi.Category{a, b}, s.Categories())
}

func TestItemsBelongToCategory(t *testing.T) {
	s := content.NewStore()
	soups := addCategory(t, s, "Çorbalar", "Soups")

	lentil, err := s.AddItem(panelapi.MenuItemRequest{CategoryID: soups.ID, Name: "Mercimek", NameEn: "Lentil", Price1: 90})
	require.NoError(t, err)
	tomato, err := s.AddItem(panelapi.MenuItemRequest{CategoryID: soups.ID, Name: "Domates", NameEn: "Tomato", Price1: 85, Price2: 120})
	require.NoError(t, err)

	_, err = s.AddItem(panelapi.MenuItemRequest{CategoryID: "missing", Name: "x", NameEn: "x", Price1: 1})
	require.ErrorIs(t, err, perrors.ErrInvalidRequest)
	_, err = s.AddItem(panelapi.MenuItemRequest{CategoryID: soups.ID, Name: "x", NameEn: "x"})
	require.ErrorIs(t, err, perrors.ErrInvalidRequest)

	updated, err := s.UpdateItem(lentil.ID, panelapi.MenuItemRequest{Name: "Mercimek", NameEn: "Lentil soup", Price1: 95})
	require.NoError(t, err)
	require.Equal(t, soups.ID, updated.CategoryID)

	require.NoError(t, s.ReorderItems(soups.ID, []string{tomato.ID, lentil.ID}))
	items, err := s.Items(soups.ID)
	require.NoError(t, err)
	require.Equal(t, []string{tomato.ID, lentil.ID}, []string{items[0].ID, items[1].ID})
	require.Equal(t, "Lentil soup", items[1].NameEn)

	require.NoError(t, s.DeleteItem(tomato.ID))
	require.ErrorIs(t, s.DeleteItem(tomato.ID), perrors.ErrNotFound)

	require.NoError(t, s.DeleteCategory(soups.ID))
	_, err = s.Items(soups.ID)
	require.ErrorIs(t, err, perrors.ErrNotFound)
	_, err = s.UpdateItem(lentil.ID, panelapi.MenuItemRequest{Name: "a", NameEn: "b", Price1: 1})
	require.ErrorIs(t, err, perrors.ErrNotFound)
}

func TestPhotosResolveLabels(t *testing.T) {
	s := content.NewStore()
	outside, err := s.AddLabel(panelapi.LabelRequest{NameTr: "Dışarı", NameEn: "Outside"})
	require.NoError(t, err)
	food, err := s.AddLabel(panelapi.LabelRequest{NameTr: "Yemek", NameEn: "Food"})
	require.NoError(t, err)

	photo, err := s.AddPhoto(panelapi.PhotoRequest{ImageURL: "https://cdn.example.com/t.jpg", TitleEn: "Terrace", LabelIDs: []string{outside.ID, food.ID, outside.ID}})
	require.NoError(t, err)
	require.Equal(t, []string{outside.ID, food.ID}, photo.LabelIDs)
	require.Len(t, photo.Labels, 2)

	_, err = s.AddPhoto(panelapi.PhotoRequest{ImageURL: "https://cdn.example.com/x.jpg", LabelIDs: []string{"nope"}})
	require.ErrorIs(t, err, perrors.ErrInvalidRequest)
	_, err = s.AddPhoto(panelapi.PhotoRequest{})
	require.ErrorIs(t, err, perrors.ErrInvalidRequest)

	_, err = s.UpdateLabel(outside.ID, panelapi.LabelRequest{NameTr: "Bahçe", NameEn: "Garden"})
	require.NoError(t, err)
	require.Equal(t, "Garden", s.Photos()[0].Labels[0].NameEn)

	require.NoError(t, s.DeleteLabel(food.ID))
	photos := s.Photos()
	require.Equal(t, []string{outside.ID}, photos[0].LabelIDs)
	require.Len(t, photos[0].Labels, 1)
}

func TestPhotoReorderAndDelete(t *testing.T) {
	s := content.NewStore()
	first, err := s.AddPhoto(panelapi.PhotoRequest{ImageURL: "https://cdn.example.com/1.jpg"})
	require.NoError(t, err)
	second, err := s.AddPhoto(panelapi.PhotoRequest{ImageURL: "https://cdn.example.com/2.jpg"})
	require.NoError(t, err)

	require.NoError(t, s.ReorderPhotos([]string{second.ID, first.ID}))
	require.Equal(t, second.ID, s.Photos()[0].ID)

	_, err = s.UpdatePhoto(first.ID, panelapi.PhotoRequest{ImageURL: "https://cdn.example.com/1b.jpg", TitleEn: "New"})
	require.NoError(t, err)
	require.Equal(t, "New", s.Photos()[1].TitleEn)

	require.NoError(t, s.DeletePhoto(first.ID))
	require.ErrorIs(t, s.DeletePhoto(first.ID), perrors.ErrNotFound)
	require.Len(t, s.Photos(), 1)
}
