// Package content holds the menu and gallery served by the stand-in panel API.
package content

import (
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"

	perrors "github.com/jrsteele09/restaurant-panel/internal/errors"
	"github.com/jrsteele09/restaurant-panel/panelapi"
)

// Store is an in-memory content repository safe for concurrent use.
// Returned values are copies.
type Store struct {
	mu           sync.RWMutex
	categories   *ordered[panelapi.Category]
	items        map[string]*ordered[panelapi.MenuItem] // category id to items
	itemCategory map[string]string                      // item id to category id
	photos       *ordered[panelapi.Photo]
	labels       *ordered[panelapi.Label]
}

func NewStore() *Store {
	return &Store{
		categories:   newOrdered[panelapi.Category](),
		items:        make(map[string]*ordered[panelapi.MenuItem]),
		itemCategory: make(map[string]string),
		photos:       newOrdered[panelapi.Photo](),
		labels:       newOrdered[panelapi.Label](),
	}
}

func (s *Store) Categories() []panelapi.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories.list()
}

func (s *Store) AddCategory(req panelapi.CategoryRequest) (panelapi.Category, error) {
	if err := requireNames(req.NameTr, req.NameEn); err != nil {
		return panelapi.Category{}, err
	}
	category := panelapi.Category{
		ID:     uuid.New().String(),
		Slug:   slugify(req.NameEn),
		NameTr: strings.TrimSpace(req.NameTr),
		NameEn: strings.TrimSpace(req.NameEn),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories.add(category.ID, category)
	s.items[category.ID] = newOrdered[panelapi.MenuItem]()
	return category, nil
}

func (s *Store) UpdateCategory(id string, req panelapi.CategoryRequest) (panelapi.Category, error) {
	if err := requireNames(req.NameTr, req.NameEn); err != nil {
		return panelapi.Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories.get(id)
	if !ok {
		return panelapi.Category{}, perrors.Wrapf(perrors.ErrNotFound, "category %s", id)
	}
	category.NameTr = strings.TrimSpace(req.NameTr)
	category.NameEn = strings.TrimSpace(req.NameEn)
	category.Slug = slugify(category.NameEn)
	s.categories.put(id, category)
	return category, nil
}

// DeleteCategory removes the category and its items.
func (s *Store) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.categories.remove(id) {
		return perrors.Wrapf(perrors.ErrNotFound, "category %s", id)
	}
	for _, item := range s.items[id].list() {
		delete(s.itemCategory, item.ID)
	}
	delete(s.items, id)
	return nil
}

func (s *Store) ReorderCategories(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories.reorder(ids)
}

func (s *Store) Items(categoryID string) ([]panelapi.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, ok := s.items[categoryID]
	if !ok {
		return nil, perrors.Wrapf(perrors.ErrNotFound, "category %s", categoryID)
	}
	return items.list(), nil
}

func (s *Store) AddItem(req panelapi.MenuItemRequest) (panelapi.MenuItem, error) {
	if err := validateItem(req); err != nil {
		return panelapi.MenuItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.items[req.CategoryID]
	if !ok {
		return panelapi.MenuItem{}, perrors.Wrapf(perrors.ErrInvalidRequest, "unknown category %q", req.CategoryID)
	}
	item := itemFromRequest(uuid.New().String(), req.CategoryID, req)
	items.add(item.ID, item)
	s.itemCategory[item.ID] = req.CategoryID
	return item, nil
}

// UpdateItem replaces the item fields. Items never move between categories.
func (s *Store) UpdateItem(id string, req panelapi.MenuItemRequest) (panelapi.MenuItem, error) {
	if err := validateItem(req); err != nil {
		return panelapi.MenuItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	categoryID, ok := s.itemCategory[id]
	if !ok {
		return panelapi.MenuItem{}, perrors.Wrapf(perrors.ErrNotFound, "item %s", id)
	}
	item := itemFromRequest(id, categoryID, req)
	s.items[categoryID].put(id, item)
	return item, nil
}

func (s *Store) DeleteItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	categoryID, ok := s.itemCategory[id]
	if !ok {
		return perrors.Wrapf(perrors.ErrNotFound, "item %s", id)
	}
	s.items[categoryID].remove(id)
	delete(s.itemCategory, id)
	return nil
}

func (s *Store) ReorderItems(categoryID string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.items[categoryID]
	if !ok {
		return perrors.Wrapf(perrors.ErrNotFound, "category %s", categoryID)
	}
	return items.reorder(ids)
}

// Photos returns the gallery with each photo's labels resolved.
func (s *Store) Photos() []panelapi.Photo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	photos := s.photos.list()
	for i := range photos {
		photos[i] = s.resolveLabelsLocked(photos[i])
	}
	return photos
}

func (s *Store) AddPhoto(req panelapi.PhotoRequest) (panelapi.Photo, error) {
	if strings.TrimSpace(req.ImageURL) == "" {
		return panelapi.Photo{}, perrors.Wrapf(perrors.ErrInvalidRequest, "imageUrl is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLabelsLocked(req.LabelIDs); err != nil {
		return panelapi.Photo{}, err
	}
	photo := photoFromRequest(uuid.New().String(), req)
	s.photos.add(photo.ID, photo)
	return s.resolveLabelsLocked(photo), nil
}

func (s *Store) UpdatePhoto(id string, req panelapi.PhotoRequest) (panelapi.Photo, error) {
	if strings.TrimSpace(req.ImageURL) == "" {
		return panelapi.Photo{}, perrors.Wrapf(perrors.ErrInvalidRequest, "imageUrl is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.photos.get(id); !ok {
		return panelapi.Photo{}, perrors.Wrapf(perrors.ErrNotFound, "photo %s", id)
	}
	if err := s.checkLabelsLocked(req.LabelIDs); err != nil {
		return panelapi.Photo{}, err
	}
	photo := photoFromRequest(id, req)
	s.photos.put(id, photo)
	return s.resolveLabelsLocked(photo), nil
}

func (s *Store) DeletePhoto(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.photos.remove(id) {
		return perrors.Wrapf(perrors.ErrNotFound, "photo %s", id)
	}
	return nil
}

func (s *Store) ReorderPhotos(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.photos.reorder(ids)
}

func (s *Store) Labels() []panelapi.Label {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.labels.list()
}

func (s *Store) AddLabel(req panelapi.LabelRequest) (panelapi.Label, error) {
	if err := requireNames(req.NameTr, req.NameEn); err != nil {
		return panelapi.Label{}, err
	}
	label := panelapi.Label{ID: uuid.New().String(), NameTr: strings.TrimSpace(req.NameTr), NameEn: strings.TrimSpace(req.NameEn)}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.labels.add(label.ID, label)
	return label, nil
}

func (s *Store) UpdateLabel(id string, req panelapi.LabelRequest) (panelapi.Label, error) {
	if err := requireNames(req.NameTr, req.NameEn); err != nil {
		return panelapi.Label{}, err
	}
	label := panelapi.Label{ID: id, NameTr: strings.TrimSpace(req.NameTr), NameEn: strings.TrimSpace(req.NameEn)}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.labels.put(id, label) {
		return panelapi.Label{}, perrors.Wrapf(perrors.ErrNotFound, "label %s", id)
	}
	return label, nil
}

// DeleteLabel removes the label and detaches it from every photo.
func (s *Store) DeleteLabel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.labels.remove(id) {
		return perrors.Wrapf(perrors.ErrNotFound, "label %s", id)
	}
	for _, photo := range s.photos.list() {
		kept := photo.LabelIDs[:0:0]
		for _, labelID := range photo.LabelIDs {
			if labelID != id {
				kept = append(kept, labelID)
			}
		}
		photo.LabelIDs = kept
		s.photos.put(photo.ID, photo)
	}
	return nil
}

func (s *Store) checkLabelsLocked(ids []string) error {
	for _, id := range ids {
		if _, ok := s.labels.get(id); !ok {
			return perrors.Wrapf(perrors.ErrInvalidRequest, "unknown label %q", id)
		}
	}
	return nil
}

func (s *Store) resolveLabelsLocked(photo panelapi.Photo) panelapi.Photo {
	photo.Labels = make([]panelapi.Label, 0, len(photo.LabelIDs))
	for _, id := range photo.LabelIDs {
		if label, ok := s.labels.get(id); ok {
			photo.Labels = append(photo.Labels, label)
		}
	}
	photo.LabelIDs = append([]string(nil), photo.LabelIDs...)
	return photo
}

func itemFromRequest(id, categoryID string, req panelapi.MenuItemRequest) panelapi.MenuItem {
	return panelapi.MenuItem{
		ID:            id,
		CategoryID:    categoryID,
		Name:          strings.TrimSpace(req.Name),
		NameEn:        strings.TrimSpace(req.NameEn),
		DescriptionTr: req.DescriptionTr,
		DescriptionEn: req.DescriptionEn,
		Price1:        req.Price1,
		Price2:        req.Price2,
	}
}

func photoFromRequest(id string, req panelapi.PhotoRequest) panelapi.Photo {
	return panelapi.Photo{
		ID:            id,
		ImageURL:      strings.TrimSpace(req.ImageURL),
		TitleTr:       req.TitleTr,
		TitleEn:       req.TitleEn,
		DescriptionTr: req.DescriptionTr,
		DescriptionEn: req.DescriptionEn,
		LabelIDs:      dedupe(req.LabelIDs),
	}
}

func validateItem(req panelapi.MenuItemRequest) error {
	if err := requireNames(req.Name, req.NameEn); err != nil {
		return err
	}
	if req.Price1 <= 0 || req.Price2 < 0 {
		return perrors.Wrapf(perrors.ErrInvalidRequest, "price1 must be positive and price2 not negative")
	}
	return nil
}

func requireNames(tr, en string) error {
	if strings.TrimSpace(tr) == "" || strings.TrimSpace(en) == "" {
		return perrors.Wrapf(perrors.ErrInvalidRequest, "both names are required")
	}
	return nil
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
}
