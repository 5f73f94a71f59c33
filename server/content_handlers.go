package server

import (
	"net/http"

	"github.com/jrsteele09/restaurant-panel/panelapi"
)

// Menu categories

func (s *Server) ListCategoriesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.content.Categories())
	}
}

func (s *Server) AddCategoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req panelapi.CategoryRequest
		if !decodeBody(w, r, &req) {
			return
		}
		category, err := s.content.AddCategory(req)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, category)
	}
}

func (s *Server) UpdateCategoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req panelapi.CategoryRequest
		if !decodeBody(w, r, &req) {
			return
		}
		category, err := s.content.UpdateCategory(r.PathValue("id"), req)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, category)
	}
}

func (s *Server) DeleteCategoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.content.DeleteCategory(r.PathValue("id")); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ReorderCategoriesHandler() http.HandlerFunc {
	return s.reorderHandler(func(r *http.Request, ids []string) error {
		return s.content.ReorderCategories(ids)
	})
}

// Menu items

func (s *Server) ListItemsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := s.content.Items(r.PathValue("categoryId"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func (s *Server) AddItemHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req panelapi.MenuItemRequest
		if !decodeBody(w, r, &req) {
			return
		}
		item, err := s.content.AddItem(req)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func (s *Server) UpdateItemHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req panelapi.MenuItemRequest
		if !decodeBody(w, r, &req) {
			return
		}
		item, err := s.content.UpdateItem(r.PathValue("id"), req)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func (s *Server) DeleteItemHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.content.DeleteItem(r.PathValue("id")); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ReorderItemsHandler() http.HandlerFunc {
	return s.reorderHandler(func(r *http.Request, ids []string) error {
		return s.content.ReorderItems(r.PathValue("categoryId"), ids)
	})
}

// Gallery photos

func (s *Server) ListPhotosHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.content.Photos())
	}
}

func (s *Server) AddPhotoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req panelapi.PhotoRequest
		if !decodeBody(w, r, &req) {
			return
		}
		photo, err := s.content.AddPhoto(req)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, photo)
	}
}

func (s *Server) UpdatePhotoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req panelapi.PhotoRequest
		if !decodeBody(w, r, &req) {
			return
		}
		photo, err := s.content.UpdatePhoto(r.PathValue("id"), req)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, photo)
	}
}

func (s *Server) DeletePhotoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.content.DeletePhoto(r.PathValue("id")); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ReorderPhotosHandler() http.HandlerFunc {
	return s.reorderHandler(func(r *http.Request, ids []string) error {
		return s.content.ReorderPhotos(ids)
	})
}

// Gallery photo labels

func (s *Server) ListLabelsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.content.Labels())
	}
}

func (s *Server) AddLabelHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req panelapi.LabelRequest
		if !decodeBody(w, r, &req) {
			return
		}
		label, err := s.content.AddLabel(req)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, label)
	}
}

func (s *Server) UpdateLabelHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req panelapi.LabelRequest
		if !decodeBody(w, r, &req) {
			return
		}
		label, err := s.content.UpdateLabel(r.PathValue("id"), req)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, label)
	}
}

func (s *Server) DeleteLabelHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.content.DeleteLabel(r.PathValue("id")); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) reorderHandler(apply func(r *http.Request, ids []string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req panelapi.ReorderRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := panelapi.ValidateOrder(req.OrderedIDs); err != nil {
			writeStoreError(w, err)
			return
		}
		if err := apply(r, req.OrderedIDs); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
