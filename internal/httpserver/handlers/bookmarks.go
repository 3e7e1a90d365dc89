package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nikbrunner/shelf/internal/bookmarks"
	"github.com/nikbrunner/shelf/internal/httpserver/deps"
	"github.com/nikbrunner/shelf/internal/model"
)

// ListBookmarks serves GET /api/bookmarks?category=&q=.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := model.ParseCategory(r.URL.Query().Get("category"))
		if err != nil {
			writeError(w, d.Logger, fmt.Errorf("%w: %v", bookmarks.ErrValidation, err))
			return
		}

		out := []model.Bookmark{}
		for b := range d.Store.Query(filter, r.URL.Query().Get("q")) {
			out = append(out, b)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// GetBookmark serves GET /api/bookmarks/{id}.
func GetBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		b, ok := d.Store.Get(id)
		if !ok {
			writeError(w, d.Logger, fmt.Errorf("%w: %s", bookmarks.ErrNotFound, id))
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

// CreateBookmark serves POST /api/bookmarks with a draft body.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft model.Draft
		if err := decodeJSON(w, r, &draft); err != nil {
			writeError(w, d.Logger, err)
			return
		}

		b, err := d.Store.Add(r.Context(), draft)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, b)
	}
}

// UpdateBookmark serves PUT /api/bookmarks/{id} with a draft body.
func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft model.Draft
		if err := decodeJSON(w, r, &draft); err != nil {
			writeError(w, d.Logger, err)
			return
		}

		b, err := d.Store.Update(r.Context(), chi.URLParam(r, "id"), draft)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

// DeleteBookmark serves DELETE /api/bookmarks/{id}. Unknown ids succeed.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ClearBookmarks serves DELETE /api/bookmarks.
func ClearBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Store.Clear(r.Context()); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// SortBookmarks serves POST /api/bookmarks/sort?by= and returns the new order.
func SortBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := model.SortKey(r.URL.Query().Get("by"))
		if err := d.Store.Sort(r.Context(), key); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Store.All())
	}
}

// CategoryCounts serves GET /api/categories.
func CategoryCounts(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Store.CategoryCounts())
	}
}
