package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nikbrunner/shelf/internal/httpserver/deps"
	"github.com/nikbrunner/shelf/internal/httpserver/handlers"
)

func init() { Register(registerBookmarks, middleware.NoCache) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Route("/api/bookmarks", func(r chi.Router) {
		r.Get("/", handlers.ListBookmarks(d))
		r.Post("/", handlers.CreateBookmark(d))
		r.Delete("/", handlers.ClearBookmarks(d))
		r.Post("/sort", handlers.SortBookmarks(d))

		r.Get("/{id}", handlers.GetBookmark(d))
		r.Put("/{id}", handlers.UpdateBookmark(d))
		r.Delete("/{id}", handlers.DeleteBookmark(d))
	})
	r.Get("/api/categories", handlers.CategoryCounts(d))
}
