package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/nikbrunner/shelf/internal/httpserver/deps"
	"github.com/nikbrunner/shelf/internal/httpserver/handlers"
)

func init() { Register(registerTheme) }

func registerTheme(r chi.Router, d deps.Deps) {
	r.Get("/api/theme", handlers.GetTheme(d))
	r.Put("/api/theme", handlers.PutTheme(d))
}
