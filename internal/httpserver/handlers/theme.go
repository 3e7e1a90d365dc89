package handlers

import (
	"fmt"
	"net/http"

	"github.com/nikbrunner/shelf/internal/httpserver/deps"
	"github.com/nikbrunner/shelf/internal/theme"
)

type themeBody struct {
	Theme string `json:"theme"`
}

// GetTheme serves GET /api/theme.
func GetTheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := theme.Load(r.Context(), d.Settings)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, themeBody{Theme: t.String()})
	}
}

// PutTheme serves PUT /api/theme with {"theme": "light"|"dark"}.
func PutTheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body themeBody
		if err := decodeJSON(w, r, &body); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		t, err := theme.Parse(body.Theme)
		if err != nil {
			writeError(w, d.Logger, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
		if err := theme.Save(r.Context(), d.Settings, t); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, themeBody{Theme: t.String()})
	}
}
