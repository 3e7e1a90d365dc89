package handlers

import (
	"net/http"

	"github.com/nikbrunner/shelf/internal/httpserver/deps"
)

type healthzResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Bookmarks     int     `json:"bookmarks"`
	Version       string  `json:"version,omitempty"`
}

func Healthz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthzResponse{
			Status:        "ok",
			UptimeSeconds: d.TimeNow().Sub(d.StartTime).Seconds(),
			Bookmarks:     d.Store.Len(),
			Version:       d.Version,
		})
	}
}
