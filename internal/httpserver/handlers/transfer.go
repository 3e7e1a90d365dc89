package handlers

import (
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/nikbrunner/shelf/internal/bookmarks"
	"github.com/nikbrunner/shelf/internal/exporter"
	"github.com/nikbrunner/shelf/internal/httpserver/deps"
	"github.com/nikbrunner/shelf/internal/importer"
)

type importResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Export serves GET /api/export?format=json|html as a download.
func Export(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := exporter.FormatJSON
		if raw := r.URL.Query().Get("format"); raw != "" {
			f, err := exporter.ParseFormat(raw)
			if err != nil {
				writeError(w, d.Logger, fmt.Errorf("%w: %v", errBadRequest, err))
				return
			}
			format = f
		}

		var body, contentType, filename string
		switch format {
		case exporter.FormatHTML:
			body = exporter.ExportHTML(d.Store.All())
			contentType = "text/html; charset=utf-8"
			filename = "bookmarks-export-" + d.TimeNow().Format("2006-01-02") + ".html"
		default:
			text, err := d.Store.Export()
			if err != nil {
				writeError(w, d.Logger, err)
				return
			}
			body = text
			contentType = "application/json"
			filename = "bookmarks.json"
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
		_, _ = w.Write([]byte(body))
	}
}

// Import serves POST /api/import. A JSON array is appended as-is; a
// Netscape bookmark file (text/html) is merged, skipping known URLs.
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediaType == "text/html" {
			parsed, err := importer.ParseHTMLBookmarks(strings.NewReader(body), d.TimeNow())
			if err != nil {
				writeError(w, d.Logger, fmt.Errorf("%w: %v", bookmarks.ErrParse, err))
				return
			}
			added, skipped, err := d.Store.Merge(r.Context(), parsed)
			if err != nil {
				writeError(w, d.Logger, err)
				return
			}
			writeJSON(w, http.StatusOK, importResponse{Imported: added, Skipped: skipped})
			return
		}

		n, err := d.Store.Import(r.Context(), body)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, importResponse{Imported: n})
	}
}
