package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/nikbrunner/shelf/internal/model"
)

// Format selects the export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// ParseFormat accepts "json" or "html".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json or html)", s)
	}
}

// FormatForPath guesses the format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatJSON
	}
}

// DefaultExportPath returns the default export file path:
// ~/Downloads/bookmarks.json, or ~/Downloads/bookmarks-export-YYYY-MM-DD.html
func DefaultExportPath(f Format, now time.Time) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := "bookmarks.json"
	if f == FormatHTML {
		filename = fmt.Sprintf("bookmarks-export-%s.html", now.Format("2006-01-02"))
	}
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders bookmarks as a Netscape bookmark file with one
// folder per category. Known categories come first in their usual order;
// bookmarks keep their relative order within a folder.
func ExportHTML(bookmarks []model.Bookmark) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	groups := make(map[model.Category][]model.Bookmark)
	for _, bm := range bookmarks {
		groups[bm.Category] = append(groups[bm.Category], bm)
	}

	for _, c := range categoryOrder(groups) {
		fmt.Fprintf(&b, "    <DT><H3>%s</H3>\n", html.EscapeString(folderName(c)))
		b.WriteString("    <DL><p>\n")
		for _, bm := range groups[c] {
			writeBookmark(&b, bm, "        ")
		}
		b.WriteString("    </DL><p>\n")
	}

	b.WriteString("</DL><p>\n")
	return b.String()
}

func writeBookmark(b *strings.Builder, bm model.Bookmark, prefix string) {
	fmt.Fprintf(b, "%s<DT><A HREF=\"%s\"", prefix, html.EscapeString(bm.URL))
	if !bm.DateAdded.IsZero() {
		fmt.Fprintf(b, " ADD_DATE=\"%d\"", bm.DateAdded.Unix())
	}
	if bm.Favicon != "" {
		fmt.Fprintf(b, " ICON_URI=\"%s\"", html.EscapeString(bm.Favicon))
	}
	if len(bm.Tags) > 0 {
		fmt.Fprintf(b, " TAGS=\"%s\"", html.EscapeString(strings.Join(bm.Tags, ",")))
	}
	fmt.Fprintf(b, ">%s</A>\n", html.EscapeString(bm.Name))
}

// categoryOrder lists the non-empty groups: known categories first, then
// any others alphabetically.
func categoryOrder(groups map[model.Category][]model.Bookmark) []model.Category {
	var order []model.Category
	for _, c := range model.Categories {
		if len(groups[c]) > 0 {
			order = append(order, c)
		}
	}
	var extra []model.Category
	for c := range groups {
		if !c.Valid() {
			extra = append(extra, c)
		}
	}
	slices.Sort(extra)
	return append(order, extra...)
}

func folderName(c model.Category) string {
	if c == "" {
		return string(model.CategoryOther)
	}
	return string(c)
}
