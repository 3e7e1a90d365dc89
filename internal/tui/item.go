package tui

import (
	"github.com/nikbrunner/shelf/internal/model"
	"github.com/nikbrunner/shelf/internal/search"
)

// Item is one row of the bookmark list.
type Item struct {
	Bookmark    model.Bookmark
	NameMatches []int // rune indexes of the search query in the name
}

// ID returns the bookmark id.
func (i Item) ID() string {
	return i.Bookmark.ID
}

// Title returns the display name, falling back to the URL.
func (i Item) Title() string {
	if i.Bookmark.Name != "" {
		return i.Bookmark.Name
	}
	return i.Bookmark.URL
}

func itemsFromResults(results []search.Result) []Item {
	items := make([]Item, len(results))
	for i, r := range results {
		items[i] = Item{Bookmark: r.Bookmark, NameMatches: r.MatchedIndexes}
	}
	return items
}
