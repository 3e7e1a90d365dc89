package model

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collection is an ordered list of bookmarks, most recent first unless
// it has been sorted. Methods never modify the receiver's backing array,
// so a Collection can be shared as a read-only snapshot.
type Collection []Bookmark

// GetBookmarkByID returns the index of the bookmark with the given ID, or -1.
func (c Collection) GetBookmarkByID(id string) (Bookmark, int) {
	for i := range c {
		if c[i].ID == id {
			return c[i], i
		}
	}
	return Bookmark{}, -1
}

// HasBookmarkURL checks if a bookmark with the given URL exists.
func (c Collection) HasBookmarkURL(url string) bool {
	for i := range c {
		if c[i].URL == url {
			return true
		}
	}
	return false
}

// HasID reports whether any bookmark uses id.
func (c Collection) HasID(id string) bool {
	_, idx := c.GetBookmarkByID(id)
	return idx >= 0
}

// Prepend returns a new collection with b in front.
func (c Collection) Prepend(b Bookmark) Collection {
	out := make(Collection, 0, len(c)+1)
	out = append(out, b)
	return append(out, c...)
}

// Append returns a new collection with bs after the existing bookmarks.
func (c Collection) Append(bs ...Bookmark) Collection {
	out := make(Collection, 0, len(c)+len(bs))
	out = append(out, c...)
	return append(out, bs...)
}

// Replace returns a new collection with the bookmark at idx swapped for b.
func (c Collection) Replace(idx int, b Bookmark) Collection {
	out := slices.Clone(c)
	out[idx] = b
	return out
}

// Remove returns a new collection without the bookmark with the given ID.
func (c Collection) Remove(id string) Collection {
	out := make(Collection, 0, len(c))
	for _, b := range c {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}

// Matching yields the bookmarks passing filter and search, in order.
// The sequence can be ranged over any number of times.
func (c Collection) Matching(filter Category, search string) iter.Seq[Bookmark] {
	return func(yield func(Bookmark) bool) {
		for _, b := range c {
			if !b.Matches(filter, search) {
				continue
			}
			if !yield(b) {
				return
			}
		}
	}
}

// CategoryCounts returns the number of bookmarks per category.
func (c Collection) CategoryCounts() map[Category]int {
	counts := make(map[Category]int)
	for _, b := range c {
		counts[b.Category]++
	}
	return counts
}

// SortKey selects the ordering applied by Sorted.
type SortKey string

const (
	SortByName     SortKey = "name"     // ascending, locale collation
	SortByDate     SortKey = "date"     // newest first
	SortByCategory SortKey = "category" // ascending
)

// SortKeys lists the supported orderings.
var SortKeys = []SortKey{SortByName, SortByDate, SortByCategory}

// ParseSortKey parses "name", "date" or "category".
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys, k) {
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want name, date or category)", s)
}

// Sorted returns a stably sorted copy of the collection.
func (c Collection) Sorted(key SortKey) Collection {
	out := slices.Clone(c)

	switch key {
	case SortByName:
		// Collators keep internal buffers, so each sort gets its own.
		col := collate.New(language.Und)
		slices.SortStableFunc(out, func(a, b Bookmark) int {
			return col.CompareString(a.Name, b.Name)
		})
	case SortByDate:
		slices.SortStableFunc(out, func(a, b Bookmark) int {
			return b.DateAdded.Compare(a.DateAdded)
		})
	case SortByCategory:
		col := collate.New(language.Und)
		slices.SortStableFunc(out, func(a, b Bookmark) int {
			return col.CompareString(string(a.Category), string(b.Category))
		})
	}

	return out
}
