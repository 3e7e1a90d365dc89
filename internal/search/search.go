package search

import (
	"iter"
	"net/url"
	"strings"
	"unicode"

	"github.com/nikbrunner/shelf/internal/model"
)

const webSearchBase = "https://www.google.com/search?q="

// Result is a bookmark matching a query, with the rune positions of the
// match in its name for highlighting (empty when the match is elsewhere).
type Result struct {
	Bookmark       model.Bookmark
	MatchedIndexes []int
}

// Bookmarks collects the bookmarks from seq, keeping their order, and
// marks where query occurs in each name. seq is expected to be already
// filtered, e.g. by Store.Query.
func Bookmarks(seq iter.Seq[model.Bookmark], query string) []Result {
	var results []Result
	for b := range seq {
		results = append(results, Result{
			Bookmark:       b,
			MatchedIndexes: MatchIndexes(b.Name, query),
		})
	}
	return results
}

// MatchIndexes returns the rune indexes of the first case-insensitive
// occurrence of query in s, or nil.
func MatchIndexes(s, query string) []int {
	q := lowerRunes(query)
	if len(q) == 0 {
		return nil
	}
	r := lowerRunes(s)

	for start := 0; start+len(q) <= len(r); start++ {
		match := true
		for j := range q {
			if r[start+j] != q[j] {
				match = false
				break
			}
		}
		if match {
			idx := make([]int, len(q))
			for j := range idx {
				idx[j] = start + j
			}
			return idx
		}
	}
	return nil
}

func lowerRunes(s string) []rune {
	r := []rune(s)
	for i := range r {
		r[i] = unicode.ToLower(r[i])
	}
	return r
}

// WebSearchURL returns a web search for query, offered when no bookmark
// matches.
func WebSearchURL(query string) string {
	return webSearchBase + url.QueryEscape(strings.TrimSpace(query))
}
