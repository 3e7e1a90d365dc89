package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
)

// faviconService renders a site's icon for a given page URL.
const faviconService = "https://www.google.com/s2/favicons?sz=64&domain_url="

// Bookmark represents a saved URL with metadata.
type Bookmark struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Category  Category  `json:"category"`
	Tags      []string  `json:"tags"`
	Favicon   string    `json:"favicon"`
	DateAdded time.Time `json:"dateAdded"` // immutable once set

	// DateAddedRaw holds the stored dateAdded value when it was not in
	// the canonical RFC 3339 form, so it is written back unchanged.
	DateAddedRaw json.RawMessage `json:"-"`
	// Extra holds unknown fields from imported records.
	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes any JSON object without rejecting ill-typed
// fields. Numeric ids (older exports used millisecond timestamps) become
// their decimal text, a scalar tags value becomes a single tag and null
// tags become an empty slice.
func (b *Bookmark) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*b = Bookmark{Tags: []string{}}
	for key, raw := range fields {
		switch key {
		case "id":
			b.ID = looseID(raw)
		case "name":
			b.Name = looseString(raw)
		case "url":
			b.URL = looseString(raw)
		case "category":
			b.Category = Category(looseString(raw))
		case "favicon":
			b.Favicon = looseString(raw)
		case "tags":
			b.Tags = looseStrings(raw)
		case "dateAdded":
			b.DateAdded, b.DateAddedRaw = looseTime(raw)
		default:
			if b.Extra == nil {
				b.Extra = make(map[string]json.RawMessage)
			}
			b.Extra[key] = raw
		}
	}
	return nil
}

// MarshalJSON writes dateAdded as it was read, omits it when unknown and
// appends any extra fields after the known ones.
func (b Bookmark) MarshalJSON() ([]byte, error) {
	type alias Bookmark
	aux := struct {
		alias
		DateAdded json.RawMessage `json:"dateAdded,omitempty"`
	}{alias: alias(b)}

	switch {
	case len(b.DateAddedRaw) > 0:
		aux.DateAdded = b.DateAddedRaw
	case !b.DateAdded.IsZero():
		ts, err := json.Marshal(b.DateAdded)
		if err != nil {
			return nil, err
		}
		aux.DateAdded = ts
	}
	if aux.Tags == nil {
		aux.Tags = []string{}
	}

	out, err := json.Marshal(aux)
	if err != nil || len(b.Extra) == 0 {
		return out, err
	}

	keys := make([]string, 0, len(b.Extra))
	for k := range b.Extra {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	buf := bytes.NewBuffer(out[:len(out)-1])
	for _, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(b.Extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// looseString returns a JSON string's value or any other value's JSON text.
func looseString(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// looseID accepts string and numeric ids. Anything else is dropped so the
// store assigns a fresh one.
func looseID(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return string(raw)
	default:
		return ""
	}
}

func looseStrings(raw json.RawMessage) []string {
	if isNull(raw) {
		return []string{}
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		if s := looseString(raw); s != "" {
			return []string{s}
		}
		return []string{}
	}
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		out = append(out, looseString(e))
	}
	return out
}

// dateLayouts are tried in order for string dateAdded values.
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// looseTime parses dateAdded from an RFC 3339 or date-only string, or a
// millisecond timestamp. The raw value is returned too unless it is
// exactly what time.Time would write back.
func looseTime(raw json.RawMessage) (time.Time, json.RawMessage) {
	keep := json.RawMessage(bytes.Clone(raw))

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		for _, layout := range dateLayouts {
			t, err := time.Parse(layout, s)
			if err != nil {
				continue
			}
			if canonical, err := json.Marshal(t); err == nil && bytes.Equal(canonical, raw) {
				return t, nil
			}
			return t, keep
		}
		return time.Time{}, keep
	}

	var ms float64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.UnixMilli(int64(ms)).UTC(), keep
	}
	return time.Time{}, keep
}

// Matches reports whether the bookmark passes the category filter and
// contains search (case-insensitive) in its name, URL or any tag.
func (b Bookmark) Matches(filter Category, search string) bool {
	if !filter.IsAll() && b.Category != filter {
		return false
	}
	if search == "" {
		return true
	}

	q := strings.ToLower(search)
	if strings.Contains(strings.ToLower(b.Name), q) || strings.Contains(strings.ToLower(b.URL), q) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Draft is user-supplied bookmark data before defaulting and id assignment.
type Draft struct {
	URL      string   `json:"url"`
	Name     string   `json:"name,omitempty"`
	Category Category `json:"category,omitempty"`
	Tags     []string `json:"tags"`
}

// Normalized returns a copy with trimmed fields and cleaned tags.
func (d Draft) Normalized() Draft {
	return Draft{
		URL:      strings.TrimSpace(d.URL),
		Name:     strings.TrimSpace(d.Name),
		Category: Category(strings.ToLower(strings.TrimSpace(string(d.Category)))),
		Tags:     NormalizeTags(d.Tags),
	}
}

// NormalizeTags trims every tag and drops empty ones. Order and
// duplicates are kept.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ParseTags splits comma-separated input like "go, docs,,cli" into tags.
func ParseTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}

// ValidateURL checks that raw is an absolute URL with a scheme and host.
func ValidateURL(raw string) (*url.URL, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, errors.New("URL is required")
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid URL %q: scheme and host are required", s)
	}
	return u, nil
}

// FaviconURL derives the icon URL for a bookmark URL.
func FaviconURL(rawURL string) string {
	return faviconService + rawURL
}

// StarterBookmark returns the record used to seed an empty collection.
func StarterBookmark() Bookmark {
	const starterURL = "https://codepen.io"
	return Bookmark{
		ID:        "Bookmark-1",
		Name:      "CodePen",
		URL:       starterURL,
		Category:  CategoryCoding,
		Tags:      []string{"frontend", "demos", "playground", "code"},
		Favicon:   FaviconURL(starterURL),
		DateAdded: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}
