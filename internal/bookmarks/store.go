// Package bookmarks owns the authoritative bookmark collection and keeps
// it in sync with a storage adapter.
package bookmarks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/nikbrunner/shelf/internal/classifier"
	"github.com/nikbrunner/shelf/internal/logger"
	"github.com/nikbrunner/shelf/internal/model"
	"github.com/nikbrunner/shelf/internal/resolver"
	"github.com/nikbrunner/shelf/internal/storage"
)

// Params configures a Store. Only Adapter is required.
type Params struct {
	Adapter  storage.Adapter
	Resolver resolver.Resolver // defaults to resolver.Hostname
	Logger   logger.Logger
	Now      func() time.Time
	NewID    func() string
}

// Store is safe for concurrent use. Every mutation is saved through the
// adapter before it becomes visible; a failed save leaves the collection
// as it was.
type Store struct {
	mu    sync.Mutex
	items model.Collection

	adapter  storage.Adapter
	resolver resolver.Resolver
	log      logger.Logger
	now      func() time.Time
	newID    func() string
}

func New(p Params) *Store {
	s := &Store{
		items:    model.Collection{},
		adapter:  p.Adapter,
		resolver: p.Resolver,
		log:      p.Logger,
		now:      p.Now,
		newID:    p.NewID,
	}
	if s.resolver == nil {
		s.resolver = resolver.Hostname{}
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = model.NewID
	}
	return s
}

// Initialize loads the stored collection. A missing or empty collection
// is replaced by the starter bookmark, which is saved immediately.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, found, err := s.adapter.Load(ctx, storage.KeyBookmarks)
	if err != nil {
		return fmt.Errorf("load bookmarks: %w", err)
	}

	var items model.Collection
	if found && strings.TrimSpace(raw) != "" {
		items, err = decodeCollection([]byte(raw))
		if err != nil {
			return fmt.Errorf("load bookmarks: %w", err)
		}
	}

	if len(items) == 0 {
		s.log.Info("no bookmarks stored, seeding starter bookmark")
		s.items = model.Collection{model.StarterBookmark()}
		return s.save(ctx, s.items)
	}

	s.items = s.dedupeIDs(items)
	s.log.Debug("bookmarks loaded", logger.Int("count", len(s.items)))
	return nil
}

// dedupeIDs gives a fresh id to every record whose id is empty or taken
// by an earlier record.
func (s *Store) dedupeIDs(items model.Collection) model.Collection {
	seen := make(map[string]bool, len(items))
	for i := range items {
		if items[i].ID == "" || seen[items[i].ID] {
			old := items[i].ID
			items[i].ID = s.uniqueID(items, seen)
			s.log.Warn("reassigned bookmark id",
				logger.String("old_id", old),
				logger.String("new_id", items[i].ID))
		}
		seen[items[i].ID] = true
	}
	return items
}

// Add validates d, fills in defaults and prepends the new bookmark.
func (s *Store) Add(ctx context.Context, d model.Draft) (model.Bookmark, error) {
	d, err := validateDraft(d)
	if err != nil {
		return model.Bookmark{}, err
	}

	// Check early so we don't resolve a name for a bookmark we reject
	if s.hasURL(d.URL) {
		return model.Bookmark{}, fmt.Errorf("%w: %s", ErrDuplicate, d.URL)
	}

	d, err = s.fillDefaults(ctx, d)
	if err != nil {
		return model.Bookmark{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.items.HasBookmarkURL(d.URL) {
		return model.Bookmark{}, fmt.Errorf("%w: %s", ErrDuplicate, d.URL)
	}

	b := model.Bookmark{
		ID:        s.uniqueID(s.items, nil),
		Name:      d.Name,
		URL:       d.URL,
		Category:  d.Category,
		Tags:      d.Tags,
		Favicon:   model.FaviconURL(d.URL),
		DateAdded: s.now().UTC(),
	}

	if err := s.commit(ctx, s.items.Prepend(b)); err != nil {
		return model.Bookmark{}, err
	}
	s.log.Info("bookmark added",
		logger.String("id", b.ID),
		logger.String("url", b.URL),
		logger.String("category", b.Category.String()))
	return b, nil
}

// Update replaces every field of bookmark id except its id and
// dateAdded. Blank name and category are defaulted as in Add.
func (s *Store) Update(ctx context.Context, id string, d model.Draft) (model.Bookmark, error) {
	if _, ok := s.Get(id); !ok {
		return model.Bookmark{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	d, err := validateDraft(d)
	if err != nil {
		return model.Bookmark{}, err
	}

	d, err = s.fillDefaults(ctx, d)
	if err != nil {
		return model.Bookmark{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check: the bookmark may have been deleted while resolving
	existing, idx := s.items.GetBookmarkByID(id)
	if idx < 0 {
		return model.Bookmark{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	b := model.Bookmark{
		ID:           existing.ID,
		Name:         d.Name,
		URL:          d.URL,
		Category:     d.Category,
		Tags:         d.Tags,
		Favicon:      model.FaviconURL(d.URL),
		DateAdded:    existing.DateAdded,
		DateAddedRaw: existing.DateAddedRaw,
	}

	if err := s.commit(ctx, s.items.Replace(idx, b)); err != nil {
		return model.Bookmark{}, err
	}
	s.log.Info("bookmark updated", logger.String("id", id))
	return b, nil
}

// Delete removes bookmark id. An unknown id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(ctx, s.items.Remove(id)); err != nil {
		return err
	}
	s.log.Info("bookmark deleted", logger.String("id", id))
	return nil
}

// Clear removes every bookmark.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.items)
	if err := s.commit(ctx, model.Collection{}); err != nil {
		return err
	}
	s.log.Info("bookmarks cleared", logger.Int("count", n))
	return nil
}

// Query returns the bookmarks in category filter (all when empty or
// "all") whose name, URL or a tag contains search, case-insensitively.
// The sequence reads a snapshot taken now and can be ranged repeatedly.
func (s *Store) Query(filter model.Category, search string) iter.Seq[model.Bookmark] {
	return s.snapshot().Matching(filter, search)
}

// Sort reorders the collection by key and saves the new order.
func (s *Store) Sort(ctx context.Context, key model.SortKey) error {
	key, err := model.ParseSortKey(string(key))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(ctx, s.items.Sorted(key)); err != nil {
		return err
	}
	s.log.Debug("bookmarks sorted", logger.String("by", string(key)))
	return nil
}

// CategoryCounts returns the count for every category label, including
// zeros. The counts sum to Len.
func (s *Store) CategoryCounts() map[model.Category]int {
	counts := make(map[model.Category]int, len(model.Categories))
	for _, c := range model.Categories {
		counts[c] = 0
	}
	for c, n := range s.snapshot().CategoryCounts() {
		counts[c] += n
	}
	return counts
}

// Export returns the collection as a JSON array indented with two spaces.
func (s *Store) Export() (string, error) {
	data, err := json.MarshalIndent(s.snapshot(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode bookmarks: %w", err)
	}
	return string(data), nil
}

// Import appends every record in a JSON array as-is, without URL
// deduplication or validation of individual fields. Records with a missing or already used
// id get a fresh one. It returns the number of records added.
func (s *Store) Import(ctx context.Context, text string) (int, error) {
	incoming, err := decodeCollection([]byte(text))
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.items.Append(s.withUniqueIDs(incoming)...)
	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}
	s.log.Info("bookmarks imported", logger.Int("count", len(incoming)))
	return len(incoming), nil
}

// Merge appends bs, skipping any whose URL is already present.
func (s *Store) Merge(ctx context.Context, bs []model.Bookmark) (added, skipped int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	urls := make(map[string]bool, len(s.items)+len(bs))
	for _, b := range s.items {
		urls[b.URL] = true
	}

	fresh := make([]model.Bookmark, 0, len(bs))
	for _, b := range bs {
		if urls[b.URL] {
			skipped++
			continue
		}
		urls[b.URL] = true
		if b.Favicon == "" {
			b.Favicon = model.FaviconURL(b.URL)
		}
		if b.Tags == nil {
			b.Tags = []string{}
		}
		fresh = append(fresh, b)
	}

	if len(fresh) == 0 {
		return 0, skipped, nil
	}
	if err := s.commit(ctx, s.items.Append(s.withUniqueIDs(fresh)...)); err != nil {
		return 0, 0, err
	}
	s.log.Info("bookmarks merged", logger.Int("added", len(fresh)), logger.Int("skipped", skipped))
	return len(fresh), skipped, nil
}

// Get returns the bookmark with the given id.
func (s *Store) Get(id string) (model.Bookmark, bool) {
	b, idx := s.snapshot().GetBookmarkByID(id)
	return b, idx >= 0
}

func (s *Store) Len() int {
	return len(s.snapshot())
}

// All returns a copy of the collection in its current order.
func (s *Store) All() model.Collection {
	return slices.Clone(s.snapshot())
}

// Persist saves the current collection again.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, s.items)
}

func (s *Store) snapshot() model.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}

func (s *Store) hasURL(url string) bool {
	return s.snapshot().HasBookmarkURL(url)
}

// commit saves next and, on success, makes it the current collection.
// Caller must hold s.mu.
func (s *Store) commit(ctx context.Context, next model.Collection) error {
	if err := s.save(ctx, next); err != nil {
		return err
	}
	s.items = next
	return nil
}

// save writes items under the bookmarks key. Caller must hold s.mu.
func (s *Store) save(ctx context.Context, items model.Collection) error {
	if items == nil {
		items = model.Collection{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}
	if err := s.adapter.Save(ctx, storage.KeyBookmarks, string(data)); err != nil {
		s.log.Error("failed to save bookmarks", logger.Error(err))
		return &PersistenceError{Key: storage.KeyBookmarks, Err: err}
	}
	return nil
}

// withUniqueIDs returns bs with ids that are non-empty and unused by the
// current collection or by earlier records of bs. Caller must hold s.mu.
func (s *Store) withUniqueIDs(bs []model.Bookmark) []model.Bookmark {
	out := slices.Clone(bs)
	seen := make(map[string]bool, len(s.items)+len(out))
	for _, b := range s.items {
		seen[b.ID] = true
	}
	for i := range out {
		if out[i].ID == "" || seen[out[i].ID] {
			out[i].ID = s.uniqueID(s.items, seen)
		}
		seen[out[i].ID] = true
	}
	return out
}

// uniqueID draws ids until one is unused by items and seen.
func (s *Store) uniqueID(items model.Collection, seen map[string]bool) string {
	for {
		id := s.newID()
		if id != "" && !seen[id] && !items.HasID(id) {
			return id
		}
	}
}

// fillDefaults resolves a blank name and classifies a blank category.
// It may block on the resolver and must not be called with s.mu held.
func (s *Store) fillDefaults(ctx context.Context, d model.Draft) (model.Draft, error) {
	if d.Name == "" {
		name, err := s.resolver.ResolveName(ctx, d.URL)
		if err != nil {
			return d, fmt.Errorf("resolve name for %s: %w", d.URL, err)
		}
		d.Name = strings.TrimSpace(name)
		if d.Name == "" {
			d.Name = resolver.SiteName(d.URL)
		}
	}
	if d.Category == "" {
		d.Category = classifier.Classify(d.URL)
	}
	return d, nil
}

func validateDraft(d model.Draft) (model.Draft, error) {
	d = d.Normalized()
	if _, err := model.ValidateURL(d.URL); err != nil {
		return d, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if d.Category != "" && !d.Category.Valid() {
		return d, fmt.Errorf("%w: unknown category %q", ErrValidation, d.Category)
	}
	return d, nil
}

// decodeCollection parses a JSON array of bookmark objects.
func decodeCollection(data []byte) (model.Collection, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array of bookmarks: %v", ErrParse, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a JSON array of bookmarks", ErrParse)
	}

	items := make(model.Collection, 0, len(raw))
	for i, elem := range raw {
		if !bytes.HasPrefix(bytes.TrimSpace(elem), []byte("{")) {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrParse, i)
		}
		var b model.Bookmark
		if err := json.Unmarshal(elem, &b); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrParse, i, err)
		}
		items = append(items, b)
	}
	return items, nil
}
