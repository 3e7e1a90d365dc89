package tui_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/shelf/internal/bookmarks"
	"github.com/nikbrunner/shelf/internal/model"
	"github.com/nikbrunner/shelf/internal/storage"
	"github.com/nikbrunner/shelf/internal/theme"
	"github.com/nikbrunner/shelf/internal/tui"
	"github.com/nikbrunner/shelf/internal/tui/layout"
)

const seedJSON = `[
  {"id": "1", "name": "GitHub", "url": "https://github.com", "category": "coding", "tags": ["git", "code"], "dateAdded": "2025-01-03T00:00:00Z"},
  {"id": "2", "name": "Hacker News", "url": "https://news.ycombinator.com", "category": "news", "tags": ["tech"], "dateAdded": "2025-01-02T00:00:00Z"},
  {"id": "3", "name": "Amazon", "url": "https://amazon.com", "category": "shopping", "tags": [], "dateAdded": "2025-01-01T00:00:00Z"}
]`

// failingStorage fails every save once fail is set.
type failingStorage struct {
	*storage.MemoryStorage
	fail bool
}

func (f *failingStorage) Save(ctx context.Context, key, value string) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.MemoryStorage.Save(ctx, key, value)
}

type fakeResolver struct{ name string }

func (r fakeResolver) ResolveName(context.Context, string) (string, error) {
	return r.name, nil
}

type recorder struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (r *recorder) record(url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = append(r.urls, url)
	return r.err
}

func (r *recorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.urls) == 0 {
		return ""
	}
	return r.urls[len(r.urls)-1]
}

type fakeAutosaver struct{ paused bool }

func (f *fakeAutosaver) Pause()  { f.paused = true }
func (f *fakeAutosaver) Resume() { f.paused = false }

type fixture struct {
	app       tui.App
	store     *bookmarks.Store
	storage   *failingStorage
	clipboard *recorder
	opener    *recorder
	autosaver *fakeAutosaver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	st := &failingStorage{MemoryStorage: storage.NewMemoryStorage()}
	if err := st.Save(ctx, storage.KeyBookmarks, seedJSON); err != nil {
		t.Fatal(err)
	}
	store := bookmarks.New(bookmarks.Params{Adapter: st})
	if err := store.Initialize(ctx); err != nil {
		t.Fatal(err)
	}

	f := &fixture{
		store:     store,
		storage:   st,
		clipboard: &recorder{},
		opener:    &recorder{},
		autosaver: &fakeAutosaver{},
	}
	f.app = tui.NewApp(tui.AppParams{
		Store:     store,
		Settings:  st,
		Theme:     theme.Dark,
		Autosaver: f.autosaver,
		Resolver:  fakeResolver{name: "The Go Programming Language"},
		Clipboard: f.clipboard.record,
		OpenURL:   f.opener.record,
	})
	return f
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send delivers msg and returns the updated app with the resulting command.
func send(app tui.App, msg tea.Msg) (tui.App, tea.Cmd) {
	updated, cmd := app.Update(msg)
	return updated.(tui.App), cmd
}

// press delivers msg and runs the resulting command to completion.
func press(t *testing.T, app tui.App, msg tea.Msg) tui.App {
	t.Helper()
	app, cmd := send(app, msg)
	return runCmd(t, app, cmd)
}

func runCmd(t *testing.T, app tui.App, cmd tea.Cmd) tui.App {
	t.Helper()
	if cmd == nil {
		return app
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			app = runCmd(t, app, c)
		}
		return app
	}
	app, _ = send(app, msg)
	return app
}

func itemNames(app tui.App) []string {
	var names []string
	for _, item := range app.Items() {
		names = append(names, item.Title())
	}
	return names
}

func view(app tui.App) string {
	return layout.StripANSI(app.View())
}

func TestApp_Navigation_JK(t *testing.T) {
	app := newFixture(t).app

	if app.Cursor() != 0 {
		t.Errorf("expected initial cursor 0, got %d", app.Cursor())
	}

	app, _ = send(app, keyRunes("j"))
	if app.Cursor() != 1 {
		t.Errorf("after j, expected cursor 1, got %d", app.Cursor())
	}

	app, _ = send(app, keyRunes("k"))
	if app.Cursor() != 0 {
		t.Errorf("after k, expected cursor 0, got %d", app.Cursor())
	}

	// No wrap at the top
	app, _ = send(app, keyRunes("k"))
	if app.Cursor() != 0 {
		t.Errorf("k at top should stay at 0, got %d", app.Cursor())
	}

	// No wrap at the bottom
	for range 5 {
		app, _ = send(app, keyRunes("j"))
	}
	if app.Cursor() != 2 {
		t.Errorf("j at bottom should stay at 2, got %d", app.Cursor())
	}
}

func TestApp_Navigation_GG_G(t *testing.T) {
	app := newFixture(t).app

	app, _ = send(app, keyRunes("G"))
	if app.Cursor() != 2 {
		t.Errorf("after G, expected cursor 2, got %d", app.Cursor())
	}

	// A single g does nothing
	app, _ = send(app, keyRunes("g"))
	if app.Cursor() != 2 {
		t.Errorf("after single g, expected cursor 2, got %d", app.Cursor())
	}

	app, _ = send(app, keyRunes("g"))
	if app.Cursor() != 0 {
		t.Errorf("after gg, expected cursor 0, got %d", app.Cursor())
	}

	// g followed by another key resets the sequence
	app, _ = send(app, keyRunes("G"))
	app, _ = send(app, keyRunes("g"))
	app, _ = send(app, keyRunes("k"))
	app, _ = send(app, keyRunes("g"))
	if app.Cursor() != 1 {
		t.Errorf("interrupted gg should not jump, got cursor %d", app.Cursor())
	}
}

func TestApp_CategoryTabs(t *testing.T) {
	app := newFixture(t).app

	if app.Filter() != model.CategoryAll {
		t.Fatalf("initial filter = %q, want all", app.Filter())
	}

	app, _ = send(app, tea.KeyMsg{Type: tea.KeyTab})
	if app.Filter() != model.CategoryCoding {
		t.Errorf("after tab, filter = %q, want coding", app.Filter())
	}
	if got := itemNames(app); len(got) != 1 || got[0] != "GitHub" {
		t.Errorf("coding items = %v", got)
	}

	app, _ = send(app, tea.KeyMsg{Type: tea.KeyShiftTab})
	app, _ = send(app, tea.KeyMsg{Type: tea.KeyShiftTab})
	if app.Filter() != model.CategoryOther {
		t.Errorf("shift+tab should wrap to other, got %q", app.Filter())
	}
	if len(app.Items()) != 0 {
		t.Errorf("expected no items in other, got %v", itemNames(app))
	}
	if !strings.Contains(view(app), "No bookmarks match.") {
		t.Error("empty filter should say nothing matches")
	}
}

func TestApp_Search(t *testing.T) {
	app := newFixture(t).app

	app, _ = send(app, keyRunes("/"))
	if app.Mode() != tui.ModeSearch {
		t.Fatalf("expected search mode, got %v", app.Mode())
	}

	app, _ = send(app, keyRunes("hack"))
	if got := itemNames(app); len(got) != 1 || got[0] != "Hacker News" {
		t.Errorf("search items = %v", got)
	}

	// Tags match too
	app, _ = send(app, tea.KeyMsg{Type: tea.KeyBackspace})
	app, _ = send(app, tea.KeyMsg{Type: tea.KeyBackspace})
	app, _ = send(app, tea.KeyMsg{Type: tea.KeyBackspace})
	app, _ = send(app, tea.KeyMsg{Type: tea.KeyBackspace})
	app, _ = send(app, keyRunes("tech"))
	if got := itemNames(app); len(got) != 1 || got[0] != "Hacker News" {
		t.Errorf("tag search items = %v", got)
	}

	app, _ = send(app, tea.KeyMsg{Type: tea.KeyEnter})
	if app.Mode() != tui.ModeNormal {
		t.Errorf("enter should leave search mode, got %v", app.Mode())
	}
	if app.Query() != "tech" {
		t.Errorf("query should persist, got %q", app.Query())
	}

	// Esc in normal mode clears the query
	app, _ = send(app, tea.KeyMsg{Type: tea.KeyEsc})
	if app.Query() != "" || len(app.Items()) != 3 {
		t.Errorf("esc should clear search, query=%q items=%v", app.Query(), itemNames(app))
	}
}

func TestApp_SearchCombinesWithCategory(t *testing.T) {
	app := newFixture(t).app

	app, _ = send(app, tea.KeyMsg{Type: tea.KeyTab}) // coding
	app, _ = send(app, keyRunes("/"))
	app, _ = send(app, keyRunes("git"))
	if got := itemNames(app); len(got) != 1 || got[0] != "GitHub" {
		t.Errorf("coding+git items = %v", got)
	}

	app, _ = send(app, tea.KeyMsg{Type: tea.KeyEsc})
	if app.Mode() != tui.ModeNormal || app.Query() != "" {
		t.Errorf("esc in search should reset, mode=%v query=%q", app.Mode(), app.Query())
	}
}

func TestApp_SearchWithoutMatchesOffersWebSearch(t *testing.T) {
	f := newFixture(t)
	app := f.app

	app, _ = send(app, keyRunes("/"))
	app, _ = send(app, keyRunes("rust book"))
	if len(app.Items()) != 0 {
		t.Fatalf("expected no matches, got %v", itemNames(app))
	}
	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})

	if got := f.opener.last(); got != "https://www.google.com/search?q=rust+book" {
		t.Errorf("opened %q, want web search", got)
	}
	if !strings.Contains(app.Message(), "Opened") {
		t.Errorf("message = %q", app.Message())
	}
}

func TestApp_AddBookmark(t *testing.T) {
	f := newFixture(t)
	app := f.app

	app, _ = send(app, keyRunes("a"))
	if app.Mode() != tui.ModeAdd {
		t.Fatalf("expected add mode, got %v", app.Mode())
	}

	app, _ = send(app, keyRunes("https://go.dev"))

	// Leaving the URL field resolves the blank name
	app = press(t, app, tea.KeyMsg{Type: tea.KeyTab})
	if got := app.Form().Name.Value(); got != "The Go Programming Language" {
		t.Errorf("resolved name = %q", got)
	}
	if app.Form().Resolving {
		t.Error("resolving flag should be cleared")
	}

	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if app.Mode() != tui.ModeNormal {
		t.Fatalf("expected normal mode after save, got %v (error %q)", app.Mode(), app.Form().Error)
	}
	if f.store.Len() != 4 {
		t.Fatalf("store has %d bookmarks, want 4", f.store.Len())
	}

	first := app.Items()[0].Bookmark
	if first.URL != "https://go.dev" || first.Name != "The Go Programming Language" {
		t.Errorf("new bookmark = %+v", first)
	}
	if app.Cursor() != 0 {
		t.Errorf("cursor should select the new bookmark, got %d", app.Cursor())
	}
	if !strings.Contains(app.Message(), "Added") {
		t.Errorf("message = %q", app.Message())
	}
}

func TestApp_AddBookmarkWithCategoryAndTags(t *testing.T) {
	f := newFixture(t)
	app := f.app

	app, _ = send(app, keyRunes("a"))
	app, _ = send(app, keyRunes("https://example.org"))
	app = press(t, app, tea.KeyMsg{Type: tea.KeyTab}) // name
	app, _ = send(app, tea.KeyMsg{Type: tea.KeyTab})  // category
	app, _ = send(app, tea.KeyMsg{Type: tea.KeyRight})
	if app.Form().Category() != model.CategoryCoding {
		t.Errorf("category choice = %q, want coding", app.Form().Category())
	}
	app, _ = send(app, tea.KeyMsg{Type: tea.KeyTab}) // tags
	app, _ = send(app, keyRunes("docs, , reference"))
	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})

	b := app.Items()[0].Bookmark
	if b.Category != model.CategoryCoding {
		t.Errorf("category = %q, want coding", b.Category)
	}
	if strings.Join(b.Tags, ",") != "docs,reference" {
		t.Errorf("tags = %v", b.Tags)
	}
}

func TestApp_AddDuplicateKeepsForm(t *testing.T) {
	f := newFixture(t)
	app := f.app

	app, _ = send(app, keyRunes("a"))
	app, _ = send(app, keyRunes("https://github.com"))
	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})

	if app.Mode() != tui.ModeAdd {
		t.Errorf("duplicate should keep the form open, got mode %v", app.Mode())
	}
	if !strings.Contains(app.Form().Error, "already exists") {
		t.Errorf("form error = %q", app.Form().Error)
	}
	if f.store.Len() != 3 {
		t.Errorf("store should be unchanged, has %d", f.store.Len())
	}

	app, _ = send(app, tea.KeyMsg{Type: tea.KeyEsc})
	if app.Mode() != tui.ModeNormal {
		t.Errorf("esc should cancel the form, got %v", app.Mode())
	}
}

func TestApp_AddInvalidURL(t *testing.T) {
	app := newFixture(t).app

	app, _ = send(app, keyRunes("a"))
	app, _ = send(app, keyRunes("not a url"))
	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})

	if app.Mode() != tui.ModeAdd || app.Form().Error == "" {
		t.Errorf("invalid url should show a form error, mode=%v error=%q", app.Mode(), app.Form().Error)
	}
}

func TestApp_EditBookmark(t *testing.T) {
	f := newFixture(t)
	app := f.app
	before, _ := f.store.Get("2")

	app, _ = send(app, keyRunes("j"))
	app, _ = send(app, keyRunes("e"))
	if app.Mode() != tui.ModeEdit {
		t.Fatalf("expected edit mode, got %v", app.Mode())
	}
	if got := app.Form().URL.Value(); got != "https://news.ycombinator.com" {
		t.Errorf("form url = %q", got)
	}

	app, _ = send(app, tea.KeyMsg{Type: tea.KeyTab})
	app, _ = send(app, tea.KeyMsg{Type: tea.KeyCtrlU})
	app, _ = send(app, keyRunes("HN"))
	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})

	if app.Mode() != tui.ModeNormal {
		t.Fatalf("expected normal mode, got %v (error %q)", app.Mode(), app.Form().Error)
	}
	after, _ := f.store.Get("2")
	if after.Name != "HN" {
		t.Errorf("name = %q, want HN", after.Name)
	}
	if !after.DateAdded.Equal(before.DateAdded) || after.Category != model.CategoryNews {
		t.Errorf("edit changed preserved fields: %+v", after)
	}
	if !strings.Contains(app.Message(), "Updated") {
		t.Errorf("message = %q", app.Message())
	}
}

func TestApp_DeleteBookmark(t *testing.T) {
	f := newFixture(t)
	app := f.app

	app, _ = send(app, keyRunes("d"))
	if app.Mode() != tui.ModeConfirmDelete {
		t.Fatalf("expected confirm mode, got %v", app.Mode())
	}
	if !strings.Contains(view(app), `Delete "GitHub"?`) {
		t.Error("confirm dialog should name the bookmark")
	}

	app = press(t, app, keyRunes("y"))
	if f.store.Len() != 2 {
		t.Errorf("store has %d bookmarks, want 2", f.store.Len())
	}
	if _, ok := f.store.Get("1"); ok {
		t.Error("GitHub should be deleted")
	}
	if app.Message() != "Deleted GitHub" {
		t.Errorf("message = %q", app.Message())
	}
}

func TestApp_DeleteCancelled(t *testing.T) {
	f := newFixture(t)
	app := f.app

	app, _ = send(app, keyRunes("d"))
	app, cmd := send(app, keyRunes("n"))
	if cmd != nil {
		t.Error("cancel should not run a command")
	}
	if app.Mode() != tui.ModeNormal || f.store.Len() != 3 {
		t.Errorf("cancel failed: mode=%v len=%d", app.Mode(), f.store.Len())
	}
}

func TestApp_ClearAll(t *testing.T) {
	f := newFixture(t)
	app := f.app

	app, _ = send(app, keyRunes("D"))
	if app.Mode() != tui.ModeConfirmClear {
		t.Fatalf("expected confirm clear mode, got %v", app.Mode())
	}
	if !strings.Contains(view(app), "Delete all 3 bookmarks?") {
		t.Error("confirm dialog should show the count")
	}

	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if f.store.Len() != 0 || len(app.Items()) != 0 {
		t.Errorf("clear failed: len=%d items=%d", f.store.Len(), len(app.Items()))
	}
	if !strings.Contains(view(app), "No bookmarks yet") {
		t.Error("empty list should invite adding a bookmark")
	}

	// Nothing left to clear
	app, _ = send(app, keyRunes("D"))
	if app.Mode() != tui.ModeNormal {
		t.Errorf("D on an empty list should do nothing, got mode %v", app.Mode())
	}
}

func TestApp_CycleSort(t *testing.T) {
	app := newFixture(t).app

	app = press(t, app, keyRunes("o"))
	if app.LastSort() != model.SortByName {
		t.Errorf("first sort = %q, want name", app.LastSort())
	}
	if got := strings.Join(itemNames(app), ","); got != "Amazon,GitHub,Hacker News" {
		t.Errorf("name order = %s", got)
	}

	app = press(t, app, keyRunes("o"))
	if app.LastSort() != model.SortByDate {
		t.Errorf("second sort = %q, want date", app.LastSort())
	}
	if got := strings.Join(itemNames(app), ","); got != "GitHub,Hacker News,Amazon" {
		t.Errorf("date order = %s", got)
	}

	app = press(t, app, keyRunes("o"))
	if app.LastSort() != model.SortByCategory {
		t.Errorf("third sort = %q, want category", app.LastSort())
	}
	if got := strings.Join(itemNames(app), ","); got != "GitHub,Hacker News,Amazon" {
		t.Errorf("category order = %s", got)
	}
	if !strings.Contains(view(app), "sorted by category") {
		t.Error("title should show the sort")
	}
}

func TestApp_YankURL(t *testing.T) {
	f := newFixture(t)

	app := press(t, f.app, keyRunes("Y"))
	if got := f.clipboard.last(); got != "https://github.com" {
		t.Errorf("copied %q", got)
	}
	if app.Message() != "Copied https://github.com" {
		t.Errorf("message = %q", app.Message())
	}
}

func TestApp_OpenURL(t *testing.T) {
	f := newFixture(t)

	app, _ := send(f.app, keyRunes("j"))
	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if got := f.opener.last(); got != "https://news.ycombinator.com" {
		t.Errorf("opened %q", got)
	}

	f.opener.err = errors.New("no browser")
	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if app.Message() != "no browser" {
		t.Errorf("message = %q", app.Message())
	}
}

func TestApp_ToggleTheme(t *testing.T) {
	f := newFixture(t)

	app := press(t, f.app, keyRunes("T"))
	if app.Theme() != theme.Light {
		t.Errorf("theme = %q, want light", app.Theme())
	}
	got, err := theme.Load(context.Background(), f.storage)
	if err != nil || got != theme.Light {
		t.Errorf("stored theme = %q (err %v), want light", got, err)
	}
}

func TestApp_FocusControlsAutosave(t *testing.T) {
	f := newFixture(t)

	app, _ := send(f.app, tea.BlurMsg{})
	if !f.autosaver.paused {
		t.Error("blur should pause autosave")
	}
	_, _ = send(app, tea.FocusMsg{})
	if f.autosaver.paused {
		t.Error("focus should resume autosave")
	}
}

func TestApp_Help(t *testing.T) {
	app := newFixture(t).app

	app, _ = send(app, keyRunes("?"))
	if app.Mode() != tui.ModeHelp {
		t.Fatalf("expected help mode, got %v", app.Mode())
	}
	if !strings.Contains(view(app), "add bookmark") {
		t.Error("help should list the add key")
	}

	app, _ = send(app, tea.KeyMsg{Type: tea.KeyEsc})
	if app.Mode() != tui.ModeNormal {
		t.Errorf("esc should close help, got %v", app.Mode())
	}
}

func TestApp_PersistenceFailure(t *testing.T) {
	f := newFixture(t)
	f.storage.fail = true

	app, _ := send(f.app, keyRunes("d"))
	app = press(t, app, keyRunes("y"))

	if f.store.Len() != 3 {
		t.Errorf("failed delete should keep the bookmark, len=%d", f.store.Len())
	}
	if !strings.Contains(app.Message(), "Could not save") {
		t.Errorf("message = %q", app.Message())
	}
	if !strings.Contains(view(app), "✗") {
		t.Error("errors should be marked in the view")
	}
}

func TestApp_Quit(t *testing.T) {
	app := newFixture(t).app

	_, cmd := send(app, keyRunes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestApp_View(t *testing.T) {
	app := newFixture(t).app
	app, _ = send(app, tea.WindowSizeMsg{Width: 120, Height: 30})

	out := view(app)
	for _, want := range []string{
		"shelf",
		"3 bookmarks",
		"all 3",
		"coding 1",
		"GitHub",
		"[coding]",
		"https://news.ycombinator.com",
		"#git #code",
		"news 1 · shopping 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
