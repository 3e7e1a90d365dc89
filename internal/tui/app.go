package tui

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/shelf/internal/bookmarks"
	"github.com/nikbrunner/shelf/internal/browser"
	"github.com/nikbrunner/shelf/internal/logger"
	"github.com/nikbrunner/shelf/internal/model"
	"github.com/nikbrunner/shelf/internal/resolver"
	"github.com/nikbrunner/shelf/internal/search"
	"github.com/nikbrunner/shelf/internal/storage"
	"github.com/nikbrunner/shelf/internal/theme"
	"github.com/nikbrunner/shelf/internal/tui/layout"
)

// Mode is the current interaction mode of the app.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeAdd
	ModeEdit
	ModeConfirmDelete
	ModeConfirmClear
	ModeHelp
)

// filterOptions are the category tabs, "all" first.
var filterOptions = append([]model.Category{model.CategoryAll}, model.Categories...)

// Autosaver is the part of the periodic saver the TUI controls.
type Autosaver interface {
	Pause()
	Resume()
}

type messageKind int

const (
	msgInfo messageKind = iota
	msgSuccess
	msgError
)

// App is the main bubbletea model for the bookmark manager.
type App struct {
	store     *bookmarks.Store
	settings  storage.Adapter
	autosaver Autosaver
	resolver  resolver.Resolver
	log       logger.Logger
	clipboard func(string) error
	openURL   func(string) error
	ctx       context.Context

	keys         KeyMap
	styles       Styles
	theme        theme.Theme
	layoutConfig layout.LayoutConfig

	mode        Mode
	filterIdx   int // index into filterOptions
	sortIdx     int // index into model.SortKeys of the next sort, cycled by o
	lastSort    model.SortKey
	cursor      int
	offset      int
	items       []Item
	lastKeyWasG bool

	form    FormState
	search  SearchState
	pending Item // bookmark awaiting delete confirmation

	message     string
	messageKind messageKind

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store     *bookmarks.Store
	Settings  storage.Adapter   // theme persistence; nil keeps the theme in memory
	Theme     theme.Theme       // initial theme, defaults to theme.Default
	Autosaver Autosaver         // optional
	Resolver  resolver.Resolver // name lookup for the form, defaults to resolver.Hostname
	Logger    logger.Logger
	Clipboard func(string) error // defaults to the system clipboard
	OpenURL   func(string) error // defaults to the system browser
	Context   context.Context

	Keys   *KeyMap              // optional, uses default if nil
	Layout *layout.LayoutConfig // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	layoutConfig := layout.DefaultConfig()
	if params.Layout != nil {
		layoutConfig = *params.Layout
	}

	th := params.Theme
	if _, err := theme.Parse(string(th)); err != nil {
		th = theme.Default
	}

	app := App{
		store:        params.Store,
		settings:     params.Settings,
		autosaver:    params.Autosaver,
		resolver:     params.Resolver,
		log:          params.Logger,
		clipboard:    params.Clipboard,
		openURL:      params.OpenURL,
		ctx:          params.Context,
		keys:         keys,
		styles:       StylesFor(th),
		theme:        th,
		layoutConfig: layoutConfig,
		form:         NewFormState(layoutConfig),
		search:       NewSearchState(layoutConfig),
		width:        80,
		height:       24,
	}
	if app.resolver == nil {
		app.resolver = resolver.Hostname{}
	}
	if app.log == nil {
		app.log = logger.Nop()
	}
	if app.clipboard == nil {
		app.clipboard = clipboard.WriteAll
	}
	if app.openURL == nil {
		app.openURL = browser.Open
	}
	if app.ctx == nil {
		app.ctx = context.Background()
	}

	app.refreshItems()
	return app
}

// refreshItems rebuilds the list from the store using the active
// category filter and search query, keeping the cursor in range.
func (a *App) refreshItems() {
	seq := a.store.Query(a.Filter(), a.search.Query)
	a.items = itemsFromResults(search.Bookmarks(seq, a.search.Query))

	if a.cursor >= len(a.items) {
		a.cursor = max(len(a.items)-1, 0)
	}
	a.offset = layout.CalculateViewportOffset(a.offset, a.cursor, len(a.items), a.listRows())
}

// selectID moves the cursor to the bookmark with id, if listed.
func (a *App) selectID(id string) {
	for i, item := range a.items {
		if item.ID() == id {
			a.cursor = i
			break
		}
	}
	a.offset = layout.CalculateViewportOffset(a.offset, a.cursor, len(a.items), a.listRows())
}

func (a App) listRows() int {
	// each bookmark takes two lines: name and url
	return max(layout.CalculateListRows(a.height, a.layoutConfig.List)/2, 1)
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Items returns the listed bookmarks.
func (a App) Items() []Item {
	return a.items
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Filter returns the active category filter.
func (a App) Filter() model.Category {
	return filterOptions[a.filterIdx]
}

// Query returns the active search query.
func (a App) Query() string {
	return a.search.Query
}

// Theme returns the active theme.
func (a App) Theme() theme.Theme {
	return a.theme
}

// Message returns the status message shown below the list.
func (a App) Message() string {
	return a.message
}

// Form returns the add/edit form state.
func (a App) Form() FormState {
	return a.form
}

// LastSort returns the most recently applied sort key.
func (a App) LastSort() model.SortKey {
	return a.lastSort
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.offset = layout.CalculateViewportOffset(a.offset, a.cursor, len(a.items), a.listRows())
		return a, nil

	case tea.FocusMsg:
		if a.autosaver != nil {
			a.autosaver.Resume()
		}
		return a, nil

	case tea.BlurMsg:
		if a.autosaver != nil {
			a.autosaver.Pause()
		}
		return a, nil

	case nameResolvedMsg:
		return a.handleNameResolved(msg), nil

	case bookmarkSavedMsg:
		return a.handleBookmarkSaved(msg)

	case bookmarkDeletedMsg:
		return a.handleBookmarkDeleted(msg), nil

	case clearedMsg:
		return a.handleCleared(msg), nil

	case sortedMsg:
		return a.handleSorted(msg), nil

	case themeSavedMsg:
		if msg.err != nil {
			a.setError("save theme: " + msg.err.Error())
		}
		return a, nil

	case actionDoneMsg:
		if msg.err != nil {
			a.setError(msg.err.Error())
		} else {
			a.setSuccess(msg.text)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

func (a *App) setError(text string) {
	a.message = text
	a.messageKind = msgError
}

func (a *App) setSuccess(text string) {
	a.message = text
	a.messageKind = msgSuccess
}

func (a *App) setInfo(text string) {
	a.message = text
	a.messageKind = msgInfo
}
