package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/shelf/internal/model"
	"github.com/nikbrunner/shelf/internal/search"
	"github.com/nikbrunner/shelf/internal/tui/layout"
)

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case ModeSearch:
		return a.handleSearchKey(msg)
	case ModeAdd, ModeEdit:
		return a.handleFormKey(msg)
	case ModeConfirmDelete, ModeConfirmClear:
		return a.handleConfirmKey(msg)
	case ModeHelp:
		return a.handleHelpKey(msg)
	default:
		return a.handleNormalKey(msg)
	}
}

func (a App) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.message = ""

	// gg needs two presses; any other key cancels the first
	if !key.Matches(msg, a.keys.Top) {
		a.lastKeyWasG = false
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp

	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)

	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)

	case key.Matches(msg, a.keys.Top):
		if a.lastKeyWasG {
			a.moveCursorTo(0)
			a.lastKeyWasG = false
		} else {
			a.lastKeyWasG = true
		}

	case key.Matches(msg, a.keys.Bottom):
		a.moveCursorTo(len(a.items) - 1)

	case key.Matches(msg, a.keys.NextCategory):
		a.cycleFilter(1)

	case key.Matches(msg, a.keys.PrevCategory):
		a.cycleFilter(-1)

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		a.search.Input.SetValue(a.search.Query)
		a.search.Input.CursorEnd()
		return a, a.search.Input.Focus()

	case msg.Type == tea.KeyEsc:
		if a.search.Query != "" {
			a.search.Reset()
			a.refreshItems()
		}

	case key.Matches(msg, a.keys.Sort):
		next := model.SortKeys[a.sortIdx]
		a.sortIdx = (a.sortIdx + 1) % len(model.SortKeys)
		return a, sortCmd(a.ctx, a.store, next)

	case key.Matches(msg, a.keys.Add):
		a.form.Reset()
		a.mode = ModeAdd
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Edit):
		if item, ok := a.selected(); ok {
			a.form.Load(item.Bookmark)
			a.mode = ModeEdit
			return a, textinput.Blink
		}

	case key.Matches(msg, a.keys.Delete):
		if item, ok := a.selected(); ok {
			a.pending = item
			a.mode = ModeConfirmDelete
		}

	case key.Matches(msg, a.keys.Clear):
		if a.store.Len() > 0 {
			a.mode = ModeConfirmClear
		}

	case key.Matches(msg, a.keys.YankURL):
		if item, ok := a.selected(); ok {
			return a, yankCmd(a.clipboard, item.Bookmark.URL)
		}

	case key.Matches(msg, a.keys.Open):
		if item, ok := a.selected(); ok {
			return a, openCmd(a.openURL, item.Bookmark.URL)
		}

	case key.Matches(msg, a.keys.Theme):
		a.theme = a.theme.Toggle()
		a.styles = StylesFor(a.theme)
		a.setInfo(fmt.Sprintf("Theme: %s", a.theme))
		return a, saveThemeCmd(a.ctx, a.settings, a.theme)
	}

	return a, nil
}

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.search.Reset()
		a.mode = ModeNormal
		a.refreshItems()
		return a, nil

	case "enter":
		a.search.Input.Blur()
		a.mode = ModeNormal
		if len(a.items) == 0 && a.search.Query != "" {
			return a, openCmd(a.openURL, search.WebSearchURL(a.search.Query))
		}
		return a, nil

	case "down", "ctrl+n":
		a.moveCursor(1)
		return a, nil

	case "up", "ctrl+p":
		a.moveCursor(-1)
		return a, nil
	}

	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)
	if q := a.search.Input.Value(); q != a.search.Query {
		a.search.Query = q
		a.cursor = 0
		a.offset = 0
		a.refreshItems()
	}
	return a, cmd
}

func (a App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.form.Reset()
		a.mode = ModeNormal
		return a, nil

	case "enter":
		a.form.Error = ""
		return a, saveBookmarkCmd(a.ctx, a.store, a.form.EditID, a.form.Draft())

	case "tab", "down":
		resolve := a.leaveURLField()
		return a, tea.Batch(resolve, a.form.MoveFocus(1))

	case "shift+tab", "up":
		resolve := a.leaveURLField()
		return a, tea.Batch(resolve, a.form.MoveFocus(-1))
	}

	if a.form.Focus == fieldCategory {
		switch msg.String() {
		case "left", "h":
			a.form.CycleCategory(-1)
		case "right", "l", " ":
			a.form.CycleCategory(1)
		}
		return a, nil
	}

	return a, a.form.UpdateInput(msg)
}

// leaveURLField starts a name lookup when focus leaves a valid URL and
// the name is still blank.
func (a *App) leaveURLField() tea.Cmd {
	if a.form.Focus != fieldURL || a.form.Name.Value() != "" {
		return nil
	}
	draft := a.form.Draft()
	if draft.URL == "" || draft.URL == a.form.ResolvedFor {
		return nil
	}
	if _, err := model.ValidateURL(draft.URL); err != nil {
		return nil
	}

	a.form.Resolving = true
	a.form.ResolvedFor = draft.URL
	return resolveNameCmd(a.ctx, a.resolver, draft.URL)
}

func (a App) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		mode := a.mode
		a.mode = ModeNormal
		if mode == ModeConfirmClear {
			return a, clearCmd(a.ctx, a.store)
		}
		item := a.pending
		a.pending = Item{}
		return a, deleteBookmarkCmd(a.ctx, a.store, item)

	case "n", "N", "esc", "q":
		a.mode = ModeNormal
		a.pending = Item{}
	}
	return a, nil
}

func (a App) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help), msg.Type == tea.KeyEsc, msg.String() == "q":
		a.mode = ModeNormal
	}
	return a, nil
}

func (a App) handleNameResolved(msg nameResolvedMsg) App {
	if a.mode != ModeAdd && a.mode != ModeEdit {
		return a
	}
	if msg.url != a.form.ResolvedFor {
		return a // stale lookup
	}
	a.form.Resolving = false
	if a.form.Name.Value() == "" {
		a.form.Name.SetValue(msg.name)
	}
	return a
}

func (a App) handleBookmarkSaved(msg bookmarkSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.form.Error = describeError(msg.err)
		return a, nil
	}

	a.form.Reset()
	a.mode = ModeNormal
	a.refreshItems()
	a.selectID(msg.bookmark.ID)

	verb := "Added"
	if msg.edit {
		verb = "Updated"
	}
	a.setSuccess(fmt.Sprintf("%s %s [%s]", verb, msg.bookmark.Name, msg.bookmark.Category))
	return a, nil
}

func (a App) handleBookmarkDeleted(msg bookmarkDeletedMsg) App {
	if msg.err != nil {
		a.setError(describeError(msg.err))
		return a
	}
	a.refreshItems()
	a.setSuccess("Deleted " + msg.name)
	return a
}

func (a App) handleCleared(msg clearedMsg) App {
	if msg.err != nil {
		a.setError(describeError(msg.err))
		return a
	}
	a.cursor = 0
	a.offset = 0
	a.refreshItems()
	a.setSuccess("Deleted all bookmarks")
	return a
}

func (a App) handleSorted(msg sortedMsg) App {
	if msg.err != nil {
		a.setError(describeError(msg.err))
		return a
	}
	a.lastSort = msg.key
	a.cursor = 0
	a.offset = 0
	a.refreshItems()
	a.setInfo(fmt.Sprintf("Sorted by %s", msg.key))
	return a
}

func (a App) selected() (Item, bool) {
	if a.cursor < 0 || a.cursor >= len(a.items) {
		return Item{}, false
	}
	return a.items[a.cursor], true
}

func (a *App) moveCursor(delta int) {
	a.moveCursorTo(a.cursor + delta)
}

func (a *App) moveCursorTo(idx int) {
	if len(a.items) == 0 {
		a.cursor = 0
		return
	}
	a.cursor = min(max(idx, 0), len(a.items)-1)
	a.offset = layout.CalculateViewportOffset(a.offset, a.cursor, len(a.items), a.listRows())
}

func (a *App) cycleFilter(delta int) {
	n := len(filterOptions)
	a.filterIdx = ((a.filterIdx+delta)%n + n) % n
	a.cursor = 0
	a.offset = 0
	a.refreshItems()
}
