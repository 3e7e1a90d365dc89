package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/shelf/internal/model"
	"github.com/nikbrunner/shelf/internal/tui/layout"
)

// Form fields in focus order.
const (
	fieldURL = iota
	fieldName
	fieldCategory
	fieldTags
	formFieldCount
)

// FormState holds the add/edit bookmark form.
type FormState struct {
	URL  textinput.Model
	Name textinput.Model
	Tags textinput.Model

	// CategoryIdx indexes categoryOptions; 0 leaves the choice to the classifier.
	CategoryIdx int
	Focus       int
	EditID      string // empty when adding

	Resolving   bool   // name lookup in flight
	ResolvedFor string // URL the last lookup was started for
	Error       string
}

// categoryOptions are the form's category choices; "" means automatic.
var categoryOptions = append([]model.Category{""}, model.Categories...)

// NewFormState creates a new FormState with initialized inputs.
func NewFormState(cfg layout.LayoutConfig) FormState {
	urlInput := textinput.New()
	urlInput.Placeholder = "https://..."
	urlInput.CharLimit = cfg.Input.URLCharLimit
	urlInput.Width = cfg.Input.Width

	nameInput := textinput.New()
	nameInput.Placeholder = "derived from the URL when empty"
	nameInput.CharLimit = cfg.Input.NameCharLimit
	nameInput.Width = cfg.Input.Width

	tagsInput := textinput.New()
	tagsInput.Placeholder = "comma, separated"
	tagsInput.CharLimit = cfg.Input.TagsCharLimit
	tagsInput.Width = cfg.Input.Width

	return FormState{
		URL:  urlInput,
		Name: nameInput,
		Tags: tagsInput,
	}
}

// Reset clears the form for a new bookmark.
func (f *FormState) Reset() {
	f.URL.Reset()
	f.Name.Reset()
	f.Tags.Reset()
	f.CategoryIdx = 0
	f.EditID = ""
	f.Resolving = false
	f.ResolvedFor = ""
	f.Error = ""
	f.focus(fieldURL)
}

// Load fills the form with an existing bookmark for editing.
func (f *FormState) Load(b model.Bookmark) {
	f.Reset()
	f.EditID = b.ID
	f.URL.SetValue(b.URL)
	f.Name.SetValue(b.Name)
	f.Tags.SetValue(strings.Join(b.Tags, ", "))
	f.URL.CursorEnd()
	f.Name.CursorEnd()
	f.Tags.CursorEnd()
	for i, c := range categoryOptions {
		if c == b.Category {
			f.CategoryIdx = i
		}
	}
	f.ResolvedFor = b.URL
}

// Editing reports whether the form edits an existing bookmark.
func (f FormState) Editing() bool {
	return f.EditID != ""
}

// Category returns the chosen category, empty for automatic.
func (f FormState) Category() model.Category {
	return categoryOptions[f.CategoryIdx]
}

// CycleCategory moves the category choice by delta, wrapping around.
func (f *FormState) CycleCategory(delta int) {
	n := len(categoryOptions)
	f.CategoryIdx = ((f.CategoryIdx+delta)%n + n) % n
}

// Draft converts the form into a bookmark draft.
func (f FormState) Draft() model.Draft {
	return model.Draft{
		URL:      f.URL.Value(),
		Name:     f.Name.Value(),
		Category: f.Category(),
		Tags:     model.ParseTags(f.Tags.Value()),
	}.Normalized()
}

// MoveFocus shifts focus by delta, wrapping around.
func (f *FormState) MoveFocus(delta int) tea.Cmd {
	next := ((f.Focus+delta)%formFieldCount + formFieldCount) % formFieldCount
	return f.focus(next)
}

func (f *FormState) focus(field int) tea.Cmd {
	f.Focus = field
	f.URL.Blur()
	f.Name.Blur()
	f.Tags.Blur()

	switch field {
	case fieldURL:
		return f.URL.Focus()
	case fieldName:
		return f.Name.Focus()
	case fieldTags:
		return f.Tags.Focus()
	}
	return nil
}

// UpdateInput routes a message to the focused text input.
func (f *FormState) UpdateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.Focus {
	case fieldURL:
		f.URL, cmd = f.URL.Update(msg)
	case fieldName:
		f.Name, cmd = f.Name.Update(msg)
	case fieldTags:
		f.Tags, cmd = f.Tags.Update(msg)
	}
	return cmd
}

// SearchState holds the search input and the query applied to the list.
type SearchState struct {
	Input textinput.Model
	Query string // active query (persists after closing search)
}

// NewSearchState creates a new SearchState with initialized input.
func NewSearchState(cfg layout.LayoutConfig) SearchState {
	input := textinput.New()
	input.Placeholder = "Search name, url or tags..."
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.Width
	return SearchState{Input: input}
}

// Reset clears the search.
func (s *SearchState) Reset() {
	s.Input.Reset()
	s.Input.Blur()
	s.Query = ""
}
