package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/shelf/internal/bookmarks"
	"github.com/nikbrunner/shelf/internal/model"
	"github.com/nikbrunner/shelf/internal/resolver"
	"github.com/nikbrunner/shelf/internal/storage"
	"github.com/nikbrunner/shelf/internal/theme"
)

type nameResolvedMsg struct {
	url  string
	name string
}

type bookmarkSavedMsg struct {
	bookmark model.Bookmark
	edit     bool
	err      error
}

type bookmarkDeletedMsg struct {
	name string
	err  error
}

type clearedMsg struct {
	err error
}

type sortedMsg struct {
	key model.SortKey
	err error
}

type themeSavedMsg struct {
	err error
}

// actionDoneMsg reports the outcome of a side effect such as copying or
// opening a URL.
type actionDoneMsg struct {
	text string
	err  error
}

func resolveNameCmd(ctx context.Context, r resolver.Resolver, url string) tea.Cmd {
	return func() tea.Msg {
		name, err := r.ResolveName(ctx, url)
		if err != nil || name == "" {
			name = resolver.SiteName(url)
		}
		return nameResolvedMsg{url: url, name: name}
	}
}

func saveBookmarkCmd(ctx context.Context, s *bookmarks.Store, editID string, d model.Draft) tea.Cmd {
	return func() tea.Msg {
		if editID != "" {
			b, err := s.Update(ctx, editID, d)
			return bookmarkSavedMsg{bookmark: b, edit: true, err: err}
		}
		b, err := s.Add(ctx, d)
		return bookmarkSavedMsg{bookmark: b, err: err}
	}
}

func deleteBookmarkCmd(ctx context.Context, s *bookmarks.Store, item Item) tea.Cmd {
	return func() tea.Msg {
		return bookmarkDeletedMsg{name: item.Title(), err: s.Delete(ctx, item.ID())}
	}
}

func clearCmd(ctx context.Context, s *bookmarks.Store) tea.Cmd {
	return func() tea.Msg {
		return clearedMsg{err: s.Clear(ctx)}
	}
}

func sortCmd(ctx context.Context, s *bookmarks.Store, key model.SortKey) tea.Cmd {
	return func() tea.Msg {
		return sortedMsg{key: key, err: s.Sort(ctx, key)}
	}
}

func saveThemeCmd(ctx context.Context, a storage.Adapter, t theme.Theme) tea.Cmd {
	if a == nil {
		return nil
	}
	return func() tea.Msg {
		return themeSavedMsg{err: theme.Save(ctx, a, t)}
	}
}

func yankCmd(copyFn func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		if err := copyFn(url); err != nil {
			return actionDoneMsg{err: fmt.Errorf("copy url: %w", err)}
		}
		return actionDoneMsg{text: "Copied " + url}
	}
}

func openCmd(openFn func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		if err := openFn(url); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{text: "Opened " + url}
	}
}

// describeError turns store errors into a status line message.
func describeError(err error) string {
	switch {
	case errors.Is(err, bookmarks.ErrDuplicate):
		return "A bookmark with this URL already exists"
	case errors.Is(err, bookmarks.ErrNotFound):
		return "Bookmark no longer exists"
	case errors.Is(err, bookmarks.ErrPersistence):
		return "Could not save bookmarks: " + err.Error()
	default:
		return err.Error()
	}
}
