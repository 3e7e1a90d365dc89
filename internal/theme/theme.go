// Package theme stores the light/dark display preference.
package theme

import (
	"context"
	"fmt"
	"strings"

	"github.com/nikbrunner/shelf/internal/storage"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"

	Default = Dark
)

// Parse accepts "light" or "dark", case-insensitively.
func Parse(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case Light, Dark:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

func (t Theme) String() string { return string(t) }

// Load reads the stored theme. A missing or unrecognized value yields
// Default; only adapter errors are returned.
func Load(ctx context.Context, a storage.Adapter) (Theme, error) {
	raw, found, err := a.Load(ctx, storage.KeyTheme)
	if err != nil {
		return Default, fmt.Errorf("load theme: %w", err)
	}
	if !found {
		return Default, nil
	}
	t, err := Parse(raw)
	if err != nil {
		return Default, nil
	}
	return t, nil
}

// Save stores t under the theme key.
func Save(ctx context.Context, a storage.Adapter, t Theme) error {
	if _, err := Parse(string(t)); err != nil {
		return err
	}
	if err := a.Save(ctx, storage.KeyTheme, string(t)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}
