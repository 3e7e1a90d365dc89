package theme_test

import (
	"context"
	"testing"

	"github.com/nikbrunner/shelf/internal/storage"
	"github.com/nikbrunner/shelf/internal/theme"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    theme.Theme
		wantErr bool
	}{
		{"light", theme.Light, false},
		{" DARK ", theme.Dark, false},
		{"solarized", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := theme.Parse(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("Parse(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestToggle(t *testing.T) {
	if theme.Light.Toggle() != theme.Dark || theme.Dark.Toggle() != theme.Light {
		t.Error("toggle should switch between light and dark")
	}
}

func TestLoadSave(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStorage()

	got, err := theme.Load(ctx, s)
	if err != nil || got != theme.Dark {
		t.Fatalf("expected default dark, got %q, %v", got, err)
	}

	if err := theme.Save(ctx, s, theme.Light); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got, _ := theme.Load(ctx, s); got != theme.Light {
		t.Errorf("expected light, got %q", got)
	}

	_ = s.Save(ctx, storage.KeyTheme, "neon")
	if got, _ := theme.Load(ctx, s); got != theme.Default {
		t.Errorf("invalid stored theme should fall back to default, got %q", got)
	}

	if err := theme.Save(ctx, s, "neon"); err == nil {
		t.Error("expected error saving unknown theme")
	}
}
