package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/shelf/internal/theme"
)

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Title        lipgloss.Style
	Tab          lipgloss.Style
	TabActive    lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	Match        lipgloss.Style // search match highlight inside names
	Category     lipgloss.Style
	URL          lipgloss.Style
	Tag          lipgloss.Style
	Date         lipgloss.Style
	Status       lipgloss.Style
	Help         lipgloss.Style
	Empty        lipgloss.Style
	Modal        lipgloss.Style
	Label        lipgloss.Style
	LabelActive  lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "enter", "j/k")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "open", "move")
	Error        lipgloss.Style
	Success      lipgloss.Style
}

type palette struct {
	primary  lipgloss.Color // main text
	subtle   lipgloss.Color // secondary text
	accent   lipgloss.Color // desaturated teal
	border   lipgloss.Color
	onAccent lipgloss.Color
	danger   lipgloss.Color
}

func paletteFor(t theme.Theme) palette {
	if t == theme.Light {
		return palette{
			primary:  "#505050",
			subtle:   "#888888",
			accent:   "#4A7070",
			border:   "#888888",
			onAccent: "#F5F5F5",
			danger:   "#A03C3C",
		}
	}
	return palette{
		primary:  "#A0A0A0",
		subtle:   "#606060",
		accent:   "#5F8787",
		border:   "#505050",
		onAccent: "#1A1A1A",
		danger:   "#D75F5F",
	}
}

// DefaultStyles returns the dark theme styles.
func DefaultStyles() Styles {
	return StylesFor(theme.Dark)
}

// StylesFor builds the grayscale styles with a single teal accent for t.
func StylesFor(t theme.Theme) Styles {
	p := paletteFor(t)

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent),

		Tab: lipgloss.NewStyle().
			Foreground(p.subtle).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Foreground(p.onAccent).
			Background(p.accent).
			Padding(0, 1),

		Item: lipgloss.NewStyle().
			Foreground(p.primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(p.accent).
			Foreground(p.onAccent),

		Match: lipgloss.NewStyle().
			Bold(true).
			Underline(true),

		Category: lipgloss.NewStyle().
			Foreground(p.accent),

		URL: lipgloss.NewStyle().
			Foreground(p.subtle),

		Tag: lipgloss.NewStyle().
			Foreground(p.subtle),

		Date: lipgloss.NewStyle().
			Foreground(p.subtle),

		Status: lipgloss.NewStyle().
			Foreground(p.subtle),

		Help: lipgloss.NewStyle().
			Foreground(p.subtle).
			Padding(1, 0, 0, 0),

		Empty: lipgloss.NewStyle().
			Foreground(p.subtle),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(p.accent).
			Padding(1, 2),

		Label: lipgloss.NewStyle().
			Foreground(p.subtle),

		LabelActive: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),

		HintKey: lipgloss.NewStyle().
			Foreground(p.accent),

		HintDesc: lipgloss.NewStyle().
			Foreground(p.subtle),

		Error: lipgloss.NewStyle().
			Foreground(p.danger),

		Success: lipgloss.NewStyle().
			Foreground(p.accent),
	}
}
