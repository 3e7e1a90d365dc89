package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar: "j/k:move enter:open"
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "enter save  esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, tab, etc.)
	Edit   []Hint // Edit hints (a, e, d, etc.)
	Action []Hint // Action hints (enter, Y, etc.)
	System []Hint // System hints (?, q, esc)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeSearch:
		return a.getSearchModeHints()
	case ModeAdd, ModeEdit:
		return a.getFormHints()
	case ModeConfirmDelete, ModeConfirmClear:
		return a.getConfirmHints()
	case ModeHelp:
		return HintSet{System: []Hint{{"?/esc", "close"}}}
	default:
		return a.getNormalModeHints()
	}
}

func (a App) getNormalModeHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{"j/k", "move"},
			{"tab", "category"},
			{"/", "search"},
		},
		Action: []Hint{
			{"enter", "open"},
			{"Y", "yank"},
			{"o", "sort"},
		},
		Edit: []Hint{
			{"a", "add"},
			{"e", "edit"},
			{"d", "delete"},
		},
		System: []Hint{
			{"?", "help"},
			{"q", "quit"},
		},
	}
	if a.search.Query != "" {
		hints.System = append([]Hint{{"esc", "clear search"}}, hints.System...)
	}
	return hints
}

func (a App) getSearchModeHints() HintSet {
	desc := "done"
	if len(a.items) == 0 && a.search.Query != "" {
		desc = "search web"
	}
	return HintSet{
		Nav:    []Hint{{"↑/↓", "move"}},
		Action: []Hint{{"enter", desc}},
		System: []Hint{{"esc", "clear"}},
	}
}

func (a App) getFormHints() HintSet {
	hints := HintSet{
		Nav:    []Hint{{"tab", "next field"}},
		Action: []Hint{{"enter", "save"}},
		System: []Hint{{"esc", "cancel"}},
	}
	if a.form.Focus == fieldCategory {
		hints.Nav = append(hints.Nav, Hint{"←/→", "category"})
	}
	return hints
}

func (a App) getConfirmHints() HintSet {
	return HintSet{
		Action: []Hint{{"y", "confirm"}},
		System: []Hint{{"n/esc", "cancel"}},
	}
}
