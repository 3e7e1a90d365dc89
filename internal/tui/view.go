package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/shelf/internal/model"
	"github.com/nikbrunner/shelf/internal/tui/layout"
)

// renderView creates the complete list view.
func (a App) renderView() string {
	switch a.mode {
	case ModeAdd, ModeEdit, ModeConfirmDelete, ModeConfirmClear:
		return a.renderModal()
	case ModeHelp:
		return a.renderHelpOverlay()
	}

	sections := []string{
		a.renderTitle(),
		a.renderTabs(),
	}
	if a.mode == ModeSearch || a.search.Query != "" {
		sections = append(sections, a.renderSearchLine())
	}
	sections = append(sections, a.renderList(), a.renderHelpBar())

	content := a.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

func (a App) renderTitle() string {
	title := a.styles.Title.Render("shelf")
	info := fmt.Sprintf(" %d bookmarks", a.store.Len())
	if a.lastSort != "" {
		info += fmt.Sprintf(" · sorted by %s", a.lastSort)
	}
	return title + a.styles.Status.Render(info)
}

// renderTabs renders the category filter tabs with their counts.
func (a App) renderTabs() string {
	counts := a.store.CategoryCounts()

	tabs := make([]string, len(filterOptions))
	for i, c := range filterOptions {
		n := a.store.Len()
		if !c.IsAll() {
			n = counts[c]
		}
		label := fmt.Sprintf("%s %d", c, n)
		if i == a.filterIdx {
			tabs[i] = a.styles.TabActive.Render(label)
		} else {
			tabs[i] = a.styles.Tab.Render(label)
		}
	}

	row := strings.Join(tabs, " ")
	maxWidth := layout.CalculateListWidth(a.width, a.layoutConfig.List)
	if layout.VisibleLength(row) > maxWidth {
		// Narrow terminal: only the active tab with its position
		row = a.styles.TabActive.Render(fmt.Sprintf("%s (%d/%d)", a.Filter(), a.filterIdx+1, len(filterOptions)))
	}
	return row + "\n"
}

func (a App) renderSearchLine() string {
	if a.mode == ModeSearch {
		return a.search.Input.View()
	}
	return a.styles.Status.Render(fmt.Sprintf("search: %q  (%d results)", a.search.Query, len(a.items)))
}

func (a App) renderList() string {
	rows := a.listRows()
	if len(a.items) == 0 {
		empty := "No bookmarks yet. Press a to add one."
		if a.search.Query != "" || !a.Filter().IsAll() {
			empty = "No bookmarks match."
		}
		return a.styles.Empty.Render(empty) + strings.Repeat("\n", rows*2-1)
	}

	width := layout.CalculateListWidth(a.width, a.layoutConfig.List)
	now := time.Now()

	var b strings.Builder
	end := min(a.offset+rows, len(a.items))
	for i := a.offset; i < end; i++ {
		b.WriteString(a.renderItem(a.items[i], i == a.cursor, width, now))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	// Keep the help bar anchored while the list is short
	if shown := end - a.offset; shown < rows {
		b.WriteString(strings.Repeat("\n", (rows-shown)*2))
	}
	return b.String()
}

// renderItem renders one bookmark as a name line and a detail line.
func (a App) renderItem(item Item, selected bool, width int, now time.Time) string {
	bm := item.Bookmark
	cfg := a.layoutConfig

	category := layout.PadRight("["+bm.Category.String()+"]", cfg.List.CategoryColumnWidth)
	// item padding (1) + cursor marker (2) + gap (1)
	nameWidth := max(width-cfg.List.CategoryColumnWidth-4, 1)
	name, truncated := layout.TruncateText(item.Title(), nameWidth, cfg.Text)

	var nameLine string
	if selected {
		line := layout.PadRight("▸ "+name, nameWidth+2) + " " + category
		nameLine = a.styles.ItemSelected.Render(line)
	} else {
		matches := item.NameMatches
		if truncated {
			matches = nil
		}
		line := "  " + a.highlight(name, matches) + strings.Repeat(" ", max(nameWidth-layout.VisibleLength(name), 0))
		nameLine = a.styles.Item.Render(line + " " + a.styles.Category.Render(category))
	}

	detail := bm.URL
	if tags := layout.JoinTags(bm.Tags, width/3, cfg.Text); tags != "" {
		detail += "  " + tags
	}
	age := formatTimeAgo(bm.DateAdded, now)
	detail, _ = layout.TruncateText(detail, max(width-len(age)-5, 1), cfg.Text)
	detailLine := a.styles.Item.Render("  " + a.styles.URL.Render(detail) + "  " + a.styles.Date.Render(age))

	return nameLine + "\n" + detailLine
}

// highlight applies the match style to the runes at idx.
func (a App) highlight(s string, idx []int) string {
	if len(idx) == 0 {
		return s
	}
	marked := make(map[int]bool, len(idx))
	for _, i := range idx {
		marked[i] = true
	}

	var b strings.Builder
	for i, r := range []rune(s) {
		if marked[i] {
			b.WriteString(a.styles.Match.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (a App) renderHelpBar() string {
	var lines []string

	// Message replaces the gap line when present
	if a.message != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	lines = append(lines, a.renderStatusLine())

	if hints := a.renderHints(a.getContextualHints()); hints != "" {
		lines = append(lines, hints)
	}

	return strings.Join(lines, "\n")
}

// renderStatusLine lists the non-empty categories with their counts.
func (a App) renderStatusLine() string {
	counts := a.store.CategoryCounts()

	var parts []string
	for _, c := range model.Categories {
		if n := counts[c]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", c, n))
		}
	}
	if len(parts) == 0 {
		return a.styles.Status.Render("empty")
	}
	return a.styles.Status.Render(strings.Join(parts, " · "))
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	switch a.messageKind {
	case msgError:
		return a.styles.Error.Bold(true).Render("✗ " + a.message)
	case msgSuccess:
		return a.styles.Success.Bold(true).Render("✓ " + a.message)
	default:
		return a.styles.Status.Render(a.message)
	}
}

func (a App) renderModal() string {
	var content strings.Builder
	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal)

	switch a.mode {
	case ModeAdd, ModeEdit:
		title := "Add Bookmark"
		if a.mode == ModeEdit {
			title = "Edit Bookmark"
		}
		content.WriteString(a.styles.Title.Render(title) + "\n\n")
		content.WriteString(a.renderFormField(fieldURL, "URL", a.form.URL.View()))
		content.WriteString(a.renderFormField(fieldName, "Name", a.form.Name.View()))
		content.WriteString(a.renderFormField(fieldCategory, "Category", a.renderCategoryChoice()))
		content.WriteString(a.renderFormField(fieldTags, "Tags", a.form.Tags.View()))
		if a.form.Resolving {
			content.WriteString(a.styles.Status.Render("looking up name...") + "\n")
		}
		if a.form.Error != "" {
			content.WriteString(a.styles.Error.Render("✗ "+a.form.Error) + "\n")
		}
		content.WriteString("\n" + a.renderHintsInline(a.getFormHints().All()))

	case ModeConfirmDelete:
		content.WriteString(a.styles.Title.Render("Delete Bookmark") + "\n\n")
		name, _ := layout.TruncateText(a.pending.Title(), modalWidth-8, a.layoutConfig.Text)
		content.WriteString(fmt.Sprintf("Delete %q?\n\n", name))
		content.WriteString(a.renderHintsInline(a.getConfirmHints().All()))

	case ModeConfirmClear:
		content.WriteString(a.styles.Title.Render("Delete All Bookmarks") + "\n\n")
		content.WriteString(fmt.Sprintf("Delete all %d bookmarks? This cannot be undone.\n\n", a.store.Len()))
		content.WriteString(a.renderHintsInline(a.getConfirmHints().All()))
	}

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		a.styles.Modal.Width(modalWidth).Render(content.String()),
	)
}

func (a App) renderFormField(field int, label, input string) string {
	style := a.styles.Label
	if a.form.Focus == field {
		style = a.styles.LabelActive
	}
	return style.Render(label+":") + "\n" + input + "\n\n"
}

func (a App) renderCategoryChoice() string {
	c := a.form.Category()
	label := c.String()
	if c == "" {
		label = "auto (from URL)"
	}
	if a.form.Focus == fieldCategory {
		return "◂ " + a.styles.Category.Render(label) + " ▸"
	}
	return "  " + label
}

func (a App) renderHelpOverlay() string {
	colWidth := a.layoutConfig.Modal.HelpColumnWidth

	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("j/k        move\n")
	left.WriteString("gg/G       top/bottom\n")
	left.WriteString("tab        next category\n")
	left.WriteString("shift+tab  prev category\n")
	left.WriteString("/          search\n")
	left.WriteString("esc        clear search\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("act") + "\n")
	left.WriteString("enter      open url\n")
	left.WriteString("Y          yank url\n")
	left.WriteString("o          cycle sort\n")
	left.WriteString("T          toggle theme\n")

	var right strings.Builder
	right.WriteString(a.styles.Title.Render("edit") + "\n")
	right.WriteString("a    add bookmark\n")
	right.WriteString("e    edit\n")
	right.WriteString("d    delete\n")
	right.WriteString("D    delete all\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/esc] close  [ctrl+c] quit"))

	leftCol := lipgloss.NewStyle().Width(colWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(colWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	// Top-left aligned
	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		a.styles.Modal.Render(cols),
	)
}

// formatTimeAgo formats the time since t in human-readable form.
func formatTimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	if d < time.Minute {
		return "just now"
	} else if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	} else if d < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	days := int(d.Hours() / 24)
	if days < 365 {
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}
