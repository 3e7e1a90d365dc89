package layout

// CalculateModalWidth computes a modal width as a percentage of the
// terminal width, clamped between MinWidth and MaxWidth and never wider
// than the terminal.
func CalculateModalWidth(terminalWidth int, cfg ModalConfig) int {
	width := terminalWidth * cfg.WidthPercent / 100
	width = max(width, cfg.MinWidth)
	width = min(width, cfg.MaxWidth, terminalWidth-4)
	return max(width, 1)
}

// CalculateListRows computes how many bookmark rows fit on screen.
func CalculateListRows(terminalHeight int, cfg ListConfig) int {
	return max(terminalHeight-cfg.HeightReduction, cfg.MinRows)
}

// CalculateListWidth computes the width available for a row.
func CalculateListWidth(terminalWidth int, cfg ListConfig) int {
	return max(terminalWidth-cfg.WidthReduction, 1)
}

// CalculateViewportOffset returns the first visible index so that
// selected stays within a window of viewportHeight rows. The previous
// offset is kept when the selection is still visible, so the list only
// scrolls at its edges.
func CalculateViewportOffset(prevOffset, selected, total, viewportHeight int) int {
	if total <= viewportHeight || viewportHeight <= 0 {
		return 0
	}

	offset := prevOffset
	if selected < offset {
		offset = selected
	}
	if selected >= offset+viewportHeight {
		offset = selected - viewportHeight + 1
	}

	return min(max(offset, 0), total-viewportHeight)
}
