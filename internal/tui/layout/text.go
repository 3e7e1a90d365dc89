package layout

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ansiRegex matches ANSI SGR escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// VisibleLength returns the display width of a string (excluding ANSI codes).
// Wide characters count as two columns.
func VisibleLength(s string) int {
	return runewidth.StringWidth(StripANSI(s))
}

// TruncateText truncates text to maxWidth display columns, ending with
// the ellipsis. Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", text != ""
	}
	if runewidth.StringWidth(text) <= maxWidth {
		return text, false
	}
	if maxWidth <= runewidth.StringWidth(cfg.Ellipsis) {
		return runewidth.Truncate(cfg.Ellipsis, maxWidth, ""), true
	}
	return runewidth.Truncate(text, maxWidth, cfg.Ellipsis), true
}

// PadRight pads s with spaces to width display columns. Longer strings are
// returned unchanged.
func PadRight(s string, width int) string {
	if n := VisibleLength(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// JoinTags renders tags as "#a #b", truncated to maxWidth.
func JoinTags(tags []string, maxWidth int, cfg TextConfig) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = "#" + t
	}
	s, _ := TruncateText(strings.Join(parts, " "), maxWidth, cfg)
	return s
}
