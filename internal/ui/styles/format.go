package styles

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

// TruncateString truncates a string to fit within maxWidth, adding an
// ellipsis if needed.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// FirstLine returns the first non-blank line of text, trimmed.
func FirstLine(text string) string {
	for line := range strings.Lines(text) {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}

// Wrap word-wraps text to width and returns at most maxLines lines. The
// last kept line ends in an ellipsis when lines were dropped.
func Wrap(text string, width, maxLines int) []string {
	if width < 1 || maxLines < 1 {
		return nil
	}
	lines := strings.Split(wordwrap.String(strings.TrimSpace(text), width), "\n")
	for i, l := range lines {
		lines[i] = TruncateString(strings.TrimRight(l, " "), width)
	}
	if len(lines) <= maxLines {
		return lines
	}
	lines = lines[:maxLines]
	last := lines[maxLines-1]
	lines[maxLines-1] = TruncateString(last+"...", width)
	return lines
}
