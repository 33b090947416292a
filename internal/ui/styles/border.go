package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// Box draws a rounded border with a title embedded in the top edge:
//
//	╭─ 15 (3) ──╮
//	│100 - Acme │
//	╰───────────╯
//
// Content lines are clipped, never wrapped, so zone markers inside them
// survive intact.
type Box struct {
	Title      string
	Width      int
	Height     int
	Border     lipgloss.TerminalColor
	TitleStyle lipgloss.Style
}

// Render draws content inside the box.
func (b Box) Render(content string) string {
	var border lipgloss.TerminalColor = BorderDefaultColor
	if b.Border != nil {
		border = b.Border
	}
	borderStyle := lipgloss.NewStyle().Foreground(border)

	innerWidth := max(b.Width-2, 1)
	innerHeight := max(b.Height-2, 1)

	lines := strings.Split(content, "\n")
	var out strings.Builder
	out.WriteString(buildTopBorder(b.Title, innerWidth, borderStyle, b.TitleStyle))
	for i := range innerHeight {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		out.WriteString("\n")
		out.WriteString(borderStyle.Render(borderVertical))
		out.WriteString(fit(line, innerWidth))
		out.WriteString(borderStyle.Render(borderVertical))
	}
	out.WriteString("\n")
	out.WriteString(borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight))
	return out.String()
}

// fit clips or pads line to exactly width cells.
func fit(line string, width int) string {
	w := ansi.StringWidth(line)
	if w > width {
		line = ansi.Truncate(line, width, "")
		w = ansi.StringWidth(line)
	}
	return line + strings.Repeat(" ", width-w)
}

// buildTopBorder creates the top border with embedded title.
func buildTopBorder(title string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	// Need room for "─ " before and " ─" after the title.
	const chrome = 4
	if title == "" || innerWidth < chrome+1 {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	display := TruncateString(title, innerWidth-chrome)
	remaining := max(innerWidth-3-lipgloss.Width(display), 0)

	return borderStyle.Render(borderTopLeft+borderHorizontal+" ") +
		titleStyle.Render(display) +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, remaining)+borderTopRight)
}
