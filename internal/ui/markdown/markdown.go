// Package markdown renders day details as styled terminal markdown.
package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/zjrosen/printcal/internal/calendar"
)

// noMarginStyle removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with fixed width and style.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a markdown renderer with the given width and style, "dark"
// or "light". An explicit style avoids the terminal background query that
// auto detection performs, whose reply would leak into the input stream.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}

// DayDocument builds the markdown shown for a day: a heading, the notes as
// written, and the assigned orders as a list.
func DayDocument(day calendar.DateKey, notes string, assignments []calendar.Assignment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", day.Time().Format("Monday, January 2, 2006"))

	b.WriteString("## Notes\n\n")
	if calendar.IsBlank(notes) {
		b.WriteString("_No notes._\n\n")
	} else {
		b.WriteString(strings.TrimSpace(notes))
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "## Orders (%d)\n\n", len(assignments))
	if len(assignments) == 0 {
		b.WriteString("_No orders scheduled for this day._\n")
	}
	for _, a := range assignments {
		fmt.Fprintf(&b, "- %s\n", escape(a.Label()))
	}
	return b.String()
}

// escape keeps order labels from being read as markdown.
func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `_`, `\_`, "`", "\\`", `[`, `\[`, `#`, `\#`)
	return r.Replace(s)
}
