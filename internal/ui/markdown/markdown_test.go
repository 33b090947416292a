package markdown

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/printcal/internal/calendar"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

func TestNew(t *testing.T) {
	r, err := New(80, "")
	require.NoError(t, err)
	require.Equal(t, 80, r.Width())

	_, err = New(60, "light")
	require.NoError(t, err)
}

func TestDayDocument(t *testing.T) {
	day := calendar.NewDateKey(2024, time.March, 15)
	doc := DayDocument(day, "  Rush job\n\nCall before noon  ", []calendar.Assignment{
		calendar.NewAssignment("100", "Acme_Co"),
		calendar.NewAssignment("101", ""),
	})

	require.Contains(t, doc, "# Friday, March 15, 2024")
	require.Contains(t, doc, "Rush job\n\nCall before noon\n")
	require.Contains(t, doc, "## Orders (2)")
	require.Contains(t, doc, `- 100 - Acme\_Co`)
	require.Contains(t, doc, "- 101\n")
}

func TestDayDocument_Empty(t *testing.T) {
	doc := DayDocument(calendar.NewDateKey(2024, time.April, 2), " ", nil)

	require.Contains(t, doc, "_No notes._")
	require.Contains(t, doc, "_No orders scheduled for this day._")
}

func TestRenderer_RendersDayDocument(t *testing.T) {
	r, err := New(60, "dark")
	require.NoError(t, err)

	day := calendar.NewDateKey(2024, time.March, 15)
	out, err := r.Render(DayDocument(day, "Rush job", []calendar.Assignment{calendar.NewAssignment("100", "Acme")}))
	require.NoError(t, err)

	plain := stripANSI(out)
	require.Contains(t, plain, "March 15, 2024")
	require.Contains(t, plain, "Rush job")
	require.Contains(t, plain, "100 - Acme")
}
