package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/printcal/internal/calendar"
	"github.com/zjrosen/printcal/internal/selection"
	"github.com/zjrosen/printcal/internal/ui/overlay"
	"github.com/zjrosen/printcal/internal/ui/styles"
)

const (
	defaultWidth  = 120
	defaultHeight = 36
	minCellWidth  = 10
	minCellHeight = 4
	// login status and filter line above the rows
	listHeaderLines = 2
	// month title and weekday header above the grid
	gridHeaderLines = 2
)

func (m Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (m Model) listWidth() int {
	w, _ := m.size()
	return min(max(w/4, 24), 40)
}

// columnWidths splits total across the seven weekday columns. The columns
// on the left take the remainder one cell each.
func columnWidths(total int) [7]int {
	var cols [7]int
	base, extra := total/7, total%7
	if base < minCellWidth {
		base, extra = minCellWidth, 0
	}
	for d := range cols {
		cols[d] = base
		if d < extra {
			cols[d]++
		}
	}
	return cols
}

// paneHeight leaves one line for the status bar.
func (m Model) paneHeight() int {
	_, h := m.size()
	return max(h-1, 8)
}

// listRows is how many order rows fit in the list pane.
func (m Model) listRows() int {
	return max(m.paneHeight()-2-listHeaderLines, 1)
}

func clampOffset(offset, total, rows int) int {
	return max(min(offset, total-rows), 0)
}

// View implements tea.Model. The base layout is scanned for mouse zones
// before overlays are drawn so overlays never shift zone positions.
func (m Model) View() string {
	w, h := m.size()

	panes := lipgloss.JoinHorizontal(lipgloss.Top, m.renderList(), m.renderCalendar())
	base := lipgloss.JoinVertical(lipgloss.Left, panes, m.renderStatus(w))
	view := zone.Scan(base)

	if st := m.drag.State(); m.drag.Dragging() && st.Indicator.Label != "" {
		ind := styles.DragIndicatorStyle.Render(st.Indicator.Label)
		view = overlay.Place(overlay.Config{
			Width: w, Height: h,
			Position: overlay.At,
			X:        st.Indicator.X,
			Y:        st.Indicator.Y,
		}, ind, view)
	}

	if body := m.renderModal(); body != "" {
		view = overlay.Place(overlay.Config{Width: w, Height: h, Position: overlay.Center}, body, view)
	}

	return m.toaster.Overlay(view, w, h)
}

func (m Model) renderList() string {
	width := m.listWidth()
	innerW := width - 2

	lines := make([]string, 0, m.listRows()+listHeaderLines)
	if m.loggedInAs != "" {
		lines = append(lines, styles.HintStyle.Render(styles.TruncateString("Logged in as "+m.loggedInAs, innerW)))
	} else {
		lines = append(lines, styles.HintStyle.Render("Not logged in (L to log in)"))
	}
	switch {
	case m.filtering:
		lines = append(lines, m.filter.View())
	case m.filter.Value() != "":
		lines = append(lines, styles.HintStyle.Render(styles.TruncateString("/ "+m.filter.Value(), innerW)))
	default:
		lines = append(lines, styles.HintStyle.Render("/ to filter"))
	}

	c := selection.List()
	focusRow := -1
	if m.focus == paneList {
		focusRow = m.selection.Focus(c)
	}
	end := min(m.listOffset+m.listRows(), len(m.visible))
	for j := m.listOffset; j < end; j++ {
		label := m.records[m.visible[j]].Assignment().Label()
		lines = append(lines, zone.Mark(listZoneID(j), m.renderRow(label, innerW, m.selection.IsSelected(c, j), j == focusRow)))
	}
	if len(m.visible) == 0 {
		if len(m.records) == 0 {
			lines = append(lines, styles.HintStyle.Render("No orders loaded."))
		} else {
			lines = append(lines, styles.HintStyle.Render("No orders match the filter."))
		}
	}

	title := "Orders (" + strconv.Itoa(len(m.records)) + ")"
	if len(m.visible) != len(m.records) {
		title = fmt.Sprintf("Orders (%d/%d)", len(m.visible), len(m.records))
	}
	border := styles.BorderDefaultColor
	if m.focus == paneList {
		border = styles.BorderFocusColor
	}
	box := styles.Box{
		Title:      title,
		Width:      width,
		Height:     m.paneHeight(),
		Border:     border,
		TitleStyle: styles.TitleStyle,
	}.Render(strings.Join(lines, "\n"))
	return zone.Mark(zoneListPane, box)
}

// renderRow draws one order row padded to width. It is clipped before
// marking so the zone end marker is never cut off.
func (m Model) renderRow(label string, width int, selected, focused bool) string {
	marker := "  "
	if focused {
		marker = styles.SelectionIndicatorStyle.Render("> ")
	}
	text := styles.TruncateString(label, max(width-2, 1))
	if selected {
		text = styles.SelectedRowStyle.Render(text)
	}
	row := marker + text
	return row + strings.Repeat(" ", max(width-lipgloss.Width(row), 0))
}

func (m Model) renderCalendar() string {
	w, _ := m.size()
	width := w - m.listWidth()
	weeks := max(m.cells.weeks, 1)
	cols := columnWidths(width)
	gridW := 0
	for _, c := range cols {
		gridW += c
	}
	cellH := max((m.paneHeight()-gridHeaderLines)/weeks, minCellHeight)

	title := lipgloss.PlaceHorizontal(gridW, lipgloss.Center, styles.TitleStyle.Render(m.cells.month.Title()))

	names := calendar.WeekdayNames(m.firstWeekday)
	header := make([]string, len(names))
	for i, n := range names {
		header[i] = styles.WeekdayStyle.Width(cols[i]).Align(lipgloss.Center).Render(n)
	}

	hover, hovering := m.drag.Hover()
	rows := make([]string, 0, weeks+2)
	rows = append(rows, title, lipgloss.JoinHorizontal(lipgloss.Top, header...))
	for week := range weeks {
		cells := make([]string, 0, 7)
		for d := range 7 {
			i := week*7 + d
			cell, ok := m.cells.Cell(i)
			if !ok {
				continue
			}
			target := hovering && hover.OnDay && hover.Day == cell.Day
			cells = append(cells, zone.Mark(dayZoneID(i), m.renderDay(i, cell, cols[d], cellH, target)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return zone.Mark(zoneGrid, lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderDay(i int, cell dayCell, width, height int, dropTarget bool) string {
	innerW := width - 2
	innerH := height - 2
	today := calendar.Today(m.clock)
	assignments := m.store.Assignments(cell.Day)

	title := strconv.Itoa(cell.Day.Day)
	if m.cfg.UI.ShowCounts && len(assignments) > 0 {
		title += " (" + strconv.Itoa(len(assignments)) + ")"
	}

	titleStyle := styles.DayNumberStyle
	switch {
	case cell.Day == today:
		titleStyle = styles.TodayStyle
	case !cell.InMonth:
		titleStyle = styles.SpilloverStyle
	}

	var border lipgloss.TerminalColor = styles.BorderDefaultColor
	switch {
	case dropTarget:
		border = styles.DropTargetColor
	case cell.Day == m.activeDay:
		border = styles.ActiveDayColor
	case cell.Day == today:
		border = styles.TodayColor
	}

	var lines []string
	if note := styles.FirstLine(m.store.Notes(cell.Day)); note != "" {
		lines = append(lines, styles.NotesStyle.Render(styles.TruncateString(note, innerW)))
	}

	c := selection.Day(cell.Day)
	focusRow := -1
	if m.focus == paneCalendar && cell.Day == m.activeDay {
		focusRow = m.selection.Focus(c)
	}
	room := innerH - len(lines)
	for j, a := range assignments {
		if room <= 0 {
			break
		}
		if room == 1 && j < len(assignments)-1 {
			more := fmt.Sprintf("+%d more", len(assignments)-j)
			lines = append(lines, styles.HintStyle.Render(styles.TruncateString(more, innerW)))
			break
		}
		lines = append(lines, zone.Mark(rowZoneID(i, j), m.renderRow(a.Label(), innerW, m.selection.IsSelected(c, j), j == focusRow)))
		room--
	}

	return styles.Box{
		Title:      title,
		Width:      width,
		Height:     height,
		Border:     border,
		TitleStyle: titleStyle,
	}.Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatus(width int) string {
	var left string
	if m.lastRefresh.IsZero() {
		left = "Last updated: never"
	} else {
		left = "Last updated: " + m.lastRefresh.Format("2006-01-02 15:04:05")
		switch {
		case m.stale:
			left += styles.StaleStyle.Render(" (stale)")
		case m.cached:
			left += styles.HintStyle.Render(" (cached)")
		}
	}
	if m.busyText != "" {
		left += "  " + m.busyText
	}

	right := m.help.ShortHelpView(m.keys.ShortHelp())
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return styles.StatusBarStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderModal() string {
	var body string
	switch m.modal {
	case modalLogin:
		body = strings.Join([]string{
			styles.TitleStyle.Render("Log in to YBS"),
			"",
			"Username",
			m.fieldBox(m.username.View(), m.loginField == loginUsername),
			"Password",
			m.fieldBox(m.password.View(), m.loginField == loginPassword),
			"",
			styles.HintStyle.Render("tab switch field • enter log in • esc cancel"),
		}, "\n")
	case modalNotes:
		body = strings.Join([]string{
			styles.TitleStyle.Render("Notes for " + m.notesDay.Label()),
			"",
			m.notes.View(),
			"",
			styles.HintStyle.Render("esc or ctrl+s save and close"),
		}, "\n")
	case modalDetails:
		body = strings.Join([]string{
			m.details.View(),
			styles.HintStyle.Render("↑/↓ scroll • esc close"),
		}, "\n")
	case modalHelp:
		body = m.help.View(m.keys)
	default:
		return ""
	}
	return styles.OverlayStyle.Render(body)
}

func (m Model) fieldBox(content string, focused bool) string {
	color := styles.FormTextInputBorderColor
	if focused {
		color = styles.FormTextInputFocusedBorderColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Render(content)
}
