package app

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/printcal/internal/calendar"
	"github.com/zjrosen/printcal/internal/drag"
	"github.com/zjrosen/printcal/internal/selection"
	"github.com/zjrosen/printcal/internal/ui/toaster"
)

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	at := drag.Point{X: msg.X, Y: msg.Y}

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if m.inZone(zoneListPane, msg) {
			delta := 1
			if msg.Button == tea.MouseButtonWheelUp {
				delta = -1
			}
			m.listOffset = clampOffset(m.listOffset+delta, len(m.visible), m.listRows())
		}
		return m, nil

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return m.mousePress(msg, at), nil

	case msg.Action == tea.MouseActionMotion:
		if m.drag.Phase() != drag.Idle {
			m.drag.Move(at, m.hitAt(msg))
		}
		return m, nil

	case msg.Action == tea.MouseActionRelease:
		return m.mouseRelease(msg)
	}
	return m, nil
}

func (m Model) mousePress(msg tea.MouseMsg, at drag.Point) Model {
	mods := selection.Mods{Shift: msg.Shift, Ctrl: msg.Ctrl || msg.Alt}

	if row, ok := m.listRowAt(msg); ok {
		m.focus = paneList
		c := selection.List()
		res := m.selection.Click(c, row, len(m.visible), mods)
		m.pressContainer = c
		m.drag.Press(at, m.listPayload(res.Selected), row, res.PendingToggle)
		return m
	}

	cell, ok := m.dayAt(msg)
	if !ok {
		if m.inZone(zoneListPane, msg) {
			m.focus = paneList
			m.selection.ClickEmpty(selection.List(), mods)
		}
		return m
	}

	day := m.cells.cells[cell].Day
	m.focus = paneCalendar
	m.activeDay = day
	c := selection.Day(day)
	if row, ok := m.dayRowAt(cell, msg); ok {
		res := m.selection.Click(c, row, m.store.Count(day), mods)
		m.pressContainer = c
		m.drag.Press(at, m.dayPayload(day, res.Selected), row, res.PendingToggle)
		return m
	}
	m.selection.ClickEmpty(c, mods)
	return m
}

func (m Model) mouseRelease(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.drag.Phase() == drag.Idle {
		return m, nil
	}
	r := m.drag.Release(m.hitAt(msg))

	switch r.Kind {
	case drag.ReleaseClick:
		if r.ApplyToggle {
			m.selection.CompleteToggle(m.pressContainer, r.PressRow)
		}
		return m, nil

	case drag.ReleaseDrop:
		out := m.resolver.Drop(r.Payload, r.Target, r.HasTarget)
		if out.OK && r.HasTarget {
			m.focus = paneCalendar
			m.activeDay = r.Target
		}
		return m.notify(out.Message, toaster.StyleFor(out.OK))
	}
	return m, nil
}

// hitAt resolves what lies under the pointer for the gesture.
func (m Model) hitAt(msg tea.MouseMsg) drag.Hit {
	var hit drag.Hit
	if cell, ok := m.dayAt(msg); ok {
		hit.Day = m.cells.cells[cell].Day
		hit.OnDay = true
	}
	hit.OnPressedRow = m.onPressedRow(msg)
	return hit
}

func (m Model) onPressedRow(msg tea.MouseMsg) bool {
	st := m.drag.State()
	if st.Phase == drag.Idle {
		return false
	}
	c := m.pressContainer
	if c.Kind == selection.KindList {
		return m.inZone(listZoneID(st.PressRow), msg)
	}
	cell, ok := m.cells.Lookup(c.Day)
	return ok && m.inZone(rowZoneID(cell, st.PressRow), msg)
}

func (m Model) dayAt(msg tea.MouseMsg) (int, bool) {
	for i := range m.cells.Len() {
		if m.inZone(dayZoneID(i), msg) {
			return i, true
		}
	}
	return -1, false
}

func (m Model) dayRowAt(cell int, msg tea.MouseMsg) (int, bool) {
	day := m.cells.cells[cell].Day
	for j := range m.store.Count(day) {
		if m.inZone(rowZoneID(cell, j), msg) {
			return j, true
		}
	}
	return -1, false
}

func (m Model) listRowAt(msg tea.MouseMsg) (int, bool) {
	end := min(m.listOffset+m.listRows(), len(m.visible))
	for j := m.listOffset; j < end; j++ {
		if m.inZone(listZoneID(j), msg) {
			return j, true
		}
	}
	return -1, false
}

func (m Model) inZone(id string, msg tea.MouseMsg) bool {
	z := zone.Get(id)
	return z != nil && z.InBounds(msg)
}

// listPayload captures the selected visible rows in display order.
func (m Model) listPayload(rows []int) drag.Payload {
	p := drag.Payload{Source: drag.SourceList}
	for _, j := range rows {
		if j < 0 || j >= len(m.visible) {
			continue
		}
		p.Items = append(p.Items, m.records[m.visible[j]].Assignment())
		p.Indices = append(p.Indices, j)
	}
	return p
}

// dayPayload captures the selected rows of day in display order.
func (m Model) dayPayload(day calendar.DateKey, rows []int) drag.Payload {
	list := m.store.Assignments(day)
	p := drag.Payload{Source: drag.SourceDay, SourceDay: day}
	for _, j := range rows {
		if j < 0 || j >= len(list) {
			continue
		}
		p.Items = append(p.Items, list[j])
		p.Indices = append(p.Indices, j)
	}
	return p
}
