package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/printcal/internal/calendar"
	"github.com/zjrosen/printcal/internal/drag"
	"github.com/zjrosen/printcal/internal/log"
	"github.com/zjrosen/printcal/internal/selection"
	"github.com/zjrosen/printcal/internal/ui/toaster"
)

const msgNothingToAssign = "Please select at least one order to assign."

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalLogin:
		return m.updateLogin(msg)
	case modalNotes:
		return m.updateNotes(msg)
	case modalDetails:
		return m.updateDetails(msg)
	case modalHelp:
		m.modal = modalNone
		m.help.ShowAll = false
		return m, nil
	}
	if m.filtering {
		return m.updateFilter(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.saver != nil {
			if err := m.saver.Flush(); err != nil {
				log.ErrorErr(log.CatPersist, "final save failed", err)
			}
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		if m.drag.Phase() != drag.Idle {
			m.drag.Cancel()
			return m, nil
		}
		m.selection.ClearAll()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.navigate(-1, selection.Mods{})
	case key.Matches(msg, m.keys.Down):
		m.navigate(1, selection.Mods{})
	case key.Matches(msg, m.keys.ExtendUp):
		m.navigate(-1, selection.Mods{Shift: true})
	case key.Matches(msg, m.keys.ExtendDown):
		m.navigate(1, selection.Mods{Shift: true})
	case key.Matches(msg, m.keys.ToggleUp):
		m.navigate(-1, selection.Mods{Ctrl: true})
	case key.Matches(msg, m.keys.ToggleDown):
		m.navigate(1, selection.Mods{Ctrl: true})
	case key.Matches(msg, m.keys.Toggle):
		m.toggleFocused()

	case key.Matches(msg, m.keys.DayLeft):
		m.moveDay(-1)
	case key.Matches(msg, m.keys.DayRight):
		m.moveDay(1)
	case key.Matches(msg, m.keys.DayUp):
		m.moveDay(-7)
	case key.Matches(msg, m.keys.DayDown):
		m.moveDay(7)
	case key.Matches(msg, m.keys.PrevMonth):
		m.moveMonth(-1)
	case key.Matches(msg, m.keys.NextMonth):
		m.moveMonth(1)
	case key.Matches(msg, m.keys.Today):
		m.setActiveDay(calendar.Today(m.clock))
	case key.Matches(msg, m.keys.Focus):
		if m.focus == paneList {
			m.focus = paneCalendar
		} else {
			m.focus = paneList
		}

	case key.Matches(msg, m.keys.Assign):
		return m.assignSelected()
	case key.Matches(msg, m.keys.Remove):
		out := m.resolver.RemoveSelected(m.activeDay)
		return m.notify(out.Message, toaster.StyleFor(out.OK))
	case key.Matches(msg, m.keys.Clear):
		out := m.resolver.ClearDay(m.activeDay)
		return m.notify(out.Message, toaster.StyleFor(out.OK))
	case key.Matches(msg, m.keys.Notes):
		return m.openNotes()
	case key.Matches(msg, m.keys.Undo):
		return m.undo()
	case key.Matches(msg, m.keys.Redo):
		return m.redo()

	case key.Matches(msg, m.keys.Filter):
		return m.openFilter()
	case key.Matches(msg, m.keys.Login):
		return m.openLogin()
	case key.Matches(msg, m.keys.Refresh):
		return m.refresh()
	case key.Matches(msg, m.keys.Details):
		return m.openDetails()
	case key.Matches(msg, m.keys.Help):
		m.modal = modalHelp
		m.help.ShowAll = true
	}
	return m, nil
}

// focusedContainer is the container keyboard selection acts on.
func (m Model) focusedContainer() (selection.Container, int) {
	if m.focus == paneList {
		return selection.List(), len(m.visible)
	}
	return selection.Day(m.activeDay), m.store.Count(m.activeDay)
}

func (m *Model) navigate(delta int, mods selection.Mods) {
	c, size := m.focusedContainer()
	row := m.selection.Navigate(c, delta, size, mods)
	if c.Kind == selection.KindList && row >= 0 {
		m.scrollTo(row)
	}
}

// toggleFocused flips the focused row in or out of the selection.
func (m *Model) toggleFocused() {
	c, size := m.focusedContainer()
	row := m.selection.Focus(c)
	if row < 0 || row >= size {
		return
	}
	if res := m.selection.Click(c, row, size, selection.Mods{Ctrl: true}); res.PendingToggle {
		m.selection.CompleteToggle(c, row)
	}
}

func (m *Model) scrollTo(row int) {
	rows := m.listRows()
	switch {
	case row < m.listOffset:
		m.listOffset = row
	case rows > 0 && row >= m.listOffset+rows:
		m.listOffset = row - rows + 1
	}
}

func (m *Model) moveDay(n int) {
	m.focus = paneCalendar
	m.setActiveDay(m.activeDay.AddDays(n))
}

// moveMonth keeps the day of month, clamped to the target month's length.
func (m *Model) moveMonth(n int) {
	target := m.cells.month.Add(n)
	day := min(m.activeDay.Day, calendar.DaysIn(target.Year, target.Month))
	m.setActiveDay(calendar.NewDateKey(target.Year, target.Month, day))
}

// setActiveDay moves the active day, switching the displayed month when day
// leaves it.
func (m *Model) setActiveDay(day calendar.DateKey) {
	if day != m.activeDay {
		m.selection.Clear(selection.Day(m.activeDay))
	}
	m.activeDay = day
	if month := calendar.MonthOf(day); month != m.cells.month {
		m.showMonth(month)
	}
}

func (m *Model) showMonth(month calendar.Month) {
	if m.drag.Phase() != drag.Idle {
		m.drag.Cancel()
	}
	m.cells = newCellRegistry(month, m.firstWeekday)
	log.Debug(log.CatUI, "month shown", "month", month.Title())
}

// assignSelected drops the selected list rows onto the active day.
func (m Model) assignSelected() (tea.Model, tea.Cmd) {
	rows := m.selection.Selected(selection.List())
	if len(rows) == 0 {
		return m.notify(msgNothingToAssign, toaster.StyleWarn)
	}
	out := m.resolver.Drop(m.listPayload(rows), m.activeDay, true)
	if out.OK {
		m.focus = paneCalendar
	}
	return m.notify(out.Message, toaster.StyleFor(out.OK))
}

func (m Model) undo() (tea.Model, tea.Cmd) {
	res, ok := m.history.Undo(m.store)
	if ok {
		m.selection.ClearAll()
	}
	return m.notify(res.Message, historyStyle(ok))
}

func (m Model) redo() (tea.Model, tea.Cmd) {
	res, ok := m.history.Redo(m.store)
	if ok {
		m.selection.ClearAll()
	}
	return m.notify(res.Message, historyStyle(ok))
}

func historyStyle(ok bool) toaster.Style {
	if ok {
		return toaster.StyleSuccess
	}
	return toaster.StyleInfo
}
