package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/printcal/internal/calendar"
	"github.com/zjrosen/printcal/internal/history"
	"github.com/zjrosen/printcal/internal/keys"
	"github.com/zjrosen/printcal/internal/log"
	"github.com/zjrosen/printcal/internal/orders"
	"github.com/zjrosen/printcal/internal/selection"
	"github.com/zjrosen/printcal/internal/ui/markdown"
	"github.com/zjrosen/printcal/internal/ui/toaster"
)

const (
	modalWidth      = 56
	notesAreaHeight = 8
	loginUsername   = 0
	loginPassword   = 1
)

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "order # or company"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	return ti
}

func newUsernameInput(prefill string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "username"
	ti.Prompt = ""
	ti.CharLimit = 128
	ti.Width = modalWidth - 8
	ti.SetValue(prefill)
	return ti
}

func newPasswordInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "password"
	ti.Prompt = ""
	ti.CharLimit = 128
	ti.Width = modalWidth - 8
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	return ti
}

func newNotesArea() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Notes for this day..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(modalWidth - 6)
	ta.SetHeight(notesAreaHeight)
	return ta
}

// refilter recomputes the visible rows from the filter text. The list
// selection refers to visible positions, so it is dropped.
func (m *Model) refilter() {
	q := m.filter.Value()
	m.visible = m.visible[:0]
	for i, r := range m.records {
		if r.Matches(q) {
			m.visible = append(m.visible, i)
		}
	}
	m.listOffset = clampOffset(m.listOffset, len(m.visible), m.listRows())
}

func (m Model) resizeModals() Model {
	w := min(modalWidth, max(m.width-4, 20))
	m.username.Width = w - 8
	m.password.Width = w - 8
	m.notes.SetWidth(w - 6)
	m.details.Width = w - 4
	m.details.Height = max(m.height-12, 5)
	m.filter.Width = max(m.listWidth()-6, 8)
	return m
}

// updateInputs forwards non-key messages (cursor blink) to whatever input
// has focus.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.modal == modalLogin && m.loginField == loginUsername:
		m.username, cmd = m.username.Update(msg)
	case m.modal == modalLogin:
		m.password, cmd = m.password.Update(msg)
	case m.modal == modalNotes:
		m.notes, cmd = m.notes.Update(msg)
	case m.filtering:
		m.filter, cmd = m.filter.Update(msg)
	}
	return m, cmd
}

// Login form.

func (m Model) openLogin() (Model, tea.Cmd) {
	m.modal = modalLogin
	m.password.SetValue("")
	if m.username.Value() == "" {
		m.loginField = loginUsername
	} else {
		m.loginField = loginPassword
	}
	return m, m.focusLoginField()
}

func (m *Model) focusLoginField() tea.Cmd {
	if m.loginField == loginUsername {
		m.password.Blur()
		return m.username.Focus()
	}
	m.username.Blur()
	return m.password.Focus()
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Form.Cancel):
		m.modal = modalNone
		m.username.Blur()
		m.password.Blur()
		m.password.SetValue("")
		return m, nil

	case key.Matches(msg, keys.Form.Next), key.Matches(msg, keys.Form.Prev):
		m.loginField = 1 - m.loginField
		return m, m.focusLoginField()

	case key.Matches(msg, keys.Form.Submit):
		return m.submitLogin()
	}

	var cmd tea.Cmd
	if m.loginField == loginUsername {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	user := strings.TrimSpace(m.username.Value())
	pass := m.password.Value()
	if user == "" || pass == "" {
		return m.notify(orders.MsgMissingCredentials, toaster.StyleError)
	}
	if m.worker == nil {
		return m.notify("Order portal is not configured.", toaster.StyleError)
	}
	if !m.worker.Login(user, pass) {
		return m.notify("Please wait for the current request to finish.", toaster.StyleWarn)
	}
	m.username.SetValue(user)
	m.busyText = orders.MsgLoggingIn
	m.modal = modalNone
	m.username.Blur()
	m.password.Blur()
	log.Info(log.CatOrders, "login requested", "user", user)
	return m, nil
}

func (m Model) refresh() (tea.Model, tea.Cmd) {
	if m.worker == nil {
		return m.notify("Order portal is not configured.", toaster.StyleError)
	}
	if !m.worker.Refresh() {
		return m.notify("Please wait for the current request to finish.", toaster.StyleWarn)
	}
	m.busyText = orders.MsgRefreshing
	return m, nil
}

// Notes editor.

func (m Model) openNotes() (Model, tea.Cmd) {
	m.modal = modalNotes
	m.notesDay = m.activeDay
	m.notes.SetValue(m.store.Notes(m.activeDay))
	m.notes.CursorEnd()
	return m, m.notes.Focus()
}

func (m Model) updateNotes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+s":
		m.modal = modalNone
		m.notes.Blur()
		day := m.notesDay
		text := m.notes.Value()
		m.history.Record(m.store, history.KindNotes, []calendar.DateKey{day}, func() bool {
			return m.store.SetNotes(day, text)
		})
		return m, nil
	}
	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

// Filter line.

func (m Model) openFilter() (Model, tea.Cmd) {
	m.filtering = true
	m.focus = paneList
	return m, m.filter.Focus()
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}
	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.selection.Clear(selection.List())
		m.listOffset = 0
		m.refilter()
	}
	return m, cmd
}

// Day details.

func (m Model) openDetails() (Model, tea.Cmd) {
	doc := markdown.DayDocument(m.activeDay, m.store.Notes(m.activeDay), m.store.Assignments(m.activeDay))
	body := doc
	if r, err := markdown.New(m.details.Width, m.cfg.UI.MarkdownStyle); err != nil {
		log.ErrorErr(log.CatUI, "markdown renderer unavailable", err)
	} else if out, err := r.Render(doc); err != nil {
		log.ErrorErr(log.CatUI, "rendering day details failed", err)
	} else {
		body = out
	}
	m.details.SetContent(body)
	m.details.GotoTop()
	m.modal = modalDetails
	return m, nil
}

func (m Model) updateDetails(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.modal = modalNone
		return m, nil
	}
	var cmd tea.Cmd
	m.details, cmd = m.details.Update(msg)
	return m, cmd
}
