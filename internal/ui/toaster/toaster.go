// Package toaster shows short status notifications at the bottom of the
// screen.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/printcal/internal/ui/overlay"
	"github.com/zjrosen/printcal/internal/ui/styles"
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 3 * time.Second

// Style determines the visual appearance of the toast.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// StyleFor picks success or error.
func StyleFor(ok bool) Style {
	if ok {
		return StyleSuccess
	}
	return StyleError
}

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	gen     uint64
}

// New creates a new toaster model.
func New() Model {
	return Model{}
}

// Show displays message, replacing any toast already up.
func (m Model) Show(message string, style Style) Model {
	m.message = message
	m.style = style
	m.visible = message != ""
	m.gen++
	return m
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the text of the visible toast.
func (m Model) Message() string {
	return m.message
}

// DismissMsg hides the toast it was scheduled for.
type DismissMsg struct {
	Gen uint64
}

// ScheduleDismiss returns a command that dismisses the current toast after
// d. A toast shown in the meantime is left alone.
func (m Model) ScheduleDismiss(d time.Duration) tea.Cmd {
	gen := m.gen
	return tea.Tick(d, func(time.Time) tea.Msg {
		return DismissMsg{Gen: gen}
	})
}

// Handle applies a DismissMsg.
func (m Model) Handle(msg DismissMsg) Model {
	if msg.Gen != m.gen {
		return m
	}
	return m.Hide()
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	var content string
	switch m.style {
	case StyleError:
		style = style.BorderForeground(styles.ToastBorderErrorColor)
		content = "✗ " + m.message
	case StyleInfo:
		style = style.BorderForeground(styles.ToastBorderInfoColor)
		content = "• " + m.message
	case StyleWarn:
		style = style.BorderForeground(styles.ToastBorderWarnColor)
		content = "! " + m.message
	default:
		style = style.BorderForeground(styles.ToastBorderSuccessColor)
		content = "✓ " + m.message
	}

	return style.Render(content)
}

// Overlay renders the toast near the bottom of bg.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible || m.message == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}
