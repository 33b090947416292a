// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	// Navigation
	Up         key.Binding
	Down       key.Binding
	ExtendUp   key.Binding
	ExtendDown key.Binding
	ToggleUp   key.Binding
	ToggleDown key.Binding
	Toggle     key.Binding
	DayLeft    key.Binding
	DayRight   key.Binding
	DayUp      key.Binding
	DayDown    key.Binding
	Focus      key.Binding
	PrevMonth  key.Binding
	NextMonth  key.Binding
	Today      key.Binding

	// Editing
	Assign key.Binding
	Remove key.Binding
	Clear  key.Binding
	Notes  key.Binding
	Undo   key.Binding
	Redo   key.Binding

	// Orders
	Filter  key.Binding
	Login   key.Binding
	Refresh key.Binding

	// General
	Details key.Binding
	Help    key.Binding
	Escape  key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous row"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next row"),
		),
		ExtendUp: key.NewBinding(
			key.WithKeys("shift+up", "shift+left", "K"),
			key.WithHelp("shift+↑/←", "extend up"),
		),
		ExtendDown: key.NewBinding(
			key.WithKeys("shift+down", "shift+right", "J"),
			key.WithHelp("shift+↓/→", "extend down"),
		),
		ToggleUp: key.NewBinding(
			key.WithKeys("ctrl+up", "ctrl+left"),
			key.WithHelp("ctrl+↑/←", "move focus up"),
		),
		ToggleDown: key.NewBinding(
			key.WithKeys("ctrl+down", "ctrl+right"),
			key.WithHelp("ctrl+↓/→", "move focus down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle row"),
		),
		DayLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous day"),
		),
		DayRight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		DayUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "previous week"),
		),
		DayDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "next week"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch pane"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next month"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),

		Assign: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "assign to day"),
		),
		Remove: key.NewBinding(
			key.WithKeys("delete", "x"),
			key.WithHelp("x/del", "remove selected"),
		),
		Clear: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear day"),
		),
		Notes: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "edit notes"),
		),
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z", "u"),
			key.WithHelp("ctrl+z", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+y", "ctrl+r"),
			key.WithHelp("ctrl+y", "redo"),
		),

		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter orders"),
		),
		Login: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log in"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh orders"),
		),

		Details: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "day details"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Undo, k.Login, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.ExtendUp, k.ExtendDown, k.ToggleUp, k.ToggleDown, k.Toggle},
		{k.DayLeft, k.DayRight, k.DayUp, k.DayDown, k.PrevMonth, k.NextMonth, k.Today},
		{k.Assign, k.Remove, k.Clear, k.Notes, k.Undo, k.Redo},
		{k.Focus, k.Filter, k.Login, k.Refresh, k.Details, k.Help, k.Quit},
	}
}

// Form defines the keybindings inside the login form and notes editor.
var Form = struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
}{
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}
