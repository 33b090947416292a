package history

import (
	"fmt"

	"github.com/zjrosen/printcal/internal/calendar"
	"github.com/zjrosen/printcal/internal/log"
)

// DefaultLimit is the undo and redo capacity.
const DefaultLimit = 100

// Result describes a completed undo or redo.
type Result struct {
	Kind    Kind
	Days    []calendar.DateKey
	Message string
}

// Manager holds bounded undo and redo stacks. Not safe for concurrent use.
type Manager struct {
	undo  []Action
	redo  []Action
	limit int
}

// New creates a manager keeping at most limit entries per stack.
func New(limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{limit: limit}
}

// Push records an action taken before a user mutation and clears redo.
func (m *Manager) Push(a Action) {
	m.push(a, false)
}

func (m *Manager) push(a Action, fromRedo bool) {
	if len(a.Keys()) == 0 {
		return
	}
	if !fromRedo {
		m.redo = nil
	}
	m.undo = appendBounded(m.undo, a, m.limit)
	log.Debug(log.CatHistory, "pushed", "kind", a.Kind, "id", a.ID, "undo", len(m.undo), "redo", len(m.redo))
}

// Record captures days, runs mutate, and pushes the capture when mutate
// reports a change. It returns what mutate returned.
func (m *Manager) Record(s Reader, kind Kind, days []calendar.DateKey, mutate func() bool) bool {
	action, ok := Capture(s, kind, days...)
	changed := mutate()
	if changed && ok {
		m.Push(action)
	}
	return changed
}

// Undo reverts the most recent action. ok is false when there is nothing
// to undo.
func (m *Manager) Undo(s Store) (Result, bool) {
	action, ok := pop(&m.undo)
	if !ok {
		return Result{Message: "Nothing to undo."}, false
	}
	inverse, ok := Capture(s, action.Kind, action.Keys()...)
	if !ok {
		log.Warn(log.CatHistory, "dropping action without valid days", "id", action.ID)
		return Result{Message: "Nothing to undo."}, false
	}
	m.redo = appendBounded(m.redo, inverse, m.limit)
	apply(s, action)
	return result("Undo", action), true
}

// Redo reapplies the most recently undone action. ok is false when there
// is nothing to redo.
func (m *Manager) Redo(s Store) (Result, bool) {
	action, ok := pop(&m.redo)
	if !ok {
		return Result{Message: "Nothing to redo."}, false
	}
	inverse, ok := Capture(s, action.Kind, action.Keys()...)
	if !ok {
		log.Warn(log.CatHistory, "dropping action without valid days", "id", action.ID)
		return Result{Message: "Nothing to redo."}, false
	}
	m.push(inverse, true)
	apply(s, action)
	return result("Redo", action), true
}

// CanUndo reports whether Undo would do anything.
func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }

// CanRedo reports whether Redo would do anything.
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// Len returns the sizes of the undo and redo stacks.
func (m *Manager) Len() (undo, redo int) { return len(m.undo), len(m.redo) }

// Clear empties both stacks.
func (m *Manager) Clear() {
	m.undo = nil
	m.redo = nil
}

func result(verb string, a Action) Result {
	days := a.Keys()
	what := "assignments"
	if a.Kind == KindNotes {
		what = "notes"
	}
	return Result{
		Kind:    a.Kind,
		Days:    days,
		Message: fmt.Sprintf("%s: restored %s for %s.", verb, what, calendar.JoinLabels(days)),
	}
}

func appendBounded(stack []Action, a Action, limit int) []Action {
	stack = append(stack, a)
	if over := len(stack) - limit; over > 0 {
		stack = append(stack[:0:0], stack[over:]...)
	}
	return stack
}

func pop(stack *[]Action) (Action, bool) {
	s := *stack
	if len(s) == 0 {
		return Action{}, false
	}
	a := s[len(s)-1]
	*stack = s[:len(s)-1]
	return a, true
}
