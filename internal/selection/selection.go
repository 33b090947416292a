// Package selection tracks which rows are selected in the order list and
// in each day's assignment list. At most one container holds a selection
// at a time.
package selection

import (
	"slices"

	"github.com/zjrosen/printcal/internal/calendar"
	"github.com/zjrosen/printcal/internal/log"
)

// Kind distinguishes the order list from a day list.
type Kind int

const (
	KindList Kind = iota
	KindDay
)

// Container names one selectable list.
type Container struct {
	Kind Kind
	Day  calendar.DateKey
}

// List is the order list container.
func List() Container { return Container{Kind: KindList} }

// Day is the assignment list of one day.
func Day(d calendar.DateKey) Container { return Container{Kind: KindDay, Day: d} }

func (c Container) String() string {
	if c.Kind == KindList {
		return "list"
	}
	return "day:" + c.Day.String()
}

// Mods are the modifier keys held during a click or key press.
type Mods struct {
	Shift bool
	Ctrl  bool
}

// ClickResult reports the selection after a press.
type ClickResult struct {
	Selected []int
	// PendingToggle is set when ctrl was held on an already selected row.
	// The row stays selected until CompleteToggle runs on a release that
	// never became a drag.
	PendingToggle bool
}

type state struct {
	selected []int // sorted, unique
	anchor   int
	focus    int
}

func newState() *state { return &state{anchor: -1, focus: -1} }

// Model holds one selection state per container.
type Model struct {
	states map[Container]*state
}

// New returns an empty model.
func New() *Model {
	return &Model{states: make(map[Container]*state)}
}

func (m *Model) get(c Container) *state {
	st, ok := m.states[c]
	if !ok {
		st = newState()
		m.states[c] = st
	}
	return st
}

// Click applies a press on row index of a container holding size rows.
func (m *Model) Click(c Container, index, size int, mods Mods) ClickResult {
	if index < 0 || index >= size {
		m.ClickEmpty(c, mods)
		return ClickResult{Selected: m.Selected(c)}
	}
	m.clearOthers(c)
	st := m.get(c)
	st.prune(size)

	var pending bool
	switch {
	case mods.Shift:
		if st.anchor < 0 || st.anchor >= size {
			st.anchor = index
		}
		st.selected = span(st.anchor, index)
	case mods.Ctrl:
		if slices.Contains(st.selected, index) {
			pending = true
		} else {
			st.selected = insert(st.selected, index)
			st.anchor = index
		}
	default:
		if !slices.Contains(st.selected, index) {
			st.selected = []int{index}
		}
		st.anchor = index
	}
	st.focus = index

	log.Debug(log.CatSelect, "click", "container", c, "index", index, "shift", mods.Shift, "ctrl", mods.Ctrl, "selected", st.selected, "pending", pending)
	return ClickResult{Selected: slices.Clone(st.selected), PendingToggle: pending}
}

// CompleteToggle applies a deferred ctrl toggle-off of index. Call it only
// when the press never became a drag and was released on the same row.
func (m *Model) CompleteToggle(c Container, index int) {
	st := m.get(c)
	i := slices.Index(st.selected, index)
	if i < 0 {
		return
	}
	st.selected = slices.Delete(st.selected, i, i+1)
	if len(st.selected) == 0 {
		st.anchor = -1
	}
	log.Debug(log.CatSelect, "deferred toggle applied", "container", c, "index", index)
}

// ClickEmpty handles a press on a container outside any row. Without
// modifiers it clears that container's selection.
func (m *Model) ClickEmpty(c Container, mods Mods) {
	m.clearOthers(c)
	if mods.Shift || mods.Ctrl {
		return
	}
	m.Clear(c)
}

// Navigate moves the focused row by delta, clamped to the container. Shift
// extends the range from the anchor; ctrl moves focus only. Returns the new
// focus, or -1 for an empty container.
func (m *Model) Navigate(c Container, delta, size int, mods Mods) int {
	st := m.get(c)
	if size <= 0 {
		st.anchor = -1
		st.focus = -1
		st.selected = nil
		return -1
	}
	st.prune(size)

	var target int
	active := st.current(size)
	if active < 0 {
		// Nothing focused yet: land on the first or last row.
		target = 0
		if delta < 0 {
			target = size - 1
		}
		active = target
	} else {
		target = min(max(active+delta, 0), size-1)
	}

	switch {
	case mods.Ctrl && !mods.Shift:
		st.focus = target
		return target
	case mods.Shift:
		if st.anchor < 0 || st.anchor >= size {
			st.anchor = active
		}
		st.selected = span(st.anchor, target)
	default:
		st.selected = []int{target}
		st.anchor = target
	}
	st.focus = target
	m.clearOthers(c)
	return target
}

// Selected returns the selected rows of c in ascending order.
func (m *Model) Selected(c Container) []int {
	st, ok := m.states[c]
	if !ok {
		return nil
	}
	return slices.Clone(st.selected)
}

// IsSelected reports whether row index of c is selected.
func (m *Model) IsSelected(c Container, index int) bool {
	st, ok := m.states[c]
	return ok && slices.Contains(st.selected, index)
}

// Anchor returns the range anchor of c, or -1.
func (m *Model) Anchor(c Container) int {
	if st, ok := m.states[c]; ok {
		return st.anchor
	}
	return -1
}

// Focus returns the focused row of c, or -1.
func (m *Model) Focus(c Container) int {
	if st, ok := m.states[c]; ok {
		return st.focus
	}
	return -1
}

// Set replaces the selection of c and clears every other container. The
// anchor moves to the first row and focus to the last.
func (m *Model) Set(c Container, indices []int) {
	st := m.get(c)
	st.selected = normalize(indices)
	if len(st.selected) == 0 {
		st.anchor, st.focus = -1, -1
		return
	}
	m.clearOthers(c)
	st.anchor = st.selected[0]
	st.focus = st.selected[len(st.selected)-1]
}

// Clear drops the selection, anchor and focus of c.
func (m *Model) Clear(c Container) {
	delete(m.states, c)
}

// ClearAll drops every selection.
func (m *Model) ClearAll() {
	clear(m.states)
}

// Active returns the container currently holding a selection.
func (m *Model) Active() (Container, bool) {
	for c, st := range m.states {
		if len(st.selected) > 0 {
			return c, true
		}
	}
	return Container{}, false
}

// Remap rewrites the selection of c after rows were removed from it:
// removed rows drop out and later rows shift up.
func (m *Model) Remap(c Container, removed []int) {
	st, ok := m.states[c]
	if !ok || len(removed) == 0 {
		return
	}
	removed = normalize(removed)
	st.selected = shiftAll(st.selected, removed)
	st.anchor = shiftOne(st.anchor, removed)
	st.focus = shiftOne(st.focus, removed)
}

func (m *Model) clearOthers(keep Container) {
	for c := range m.states {
		if c != keep {
			delete(m.states, c)
		}
	}
}

// current picks the row keyboard navigation starts from.
func (st *state) current(size int) int {
	switch {
	case st.focus >= 0 && st.focus < size:
		return st.focus
	case len(st.selected) > 0:
		return st.selected[len(st.selected)-1]
	case st.anchor >= 0 && st.anchor < size:
		return st.anchor
	default:
		return -1
	}
}

// prune drops rows beyond size, which happens after the list shrank.
func (st *state) prune(size int) {
	st.selected = slices.DeleteFunc(st.selected, func(i int) bool { return i >= size })
	if st.anchor >= size {
		st.anchor = -1
	}
	if st.focus >= size {
		st.focus = -1
	}
}

func span(a, b int) []int {
	lo, hi := min(a, b), max(a, b)
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}

func insert(sorted []int, v int) []int {
	i, found := slices.BinarySearch(sorted, v)
	if found {
		return sorted
	}
	return slices.Insert(sorted, i, v)
}

func normalize(indices []int) []int {
	out := slices.DeleteFunc(slices.Clone(indices), func(i int) bool { return i < 0 })
	slices.Sort(out)
	return slices.Compact(out)
}

func shiftOne(i int, removed []int) int {
	if i < 0 {
		return i
	}
	if _, found := slices.BinarySearch(removed, i); found {
		return -1
	}
	n, _ := slices.BinarySearch(removed, i)
	return i - n
}

func shiftAll(indices, removed []int) []int {
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if j := shiftOne(i, removed); j >= 0 {
			out = append(out, j)
		}
	}
	return out
}
