package drop

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/printcal/internal/calendar"
	"github.com/zjrosen/printcal/internal/drag"
	"github.com/zjrosen/printcal/internal/history"
	"github.com/zjrosen/printcal/internal/selection"
)

var (
	mar15 = calendar.NewDateKey(2024, 3, 15)
	mar16 = calendar.NewDateKey(2024, 3, 16)
	acme  = calendar.NewAssignment("100", "Acme")
	beta  = calendar.NewAssignment("200", "Beta")
	gamma = calendar.NewAssignment("300", "Gamma")
)

func newResolver(t *testing.T, st calendar.State) *Resolver {
	t.Helper()
	return New(calendar.NewStore(st), history.New(0), selection.New())
}

func stateWith(days map[calendar.DateKey][]calendar.Assignment) calendar.State {
	st := calendar.NewState()
	for d, list := range days {
		st.Assignments[d] = list
	}
	return st
}

func fromDay(day calendar.DateKey, items []calendar.Assignment, indices ...int) drag.Payload {
	return drag.Payload{Source: drag.SourceDay, SourceDay: day, Items: items, Indices: indices}
}

func fromList(items ...calendar.Assignment) drag.Payload {
	return drag.Payload{Source: drag.SourceList, Items: items}
}

func TestDrop_NoTarget(t *testing.T) {
	r := newResolver(t, stateWith(map[calendar.DateKey][]calendar.Assignment{mar15: {acme}}))

	out := r.Drop(fromDay(mar15, []calendar.Assignment{acme}, 0), calendar.DateKey{}, false)

	require.False(t, out.OK)
	require.Equal(t, MsgInvalidTarget, out.Message)
	require.Equal(t, []calendar.Assignment{acme}, r.Store.Assignments(mar15))
	require.False(t, r.History.CanUndo())
}

func TestDrop_EmptyPayload(t *testing.T) {
	r := newResolver(t, calendar.NewState())

	out := r.Drop(drag.Payload{}, mar16, true)

	require.False(t, out.OK)
	require.Equal(t, MsgUnknownPayload, out.Message)
	require.Zero(t, r.Store.Revision())
}

func TestDrop_CrossDayMove(t *testing.T) {
	r := newResolver(t, stateWith(map[calendar.DateKey][]calendar.Assignment{mar15: {acme}}))
	before := r.Store.State()
	r.Selection.Click(selection.Day(mar15), 0, 1, selection.Mods{})

	out := r.Drop(fromDay(mar15, []calendar.Assignment{acme}, 0), mar16, true)

	require.True(t, out.OK)
	require.True(t, out.Recorded)
	require.Equal(t, "Moved order 100 (Acme) from March 15, 2024 to March 16, 2024.", out.Message)

	_, had := r.Store.AssignmentsEntry(mar15)
	require.False(t, had, "emptied source key should be removed")
	require.Equal(t, []calendar.Assignment{acme}, r.Store.Assignments(mar16))

	undo, redo := r.History.Len()
	require.Equal(t, 1, undo)
	require.Zero(t, redo)

	require.Empty(t, r.Selection.Selected(selection.Day(mar15)))
	require.Equal(t, []int{0}, r.Selection.Selected(selection.Day(mar16)))

	_, ok := r.History.Undo(r.Store)
	require.True(t, ok)
	require.True(t, before.Equal(r.Store.State()))
}

func TestDrop_ShiftSelectedListOrders(t *testing.T) {
	r := newResolver(t, calendar.NewState())
	list := selection.List()
	r.Selection.Click(list, 0, 3, selection.Mods{})
	r.Selection.Click(list, 2, 3, selection.Mods{Shift: true})
	require.Equal(t, []int{0, 1, 2}, r.Selection.Selected(list))

	out := r.Drop(fromList(acme, beta, gamma), mar16, true)

	require.True(t, out.OK)
	require.Equal(t, "Assigned 3 orders to March 16, 2024.", out.Message)
	require.Equal(t, []calendar.Assignment{acme, beta, gamma}, r.Store.Assignments(mar16))
	require.Empty(t, r.Selection.Selected(list))
	require.Equal(t, []int{0, 1, 2}, r.Selection.Selected(selection.Day(mar16)))
}

func TestDrop_SameDayUnchangedIsNoop(t *testing.T) {
	r := newResolver(t, stateWith(map[calendar.DateKey][]calendar.Assignment{mar15: {acme, beta}}))
	rev := r.Store.Revision()

	out := r.Drop(fromDay(mar15, []calendar.Assignment{beta}, 1), mar15, true)

	require.True(t, out.OK)
	require.False(t, out.Changed)
	require.False(t, out.Recorded)
	require.Equal(t, "Order 200 (Beta) remains scheduled for March 15, 2024.", out.Message)
	require.Equal(t, rev, r.Store.Revision())
	require.False(t, r.History.CanUndo())
	require.Equal(t, []int{1}, r.Selection.Selected(selection.Day(mar15)))
}

func TestDrop_SameDayReorder(t *testing.T) {
	r := newResolver(t, stateWith(map[calendar.DateKey][]calendar.Assignment{mar15: {acme, beta}}))

	out := r.Drop(fromDay(mar15, []calendar.Assignment{acme}, 0), mar15, true)

	require.True(t, out.OK)
	require.True(t, out.Recorded)
	require.Equal(t, []calendar.Assignment{beta, acme}, r.Store.Assignments(mar15))
	require.Equal(t, []int{1}, r.Selection.Selected(selection.Day(mar15)))
}

func TestDrop_StaleIndexFallsBackToValue(t *testing.T) {
	r := newResolver(t, stateWith(map[calendar.DateKey][]calendar.Assignment{mar15: {beta, acme}}))

	out := r.Drop(fromDay(mar15, []calendar.Assignment{acme}, 0), mar16, true)

	require.True(t, out.OK)
	require.Equal(t, []calendar.Assignment{beta}, r.Store.Assignments(mar15))
	require.Equal(t, []calendar.Assignment{acme}, r.Store.Assignments(mar16))
}

func TestDrop_SkipsItemsAlreadyOnTarget(t *testing.T) {
	r := newResolver(t, stateWith(map[calendar.DateKey][]calendar.Assignment{mar16: {acme}}))

	out := r.Drop(fromList(acme, beta), mar16, true)

	require.True(t, out.OK)
	require.True(t, out.Changed)
	require.Equal(t, []calendar.Assignment{acme, beta}, r.Store.Assignments(mar16))
	require.Equal(t, []int{0, 1}, r.Selection.Selected(selection.Day(mar16)))

	out = r.Drop(fromList(acme), mar16, true)
	require.True(t, out.OK)
	require.False(t, out.Changed)
	undo, _ := r.History.Len()
	require.Equal(t, 1, undo)
}

func TestDrop_RedoAfterUndo(t *testing.T) {
	r := newResolver(t, stateWith(map[calendar.DateKey][]calendar.Assignment{mar15: {acme, beta}}))

	r.Drop(fromDay(mar15, []calendar.Assignment{acme, beta}, 0, 1), mar16, true)
	after := r.Store.State()

	_, ok := r.History.Undo(r.Store)
	require.True(t, ok)
	_, ok = r.History.Redo(r.Store)
	require.True(t, ok)
	require.True(t, after.Equal(r.Store.State()))
}

func TestRemoveSelected(t *testing.T) {
	t.Run("nothing on day", func(t *testing.T) {
		r := newResolver(t, calendar.NewState())
		out := r.RemoveSelected(mar15)
		require.False(t, out.OK)
		require.Equal(t, MsgNothingOnDay, out.Message)
	})

	t.Run("nothing selected", func(t *testing.T) {
		r := newResolver(t, stateWith(map[calendar.DateKey][]calendar.Assignment{mar15: {acme}}))
		out := r.RemoveSelected(mar15)
		require.False(t, out.OK)
		require.Equal(t, MsgNothingSelected, out.Message)
	})

	t.Run("single", func(t *testing.T) {
		r := newResolver(t, stateWith(map[calendar.DateKey][]calendar.Assignment{mar15: {acme, beta}}))
		r.Selection.Click(selection.Day(mar15), 1, 2, selection.Mods{})

		out := r.RemoveSelected(mar15)

		require.True(t, out.OK)
		require.Equal(t, "Removed order 200 (Beta) from March 15, 2024.", out.Message)
		require.Equal(t, []calendar.Assignment{acme}, r.Store.Assignments(mar15))
		require.Empty(t, r.Selection.Selected(selection.Day(mar15)))
		require.True(t, r.History.CanUndo())
	})

	t.Run("several", func(t *testing.T) {
		r := newResolver(t, stateWith(map[calendar.DateKey][]calendar.Assignment{mar15: {acme, beta, gamma}}))
		r.Selection.Set(selection.Day(mar15), []int{0, 2})

		out := r.RemoveSelected(mar15)

		require.True(t, out.OK)
		require.Equal(t, "Removed 2 orders from March 15, 2024.", out.Message)
		require.Equal(t, []calendar.Assignment{beta}, r.Store.Assignments(mar15))
	})
}

func TestClearDay(t *testing.T) {
	r := newResolver(t, stateWith(map[calendar.DateKey][]calendar.Assignment{mar15: {acme, beta}}))
	before := r.Store.State()

	out := r.ClearDay(mar15)
	require.True(t, out.OK)
	require.Equal(t, "Cleared 2 orders from March 15, 2024.", out.Message)
	require.Zero(t, r.Store.Count(mar15))

	out = r.ClearDay(mar15)
	require.False(t, out.OK)
	require.Equal(t, MsgNothingOnDay, out.Message)

	_, ok := r.History.Undo(r.Store)
	require.True(t, ok)
	assert.True(t, before.Equal(r.Store.State()))
}

func TestDrop_CrossDayConservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		nA := rapid.IntRange(1, 6).Draw(t, "nA")
		nB := rapid.IntRange(0, 6).Draw(t, "nB")

		var a, b []calendar.Assignment
		for i := range nA {
			a = append(a, calendar.NewAssignment(fmt.Sprint(100+i), "A"))
		}
		for i := range nB {
			b = append(b, calendar.NewAssignment(fmt.Sprint(200+i), "B"))
		}

		st := calendar.NewState()
		st.Assignments[mar15] = a
		if nB > 0 {
			st.Assignments[mar16] = b
		}
		r := New(calendar.NewStore(st), history.New(0), selection.New())
		total := r.Store.State().AssignmentCount()

		var items []calendar.Assignment
		var indices []int
		for i := range nA {
			if rapid.Bool().Draw(t, fmt.Sprintf("pick%d", i)) {
				items = append(items, a[i])
				indices = append(indices, i)
			}
		}
		if len(items) == 0 {
			items, indices = a[:1], []int{0}
		}

		out := r.Drop(fromDay(mar15, items, indices...), mar16, true)
		if !out.OK {
			t.Fatalf("drop failed: %s", out.Message)
		}

		if got := r.Store.State().AssignmentCount(); got != total {
			t.Fatalf("total changed: %d -> %d", total, got)
		}
		for _, item := range items {
			if r.Store.Contains(mar15, item) {
				t.Fatalf("%v still on source", item)
			}
			n := 0
			for _, x := range r.Store.Assignments(mar16) {
				if x == item {
					n++
				}
			}
			if n != 1 {
				t.Fatalf("%v on target %d times", item, n)
			}
		}
	})
}
