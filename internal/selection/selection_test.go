package selection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/printcal/internal/calendar"
)

var (
	mar15 = Day(calendar.DateKey{Year: 2024, Month: 3, Day: 15})
	mar16 = Day(calendar.DateKey{Year: 2024, Month: 3, Day: 16})
	shift = Mods{Shift: true}
	ctrl  = Mods{Ctrl: true}
)

func TestClick_PlainCollapsesToOne(t *testing.T) {
	m := New()

	res := m.Click(List(), 2, 5, Mods{})
	require.Equal(t, []int{2}, res.Selected)
	require.Equal(t, 2, m.Anchor(List()))
	require.Equal(t, 2, m.Focus(List()))

	res = m.Click(List(), 4, 5, Mods{})
	require.Equal(t, []int{4}, res.Selected)
}

func TestClick_PlainOnMultiSelectionPreservesIt(t *testing.T) {
	m := New()
	m.Click(List(), 1, 5, Mods{})
	m.Click(List(), 3, 5, shift)

	res := m.Click(List(), 2, 5, Mods{})
	require.Equal(t, []int{1, 2, 3}, res.Selected)
	require.Equal(t, 2, m.Anchor(List()), "anchor moves to the clicked row")
}

func TestClick_ShiftExtendsFromAnchor(t *testing.T) {
	m := New()
	m.Click(List(), 3, 10, Mods{})

	res := m.Click(List(), 6, 10, shift)
	require.Equal(t, []int{3, 4, 5, 6}, res.Selected)

	res = m.Click(List(), 1, 10, shift)
	require.Equal(t, []int{1, 2, 3}, res.Selected)
	require.Equal(t, 3, m.Anchor(List()), "shift never moves the anchor")
}

func TestClick_ShiftWithoutAnchorSelectsClicked(t *testing.T) {
	m := New()

	res := m.Click(mar15, 2, 4, shift)
	require.Equal(t, []int{2}, res.Selected)
	require.Equal(t, 2, m.Anchor(mar15))
}

func TestClick_CtrlAddsWithoutDisturbing(t *testing.T) {
	m := New()
	m.Click(List(), 0, 5, Mods{})

	res := m.Click(List(), 3, 5, ctrl)
	require.Equal(t, []int{0, 3}, res.Selected)
	require.False(t, res.PendingToggle)
}

func TestClick_CtrlOnSelectedDefersToggle(t *testing.T) {
	m := New()
	m.Click(List(), 0, 5, Mods{})
	m.Click(List(), 3, 5, ctrl)

	res := m.Click(List(), 3, 5, ctrl)
	require.True(t, res.PendingToggle)
	require.Equal(t, []int{0, 3}, res.Selected, "row stays selected until release")

	m.CompleteToggle(List(), 3)
	require.Equal(t, []int{0}, m.Selected(List()))
}

func TestCompleteToggle_LastRowClearsAnchor(t *testing.T) {
	m := New()
	m.Click(mar15, 1, 3, Mods{})
	m.Click(mar15, 1, 3, ctrl)

	m.CompleteToggle(mar15, 1)
	require.Empty(t, m.Selected(mar15))
	require.Equal(t, -1, m.Anchor(mar15))
}

func TestClick_OutsideRows(t *testing.T) {
	m := New()
	m.Click(List(), 1, 3, Mods{})

	m.Click(List(), 7, 3, ctrl)
	require.Equal(t, []int{1}, m.Selected(List()), "modifier click on empty space keeps selection")

	m.Click(List(), -1, 3, Mods{})
	require.Empty(t, m.Selected(List()))
}

func TestSelection_MutuallyExclusive(t *testing.T) {
	m := New()
	m.Click(List(), 0, 3, Mods{})
	m.Click(mar15, 0, 2, Mods{})

	require.Empty(t, m.Selected(List()))
	require.Equal(t, []int{0}, m.Selected(mar15))

	m.Click(mar16, 1, 2, Mods{})
	require.Empty(t, m.Selected(mar15))

	c, ok := m.Active()
	require.True(t, ok)
	require.Equal(t, mar16, c)
}

func TestNavigate(t *testing.T) {
	m := New()

	require.Equal(t, 0, m.Navigate(mar15, 1, 4, Mods{}), "first move lands on the first row")
	require.Equal(t, 1, m.Navigate(mar15, 1, 4, Mods{}))
	require.Equal(t, []int{1}, m.Selected(mar15))

	require.Equal(t, 2, m.Navigate(mar15, 1, 4, shift))
	require.Equal(t, 3, m.Navigate(mar15, 1, 4, shift))
	require.Equal(t, []int{1, 2, 3}, m.Selected(mar15))
	require.Equal(t, 1, m.Anchor(mar15))

	require.Equal(t, 3, m.Navigate(mar15, 1, 4, Mods{}), "clamped at the end")
	require.Equal(t, []int{3}, m.Selected(mar15))
}

func TestNavigate_CtrlMovesFocusOnly(t *testing.T) {
	m := New()
	m.Click(List(), 2, 5, Mods{})

	require.Equal(t, 1, m.Navigate(List(), -1, 5, ctrl))
	require.Equal(t, []int{2}, m.Selected(List()))
	require.Equal(t, 1, m.Focus(List()))

	require.Equal(t, 0, m.Navigate(List(), -1, 5, shift))
	require.Equal(t, []int{0, 1, 2}, m.Selected(List()))
}

func TestNavigate_UpWithoutFocusLandsOnLast(t *testing.T) {
	m := New()
	require.Equal(t, 4, m.Navigate(List(), -1, 5, Mods{}))
	require.Equal(t, -1, m.Navigate(List(), -1, 0, Mods{}))
}

func TestNavigate_ClearsOtherContainers(t *testing.T) {
	m := New()
	m.Click(List(), 0, 3, Mods{})

	m.Navigate(mar15, 1, 2, Mods{})
	require.Empty(t, m.Selected(List()))

	m.Click(List(), 0, 3, Mods{})
	m.Navigate(mar15, 1, 2, ctrl)
	require.Equal(t, []int{0}, m.Selected(List()), "focus-only move selects nothing")
}

func TestSetAndRemap(t *testing.T) {
	m := New()
	m.Click(List(), 0, 3, Mods{})

	m.Set(mar15, []int{4, 1, 1, 6})
	require.Equal(t, []int{1, 4, 6}, m.Selected(mar15))
	require.Empty(t, m.Selected(List()))

	m.Remap(mar15, []int{0, 4})
	require.Equal(t, []int{0, 4}, m.Selected(mar15))

	m.Set(mar15, nil)
	_, ok := m.Active()
	require.False(t, ok)
}
