package drag

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/printcal/internal/calendar"
)

var (
	mar15   = calendar.DateKey{Year: 2024, Month: 3, Day: 15}
	mar16   = calendar.DateKey{Year: 2024, Month: 3, Day: 16}
	acme    = calendar.NewAssignment("100", "Acme")
	screen  = Rect{W: 80, H: 24}
	cfg     = Config{Threshold: 1, Bounds: screen}
	onRow   = Hit{OnPressedRow: true}
	payload = Payload{Source: SourceDay, SourceDay: mar15, Items: []calendar.Assignment{acme}, Indices: []int{0}}
)

func TestPress_StartsPressed(t *testing.T) {
	s := Press(Point{10, 5}, payload, 0, false)

	require.Equal(t, Pressed, s.Phase)
	require.Equal(t, Point{10, 5}, s.Press)
	require.Equal(t, payload, s.Payload)
}

func TestMove_BelowThresholdStaysPressed(t *testing.T) {
	s := Press(Point{10, 5}, payload, 0, false)

	s = Move(s, Point{11, 5}, onRow, cfg)
	require.Equal(t, Pressed, s.Phase, "distance 1 does not exceed threshold 1")

	s = Move(s, Point{11, 6}, onRow, cfg)
	require.Equal(t, Dragging, s.Phase, "diagonal distance 1.41 exceeds it")
	require.Equal(t, "100 - Acme", s.Indicator.Label)
}

func TestMove_EmptyPayloadNeverDrags(t *testing.T) {
	s := Press(Point{0, 0}, Payload{}, -1, false)
	s = Move(s, Point{30, 10}, Hit{}, cfg)
	require.Equal(t, Pressed, s.Phase)

	s, r := Finish(s, Hit{})
	require.Equal(t, Idle, s.Phase)
	require.Equal(t, ReleaseClick, r.Kind)
}

func TestMove_IdleIgnored(t *testing.T) {
	s := Move(State{}, Point{5, 5}, Hit{Day: mar15, OnDay: true}, cfg)
	require.Equal(t, State{}, s)
}

func TestMove_SingleHover(t *testing.T) {
	s := Press(Point{0, 0}, payload, 0, false)
	s = Move(s, Point{5, 5}, Hit{Day: mar15, OnDay: true}, cfg)
	require.True(t, s.Hovering)
	require.Equal(t, mar15, s.Hover)

	s = Move(s, Point{20, 5}, Hit{Day: mar16, OnDay: true}, cfg)
	require.Equal(t, mar16, s.Hover)

	s = Move(s, Point{70, 1}, Hit{}, cfg)
	require.False(t, s.Hovering)
}

func TestDeferredToggle(t *testing.T) {
	t.Run("applied on click release over the pressed row", func(t *testing.T) {
		s := Press(Point{3, 3}, payload, 0, true)
		s = Move(s, Point{3, 3}, onRow, cfg)
		_, r := Finish(s, onRow)
		require.Equal(t, ReleaseClick, r.Kind)
		require.True(t, r.ApplyToggle)
	})

	t.Run("dropped once the gesture becomes a drag", func(t *testing.T) {
		s := Press(Point{3, 3}, payload, 0, true)
		s = Move(s, Point{9, 3}, onRow, cfg)
		require.Equal(t, Dragging, s.Phase)
		require.False(t, s.Pending)
		_, r := Finish(s, onRow)
		require.Equal(t, ReleaseDrop, r.Kind)
		require.False(t, r.ApplyToggle)
	})

	t.Run("dropped when pointer leaves the row", func(t *testing.T) {
		s := Press(Point{3, 3}, payload, 0, true)
		s = Move(s, Point{3, 4}, Hit{}, cfg)
		s = Move(s, Point{3, 3}, onRow, cfg)
		_, r := Finish(s, onRow)
		require.False(t, r.ApplyToggle)
	})

	t.Run("dropped when released elsewhere", func(t *testing.T) {
		s := Press(Point{3, 3}, payload, 0, true)
		_, r := Finish(s, Hit{})
		require.False(t, r.ApplyToggle)
	})
}

func TestFinish_DropTarget(t *testing.T) {
	s := Press(Point{0, 0}, payload, 0, false)
	s = Move(s, Point{10, 10}, Hit{Day: mar16, OnDay: true}, cfg)

	s, r := Finish(s, Hit{Day: mar16, OnDay: true})
	require.Equal(t, State{}, s)
	require.Equal(t, ReleaseDrop, r.Kind)
	require.True(t, r.HasTarget)
	require.Equal(t, mar16, r.Target)
	require.Equal(t, payload, r.Payload)

	s = Press(Point{0, 0}, payload, 0, false)
	s = Move(s, Point{10, 10}, Hit{}, cfg)
	_, r = Finish(s, Hit{})
	require.Equal(t, ReleaseDrop, r.Kind)
	require.False(t, r.HasTarget)
}

func TestFinish_IdleIsNone(t *testing.T) {
	s, r := Finish(State{}, Hit{})
	require.Equal(t, ReleaseNone, r.Kind)
	require.Equal(t, Idle, s.Phase)
}

func TestCancel_ResetsEverything(t *testing.T) {
	s := Press(Point{0, 0}, payload, 0, true)
	s = Move(s, Point{10, 10}, Hit{Day: mar15, OnDay: true}, cfg)

	require.Equal(t, State{}, Cancel(s))
}

func TestIndicator_ClampedToBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bounds := Rect{
			X: rapid.IntRange(0, 10).Draw(t, "bx"),
			Y: rapid.IntRange(0, 10).Draw(t, "by"),
			W: rapid.IntRange(20, 200).Draw(t, "bw"),
			H: rapid.IntRange(5, 60).Draw(t, "bh"),
		}
		n := rapid.IntRange(1, 12).Draw(t, "items")
		items := make([]calendar.Assignment, n)
		for i := range items {
			items[i] = calendar.NewAssignment(rapid.StringMatching(`[0-9]{1,6}`).Draw(t, "num"), "Company")
		}
		at := Point{
			X: rapid.IntRange(bounds.X, bounds.X+bounds.W-1).Draw(t, "x"),
			Y: rapid.IntRange(bounds.Y, bounds.Y+bounds.H-1).Draw(t, "y"),
		}

		s := Press(Point{X: -50, Y: -50}, Payload{Items: items}, 0, false)
		s = Move(s, at, Hit{}, Config{Threshold: 1, Bounds: bounds})

		ind := s.Indicator
		require.Equal(t, Dragging, s.Phase)
		require.GreaterOrEqual(t, ind.X, bounds.X)
		require.GreaterOrEqual(t, ind.Y, bounds.Y)
		require.LessOrEqual(t, ind.X+ind.W, bounds.X+bounds.W)
		require.LessOrEqual(t, ind.Y+ind.H, bounds.Y+bounds.H)
	})
}

func TestIndicator_OffsetFromPointer(t *testing.T) {
	ind := placeIndicator("100", Point{10, 5}, screen)
	require.Equal(t, Indicator{Label: "100", X: 12, Y: 6, W: 7, H: 3}, ind)
}

func TestController_Lifecycle(t *testing.T) {
	c := NewController(cfg)
	require.Equal(t, Idle, c.Phase())

	c.Press(Point{0, 0}, payload, 0, false)
	require.False(t, c.Move(Point{1, 0}, onRow))
	require.True(t, c.Move(Point{5, 0}, Hit{Day: mar16, OnDay: true}))
	require.False(t, c.Move(Point{6, 0}, Hit{Day: mar16, OnDay: true}), "only the first crossing reports a start")

	hover, ok := c.Hover()
	require.True(t, ok)
	require.Equal(t, mar16, hover.Day)

	r := c.Release(Hit{Day: mar16, OnDay: true})
	require.Equal(t, ReleaseDrop, r.Kind)
	require.Equal(t, Idle, c.Phase())

	c.Press(Point{0, 0}, payload, 0, false)
	c.Move(Point{9, 9}, Hit{})
	c.Cancel()
	require.False(t, c.Dragging())
	require.Equal(t, ReleaseNone, c.Release(Hit{}).Kind)
}
