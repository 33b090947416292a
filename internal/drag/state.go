// Package drag implements the pointer gesture state machine that turns a
// press on an order row into either a selection click or a drag onto a
// calendar day. Transitions are pure functions over State; Controller owns
// the one live State.
package drag

import (
	"math"

	"github.com/zjrosen/printcal/internal/calendar"
)

// Phase is the gesture phase.
type Phase int

const (
	Idle Phase = iota
	Pressed
	Dragging
)

func (p Phase) String() string {
	switch p {
	case Pressed:
		return "pressed"
	case Dragging:
		return "dragging"
	default:
		return "idle"
	}
}

// SourceKind says where the dragged rows came from.
type SourceKind int

const (
	SourceList SourceKind = iota
	SourceDay
)

// Payload is what a gesture carries: the selected values in display order
// and the row indices they occupied when the press happened.
type Payload struct {
	Source    SourceKind
	SourceDay calendar.DateKey
	Items     []calendar.Assignment
	Indices   []int
}

// Empty reports whether there is nothing to drag.
func (p Payload) Empty() bool { return len(p.Items) == 0 }

// FromDay returns the source day when the payload came from a day list.
func (p Payload) FromDay() (calendar.DateKey, bool) {
	return p.SourceDay, p.Source == SourceDay
}

// Point is a terminal cell position.
type Point struct {
	X int
	Y int
}

// Distance is the Euclidean distance between two points.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(float64(p.X-o.X), float64(p.Y-o.Y))
}

// Rect is a screen area.
type Rect struct {
	X, Y int
	W, H int
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Hit is what lies under the pointer.
type Hit struct {
	Day   calendar.DateKey
	OnDay bool
	// OnPressedRow is true while the pointer is still over the row the
	// gesture started on.
	OnPressedRow bool
}

// Indicator is the floating label shown while dragging.
type Indicator struct {
	Label string
	X, Y  int
	W, H  int
}

// State is the whole transient gesture. The zero value is Idle.
type State struct {
	Phase     Phase
	Press     Point
	Pointer   Point
	Payload   Payload
	PressRow  int
	Pending   bool // deferred ctrl toggle-off of PressRow
	Hover     calendar.DateKey
	Hovering  bool
	Indicator Indicator
}

// Config holds the gesture tuning.
type Config struct {
	// Threshold is the distance in cells the pointer must exceed before a
	// press becomes a drag.
	Threshold float64
	// Bounds is the drawable surface the indicator is kept inside.
	Bounds Rect
}

// DefaultThreshold is one cell.
const DefaultThreshold = 1.0

// ReleaseKind is what a release turned out to be.
type ReleaseKind int

const (
	ReleaseNone ReleaseKind = iota
	ReleaseClick
	ReleaseDrop
)

// Release describes the end of a gesture.
type Release struct {
	Kind    ReleaseKind
	Payload Payload
	// Target is the day under the pointer for ReleaseDrop; HasTarget is
	// false when the drop landed outside any day.
	Target    calendar.DateKey
	HasTarget bool
	// ApplyToggle is set on a click release that should complete a deferred
	// ctrl toggle-off of PressRow.
	ApplyToggle bool
	PressRow    int
}

// Press starts a gesture. The payload is captured now and carried unchanged
// until release.
func Press(at Point, payload Payload, pressRow int, pendingToggle bool) State {
	return State{
		Phase:    Pressed,
		Press:    at,
		Pointer:  at,
		Payload:  payload,
		PressRow: pressRow,
		Pending:  pendingToggle,
	}
}

// Move advances the gesture for a pointer motion.
func Move(s State, at Point, hit Hit, cfg Config) State {
	switch s.Phase {
	case Idle:
		return s
	case Pressed:
		s.Pointer = at
		if s.Pending && !hit.OnPressedRow {
			s.Pending = false
		}
		if s.Payload.Empty() || at.Distance(s.Press) <= cfg.Threshold {
			return s
		}
		s.Phase = Dragging
		s.Pending = false
		s.Indicator = Indicator{Label: calendar.DragLabel(s.Payload.Items)}
	}

	s.Pointer = at
	s.Hover, s.Hovering = hit.Day, hit.OnDay
	s.Indicator = placeIndicator(s.Indicator.Label, at, cfg.Bounds)
	return s
}

// Finish ends the gesture on release and returns the idle state plus what
// the release means.
func Finish(s State, hit Hit) (State, Release) {
	switch s.Phase {
	case Pressed:
		return State{}, Release{
			Kind:        ReleaseClick,
			Payload:     s.Payload,
			ApplyToggle: s.Pending && hit.OnPressedRow,
			PressRow:    s.PressRow,
		}
	case Dragging:
		return State{}, Release{
			Kind:      ReleaseDrop,
			Payload:   s.Payload,
			Target:    hit.Day,
			HasTarget: hit.OnDay,
			PressRow:  s.PressRow,
		}
	default:
		return State{}, Release{Kind: ReleaseNone}
	}
}

// Cancel abandons any gesture without a drop.
func Cancel(State) State { return State{} }
