package drag

import (
	"github.com/zjrosen/printcal/internal/log"
)

// Controller owns the live gesture. All methods run on the UI loop.
type Controller struct {
	state State
	cfg   Config
}

// NewController creates an idle controller.
func NewController(cfg Config) *Controller {
	if cfg.Threshold < 0 {
		cfg.Threshold = DefaultThreshold
	}
	return &Controller{cfg: cfg}
}

// SetBounds updates the surface the indicator is clamped to.
func (c *Controller) SetBounds(r Rect) { c.cfg.Bounds = r }

// SetThreshold updates the drag threshold.
func (c *Controller) SetThreshold(t float64) {
	if t >= 0 {
		c.cfg.Threshold = t
	}
}

// State returns a copy of the live gesture.
func (c *Controller) State() State { return c.state }

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.state.Phase }

// Dragging reports whether a drag is in flight.
func (c *Controller) Dragging() bool { return c.state.Phase == Dragging }

// Hover returns the highlighted day while dragging.
func (c *Controller) Hover() (Hit, bool) {
	if c.state.Phase != Dragging || !c.state.Hovering {
		return Hit{}, false
	}
	return Hit{Day: c.state.Hover, OnDay: true}, true
}

// Press begins a new gesture, cancelling any gesture left over.
func (c *Controller) Press(at Point, payload Payload, pressRow int, pendingToggle bool) {
	if c.state.Phase != Idle {
		log.Warn(log.CatDrag, "press while gesture active, cancelling", "phase", c.state.Phase)
	}
	c.state = Press(at, payload, pressRow, pendingToggle)
	log.Debug(log.CatDrag, "pressed", "x", at.X, "y", at.Y, "items", len(payload.Items), "pending", pendingToggle)
}

// Move feeds a pointer motion. It returns true when the gesture became a
// drag on this motion.
func (c *Controller) Move(at Point, hit Hit) bool {
	before := c.state.Phase
	c.state = Move(c.state, at, hit, c.cfg)
	started := before == Pressed && c.state.Phase == Dragging
	if started {
		log.Debug(log.CatDrag, "drag started", "label", c.state.Indicator.Label)
	}
	return started
}

// Release ends the gesture.
func (c *Controller) Release(hit Hit) Release {
	var r Release
	c.state, r = Finish(c.state, hit)
	log.Debug(log.CatDrag, "released", "kind", r.Kind, "target", r.Target, "has_target", r.HasTarget)
	return r
}

// Cancel drops the gesture without a drop, e.g. when its source rows were
// re-rendered away.
func (c *Controller) Cancel() {
	if c.state.Phase != Idle {
		log.Debug(log.CatDrag, "cancelled", "phase", c.state.Phase)
	}
	c.state = Cancel(c.state)
}
