package persistence

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/printcal/internal/calendar"
	"github.com/zjrosen/printcal/internal/log"
)

// DefaultDebounce is how long the saver waits after the last change.
const DefaultDebounce = time.Second

// SaveTickMsg fires when a scheduled save comes due. Only the tick from the
// latest Schedule call writes; older ticks are stale.
type SaveTickMsg struct {
	Gen uint64
}

// Saver coalesces bursts of changes into one write. It is driven from the
// Bubble Tea update loop and is not safe for concurrent use.
type Saver struct {
	gateway  *Gateway
	snapshot func() calendar.State
	delay    time.Duration

	gen     uint64
	pending bool
	writes  int
	lastErr error

	revision func() uint64
	savedRev uint64
}

// NewSaver creates a saver writing snapshot() through g delay after the
// last Schedule call.
func NewSaver(g *Gateway, snapshot func() calendar.State, delay time.Duration) *Saver {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Saver{gateway: g, snapshot: snapshot, delay: delay}
}

// TrackRevision lets Flush notice changes whose notification has not
// reached Schedule yet. fn is read now as the already saved revision.
func (s *Saver) TrackRevision(fn func() uint64) {
	s.revision = fn
	s.savedRev = fn()
}

// Schedule marks the state dirty and restarts the debounce window.
func (s *Saver) Schedule() tea.Cmd {
	s.gen++
	s.pending = true
	gen := s.gen
	return tea.Tick(s.delay, func(time.Time) tea.Msg {
		return SaveTickMsg{Gen: gen}
	})
}

// Handle writes if msg is the latest tick. It reports whether a write was
// attempted.
func (s *Saver) Handle(msg SaveTickMsg) bool {
	if msg.Gen != s.gen || !s.pending {
		return false
	}
	_ = s.write()
	return true
}

// Flush writes immediately if a save is pending or the tracked revision
// moved since the last write.
func (s *Saver) Flush() error {
	if !s.pending && (s.revision == nil || s.revision() == s.savedRev) {
		return nil
	}
	return s.write()
}

// Pending reports whether a change has not been written yet.
func (s *Saver) Pending() bool { return s.pending }

// Writes returns how many write attempts were made.
func (s *Saver) Writes() int { return s.writes }

// Err returns the error of the last write attempt.
func (s *Saver) Err() error { return s.lastErr }

// A failed write is logged and left for the next scheduled save.
func (s *Saver) write() error {
	s.pending = false
	s.writes++
	if s.revision != nil {
		s.savedRev = s.revision()
	}
	s.lastErr = s.gateway.Save(s.snapshot())
	if s.lastErr != nil {
		log.ErrorErr(log.CatPersist, "saving state failed", s.lastErr, "path", s.gateway.Path)
		return s.lastErr
	}
	log.Debug(log.CatPersist, "state saved", "path", s.gateway.Path, "writes", s.writes)
	return nil
}
