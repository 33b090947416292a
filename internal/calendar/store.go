package calendar

import (
	"context"
	"slices"
	"sort"

	"github.com/zjrosen/printcal/internal/log"
	"github.com/zjrosen/printcal/internal/pubsub"
)

// ChangeKind says which map a change touched.
type ChangeKind string

const (
	ChangeNotes       ChangeKind = "notes"
	ChangeAssignments ChangeKind = "assignments"
)

// Change is published for every effective mutation of one day.
type Change struct {
	Kind ChangeKind
	Day  DateKey
}

// Store owns the calendar notes and assignments. It is not safe for
// concurrent use; the UI loop is its only owner. Observers subscribe to
// change events instead of reading on a timer.
type Store struct {
	notes       map[DateKey]string
	assignments map[DateKey][]Assignment
	broker      *pubsub.Broker[Change]
	revision    uint64
}

// NewStore creates a store seeded from initial, normalized.
func NewStore(initial State) *Store {
	st := initial.Normalize()
	return &Store{
		notes:       st.Notes,
		assignments: st.Assignments,
		broker:      pubsub.NewBroker[Change](),
	}
}

// Subscribe returns a channel of change events valid for the life of ctx.
func (s *Store) Subscribe(ctx context.Context) <-chan pubsub.Event[Change] {
	return s.broker.Subscribe(ctx)
}

// Broker exposes the change broker for listeners built on pubsub helpers.
func (s *Store) Broker() *pubsub.Broker[Change] { return s.broker }

// Close shuts the change broker down.
func (s *Store) Close() { s.broker.Close() }

// Revision increases on every effective mutation.
func (s *Store) Revision() uint64 { return s.revision }

// Notes returns the day's notes, or "" when there are none.
func (s *Store) Notes(day DateKey) string { return s.notes[day] }

// NotesEntry returns the day's notes and whether the key exists.
func (s *Store) NotesEntry(day DateKey) (string, bool) {
	text, ok := s.notes[day]
	return text, ok
}

// Assignments returns a copy of the day's list. Never nil.
func (s *Store) Assignments(day DateKey) []Assignment {
	list := s.assignments[day]
	out := make([]Assignment, len(list))
	copy(out, list)
	return out
}

// AssignmentsEntry returns a copy of the day's list and whether the key exists.
func (s *Store) AssignmentsEntry(day DateKey) ([]Assignment, bool) {
	list, ok := s.assignments[day]
	if !ok {
		return nil, false
	}
	return slices.Clone(list), true
}

// Count returns the number of assignments on the day.
func (s *Store) Count(day DateKey) int { return len(s.assignments[day]) }

// Contains reports whether a is assigned to day.
func (s *Store) Contains(day DateKey, a Assignment) bool {
	return indexOf(s.assignments[day], a) >= 0
}

// State returns a deep copy of everything in the store.
func (s *Store) State() State {
	return State{Notes: s.notes, Assignments: s.assignments}.Clone()
}

// Days returns every day with data, in date order.
func (s *Store) Days() []DateKey {
	return State{Notes: s.notes, Assignments: s.assignments}.Days()
}

// SetNotes stores text for day; blank text removes the key. Returns false
// when the effective value is unchanged.
func (s *Store) SetNotes(day DateKey, text string) bool {
	if !day.Valid() {
		return false
	}
	prev, had := s.notes[day]
	if IsBlank(text) {
		if !had {
			return false
		}
		delete(s.notes, day)
	} else {
		if had && prev == text {
			return false
		}
		s.notes[day] = text
	}
	s.changed(ChangeNotes, day, had)
	return true
}

// AddAssignment appends a to day unless it is already there.
func (s *Store) AddAssignment(day DateKey, a Assignment) bool {
	if !day.Valid() {
		return false
	}
	list, had := s.assignments[day]
	if indexOf(list, a) >= 0 {
		return false
	}
	s.assignments[day] = append(list, a)
	s.changed(ChangeAssignments, day, had)
	return true
}

// RemoveAssignments removes the given indices from day in one batch and
// returns the removed values in ascending index order. Out of range and
// repeated indices are ignored. The key is dropped when the list empties.
func (s *Store) RemoveAssignments(day DateKey, indices []int) []Assignment {
	list, ok := s.assignments[day]
	if !ok || len(indices) == 0 {
		return nil
	}
	valid := uniqueInRange(indices, len(list))
	if len(valid) == 0 {
		return nil
	}

	removed := make([]Assignment, len(valid))
	for i, idx := range valid {
		removed[i] = list[idx]
	}

	next := slices.Clone(list)
	for i := len(valid) - 1; i >= 0; i-- {
		next = slices.Delete(next, valid[i], valid[i]+1)
	}
	s.setList(day, next)
	s.changed(ChangeAssignments, day, true)
	return removed
}

// ClearDay removes every assignment from day and returns how many there were.
func (s *Store) ClearDay(day DateKey) int {
	list, ok := s.assignments[day]
	if !ok {
		return 0
	}
	delete(s.assignments, day)
	s.changed(ChangeAssignments, day, true)
	return len(list)
}

// ReplaceAssignments sets day's list to a de-duplicated copy of list.
// Returns false when the list is unchanged.
func (s *Store) ReplaceAssignments(day DateKey, list []Assignment) bool {
	if !day.Valid() {
		return false
	}
	next := dedupe(list)
	prev, had := s.assignments[day]
	if slices.Equal(prev, next) {
		return false
	}
	s.setList(day, next)
	s.changed(ChangeAssignments, day, had)
	return true
}

// RestoreNotes puts day's notes back to a captured value: absent when had
// is false, otherwise prev.
func (s *Store) RestoreNotes(day DateKey, had bool, prev string) {
	cur, curHad := s.notes[day]
	if !had || IsBlank(prev) {
		if !curHad {
			return
		}
		delete(s.notes, day)
	} else {
		if curHad && cur == prev {
			return
		}
		s.notes[day] = prev
	}
	s.changed(ChangeNotes, day, curHad)
}

// RestoreAssignments puts day's list back to a captured value.
func (s *Store) RestoreAssignments(day DateKey, had bool, prev []Assignment) {
	cur, curHad := s.assignments[day]
	var next []Assignment
	if had {
		next = dedupe(prev)
	}
	if curHad == (len(next) > 0) && slices.Equal(cur, next) {
		return
	}
	s.setList(day, next)
	s.changed(ChangeAssignments, day, curHad)
}

func (s *Store) setList(day DateKey, list []Assignment) {
	if len(list) == 0 {
		delete(s.assignments, day)
		return
	}
	s.assignments[day] = list
}

func (s *Store) changed(kind ChangeKind, day DateKey, had bool) {
	s.revision++

	var exists bool
	switch kind {
	case ChangeNotes:
		_, exists = s.notes[day]
	default:
		_, exists = s.assignments[day]
	}

	eventType := pubsub.UpdatedEvent
	switch {
	case !had && exists:
		eventType = pubsub.CreatedEvent
	case had && !exists:
		eventType = pubsub.DeletedEvent
	}

	log.Debug(log.CatStore, "day changed", "kind", kind, "day", day, "event", eventType, "rev", s.revision)
	s.broker.Publish(eventType, Change{Kind: kind, Day: day})
}

func uniqueInRange(indices []int, n int) []int {
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < n {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return slices.Compact(out)
}
