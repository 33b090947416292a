// Package history records reversible calendar edits as pre-mutation
// snapshots and replays them for undo and redo.
package history

import (
	"slices"

	"github.com/google/uuid"

	"github.com/zjrosen/printcal/internal/calendar"
)

// Kind tags which half of the calendar an action covers.
type Kind string

const (
	KindNotes       Kind = "notes"
	KindAssignments Kind = "assignments"
)

// NotesSnapshot is the captured notes value of one day.
type NotesSnapshot struct {
	Day      calendar.DateKey
	HadKey   bool
	Previous string
}

// DaySnapshot is the captured assignment list of one day.
type DaySnapshot struct {
	HadKey   bool
	Previous []calendar.Assignment
}

// Action is one undoable step. For KindNotes only Notes is set; for
// KindAssignments only Days is set.
type Action struct {
	ID    uuid.UUID
	Kind  Kind
	Notes NotesSnapshot
	Days  map[calendar.DateKey]DaySnapshot
}

// Keys returns the valid days the action covers in date order.
func (a Action) Keys() []calendar.DateKey {
	switch a.Kind {
	case KindNotes:
		if !a.Notes.Day.Valid() {
			return nil
		}
		return []calendar.DateKey{a.Notes.Day}
	case KindAssignments:
	default:
		return nil
	}
	keys := make([]calendar.DateKey, 0, len(a.Days))
	for k := range a.Days {
		if k.Valid() {
			keys = append(keys, k)
		}
	}
	calendar.SortKeys(keys)
	return keys
}

// Reader is the read side of the store used to take snapshots.
type Reader interface {
	NotesEntry(day calendar.DateKey) (string, bool)
	AssignmentsEntry(day calendar.DateKey) ([]calendar.Assignment, bool)
}

// Writer is the write side of the store used to put snapshots back.
type Writer interface {
	RestoreNotes(day calendar.DateKey, had bool, prev string)
	RestoreAssignments(day calendar.DateKey, had bool, prev []calendar.Assignment)
}

// Store is what undo and redo operate on.
type Store interface {
	Reader
	Writer
}

// Capture snapshots the current value of days for the given kind. It is the
// only way actions are built, so push, undo and redo all record the same
// shape. Invalid keys are skipped; ok is false when none remain. A notes
// action covers only the first valid day.
func Capture(r Reader, kind Kind, days ...calendar.DateKey) (Action, bool) {
	valid := make([]calendar.DateKey, 0, len(days))
	for _, d := range days {
		if d.Valid() && !slices.Contains(valid, d) {
			valid = append(valid, d)
		}
	}
	if len(valid) == 0 {
		return Action{}, false
	}

	action := Action{ID: uuid.New(), Kind: kind}
	switch kind {
	case KindNotes:
		text, had := r.NotesEntry(valid[0])
		action.Notes = NotesSnapshot{Day: valid[0], HadKey: had, Previous: text}
	case KindAssignments:
		action.Days = make(map[calendar.DateKey]DaySnapshot, len(valid))
		for _, d := range valid {
			list, had := r.AssignmentsEntry(d)
			action.Days[d] = DaySnapshot{HadKey: had, Previous: list}
		}
	default:
		return Action{}, false
	}
	return action, true
}

// apply restores every snapshot in the action.
func apply(w Writer, a Action) {
	switch a.Kind {
	case KindNotes:
		w.RestoreNotes(a.Notes.Day, a.Notes.HadKey, a.Notes.Previous)
	case KindAssignments:
		for _, d := range a.Keys() {
			snap := a.Days[d]
			w.RestoreAssignments(d, snap.HadKey, snap.Previous)
		}
	}
}
