package calendar

import (
	"maps"
	"slices"
	"strings"
)

// State is a plain copy of the calendar data. Both maps are minimal: a day
// with blank notes or no assignments has no key at all.
type State struct {
	Notes       map[DateKey]string
	Assignments map[DateKey][]Assignment
}

// NewState returns an empty state with allocated maps.
func NewState() State {
	return State{
		Notes:       make(map[DateKey]string),
		Assignments: make(map[DateKey][]Assignment),
	}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := NewState()
	maps.Copy(out.Notes, s.Notes)
	for k, list := range s.Assignments {
		out.Assignments[k] = slices.Clone(list)
	}
	return out
}

// Equal reports whether both states hold the same notes and the same
// assignment lists in the same order.
func (s State) Equal(o State) bool {
	if !maps.Equal(s.Notes, o.Notes) || len(s.Assignments) != len(o.Assignments) {
		return false
	}
	for k, list := range s.Assignments {
		other, ok := o.Assignments[k]
		if !ok || !slices.Equal(list, other) {
			return false
		}
	}
	return true
}

// Normalize drops invalid keys, blank notes, duplicate assignments and
// empty lists, returning a state that satisfies the minimal-map rule.
func (s State) Normalize() State {
	out := NewState()
	for k, text := range s.Notes {
		if k.Valid() && !IsBlank(text) {
			out.Notes[k] = text
		}
	}
	for k, list := range s.Assignments {
		if !k.Valid() {
			continue
		}
		if deduped := dedupe(list); len(deduped) > 0 {
			out.Assignments[k] = deduped
		}
	}
	return out
}

// Days returns every day holding notes or assignments, in date order.
func (s State) Days() []DateKey {
	seen := make(map[DateKey]struct{}, len(s.Notes)+len(s.Assignments))
	for k := range s.Notes {
		seen[k] = struct{}{}
	}
	for k := range s.Assignments {
		seen[k] = struct{}{}
	}
	days := slices.Collect(maps.Keys(seen))
	SortKeys(days)
	return days
}

// AssignmentCount returns the total number of assignments across all days.
func (s State) AssignmentCount() int {
	n := 0
	for _, list := range s.Assignments {
		n += len(list)
	}
	return n
}

// IsBlank reports whether notes text counts as empty.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

func dedupe(list []Assignment) []Assignment {
	out := make([]Assignment, 0, len(list))
	for _, a := range list {
		if indexOf(out, a) < 0 {
			out = append(out, a)
		}
	}
	return out
}
