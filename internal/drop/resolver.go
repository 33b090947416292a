// Package drop turns a finished drag gesture into a calendar mutation.
package drop

import (
	"slices"

	"github.com/zjrosen/printcal/internal/calendar"
	"github.com/zjrosen/printcal/internal/drag"
	"github.com/zjrosen/printcal/internal/history"
	"github.com/zjrosen/printcal/internal/log"
	"github.com/zjrosen/printcal/internal/selection"
)

// User-facing failure messages.
const (
	MsgInvalidTarget   = "Please drop orders onto a valid calendar day."
	MsgUnknownPayload  = "Unable to determine which order was dragged."
	MsgNothingOnDay    = "No orders scheduled for this day."
	MsgNothingSelected = "Please select at least one order to remove."
	MsgBadSelection    = "Unable to determine which orders to remove."
)

// Outcome is the result of a drop or removal. OK=false means nothing was
// mutated and Message explains why.
type Outcome struct {
	OK       bool
	Message  string
	Changed  bool
	Recorded bool
	Days     []calendar.DateKey
}

func failure(msg string) Outcome { return Outcome{Message: msg} }

// Resolver applies drops, removals and clears to the store, records them in
// history and moves the selection along with the data.
type Resolver struct {
	Store     *calendar.Store
	History   *history.Manager
	Selection *selection.Model
}

// New creates a Resolver.
func New(store *calendar.Store, hist *history.Manager, sel *selection.Model) *Resolver {
	return &Resolver{Store: store, History: hist, Selection: sel}
}

// plan is the fully computed result of a drop, built before anything is
// written.
type plan struct {
	source     calendar.DateKey
	fromDay    bool
	sameDay    bool
	sourceNext []calendar.Assignment
	targetNext []calendar.Assignment
	removed    []int
	placed     []int
}

// Drop places payload on target. hasTarget is false when the release
// happened outside every day cell.
func (r *Resolver) Drop(p drag.Payload, target calendar.DateKey, hasTarget bool) Outcome {
	if !hasTarget || !target.Valid() {
		log.Debug(log.CatDrop, "drop rejected", "reason", "no target")
		return failure(MsgInvalidTarget)
	}
	if p.Empty() {
		log.Debug(log.CatDrop, "drop rejected", "reason", "empty payload")
		return failure(MsgUnknownPayload)
	}

	pl := r.plan(p, target)

	var from *calendar.DateKey
	if pl.fromDay {
		from = &pl.source
	}
	msg := calendar.MoveMessage(p.Items, from, target)

	days := []calendar.DateKey{target}
	if pl.fromDay && !pl.sameDay {
		days = []calendar.DateKey{pl.source, target}
	}

	if pl.sameDay && slices.Equal(pl.targetNext, r.Store.Assignments(target)) {
		r.transferSelection(pl, target)
		log.Debug(log.CatDrop, "same-day drop unchanged", "day", target, "items", len(p.Items))
		return Outcome{OK: true, Message: msg, Days: days}
	}

	changed := r.History.Record(r.Store, history.KindAssignments, days, func() bool {
		moved := false
		if pl.fromDay && !pl.sameDay {
			moved = r.Store.ReplaceAssignments(pl.source, pl.sourceNext)
		}
		placed := r.Store.ReplaceAssignments(target, pl.targetNext)
		return moved || placed
	})

	r.transferSelection(pl, target)
	log.Info(log.CatDrop, "drop applied",
		"target", target, "items", len(p.Items), "removed", len(pl.removed), "changed", changed)
	return Outcome{OK: true, Message: msg, Changed: changed, Recorded: changed, Days: days}
}

// plan computes the new source and target lists on copies. Each payload
// item is taken out of the source at its captured index when the value
// there still matches, otherwise at its first unused equal occurrence.
func (r *Resolver) plan(p drag.Payload, target calendar.DateKey) plan {
	pl := plan{}
	pl.source, pl.fromDay = p.FromDay()
	pl.sameDay = pl.fromDay && pl.source == target

	targetList := r.Store.Assignments(target)

	if pl.fromDay {
		sourceList := r.Store.Assignments(pl.source)
		pl.removed = locate(sourceList, p.Items, p.Indices)
		next := withoutIndices(sourceList, pl.removed)
		if pl.sameDay {
			targetList = next
		} else {
			pl.sourceNext = next
		}
	}

	pl.targetNext, pl.placed = appendUnique(targetList, p.Items)
	return pl
}

// transferSelection moves the selection to where the dropped items now sit.
func (r *Resolver) transferSelection(pl plan, target calendar.DateKey) {
	if r.Selection == nil {
		return
	}
	targetC := selection.Day(target)
	switch {
	case pl.sameDay:
		r.Selection.Remap(targetC, pl.removed)
		keep := r.Selection.Selected(targetC)
		r.Selection.Set(targetC, append(keep, pl.placed...))
	case pl.fromDay:
		r.Selection.Clear(selection.Day(pl.source))
		r.Selection.Set(targetC, pl.placed)
	default:
		r.Selection.Clear(selection.List())
		r.Selection.Set(targetC, pl.placed)
	}
}

// RemoveSelected removes the selected rows of day.
func (r *Resolver) RemoveSelected(day calendar.DateKey) Outcome {
	c := selection.Day(day)
	list := r.Store.Assignments(day)
	if len(list) == 0 {
		r.Selection.Clear(c)
		return failure(MsgNothingOnDay)
	}
	indices := r.Selection.Selected(c)
	if len(indices) == 0 {
		return failure(MsgNothingSelected)
	}
	indices = slices.DeleteFunc(indices, func(i int) bool { return i >= len(list) })
	if len(indices) == 0 {
		return failure(MsgBadSelection)
	}

	var removed []calendar.Assignment
	r.History.Record(r.Store, history.KindAssignments, []calendar.DateKey{day}, func() bool {
		removed = r.Store.RemoveAssignments(day, indices)
		return len(removed) > 0
	})
	r.Selection.Clear(c)

	log.Info(log.CatDrop, "removed selected", "day", day, "count", len(removed))
	return Outcome{
		OK:       true,
		Message:  calendar.RemovalMessage(day, removed),
		Changed:  len(removed) > 0,
		Recorded: len(removed) > 0,
		Days:     []calendar.DateKey{day},
	}
}

// ClearDay removes every assignment from day.
func (r *Resolver) ClearDay(day calendar.DateKey) Outcome {
	if r.Store.Count(day) == 0 {
		return failure(MsgNothingOnDay)
	}
	var count int
	r.History.Record(r.Store, history.KindAssignments, []calendar.DateKey{day}, func() bool {
		count = r.Store.ClearDay(day)
		return count > 0
	})
	r.Selection.Clear(selection.Day(day))

	log.Info(log.CatDrop, "cleared day", "day", day, "count", count)
	return Outcome{
		OK:       true,
		Message:  calendar.ClearMessage(day, count),
		Changed:  true,
		Recorded: true,
		Days:     []calendar.DateKey{day},
	}
}

// locate finds the source index of each item. Indices are never reused.
func locate(list, items []calendar.Assignment, hints []int) []int {
	used := make(map[int]bool, len(items))
	out := make([]int, 0, len(items))
	for pos, item := range items {
		idx := -1
		if pos < len(hints) {
			h := hints[pos]
			if h >= 0 && h < len(list) && !used[h] && list[h] == item {
				idx = h
			}
		}
		if idx < 0 {
			for i, a := range list {
				if !used[i] && a == item {
					idx = i
					break
				}
			}
		}
		if idx >= 0 {
			used[idx] = true
			out = append(out, idx)
		}
	}
	slices.Sort(out)
	return out
}

func withoutIndices(list []calendar.Assignment, sortedIdx []int) []calendar.Assignment {
	next := slices.Clone(list)
	for i := len(sortedIdx) - 1; i >= 0; i-- {
		next = slices.Delete(next, sortedIdx[i], sortedIdx[i]+1)
	}
	return next
}

// appendUnique adds items not already in list and returns the index each
// item ends up at.
func appendUnique(list, items []calendar.Assignment) ([]calendar.Assignment, []int) {
	next := slices.Clone(list)
	placed := make([]int, 0, len(items))
	for _, item := range items {
		idx := slices.Index(next, item)
		if idx < 0 {
			next = append(next, item)
			idx = len(next) - 1
		}
		placed = append(placed, idx)
	}
	return next, placed
}
