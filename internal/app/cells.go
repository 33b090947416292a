package app

import (
	"strconv"
	"time"

	"github.com/zjrosen/printcal/internal/calendar"
)

// Zone ids are derived from arena positions so a re-render never leaves a
// stale id pointing at the wrong day.
const (
	zoneListPane = "pane:list"
	zoneGrid     = "pane:calendar"
)

func dayZoneID(cell int) string { return "day:" + strconv.Itoa(cell) }

func rowZoneID(cell, row int) string {
	return "row:" + strconv.Itoa(cell) + ":" + strconv.Itoa(row)
}

func listZoneID(row int) string { return "list:" + strconv.Itoa(row) }

// dayCell is one slot of the month grid.
type dayCell struct {
	Day     calendar.DateKey
	InMonth bool
	Week    int
	Weekday int
}

// cellRegistry is the arena of grid cells plus a DateKey index into it.
// It is rebuilt whenever the displayed month or first weekday changes.
type cellRegistry struct {
	month        calendar.Month
	firstWeekday time.Weekday
	cells        []dayCell
	index        map[calendar.DateKey]int
	weeks        int
}

func newCellRegistry(month calendar.Month, firstWeekday time.Weekday) cellRegistry {
	grid := month.Grid(firstWeekday)
	r := cellRegistry{
		month:        month,
		firstWeekday: firstWeekday,
		cells:        make([]dayCell, 0, len(grid)*7),
		index:        make(map[calendar.DateKey]int, len(grid)*7),
		weeks:        len(grid),
	}
	for w, week := range grid {
		for d, day := range week {
			r.index[day] = len(r.cells)
			r.cells = append(r.cells, dayCell{
				Day:     day,
				InMonth: month.Contains(day),
				Week:    w,
				Weekday: d,
			})
		}
	}
	return r
}

// Lookup returns the arena position of day.
func (r cellRegistry) Lookup(day calendar.DateKey) (int, bool) {
	i, ok := r.index[day]
	return i, ok
}

// Cell returns the cell at arena position i.
func (r cellRegistry) Cell(i int) (dayCell, bool) {
	if i < 0 || i >= len(r.cells) {
		return dayCell{}, false
	}
	return r.cells[i], true
}

// Len is the number of cells.
func (r cellRegistry) Len() int { return len(r.cells) }

// Contains reports whether day is shown, including spillover days.
func (r cellRegistry) Contains(day calendar.DateKey) bool {
	_, ok := r.index[day]
	return ok
}
