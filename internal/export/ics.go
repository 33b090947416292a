// Package export renders the calendar as an iCalendar feed.
package export

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/zjrosen/printcal/internal/calendar"
	"github.com/zjrosen/printcal/internal/log"
)

// ProductID identifies the generator in the PRODID property.
const ProductID = "-//printcal//Print Calendar//EN"

// ICS returns one all-day VEVENT per assignment. Events carry the day's
// notes as their description and now as DTSTAMP.
func ICS(state calendar.State, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ical.MethodPublish)
	cal.SetXWRCalName("Print Calendar")

	count := 0
	for _, day := range state.Days() {
		notes := strings.TrimSpace(state.Notes[day])
		for n, a := range state.Assignments[day] {
			evt := cal.AddEvent(UID(day, a, n))
			evt.SetDtStampTime(now)
			evt.SetAllDayStartAt(day.Time())
			evt.SetAllDayEndAt(day.AddDays(1).Time())
			evt.SetSummary(a.Label())
			if notes != "" {
				evt.SetDescription(notes)
			}
			count++
		}
	}
	log.Debug(log.CatPersist, "ics export", "events", count)
	return cal.Serialize()
}

// UID is stable for an assignment at position n on day.
func UID(day calendar.DateKey, a calendar.Assignment, n int) string {
	order := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			return r
		default:
			return -1
		}
	}, a.OrderNumber)
	if order == "" {
		order = "order"
	}
	return fmt.Sprintf("%s-%s-%d@printcal", day, order, n)
}
