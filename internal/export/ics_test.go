package export

import (
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/printcal/internal/calendar"
)

func TestICS_OneEventPerAssignment(t *testing.T) {
	mar15 := calendar.NewDateKey(2024, time.March, 15)
	mar16 := calendar.NewDateKey(2024, time.March, 16)
	state := calendar.NewState()
	state.Notes[mar15] = "Rush job\nCall before noon"
	state.Assignments[mar15] = []calendar.Assignment{
		calendar.NewAssignment("100", "Acme"),
		calendar.NewAssignment("101", "Beta"),
	}
	state.Assignments[mar16] = []calendar.Assignment{calendar.NewAssignment("", "Walk-in")}
	now := time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)

	out := ICS(state, now)
	require.Contains(t, out, "PRODID:"+ProductID)

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 3)

	require.Equal(t, "2024-03-15-100-0@printcal", events[0].Id())
	require.Equal(t, "100 - Acme", events[0].GetProperty(ical.ComponentPropertySummary).Value)
	require.NotNil(t, events[0].GetProperty(ical.ComponentPropertyDescription))

	start, err := events[1].GetAllDayStartAt()
	require.NoError(t, err)
	require.Equal(t, "2024-03-15", start.Format("2006-01-02"))
	require.Equal(t, "2024-03-15-101-1@printcal", events[1].Id())

	require.Equal(t, "2024-03-16-order-0@printcal", events[2].Id())
	require.Equal(t, "Walk-in", events[2].GetProperty(ical.ComponentPropertySummary).Value)
	require.Nil(t, events[2].GetProperty(ical.ComponentPropertyDescription))
}

func TestICS_EmptyState(t *testing.T) {
	out := ICS(calendar.NewState(), time.Now())

	require.Contains(t, out, "BEGIN:VCALENDAR")
	require.NotContains(t, out, "BEGIN:VEVENT")
}

func TestUID_StripsPunctuation(t *testing.T) {
	day := calendar.NewDateKey(2024, time.April, 2)
	require.Equal(t, "2024-04-02-A12-3@printcal", UID(day, calendar.NewAssignment("A-12 ", "x"), 3))
}
