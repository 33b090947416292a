package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/printcal/internal/pubsub"
)

var (
	mar15 = DateKey{2024, 3, 15}
	mar16 = DateKey{2024, 3, 16}
	acme  = NewAssignment("100", "Acme")
	beta  = NewAssignment("200", "Beta")
	gamma = NewAssignment("300", "Gamma")
)

func TestStore_AssignmentsNeverNil(t *testing.T) {
	s := NewStore(NewState())

	got := s.Assignments(mar15)
	require.NotNil(t, got)
	require.Empty(t, got)

	_, ok := s.AssignmentsEntry(mar15)
	require.False(t, ok)
}

func TestStore_AddAssignmentIsIdempotent(t *testing.T) {
	s := NewStore(NewState())

	require.True(t, s.AddAssignment(mar15, acme))
	require.False(t, s.AddAssignment(mar15, acme))
	require.Equal(t, []Assignment{acme}, s.Assignments(mar15))
}

func TestStore_AssignmentsReturnsCopy(t *testing.T) {
	s := NewStore(NewState())
	s.AddAssignment(mar15, acme)

	got := s.Assignments(mar15)
	got[0] = beta

	require.Equal(t, []Assignment{acme}, s.Assignments(mar15))
}

func TestStore_SetNotes(t *testing.T) {
	s := NewStore(NewState())

	require.False(t, s.SetNotes(mar15, ""), "blank on absent day is a no-op")
	require.False(t, s.SetNotes(mar15, "  \n"))
	require.Zero(t, s.Revision())

	require.True(t, s.SetNotes(mar15, "print proofs"))
	require.False(t, s.SetNotes(mar15, "print proofs"))
	require.Equal(t, "print proofs", s.Notes(mar15))

	require.True(t, s.SetNotes(mar15, " "))
	_, ok := s.NotesEntry(mar15)
	require.False(t, ok, "blank notes remove the key")
}

func TestStore_RemoveAssignmentsHighToLow(t *testing.T) {
	s := NewStore(NewState())
	for _, a := range []Assignment{acme, beta, gamma} {
		s.AddAssignment(mar15, a)
	}

	removed := s.RemoveAssignments(mar15, []int{2, 0, 0, 7})
	require.Equal(t, []Assignment{acme, gamma}, removed)
	require.Equal(t, []Assignment{beta}, s.Assignments(mar15))

	removed = s.RemoveAssignments(mar15, []int{0})
	require.Equal(t, []Assignment{beta}, removed)
	_, ok := s.AssignmentsEntry(mar15)
	require.False(t, ok, "empty list removes the key")

	require.Nil(t, s.RemoveAssignments(mar15, []int{0}))
}

func TestStore_ClearDay(t *testing.T) {
	s := NewStore(NewState())
	s.AddAssignment(mar15, acme)
	s.AddAssignment(mar15, beta)

	require.Equal(t, 2, s.ClearDay(mar15))
	require.Zero(t, s.ClearDay(mar15))
	require.Empty(t, s.State().Assignments)
}

func TestStore_ReplaceAssignments(t *testing.T) {
	s := NewStore(NewState())

	require.False(t, s.ReplaceAssignments(mar15, nil))
	require.True(t, s.ReplaceAssignments(mar15, []Assignment{acme, beta, acme}))
	require.Equal(t, []Assignment{acme, beta}, s.Assignments(mar15))
	require.False(t, s.ReplaceAssignments(mar15, []Assignment{acme, beta}))
	require.True(t, s.ReplaceAssignments(mar15, []Assignment{beta, acme}), "reordering is a change")
	require.True(t, s.ReplaceAssignments(mar15, nil))
	require.Empty(t, s.Days())
}

func TestStore_RejectsInvalidDay(t *testing.T) {
	s := NewStore(NewState())
	bad := DateKey{2023, 2, 30}

	require.False(t, s.AddAssignment(bad, acme))
	require.False(t, s.SetNotes(bad, "x"))
	require.False(t, s.ReplaceAssignments(bad, []Assignment{acme}))
	require.Empty(t, s.Days())
}

func TestStore_RestoreRoundTrip(t *testing.T) {
	s := NewStore(NewState())
	s.AddAssignment(mar15, acme)
	s.SetNotes(mar16, "call client")

	s.RestoreAssignments(mar15, false, nil)
	s.RestoreNotes(mar16, false, "")
	require.Empty(t, s.Days())

	s.RestoreAssignments(mar15, true, []Assignment{acme, beta})
	s.RestoreNotes(mar16, true, "call client")
	require.Equal(t, []Assignment{acme, beta}, s.Assignments(mar15))
	require.Equal(t, "call client", s.Notes(mar16))
}

func TestStore_NormalizesInitialState(t *testing.T) {
	initial := State{
		Notes: map[DateKey]string{
			mar15:            "keep",
			mar16:            "   ",
			{2023, 2, 29}:    "bad date",
		},
		Assignments: map[DateKey][]Assignment{
			mar15: {acme, acme, beta},
			mar16: {},
		},
	}

	s := NewStore(initial)

	require.Equal(t, map[DateKey]string{mar15: "keep"}, s.State().Notes)
	require.Equal(t, map[DateKey][]Assignment{mar15: {acme, beta}}, s.State().Assignments)
	require.Equal(t, []DateKey{mar15}, s.Days())
}

func TestStore_PublishesChanges(t *testing.T) {
	s := NewStore(NewState())
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := s.Subscribe(ctx)

	s.AddAssignment(mar15, acme)
	s.AddAssignment(mar15, acme) // no-op, no event
	s.SetNotes(mar16, "n")
	s.ClearDay(mar15)

	want := []struct {
		typ    pubsub.EventType
		change Change
	}{
		{pubsub.CreatedEvent, Change{Kind: ChangeAssignments, Day: mar15}},
		{pubsub.CreatedEvent, Change{Kind: ChangeNotes, Day: mar16}},
		{pubsub.DeletedEvent, Change{Kind: ChangeAssignments, Day: mar15}},
	}
	for _, w := range want {
		select {
		case ev := <-ch:
			require.Equal(t, w.typ, ev.Type)
			require.Equal(t, w.change, ev.Payload)
		case <-time.After(time.Second):
			require.Fail(t, "timeout waiting for change")
		}
	}
	require.Equal(t, uint64(3), s.Revision())
}
