package overlap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overlapp/overlapp/internal/utils"
	"github.com/overlapp/overlapp/pkg/availability"
	"github.com/overlapp/overlapp/pkg/event"
	"github.com/overlapp/overlapp/pkg/grid"
	"github.com/overlapp/overlapp/pkg/participant"
)

type fixture struct {
	service        *Service
	events         *event.StubRepository
	participants   *participant.StubRepository
	availabilities *availability.StubRepository
	clock          *utils.MockClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		events:         event.NewStubRepository(),
		participants:   participant.NewStubRepository(),
		availabilities: availability.NewStubRepository(),
		// A Monday, so weekday anchoring is easy to reason about.
		clock: &utils.MockClock{FixedNow: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)},
	}
	f.service = NewService(f.events, f.participants, f.availabilities, f.clock)
	return f
}

func (f *fixture) storeEvent(t *testing.T, timezone string, days ...event.Day) event.Event {
	t.Helper()
	stored, err := f.events.Store(context.Background(), event.Event{
		Title:    "Game night",
		Timezone: timezone,
		Type:     event.TypeDated,
		Days:     days,
	})
	require.NoError(t, err)
	return stored
}

func (f *fixture) signUp(t *testing.T, eventID int, username string) participant.Participant {
	t.Helper()
	p, err := f.participants.Insert(context.Background(), participant.Participant{
		EventID: eventID, Username: username, PasswordHash: "x",
	})
	require.NoError(t, err)
	f.availabilities.AddParticipant(p.ID, eventID)
	return p
}

func datedDay(date time.Time, start, end string) event.Day {
	return event.Day{
		Kind:      grid.DayKindDate,
		Date:      date,
		StartTime: grid.MustParseTimeOfDay(start),
		EndTime:   grid.MustParseTimeOfDay(end),
	}
}

func TestGrid_sameTimezoneNineToFive(t *testing.T) {
	f := newFixture(t)
	stored := f.storeEvent(t, "UTC", datedDay(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), "09:00", "17:00"))

	view, err := f.service.Grid(context.Background(), stored.ID, "")

	require.NoError(t, err)
	assert.Equal(t, "UTC", view.ViewerTimezone)
	assert.Zero(t, view.OffsetHours)
	require.Len(t, view.Rows, 16)
	assert.Equal(t, "09:00", view.Rows[0].String())
	assert.Equal(t, "16:30", view.Rows[15].String())
	require.Len(t, view.Days, 1)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), view.Days[0].Date)
	for _, cell := range view.Days[0].Cells {
		assert.True(t, cell.Valid)
		assert.Zero(t, cell.Count)
	}
}

func TestGrid_viewerBehindEventShiftsRowsEarlier(t *testing.T) {
	f := newFixture(t)
	// Etc/GMT-3 is UTC+3, so a UTC viewer sees the windows three hours
	// earlier on the clock.
	stored := f.storeEvent(t, "Etc/GMT-3", datedDay(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), "09:00", "17:00"))

	view, err := f.service.Grid(context.Background(), stored.ID, "UTC")

	require.NoError(t, err)
	assert.InDelta(t, 3.0, view.OffsetHours, 0.001)
	require.Len(t, view.Rows, 16)
	assert.Equal(t, "06:00", view.Rows[0].String())
	assert.Equal(t, "13:30", view.Rows[15].String())
}

func TestGrid_smallWindowCrossingMidnightMovesToPreviousDay(t *testing.T) {
	f := newFixture(t)
	stored := f.storeEvent(t, "Etc/GMT-3", datedDay(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), "01:00", "02:00"))

	view, err := f.service.Grid(context.Background(), stored.ID, "UTC")

	require.NoError(t, err)
	require.Len(t, view.Days, 1)
	assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), view.Days[0].Date)
	assert.Equal(t, "22:00", view.Rows[0].String())
	assert.Equal(t, "22:30", view.Rows[1].String())
	require.Len(t, view.Rows, 2)
}

func TestGrid_aggregatesOverlapAndPartitionsParticipants(t *testing.T) {
	f := newFixture(t)
	stored := f.storeEvent(t, "UTC", datedDay(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), "09:00", "17:00"))
	dayID := stored.Days[0].ID
	alice := f.signUp(t, stored.ID, "alice")
	bob := f.signUp(t, stored.ID, "bob")

	for _, a := range []availability.Availability{
		{ParticipantID: alice.ID, DayID: dayID, StartTime: grid.MustParseTimeOfDay("09:00"), EndTime: grid.MustParseTimeOfDay("09:30")},
		{ParticipantID: bob.ID, DayID: dayID, StartTime: grid.MustParseTimeOfDay("09:00"), EndTime: grid.MustParseTimeOfDay("09:30")},
		{ParticipantID: bob.ID, DayID: dayID, StartTime: grid.MustParseTimeOfDay("10:00"), EndTime: grid.MustParseTimeOfDay("10:30")},
	} {
		_, err := f.availabilities.Insert(context.Background(), a)
		require.NoError(t, err)
	}

	view, err := f.service.Grid(context.Background(), stored.ID, "")

	require.NoError(t, err)
	assert.Equal(t, 2, view.MaxCount)

	shared := view.Days[0].Cells[0] // 09:00
	assert.Equal(t, 2, shared.Count)
	assert.Equal(t, grid.IntensityBuckets, shared.Intensity)
	require.Len(t, shared.Available, 2)
	assert.Empty(t, shared.Unavailable)

	bobOnly := view.Days[0].Cells[2] // 10:00
	assert.Equal(t, 1, bobOnly.Count)
	require.Len(t, bobOnly.Available, 1)
	assert.Equal(t, "bob", bobOnly.Available[0].Username)
	require.Len(t, bobOnly.Unavailable, 1)
	assert.Equal(t, "alice", bobOnly.Unavailable[0].Username)

	empty := view.Days[0].Cells[1] // 09:30
	assert.Zero(t, empty.Count)
	assert.Zero(t, empty.Intensity)
	assert.Len(t, empty.Unavailable, 2)
}

func TestGrid_recurringWeekdaysKeepWeekOrder(t *testing.T) {
	f := newFixture(t)
	stored, err := f.events.Store(context.Background(), event.Event{
		Title:    "Standup",
		Timezone: "UTC",
		Type:     event.TypeRecurring,
		Days: []event.Day{
			{Kind: grid.DayKindWeekday, Weekday: "friday", StartTime: grid.MustParseTimeOfDay("09:00"), EndTime: grid.MustParseTimeOfDay("10:00")},
			{Kind: grid.DayKindWeekday, Weekday: "tuesday", StartTime: grid.MustParseTimeOfDay("09:00"), EndTime: grid.MustParseTimeOfDay("10:00")},
		},
	})
	require.NoError(t, err)

	view, err := f.service.Grid(context.Background(), stored.ID, "")

	require.NoError(t, err)
	require.Len(t, view.Days, 2)
	assert.Equal(t, time.Tuesday, view.Days[0].Date.Weekday())
	assert.Equal(t, time.Friday, view.Days[1].Date.Weekday())
}

func TestGrid_errors(t *testing.T) {
	f := newFixture(t)
	stored := f.storeEvent(t, "UTC", datedDay(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), "09:00", "17:00"))

	_, err := f.service.Grid(context.Background(), stored.ID+99, "")
	assert.ErrorIs(t, err, event.ErrEventNotFound)

	_, err = f.service.Grid(context.Background(), stored.ID, "Mars/Olympus_Mons")
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
