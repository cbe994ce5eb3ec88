package ics

import (
	"context"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overlapp/overlapp/internal/utils"
	"github.com/overlapp/overlapp/pkg/event"
	"github.com/overlapp/overlapp/pkg/grid"
)

func TestRender_oneVEventPerWindow(t *testing.T) {
	events := event.NewStubRepository()
	stored, err := events.Store(context.Background(), event.Event{
		Title:    "Game night",
		Timezone: "UTC",
		Type:     event.TypeDated,
		Days: []event.Day{
			{
				Kind:      grid.DayKindDate,
				Date:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
				StartTime: grid.MustParseTimeOfDay("18:00"),
				EndTime:   grid.MustParseTimeOfDay("22:00"),
			},
			{
				Kind:      grid.DayKindDate,
				Date:      time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
				StartTime: grid.MustParseTimeOfDay("18:00"),
				EndTime:   grid.MustParseTimeOfDay("22:00"),
			},
		},
	})
	require.NoError(t, err)

	clock := &utils.MockClock{FixedNow: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)}
	rendered, err := NewService(events, clock).Render(context.Background(), stored.ID)
	require.NoError(t, err)

	cal, err := ical.ParseCalendar(strings.NewReader(rendered))
	require.NoError(t, err)
	require.Len(t, cal.Events(), 2)

	first := cal.Events()[0]
	start, err := first.GetStartAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC), start.UTC())
	end, err := first.GetEndAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 22, 0, 0, 0, time.UTC), end.UTC())
	assert.Equal(t, "Game night", first.GetProperty(ical.ComponentPropertySummary).Value)
}

func TestRender_recurringWeekdaysLandOnCurrentWeek(t *testing.T) {
	events := event.NewStubRepository()
	stored, err := events.Store(context.Background(), event.Event{
		Title:    "Standup",
		Timezone: "UTC",
		Type:     event.TypeRecurring,
		Days: []event.Day{
			{
				Kind:      grid.DayKindWeekday,
				Weekday:   "friday",
				StartTime: grid.MustParseTimeOfDay("09:00"),
				EndTime:   grid.MustParseTimeOfDay("09:30"),
			},
		},
	})
	require.NoError(t, err)

	// Monday of the week whose friday is 2024-06-14.
	clock := &utils.MockClock{FixedNow: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)}
	rendered, err := NewService(events, clock).Render(context.Background(), stored.ID)
	require.NoError(t, err)

	cal, err := ical.ParseCalendar(strings.NewReader(rendered))
	require.NoError(t, err)
	require.Len(t, cal.Events(), 1)

	start, err := cal.Events()[0].GetStartAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC), start.UTC())
}

func TestRender_unknownEvent(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Now()}
	_, err := NewService(event.NewStubRepository(), clock).Render(context.Background(), 99)
	assert.ErrorIs(t, err, event.ErrEventNotFound)
}
