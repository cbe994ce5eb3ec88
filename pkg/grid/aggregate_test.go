package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(id, participantID, dayID int, start string) Availability {
	s := MustParseTimeOfDay(start)
	return Availability{
		ID:            id,
		ParticipantID: participantID,
		DayID:         dayID,
		Start:         s,
		End:           TimeOfDayFromMinutes(s.Minutes() + SlotMinutes),
	}
}

func TestAggregate_placesEntriesInShiftedCells(t *testing.T) {
	days := []Day{
		{ID: 1, Kind: DayKindDate, Date: date(10), Start: MustParseTimeOfDay("09:00"), End: MustParseTimeOfDay("17:00")},
	}
	participants := []Participant{{ID: 1, Username: "alice"}}
	availabilities := []Availability{slot(1, 1, 1, "09:00")}

	gridDays := UnifyDays(days, 3, reference)
	g := BuildGrid(gridDays)
	Aggregate(g, days, availabilities, participants, 3, reference)

	// 09:00 in the event's timezone is 06:00 for this viewer.
	cell, ok := g.At(MustParseTimeOfDay("06:00"), date(10))
	require.True(t, ok)
	require.Len(t, cell.Entries, 1)
	assert.Equal(t, "alice", cell.Entries[0].Participant.Username)
	assert.Equal(t, 1, cell.Entries[0].Availability.ID)
}

func TestAggregate_skipsOrphanedRows(t *testing.T) {
	days := []Day{
		{ID: 1, Kind: DayKindDate, Date: date(10), Start: MustParseTimeOfDay("09:00"), End: MustParseTimeOfDay("17:00")},
	}
	participants := []Participant{{ID: 1, Username: "alice"}}
	availabilities := []Availability{
		slot(1, 1, 99, "09:00"), // deleted day
		slot(2, 99, 1, "09:00"), // deleted participant
		slot(3, 1, 1, "09:00"),  // intact
	}

	gridDays := UnifyDays(days, 0, reference)
	g := BuildGrid(gridDays)
	Aggregate(g, days, availabilities, participants, 0, reference)

	cell, ok := g.At(MustParseTimeOfDay("09:00"), date(10))
	require.True(t, ok)
	require.Len(t, cell.Entries, 1)
	assert.Equal(t, 3, cell.Entries[0].Availability.ID)
}

func TestAggregate_isIdempotentOverSnapshots(t *testing.T) {
	days := []Day{
		{ID: 1, Kind: DayKindDate, Date: date(10), Start: MustParseTimeOfDay("09:00"), End: MustParseTimeOfDay("17:00")},
	}
	participants := []Participant{{ID: 1, Username: "alice"}}
	availabilities := []Availability{slot(1, 1, 1, "10:00")}

	build := func() *Grid {
		gridDays := UnifyDays(days, 0, reference)
		g := BuildGrid(gridDays)
		Aggregate(g, days, availabilities, participants, 0, reference)
		return g
	}

	first := build()
	second := build()

	require.Equal(t, first.Rows, second.Rows)
	for row := range first.Rows {
		for col := range first.Days {
			assert.Equal(t, first.Cell(row, col).Entries, second.Cell(row, col).Entries)
		}
	}
}

func TestPartition(t *testing.T) {
	all := []Participant{{ID: 2, Username: "bob"}, {ID: 1, Username: "alice"}, {ID: 3, Username: "carol"}}
	cell := &Cell{Valid: true, Entries: []Entry{
		{Participant: Participant{ID: 3, Username: "carol"}},
		{Participant: Participant{ID: 1, Username: "alice"}},
	}}

	available, unavailable := cell.Partition(all)

	require.Len(t, available, 2)
	assert.Equal(t, 1, available[0].ID)
	assert.Equal(t, 3, available[1].ID)
	require.Len(t, unavailable, 1)
	assert.Equal(t, 2, unavailable[0].ID)
}

func TestMaxCountAndIntensityBucket(t *testing.T) {
	days := []Day{
		{ID: 1, Kind: DayKindDate, Date: date(10), Start: MustParseTimeOfDay("09:00"), End: MustParseTimeOfDay("17:00")},
	}
	participants := []Participant{{ID: 1, Username: "alice"}, {ID: 2, Username: "bob"}}
	availabilities := []Availability{
		slot(1, 1, 1, "09:00"),
		slot(2, 2, 1, "09:00"),
		slot(3, 2, 1, "10:00"),
	}

	gridDays := UnifyDays(days, 0, reference)
	g := BuildGrid(gridDays)
	Aggregate(g, days, availabilities, participants, 0, reference)

	assert.Equal(t, 2, g.MaxCount())

	assert.Equal(t, 0, IntensityBucket(0, 2))
	assert.Equal(t, 3, IntensityBucket(1, 2))
	assert.Equal(t, IntensityBuckets, IntensityBucket(2, 2))
	// counts above the maximum saturate
	assert.Equal(t, IntensityBuckets, IntensityBucket(5, 2))
	// an all-empty grid never divides by zero
	assert.Equal(t, 0, IntensityBucket(0, 0))
}
