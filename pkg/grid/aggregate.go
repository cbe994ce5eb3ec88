package grid

import (
	"sort"
	"time"
)

// Availability is one stored 30-minute slot selection, expressed in the
// event's timezone against an authored Day.
type Availability struct {
	ID            int
	ParticipantID int
	DayID         int
	Start         TimeOfDay
	End           TimeOfDay
}

// Participant identifies one event participant for cell partitioning.
type Participant struct {
	ID       int
	Username string
}

// Aggregate folds every availability row into its grid cell, shifted into
// the viewer's timezone. Rows pointing at a missing day or participant, or
// landing outside the grid, are skipped; the view stays available even when
// relations were deleted underneath it. Placing the same snapshot twice
// yields the same grid.
func Aggregate(g *Grid, days []Day, availabilities []Availability, participants []Participant, offsetHours float64, reference time.Time) {
	shift := shiftMinutes(offsetHours)

	dayByID := make(map[int]Day, len(days))
	for _, d := range days {
		dayByID[d.ID] = d
	}
	participantByID := make(map[int]Participant, len(participants))
	for _, p := range participants {
		participantByID[p.ID] = p
	}

	for _, a := range availabilities {
		day, ok := dayByID[a.DayID]
		if !ok {
			continue
		}
		participant, ok := participantByID[a.ParticipantID]
		if !ok {
			continue
		}

		anchor, err := anchorDate(day, reference)
		if err != nil {
			continue
		}
		abs := anchor.Add(time.Duration(a.Start.Minutes()-shift) * time.Minute)

		cell, ok := g.At(timeOfDayOf(abs), abs)
		if !ok || !cell.Valid {
			continue
		}
		cell.Entries = append(cell.Entries, Entry{Availability: a, Participant: participant})
	}
}

// Partition splits all event participants into those available at the cell
// and the rest, both ordered by id.
func (c *Cell) Partition(all []Participant) (available, unavailable []Participant) {
	availableIDs := make(map[int]bool, len(c.Entries))
	for _, e := range c.Entries {
		availableIDs[e.Participant.ID] = true
	}

	for _, p := range all {
		if availableIDs[p.ID] {
			available = append(available, p)
		} else {
			unavailable = append(unavailable, p)
		}
	}
	sort.Slice(available, func(i, j int) bool { return available[i].ID < available[j].ID })
	sort.Slice(unavailable, func(i, j int) bool { return unavailable[i].ID < unavailable[j].ID })
	return available, unavailable
}

// MaxCount returns the highest overlap count across all cells.
func (g *Grid) MaxCount() int {
	max := 0
	for _, row := range g.cells {
		for _, cell := range row {
			if len(cell.Entries) > max {
				max = len(cell.Entries)
			}
		}
	}
	return max
}

// IntensityBuckets is the size of the fixed coloring palette.
const IntensityBuckets = 5

// IntensityBucket maps an overlap count to a palette bucket: 0 for empty
// cells, otherwise 1..IntensityBuckets scaled against the grid's maximum
// and saturating at the top bucket.
func IntensityBucket(count, maxCount int) int {
	if count <= 0 || maxCount <= 0 {
		return 0
	}
	bucket := (count*IntensityBuckets + maxCount - 1) / maxCount
	if bucket > IntensityBuckets {
		bucket = IntensityBuckets
	}
	return bucket
}
