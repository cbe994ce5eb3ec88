package grid

import "time"

// SlotMinutes is the fixed row step. It is not configurable per event.
const SlotMinutes = 30

// Cell is one (time row, grid day column) intersection. Invalid cells fall
// outside every window of their column and never carry entries.
type Cell struct {
	Valid   bool
	Entries []Entry
}

// Entry is one participant's availability placed into a cell.
type Entry struct {
	Availability Availability
	Participant  Participant
}

// Grid is the aggregated time x day matrix. Rows are a time-of-day axis
// shared by all columns; columns are the unified grid days in date order.
type Grid struct {
	Rows  []TimeOfDay
	Days  []GridDay
	cells [][]*Cell

	floor    int
	colByDay map[time.Time]int
}

// BuildGrid produces the empty slot grid for the unified days: sorted
// 30-minute rows spanning the union of all windows, with per-cell validity.
// Row times are strictly increasing; the last row starts strictly before the
// latest window end.
func BuildGrid(gridDays []GridDay) *Grid {
	floor, ceiling := rowBounds(gridDays)

	g := &Grid{
		Days:     gridDays,
		floor:    floor,
		colByDay: make(map[time.Time]int, len(gridDays)),
	}
	for col, gd := range gridDays {
		g.colByDay[gd.Date] = col
	}

	for m := floor; m < ceiling; m += SlotMinutes {
		g.Rows = append(g.Rows, TimeOfDayFromMinutes(m))
	}

	g.cells = make([][]*Cell, len(g.Rows))
	for row, t := range g.Rows {
		g.cells[row] = make([]*Cell, len(gridDays))
		for col, gd := range gridDays {
			valid := false
			for _, w := range gd.Windows {
				if w.Contains(t) {
					valid = true
					break
				}
			}
			g.cells[row][col] = &Cell{Valid: valid}
		}
	}
	return g
}

// rowBounds returns the earliest window start and the latest window end in
// minutes since midnight, across all grid days.
func rowBounds(gridDays []GridDay) (int, int) {
	floor, ceiling := 0, 0
	first := true
	for _, gd := range gridDays {
		for _, w := range gd.Windows {
			start := w.Start.Minutes()
			end := w.effectiveEndMinutes()
			if first {
				floor, ceiling = start, end
				first = false
				continue
			}
			if start < floor {
				floor = start
			}
			if end > ceiling {
				ceiling = end
			}
		}
	}
	return floor, ceiling
}

// Cell returns the cell at the given row and column indexes, or nil when the
// indexes are out of range.
func (g *Grid) Cell(row, col int) *Cell {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.cells[row]) {
		return nil
	}
	return g.cells[row][col]
}

// At locates the cell for a time of day on a calendar date. The second
// return is false when the date is not a column, the time misses the row
// raster, or the row range does not cover it.
func (g *Grid) At(t TimeOfDay, date time.Time) (*Cell, bool) {
	col, ok := g.colByDay[midnightUTC(date)]
	if !ok {
		return nil, false
	}
	offset := t.Minutes() - g.floor
	if offset < 0 || offset%SlotMinutes != 0 {
		return nil, false
	}
	row := offset / SlotMinutes
	if row >= len(g.Rows) {
		return nil, false
	}
	return g.cells[row][col], true
}
