package grid

import (
	"math"
	"sort"
	"time"
)

// DayKind discriminates the two column definitions an event may use.
type DayKind string

const (
	// DayKindWeekday is a recurring weekly window ("every friday").
	DayKindWeekday DayKind = "weekday"
	// DayKindDate is a window on one specific calendar date.
	DayKindDate DayKind = "date"
)

// Day is one column definition as authored by the organizer: either a
// recurring weekday or a specific date, with a same-day time window.
// Exactly one of Weekday/Date is meaningful, matching Kind.
type Day struct {
	ID      int
	Kind    DayKind
	Weekday string
	Date    time.Time
	Start   TimeOfDay
	End     TimeOfDay
}

// Window is a contiguous time-of-day interval on one grid day, eligible for
// availability marking. DayID points back at the authored Day it came from.
// An End of 23:59 denotes the end of the day.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
	DayID int
}

var endOfDay = TimeOfDay{Hour: 23, Minute: 59}

// effectiveEndMinutes treats the 23:59 end marker as a full 24h boundary so
// durations and row ceilings do not lose the last minute of a split window.
func (w Window) effectiveEndMinutes() int {
	if w.End == endOfDay {
		return minutesPerDay
	}
	return w.End.Minutes()
}

// Duration returns the window length in minutes.
func (w Window) Duration() int {
	return w.effectiveEndMinutes() - w.Start.Minutes()
}

// Contains reports whether the time of day falls inside the window,
// inclusive on both bounds.
func (w Window) Contains(t TimeOfDay) bool {
	m := t.Minutes()
	return m >= w.Start.Minutes() && m <= w.End.Minutes()
}

// GridDay is one concrete, timezone-resolved calendar date carrying the
// windows of every authored Day that lands on it. Windows from different
// Days may overlap; no merging is performed, each one independently
// validates a cell.
type GridDay struct {
	Date    time.Time
	Windows []Window
}

func shiftMinutes(offsetHours float64) int {
	return int(math.Round(offsetHours * 60))
}

// anchorDate resolves a Day to the calendar date its window is counted from.
// Date-kind days anchor on their own date. Weekday-kind days anchor on that
// weekday within the Monday-started week containing the reference instant,
// so relative ordering among an event's weekdays stays stable for the whole
// computation.
func anchorDate(d Day, reference time.Time) (time.Time, error) {
	if d.Kind == DayKindDate {
		return midnightUTC(d.Date), nil
	}

	ord, err := WeekdayOrdinal(d.Weekday)
	if err != nil {
		return time.Time{}, err
	}

	ref := midnightUTC(reference)
	daysSinceMonday := (int(ref.Weekday()) + 6) % 7
	monday := ref.AddDate(0, 0, -daysSinceMonday)
	return monday.AddDate(0, 0, ord-1), nil
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func timeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// UnifyDays converts an event's heterogeneous day definitions into the
// canonical sorted list of calendar-anchored grid days in the viewer's
// timezone. Every Day contributes its full window to one grid day, or to two
// adjacent ones when the offset shift pushes the window across midnight.
// Days with unknown weekday names are skipped rather than failing the whole
// grid.
func UnifyDays(days []Day, offsetHours float64, reference time.Time) []GridDay {
	shift := shiftMinutes(offsetHours)

	byDate := make(map[time.Time]*GridDay)
	order := make([]time.Time, 0, len(days))

	attach := func(date time.Time, w Window) {
		gd, ok := byDate[date]
		if !ok {
			gd = &GridDay{Date: date}
			byDate[date] = gd
			order = append(order, date)
		}
		gd.Windows = append(gd.Windows, w)
	}

	for _, d := range days {
		anchor, err := anchorDate(d, reference)
		if err != nil {
			continue
		}

		absStart := anchor.Add(time.Duration(d.Start.Minutes()-shift) * time.Minute)
		absEnd := anchor.Add(time.Duration(d.End.Minutes()-shift) * time.Minute)

		startDate := midnightUTC(absStart)
		endDate := midnightUTC(absEnd)

		switch {
		case startDate.Equal(endDate):
			attach(startDate, Window{Start: timeOfDayOf(absStart), End: timeOfDayOf(absEnd), DayID: d.ID})
		case timeOfDayOf(absEnd) == (TimeOfDay{}):
			// End lands exactly on midnight: the day-crossing fragment is
			// empty, so the window closes out its start date instead.
			attach(startDate, Window{Start: timeOfDayOf(absStart), End: endOfDay, DayID: d.ID})
		default:
			attach(startDate, Window{Start: timeOfDayOf(absStart), End: endOfDay, DayID: d.ID})
			attach(endDate, Window{Start: TimeOfDay{}, End: timeOfDayOf(absEnd), DayID: d.ID})
		}
	}

	gridDays := make([]GridDay, 0, len(order))
	for _, date := range order {
		gridDays = append(gridDays, *byDate[date])
	}
	sort.Slice(gridDays, func(i, j int) bool {
		return gridDays[i].Date.Before(gridDays[j].Date)
	})
	return gridDays
}
