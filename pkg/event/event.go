package event

import (
	"errors"
	"time"

	"github.com/overlapp/overlapp/pkg/grid"
)

// Type determines how an event's days are defined: a recurring weekly
// pattern or a fixed set of calendar dates.
type Type string

const (
	TypeRecurring Type = "recurring"
	TypeDated     Type = "dated"
)

var ErrEventNotFound = errors.New("event not found")

// Event is one scheduling poll. Timezone is the IANA name of the authoring
// timezone; all day windows are written in it.
type Event struct {
	ID       int
	Title    string
	Timezone string
	Type     Type
	Days     []Day
}

// Day is one grid column definition owned by an event: a recurring weekday
// window or a specific-date window. Exactly one of Weekday/Date is
// populated, matching Kind. StartTime is always before EndTime within the
// authoring timezone.
type Day struct {
	ID        int
	EventID   int
	Kind      grid.DayKind
	Weekday   string
	Date      time.Time
	StartTime grid.TimeOfDay
	EndTime   grid.TimeOfDay
}

// GridDay converts the stored day into the grid engine's input form.
func (d Day) GridDay() grid.Day {
	return grid.Day{
		ID:      d.ID,
		Kind:    d.Kind,
		Weekday: d.Weekday,
		Date:    d.Date,
		Start:   d.StartTime,
		End:     d.EndTime,
	}
}

// GridDays converts a day list for the grid engine.
func GridDays(days []Day) []grid.Day {
	out := make([]grid.Day, 0, len(days))
	for _, d := range days {
		out = append(out, d.GridDay())
	}
	return out
}

// ValidationError reports a malformed event definition.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
