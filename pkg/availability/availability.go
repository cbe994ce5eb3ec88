package availability

import (
	"errors"

	"github.com/overlapp/overlapp/pkg/grid"
)

var ErrNotFound = errors.New("availability not found")

// Availability marks one time range on one event day as free for a single
// participant. Ranges are stored in the event's timezone.
type Availability struct {
	ID            int
	ParticipantID int
	DayID         int
	StartTime     grid.TimeOfDay
	EndTime       grid.TimeOfDay
}

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
