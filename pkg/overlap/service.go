package overlap

import (
	"context"
	"time"

	"github.com/overlapp/overlapp/internal/utils"
	"github.com/overlapp/overlapp/pkg/availability"
	"github.com/overlapp/overlapp/pkg/event"
	"github.com/overlapp/overlapp/pkg/grid"
	"github.com/overlapp/overlapp/pkg/participant"
)

// View is the aggregated availability grid for one event, shifted into the
// viewer's timezone. It is a pure snapshot: recomputing it over the same
// stored data yields the same view.
type View struct {
	EventID        int
	Title          string
	EventTimezone  string
	ViewerTimezone string
	OffsetHours    float64
	Rows           []grid.TimeOfDay
	Days           []DayView
	Participants   []grid.Participant
	MaxCount       int
}

// DayView is one column of the view.
type DayView struct {
	Date  time.Time
	Cells []CellView
}

// CellView is one 30-minute cell. Invalid cells render as gaps and never
// carry participants.
type CellView struct {
	Valid       bool
	Count       int
	Intensity   int
	Available   []grid.Participant
	Unavailable []grid.Participant
}

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

type Service struct {
	events         event.Repository
	participants   participant.Repository
	availabilities availability.Repository
	clock          utils.Clock
}

func NewService(
	events event.Repository,
	participants participant.Repository,
	availabilities availability.Repository,
	clock utils.Clock,
) *Service {
	return &Service{
		events:         events,
		participants:   participants,
		availabilities: availabilities,
		clock:          clock,
	}
}

// Grid computes the aggregated view of an event for a viewer timezone. An
// empty viewerTimezone means the event's own timezone.
func (s *Service) Grid(ctx context.Context, eventID int, viewerTimezone string) (*View, error) {
	storedEvent, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if viewerTimezone == "" {
		viewerTimezone = storedEvent.Timezone
	}

	now := s.clock.Now()
	offset, err := grid.OffsetHours(storedEvent.Timezone, viewerTimezone, now)
	if err != nil {
		return nil, &ValidationError{Reason: "unknown timezone: " + viewerTimezone}
	}

	storedParticipants, err := s.participants.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	storedAvailabilities, err := s.availabilities.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	days := event.GridDays(storedEvent.Days)
	gridDays := grid.UnifyDays(days, offset, now)
	g := grid.BuildGrid(gridDays)
	grid.Aggregate(g, days, gridAvailabilities(storedAvailabilities), gridParticipants(storedParticipants), offset, now)

	return buildView(*storedEvent, viewerTimezone, offset, g, gridParticipants(storedParticipants)), nil
}

func buildView(e event.Event, viewerTimezone string, offset float64, g *grid.Grid, all []grid.Participant) *View {
	view := &View{
		EventID:        e.ID,
		Title:          e.Title,
		EventTimezone:  e.Timezone,
		ViewerTimezone: viewerTimezone,
		OffsetHours:    offset,
		Rows:           g.Rows,
		Participants:   all,
		MaxCount:       g.MaxCount(),
	}

	for col, gd := range g.Days {
		dayView := DayView{Date: gd.Date, Cells: make([]CellView, 0, len(g.Rows))}
		for row := range g.Rows {
			cell := g.Cell(row, col)
			cellView := CellView{Valid: cell.Valid}
			if cell.Valid {
				available, unavailable := cell.Partition(all)
				cellView.Count = len(available)
				cellView.Intensity = grid.IntensityBucket(len(available), view.MaxCount)
				cellView.Available = available
				cellView.Unavailable = unavailable
			}
			dayView.Cells = append(dayView.Cells, cellView)
		}
		view.Days = append(view.Days, dayView)
	}
	return view
}

func gridAvailabilities(rows []availability.Availability) []grid.Availability {
	out := make([]grid.Availability, 0, len(rows))
	for _, a := range rows {
		out = append(out, grid.Availability{
			ID:            a.ID,
			ParticipantID: a.ParticipantID,
			DayID:         a.DayID,
			Start:         a.StartTime,
			End:           a.EndTime,
		})
	}
	return out
}

func gridParticipants(rows []participant.Participant) []grid.Participant {
	out := make([]grid.Participant, 0, len(rows))
	for _, p := range rows {
		out = append(out, grid.Participant{ID: p.ID, Username: p.Username})
	}
	return out
}
