package availability

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/overlapp/overlapp/pkg/event"
	"github.com/overlapp/overlapp/pkg/grid"
	"github.com/overlapp/overlapp/pkg/participant"
)

type Service struct {
	repo   Repository
	events event.Repository
}

func NewService(repo Repository, events event.Repository) *Service {
	return &Service{repo: repo, events: events}
}

// NewAvailability carries the raw times of a create request.
type NewAvailability struct {
	DayID     int
	StartTime string
	EndTime   string
}

// Create marks a time range as free for the given participant. The day must
// belong to the participant's event. Creating the same (day, start) slot
// twice returns the already stored row.
func (s *Service) Create(ctx context.Context, p participant.Participant, request NewAvailability) (*Availability, error) {
	start, err := grid.ParseTimeOfDay(request.StartTime)
	if err != nil {
		return nil, &ValidationError{Reason: "start time must be in HH:mm format"}
	}
	end, err := grid.ParseTimeOfDay(request.EndTime)
	if err != nil {
		return nil, &ValidationError{Reason: "end time must be in HH:mm format"}
	}
	if !start.Before(end) {
		return nil, &ValidationError{Reason: "start time must be before end time"}
	}

	days, err := s.events.ListDays(ctx, p.EventID)
	if err != nil {
		return nil, err
	}
	known := false
	for _, d := range days {
		if d.ID == request.DayID {
			known = true
			break
		}
	}
	if !known {
		return nil, &ValidationError{Reason: "day does not belong to the participant's event"}
	}

	if existing, err := s.repo.FindSlot(ctx, p.ID, request.DayID, start); err == nil {
		log.Debugf("Availability for participant %d, day %d at %s already exists", p.ID, request.DayID, start)
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	created, err := s.repo.Insert(ctx, Availability{
		ParticipantID: p.ID,
		DayID:         request.DayID,
		StartTime:     start,
		EndTime:       end,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete removes an availability owned by the participant. Rows of other
// participants look like they do not exist.
func (s *Service) Delete(ctx context.Context, p participant.Participant, id int) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.ParticipantID != p.ID {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// ListByEvent returns every availability of the event.
func (s *Service) ListByEvent(ctx context.Context, eventID int) ([]Availability, error) {
	return s.repo.ListByEvent(ctx, eventID)
}
