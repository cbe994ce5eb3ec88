package availability

import (
	"context"

	"github.com/overlapp/overlapp/pkg/grid"
)

// StubRepository needs the participant-to-event mapping to answer
// ListByEvent; register it with AddParticipant.
type StubRepository struct {
	availabilities map[int]Availability
	participants   map[int]int // participant id -> event id
	nextID         int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{
		availabilities: make(map[int]Availability),
		participants:   make(map[int]int),
		nextID:         1,
	}
}

func (r *StubRepository) AddParticipant(participantID, eventID int) {
	r.participants[participantID] = eventID
}

func (r *StubRepository) Insert(_ context.Context, a Availability) (Availability, error) {
	a.ID = r.nextID
	r.nextID++
	r.availabilities[a.ID] = a
	return a, nil
}

func (r *StubRepository) Delete(_ context.Context, id int) error {
	if _, ok := r.availabilities[id]; !ok {
		return ErrNotFound
	}
	delete(r.availabilities, id)
	return nil
}

func (r *StubRepository) FindByID(_ context.Context, id int) (*Availability, error) {
	a, ok := r.availabilities[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *StubRepository) FindSlot(_ context.Context, participantID, dayID int, start grid.TimeOfDay) (*Availability, error) {
	for id := 1; id < r.nextID; id++ {
		a, ok := r.availabilities[id]
		if !ok {
			continue
		}
		if a.ParticipantID == participantID && a.DayID == dayID && a.StartTime == start {
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (r *StubRepository) ListByEvent(_ context.Context, eventID int) ([]Availability, error) {
	result := make([]Availability, 0, len(r.availabilities))
	for id := 1; id < r.nextID; id++ {
		a, ok := r.availabilities[id]
		if !ok {
			continue
		}
		if r.participants[a.ParticipantID] == eventID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *StubRepository) Reset() {
	r.availabilities = make(map[int]Availability)
	r.participants = make(map[int]int)
	r.nextID = 1
}
