package event

import "context"

type StubRepository struct {
	nextEventID int
	nextDayID   int
	data        map[int]Event
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[int]Event{}}
}

func (s *StubRepository) Store(ctx context.Context, event Event) (Event, error) {
	s.nextEventID++
	event.ID = s.nextEventID
	for i := range event.Days {
		s.nextDayID++
		event.Days[i].ID = s.nextDayID
		event.Days[i].EventID = event.ID
	}
	s.data[event.ID] = event
	return event, nil
}

func (s *StubRepository) FindByID(ctx context.Context, id int) (*Event, error) {
	event, ok := s.data[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	return &event, nil
}

func (s *StubRepository) ListDays(ctx context.Context, eventID int) ([]Day, error) {
	event, ok := s.data[eventID]
	if !ok {
		return []Day{}, nil
	}
	return event.Days, nil
}

func (s *StubRepository) Reset() {
	s.data = map[int]Event{}
	s.nextEventID = 0
	s.nextDayID = 0
}
