package participant

import "context"

type StubRepository struct {
	nextID int
	data   map[int]Participant
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[int]Participant{}}
}

func (s *StubRepository) FindByEventAndUsername(ctx context.Context, eventID int, username string) (*Participant, error) {
	for _, p := range s.data {
		if p.EventID == eventID && p.Username == username {
			return &p, nil
		}
	}
	return nil, ErrParticipantNotFound
}

func (s *StubRepository) FindByID(ctx context.Context, id int) (*Participant, error) {
	p, ok := s.data[id]
	if !ok {
		return nil, ErrParticipantNotFound
	}
	return &p, nil
}

func (s *StubRepository) Insert(ctx context.Context, p Participant) (Participant, error) {
	s.nextID++
	p.ID = s.nextID
	s.data[p.ID] = p
	return p, nil
}

func (s *StubRepository) ListByEvent(ctx context.Context, eventID int) ([]Participant, error) {
	participants := make([]Participant, 0, len(s.data))
	for id := 1; id <= s.nextID; id++ {
		if p, ok := s.data[id]; ok && p.EventID == eventID {
			participants = append(participants, p)
		}
	}
	return participants, nil
}

func (s *StubRepository) Reset() {
	s.data = map[int]Participant{}
	s.nextID = 0
}
