package auth

import (
	"context"
	"time"
)

type StubRepository struct {
	sessions map[int]Session
	nextID   int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{sessions: make(map[int]Session), nextID: 1}
}

func (r *StubRepository) Insert(_ context.Context, session Session) (Session, error) {
	session.ID = r.nextID
	r.nextID++
	r.sessions[session.ID] = session
	return session, nil
}

func (r *StubRepository) FindByToken(_ context.Context, token string) (*Session, error) {
	for _, session := range r.sessions {
		if session.Token == token {
			found := session
			return &found, nil
		}
	}
	return nil, ErrSessionNotFound
}

func (r *StubRepository) Close(_ context.Context, id int) error {
	session, ok := r.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	session.Closed = true
	r.sessions[id] = session
	return nil
}

func (r *StubRepository) CloseExpired(_ context.Context, now time.Time) (int, error) {
	closed := 0
	for id, session := range r.sessions {
		if !session.Closed && !now.Before(session.ExpiresAt) {
			session.Closed = true
			r.sessions[id] = session
			closed++
		}
	}
	return closed, nil
}

func (r *StubRepository) Reset() {
	r.sessions = make(map[int]Session)
	r.nextID = 1
}
