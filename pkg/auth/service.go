package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/overlapp/overlapp/internal/config"
	"github.com/overlapp/overlapp/internal/utils"
	"github.com/overlapp/overlapp/pkg/event"
	"github.com/overlapp/overlapp/pkg/participant"
)

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Service implements the find-or-create sign-in flow: the first sign-in with
// a given username enrolls that participant in the event, later sign-ins must
// present the same password.
type Service struct {
	sessions     Repository
	participants participant.Repository
	events       event.Repository
	cfg          config.Session
	clock        utils.Clock
}

func NewService(
	sessions Repository,
	participants participant.Repository,
	events event.Repository,
	cfg config.Session,
	clock utils.Clock,
) *Service {
	return &Service{
		sessions:     sessions,
		participants: participants,
		events:       events,
		cfg:          cfg,
		clock:        clock,
	}
}

func (s *Service) SignIn(ctx context.Context, eventID int, username, password string, rememberMe bool) (Session, participant.Participant, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Session{}, participant.Participant{}, &ValidationError{Reason: "username must not be empty"}
	}

	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return Session{}, participant.Participant{}, err
	}

	existing, err := s.participants.FindByEventAndUsername(ctx, eventID, username)
	switch {
	case err == nil:
		if err := VerifyPassword(existing.PasswordHash, password); err != nil {
			if errors.Is(err, ErrInvalidPassword) {
				return Session{}, participant.Participant{}, ErrInvalidPassword
			}
			err := fmt.Errorf("could not verify password: %w", err)
			log.Error(err)
			return Session{}, participant.Participant{}, err
		}
	case errors.Is(err, participant.ErrParticipantNotFound):
		hash, err := HashPassword(password)
		if err != nil {
			err := fmt.Errorf("could not hash password: %w", err)
			log.Error(err)
			return Session{}, participant.Participant{}, err
		}
		created, err := s.participants.Insert(ctx, participant.Participant{
			EventID:      eventID,
			Username:     username,
			PasswordHash: hash,
		})
		if err != nil {
			return Session{}, participant.Participant{}, err
		}
		existing = &created
	default:
		return Session{}, participant.Participant{}, err
	}

	ttl := s.cfg.TTL
	if rememberMe {
		ttl = s.cfg.RememberMeTTL
	}
	session, err := s.sessions.Insert(ctx, Session{
		ParticipantID: existing.ID,
		Token:         uuid.NewString(),
		ExpiresAt:     s.clock.Now().Add(ttl),
		RememberMe:    rememberMe,
	})
	if err != nil {
		return Session{}, participant.Participant{}, err
	}

	log.Infof("Participant %q signed in to event %d", existing.Username, eventID)
	return session, *existing, nil
}

// Authenticate resolves a bearer token to its participant. Expired or closed
// sessions are indistinguishable from unknown tokens.
func (s *Service) Authenticate(ctx context.Context, token string) (participant.Participant, error) {
	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		return participant.Participant{}, err
	}
	if !session.Active(s.clock.Now()) {
		return participant.Participant{}, ErrSessionNotFound
	}
	p, err := s.participants.FindByID(ctx, session.ParticipantID)
	if err != nil {
		return participant.Participant{}, err
	}
	return *p, nil
}

// SignOut closes the session behind the token. Unknown tokens are ignored so
// that sign-out is safe to repeat.
func (s *Service) SignOut(ctx context.Context, token string) error {
	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}
	if err := s.sessions.Close(ctx, session.ID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	return nil
}

// CloseExpired is the sweeper entry point run on the cleanup schedule.
func (s *Service) CloseExpired(ctx context.Context) error {
	closed, err := s.sessions.CloseExpired(ctx, s.clock.Now())
	if err != nil {
		return err
	}
	if closed > 0 {
		log.Infof("Closed %d expired sessions", closed)
	}
	return nil
}
