package participant

import (
	"context"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const ParticipantKey contextKey = "participant"

// Current retrieves the signed-in participant from the context. Returns
// ErrParticipantNotFound when the request carries no authenticated
// participant.
func Current(ctx context.Context) (Participant, error) {
	p, ok := ctx.Value(ParticipantKey).(Participant)
	if !ok {
		log.Trace("participant not found in context")
		return Participant{}, ErrParticipantNotFound
	}
	return p, nil
}

func WithParticipant(ctx context.Context, p Participant) context.Context {
	return context.WithValue(ctx, ParticipantKey, p)
}
