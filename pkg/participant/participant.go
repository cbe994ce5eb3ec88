package participant

import "errors"

var ErrParticipantNotFound = errors.New("participant not found")

// Participant is one invited person, scoped to a single event. The same
// username may exist under different events; within one event it is unique.
type Participant struct {
	ID           int
	EventID      int
	Username     string
	PasswordHash string
}
