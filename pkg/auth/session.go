package auth

import (
	"errors"
	"time"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidPassword is the only detail surfaced on a failed sign-in for
	// an existing username.
	ErrInvalidPassword = errors.New("incorrect password")
)

// Session is a bearer credential correlating a browser to a participant.
// Signing out marks the session closed instead of deleting the row, keeping
// the audit trail intact.
type Session struct {
	ID            int
	ParticipantID int
	Token         string
	ExpiresAt     time.Time
	Closed        bool
	RememberMe    bool
}

// Active reports whether the session can still authenticate at the given
// instant.
func (s Session) Active(now time.Time) bool {
	return !s.Closed && now.Before(s.ExpiresAt)
}

// SessionCookieName is the cookie carrying the bearer token.
const SessionCookieName = "session_token"
