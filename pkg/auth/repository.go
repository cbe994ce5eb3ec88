package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Insert(ctx context.Context, session Session) (Session, error)
	FindByToken(ctx context.Context, token string) (*Session, error)
	// Close marks the session closed, keeping the row.
	Close(ctx context.Context, id int) error
	// CloseExpired closes every open session whose expiry is at or before
	// the given instant and returns how many were affected.
	CloseExpired(ctx context.Context, now time.Time) (int, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Insert(ctx context.Context, session Session) (Session, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO session (participant_id, token, expires_at, closed, remember_me) VALUES (?, ?, ?, ?, ?)`,
		session.ParticipantID, session.Token, session.ExpiresAt.UTC().Format(time.RFC3339), session.Closed, session.RememberMe,
	)
	if err != nil {
		err := fmt.Errorf("could not insert session: %w", err)
		log.Error(err)
		return Session{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return Session{}, err
	}
	session.ID = int(id)
	return session, nil
}

func (r *RepositoryImpl) FindByToken(ctx context.Context, token string) (*Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, participant_id, token, expires_at, closed, remember_me FROM session WHERE token = ?`,
		token,
	)

	var session Session
	var expiresAt string
	if err := row.Scan(&session.ID, &session.ParticipantID, &session.Token, &expiresAt, &session.Closed, &session.RememberMe); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		err := fmt.Errorf("could not query session: %w", err)
		log.Error(err)
		return nil, err
	}

	parsed, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil {
		err := fmt.Errorf("could not parse session expiry %q: %w", expiresAt, err)
		log.Error(err)
		return nil, err
	}
	session.ExpiresAt = parsed

	return &session, nil
}

func (r *RepositoryImpl) Close(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE session SET closed = 1 WHERE id = ?`, id)
	if err != nil {
		err := fmt.Errorf("could not close session: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *RepositoryImpl) CloseExpired(ctx context.Context, now time.Time) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE session SET closed = 1 WHERE closed = 0 AND expires_at <= ?`,
		now.UTC().Format(time.RFC3339),
	)
	if err != nil {
		err := fmt.Errorf("could not close expired sessions: %w", err)
		log.Error(err)
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not read affected rows: %w", err)
	}
	return int(affected), nil
}
