package participant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	FindByEventAndUsername(ctx context.Context, eventID int, username string) (*Participant, error)
	FindByID(ctx context.Context, id int) (*Participant, error)
	Insert(ctx context.Context, p Participant) (Participant, error)
	ListByEvent(ctx context.Context, eventID int) ([]Participant, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) FindByEventAndUsername(ctx context.Context, eventID int, username string) (*Participant, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, event_id, username, password_hash FROM participant WHERE event_id = ? AND username = ?`,
		eventID, username,
	)
	return scanParticipant(row)
}

func (r *RepositoryImpl) FindByID(ctx context.Context, id int) (*Participant, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, event_id, username, password_hash FROM participant WHERE id = ?`, id,
	)
	return scanParticipant(row)
}

func scanParticipant(row *sql.Row) (*Participant, error) {
	var p Participant
	if err := row.Scan(&p.ID, &p.EventID, &p.Username, &p.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		err := fmt.Errorf("could not query participant: %w", err)
		log.Error(err)
		return nil, err
	}
	return &p, nil
}

func (r *RepositoryImpl) Insert(ctx context.Context, p Participant) (Participant, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO participant (event_id, username, password_hash) VALUES (?, ?, ?)`,
		p.EventID, p.Username, p.PasswordHash,
	)
	if err != nil {
		err := fmt.Errorf("could not insert participant: %w", err)
		log.Error(err)
		return Participant{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return Participant{}, err
	}
	p.ID = int(id)
	return p, nil
}

func (r *RepositoryImpl) ListByEvent(ctx context.Context, eventID int) ([]Participant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, event_id, username, password_hash FROM participant WHERE event_id = ? ORDER BY id`,
		eventID,
	)
	if err != nil {
		err := fmt.Errorf("could not query participants: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	participants := make([]Participant, 0, 10)
	for rows.Next() {
		var p Participant
		if err := rows.Scan(&p.ID, &p.EventID, &p.Username, &p.PasswordHash); err != nil {
			err := fmt.Errorf("could not scan participant row: %w", err)
			log.Error(err)
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}
