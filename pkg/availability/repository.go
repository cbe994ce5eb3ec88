package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/overlapp/overlapp/pkg/grid"
)

type Repository interface {
	Insert(ctx context.Context, a Availability) (Availability, error)
	Delete(ctx context.Context, id int) error
	FindByID(ctx context.Context, id int) (*Availability, error)
	// FindSlot returns the stored row for an exact (participant, day, start)
	// triple, or ErrNotFound.
	FindSlot(ctx context.Context, participantID, dayID int, start grid.TimeOfDay) (*Availability, error)
	// ListByEvent returns every availability of the event, joined through
	// its participants.
	ListByEvent(ctx context.Context, eventID int) ([]Availability, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Insert(ctx context.Context, a Availability) (Availability, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO availability (participant_id, day_id, start_time, end_time) VALUES (?, ?, ?, ?)`,
		a.ParticipantID, a.DayID, a.StartTime.String(), a.EndTime.String(),
	)
	if err != nil {
		err := fmt.Errorf("could not insert availability: %w", err)
		log.Error(err)
		return Availability{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return Availability{}, err
	}
	a.ID = int(id)
	return a, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM availability WHERE id = ?`, id)
	if err != nil {
		err := fmt.Errorf("could not delete availability: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RepositoryImpl) FindByID(ctx context.Context, id int) (*Availability, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, participant_id, day_id, start_time, end_time FROM availability WHERE id = ?`, id,
	)
	return scanAvailability(row.Scan)
}

func (r *RepositoryImpl) FindSlot(ctx context.Context, participantID, dayID int, start grid.TimeOfDay) (*Availability, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, participant_id, day_id, start_time, end_time
		   FROM availability
		  WHERE participant_id = ? AND day_id = ? AND start_time = ?`,
		participantID, dayID, start.String(),
	)
	return scanAvailability(row.Scan)
}

func (r *RepositoryImpl) ListByEvent(ctx context.Context, eventID int) ([]Availability, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT a.id, a.participant_id, a.day_id, a.start_time, a.end_time
		   FROM availability a
		   JOIN participant p ON p.id = a.participant_id
		  WHERE p.event_id = ?
		  ORDER BY a.id`,
		eventID,
	)
	if err != nil {
		err := fmt.Errorf("could not query availabilities: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	availabilities := make([]Availability, 0, 30)
	for rows.Next() {
		a, err := scanAvailability(rows.Scan)
		if err != nil {
			return nil, err
		}
		availabilities = append(availabilities, *a)
	}
	return availabilities, rows.Err()
}

func scanAvailability(scan func(dest ...any) error) (*Availability, error) {
	var a Availability
	var start, end string
	if err := scan(&a.ID, &a.ParticipantID, &a.DayID, &start, &end); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		err := fmt.Errorf("could not scan availability row: %w", err)
		log.Error(err)
		return nil, err
	}

	var err error
	if a.StartTime, err = grid.ParseTimeOfDay(start); err != nil {
		err := fmt.Errorf("could not parse availability start %q: %w", start, err)
		log.Error(err)
		return nil, err
	}
	if a.EndTime, err = grid.ParseTimeOfDay(end); err != nil {
		err := fmt.Errorf("could not parse availability end %q: %w", end, err)
		log.Error(err)
		return nil, err
	}
	return &a, nil
}
