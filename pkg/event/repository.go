package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/overlapp/overlapp/pkg/grid"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// Store persists the event together with its day records and returns
	// the stored aggregate with generated ids.
	Store(ctx context.Context, event Event) (Event, error)
	// FindByID returns the event with its days, or ErrEventNotFound.
	FindByID(ctx context.Context, id int) (*Event, error)
	ListDays(ctx context.Context, eventID int) ([]Day, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const dateFormat = "2006-01-02"

func (r *RepositoryImpl) Store(ctx context.Context, event Event) (Event, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Event{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO event (title, timezone, type) VALUES (?, ?, ?)`,
		event.Title, event.Timezone, string(event.Type),
	)
	if err != nil {
		err := fmt.Errorf("could not insert event: %w", err)
		log.Error(err)
		return Event{}, err
	}
	eventID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return Event{}, err
	}
	event.ID = int(eventID)

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO day (event_id, kind, weekday, date, start_time, end_time) VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		err := fmt.Errorf("could not prepare day insert: %w", err)
		log.Error(err)
		return Event{}, err
	}
	defer stmt.Close()

	for i := range event.Days {
		day := &event.Days[i]
		day.EventID = event.ID

		var weekdayParam, dateParam interface{}
		if day.Kind == grid.DayKindWeekday {
			weekdayParam = day.Weekday
		} else {
			dateParam = day.Date.Format(dateFormat)
		}

		result, err := stmt.ExecContext(ctx,
			event.ID, string(day.Kind), weekdayParam, dateParam,
			day.StartTime.String(), day.EndTime.String(),
		)
		if err != nil {
			err := fmt.Errorf("could not insert day: %w", err)
			log.Error(err)
			return Event{}, err
		}
		dayID, err := result.LastInsertId()
		if err != nil {
			err := fmt.Errorf("could not retrieve last insert id: %w", err)
			log.Error(err)
			return Event{}, err
		}
		day.ID = int(dayID)
	}

	if err := tx.Commit(); err != nil {
		return Event{}, fmt.Errorf("commit transaction: %w", err)
	}
	return event, nil
}

func (r *RepositoryImpl) FindByID(ctx context.Context, id int) (*Event, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, timezone, type FROM event WHERE id = ?`, id,
	)

	var event Event
	var eventType string
	if err := row.Scan(&event.ID, &event.Title, &event.Timezone, &eventType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		err := fmt.Errorf("could not query event: %w", err)
		log.Error(err)
		return nil, err
	}
	event.Type = Type(eventType)

	days, err := r.ListDays(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	event.Days = days

	return &event, nil
}

func (r *RepositoryImpl) ListDays(ctx context.Context, eventID int) ([]Day, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, event_id, kind, weekday, date, start_time, end_time FROM day WHERE event_id = ? ORDER BY id`,
		eventID,
	)
	if err != nil {
		err := fmt.Errorf("could not query days: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	days := make([]Day, 0, 7)
	for rows.Next() {
		var day Day
		var kind string
		var weekday, date sql.NullString
		var startTime, endTime string
		if err := rows.Scan(&day.ID, &day.EventID, &kind, &weekday, &date, &startTime, &endTime); err != nil {
			err := fmt.Errorf("could not scan day row: %w", err)
			log.Error(err)
			return nil, err
		}
		day.Kind = grid.DayKind(kind)
		day.Weekday = weekday.String
		if date.Valid {
			parsed, err := time.Parse(dateFormat, date.String)
			if err != nil {
				err := fmt.Errorf("could not parse day date %q: %w", date.String, err)
				log.Error(err)
				return nil, err
			}
			day.Date = parsed
		}
		if day.StartTime, err = grid.ParseTimeOfDay(startTime); err != nil {
			return nil, fmt.Errorf("could not parse day start time: %w", err)
		}
		if day.EndTime, err = grid.ParseTimeOfDay(endTime); err != nil {
			return nil, fmt.Errorf("could not parse day end time: %w", err)
		}
		days = append(days, day)
	}
	return days, rows.Err()
}
