package event

import (
	"context"
	"fmt"
	"time"

	"github.com/overlapp/overlapp/pkg/grid"
)

// NewDay is one day definition as submitted by the organizer. Times are
// optional; the original form defaults to a nine-to-five window.
type NewDay struct {
	Weekday   string
	Date      time.Time
	StartTime string
	EndTime   string
}

// NewEvent is the organizer's event definition.
type NewEvent struct {
	Title    string
	Timezone string
	Type     Type
	Days     []NewDay
}

const (
	defaultStartTime = "09:00"
	defaultEndTime   = "17:00"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new event with its day definitions.
func (s *Service) Create(ctx context.Context, newEvent NewEvent) (*Event, error) {
	event, err := buildEvent(newEvent)
	if err != nil {
		return nil, err
	}

	stored, err := s.repo.Store(ctx, *event)
	if err != nil {
		return nil, fmt.Errorf("failed to store event: %w", err)
	}
	return &stored, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Event, error) {
	return s.repo.FindByID(ctx, id)
}

func buildEvent(newEvent NewEvent) (*Event, error) {
	if newEvent.Title == "" {
		return nil, &ValidationError{Reason: "title must not be empty"}
	}
	if newEvent.Type != TypeRecurring && newEvent.Type != TypeDated {
		return nil, &ValidationError{Reason: fmt.Sprintf("unknown event type: %q", newEvent.Type)}
	}
	if _, err := time.LoadLocation(newEvent.Timezone); err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("unknown timezone: %q", newEvent.Timezone)}
	}
	if len(newEvent.Days) == 0 {
		return nil, &ValidationError{Reason: "an event needs at least one day"}
	}

	event := &Event{
		Title:    newEvent.Title,
		Timezone: newEvent.Timezone,
		Type:     newEvent.Type,
	}
	for _, nd := range newEvent.Days {
		day, err := buildDay(newEvent.Type, nd)
		if err != nil {
			return nil, err
		}
		event.Days = append(event.Days, day)
	}
	return event, nil
}

func buildDay(eventType Type, nd NewDay) (Day, error) {
	day := Day{}

	switch eventType {
	case TypeRecurring:
		if _, err := grid.WeekdayOrdinal(nd.Weekday); err != nil {
			return Day{}, &ValidationError{Reason: fmt.Sprintf("unknown weekday: %q", nd.Weekday)}
		}
		day.Kind = grid.DayKindWeekday
		day.Weekday = nd.Weekday
	case TypeDated:
		if nd.Date.IsZero() {
			return Day{}, &ValidationError{Reason: "dated events need a date on every day"}
		}
		day.Kind = grid.DayKindDate
		day.Date = nd.Date
	}

	startTime := nd.StartTime
	if startTime == "" {
		startTime = defaultStartTime
	}
	endTime := nd.EndTime
	if endTime == "" {
		endTime = defaultEndTime
	}

	var err error
	if day.StartTime, err = grid.ParseTimeOfDay(startTime); err != nil {
		return Day{}, &ValidationError{Reason: fmt.Sprintf("invalid start time: %q", startTime)}
	}
	if day.EndTime, err = grid.ParseTimeOfDay(endTime); err != nil {
		return Day{}, &ValidationError{Reason: fmt.Sprintf("invalid end time: %q", endTime)}
	}
	if !day.StartTime.Before(day.EndTime) {
		return Day{}, &ValidationError{Reason: fmt.Sprintf("start time %s must be before end time %s", day.StartTime, day.EndTime)}
	}
	return day, nil
}
