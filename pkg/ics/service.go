package ics

import (
	"context"
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/overlapp/overlapp/internal/utils"
	"github.com/overlapp/overlapp/pkg/event"
	"github.com/overlapp/overlapp/pkg/grid"
)

type Service struct {
	events event.Repository
	clock  utils.Clock
}

func NewService(events event.Repository, clock utils.Clock) *Service {
	return &Service{events: events, clock: clock}
}

// Render exports an event's candidate windows as an iCalendar document, one
// VEVENT per window, in the event's own timezone. Recurring weekdays are
// materialized onto the week containing the current instant.
func (s *Service) Render(ctx context.Context, eventID int) (string, error) {
	storedEvent, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return "", err
	}

	location, err := time.LoadLocation(storedEvent.Timezone)
	if err != nil {
		return "", fmt.Errorf("could not load event timezone %q: %w", storedEvent.Timezone, err)
	}

	now := s.clock.Now()
	gridDays := grid.UnifyDays(event.GridDays(storedEvent.Days), 0, now)

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//overlapp//calendar export//EN")

	for _, gd := range gridDays {
		for _, w := range gd.Windows {
			start := windowInstant(gd.Date, w.Start, location)
			end := windowInstant(gd.Date, w.End, location)
			if w.End == (grid.TimeOfDay{Hour: 23, Minute: 59}) {
				end = windowInstant(gd.Date.AddDate(0, 0, 1), grid.TimeOfDay{}, location)
			}

			e := cal.AddEvent(fmt.Sprintf("%d-%d-%s@overlapp", storedEvent.ID, w.DayID, gd.Date.Format("20060102")))
			e.SetDtStampTime(now)
			e.SetSummary(storedEvent.Title)
			e.SetStartAt(start)
			e.SetEndAt(end)
		}
	}

	return cal.Serialize(), nil
}

func windowInstant(date time.Time, t grid.TimeOfDay, location *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, location)
}
