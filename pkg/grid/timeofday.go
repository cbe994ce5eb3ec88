package grid

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time within one day. Comparisons are on the
// normalized (hour, minute) pair; seconds are accepted on parse and dropped.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:mm" or "HH:mm:ss".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day: %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if len(parts) == 3 {
		if _, err := strconv.Atoi(parts[2]); err != nil {
			return TimeOfDay{}, fmt.Errorf("invalid second in %q: %w", s, err)
		}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day out of range: %q", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// MustParseTimeOfDay is ParseTimeOfDay for statically known values.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Minutes returns the time as minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// TimeOfDayFromMinutes converts minutes since midnight back to a wall-clock
// time, wrapping values outside a single day.
func TimeOfDayFromMinutes(minutes int) TimeOfDay {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return TimeOfDay{Hour: minutes / 60, Minute: minutes % 60}
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.Minutes() > other.Minutes()
}

// String returns the row-key form "HH:mm".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

const minutesPerDay = 24 * 60

var weekdayOrdinals = map[string]int{
	"monday":    1,
	"tuesday":   2,
	"wednesday": 3,
	"thursday":  4,
	"friday":    5,
	"saturday":  6,
	"sunday":    7,
}

// WeekdayOrdinal maps a weekday name to its ordinal, Monday=1 through
// Sunday=7. Matching is case-insensitive.
func WeekdayOrdinal(name string) (int, error) {
	ord, ok := weekdayOrdinals[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown weekday: %q", name)
	}
	return ord, nil
}

// OffsetHours returns the difference between the event timezone's UTC offset
// and the viewer timezone's UTC offset, in hours, resolved at the given
// instant. A positive value means the viewer's clock runs behind the
// event's; window times shift by minus this offset. The instant is explicit
// so one grid computation uses one consistent offset.
func OffsetHours(eventTimezone, viewerTimezone string, at time.Time) (float64, error) {
	eventLoc, err := time.LoadLocation(eventTimezone)
	if err != nil {
		return 0, fmt.Errorf("invalid event timezone %q: %w", eventTimezone, err)
	}
	viewerLoc, err := time.LoadLocation(viewerTimezone)
	if err != nil {
		return 0, fmt.Errorf("invalid viewer timezone %q: %w", viewerTimezone, err)
	}

	_, eventOffset := at.In(eventLoc).Zone()
	_, viewerOffset := at.In(viewerLoc).Zone()

	return float64(eventOffset-viewerOffset) / 3600, nil
}
