package normalize

import (
	"time"

	"github.com/goserg/campusevents/internal/domain"
)

// Schedule is a canonical (date, time) pair. Date is midnight UTC of the
// calendar day, Time is the time of day on 0000-01-01 UTC.
type Schedule struct {
	Date time.Time
	Time time.Time
}

var timestampLayouts = []string{
	time.DateTime,
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	time.DateOnly,
}

// ScheduleOf coerces raw column values into a Schedule. If either value can
// not be interpreted the whole pair is replaced with now and ok is false.
func ScheduleOf(rawDate, rawTime any, now time.Time) (Schedule, bool) {
	d, okDate := Date(rawDate)
	t, okTime := Clock(rawTime)
	if !okDate || !okTime {
		return Schedule{Date: now, Time: now}, false
	}
	return Schedule{Date: d, Time: t}, true
}

// Date interprets a DATE column value.
func Date(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case string:
		return parse(domain.DateLayout, v)
	case []byte:
		return parse(domain.DateLayout, string(v))
	}
	return time.Time{}, false
}

// Clock interprets a TIME column value. Durations and integer seconds are
// counted from midnight and truncated to the minute.
func Clock(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case time.Duration:
		return fromDuration(v)
	case int64:
		return fromDuration(time.Duration(v) * time.Second)
	case int:
		return fromDuration(time.Duration(v) * time.Second)
	case string:
		return parseClock(v)
	case []byte:
		return parseClock(string(v))
	}
	return time.Time{}, false
}

// Timestamp interprets a TIMESTAMP column value, falling back to now.
func Timestamp(raw any, now time.Time) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		if v.IsZero() {
			return now, false
		}
		return v, true
	case string:
		return parseTimestamp(v, now)
	case []byte:
		return parseTimestamp(string(v), now)
	}
	return now, false
}

func fromDuration(d time.Duration) (time.Time, bool) {
	if d < 0 {
		return time.Time{}, false
	}
	hours := int(d / time.Hour)
	minutes := int(d%time.Hour) / int(time.Minute)
	if hours > 23 {
		return time.Time{}, false
	}
	return time.Date(0, time.January, 1, hours, minutes, 0, 0, time.UTC), true
}

func parseClock(s string) (time.Time, bool) {
	if t, ok := parse(domain.TimeLayout, s); ok {
		return t, true
	}
	return parse("15:04", s)
}

func parseTimestamp(s string, now time.Time) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, ok := parse(layout, s); ok {
			return t, true
		}
	}
	return now, false
}

func parse(layout, s string) (time.Time, bool) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
