package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventPublished EventStatus = "published"
	EventDraft     EventStatus = "draft"
	EventCancelled EventStatus = "cancelled"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventPublished, EventDraft, EventCancelled:
		return true
	}
	return false
}

// Event is a scheduled gathering. Date holds the calendar day at midnight UTC,
// Time holds the time of day on 0000-01-01.
type Event struct {
	ID              int64
	Title           string
	Description     string
	Date            time.Time
	Time            time.Time
	Location        string
	Capacity        int
	Status          EventStatus
	CreatedBy       uuid.UUID
	ImageURL        string
	CreatedAt       time.Time
	RegisteredCount int
}

func (e Event) SeatsLeft() int {
	if left := e.Capacity - e.RegisteredCount; left > 0 {
		return left
	}
	return 0
}

func (e Event) IsFull() bool {
	return e.RegisteredCount >= e.Capacity
}

// EventDetails carries the user supplied part of an event or a request.
// Date and Time are already in canonical "2006-01-02" and "15:04:05" form.
type EventDetails struct {
	Title       string
	Description string
	Date        string
	Time        string
	Location    string
	Capacity    int
	Image       string
}

const (
	DateLayout = time.DateOnly
	TimeLayout = time.TimeOnly
)
