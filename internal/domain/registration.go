package domain

import (
	"time"

	"github.com/google/uuid"
)

// Registration is a member's seat at an event.
type Registration struct {
	Event        Event
	RegisteredAt time.Time
}

// Registrant is a member registered for an event, as shown to admins.
type Registrant struct {
	UserID       uuid.UUID
	Username     string
	Email        string
	RegisteredAt time.Time
}

type DashboardStats struct {
	TotalEvents     int
	UpcomingEvents  int
	PastEvents      int
	PendingRequests int
}

type Dashboard struct {
	Stats    DashboardStats
	Upcoming []Event
}
