package storage

import (
	"context"

	"github.com/goserg/campusevents/internal/domain"

	"github.com/google/uuid"
)

// EventRow is an event as read from the database. Date, Time and CreatedAt
// keep whatever the driver produced and are normalized by the caller.
type EventRow struct {
	ID              int64
	Title           string
	Description     string
	Date            any
	Time            any
	Location        string
	Capacity        int
	Status          string
	CreatedBy       uuid.UUID
	Image           string
	CreatedAt       any
	RegisteredCount int
}

type RegistrationRow struct {
	Event        EventRow
	RegisteredAt any
}

type RegistrantRow struct {
	UserID       uuid.UUID
	Username     string
	Email        string
	RegisteredAt any
}

type RequestRow struct {
	ID            int64
	Title         string
	Description   string
	ProposedDate  any
	ProposedTime  any
	Location      string
	Capacity      int
	RequestedBy   uuid.UUID
	RequesterName string
	Status        string
	AdminRemarks  string
	Image         string
	CreatedAt     any
}

type EventStorage interface {
	ListUpcomingEvents(ctx context.Context, today string, limit int) ([]EventRow, error)
	ListAllEvents(ctx context.Context) ([]EventRow, error)
	GetEvent(ctx context.Context, id int64) (EventRow, error)
	CreateEvent(ctx context.Context, details domain.EventDetails, status domain.EventStatus, createdBy uuid.UUID) (int64, error)
	UpdateEvent(ctx context.Context, id int64, details domain.EventDetails, status domain.EventStatus) error
	DeleteEvent(ctx context.Context, id int64) error
	ListRegistrants(ctx context.Context, eventID int64) ([]RegistrantRow, error)
}

type RegistrationStorage interface {
	Register(ctx context.Context, eventID int64, userID uuid.UUID) error
	CancelRegistration(ctx context.Context, eventID int64, userID uuid.UUID) error
	IsRegistered(ctx context.Context, eventID int64, userID uuid.UUID) (bool, error)
	ListUserRegistrations(ctx context.Context, userID uuid.UUID) ([]RegistrationRow, error)
}

type RequestStorage interface {
	CreateRequest(ctx context.Context, userID uuid.UUID, details domain.EventDetails) (int64, error)
	ListUserRequests(ctx context.Context, userID uuid.UUID) ([]RequestRow, error)
	ListRequests(ctx context.Context) ([]RequestRow, error)
	// ReviewRequest decides a pending request. On approval the event is
	// created in the same transaction and its id returned.
	ReviewRequest(ctx context.Context, id int64, status domain.RequestStatus, remarks string) (int64, error)
}

type StatsStorage interface {
	DashboardStats(ctx context.Context, today string) (domain.DashboardStats, error)
}

type Storage interface {
	EventStorage
	RegistrationStorage
	RequestStorage
	StatsStorage
}
