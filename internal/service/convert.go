package service

import (
	"github.com/goserg/campusevents/internal/domain"
	"github.com/goserg/campusevents/internal/normalize"
	"github.com/goserg/campusevents/internal/storage"
)

func (s *EventService) convertEvent(row storage.EventRow) domain.Event {
	now := s.now()
	schedule, ok := normalize.ScheduleOf(row.Date, row.Time, now)
	if !ok {
		s.log.WithField("event_id", row.ID).Warn("unreadable event date or time, showing current time")
	}
	createdAt, _ := normalize.Timestamp(row.CreatedAt, now)
	return domain.Event{
		ID:              row.ID,
		Title:           row.Title,
		Description:     row.Description,
		Date:            schedule.Date,
		Time:            schedule.Time,
		Location:        row.Location,
		Capacity:        row.Capacity,
		Status:          domain.EventStatus(row.Status),
		CreatedBy:       row.CreatedBy,
		ImageURL:        s.uploads.URL(row.Image),
		CreatedAt:       createdAt,
		RegisteredCount: row.RegisteredCount,
	}
}

func (s *EventService) convertEvents(rows []storage.EventRow) []domain.Event {
	converted := make([]domain.Event, 0, len(rows))
	for _, row := range rows {
		converted = append(converted, s.convertEvent(row))
	}
	return converted
}

// convertRequest normalizes the proposed date, time and creation timestamp
// together. If any of them is unreadable all three become the current time.
func (s *EventService) convertRequest(row storage.RequestRow) domain.EventRequest {
	now := s.now()
	schedule, okSchedule := normalize.ScheduleOf(row.ProposedDate, row.ProposedTime, now)
	createdAt, okCreated := normalize.Timestamp(row.CreatedAt, now)
	if !okSchedule || !okCreated {
		s.log.WithField("request_id", row.ID).Warn("unreadable request date or time, showing current time")
		schedule = normalize.Schedule{Date: now, Time: now}
		createdAt = now
	}
	return domain.EventRequest{
		ID:            row.ID,
		Title:         row.Title,
		Description:   row.Description,
		ProposedDate:  schedule.Date,
		ProposedTime:  schedule.Time,
		Location:      row.Location,
		Capacity:      row.Capacity,
		RequestedBy:   row.RequestedBy,
		RequesterName: row.RequesterName,
		Status:        domain.RequestStatus(row.Status),
		AdminRemarks:  row.AdminRemarks,
		ImageURL:      s.uploads.URL(row.Image),
		CreatedAt:     createdAt,
	}
}

func (s *EventService) convertRequests(rows []storage.RequestRow) []domain.EventRequest {
	converted := make([]domain.EventRequest, 0, len(rows))
	for _, row := range rows {
		converted = append(converted, s.convertRequest(row))
	}
	return converted
}

func (s *EventService) convertRegistrants(rows []storage.RegistrantRow) []domain.Registrant {
	now := s.now()
	converted := make([]domain.Registrant, 0, len(rows))
	for _, row := range rows {
		at, _ := normalize.Timestamp(row.RegisteredAt, now)
		converted = append(converted, domain.Registrant{
			UserID:       row.UserID,
			Username:     row.Username,
			Email:        row.Email,
			RegisteredAt: at,
		})
	}
	return converted
}

func (s *EventService) convertRegistrations(rows []storage.RegistrationRow) []domain.Registration {
	now := s.now()
	converted := make([]domain.Registration, 0, len(rows))
	for _, row := range rows {
		at, _ := normalize.Timestamp(row.RegisteredAt, now)
		converted = append(converted, domain.Registration{
			Event:        s.convertEvent(row.Event),
			RegisteredAt: at,
		})
	}
	return converted
}
