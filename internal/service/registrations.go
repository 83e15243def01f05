package service

import (
	"context"

	"github.com/goserg/campusevents/internal/domain"

	"github.com/google/uuid"
)

func (s *EventService) Register(ctx context.Context, eventID int64, userID uuid.UUID) error {
	if err := s.storage.Register(ctx, eventID, userID); err != nil {
		return s.fail("register", err)
	}
	s.log.WithFields(map[string]interface{}{
		"event_id": eventID,
		"user_id":  userID,
	}).Info("registered")
	return nil
}

func (s *EventService) Cancel(ctx context.Context, eventID int64, userID uuid.UUID) error {
	if err := s.storage.CancelRegistration(ctx, eventID, userID); err != nil {
		return s.fail("cancel registration", err)
	}
	s.log.WithFields(map[string]interface{}{
		"event_id": eventID,
		"user_id":  userID,
	}).Info("registration cancelled")
	return nil
}

func (s *EventService) MyRegistrations(ctx context.Context, userID uuid.UUID) ([]domain.Registration, error) {
	rows, err := s.storage.ListUserRegistrations(ctx, userID)
	if err != nil {
		return nil, s.fail("user registrations", err)
	}
	return s.convertRegistrations(rows), nil
}
