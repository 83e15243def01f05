package service

import (
	"context"
	"fmt"

	"github.com/goserg/campusevents/internal/domain"

	"github.com/google/uuid"
)

// SubmitRequest stores a pending event request. The image, if any, is kept
// only when the request row is written.
func (s *EventService) SubmitRequest(ctx context.Context, userID uuid.UUID, details domain.EventDetails, image *Image) (int64, error) {
	key, err := s.storeImage(ctx, image)
	if err != nil {
		return 0, s.fail("store image", err)
	}
	details.Image = key
	id, err := s.storage.CreateRequest(ctx, userID, details)
	if err != nil {
		s.dropImage(ctx, key)
		return 0, s.fail("submit request", err)
	}
	s.log.WithField("request_id", id).Info("event request submitted")
	s.notify(ctx, fmt.Sprintf("New event request #%d: %s on %s at %s", id, details.Title, details.Date, details.Location))
	return id, nil
}

// Review approves or rejects a pending request. Approval creates the event
// in the same transaction.
func (s *EventService) Review(ctx context.Context, requestID int64, action string, remarks string) error {
	reviewAction, err := domain.ParseReviewAction(action)
	if err != nil {
		return err
	}
	eventID, err := s.storage.ReviewRequest(ctx, requestID, reviewAction.Status(), remarks)
	if err != nil {
		return s.fail("review request", err)
	}
	log := s.log.WithFields(map[string]interface{}{
		"request_id": requestID,
		"status":     reviewAction.Status(),
	})
	if eventID != 0 {
		log = log.WithField("event_id", eventID)
	}
	log.Info("event request reviewed")
	s.notify(ctx, fmt.Sprintf("Event request #%d %s", requestID, reviewAction.Status()))
	return nil
}

func (s *EventService) MyRequests(ctx context.Context, userID uuid.UUID) ([]domain.EventRequest, error) {
	rows, err := s.storage.ListUserRequests(ctx, userID)
	if err != nil {
		return nil, s.fail("user requests", err)
	}
	return s.convertRequests(rows), nil
}

func (s *EventService) AllRequests(ctx context.Context) ([]domain.EventRequest, error) {
	rows, err := s.storage.ListRequests(ctx)
	if err != nil {
		return nil, s.fail("all requests", err)
	}
	return s.convertRequests(rows), nil
}
