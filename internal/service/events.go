package service

import (
	"context"
	"fmt"
	"io"

	"github.com/goserg/campusevents/internal/domain"
	"github.com/goserg/campusevents/internal/uploads"

	"github.com/google/uuid"
)

// Image is an uploaded file as received from a form.
type Image struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// Upcoming lists published events from today on, soonest first.
func (s *EventService) Upcoming(ctx context.Context) ([]domain.Event, error) {
	rows, err := s.storage.ListUpcomingEvents(ctx, s.today(), 0)
	if err != nil {
		return nil, s.fail("upcoming events", err)
	}
	return s.convertEvents(rows), nil
}

// EventDetails returns the event and whether the user is registered for it.
// Guests are never registered.
func (s *EventService) EventDetails(ctx context.Context, id int64, userID uuid.UUID) (domain.Event, bool, error) {
	row, err := s.storage.GetEvent(ctx, id)
	if err != nil {
		return domain.Event{}, false, s.fail("event details", err)
	}
	if userID == uuid.Nil {
		return s.convertEvent(row), false, nil
	}
	registered, err := s.storage.IsRegistered(ctx, id, userID)
	if err != nil {
		return domain.Event{}, false, s.fail("event details", err)
	}
	return s.convertEvent(row), registered, nil
}

func (s *EventService) AllEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := s.storage.ListAllEvents(ctx)
	if err != nil {
		return nil, s.fail("all events", err)
	}
	return s.convertEvents(rows), nil
}

// EditableEvent returns the event with its date and time in form layout.
func (s *EventService) EditableEvent(ctx context.Context, id int64) (domain.Event, domain.EventDetails, error) {
	row, err := s.storage.GetEvent(ctx, id)
	if err != nil {
		return domain.Event{}, domain.EventDetails{}, s.fail("get event", err)
	}
	event := s.convertEvent(row)
	return event, domain.EventDetails{
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date.Format(domain.DateLayout),
		Time:        event.Time.Format(domain.TimeLayout),
		Location:    event.Location,
		Capacity:    event.Capacity,
	}, nil
}

func (s *EventService) CreateEvent(
	ctx context.Context,
	adminID uuid.UUID,
	details domain.EventDetails,
	status domain.EventStatus,
	image *Image,
) (int64, error) {
	key, err := s.storeImage(ctx, image)
	if err != nil {
		return 0, s.fail("store image", err)
	}
	details.Image = key
	id, err := s.storage.CreateEvent(ctx, details, status, adminID)
	if err != nil {
		s.dropImage(ctx, key)
		return 0, s.fail("create event", err)
	}
	s.log.WithField("event_id", id).Info("event created")
	return id, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, id int64, details domain.EventDetails, status domain.EventStatus) error {
	if err := s.storage.UpdateEvent(ctx, id, details, status); err != nil {
		return s.fail("update event", err)
	}
	s.log.WithField("event_id", id).Info("event updated")
	return nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.storage.DeleteEvent(ctx, id); err != nil {
		return s.fail("delete event", err)
	}
	s.log.WithField("event_id", id).Info("event deleted")
	return nil
}

// EventRegistrations returns the event with its registrants, newest first.
func (s *EventService) EventRegistrations(ctx context.Context, id int64) (domain.Event, []domain.Registrant, error) {
	row, err := s.storage.GetEvent(ctx, id)
	if err != nil {
		return domain.Event{}, nil, s.fail("event registrations", err)
	}
	registrants, err := s.storage.ListRegistrants(ctx, id)
	if err != nil {
		return domain.Event{}, nil, s.fail("event registrations", err)
	}
	return s.convertEvent(row), s.convertRegistrants(registrants), nil
}

// storeImage saves an allowed image and returns its key. Missing images and
// files of other types are skipped without error.
func (s *EventService) storeImage(ctx context.Context, image *Image) (string, error) {
	if image == nil || image.Name == "" {
		return "", nil
	}
	if !uploads.Allowed(image.Name) {
		s.log.WithField("file", image.Name).Info("skipping upload of unsupported type")
		return "", nil
	}
	key, err := s.uploads.Save(ctx, image.Name, image.Content, image.ContentType)
	if err != nil {
		return "", fmt.Errorf("save image %q: %w", image.Name, err)
	}
	return key, nil
}

func (s *EventService) dropImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.uploads.Delete(ctx, key); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("orphaned upload")
	}
}
