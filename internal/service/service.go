package service

import (
	"context"
	"time"

	"github.com/goserg/campusevents/internal/domain"
	"github.com/goserg/campusevents/internal/notify"
	"github.com/goserg/campusevents/internal/storage"
	"github.com/goserg/campusevents/internal/uploads"

	"github.com/sirupsen/logrus"
)

const dashboardUpcomingLimit = 10

type EventService struct {
	storage  storage.Storage
	uploads  uploads.Store
	notifier notify.Notifier
	log      *logrus.Entry
	now      func() time.Time
}

func New(st storage.Storage, up uploads.Store, n notify.Notifier, l *logrus.Logger) *EventService {
	return &EventService{
		storage:  st,
		uploads:  up,
		notifier: n,
		log: l.WithFields(map[string]interface{}{
			"from": "event-service",
		}),
		now: time.Now,
	}
}

func (s *EventService) today() string {
	return s.now().Format(domain.DateLayout)
}

// fail keeps domain errors as they are and hides everything else behind
// domain.ErrStorage after logging it.
func (s *EventService) fail(op string, err error) error {
	if domain.IsKnown(err) {
		return err
	}
	s.log.WithError(err).WithField("op", op).Error("storage failure")
	return domain.ErrStorage
}

func (s *EventService) notify(ctx context.Context, text string) {
	s.notifier.Notify(ctx, text)
}
