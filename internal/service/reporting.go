package service

import (
	"context"

	"github.com/goserg/campusevents/internal/domain"
)

func (s *EventService) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	stats, err := s.storage.DashboardStats(ctx, s.today())
	if err != nil {
		return domain.DashboardStats{}, s.fail("dashboard stats", err)
	}
	return stats, nil
}

// Dashboard returns the counters together with the next upcoming events.
func (s *EventService) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	stats, err := s.DashboardStats(ctx)
	if err != nil {
		return domain.Dashboard{}, err
	}
	rows, err := s.storage.ListUpcomingEvents(ctx, s.today(), dashboardUpcomingLimit)
	if err != nil {
		return domain.Dashboard{}, s.fail("dashboard events", err)
	}
	return domain.Dashboard{
		Stats:    stats,
		Upcoming: s.convertEvents(rows),
	}, nil
}
