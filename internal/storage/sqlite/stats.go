package sqlite

import (
	"context"
	"fmt"

	"github.com/goserg/campusevents/gen/table"
	"github.com/goserg/campusevents/internal/domain"

	"github.com/go-jet/jet/v2/sqlite"
)

const publishedEventCounts = `
SELECT COUNT(*),
       COUNT(CASE WHEN date >= #upcomingFrom THEN 1 END),
       COUNT(CASE WHEN date < #pastBefore THEN 1 END)
FROM events
WHERE status = #published`

func (s *Storage) DashboardStats(ctx context.Context, today string) (domain.DashboardStats, error) {
	var stats domain.DashboardStats
	err := queryRow(ctx, s.db,
		sqlite.RawStatement(publishedEventCounts, sqlite.RawArgs{
			"#upcomingFrom": today,
			"#pastBefore":   today,
			"#published":    string(domain.EventPublished),
		}),
		&stats.TotalEvents, &stats.UpcomingEvents, &stats.PastEvents,
	)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("count events: %w", err)
	}
	err = queryRow(ctx, s.db,
		sqlite.SELECT(sqlite.COUNT(sqlite.STAR)).
			FROM(table.EventRequests).
			WHERE(table.EventRequests.Status.EQ(sqlite.String(string(domain.RequestPending)))),
		&stats.PendingRequests,
	)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("count pending requests: %w", err)
	}
	return stats, nil
}
