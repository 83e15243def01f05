package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goserg/campusevents/gen/table"
	"github.com/goserg/campusevents/internal/domain"
	"github.com/goserg/campusevents/internal/storage"

	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
)

// registerIfSeatLeft inserts the registration only while the event has fewer
// registrations than its capacity.
const registerIfSeatLeft = `
INSERT INTO event_registrations (event_id, user_id)
SELECT events.id, #userID
FROM events
WHERE events.id = #eventID
  AND (SELECT COUNT(*) FROM event_registrations WHERE event_registrations.event_id = events.id) < events.capacity`

func (s *Storage) Register(ctx context.Context, eventID int64, userID uuid.UUID) error {
	return inTxSimple(ctx, s.db, func(tx *sql.Tx) error {
		res, err := sqlite.RawStatement(registerIfSeatLeft, sqlite.RawArgs{
			"#userID":  userID.String(),
			"#eventID": eventID,
		}).ExecContext(ctx, tx)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrAlreadyRegistered
			}
			return fmt.Errorf("register user %s for event %d: %w", userID, eventID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		var events int
		err = queryRow(ctx, tx,
			sqlite.SELECT(sqlite.COUNT(sqlite.STAR)).
				FROM(table.Events).
				WHERE(table.Events.ID.EQ(sqlite.Int(eventID))),
			&events,
		)
		if err != nil {
			return fmt.Errorf("check event %d: %w", eventID, err)
		}
		if events == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrFull
	})
}

func (s *Storage) CancelRegistration(ctx context.Context, eventID int64, userID uuid.UUID) error {
	res, err := table.EventRegistrations.DELETE().
		WHERE(
			table.EventRegistrations.EventID.EQ(sqlite.Int(eventID)).
				AND(table.EventRegistrations.UserID.EQ(sqlite.UUID(userID))),
		).
		ExecContext(ctx, s.db)
	if err != nil {
		return fmt.Errorf("cancel registration of %s for event %d: %w", userID, eventID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotRegistered
	}
	return nil
}

func (s *Storage) IsRegistered(ctx context.Context, eventID int64, userID uuid.UUID) (bool, error) {
	var n int
	err := queryRow(ctx, s.db,
		sqlite.SELECT(sqlite.COUNT(sqlite.STAR)).
			FROM(table.EventRegistrations).
			WHERE(
				table.EventRegistrations.EventID.EQ(sqlite.Int(eventID)).
					AND(table.EventRegistrations.UserID.EQ(sqlite.UUID(userID))),
			),
		&n,
	)
	if err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return n > 0, nil
}

func (s *Storage) ListUserRegistrations(ctx context.Context, userID uuid.UUID) ([]storage.RegistrationRow, error) {
	stmt := sqlite.SELECT(
		eventColumns,
		table.EventRegistrations.RegistrationDate,
	).
		FROM(table.Events.INNER_JOIN(
			table.EventRegistrations,
			table.EventRegistrations.EventID.EQ(table.Events.ID),
		)).
		WHERE(table.EventRegistrations.UserID.EQ(sqlite.UUID(userID))).
		ORDER_BY(table.Events.Date.ASC(), table.Events.Time.ASC())
	var registrations []storage.RegistrationRow
	err := queryRows(ctx, s.db, stmt, func(rows *sql.Rows) error {
		var (
			e  eventScan
			at any
		)
		if err := rows.Scan(append(e.dest(), &at)...); err != nil {
			return err
		}
		registrations = append(registrations, storage.RegistrationRow{
			Event:        e.result(),
			RegisteredAt: at,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list registrations of %s: %w", userID, err)
	}
	return registrations, nil
}
