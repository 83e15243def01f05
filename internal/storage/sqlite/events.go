package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goserg/campusevents/gen/table"
	"github.com/goserg/campusevents/internal/domain"
	"github.com/goserg/campusevents/internal/storage"

	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
)

var eventColumns = sqlite.ProjectionList{
	table.Events.ID,
	table.Events.Title,
	table.Events.Description,
	table.Events.Date,
	table.Events.Time,
	table.Events.Location,
	table.Events.Capacity,
	table.Events.Status,
	table.Events.CreatedBy,
	table.Events.ImageURL,
	table.Events.CreatedAt,
}

type eventScan struct {
	row   storage.EventRow
	image sql.NullString
}

func (e *eventScan) dest() []any {
	return []any{
		&e.row.ID,
		&e.row.Title,
		&e.row.Description,
		&e.row.Date,
		&e.row.Time,
		&e.row.Location,
		&e.row.Capacity,
		&e.row.Status,
		&e.row.CreatedBy,
		&e.image,
		&e.row.CreatedAt,
	}
}

func (e *eventScan) result() storage.EventRow {
	e.row.Image = e.image.String
	return e.row
}

// selectEventsWithCount selects events together with the number of
// registrations for each of them.
func selectEventsWithCount(where sqlite.BoolExpression) sqlite.SelectStatement {
	return sqlite.SELECT(
		eventColumns,
		sqlite.COUNT(table.EventRegistrations.ID).AS("registered_count"),
	).
		FROM(table.Events.LEFT_JOIN(
			table.EventRegistrations,
			table.EventRegistrations.EventID.EQ(table.Events.ID),
		)).
		WHERE(where).
		GROUP_BY(table.Events.ID)
}

func scanEventsWithCount(dest *[]storage.EventRow) func(rows *sql.Rows) error {
	return func(rows *sql.Rows) error {
		var e eventScan
		if err := rows.Scan(append(e.dest(), &e.row.RegisteredCount)...); err != nil {
			return err
		}
		*dest = append(*dest, e.result())
		return nil
	}
}

func (s *Storage) ListUpcomingEvents(ctx context.Context, today string, limit int) ([]storage.EventRow, error) {
	stmt := selectEventsWithCount(
		table.Events.Status.EQ(sqlite.String(string(domain.EventPublished))).
			AND(table.Events.Date.GT_EQ(sqlite.DateExp(sqlite.String(today)))),
	).
		ORDER_BY(table.Events.Date.ASC(), table.Events.Time.ASC())
	if limit > 0 {
		stmt = stmt.LIMIT(int64(limit))
	}
	var events []storage.EventRow
	if err := queryRows(ctx, s.db, stmt, scanEventsWithCount(&events)); err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return events, nil
}

func (s *Storage) ListAllEvents(ctx context.Context) ([]storage.EventRow, error) {
	stmt := selectEventsWithCount(sqlite.Bool(true)).
		ORDER_BY(table.Events.Date.DESC(), table.Events.Time.DESC())
	var events []storage.EventRow
	if err := queryRows(ctx, s.db, stmt, scanEventsWithCount(&events)); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *Storage) GetEvent(ctx context.Context, id int64) (storage.EventRow, error) {
	return getEvent(ctx, s.db, id)
}

func getEvent(ctx context.Context, q querier, id int64) (storage.EventRow, error) {
	stmt := selectEventsWithCount(table.Events.ID.EQ(sqlite.Int(id)))
	var e eventScan
	err := queryRow(ctx, q, stmt, append(e.dest(), &e.row.RegisteredCount)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.EventRow{}, domain.ErrNotFound
		}
		return storage.EventRow{}, fmt.Errorf("get event %d: %w", id, err)
	}
	return e.result(), nil
}

func (s *Storage) CreateEvent(
	ctx context.Context,
	details domain.EventDetails,
	status domain.EventStatus,
	createdBy uuid.UUID,
) (int64, error) {
	res, err := table.Events.INSERT(
		table.Events.Title,
		table.Events.Description,
		table.Events.Date,
		table.Events.Time,
		table.Events.Location,
		table.Events.Capacity,
		table.Events.Status,
		table.Events.CreatedBy,
		table.Events.ImageURL,
	).VALUES(
		details.Title,
		details.Description,
		details.Date,
		details.Time,
		details.Location,
		details.Capacity,
		string(status),
		createdBy.String(),
		nullable(details.Image),
	).ExecContext(ctx, s.db)
	if err != nil {
		return 0, fmt.Errorf("create event: %w", err)
	}
	return res.LastInsertId()
}

func (s *Storage) UpdateEvent(ctx context.Context, id int64, details domain.EventDetails, status domain.EventStatus) error {
	res, err := table.Events.UPDATE(
		table.Events.Title,
		table.Events.Description,
		table.Events.Date,
		table.Events.Time,
		table.Events.Location,
		table.Events.Capacity,
		table.Events.Status,
	).SET(
		details.Title,
		details.Description,
		details.Date,
		details.Time,
		details.Location,
		details.Capacity,
		string(status),
	).
		WHERE(table.Events.ID.EQ(sqlite.Int(id))).
		ExecContext(ctx, s.db)
	if err != nil {
		return fmt.Errorf("update event %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteEvent removes the event and every registration for it.
func (s *Storage) DeleteEvent(ctx context.Context, id int64) error {
	return inTxSimple(ctx, s.db, func(tx *sql.Tx) error {
		_, err := table.EventRegistrations.DELETE().
			WHERE(table.EventRegistrations.EventID.EQ(sqlite.Int(id))).
			ExecContext(ctx, tx)
		if err != nil {
			return fmt.Errorf("delete registrations of event %d: %w", id, err)
		}
		res, err := table.Events.DELETE().
			WHERE(table.Events.ID.EQ(sqlite.Int(id))).
			ExecContext(ctx, tx)
		if err != nil {
			return fmt.Errorf("delete event %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (s *Storage) ListRegistrants(ctx context.Context, eventID int64) ([]storage.RegistrantRow, error) {
	stmt := sqlite.SELECT(
		table.Users.ID,
		table.Users.Username,
		table.Users.Email,
		table.EventRegistrations.RegistrationDate,
	).
		FROM(table.EventRegistrations.INNER_JOIN(
			table.Users,
			table.Users.ID.EQ(table.EventRegistrations.UserID),
		)).
		WHERE(table.EventRegistrations.EventID.EQ(sqlite.Int(eventID))).
		ORDER_BY(table.EventRegistrations.RegistrationDate.DESC(), table.EventRegistrations.ID.DESC())
	var registrants []storage.RegistrantRow
	err := queryRows(ctx, s.db, stmt, func(rows *sql.Rows) error {
		var r storage.RegistrantRow
		if err := rows.Scan(&r.UserID, &r.Username, &r.Email, &r.RegisteredAt); err != nil {
			return err
		}
		registrants = append(registrants, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list registrants of event %d: %w", eventID, err)
	}
	return registrants, nil
}
