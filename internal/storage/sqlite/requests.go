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

const materializeRequest = `
INSERT INTO events (title, description, date, time, location, capacity, status, created_by, image_url)
SELECT title, description, proposed_date, proposed_time, location, capacity, #status, requested_by, image_url
FROM event_requests
WHERE id = #requestID`

func (s *Storage) CreateRequest(ctx context.Context, userID uuid.UUID, details domain.EventDetails) (int64, error) {
	res, err := table.EventRequests.INSERT(
		table.EventRequests.Title,
		table.EventRequests.Description,
		table.EventRequests.ProposedDate,
		table.EventRequests.ProposedTime,
		table.EventRequests.Location,
		table.EventRequests.Capacity,
		table.EventRequests.RequestedBy,
		table.EventRequests.Status,
		table.EventRequests.ImageURL,
	).VALUES(
		details.Title,
		details.Description,
		details.Date,
		details.Time,
		details.Location,
		details.Capacity,
		userID.String(),
		string(domain.RequestPending),
		nullable(details.Image),
	).ExecContext(ctx, s.db)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	return res.LastInsertId()
}

func selectRequests(where sqlite.BoolExpression) sqlite.SelectStatement {
	return sqlite.SELECT(
		table.EventRequests.ID,
		table.EventRequests.Title,
		table.EventRequests.Description,
		table.EventRequests.ProposedDate,
		table.EventRequests.ProposedTime,
		table.EventRequests.Location,
		table.EventRequests.Capacity,
		table.EventRequests.RequestedBy,
		table.Users.Username,
		table.EventRequests.Status,
		table.EventRequests.AdminRemarks,
		table.EventRequests.ImageURL,
		table.EventRequests.CreatedAt,
	).
		FROM(table.EventRequests.INNER_JOIN(
			table.Users,
			table.Users.ID.EQ(table.EventRequests.RequestedBy),
		)).
		WHERE(where).
		ORDER_BY(table.EventRequests.CreatedAt.DESC(), table.EventRequests.ID.DESC())
}

func scanRequests(dest *[]storage.RequestRow) func(rows *sql.Rows) error {
	return func(rows *sql.Rows) error {
		var (
			r     storage.RequestRow
			image sql.NullString
		)
		err := rows.Scan(
			&r.ID,
			&r.Title,
			&r.Description,
			&r.ProposedDate,
			&r.ProposedTime,
			&r.Location,
			&r.Capacity,
			&r.RequestedBy,
			&r.RequesterName,
			&r.Status,
			&r.AdminRemarks,
			&image,
			&r.CreatedAt,
		)
		if err != nil {
			return err
		}
		r.Image = image.String
		*dest = append(*dest, r)
		return nil
	}
}

func (s *Storage) ListUserRequests(ctx context.Context, userID uuid.UUID) ([]storage.RequestRow, error) {
	var requests []storage.RequestRow
	stmt := selectRequests(table.EventRequests.RequestedBy.EQ(sqlite.UUID(userID)))
	if err := queryRows(ctx, s.db, stmt, scanRequests(&requests)); err != nil {
		return nil, fmt.Errorf("list requests of %s: %w", userID, err)
	}
	return requests, nil
}

func (s *Storage) ListRequests(ctx context.Context) ([]storage.RequestRow, error) {
	var requests []storage.RequestRow
	if err := queryRows(ctx, s.db, selectRequests(sqlite.Bool(true)), scanRequests(&requests)); err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return requests, nil
}

func (s *Storage) ReviewRequest(ctx context.Context, id int64, status domain.RequestStatus, remarks string) (int64, error) {
	return inTx(ctx, s.db, func(tx *sql.Tx) (int64, error) {
		res, err := table.EventRequests.UPDATE(
			table.EventRequests.Status,
			table.EventRequests.AdminRemarks,
		).SET(
			string(status),
			remarks,
		).
			WHERE(
				table.EventRequests.ID.EQ(sqlite.Int(id)).
					AND(table.EventRequests.Status.EQ(sqlite.String(string(domain.RequestPending)))),
			).
			ExecContext(ctx, tx)
		if err != nil {
			return 0, fmt.Errorf("update request %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		if n == 0 {
			var found int
			err = queryRow(ctx, tx,
				sqlite.SELECT(sqlite.COUNT(sqlite.STAR)).
					FROM(table.EventRequests).
					WHERE(table.EventRequests.ID.EQ(sqlite.Int(id))),
				&found,
			)
			if err != nil {
				return 0, fmt.Errorf("check request %d: %w", id, err)
			}
			if found == 0 {
				return 0, domain.ErrNotFound
			}
			return 0, domain.ErrAlreadyReviewed
		}
		if status != domain.RequestApproved {
			return 0, nil
		}
		res, err = sqlite.RawStatement(materializeRequest, sqlite.RawArgs{
			"#status":    string(domain.EventPublished),
			"#requestID": id,
		}).ExecContext(ctx, tx)
		if err != nil {
			return 0, fmt.Errorf("create event from request %d: %w", id, err)
		}
		return res.LastInsertId()
	})
}
