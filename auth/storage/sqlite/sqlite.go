package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/goserg/campusevents/auth/storage"
	"github.com/goserg/campusevents/auth/users"
	"github.com/goserg/campusevents/gen/model"
	"github.com/goserg/campusevents/gen/table"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ storage.AuthStorage = (*Storage)(nil)

func New(db *sql.DB, l *logrus.Logger) *Storage {
	log := l.WithFields(map[string]interface{}{
		"from": "auth-storage",
	})
	return &Storage{
		db:  db,
		log: log,
	}
}

func (s *Storage) GetUser(ctx context.Context, id uuid.UUID) (users.User, error) {
	var dbUser model.Users
	err := table.Users.
		SELECT(table.Users.AllColumns.Except(table.Users.PasswordHash)).
		FROM(table.Users).
		WHERE(table.Users.ID.EQ(sqlite.UUID(id))).
		QueryContext(ctx, s.db, &dbUser)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return users.User{}, sql.ErrNoRows
		}
		return users.User{}, err
	}
	return convertUserToModel(dbUser)
}

func (s *Storage) GetUserSecret(ctx context.Context, name string) (users.User, users.Secret, error) {
	var dbUser model.Users
	err := table.Users.
		SELECT(table.Users.AllColumns).
		FROM(table.Users).
		WHERE(table.Users.Username.EQ(sqlite.String(name))).
		QueryContext(ctx, s.db, &dbUser)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return users.User{}, users.Secret{}, sql.ErrNoRows
		}
		return users.User{}, users.Secret{}, err
	}
	u, err := convertUserToModel(dbUser)
	if err != nil {
		return users.User{}, users.Secret{}, err
	}
	return u, users.Secret{PasswordHash: []byte(dbUser.PasswordHash)}, nil
}

func (s *Storage) CreateUser(ctx context.Context, user users.User, secret users.Secret) error {
	return createUser(ctx, s.db, user, secret)
}

func createUser(ctx context.Context, db qrm.Executable, user users.User, secret users.Secret) error {
	dbUser := model.Users{
		ID:           user.ID.String(),
		Username:     user.Name,
		Email:        user.Email,
		PasswordHash: string(secret.PasswordHash),
		Role:         string(user.Role),
		CreatedAt:    time.Now().UTC(),
	}
	_, err := table.Users.INSERT(table.Users.AllColumns).MODEL(dbUser).ExecContext(ctx, db)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return storage.ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *Storage) UpsertAdmin(ctx context.Context, user users.User, secret users.Secret) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	res, err := table.Users.UPDATE(
		table.Users.Email,
		table.Users.PasswordHash,
		table.Users.Role,
	).SET(
		user.Email,
		string(secret.PasswordHash),
		string(users.RoleAdmin),
	).
		WHERE(table.Users.Username.EQ(sqlite.String(user.Name))).
		ExecContext(ctx, tx)
	if err != nil {
		return false, errors.Join(err, tx.Rollback())
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Join(err, tx.Rollback())
	}
	if n > 0 {
		s.log.WithField("user", user.Name).Info("admin account updated")
		return false, tx.Commit()
	}
	user.Role = users.RoleAdmin
	if err := createUser(ctx, tx, user, secret); err != nil {
		return false, errors.Join(err, tx.Rollback())
	}
	s.log.WithField("user", user.Name).Info("admin account created")
	return true, tx.Commit()
}

func convertUserToModel(user model.Users) (users.User, error) {
	id, err := uuid.Parse(user.ID)
	if err != nil {
		return users.User{}, err
	}
	return users.User{
		ID:           id,
		Name:         user.Username,
		Email:        user.Email,
		Role:         users.Role(user.Role),
		RegisteredAt: user.CreatedAt,
	}, nil
}
