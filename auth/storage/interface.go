package storage

import (
	"context"
	"errors"

	"github.com/goserg/campusevents/auth/users"

	"github.com/google/uuid"
)

var ErrDuplicate = errors.New("username or email already taken")

type AuthStorage interface {
	CreateUser(ctx context.Context, user users.User, secret users.Secret) error
	GetUser(ctx context.Context, id uuid.UUID) (users.User, error)
	GetUserSecret(ctx context.Context, name string) (users.User, users.Secret, error)
	// UpsertAdmin creates the user or resets email, secret and role of an
	// existing user with the same name. It reports whether a user was created.
	UpsertAdmin(ctx context.Context, user users.User, secret users.Secret) (bool, error)
}
