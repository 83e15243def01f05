package service

import (
	"context"
	"testing"

	authsqlite "github.com/goserg/campusevents/auth/storage/sqlite"
	"github.com/goserg/campusevents/auth/users"
	"github.com/goserg/campusevents/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T, cfg Config) *Service {
	t.Helper()
	db, err := storage.Open(storage.MemorySource(uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	l := logrus.New()
	if cfg.Expiration == "" {
		cfg.Expiration = "1h"
	}
	cfg.Token = "test-secret"
	cfg.BcryptCost = bcrypt.MinCost
	s, err := New(context.Background(), cfg, authsqlite.New(db, l), l)
	require.NoError(t, err)
	return s
}

func TestService_SignUpAndLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, Config{})

	user, err := s.SignUp(ctx, "Alice", "alice@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Name)
	assert.Equal(t, users.RoleMember, user.Role)

	_, err = s.SignUp(ctx, "alice", "other@example.com", "whatever1")
	assert.ErrorIs(t, err, ErrUserExists)
	_, err = s.SignUp(ctx, "bob", "alice@example.com", "whatever1")
	assert.ErrorIs(t, err, ErrUserExists)

	logged, err := s.Login(ctx, "ALICE", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.False(t, logged.IsAdmin())

	_, err = s.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login(ctx, "nobody", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_TokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, Config{})
	user, err := s.SignUp(ctx, "carol", "carol@example.com", "secret-pass")
	require.NoError(t, err)

	cookie, err := s.GenerateJWTCookie(user.ID)
	require.NoError(t, err)
	assert.Equal(t, CookieName, cookie.Name)
	assert.True(t, cookie.HTTPOnly)

	got, err := s.Authenticate(ctx, cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "carol@example.com", got.Email)

	guest, err := s.Authenticate(ctx, "")
	require.NoError(t, err)
	assert.False(t, guest.IsAuthenticated())

	_, err = s.Authenticate(ctx, "garbage")
	assert.Error(t, err)

	other := newTestService(t, Config{})
	other.cfg.Token = "another-secret"
	_, err = other.Authenticate(ctx, cookie.Value)
	assert.Error(t, err)
}

func TestService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, Config{
		Admin: Admin{Name: "Root", Email: "root@example.com", Password: "first-pass"},
	})

	admin, err := s.Login(ctx, "root", "first-pass")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	require.NoError(t, s.EnsureAdmin(ctx, "root", "admin@example.com", "second-pass"))
	_, err = s.Login(ctx, "root", "first-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	again, err := s.Login(ctx, "root", "second-pass")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)
	assert.Equal(t, "admin@example.com", again.Email)

	member, err := s.SignUp(ctx, "dave", "dave@example.com", "dave-pass")
	require.NoError(t, err)
	require.NoError(t, s.EnsureAdmin(ctx, "dave", "dave@example.com", "dave-pass"))
	promoted, err := s.Login(ctx, "dave", "dave-pass")
	require.NoError(t, err)
	assert.Equal(t, member.ID, promoted.ID)
	assert.True(t, promoted.IsAdmin())

	assert.Error(t, s.EnsureAdmin(ctx, "", "x@example.com", "pass"))
}
