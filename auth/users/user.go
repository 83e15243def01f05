package users

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
	// RoleGuest is never stored. It names the anonymous visitor in access rules.
	RoleGuest Role = "guest"
)

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Role         Role
	RegisteredAt time.Time
}

func (u User) IsAuthenticated() bool {
	return u.ID != uuid.Nil
}

func (u User) IsAdmin() bool {
	return u.IsAuthenticated() && u.Role == RoleAdmin
}

// EffectiveRole is the role access rules are checked against.
func (u User) EffectiveRole() Role {
	if !u.IsAuthenticated() {
		return RoleGuest
	}
	return u.Role
}

type Secret struct {
	PasswordHash []byte
}
