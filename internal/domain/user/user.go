// Package user holds the identity read model. Credentials and token issuance
// live outside this service; handlers receive an already-authenticated
// principal and this package only resolves profile and role data.
package user

import (
	"context"
	"time"
)

// User is an authenticated account. Role is global (USER or SUPER_ADMIN);
// project-scoped roles are assigned through project membership.
type User struct {
	ID        uint
	UID       string
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Role      string
	AvatarURL string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns the display name used in notification templates.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type Repository interface {
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByUID(ctx context.Context, uid string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
}
