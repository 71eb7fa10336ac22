// Package rbac defines the project-scoped role and permission tables. Roles
// and permissions are reference data seeded at startup; the permission
// resolver joins them against project membership per request.
package rbac

import (
	"context"
	"time"
)

type Role struct {
	ID          uint
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Permission struct {
	ID          uint
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type RolePermission struct {
	ID           uint
	RoleID       uint
	PermissionID uint
	CreatedAt    time.Time
}

type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	GetByName(ctx context.Context, name string) (*Role, error)
	List(ctx context.Context) ([]*Role, error)
}

type PermissionRepository interface {
	Create(ctx context.Context, perm *Permission) error
	GetByName(ctx context.Context, name string) (*Permission, error)
	List(ctx context.Context) ([]*Permission, error)
}

type RolePermissionRepository interface {
	Create(ctx context.Context, rp *RolePermission) error
	Exists(ctx context.Context, roleID, permissionID uint) (bool, error)
	// HasProjectPermission reports whether the user holds the named
	// permission on the project through an active membership. The join is
	// member -> role -> role_permission -> permission.
	HasProjectPermission(ctx context.Context, userID, projectID uint, permission string) (bool, error)
}
