package project

import "time"

// Member joins a user to a project under a project-scoped role. Members are
// deactivated rather than deleted so audit history survives.
type Member struct {
	ID        uint
	ProjectID uint
	UserID    uint
	RoleID    uint
	IsActive  bool
	JoinedAt  time.Time
}
