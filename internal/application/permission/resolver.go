// Package permission resolves project-scoped authorization questions.
package permission

import (
	"context"
	"fmt"

	"github.com/oysterbuild/backend/internal/domain/rbac"
	"github.com/oysterbuild/backend/internal/domain/user"
	"github.com/oysterbuild/backend/internal/shared/constants"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

// Resolver answers "can user U perform action A on project P". Pure
// allow-list: no caching, no deny-overrides, re-evaluated per call.
type Resolver struct {
	userRepo     user.Repository
	rolePermRepo rbac.RolePermissionRepository
	logger       logger.Interface
}

func NewResolver(userRepo user.Repository, rolePermRepo rbac.RolePermissionRepository, logger logger.Interface) *Resolver {
	return &Resolver{
		userRepo:     userRepo,
		rolePermRepo: rolePermRepo,
		logger:       logger,
	}
}

// HasProjectPermission reports whether the user may perform the named action
// on the project. Global SUPER_ADMINs bypass project scoping entirely.
func (r *Resolver) HasProjectPermission(ctx context.Context, userID, projectID uint, permission string) (bool, error) {
	u, err := r.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to get user: %w", err)
	}

	if u.Role == constants.UserRoleSuperAdmin {
		return true, nil
	}

	allowed, err := r.rolePermRepo.HasProjectPermission(ctx, userID, projectID, permission)
	if err != nil {
		return false, fmt.Errorf("failed to resolve project permission: %w", err)
	}
	return allowed, nil
}
