package permission

import (
	"context"
	"fmt"

	"github.com/oysterbuild/backend/internal/domain/rbac"
	"github.com/oysterbuild/backend/internal/shared/constants"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

type roleSeed struct {
	name        string
	description string
	permissions []string
}

var defaultRolePermissions = []roleSeed{
	{
		name: constants.RoleProjectOwner,
		description: "Full authority over a project. Can manage the project lifecycle, " +
			"reports, updates, files, approvals, and dashboards.",
		permissions: []string{
			constants.PermManageProject,
			constants.PermViewProject,
			constants.PermManageReport,
			constants.PermViewReport,
			constants.PermExportReport,
			constants.PermSubmitUpdate,
			constants.PermManageUpdate,
			constants.PermManageFiles,
			constants.PermViewProjectPayment,
			constants.PermManageProjectPayment,
		},
	},
	{
		name: constants.RoleReportOfficer,
		description: "Handles project reporting and documentation. Can prepare reports, " +
			"submit updates, upload evidence, and export reports, but has no " +
			"approval or project control authority.",
		permissions: []string{
			constants.PermManageReport,
			constants.PermExportReport,
			constants.PermSubmitUpdate,
			constants.PermManageFiles,
		},
	},
}

// Seeder installs the default project roles and their permission grants.
// Seeding is idempotent and safe to run on every startup.
type Seeder struct {
	roleRepo     rbac.RoleRepository
	permRepo     rbac.PermissionRepository
	rolePermRepo rbac.RolePermissionRepository
	logger       logger.Interface
}

func NewSeeder(roleRepo rbac.RoleRepository, permRepo rbac.PermissionRepository,
	rolePermRepo rbac.RolePermissionRepository, logger logger.Interface) *Seeder {
	return &Seeder{
		roleRepo:     roleRepo,
		permRepo:     permRepo,
		rolePermRepo: rolePermRepo,
		logger:       logger,
	}
}

func (s *Seeder) Seed(ctx context.Context) error {
	for _, seed := range defaultRolePermissions {
		role, err := s.ensureRole(ctx, seed.name, seed.description)
		if err != nil {
			return err
		}

		for _, permName := range seed.permissions {
			perm, err := s.ensurePermission(ctx, permName)
			if err != nil {
				return err
			}
			if err := s.ensureGrant(ctx, role.ID, perm.ID); err != nil {
				return err
			}
		}
		s.logger.Infow("seeded role", "role", seed.name, "permissions", len(seed.permissions))
	}
	return nil
}

func (s *Seeder) ensureRole(ctx context.Context, name, description string) (*rbac.Role, error) {
	role, err := s.roleRepo.GetByName(ctx, name)
	if err == nil && role != nil {
		return role, nil
	}

	role = &rbac.Role{Name: name, Description: description}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, fmt.Errorf("failed to seed role %s: %w", name, err)
	}
	return role, nil
}

func (s *Seeder) ensurePermission(ctx context.Context, name string) (*rbac.Permission, error) {
	perm, err := s.permRepo.GetByName(ctx, name)
	if err == nil && perm != nil {
		return perm, nil
	}

	perm = &rbac.Permission{Name: name}
	if err := s.permRepo.Create(ctx, perm); err != nil {
		return nil, fmt.Errorf("failed to seed permission %s: %w", name, err)
	}
	return perm, nil
}

func (s *Seeder) ensureGrant(ctx context.Context, roleID, permissionID uint) error {
	exists, err := s.rolePermRepo.Exists(ctx, roleID, permissionID)
	if err != nil {
		return fmt.Errorf("failed to check role permission: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.rolePermRepo.Create(ctx, &rbac.RolePermission{RoleID: roleID, PermissionID: permissionID}); err != nil {
		return fmt.Errorf("failed to grant permission: %w", err)
	}
	return nil
}
