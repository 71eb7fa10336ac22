package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/oysterbuild/backend/internal/domain/rbac"
	"github.com/oysterbuild/backend/internal/infrastructure/persistence/mappers"
	"github.com/oysterbuild/backend/internal/infrastructure/persistence/models"
	"github.com/oysterbuild/backend/internal/shared/constants"
	"github.com/oysterbuild/backend/internal/shared/db"
	"github.com/oysterbuild/backend/internal/shared/errors"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Create(ctx context.Context, role *rbac.Role) error {
	model := mappers.RoleToModel(role)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}

	role.ID = model.ID
	return nil
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*rbac.Role, error) {
	var model models.RoleModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("name = ?", name).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("role not found")
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	return mappers.RoleToDomain(&model), nil
}

func (r *RoleRepository) List(ctx context.Context) ([]*rbac.Role, error) {
	var roleModels []models.RoleModel

	if err := db.GetTxFromContext(ctx, r.db).
		Order("id ASC").
		Find(&roleModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	roles := make([]*rbac.Role, 0, len(roleModels))
	for i := range roleModels {
		roles = append(roles, mappers.RoleToDomain(&roleModels[i]))
	}
	return roles, nil
}

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) Create(ctx context.Context, perm *rbac.Permission) error {
	model := mappers.PermissionToModel(perm)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create permission: %w", err)
	}

	perm.ID = model.ID
	return nil
}

func (r *PermissionRepository) GetByName(ctx context.Context, name string) (*rbac.Permission, error) {
	var model models.PermissionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("name = ?", name).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("permission not found")
		}
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}

	return mappers.PermissionToDomain(&model), nil
}

func (r *PermissionRepository) List(ctx context.Context) ([]*rbac.Permission, error) {
	var permModels []models.PermissionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Order("id ASC").
		Find(&permModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}

	perms := make([]*rbac.Permission, 0, len(permModels))
	for i := range permModels {
		perms = append(perms, mappers.PermissionToDomain(&permModels[i]))
	}
	return perms, nil
}

type RolePermissionRepository struct {
	db *gorm.DB
}

func NewRolePermissionRepository(db *gorm.DB) *RolePermissionRepository {
	return &RolePermissionRepository{db: db}
}

func (r *RolePermissionRepository) Create(ctx context.Context, rp *rbac.RolePermission) error {
	model := &models.RolePermissionModel{
		RoleID:       rp.RoleID,
		PermissionID: rp.PermissionID,
		CreatedAt:    rp.CreatedAt,
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create role permission: %w", err)
	}

	rp.ID = model.ID
	return nil
}

func (r *RolePermissionRepository) Exists(ctx context.Context, roleID, permissionID uint) (bool, error) {
	var count int64

	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.RolePermissionModel{}).
		Where("role_id = ? AND permission_id = ?", roleID, permissionID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check role permission: %w", err)
	}
	return count > 0, nil
}

// HasProjectPermission resolves a user's project permission in one query:
// active membership -> member role -> granted permissions.
func (r *RolePermissionRepository) HasProjectPermission(ctx context.Context, userID, projectID uint, permission string) (bool, error) {
	var count int64

	err := db.GetTxFromContext(ctx, r.db).
		Table(constants.TableProjectMembers+" AS pm").
		Joins(fmt.Sprintf("JOIN %s AS rp ON rp.role_id = pm.role_id", constants.TableRolePermissions)).
		Joins(fmt.Sprintf("JOIN %s AS p ON p.id = rp.permission_id", constants.TablePermissions)).
		Where("pm.project_id = ? AND pm.user_id = ? AND pm.is_active = ? AND p.name = ?",
			projectID, userID, true, permission).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to resolve project permission: %w", err)
	}
	return count > 0, nil
}
