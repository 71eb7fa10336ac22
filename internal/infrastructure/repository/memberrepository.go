package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/infrastructure/persistence/mappers"
	"github.com/oysterbuild/backend/internal/infrastructure/persistence/models"
	"github.com/oysterbuild/backend/internal/shared/db"
	"github.com/oysterbuild/backend/internal/shared/errors"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(ctx context.Context, m *project.Member) error {
	model := mappers.MemberToModel(m)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create project member: %w", err)
	}

	m.ID = model.ID
	return nil
}

func (r *MemberRepository) GetActive(ctx context.Context, projectID, userID uint) (*project.Member, error) {
	var model models.ProjectMemberModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("project_id = ? AND user_id = ? AND is_active = ?", projectID, userID, true).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("project member not found")
		}
		return nil, fmt.Errorf("failed to get project member: %w", err)
	}

	return mappers.MemberToDomain(&model), nil
}

func (r *MemberRepository) IsActiveMember(ctx context.Context, projectID, userID uint) (bool, error) {
	var count int64

	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ProjectMemberModel{}).
		Where("project_id = ? AND user_id = ? AND is_active = ?", projectID, userID, true).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check project membership: %w", err)
	}
	return count > 0, nil
}

func (r *MemberRepository) ListByProjectID(ctx context.Context, projectID uint) ([]*project.Member, error) {
	var memberModels []models.ProjectMemberModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("project_id = ? AND is_active = ?", projectID, true).
		Order("joined_at ASC").
		Find(&memberModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}

	members := make([]*project.Member, 0, len(memberModels))
	for i := range memberModels {
		members = append(members, mappers.MemberToDomain(&memberModels[i]))
	}
	return members, nil
}

func (r *MemberRepository) Deactivate(ctx context.Context, projectID, userID uint) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ProjectMemberModel{}).
		Where("project_id = ? AND user_id = ? AND is_active = ?", projectID, userID, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate project member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("project member not found")
	}
	return nil
}
