package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oysterbuild/backend/internal/domain/billing"
	"github.com/oysterbuild/backend/internal/infrastructure/persistence/mappers"
	"github.com/oysterbuild/backend/internal/infrastructure/persistence/models"
	"github.com/oysterbuild/backend/internal/shared/db"
	"github.com/oysterbuild/backend/internal/shared/errors"
)

type UsageCountRepository struct {
	db *gorm.DB
}

func NewUsageCountRepository(db *gorm.DB) *UsageCountRepository {
	return &UsageCountRepository{db: db}
}

// GetForUpdate locks the counter row so concurrent increments for the same
// project and tag serialize instead of losing updates.
func (r *UsageCountRepository) GetForUpdate(ctx context.Context, projectID uint, packageTag string) (*billing.UsageCount, error) {
	var model models.UsageCountModel

	if err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("project_id = ? AND package_tag = ?", projectID, packageTag).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("usage count not found")
		}
		return nil, fmt.Errorf("failed to lock usage count: %w", err)
	}

	return mappers.UsageCountToDomain(&model), nil
}

func (r *UsageCountRepository) Get(ctx context.Context, projectID uint, packageTag string) (*billing.UsageCount, error) {
	var model models.UsageCountModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("project_id = ? AND package_tag = ?", projectID, packageTag).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("usage count not found")
		}
		return nil, fmt.Errorf("failed to get usage count: %w", err)
	}

	return mappers.UsageCountToDomain(&model), nil
}

func (r *UsageCountRepository) Create(ctx context.Context, count *billing.UsageCount) error {
	model := mappers.UsageCountToModel(count)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create usage count: %w", err)
	}

	count.ID = model.ID
	return nil
}

func (r *UsageCountRepository) Update(ctx context.Context, count *billing.UsageCount) error {
	model := mappers.UsageCountToModel(count)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.UsageCountModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"usage_count": model.UsageCount,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update usage count: %w", result.Error)
	}
	return nil
}

func (r *UsageCountRepository) DeleteByProjectID(ctx context.Context, projectID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Where("project_id = ?", projectID).
		Delete(&models.UsageCountModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete usage counts: %w", err)
	}
	return nil
}
