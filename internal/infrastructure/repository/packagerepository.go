package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/oysterbuild/backend/internal/domain/billing"
	"github.com/oysterbuild/backend/internal/infrastructure/persistence/mappers"
	"github.com/oysterbuild/backend/internal/infrastructure/persistence/models"
	"github.com/oysterbuild/backend/internal/shared/db"
	"github.com/oysterbuild/backend/internal/shared/errors"
)

type PackageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

func (r *PackageRepository) Create(ctx context.Context, pkg *billing.Package) error {
	model := mappers.PackageToModel(pkg)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}

	pkg.ID = model.ID
	return nil
}

func (r *PackageRepository) GetByPlanAndTag(ctx context.Context, planID uint, tag string) (*billing.Package, error) {
	var model models.PackageModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("plan_id = ? AND tag = ?", planID, tag).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("package not found")
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	return mappers.PackageToDomain(&model), nil
}

func (r *PackageRepository) ListByPlanID(ctx context.Context, planID uint) ([]*billing.Package, error) {
	var pkgModels []models.PackageModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("plan_id = ?", planID).
		Order("id ASC").
		Find(&pkgModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	pkgs := make([]*billing.Package, 0, len(pkgModels))
	for i := range pkgModels {
		pkgs = append(pkgs, mappers.PackageToDomain(&pkgModels[i]))
	}
	return pkgs, nil
}

func (r *PackageRepository) ExistsByPlanAndTag(ctx context.Context, planID uint, tag string) (bool, error) {
	var count int64

	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PackageModel{}).
		Where("plan_id = ? AND tag = ?", planID, tag).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check package: %w", err)
	}
	return count > 0, nil
}
