package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/infrastructure/persistence/mappers"
	"github.com/oysterbuild/backend/internal/infrastructure/persistence/models"
	"github.com/oysterbuild/backend/internal/shared/constants"
	"github.com/oysterbuild/backend/internal/shared/db"
	"github.com/oysterbuild/backend/internal/shared/errors"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	model := mappers.ProjectToModel(p)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	p.SetID(model.ID)
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uint) (*project.Project, error) {
	var model models.ProjectModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("project not found")
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return mappers.ProjectToDomain(&model)
}

func (r *ProjectRepository) GetByUID(ctx context.Context, uid string) (*project.Project, error) {
	var model models.ProjectModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("uid = ?", uid).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("project not found")
		}
		return nil, fmt.Errorf("failed to get project by uid: %w", err)
	}

	return mappers.ProjectToDomain(&model)
}

func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	model := mappers.ProjectToModel(p)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ProjectModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":                  model.Name,
			"description":           model.Description,
			"location_text":         model.LocationText,
			"location_map":          model.LocationMap,
			"start_date":            model.StartDate,
			"end_date":              model.EndDate,
			"budget":                model.Budget,
			"budget_currency":       model.BudgetCurrency,
			"status":                model.Status,
			"payment_status":        model.PaymentStatus,
			"plan_id":               model.PlanID,
			"floor_number":          model.FloorNumber,
			"inspection_days":       model.InspectionDays,
			"inspection_window":     model.InspectionWindow,
			"subscription_end_date": model.SubscriptionEndDate,
			"version":               model.Version,
			"updated_at":            model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update project: %w", result.Error)
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.ProjectModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("project not found")
	}
	return nil
}

func (r *ProjectRepository) ListByMember(ctx context.Context, userID uint, filter project.Filter) ([]*project.Project, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	membership := tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.ProjectMemberModel{}).
		Select("project_id").
		Where("user_id = ? AND is_active = ?", userID, true)

	query := tx.Model(&models.ProjectModel{}).
		Where("id IN (?)", membership)
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	var projectModels []models.ProjectModel
	if err := query.
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&projectModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*project.Project, 0, len(projectModels))
	for i := range projectModels {
		p, err := mappers.ProjectToDomain(&projectModels[i])
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, p)
	}
	return projects, total, nil
}

// ExpireDueSubscriptions downgrades projects whose paid window has closed in
// one statement. Usage counters are not touched here: they reset only when a
// payment settles and a fresh cycle starts.
func (r *ProjectRepository) ExpireDueSubscriptions(ctx context.Context, asOf time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Table(constants.TableProjects).
		Where("payment_status = ? AND subscription_end_date IS NOT NULL AND subscription_end_date <= ?",
			string(project.PaymentStatusActive), asOf).
		Updates(map[string]interface{}{
			"payment_status": string(project.PaymentStatusExpired),
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire subscriptions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *ProjectRepository) FindExpiringBetween(ctx context.Context, from, to time.Time) ([]*project.Project, error) {
	var projectModels []models.ProjectModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("payment_status = ? AND subscription_end_date BETWEEN ? AND ?",
			string(project.PaymentStatusActive), from, to).
		Order("subscription_end_date ASC").
		Find(&projectModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find expiring projects: %w", err)
	}

	projects := make([]*project.Project, 0, len(projectModels))
	for i := range projectModels {
		p, err := mappers.ProjectToDomain(&projectModels[i])
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}
