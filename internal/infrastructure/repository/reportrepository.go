package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/infrastructure/persistence/mappers"
	"github.com/oysterbuild/backend/internal/infrastructure/persistence/models"
	"github.com/oysterbuild/backend/internal/shared/db"
	"github.com/oysterbuild/backend/internal/shared/errors"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *project.Report) error {
	model := mappers.ReportToModel(report)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	report.SetID(model.ID)
	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, id uint) (*project.Report, error) {
	var model models.ProjectReportModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("report not found")
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return mappers.ReportToDomain(&model)
}

func (r *ReportRepository) Update(ctx context.Context, report *project.Report) error {
	model := mappers.ReportToModel(report)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ProjectReportModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"title":             model.Title,
			"report_type":       model.ReportType,
			"report_date":       model.ReportDate,
			"description":       model.Description,
			"progress_percent":  model.ProgressPercent,
			"recommendations":   model.Recommendations,
			"approval_required": model.ApprovalRequired,
			"approved":          model.Approved,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update report: %w", result.Error)
	}
	return nil
}

func (r *ReportRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.ProjectReportModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("report not found")
	}
	return nil
}

func (r *ReportRepository) ListByProjectID(ctx context.Context, projectID uint, filter project.ReportFilter) ([]*project.Report, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Model(&models.ProjectReportModel{}).
		Where("project_id = ?", projectID)
	if filter.ReportType != nil {
		query = query.Where("report_type = ?", string(*filter.ReportType))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	var reportModels []models.ProjectReportModel
	if err := query.
		Order("report_date DESC, id DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&reportModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]*project.Report, 0, len(reportModels))
	for i := range reportModels {
		report, err := mappers.ReportToDomain(&reportModels[i])
		if err != nil {
			return nil, 0, err
		}
		reports = append(reports, report)
	}
	return reports, total, nil
}
