package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/infrastructure/persistence/mappers"
	"github.com/oysterbuild/backend/internal/infrastructure/persistence/models"
	"github.com/oysterbuild/backend/internal/shared/db"
)

type UploadRepository struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

func (r *UploadRepository) Create(ctx context.Context, u *project.Upload) error {
	model := mappers.ProjectUploadToModel(u)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create project upload: %w", err)
	}

	u.ID = model.ID
	return nil
}

func (r *UploadRepository) ListByProjectID(ctx context.Context, projectID uint, limit int) ([]*project.Upload, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Where("project_id = ?", projectID).
		Order("uploaded_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var uploadModels []models.ProjectUploadModel
	if err := query.Find(&uploadModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list project uploads: %w", err)
	}

	uploads := make([]*project.Upload, 0, len(uploadModels))
	for i := range uploadModels {
		uploads = append(uploads, mappers.ProjectUploadToDomain(&uploadModels[i]))
	}
	return uploads, nil
}

func (r *UploadRepository) DeleteByProjectID(ctx context.Context, projectID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Where("project_id = ?", projectID).
		Delete(&models.ProjectUploadModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete project uploads: %w", err)
	}
	return nil
}

func (r *UploadRepository) DeleteByProjectIDExcept(ctx context.Context, projectID uint, keepIDs []uint) error {
	query := db.GetTxFromContext(ctx, r.db).
		Where("project_id = ?", projectID)
	if len(keepIDs) > 0 {
		query = query.Where("id NOT IN ?", keepIDs)
	}

	if err := query.Delete(&models.ProjectUploadModel{}).Error; err != nil {
		return fmt.Errorf("failed to prune project uploads: %w", err)
	}
	return nil
}

type ReportUploadRepository struct {
	db *gorm.DB
}

func NewReportUploadRepository(db *gorm.DB) *ReportUploadRepository {
	return &ReportUploadRepository{db: db}
}

func (r *ReportUploadRepository) Create(ctx context.Context, u *project.ReportUpload) error {
	model := mappers.ReportUploadToModel(u)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create report upload: %w", err)
	}

	u.ID = model.ID
	return nil
}

func (r *ReportUploadRepository) ListByReportID(ctx context.Context, reportID uint) ([]*project.ReportUpload, error) {
	var uploadModels []models.ReportUploadModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("report_id = ?", reportID).
		Order("uploaded_at DESC").
		Find(&uploadModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list report uploads: %w", err)
	}

	uploads := make([]*project.ReportUpload, 0, len(uploadModels))
	for i := range uploadModels {
		uploads = append(uploads, mappers.ReportUploadToDomain(&uploadModels[i]))
	}
	return uploads, nil
}

func (r *ReportUploadRepository) DeleteByReportID(ctx context.Context, reportID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Where("report_id = ?", reportID).
		Delete(&models.ReportUploadModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete report uploads: %w", err)
	}
	return nil
}

func (r *ReportUploadRepository) DeleteByReportIDExcept(ctx context.Context, reportID uint, keepIDs []uint) error {
	query := db.GetTxFromContext(ctx, r.db).
		Where("report_id = ?", reportID)
	if len(keepIDs) > 0 {
		query = query.Where("id NOT IN ?", keepIDs)
	}

	if err := query.Delete(&models.ReportUploadModel{}).Error; err != nil {
		return fmt.Errorf("failed to prune report uploads: %w", err)
	}
	return nil
}
