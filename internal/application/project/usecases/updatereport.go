package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oysterbuild/backend/internal/application/media"
	"github.com/oysterbuild/backend/internal/application/project/dto"
	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/shared/constants"
	"github.com/oysterbuild/backend/internal/shared/db"
	"github.com/oysterbuild/backend/internal/shared/errors"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

// UpdateReportCommand carries a partial report update; nil fields are left
// alone. Media sync mirrors project updates: keep listed rows, append new.
type UpdateReportCommand struct {
	UserID           uint
	ProjectID        uint
	ReportID         uint
	Title            *string
	ReportType       *string
	ReportDate       *time.Time
	Description      *string
	ProgressPercent  *float64
	Recommendations  []string
	ApprovalRequired *bool
	KeepUploadIDs    []uint
	NewImages        []media.UploadInput
}

type UpdateReportUseCase struct {
	reportRepo       project.ReportRepository
	reportUploadRepo project.ReportUploadRepository
	mediaStore       media.Store
	permissions      PermissionChecker
	txManager        db.TxManager
	logger           logger.Interface
}

func NewUpdateReportUseCase(
	reportRepo project.ReportRepository,
	reportUploadRepo project.ReportUploadRepository,
	mediaStore media.Store,
	permissions PermissionChecker,
	txManager db.TxManager,
	logger logger.Interface,
) *UpdateReportUseCase {
	return &UpdateReportUseCase{
		reportRepo:       reportRepo,
		reportUploadRepo: reportUploadRepo,
		mediaStore:       mediaStore,
		permissions:      permissions,
		txManager:        txManager,
		logger:           logger,
	}
}

func (uc *UpdateReportUseCase) Execute(ctx context.Context, cmd UpdateReportCommand) (*dto.ReportDTO, error) {
	allowed, err := uc.permissions.HasProjectPermission(ctx, cmd.UserID, cmd.ProjectID, constants.PermManageReport)
	if err != nil {
		return nil, fmt.Errorf("failed to check permission: %w", err)
	}
	if !allowed {
		uc.logger.Warnw("report update denied", "user_id", cmd.UserID, "project_id", cmd.ProjectID)
		return nil, errors.NewForbiddenError("insufficient permission to complete the action")
	}

	report, err := uc.reportRepo.GetByID(ctx, cmd.ReportID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("report not found")
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	if report.ProjectID() != cmd.ProjectID {
		return nil, errors.NewNotFoundError("report not found")
	}

	var reportType *project.ReportType
	if cmd.ReportType != nil {
		rt := project.ReportType(*cmd.ReportType)
		reportType = &rt
	}
	if err := report.Update(cmd.Title, cmd.Description, reportType, cmd.ReportDate,
		cmd.ProgressPercent, cmd.Recommendations, cmd.ApprovalRequired); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	newUploads := make([]*project.ReportUpload, 0, len(cmd.NewImages))
	for _, img := range cmd.NewImages {
		if img.PublicID == "" {
			img.PublicID = uuid.NewString()
		}
		img.Folder = fmt.Sprintf("reports/%d", cmd.ProjectID)
		url, err := uc.mediaStore.Upload(ctx, img)
		if err != nil {
			uc.logger.Errorw("failed to upload report media", "report_id", cmd.ReportID, "error", err)
			return nil, fmt.Errorf("failed to upload media: %w", err)
		}
		newUploads = append(newUploads, &project.ReportUpload{
			ReportID:   report.ID(),
			FileURL:    url,
			FileType:   media.FileTypeFor(img.ContentType),
			UploadedAt: time.Now().UTC(),
		})
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.reportRepo.Update(txCtx, report); err != nil {
			return fmt.Errorf("failed to update report: %w", err)
		}
		if cmd.KeepUploadIDs != nil || len(newUploads) > 0 {
			if err := uc.reportUploadRepo.DeleteByReportIDExcept(txCtx, report.ID(), cmd.KeepUploadIDs); err != nil {
				return fmt.Errorf("failed to prune report media: %w", err)
			}
		}
		for _, u := range newUploads {
			if err := uc.reportUploadRepo.Create(txCtx, u); err != nil {
				return fmt.Errorf("failed to save report media: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("report update failed", "report_id", cmd.ReportID, "error", err)
		return nil, err
	}

	uc.logger.Infow("report updated", "report_id", cmd.ReportID, "project_id", cmd.ProjectID)
	return dto.ToReportDTO(report), nil
}
