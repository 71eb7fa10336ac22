package usecases

import (
	"context"
	"fmt"

	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/shared/constants"
	"github.com/oysterbuild/backend/internal/shared/db"
	"github.com/oysterbuild/backend/internal/shared/errors"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

// DeleteReportUseCase removes a report and its media rows. Requires the
// manage-report permission.
type DeleteReportUseCase struct {
	reportRepo       project.ReportRepository
	reportUploadRepo project.ReportUploadRepository
	permissions      PermissionChecker
	txManager        db.TxManager
	logger           logger.Interface
}

func NewDeleteReportUseCase(
	reportRepo project.ReportRepository,
	reportUploadRepo project.ReportUploadRepository,
	permissions PermissionChecker,
	txManager db.TxManager,
	logger logger.Interface,
) *DeleteReportUseCase {
	return &DeleteReportUseCase{
		reportRepo:       reportRepo,
		reportUploadRepo: reportUploadRepo,
		permissions:      permissions,
		txManager:        txManager,
		logger:           logger,
	}
}

func (uc *DeleteReportUseCase) Execute(ctx context.Context, userID, projectID, reportID uint) error {
	allowed, err := uc.permissions.HasProjectPermission(ctx, userID, projectID, constants.PermManageReport)
	if err != nil {
		return fmt.Errorf("failed to check permission: %w", err)
	}
	if !allowed {
		uc.logger.Warnw("report delete denied", "user_id", userID, "project_id", projectID)
		return errors.NewForbiddenError("insufficient permission to complete the action")
	}

	report, err := uc.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewNotFoundError("report not found")
		}
		return fmt.Errorf("failed to get report: %w", err)
	}
	if report.ProjectID() != projectID {
		return errors.NewNotFoundError("report not found")
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.reportUploadRepo.DeleteByReportID(txCtx, reportID); err != nil {
			return fmt.Errorf("failed to delete report media: %w", err)
		}
		if err := uc.reportRepo.Delete(txCtx, reportID); err != nil {
			return fmt.Errorf("failed to delete report: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("report delete failed", "report_id", reportID, "error", err)
		return err
	}

	uc.logger.Infow("report deleted", "report_id", reportID, "project_id", projectID)
	return nil
}
