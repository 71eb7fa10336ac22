package usecases

import (
	"context"
	"fmt"

	"github.com/oysterbuild/backend/internal/application/project/dto"
	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/shared/constants"
	"github.com/oysterbuild/backend/internal/shared/errors"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

// GetReportUseCase fetches one report with its media. Requires the
// view-report permission on the owning project.
type GetReportUseCase struct {
	reportRepo       project.ReportRepository
	reportUploadRepo project.ReportUploadRepository
	permissions      PermissionChecker
	logger           logger.Interface
}

func NewGetReportUseCase(
	reportRepo project.ReportRepository,
	reportUploadRepo project.ReportUploadRepository,
	permissions PermissionChecker,
	logger logger.Interface,
) *GetReportUseCase {
	return &GetReportUseCase{
		reportRepo:       reportRepo,
		reportUploadRepo: reportUploadRepo,
		permissions:      permissions,
		logger:           logger,
	}
}

func (uc *GetReportUseCase) Execute(ctx context.Context, userID, projectID, reportID uint) (*dto.ReportDetailDTO, error) {
	allowed, err := uc.permissions.HasProjectPermission(ctx, userID, projectID, constants.PermViewReport)
	if err != nil {
		return nil, fmt.Errorf("failed to check permission: %w", err)
	}
	if !allowed {
		uc.logger.Warnw("report access denied", "user_id", userID, "project_id", projectID)
		return nil, errors.NewForbiddenError("insufficient permission to complete the action")
	}

	report, err := uc.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("report not found")
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	if report.ProjectID() != projectID {
		return nil, errors.NewNotFoundError("report not found")
	}

	uploads, err := uc.reportUploadRepo.ListByReportID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to list report media: %w", err)
	}

	return &dto.ReportDetailDTO{
		ReportDTO: *dto.ToReportDTO(report),
		Media:     dto.ToReportUploadDTOList(uploads),
	}, nil
}
