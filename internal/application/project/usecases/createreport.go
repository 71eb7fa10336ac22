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

type CreateReportCommand struct {
	UserID           uint
	ProjectID        uint
	Title            string
	ReportType       string
	ReportDate       time.Time
	Description      string
	ProgressPercent  float64
	Recommendations  []string
	ApprovalRequired bool
	Images           []media.UploadInput
}

// CreateReportUseCase files a progress report against a project. The caller
// needs the manage-report permission and the project must have report quota
// left; the usage counter is the last write before commit so a failed
// creation never consumes quota.
type CreateReportUseCase struct {
	reportRepo       project.ReportRepository
	reportUploadRepo project.ReportUploadRepository
	mediaStore       media.Store
	permissions      PermissionChecker
	quota            QuotaService
	txManager        db.TxManager
	logger           logger.Interface
}

func NewCreateReportUseCase(
	reportRepo project.ReportRepository,
	reportUploadRepo project.ReportUploadRepository,
	mediaStore media.Store,
	permissions PermissionChecker,
	quota QuotaService,
	txManager db.TxManager,
	logger logger.Interface,
) *CreateReportUseCase {
	return &CreateReportUseCase{
		reportRepo:       reportRepo,
		reportUploadRepo: reportUploadRepo,
		mediaStore:       mediaStore,
		permissions:      permissions,
		quota:            quota,
		txManager:        txManager,
		logger:           logger,
	}
}

func (uc *CreateReportUseCase) Execute(ctx context.Context, cmd CreateReportCommand) (*dto.ReportDTO, error) {
	uc.logger.Infow("creating report", "user_id", cmd.UserID, "project_id", cmd.ProjectID, "title", cmd.Title)

	allowed, err := uc.permissions.HasProjectPermission(ctx, cmd.UserID, cmd.ProjectID, constants.PermManageReport)
	if err != nil {
		return nil, fmt.Errorf("failed to check permission: %w", err)
	}
	if !allowed {
		uc.logger.Warnw("report create denied", "user_id", cmd.UserID, "project_id", cmd.ProjectID)
		return nil, errors.NewForbiddenError("insufficient permission to complete the action")
	}

	hasQuota, err := uc.quota.HasReportQuota(ctx, cmd.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check report quota: %w", err)
	}
	if !hasQuota {
		uc.logger.Warnw("report quota exhausted", "project_id", cmd.ProjectID)
		return nil, errors.NewQuotaExceededError("you have exhausted your report plan usage")
	}

	report, err := project.NewReport(cmd.ProjectID, cmd.Title, project.ReportType(cmd.ReportType),
		cmd.ReportDate, cmd.Description, cmd.ProgressPercent, cmd.Recommendations,
		cmd.ApprovalRequired, cmd.UserID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	uploads, err := uc.pushMedia(ctx, cmd.ProjectID, cmd.Images)
	if err != nil {
		uc.logger.Errorw("failed to upload report media", "project_id", cmd.ProjectID, "error", err)
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.reportRepo.Create(txCtx, report); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		for _, u := range uploads {
			u.ReportID = report.ID()
			if err := uc.reportUploadRepo.Create(txCtx, u); err != nil {
				return fmt.Errorf("failed to save report media: %w", err)
			}
		}
		// Usage is charged last so nothing is consumed unless every prior
		// write succeeded.
		return uc.quota.IncrementReportUsage(txCtx, cmd.ProjectID)
	})
	if err != nil {
		uc.logger.Errorw("report creation failed", "project_id", cmd.ProjectID, "error", err)
		return nil, err
	}

	uc.logger.Infow("report created", "report_id", report.ID(), "project_id", cmd.ProjectID)
	return dto.ToReportDTO(report), nil
}

func (uc *CreateReportUseCase) pushMedia(ctx context.Context, projectID uint, images []media.UploadInput) ([]*project.ReportUpload, error) {
	uploads := make([]*project.ReportUpload, 0, len(images))
	for _, img := range images {
		if img.PublicID == "" {
			img.PublicID = uuid.NewString()
		}
		img.Folder = fmt.Sprintf("reports/%d", projectID)
		url, err := uc.mediaStore.Upload(ctx, img)
		if err != nil {
			return nil, fmt.Errorf("failed to upload media: %w", err)
		}
		uploads = append(uploads, &project.ReportUpload{
			FileURL:    url,
			FileType:   media.FileTypeFor(img.ContentType),
			UploadedAt: time.Now().UTC(),
		})
	}
	return uploads, nil
}
