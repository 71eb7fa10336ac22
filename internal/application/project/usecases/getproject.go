package usecases

import (
	"context"
	"fmt"

	"github.com/oysterbuild/backend/internal/application/project/dto"
	"github.com/oysterbuild/backend/internal/domain/billing"
	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/shared/constants"
	"github.com/oysterbuild/backend/internal/shared/errors"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

const recentReportLimit = 2

// GetProjectUseCase serves the single-project view: the project itself plus
// plan summary, the two most recent reports, quota and action flags, and all
// attached media. Access requires active membership.
type GetProjectUseCase struct {
	projectRepo project.Repository
	memberRepo  project.MemberRepository
	reportRepo  project.ReportRepository
	uploadRepo  project.UploadRepository
	planRepo    billing.PlanRepository
	permissions PermissionChecker
	quota       QuotaService
	logger      logger.Interface
}

func NewGetProjectUseCase(
	projectRepo project.Repository,
	memberRepo project.MemberRepository,
	reportRepo project.ReportRepository,
	uploadRepo project.UploadRepository,
	planRepo billing.PlanRepository,
	permissions PermissionChecker,
	quota QuotaService,
	logger logger.Interface,
) *GetProjectUseCase {
	return &GetProjectUseCase{
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		reportRepo:  reportRepo,
		uploadRepo:  uploadRepo,
		planRepo:    planRepo,
		permissions: permissions,
		quota:       quota,
		logger:      logger,
	}
}

func (uc *GetProjectUseCase) Execute(ctx context.Context, userID, projectID uint) (*dto.ProjectDetailDTO, error) {
	isMember, err := uc.memberRepo.IsActiveMember(ctx, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		uc.logger.Warnw("project access denied", "user_id", userID, "project_id", projectID)
		return nil, errors.NewForbiddenError("you do not have permission to view this project")
	}

	proj, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("project not found")
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	detail := &dto.ProjectDetailDTO{
		ProjectDTO:       *dto.ToProjectDTO(proj),
		RecentReports:    []*dto.ReportDTO{},
		Images:           []*dto.UploadDTO{},
		HasPaymentAction: proj.IsOwner(userID),
	}

	if planID := proj.PlanID(); planID != nil {
		plan, err := uc.planRepo.GetByID(ctx, *planID)
		if err != nil && !errors.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to get plan: %w", err)
		}
		detail.Plan = dto.ToPlanSummaryDTO(plan)
	}

	reports, _, err := uc.reportRepo.ListByProjectID(ctx, projectID, project.ReportFilter{Page: 1, PageSize: recentReportLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent reports: %w", err)
	}
	detail.RecentReports = dto.ToReportDTOList(reports)

	detail.HasReportQuota, err = uc.quota.HasReportQuota(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check report quota: %w", err)
	}

	detail.HasReportAction, err = uc.permissions.HasProjectPermission(ctx, userID, projectID, constants.PermManageReport)
	if err != nil {
		return nil, fmt.Errorf("failed to check report permission: %w", err)
	}

	uploads, err := uc.uploadRepo.ListByProjectID(ctx, projectID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list project media: %w", err)
	}
	detail.Images = dto.ToUploadDTOList(uploads)

	return detail, nil
}
