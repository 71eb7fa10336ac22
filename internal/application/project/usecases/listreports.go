package usecases

import (
	"context"
	"fmt"

	"github.com/oysterbuild/backend/internal/application/project/dto"
	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/shared/constants"
	"github.com/oysterbuild/backend/internal/shared/errors"
	"github.com/oysterbuild/backend/internal/shared/logger"
	"github.com/oysterbuild/backend/internal/shared/utils"
)

type ListReportsCommand struct {
	UserID     uint
	ProjectID  uint
	ReportType string
	Page       int
	PageSize   int
}

type ListReportsResult struct {
	Reports  []*dto.ReportListItemDTO `json:"reports"`
	Total    int64                    `json:"total"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"page_size"`
}

// ListReportsUseCase pages through a project's reports, newest report date
// first, attaching the first image of each report when one exists. Requires
// the view-report permission and active membership.
type ListReportsUseCase struct {
	memberRepo       project.MemberRepository
	reportRepo       project.ReportRepository
	reportUploadRepo project.ReportUploadRepository
	permissions      PermissionChecker
	logger           logger.Interface
}

func NewListReportsUseCase(
	memberRepo project.MemberRepository,
	reportRepo project.ReportRepository,
	reportUploadRepo project.ReportUploadRepository,
	permissions PermissionChecker,
	logger logger.Interface,
) *ListReportsUseCase {
	return &ListReportsUseCase{
		memberRepo:       memberRepo,
		reportRepo:       reportRepo,
		reportUploadRepo: reportUploadRepo,
		permissions:      permissions,
		logger:           logger,
	}
}

func (uc *ListReportsUseCase) Execute(ctx context.Context, cmd ListReportsCommand) (*ListReportsResult, error) {
	allowed, err := uc.permissions.HasProjectPermission(ctx, cmd.UserID, cmd.ProjectID, constants.PermViewReport)
	if err != nil {
		return nil, fmt.Errorf("failed to check permission: %w", err)
	}
	if !allowed {
		uc.logger.Warnw("report list denied", "user_id", cmd.UserID, "project_id", cmd.ProjectID)
		return nil, errors.NewForbiddenError("insufficient permission to complete the action")
	}

	isMember, err := uc.memberRepo.IsActiveMember(ctx, cmd.ProjectID, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return nil, errors.NewForbiddenError("project membership required")
	}

	pagination := utils.ValidatePagination(cmd.Page, cmd.PageSize)
	page, pageSize := pagination.Page, pagination.PageSize
	filter := project.ReportFilter{Page: page, PageSize: pageSize}
	if cmd.ReportType != "" {
		rt := project.ReportType(cmd.ReportType)
		filter.ReportType = &rt
	}

	reports, total, err := uc.reportRepo.ListByProjectID(ctx, cmd.ProjectID, filter)
	if err != nil {
		uc.logger.Errorw("failed to list reports", "project_id", cmd.ProjectID, "error", err)
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	items := make([]*dto.ReportListItemDTO, 0, len(reports))
	for _, r := range reports {
		item := &dto.ReportListItemDTO{ReportDTO: *dto.ToReportDTO(r)}
		uploads, err := uc.reportUploadRepo.ListByReportID(ctx, r.ID())
		if err != nil {
			return nil, fmt.Errorf("failed to list report media: %w", err)
		}
		for _, u := range uploads {
			if u.FileType == "image" {
				item.Image = u.FileURL
				break
			}
		}
		items = append(items, item)
	}

	return &ListReportsResult{
		Reports:  items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
