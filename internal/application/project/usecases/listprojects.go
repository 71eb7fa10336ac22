package usecases

import (
	"context"
	"fmt"

	"github.com/oysterbuild/backend/internal/application/project/dto"
	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/shared/logger"
	"github.com/oysterbuild/backend/internal/shared/utils"
)

const listThumbnailLimit = 2

type ListProjectsCommand struct {
	UserID   uint
	Status   string
	Page     int
	PageSize int
}

type ListProjectsResult struct {
	Projects []*dto.ProjectListItemDTO `json:"projects"`
	Total    int64                     `json:"total"`
	Page     int                       `json:"page"`
	PageSize int                       `json:"page_size"`
}

// ListProjectsUseCase pages through the projects a user belongs to,
// optionally filtered by status, with up to two thumbnails per row.
type ListProjectsUseCase struct {
	projectRepo project.Repository
	uploadRepo  project.UploadRepository
	logger      logger.Interface
}

func NewListProjectsUseCase(
	projectRepo project.Repository,
	uploadRepo project.UploadRepository,
	logger logger.Interface,
) *ListProjectsUseCase {
	return &ListProjectsUseCase{
		projectRepo: projectRepo,
		uploadRepo:  uploadRepo,
		logger:      logger,
	}
}

func (uc *ListProjectsUseCase) Execute(ctx context.Context, cmd ListProjectsCommand) (*ListProjectsResult, error) {
	pagination := utils.ValidatePagination(cmd.Page, cmd.PageSize)
	page, pageSize := pagination.Page, pagination.PageSize

	filter := project.Filter{Page: page, PageSize: pageSize}
	if cmd.Status != "" {
		status := project.Status(cmd.Status)
		filter.Status = &status
	}

	projects, total, err := uc.projectRepo.ListByMember(ctx, cmd.UserID, filter)
	if err != nil {
		uc.logger.Errorw("failed to list projects", "user_id", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	items := make([]*dto.ProjectListItemDTO, 0, len(projects))
	for _, p := range projects {
		uploads, err := uc.uploadRepo.ListByProjectID(ctx, p.ID(), listThumbnailLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to list project media: %w", err)
		}
		images := make([]string, 0, len(uploads))
		for _, u := range uploads {
			images = append(images, u.FileURL)
		}
		items = append(items, &dto.ProjectListItemDTO{
			ProjectDTO: *dto.ToProjectDTO(p),
			Images:     images,
		})
	}

	return &ListProjectsResult{
		Projects: items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
