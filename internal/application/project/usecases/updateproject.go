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

// UpdateProjectCommand carries a partial update; nil fields are left alone.
// KeepUploadIDs names the existing media rows to retain; uploads outside the
// list are removed and NewImages are appended.
type UpdateProjectCommand struct {
	UserID           uint
	ProjectID        uint
	Name             *string
	Description      *string
	LocationText     *string
	LocationMap      *string
	StartDate        *time.Time
	EndDate          *time.Time
	Budget           *float64
	BudgetCurrency   *string
	Status           *string
	FloorNumber      *int
	InspectionDays   []string
	InspectionWindow *string
	KeepUploadIDs    []uint
	NewImages        []media.UploadInput
}

// UpdateProjectUseCase applies project edits. Requires the manage-project
// permission and project ownership.
type UpdateProjectUseCase struct {
	projectRepo project.Repository
	uploadRepo  project.UploadRepository
	mediaStore  media.Store
	permissions PermissionChecker
	txManager   db.TxManager
	logger      logger.Interface
}

func NewUpdateProjectUseCase(
	projectRepo project.Repository,
	uploadRepo project.UploadRepository,
	mediaStore media.Store,
	permissions PermissionChecker,
	txManager db.TxManager,
	logger logger.Interface,
) *UpdateProjectUseCase {
	return &UpdateProjectUseCase{
		projectRepo: projectRepo,
		uploadRepo:  uploadRepo,
		mediaStore:  mediaStore,
		permissions: permissions,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *UpdateProjectUseCase) Execute(ctx context.Context, cmd UpdateProjectCommand) (*dto.ProjectDTO, error) {
	allowed, err := uc.permissions.HasProjectPermission(ctx, cmd.UserID, cmd.ProjectID, constants.PermManageProject)
	if err != nil {
		return nil, fmt.Errorf("failed to check permission: %w", err)
	}
	if !allowed {
		uc.logger.Warnw("project update denied", "user_id", cmd.UserID, "project_id", cmd.ProjectID)
		return nil, errors.NewForbiddenError("insufficient permission to complete the action")
	}

	proj, err := uc.projectRepo.GetByID(ctx, cmd.ProjectID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("project not found")
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if !proj.IsOwner(cmd.UserID) {
		uc.logger.Warnw("project update denied, not owner", "user_id", cmd.UserID, "project_id", cmd.ProjectID)
		return nil, errors.NewForbiddenError("insufficient permission to complete the action")
	}

	var status *project.Status
	if cmd.Status != nil {
		s := project.Status(*cmd.Status)
		status = &s
	}
	if err := proj.UpdateDetails(cmd.Name, cmd.Description, cmd.LocationText, cmd.LocationMap,
		cmd.StartDate, cmd.EndDate, cmd.Budget, cmd.BudgetCurrency,
		status, cmd.FloorNumber, cmd.InspectionDays, cmd.InspectionWindow); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	newUploads := make([]*project.Upload, 0, len(cmd.NewImages))
	for _, img := range cmd.NewImages {
		if img.PublicID == "" {
			img.PublicID = uuid.NewString()
		}
		img.Folder = "projects/" + proj.UID()
		url, err := uc.mediaStore.Upload(ctx, img)
		if err != nil {
			uc.logger.Errorw("failed to upload project media", "project_id", cmd.ProjectID, "error", err)
			return nil, fmt.Errorf("failed to upload media: %w", err)
		}
		newUploads = append(newUploads, &project.Upload{
			ProjectID:  proj.ID(),
			FileURL:    url,
			FileType:   media.FileTypeFor(img.ContentType),
			UploadedAt: time.Now().UTC(),
		})
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.projectRepo.Update(txCtx, proj); err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}
		if cmd.KeepUploadIDs != nil || len(newUploads) > 0 {
			if err := uc.uploadRepo.DeleteByProjectIDExcept(txCtx, proj.ID(), cmd.KeepUploadIDs); err != nil {
				return fmt.Errorf("failed to prune project media: %w", err)
			}
		}
		for _, u := range newUploads {
			if err := uc.uploadRepo.Create(txCtx, u); err != nil {
				return fmt.Errorf("failed to save project media: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("project update failed", "project_id", cmd.ProjectID, "error", err)
		return nil, err
	}

	uc.logger.Infow("project updated", "project_id", cmd.ProjectID)
	return dto.ToProjectDTO(proj), nil
}
