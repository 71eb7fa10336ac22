package usecases

import (
	"context"
	"fmt"

	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/shared/constants"
	"github.com/oysterbuild/backend/internal/shared/errors"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

// DeleteProjectUseCase removes a project. Requires the manage-project
// permission and project ownership; dependent rows go with the project via
// cascading foreign keys.
type DeleteProjectUseCase struct {
	projectRepo project.Repository
	permissions PermissionChecker
	logger      logger.Interface
}

func NewDeleteProjectUseCase(
	projectRepo project.Repository,
	permissions PermissionChecker,
	logger logger.Interface,
) *DeleteProjectUseCase {
	return &DeleteProjectUseCase{
		projectRepo: projectRepo,
		permissions: permissions,
		logger:      logger,
	}
}

func (uc *DeleteProjectUseCase) Execute(ctx context.Context, userID, projectID uint) error {
	allowed, err := uc.permissions.HasProjectPermission(ctx, userID, projectID, constants.PermManageProject)
	if err != nil {
		return fmt.Errorf("failed to check permission: %w", err)
	}
	if !allowed {
		uc.logger.Warnw("project delete denied", "user_id", userID, "project_id", projectID)
		return errors.NewForbiddenError("insufficient permission to complete the action")
	}

	proj, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewNotFoundError("project not found")
		}
		return fmt.Errorf("failed to get project: %w", err)
	}
	if !proj.IsOwner(userID) {
		uc.logger.Warnw("project delete denied, not owner", "user_id", userID, "project_id", projectID)
		return errors.NewForbiddenError("insufficient permission to complete the action")
	}

	if err := uc.projectRepo.Delete(ctx, projectID); err != nil {
		uc.logger.Errorw("failed to delete project", "project_id", projectID, "error", err)
		return fmt.Errorf("failed to delete project: %w", err)
	}

	uc.logger.Infow("project deleted", "project_id", projectID, "user_id", userID)
	return nil
}
