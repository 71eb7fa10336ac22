package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	billingusecases "github.com/oysterbuild/backend/internal/application/billing/usecases"
	"github.com/oysterbuild/backend/internal/application/media"
	"github.com/oysterbuild/backend/internal/application/project/dto"
	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/domain/rbac"
	"github.com/oysterbuild/backend/internal/shared/constants"
	"github.com/oysterbuild/backend/internal/shared/db"
	"github.com/oysterbuild/backend/internal/shared/errors"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

// CreateProjectCommand represents the input for creating a building project.
type CreateProjectCommand struct {
	OwnerID          uint
	Name             string
	Description      string
	ProjectType      string
	LocationText     string
	LocationMap      string
	StartDate        *time.Time
	EndDate          *time.Time
	Budget           float64
	BudgetCurrency   string
	FloorNumber      int
	InspectionDays   []string
	InspectionWindow string
	PlanID           uint
	Months           int
	Images           []media.UploadInput
}

// CreateProjectResult carries the created project and, for paid plans, the
// invoice number the owner pays against.
type CreateProjectResult struct {
	Project       *dto.ProjectDTO `json:"project"`
	InvoiceNumber string          `json:"invoice_id,omitempty"`
}

// CreateProjectUseCase sets up a new project: the project row, the creator's
// owner membership, any uploaded media, and the initial invoice or free-plan
// activation. All writes share one transaction; any failure rolls the whole
// setup back.
type CreateProjectUseCase struct {
	projectRepo project.Repository
	memberRepo  project.MemberRepository
	uploadRepo  project.UploadRepository
	roleRepo    rbac.RoleRepository
	mediaStore  media.Store
	invoiceUC   InvoiceGenerator
	txManager   db.TxManager
	logger      logger.Interface
}

func NewCreateProjectUseCase(
	projectRepo project.Repository,
	memberRepo project.MemberRepository,
	uploadRepo project.UploadRepository,
	roleRepo rbac.RoleRepository,
	mediaStore media.Store,
	invoiceUC InvoiceGenerator,
	txManager db.TxManager,
	logger logger.Interface,
) *CreateProjectUseCase {
	return &CreateProjectUseCase{
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		uploadRepo:  uploadRepo,
		roleRepo:    roleRepo,
		mediaStore:  mediaStore,
		invoiceUC:   invoiceUC,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute creates the project. Media is pushed to the object store before the
// transaction opens so an upload failure aborts cheaply; the URL rows are
// written inside the transaction with everything else.
func (uc *CreateProjectUseCase) Execute(ctx context.Context, cmd CreateProjectCommand) (*CreateProjectResult, error) {
	uc.logger.Infow("creating project", "owner_id", cmd.OwnerID, "name", cmd.Name, "plan_id", cmd.PlanID)

	if cmd.PlanID == 0 {
		return nil, errors.NewValidationError("plan_id is required")
	}

	proj, err := project.NewProject(cmd.Name, project.Type(cmd.ProjectType), cmd.OwnerID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.applyDetails(proj, cmd); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	uploads, err := uc.pushMedia(ctx, proj.UID(), cmd.Images)
	if err != nil {
		uc.logger.Errorw("failed to upload project media", "owner_id", cmd.OwnerID, "error", err)
		return nil, err
	}

	var result *CreateProjectResult
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.projectRepo.Create(txCtx, proj); err != nil {
			return fmt.Errorf("failed to save project: %w", err)
		}

		ownerRole, err := uc.roleRepo.GetByName(txCtx, constants.RoleProjectOwner)
		if err != nil {
			return fmt.Errorf("failed to resolve owner role: %w", err)
		}
		member := &project.Member{
			ProjectID: proj.ID(),
			UserID:    cmd.OwnerID,
			RoleID:    ownerRole.ID,
			IsActive:  true,
			JoinedAt:  time.Now().UTC(),
		}
		if err := uc.memberRepo.Create(txCtx, member); err != nil {
			return fmt.Errorf("failed to assign project owner: %w", err)
		}

		for _, u := range uploads {
			u.ProjectID = proj.ID()
			if err := uc.uploadRepo.Create(txCtx, u); err != nil {
				return fmt.Errorf("failed to save project media: %w", err)
			}
		}

		invoice, err := uc.invoiceUC.Execute(txCtx, billingusecases.GenerateInvoiceCommand{
			ProjectID: proj.ID(),
			PlanID:    cmd.PlanID,
			Months:    cmd.Months,
		})
		if err != nil {
			return err
		}

		result = &CreateProjectResult{Project: dto.ToProjectDTO(proj)}
		if invoice.Invoice != nil {
			result.InvoiceNumber = invoice.Invoice.InvoiceNumber()
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("project setup failed", "owner_id", cmd.OwnerID, "error", err)
		return nil, err
	}

	uc.logger.Infow("project created", "project_id", result.Project.ID, "invoice_id", result.InvoiceNumber)
	return result, nil
}

func (uc *CreateProjectUseCase) applyDetails(proj *project.Project, cmd CreateProjectCommand) error {
	var (
		description      *string
		locationText     *string
		locationMap      *string
		budget           *float64
		budgetCurrency   *string
		floorNumber      *int
		inspectionWindow *string
	)
	if cmd.Description != "" {
		description = &cmd.Description
	}
	if cmd.LocationText != "" {
		locationText = &cmd.LocationText
	}
	if cmd.LocationMap != "" {
		locationMap = &cmd.LocationMap
	}
	if cmd.Budget != 0 {
		budget = &cmd.Budget
	}
	if cmd.BudgetCurrency != "" {
		budgetCurrency = &cmd.BudgetCurrency
	}
	if cmd.FloorNumber != 0 {
		floorNumber = &cmd.FloorNumber
	}
	if cmd.InspectionWindow != "" {
		inspectionWindow = &cmd.InspectionWindow
	}
	return proj.UpdateDetails(nil, description, locationText, locationMap,
		cmd.StartDate, cmd.EndDate, budget, budgetCurrency,
		nil, floorNumber, cmd.InspectionDays, inspectionWindow)
}

func (uc *CreateProjectUseCase) pushMedia(ctx context.Context, projectUID string, images []media.UploadInput) ([]*project.Upload, error) {
	uploads := make([]*project.Upload, 0, len(images))
	for _, img := range images {
		if img.PublicID == "" {
			img.PublicID = uuid.NewString()
		}
		img.Folder = "projects/" + projectUID
		url, err := uc.mediaStore.Upload(ctx, img)
		if err != nil {
			return nil, fmt.Errorf("failed to upload media: %w", err)
		}
		uploads = append(uploads, &project.Upload{
			FileURL:    url,
			FileType:   media.FileTypeFor(img.ContentType),
			UploadedAt: time.Now().UTC(),
		})
	}
	return uploads, nil
}
