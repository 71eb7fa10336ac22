package usecases

import (
	"context"
	"fmt"

	billingusecases "github.com/oysterbuild/backend/internal/application/billing/usecases"
	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/shared/errors"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

type UpgradePlanCommand struct {
	UserID    uint
	ProjectID uint
	PlanID    uint
	Months    int
}

type UpgradePlanResult struct {
	InvoiceNumber string `json:"invoice_id,omitempty"`
	// Activated is true when the new plan is free and took effect at once.
	Activated bool `json:"activated"`
}

// UpgradePlanUseCase moves a project to a different plan. Owner-only; the
// billing cycle engine reuses the project's pending history row so repeated
// upgrade attempts never fork a second cycle.
type UpgradePlanUseCase struct {
	projectRepo project.Repository
	invoiceUC   InvoiceGenerator
	logger      logger.Interface
}

func NewUpgradePlanUseCase(
	projectRepo project.Repository,
	invoiceUC InvoiceGenerator,
	logger logger.Interface,
) *UpgradePlanUseCase {
	return &UpgradePlanUseCase{
		projectRepo: projectRepo,
		invoiceUC:   invoiceUC,
		logger:      logger,
	}
}

func (uc *UpgradePlanUseCase) Execute(ctx context.Context, cmd UpgradePlanCommand) (*UpgradePlanResult, error) {
	uc.logger.Infow("upgrading plan", "user_id", cmd.UserID, "project_id", cmd.ProjectID, "plan_id", cmd.PlanID)

	proj, err := uc.projectRepo.GetByID(ctx, cmd.ProjectID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("project not found")
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if !proj.IsOwner(cmd.UserID) {
		uc.logger.Warnw("plan upgrade denied, not owner", "user_id", cmd.UserID, "project_id", cmd.ProjectID)
		return nil, errors.NewForbiddenError("insufficient permission to complete the action")
	}

	result, err := uc.invoiceUC.Execute(ctx, billingusecases.GenerateInvoiceCommand{
		ProjectID: cmd.ProjectID,
		PlanID:    cmd.PlanID,
		Months:    cmd.Months,
	})
	if err != nil {
		return nil, err
	}

	out := &UpgradePlanResult{Activated: result.Invoice == nil}
	if result.Invoice != nil {
		out.InvoiceNumber = result.Invoice.InvoiceNumber()
	}
	uc.logger.Infow("plan upgrade processed", "project_id", cmd.ProjectID, "invoice_id", out.InvoiceNumber, "activated", out.Activated)
	return out, nil
}
