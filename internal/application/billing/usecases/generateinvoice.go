package usecases

import (
	"context"
	"fmt"

	"github.com/oysterbuild/backend/internal/domain/billing"
	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/shared/biztime"
	"github.com/oysterbuild/backend/internal/shared/db"
	"github.com/oysterbuild/backend/internal/shared/errors"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

type GenerateInvoiceCommand struct {
	ProjectID uint
	PlanID    uint
	Months    int
}

type GenerateInvoiceResult struct {
	// Invoice is nil when the selected plan is free.
	Invoice *billing.Invoice
	History *billing.PaymentHistory
}

// GenerateInvoiceUseCase opens (or refreshes) a billing cycle for a project.
// Paid plans get a PENDING invoice; free plans activate immediately. The
// project's Pending payment-history row is locked and reused so concurrent
// checkouts cannot create duplicates.
type GenerateInvoiceUseCase struct {
	projectRepo project.Repository
	planRepo    billing.PlanRepository
	invoiceRepo billing.InvoiceRepository
	historyRepo billing.PaymentHistoryRepository
	txManager   db.TxManager
	logger      logger.Interface
}

func NewGenerateInvoiceUseCase(
	projectRepo project.Repository,
	planRepo billing.PlanRepository,
	invoiceRepo billing.InvoiceRepository,
	historyRepo billing.PaymentHistoryRepository,
	txManager db.TxManager,
	logger logger.Interface,
) *GenerateInvoiceUseCase {
	return &GenerateInvoiceUseCase{
		projectRepo: projectRepo,
		planRepo:    planRepo,
		invoiceRepo: invoiceRepo,
		historyRepo: historyRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *GenerateInvoiceUseCase) Execute(ctx context.Context, cmd GenerateInvoiceCommand) (*GenerateInvoiceResult, error) {
	if cmd.Months < 1 {
		cmd.Months = 1
	}

	var result *GenerateInvoiceResult
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		result, err = uc.generate(txCtx, cmd)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *GenerateInvoiceUseCase) generate(ctx context.Context, cmd GenerateInvoiceCommand) (*GenerateInvoiceResult, error) {
	proj, err := uc.projectRepo.GetByID(ctx, cmd.ProjectID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("project not found")
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	plan, err := uc.planRepo.GetByID(ctx, cmd.PlanID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("plan not found")
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan.Deactivated() {
		return nil, errors.NewValidationError("plan is no longer available")
	}

	today := biztime.Today()
	nextBilling, ok := billing.NextCycleDate(today, plan.Frequency(), cmd.Months)
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("unsupported billing frequency: %s", plan.Frequency()))
	}

	var invoice *billing.Invoice
	var invoiceID *uint
	historyStatus := billing.PaymentHistoryStatusPending

	if plan.IsFree() {
		// Free plans need no payment: activate the subscription right away.
		if err := proj.ActivateSubscription(plan.ID(), nextBilling); err != nil {
			return nil, err
		}
		if err := uc.projectRepo.Update(ctx, proj); err != nil {
			return nil, fmt.Errorf("failed to activate project subscription: %w", err)
		}
		historyStatus = billing.PaymentHistoryStatusActive
	} else {
		invoice, err = billing.NewInvoice(proj.ID(), plan.ID(), proj.UID(), plan.Amount(), plan.Currency(), biztime.NowUTC())
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if err := uc.invoiceRepo.Create(ctx, invoice); err != nil {
			return nil, fmt.Errorf("failed to create invoice: %w", err)
		}
		id := invoice.ID()
		invoiceID = &id
	}

	// Row lock: a concurrent checkout for the same project blocks here and
	// then sees the row we create or update.
	history, err := uc.historyRepo.GetPendingByProjectIDForUpdate(ctx, proj.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to lock pending payment history: %w", err)
	}

	if history == nil {
		history, err = billing.NewPaymentHistory(proj.ID(), plan.ID(), invoiceID, historyStatus, today, nextBilling, cmd.Months)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if err := uc.historyRepo.Create(ctx, history); err != nil {
			return nil, fmt.Errorf("failed to create payment history: %w", err)
		}
	} else {
		if err := history.Rebill(plan.ID(), invoiceID, historyStatus, today, nextBilling, cmd.Months); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if err := uc.historyRepo.Update(ctx, history); err != nil {
			return nil, fmt.Errorf("failed to update payment history: %w", err)
		}
	}

	uc.logger.Infow("billing cycle opened",
		"project_id", proj.ID(),
		"plan", plan.Slug(),
		"free", plan.IsFree(),
		"history_id", history.ID(),
	)

	return &GenerateInvoiceResult{Invoice: invoice, History: history}, nil
}
