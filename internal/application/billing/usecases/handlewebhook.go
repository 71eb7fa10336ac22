package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oysterbuild/backend/internal/application/billing/gateway"
	"github.com/oysterbuild/backend/internal/domain/billing"
	"github.com/oysterbuild/backend/internal/domain/notification"
	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/domain/user"
	"github.com/oysterbuild/backend/internal/shared/biztime"
	"github.com/oysterbuild/backend/internal/shared/db"
	"github.com/oysterbuild/backend/internal/shared/errors"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

const (
	eventChargeSuccess = "charge.success"
	eventChargeFailed  = "charge.failed"
)

type HandleWebhookCommand struct {
	Provider  string
	Payload   []byte
	Signature string
}

type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
	} `json:"data"`
}

// HandleWebhookUseCase reconciles gateway webhook deliveries against local
// payment state. Success and failure paths each commit a single transaction;
// replayed deliveries for an already-settled invoice are a no-op.
type HandleWebhookUseCase struct {
	gateways    map[string]gateway.PaymentGateway
	txnRepo     billing.TransactionRepository
	invoiceRepo billing.InvoiceRepository
	historyRepo billing.PaymentHistoryRepository
	planRepo    billing.PlanRepository
	usageRepo   billing.UsageCountRepository
	projectRepo project.Repository
	userRepo    user.Repository
	outboxRepo  notification.Repository
	txManager   db.TxManager
	logger      logger.Interface
}

func NewHandleWebhookUseCase(
	gateways map[string]gateway.PaymentGateway,
	txnRepo billing.TransactionRepository,
	invoiceRepo billing.InvoiceRepository,
	historyRepo billing.PaymentHistoryRepository,
	planRepo billing.PlanRepository,
	usageRepo billing.UsageCountRepository,
	projectRepo project.Repository,
	userRepo user.Repository,
	outboxRepo notification.Repository,
	txManager db.TxManager,
	logger logger.Interface,
) *HandleWebhookUseCase {
	return &HandleWebhookUseCase{
		gateways:    gateways,
		txnRepo:     txnRepo,
		invoiceRepo: invoiceRepo,
		historyRepo: historyRepo,
		planRepo:    planRepo,
		usageRepo:   usageRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		outboxRepo:  outboxRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *HandleWebhookUseCase) Execute(ctx context.Context, cmd HandleWebhookCommand) error {
	gw, ok := uc.gateways[cmd.Provider]
	if !ok {
		return errors.NewValidationError(fmt.Sprintf("unsupported payment provider: %s", cmd.Provider))
	}

	if !gw.VerifySignature(cmd.Payload, cmd.Signature) {
		uc.logger.Warnw("webhook signature rejected", "provider", cmd.Provider)
		return errors.NewUnauthorizedError("invalid webhook signature")
	}

	var event webhookEvent
	if err := json.Unmarshal(cmd.Payload, &event); err != nil {
		return errors.NewValidationError("malformed webhook payload")
	}
	if event.Event == "" {
		return errors.NewValidationError("webhook payload missing event")
	}

	switch event.Event {
	case eventChargeSuccess:
		if event.Data.Reference == "" {
			return errors.NewValidationError("webhook payload missing reference")
		}
		return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
			return uc.applySuccess(txCtx, gw.Name(), event.Data.Reference, cmd.Payload)
		})
	case eventChargeFailed:
		if event.Data.Reference == "" {
			return errors.NewValidationError("webhook payload missing reference")
		}
		return uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
			return uc.applyFailure(txCtx, gw.Name(), event.Data.Reference, cmd.Payload)
		})
	default:
		uc.logger.Infow("ignoring webhook event", "provider", cmd.Provider, "event", event.Event)
		return nil
	}
}

func (uc *HandleWebhookUseCase) applySuccess(ctx context.Context, provider, reference string, payload []byte) error {
	txn, err := uc.txnRepo.GetByProviderReference(ctx, provider, reference)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewBadRequestError("no transaction logged for reference")
		}
		return fmt.Errorf("failed to get transaction: %w", err)
	}

	invoice, err := uc.invoiceRepo.GetByID(ctx, txn.InvoiceID())
	if err != nil {
		return fmt.Errorf("failed to get invoice: %w", err)
	}

	// Idempotency guard: at-least-once webhook delivery means replays are
	// expected. A settled invoice means this delivery was already applied.
	if invoice.IsPaid() {
		uc.logger.Infow("webhook replay for settled invoice, ignoring",
			"invoice", invoice.InvoiceNumber(),
			"provider_reference", reference,
		)
		return nil
	}

	now := biztime.NowUTC()

	if err := invoice.MarkPaid(now); err != nil {
		return err
	}
	if err := uc.invoiceRepo.Update(ctx, invoice); err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}

	if err := txn.MarkSuccess(payload, now); err != nil {
		return err
	}
	if err := uc.txnRepo.Update(ctx, txn); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	plan, err := uc.planRepo.GetByID(ctx, invoice.PlanID())
	if err != nil {
		return fmt.Errorf("failed to get plan: %w", err)
	}

	history, err := uc.historyRepo.GetByInvoiceID(ctx, invoice.ID())
	if err != nil && !errors.IsNotFoundError(err) {
		return fmt.Errorf("failed to get payment history: %w", err)
	}

	months := 1
	if history != nil {
		months = history.Months()
	}
	// Billing dates are date-only: anchoring at midnight keeps the cycle end
	// inside the whole-day windows the reminder and expiration sweeps query.
	nextBilling, ok := billing.NextCycleDate(biztime.Today(), plan.Frequency(), months)
	if !ok {
		return errors.NewInternalError(fmt.Sprintf("plan %d has unsupported frequency %s", plan.ID(), plan.Frequency()))
	}

	if history != nil {
		if err := history.Activate(now, nextBilling); err != nil {
			return err
		}
		if err := uc.historyRepo.Update(ctx, history); err != nil {
			return fmt.Errorf("failed to update payment history: %w", err)
		}
	}

	proj, err := uc.projectRepo.GetByID(ctx, invoice.ProjectID())
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}
	if err := proj.ActivateSubscription(plan.ID(), nextBilling); err != nil {
		return err
	}
	if err := uc.projectRepo.Update(ctx, proj); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	// Quota reset: the new cycle starts with clean counters.
	if err := uc.usageRepo.DeleteByProjectID(ctx, proj.ID()); err != nil {
		return fmt.Errorf("failed to reset usage counters: %w", err)
	}

	uc.enqueueConfirmation(ctx, proj, plan, invoice)

	uc.logger.Infow("payment reconciled",
		"invoice", invoice.InvoiceNumber(),
		"project_id", proj.ID(),
		"plan", plan.Slug(),
		"next_billing_date", nextBilling,
	)
	return nil
}

func (uc *HandleWebhookUseCase) applyFailure(ctx context.Context, provider, reference string, payload []byte) error {
	txn, err := uc.txnRepo.GetByProviderReference(ctx, provider, reference)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewBadRequestError("no transaction logged for reference")
		}
		return fmt.Errorf("failed to get transaction: %w", err)
	}

	invoice, err := uc.invoiceRepo.GetByID(ctx, txn.InvoiceID())
	if err != nil {
		return fmt.Errorf("failed to get invoice: %w", err)
	}
	if invoice.IsPaid() {
		uc.logger.Warnw("failure webhook for settled invoice, ignoring",
			"invoice", invoice.InvoiceNumber(),
			"provider_reference", reference,
		)
		return nil
	}

	if err := invoice.MarkFailed(); err != nil {
		return err
	}
	if err := uc.invoiceRepo.Update(ctx, invoice); err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}

	if err := txn.MarkFailed(payload); err != nil {
		return err
	}
	if err := uc.txnRepo.Update(ctx, txn); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	uc.logger.Infow("payment failure recorded",
		"invoice", invoice.InvoiceNumber(),
		"provider_reference", reference,
	)
	return nil
}

// enqueueConfirmation writes the notification intent in the same transaction
// as the state change. Enqueue failures are logged, never propagated: a lost
// email must not roll back a settled payment.
func (uc *HandleWebhookUseCase) enqueueConfirmation(ctx context.Context, proj *project.Project, plan *billing.Plan, invoice *billing.Invoice) {
	owner, err := uc.userRepo.GetByID(ctx, proj.OwnerID())
	if err != nil {
		uc.logger.Warnw("skipping payment confirmation, owner lookup failed",
			"project_id", proj.ID(), "error", err)
		return
	}

	intent, err := notification.NewOutbox(owner.Email, "Payment Confirmation", notification.TemplatePaymentConfirmation, map[string]any{
		"first_name":     owner.FirstName,
		"project_name":   proj.Name(),
		"plan_name":      plan.Name(),
		"invoice_number": invoice.InvoiceNumber(),
		"amount":         invoice.Amount(),
		"currency":       invoice.Currency(),
	})
	if err != nil {
		uc.logger.Warnw("failed to build payment confirmation", "error", err)
		return
	}
	if err := uc.outboxRepo.Create(ctx, intent); err != nil {
		uc.logger.Warnw("failed to enqueue payment confirmation", "error", err)
	}
}
