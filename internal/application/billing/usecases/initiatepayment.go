package usecases

import (
	"context"
	"fmt"

	"github.com/oysterbuild/backend/internal/application/billing/gateway"
	"github.com/oysterbuild/backend/internal/domain/billing"
	"github.com/oysterbuild/backend/internal/shared/errors"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

type InitiatePaymentCommand struct {
	InvoiceNumber string
	Provider      string
	Email         string
}

type InitiatePaymentResult struct {
	AuthorizationURL string
	Reference        string
	ProviderRef      string
}

// InitiatePaymentUseCase opens a gateway checkout for a pending invoice and
// pre-logs the attempt as a PENDING transaction keyed by the provider
// reference, so the later webhook can be matched.
type InitiatePaymentUseCase struct {
	invoiceRepo billing.InvoiceRepository
	txnRepo     billing.TransactionRepository
	gateways    map[string]gateway.PaymentGateway
	logger      logger.Interface
}

func NewInitiatePaymentUseCase(
	invoiceRepo billing.InvoiceRepository,
	txnRepo billing.TransactionRepository,
	gateways map[string]gateway.PaymentGateway,
	logger logger.Interface,
) *InitiatePaymentUseCase {
	return &InitiatePaymentUseCase{
		invoiceRepo: invoiceRepo,
		txnRepo:     txnRepo,
		gateways:    gateways,
		logger:      logger,
	}
}

func (uc *InitiatePaymentUseCase) Execute(ctx context.Context, cmd InitiatePaymentCommand) (*InitiatePaymentResult, error) {
	if cmd.Email == "" {
		return nil, errors.NewValidationError("payer email is required")
	}

	gw, ok := uc.gateways[cmd.Provider]
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("unsupported payment provider: %s", cmd.Provider))
	}

	invoice, err := uc.invoiceRepo.GetByInvoiceNumber(ctx, cmd.InvoiceNumber)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("invoice not found")
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if invoice.IsPaid() {
		return nil, errors.NewConflictError("invoice is already paid")
	}
	if invoice.Status() == billing.InvoiceStatusCancelled {
		return nil, errors.NewValidationError("invoice is cancelled")
	}

	init, err := gw.Initialize(ctx, cmd.Email, invoice.Amount(), invoice.Currency(), invoice.InvoiceNumber())
	if err != nil {
		uc.logger.Errorw("gateway initialize failed",
			"provider", cmd.Provider,
			"invoice", invoice.InvoiceNumber(),
			"error", err,
		)
		return nil, err
	}

	txn, err := billing.NewTransaction(invoice.ID(), invoice.ProjectID(), gw.Name(), init.Reference, invoice.Amount(), invoice.Currency())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	txn.SetAuthorizationURL(init.AuthorizationURL)

	if err := uc.txnRepo.Create(ctx, txn); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("duplicate transaction reference")
		}
		return nil, fmt.Errorf("failed to log transaction: %w", err)
	}

	uc.logger.Infow("payment initiated",
		"invoice", invoice.InvoiceNumber(),
		"provider", gw.Name(),
		"provider_reference", init.Reference,
		"reference", txn.Reference(),
	)

	return &InitiatePaymentResult{
		AuthorizationURL: init.AuthorizationURL,
		Reference:        txn.Reference(),
		ProviderRef:      init.Reference,
	}, nil
}
