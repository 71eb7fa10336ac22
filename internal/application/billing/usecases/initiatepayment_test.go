package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oysterbuild/backend/internal/application/billing/gateway"
	"github.com/oysterbuild/backend/internal/domain/billing"
	"github.com/oysterbuild/backend/internal/shared/constants"
	"github.com/oysterbuild/backend/internal/shared/errors"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

func reconstructTestInvoice(t *testing.T, status billing.InvoiceStatus) *billing.Invoice {
	t.Helper()
	now := time.Now().UTC()
	var paidAt *time.Time
	if status == billing.InvoiceStatusPaid {
		paidAt = &now
	}
	invoice, err := billing.ReconstructInvoice(11, "INV-0A1B2C3D", 5, 2, 10000, "NGN",
		status, now, now, paidAt, 1, now, now)
	require.NoError(t, err)
	return invoice
}

func newInitiatePaymentUseCase(invoice *billing.Invoice, gw *mockGateway, txnRepo *mockTransactionRepo) *InitiatePaymentUseCase {
	invoiceRepo := &mockInvoiceRepo{
		GetByInvoiceNumberFunc: func(ctx context.Context, number string) (*billing.Invoice, error) {
			if invoice != nil && number == invoice.InvoiceNumber() {
				return invoice, nil
			}
			return nil, errors.NewNotFoundError("invoice not found")
		},
	}
	return NewInitiatePaymentUseCase(invoiceRepo, txnRepo,
		map[string]gateway.PaymentGateway{constants.ProviderPaystack: gw}, logger.NewLogger())
}

func TestInitiatePayment_OpensCheckoutAndLogsTransaction(t *testing.T) {
	invoice := reconstructTestInvoice(t, billing.InvoiceStatusPending)

	gw := &mockGateway{
		InitializeFunc: func(ctx context.Context, email string, amount int64, currency, reference string) (*gateway.InitializeResult, error) {
			assert.Equal(t, "owner@example.com", email)
			assert.Equal(t, int64(10000), amount)
			assert.Equal(t, "NGN", currency)
			assert.Equal(t, "INV-0A1B2C3D", reference)
			return &gateway.InitializeResult{
				AuthorizationURL: "https://checkout.paystack.com/abc",
				Reference:        "ps_ref_1",
				AccessCode:       "abc",
			}, nil
		},
	}

	var logged *billing.Transaction
	txnRepo := &mockTransactionRepo{
		CreateFunc: func(ctx context.Context, txn *billing.Transaction) error {
			logged = txn
			return nil
		},
	}

	uc := newInitiatePaymentUseCase(invoice, gw, txnRepo)
	result, err := uc.Execute(context.Background(), InitiatePaymentCommand{
		InvoiceNumber: "INV-0A1B2C3D",
		Provider:      constants.ProviderPaystack,
		Email:         "owner@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc", result.AuthorizationURL)
	assert.Equal(t, "ps_ref_1", result.ProviderRef)

	require.NotNil(t, logged)
	assert.Equal(t, billing.TransactionStatusPending, logged.Status())
	assert.Equal(t, "ps_ref_1", logged.ProviderReference())
	assert.Equal(t, invoice.ID(), logged.InvoiceID())
}

func TestInitiatePayment_AlreadyPaidConflicts(t *testing.T) {
	invoice := reconstructTestInvoice(t, billing.InvoiceStatusPaid)

	gw := &mockGateway{
		InitializeFunc: func(ctx context.Context, email string, amount int64, currency, reference string) (*gateway.InitializeResult, error) {
			t.Fatal("settled invoice must not reach the gateway")
			return nil, nil
		},
	}
	txnRepo := &mockTransactionRepo{
		CreateFunc: func(ctx context.Context, txn *billing.Transaction) error {
			t.Fatal("settled invoice must not log a transaction")
			return nil
		},
	}

	uc := newInitiatePaymentUseCase(invoice, gw, txnRepo)
	_, err := uc.Execute(context.Background(), InitiatePaymentCommand{
		InvoiceNumber: "INV-0A1B2C3D",
		Provider:      constants.ProviderPaystack,
		Email:         "owner@example.com",
	})

	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestInitiatePayment_DuplicateReferenceConflicts(t *testing.T) {
	invoice := reconstructTestInvoice(t, billing.InvoiceStatusPending)

	gw := &mockGateway{
		InitializeFunc: func(ctx context.Context, email string, amount int64, currency, reference string) (*gateway.InitializeResult, error) {
			return &gateway.InitializeResult{AuthorizationURL: "https://checkout.paystack.com/abc", Reference: "ps_ref_1"}, nil
		},
	}
	txnRepo := &mockTransactionRepo{
		CreateFunc: func(ctx context.Context, txn *billing.Transaction) error {
			return fmt.Errorf("duplicate key value violates unique constraint \"uq_transactions_provider_reference\"")
		},
	}

	uc := newInitiatePaymentUseCase(invoice, gw, txnRepo)
	_, err := uc.Execute(context.Background(), InitiatePaymentCommand{
		InvoiceNumber: "INV-0A1B2C3D",
		Provider:      constants.ProviderPaystack,
		Email:         "owner@example.com",
	})

	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
	assert.Contains(t, err.Error(), "duplicate transaction reference")
}

func TestInitiatePayment_Validation(t *testing.T) {
	invoice := reconstructTestInvoice(t, billing.InvoiceStatusPending)
	uc := newInitiatePaymentUseCase(invoice, &mockGateway{}, &mockTransactionRepo{})

	tests := []struct {
		name string
		cmd  InitiatePaymentCommand
	}{
		{"missing email", InitiatePaymentCommand{InvoiceNumber: "INV-0A1B2C3D", Provider: constants.ProviderPaystack}},
		{"unknown provider", InitiatePaymentCommand{InvoiceNumber: "INV-0A1B2C3D", Provider: "FLUTTERWAVE", Email: "owner@example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.cmd)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestInitiatePayment_CancelledInvoiceRejected(t *testing.T) {
	invoice := reconstructTestInvoice(t, billing.InvoiceStatusCancelled)
	uc := newInitiatePaymentUseCase(invoice, &mockGateway{}, &mockTransactionRepo{})

	_, err := uc.Execute(context.Background(), InitiatePaymentCommand{
		InvoiceNumber: "INV-0A1B2C3D",
		Provider:      constants.ProviderPaystack,
		Email:         "owner@example.com",
	})
	assert.True(t, errors.IsValidationError(err))
}

func TestInitiatePayment_UnknownInvoice(t *testing.T) {
	uc := newInitiatePaymentUseCase(nil, &mockGateway{}, &mockTransactionRepo{})

	_, err := uc.Execute(context.Background(), InitiatePaymentCommand{
		InvoiceNumber: "INV-MISSING",
		Provider:      constants.ProviderPaystack,
		Email:         "owner@example.com",
	})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestInitiatePayment_GatewayErrorPropagates(t *testing.T) {
	invoice := reconstructTestInvoice(t, billing.InvoiceStatusPending)

	gw := &mockGateway{
		InitializeFunc: func(ctx context.Context, email string, amount int64, currency, reference string) (*gateway.InitializeResult, error) {
			return nil, errors.NewUpstreamUnavailableError("PAYSTACK", "payment provider is unreachable")
		},
	}
	txnRepo := &mockTransactionRepo{
		CreateFunc: func(ctx context.Context, txn *billing.Transaction) error {
			t.Fatal("failed checkout must not log a transaction")
			return nil
		},
	}

	uc := newInitiatePaymentUseCase(invoice, gw, txnRepo)
	_, err := uc.Execute(context.Background(), InitiatePaymentCommand{
		InvoiceNumber: "INV-0A1B2C3D",
		Provider:      constants.ProviderPaystack,
		Email:         "owner@example.com",
	})

	require.Error(t, err)
	upErr := errors.GetUpstreamError(err)
	require.NotNil(t, upErr)
	assert.Equal(t, errors.ErrorTypeUpstreamUnavailable, upErr.Type)
}
