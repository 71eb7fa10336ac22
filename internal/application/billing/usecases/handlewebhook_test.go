package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oysterbuild/backend/internal/application/billing/gateway"
	"github.com/oysterbuild/backend/internal/domain/billing"
	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/domain/user"
	"github.com/oysterbuild/backend/internal/shared/biztime"
	"github.com/oysterbuild/backend/internal/shared/constants"
	"github.com/oysterbuild/backend/internal/shared/errors"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

type webhookFixture struct {
	invoice *billing.Invoice
	txn     *billing.Transaction
	history *billing.PaymentHistory
	plan    *billing.Plan
	proj    *project.Project

	invoiceUpdates int
	txnUpdates     int
	historyUpdates int
	projectUpdates int
	usageDeletes   []uint
	outbox         *mockOutboxRepo

	uc *HandleWebhookUseCase
}

func newWebhookFixture(t *testing.T) *webhookFixture {
	t.Helper()
	now := time.Now().UTC()
	f := &webhookFixture{outbox: &mockOutboxRepo{}}

	var err error
	f.plan = reconstructTestPlan(t, 2, billing.PlanStatusPaid, 10000)
	f.proj = reconstructTestProject(t, 5)

	f.invoice, err = billing.ReconstructInvoice(11, "INV-0A1B2C3D", 5, 2, 10000, "NGN",
		billing.InvoiceStatusPending, now, now, nil, 1, now, now)
	require.NoError(t, err)

	f.txn, err = billing.ReconstructTransaction(21, 11, 5, "TXN-1-ABCDEF01", constants.ProviderPaystack,
		"ps_ref_1", 10000, "NGN", billing.TransactionStatusPending, "", nil, nil, 1, now, now)
	require.NoError(t, err)

	invoiceID := uint(11)
	f.history, err = billing.ReconstructPaymentHistory(31, 5, 2, &invoiceID,
		billing.PaymentHistoryStatusPending, now, now.AddDate(0, 1, 0), 1, 1, now, now)
	require.NoError(t, err)

	gw := &mockGateway{}
	txnRepo := &mockTransactionRepo{
		GetByProviderReferenceFunc: func(ctx context.Context, provider, ref string) (*billing.Transaction, error) {
			if provider == constants.ProviderPaystack && ref == "ps_ref_1" {
				return f.txn, nil
			}
			return nil, errors.NewNotFoundError("transaction not found")
		},
		UpdateFunc: func(ctx context.Context, txn *billing.Transaction) error {
			f.txnUpdates++
			return nil
		},
	}
	invoiceRepo := &mockInvoiceRepo{
		GetByIDFunc: func(ctx context.Context, id uint) (*billing.Invoice, error) { return f.invoice, nil },
		UpdateFunc: func(ctx context.Context, invoice *billing.Invoice) error {
			f.invoiceUpdates++
			return nil
		},
	}
	historyRepo := &mockHistoryRepo{
		GetByInvoiceIDFunc: func(ctx context.Context, invoiceID uint) (*billing.PaymentHistory, error) {
			return f.history, nil
		},
		UpdateFunc: func(ctx context.Context, history *billing.PaymentHistory) error {
			f.historyUpdates++
			return nil
		},
	}
	planRepo := &mockPlanRepo{
		GetByIDFunc: func(ctx context.Context, id uint) (*billing.Plan, error) { return f.plan, nil },
	}
	usageRepo := &mockUsageRepo{
		DeleteByProjectIDFunc: func(ctx context.Context, projectID uint) error {
			f.usageDeletes = append(f.usageDeletes, projectID)
			return nil
		},
	}
	projectRepo := &mockProjectRepo{
		GetByIDFunc: func(ctx context.Context, id uint) (*project.Project, error) { return f.proj, nil },
		UpdateFunc: func(ctx context.Context, p *project.Project) error {
			f.projectUpdates++
			return nil
		},
	}
	userRepo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return &user.User{ID: id, Email: "owner@example.com", FirstName: "Ada"}, nil
		},
	}

	f.uc = NewHandleWebhookUseCase(
		map[string]gateway.PaymentGateway{constants.ProviderPaystack: gw},
		txnRepo, invoiceRepo, historyRepo, planRepo, usageRepo, projectRepo, userRepo,
		f.outbox, stubTxManager{}, logger.NewLogger(),
	)
	return f
}

func TestHandleWebhook_ChargeSuccess(t *testing.T) {
	f := newWebhookFixture(t)
	payload := []byte(`{"event":"charge.success","data":{"reference":"ps_ref_1"}}`)

	err := f.uc.Execute(context.Background(), HandleWebhookCommand{
		Provider:  constants.ProviderPaystack,
		Payload:   payload,
		Signature: "sig",
	})

	require.NoError(t, err)
	assert.True(t, f.invoice.IsPaid())
	assert.Equal(t, billing.TransactionStatusSuccess, f.txn.Status())
	assert.Equal(t, payload, f.txn.ProviderPayload())
	assert.Equal(t, billing.PaymentHistoryStatusActive, f.history.Status())
	assert.Equal(t, project.PaymentStatusActive, f.proj.PaymentStatus())
	assert.Equal(t, []uint{5}, f.usageDeletes)
	assert.Equal(t, 1, f.invoiceUpdates)
	assert.Equal(t, 1, f.txnUpdates)
	assert.Equal(t, 1, f.historyUpdates)
	assert.Equal(t, 1, f.projectUpdates)

	require.Len(t, f.outbox.created, 1)
	assert.Equal(t, "owner@example.com", f.outbox.created[0].Recipient)
}

func TestHandleWebhook_ChargeSuccessAnchorsBillingDateAtMidnight(t *testing.T) {
	f := newWebhookFixture(t)
	payload := []byte(`{"event":"charge.success","data":{"reference":"ps_ref_1"}}`)

	err := f.uc.Execute(context.Background(), HandleWebhookCommand{
		Provider:  constants.ProviderPaystack,
		Payload:   payload,
		Signature: "sig",
	})
	require.NoError(t, err)

	// The cycle end must be a date-only value so the daily reminder sweep,
	// which matches whole days, sees it on both the 2-day and 1-day marks.
	want := biztime.Today().AddDate(0, f.history.Months(), 0)

	require.NotNil(t, f.proj.SubscriptionEndDate())
	assert.Equal(t, want, *f.proj.SubscriptionEndDate())
	assert.Equal(t, want, f.history.NextBillingDate())
}

func TestHandleWebhook_ReplayIsNoOp(t *testing.T) {
	f := newWebhookFixture(t)
	require.NoError(t, f.invoice.MarkPaid(time.Now().UTC()))
	payload := []byte(`{"event":"charge.success","data":{"reference":"ps_ref_1"}}`)

	err := f.uc.Execute(context.Background(), HandleWebhookCommand{
		Provider:  constants.ProviderPaystack,
		Payload:   payload,
		Signature: "sig",
	})

	require.NoError(t, err)
	assert.Zero(t, f.invoiceUpdates)
	assert.Zero(t, f.txnUpdates)
	assert.Zero(t, f.historyUpdates)
	assert.Zero(t, f.projectUpdates)
	assert.Empty(t, f.usageDeletes)
	assert.Empty(t, f.outbox.created)
}

func TestHandleWebhook_ChargeFailed(t *testing.T) {
	f := newWebhookFixture(t)
	payload := []byte(`{"event":"charge.failed","data":{"reference":"ps_ref_1"}}`)

	err := f.uc.Execute(context.Background(), HandleWebhookCommand{
		Provider:  constants.ProviderPaystack,
		Payload:   payload,
		Signature: "sig",
	})

	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusFailed, f.invoice.Status())
	assert.Equal(t, billing.TransactionStatusFailed, f.txn.Status())
	assert.Equal(t, payload, f.txn.ProviderPayload())
	assert.Zero(t, f.projectUpdates)
	assert.Empty(t, f.usageDeletes)
	assert.Empty(t, f.outbox.created)
}

func TestHandleWebhook_UnknownEventIgnored(t *testing.T) {
	f := newWebhookFixture(t)
	payload := []byte(`{"event":"transfer.success","data":{"reference":"ps_ref_1"}}`)

	err := f.uc.Execute(context.Background(), HandleWebhookCommand{
		Provider:  constants.ProviderPaystack,
		Payload:   payload,
		Signature: "sig",
	})

	require.NoError(t, err)
	assert.Zero(t, f.invoiceUpdates)
	assert.Zero(t, f.txnUpdates)
}

func TestHandleWebhook_BadSignature(t *testing.T) {
	f := newWebhookFixture(t)
	gw := &mockGateway{VerifyFunc: func(payload []byte, signature string) bool { return false }}
	f.uc.gateways[constants.ProviderPaystack] = gw

	err := f.uc.Execute(context.Background(), HandleWebhookCommand{
		Provider:  constants.ProviderPaystack,
		Payload:   []byte(`{"event":"charge.success","data":{"reference":"ps_ref_1"}}`),
		Signature: "bad",
	})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeUnauthorized, appErr.Type)
	assert.Zero(t, f.invoiceUpdates)
}

func TestHandleWebhook_UnknownReference(t *testing.T) {
	f := newWebhookFixture(t)

	err := f.uc.Execute(context.Background(), HandleWebhookCommand{
		Provider:  constants.ProviderPaystack,
		Payload:   []byte(`{"event":"charge.success","data":{"reference":"ps_ref_missing"}}`),
		Signature: "sig",
	})

	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeBadRequest, appErr.Type)
}

func TestHandleWebhook_MalformedPayload(t *testing.T) {
	f := newWebhookFixture(t)

	err := f.uc.Execute(context.Background(), HandleWebhookCommand{
		Provider:  constants.ProviderPaystack,
		Payload:   []byte(`{not json`),
		Signature: "sig",
	})

	assert.True(t, errors.IsValidationError(err))
}
