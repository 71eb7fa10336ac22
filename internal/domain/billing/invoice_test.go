package billing

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidInvoice(t *testing.T) *Invoice {
	t.Helper()
	inv, err := NewInvoice(1, 2, "6f1c4f9e-6f9f-4f6f-bd5c-2a9c8f0c1d2e", 10000, "NGN", time.Now().UTC())
	require.NoError(t, err)
	require.NotNil(t, inv)
	return inv
}

func TestNewInvoiceNumber_Format(t *testing.T) {
	n := NewInvoiceNumber("project-uid", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^INV-[0-9A-F]{8}$`), n)
}

func TestNewInvoiceNumber_Deterministic(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, NewInvoiceNumber("p1", at), NewInvoiceNumber("p1", at))
	assert.NotEqual(t, NewInvoiceNumber("p1", at), NewInvoiceNumber("p2", at))
	assert.NotEqual(t, NewInvoiceNumber("p1", at), NewInvoiceNumber("p1", at.Add(time.Second)))
}

func TestNewInvoice_ValidInput(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	inv, err := NewInvoice(1, 2, "uid", 10000, "NGN", issuedAt)

	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.Equal(t, InvoiceStatusPending, inv.Status())
	assert.Equal(t, issuedAt, inv.IssuedAt())
	assert.Equal(t, issuedAt, inv.DueDate())
	assert.Nil(t, inv.PaidAt())
	assert.Equal(t, int64(10000), inv.Amount())
	assert.Equal(t, 1, inv.Version())
	assert.Regexp(t, `^INV-[0-9A-F]{8}$`, inv.InvoiceNumber())
}

func TestNewInvoice_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		projectID uint
		planID    uint
		uid       string
		amount    int64
		wantErr   string
	}{
		{"missing project", 0, 2, "uid", 100, "project ID is required"},
		{"missing plan", 1, 0, "uid", 100, "plan ID is required"},
		{"missing uid", 1, 2, "", 100, "project UID is required"},
		{"zero amount", 1, 2, "uid", 0, "amount must be positive"},
		{"negative amount", 1, 2, "uid", -5, "amount must be positive"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inv, err := NewInvoice(tc.projectID, tc.planID, tc.uid, tc.amount, "NGN", time.Now())
			assert.Error(t, err)
			assert.Nil(t, inv)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestInvoice_MarkPaid(t *testing.T) {
	inv := newValidInvoice(t)
	at := time.Now().UTC()

	require.NoError(t, inv.MarkPaid(at))
	assert.Equal(t, InvoiceStatusPaid, inv.Status())
	require.NotNil(t, inv.PaidAt())
	assert.Equal(t, at, *inv.PaidAt())
	assert.True(t, inv.IsPaid())
	assert.Equal(t, 2, inv.Version())
}

func TestInvoice_MarkPaid_AlreadyPaid(t *testing.T) {
	inv := newValidInvoice(t)
	require.NoError(t, inv.MarkPaid(time.Now().UTC()))

	err := inv.MarkPaid(time.Now().UTC())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already paid")
}

func TestInvoice_MarkFailed(t *testing.T) {
	inv := newValidInvoice(t)

	require.NoError(t, inv.MarkFailed())
	assert.Equal(t, InvoiceStatusFailed, inv.Status())
	assert.False(t, inv.IsPaid())
}

func TestInvoice_MarkFailed_AfterPaid(t *testing.T) {
	inv := newValidInvoice(t)
	require.NoError(t, inv.MarkPaid(time.Now().UTC()))

	assert.Error(t, inv.MarkFailed())
	assert.Equal(t, InvoiceStatusPaid, inv.Status())
}

func TestInvoice_Cancel(t *testing.T) {
	inv := newValidInvoice(t)

	require.NoError(t, inv.Cancel())
	assert.Equal(t, InvoiceStatusCancelled, inv.Status())

	err := inv.MarkPaid(time.Now().UTC())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
}

func TestReconstructInvoice_InvalidStatus(t *testing.T) {
	now := time.Now().UTC()
	inv, err := ReconstructInvoice(1, "INV-ABCDEF01", 1, 2, 100, "NGN", "BOGUS", now, now, nil, 1, now, now)
	assert.Error(t, err)
	assert.Nil(t, inv)
}
