package billing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusFailed    InvoiceStatus = "FAILED"
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusFailed,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// NewInvoiceNumber derives a business-facing invoice number from the project
// identifier and the issue timestamp. The number is the INV- prefix followed
// by the first 8 uppercase hex characters of a SHA-256 digest.
func NewInvoiceNumber(projectUID string, issuedAt time.Time) string {
	sum := sha256.Sum256([]byte(projectUID + issuedAt.Format(time.RFC3339)))
	return "INV-" + strings.ToUpper(hex.EncodeToString(sum[:])[:8])
}

// Invoice is a billing demand for one subscription cycle of a project.
type Invoice struct {
	id            uint
	invoiceNumber string
	projectID     uint
	planID        uint
	amount        int64
	currency      string
	status        InvoiceStatus
	issuedAt      time.Time
	dueDate       time.Time
	paidAt        *time.Time
	version       int
	createdAt     time.Time
	updatedAt     time.Time
}

func NewInvoice(projectID, planID uint, projectUID string, amount int64, currency string,
	issuedAt time.Time) (*Invoice, error) {

	if projectID == 0 {
		return nil, fmt.Errorf("project ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if projectUID == "" {
		return nil, fmt.Errorf("project UID is required")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("invoice amount must be positive")
	}
	if currency == "" {
		return nil, fmt.Errorf("invoice currency is required")
	}

	now := time.Now().UTC()
	return &Invoice{
		invoiceNumber: NewInvoiceNumber(projectUID, issuedAt),
		projectID:     projectID,
		planID:        planID,
		amount:        amount,
		currency:      currency,
		status:        InvoiceStatusPending,
		issuedAt:      issuedAt,
		dueDate:       issuedAt,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructInvoice(id uint, invoiceNumber string, projectID, planID uint,
	amount int64, currency string, status InvoiceStatus, issuedAt, dueDate time.Time,
	paidAt *time.Time, version int, createdAt, updatedAt time.Time) (*Invoice, error) {

	if id == 0 {
		return nil, fmt.Errorf("invoice ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid invoice status: %s", status)
	}

	return &Invoice{
		id:            id,
		invoiceNumber: invoiceNumber,
		projectID:     projectID,
		planID:        planID,
		amount:        amount,
		currency:      currency,
		status:        status,
		issuedAt:      issuedAt,
		dueDate:       dueDate,
		paidAt:        paidAt,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (i *Invoice) ID() uint {
	return i.id
}

func (i *Invoice) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("invoice ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("invoice ID cannot be zero")
	}
	i.id = id
	return nil
}

func (i *Invoice) InvoiceNumber() string {
	return i.invoiceNumber
}

func (i *Invoice) ProjectID() uint {
	return i.projectID
}

func (i *Invoice) PlanID() uint {
	return i.planID
}

func (i *Invoice) Amount() int64 {
	return i.amount
}

func (i *Invoice) Currency() string {
	return i.currency
}

func (i *Invoice) Status() InvoiceStatus {
	return i.status
}

func (i *Invoice) IssuedAt() time.Time {
	return i.issuedAt
}

func (i *Invoice) DueDate() time.Time {
	return i.dueDate
}

func (i *Invoice) PaidAt() *time.Time {
	return i.paidAt
}

func (i *Invoice) Version() int {
	return i.version
}

func (i *Invoice) CreatedAt() time.Time {
	return i.createdAt
}

func (i *Invoice) UpdatedAt() time.Time {
	return i.updatedAt
}

// IsPaid reports whether the invoice has already been settled. Webhook
// reconciliation checks this before re-applying a success payload.
func (i *Invoice) IsPaid() bool {
	return i.status == InvoiceStatusPaid
}

// MarkPaid settles the invoice. A paid invoice is terminal; marking it paid
// again returns an error so replayed webhooks are caught by the caller.
func (i *Invoice) MarkPaid(at time.Time) error {
	if i.status == InvoiceStatusPaid {
		return fmt.Errorf("invoice %s is already paid", i.invoiceNumber)
	}
	if i.status == InvoiceStatusCancelled {
		return fmt.Errorf("invoice %s is cancelled", i.invoiceNumber)
	}
	i.status = InvoiceStatusPaid
	i.paidAt = &at
	i.updatedAt = time.Now().UTC()
	i.version++
	return nil
}

// MarkFailed records a failed payment attempt against the invoice.
func (i *Invoice) MarkFailed() error {
	if i.status == InvoiceStatusPaid {
		return fmt.Errorf("invoice %s is already paid", i.invoiceNumber)
	}
	i.status = InvoiceStatusFailed
	i.updatedAt = time.Now().UTC()
	i.version++
	return nil
}

// Cancel voids an unpaid invoice.
func (i *Invoice) Cancel() error {
	if i.status == InvoiceStatusPaid {
		return fmt.Errorf("invoice %s is already paid", i.invoiceNumber)
	}
	i.status = InvoiceStatusCancelled
	i.updatedAt = time.Now().UTC()
	i.version++
	return nil
}
