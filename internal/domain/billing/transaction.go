package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransactionStatus represents the lifecycle state of a gateway attempt.
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "PENDING"
	TransactionStatusSuccess  TransactionStatus = "SUCCESS"
	TransactionStatusFailed   TransactionStatus = "FAILED"
	TransactionStatusRefunded TransactionStatus = "REFUNDED"
)

func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusSuccess,
		TransactionStatusFailed, TransactionStatusRefunded:
		return true
	}
	return false
}

// NewTransactionReference builds an internal payment reference of the form
// TXN-<unix>-<8 uppercase hex>.
func NewTransactionReference(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("TXN-%d-%s", at.Unix(), suffix)
}

// Transaction is a single gateway payment attempt against an invoice.
// Attempts are uniquely keyed by (provider, provider reference) so a replayed
// gateway delivery can never be logged twice.
type Transaction struct {
	id                uint
	invoiceID         uint
	projectID         uint
	reference         string
	provider          string
	providerReference string
	amount            int64
	currency          string
	status            TransactionStatus
	authorizationURL  string
	providerPayload   []byte
	paidAt            *time.Time
	version           int
	createdAt         time.Time
	updatedAt         time.Time
}

func NewTransaction(invoiceID, projectID uint, provider, providerReference string,
	amount int64, currency string) (*Transaction, error) {

	if invoiceID == 0 {
		return nil, fmt.Errorf("invoice ID is required")
	}
	if provider == "" {
		return nil, fmt.Errorf("payment provider is required")
	}
	if providerReference == "" {
		return nil, fmt.Errorf("provider reference is required")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("transaction amount must be positive")
	}

	now := time.Now().UTC()
	return &Transaction{
		invoiceID:         invoiceID,
		projectID:         projectID,
		reference:         NewTransactionReference(now),
		provider:          provider,
		providerReference: providerReference,
		amount:            amount,
		currency:          currency,
		status:            TransactionStatusPending,
		version:           1,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

func ReconstructTransaction(id, invoiceID, projectID uint, reference, provider,
	providerReference string, amount int64, currency string, status TransactionStatus,
	authorizationURL string, providerPayload []byte, paidAt *time.Time, version int,
	createdAt, updatedAt time.Time) (*Transaction, error) {

	if id == 0 {
		return nil, fmt.Errorf("transaction ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid transaction status: %s", status)
	}

	return &Transaction{
		id:                id,
		invoiceID:         invoiceID,
		projectID:         projectID,
		reference:         reference,
		provider:          provider,
		providerReference: providerReference,
		amount:            amount,
		currency:          currency,
		status:            status,
		authorizationURL:  authorizationURL,
		providerPayload:   providerPayload,
		paidAt:            paidAt,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (t *Transaction) ID() uint {
	return t.id
}

func (t *Transaction) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("transaction ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("transaction ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Transaction) InvoiceID() uint {
	return t.invoiceID
}

func (t *Transaction) ProjectID() uint {
	return t.projectID
}

func (t *Transaction) Reference() string {
	return t.reference
}

func (t *Transaction) Provider() string {
	return t.provider
}

func (t *Transaction) ProviderReference() string {
	return t.providerReference
}

func (t *Transaction) Amount() int64 {
	return t.amount
}

func (t *Transaction) Currency() string {
	return t.currency
}

func (t *Transaction) Status() TransactionStatus {
	return t.status
}

func (t *Transaction) AuthorizationURL() string {
	return t.authorizationURL
}

func (t *Transaction) ProviderPayload() []byte {
	return t.providerPayload
}

func (t *Transaction) PaidAt() *time.Time {
	return t.paidAt
}

func (t *Transaction) Version() int {
	return t.version
}

func (t *Transaction) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Transaction) UpdatedAt() time.Time {
	return t.updatedAt
}

// SetAuthorizationURL stores the gateway checkout URL returned on initiation.
func (t *Transaction) SetAuthorizationURL(url string) {
	t.authorizationURL = url
	t.updatedAt = time.Now().UTC()
}

// MarkSuccess settles the attempt and keeps the raw provider payload for audit.
func (t *Transaction) MarkSuccess(payload []byte, at time.Time) error {
	if t.status == TransactionStatusSuccess {
		return fmt.Errorf("transaction %s is already successful", t.reference)
	}
	t.status = TransactionStatusSuccess
	t.providerPayload = payload
	t.paidAt = &at
	t.updatedAt = time.Now().UTC()
	t.version++
	return nil
}

// MarkFailed records a failed attempt with the raw provider payload.
func (t *Transaction) MarkFailed(payload []byte) error {
	if t.status == TransactionStatusSuccess {
		return fmt.Errorf("transaction %s is already successful", t.reference)
	}
	t.status = TransactionStatusFailed
	t.providerPayload = payload
	t.updatedAt = time.Now().UTC()
	t.version++
	return nil
}
