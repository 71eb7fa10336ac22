package billing

import (
	"fmt"
	"time"
)

// PaymentHistoryStatus represents a project's subscription-cycle state.
type PaymentHistoryStatus string

const (
	PaymentHistoryStatusPending PaymentHistoryStatus = "Pending"
	PaymentHistoryStatusActive  PaymentHistoryStatus = "Active"
	PaymentHistoryStatusExpired PaymentHistoryStatus = "Expired"
)

func (s PaymentHistoryStatus) IsValid() bool {
	switch s {
	case PaymentHistoryStatusPending, PaymentHistoryStatusActive, PaymentHistoryStatusExpired:
		return true
	}
	return false
}

// PaymentHistory is a project's subscription-cycle record. At most one
// Pending row exists per project; invoice generation updates the existing
// row under a row lock instead of inserting a second one.
type PaymentHistory struct {
	id              uint
	projectID       uint
	planID          uint
	invoiceID       *uint
	status          PaymentHistoryStatus
	startDate       time.Time
	nextBillingDate time.Time
	months          int
	version         int
	createdAt       time.Time
	updatedAt       time.Time
}

func NewPaymentHistory(projectID, planID uint, invoiceID *uint, status PaymentHistoryStatus,
	startDate, nextBillingDate time.Time, months int) (*PaymentHistory, error) {

	if projectID == 0 {
		return nil, fmt.Errorf("project ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid payment history status: %s", status)
	}
	if nextBillingDate.Before(startDate) {
		return nil, fmt.Errorf("next billing date cannot precede start date")
	}
	if months < 1 {
		months = 1
	}

	now := time.Now().UTC()
	return &PaymentHistory{
		projectID:       projectID,
		planID:          planID,
		invoiceID:       invoiceID,
		status:          status,
		startDate:       startDate,
		nextBillingDate: nextBillingDate,
		months:          months,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructPaymentHistory(id, projectID, planID uint, invoiceID *uint,
	status PaymentHistoryStatus, startDate, nextBillingDate time.Time, months int,
	version int, createdAt, updatedAt time.Time) (*PaymentHistory, error) {

	if id == 0 {
		return nil, fmt.Errorf("payment history ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid payment history status: %s", status)
	}

	return &PaymentHistory{
		id:              id,
		projectID:       projectID,
		planID:          planID,
		invoiceID:       invoiceID,
		status:          status,
		startDate:       startDate,
		nextBillingDate: nextBillingDate,
		months:          months,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func (h *PaymentHistory) ID() uint {
	return h.id
}

func (h *PaymentHistory) SetID(id uint) error {
	if h.id != 0 {
		return fmt.Errorf("payment history ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("payment history ID cannot be zero")
	}
	h.id = id
	return nil
}

func (h *PaymentHistory) ProjectID() uint {
	return h.projectID
}

func (h *PaymentHistory) PlanID() uint {
	return h.planID
}

func (h *PaymentHistory) InvoiceID() *uint {
	return h.invoiceID
}

func (h *PaymentHistory) Status() PaymentHistoryStatus {
	return h.status
}

func (h *PaymentHistory) StartDate() time.Time {
	return h.startDate
}

func (h *PaymentHistory) NextBillingDate() time.Time {
	return h.nextBillingDate
}

func (h *PaymentHistory) Months() int {
	return h.months
}

func (h *PaymentHistory) Version() int {
	return h.version
}

func (h *PaymentHistory) CreatedAt() time.Time {
	return h.createdAt
}

func (h *PaymentHistory) UpdatedAt() time.Time {
	return h.updatedAt
}

// Rebill repoints a still-Pending cycle at a new plan and invoice in place.
// This is how a retried or upgraded checkout reuses the locked Pending row
// instead of creating a duplicate.
func (h *PaymentHistory) Rebill(planID uint, invoiceID *uint, status PaymentHistoryStatus,
	startDate, nextBillingDate time.Time, months int) error {

	if h.status == PaymentHistoryStatusExpired {
		return fmt.Errorf("cannot rebill an expired payment history")
	}
	if !status.IsValid() {
		return fmt.Errorf("invalid payment history status: %s", status)
	}
	if planID == 0 {
		return fmt.Errorf("plan ID is required")
	}
	if months < 1 {
		months = 1
	}
	h.planID = planID
	h.invoiceID = invoiceID
	h.status = status
	h.startDate = startDate
	h.nextBillingDate = nextBillingDate
	h.months = months
	h.updatedAt = time.Now().UTC()
	h.version++
	return nil
}

// Activate marks the cycle live after a successful payment, restarting the
// clock from the settlement time.
func (h *PaymentHistory) Activate(startDate, nextBillingDate time.Time) error {
	if nextBillingDate.Before(startDate) {
		return fmt.Errorf("next billing date cannot precede start date")
	}
	h.status = PaymentHistoryStatusActive
	h.startDate = startDate
	h.nextBillingDate = nextBillingDate
	h.updatedAt = time.Now().UTC()
	h.version++
	return nil
}

// Expire ends the cycle. Expiring an already-expired cycle is a no-op.
func (h *PaymentHistory) Expire() {
	if h.status == PaymentHistoryStatusExpired {
		return
	}
	h.status = PaymentHistoryStatusExpired
	h.updatedAt = time.Now().UTC()
	h.version++
}
