package dto

import (
	"time"

	"github.com/oysterbuild/backend/internal/domain/billing"
)

// PaymentHistoryDTO is a subscription-cycle record joined with its plan
// summary.
type PaymentHistoryDTO struct {
	ID              uint            `json:"id"`
	ProjectID       uint            `json:"project_id"`
	InvoiceID       *uint           `json:"invoice_id,omitempty"`
	Status          string          `json:"status"`
	StartDate       time.Time       `json:"start_date"`
	NextBillingDate time.Time       `json:"next_billing_date"`
	Months          int             `json:"months"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Plan            *PlanSummaryDTO `json:"plan,omitempty"`
}

func ToPaymentHistoryDTO(h *billing.PaymentHistory, plan *billing.Plan) *PaymentHistoryDTO {
	if h == nil {
		return nil
	}
	return &PaymentHistoryDTO{
		ID:              h.ID(),
		ProjectID:       h.ProjectID(),
		InvoiceID:       h.InvoiceID(),
		Status:          string(h.Status()),
		StartDate:       h.StartDate(),
		NextBillingDate: h.NextBillingDate(),
		Months:          h.Months(),
		CreatedAt:       h.CreatedAt(),
		UpdatedAt:       h.UpdatedAt(),
		Plan:            ToPlanSummaryDTO(plan),
	}
}
