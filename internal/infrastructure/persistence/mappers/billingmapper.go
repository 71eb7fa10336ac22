package mappers

import (
	"gorm.io/datatypes"

	"github.com/oysterbuild/backend/internal/domain/billing"
	"github.com/oysterbuild/backend/internal/infrastructure/persistence/models"
)

func PlanToModel(p *billing.Plan) *models.PlanModel {
	return &models.PlanModel{
		ID:          p.ID(),
		Name:        p.Name(),
		Slug:        p.Slug(),
		Description: p.Description(),
		Frequency:   string(p.Frequency()),
		PlanStatus:  string(p.PlanStatus()),
		Amount:      p.Amount(),
		Currency:    p.Currency(),
		Deactivated: p.Deactivated(),
		Version:     p.Version(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func PlanToDomain(model *models.PlanModel) (*billing.Plan, error) {
	return billing.ReconstructPlan(
		model.ID, model.Name, model.Slug, model.Description,
		billing.Frequency(model.Frequency), billing.PlanStatus(model.PlanStatus),
		model.Amount, model.Currency, model.Deactivated,
		model.Version, model.CreatedAt, model.UpdatedAt,
	)
}

func PackageToModel(p *billing.Package) *models.PackageModel {
	return &models.PackageModel{
		ID:          p.ID,
		PlanID:      p.PlanID,
		Name:        p.Name,
		Tag:         p.Tag,
		Count:       p.Count,
		IsUnlimited: p.IsUnlimited,
	}
}

func PackageToDomain(model *models.PackageModel) *billing.Package {
	return &billing.Package{
		ID:          model.ID,
		PlanID:      model.PlanID,
		Name:        model.Name,
		Tag:         model.Tag,
		Count:       model.Count,
		IsUnlimited: model.IsUnlimited,
	}
}

func UsageCountToModel(c *billing.UsageCount) *models.UsageCountModel {
	return &models.UsageCountModel{
		ID:         c.ID,
		ProjectID:  c.ProjectID,
		PackageTag: c.PackageTag,
		UsageCount: c.UsageCount,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func UsageCountToDomain(model *models.UsageCountModel) *billing.UsageCount {
	return &billing.UsageCount{
		ID:         model.ID,
		ProjectID:  model.ProjectID,
		PackageTag: model.PackageTag,
		UsageCount: model.UsageCount,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func InvoiceToModel(i *billing.Invoice) *models.InvoiceModel {
	return &models.InvoiceModel{
		ID:            i.ID(),
		InvoiceNumber: i.InvoiceNumber(),
		ProjectID:     i.ProjectID(),
		PlanID:        i.PlanID(),
		Amount:        i.Amount(),
		Currency:      i.Currency(),
		Status:        string(i.Status()),
		IssuedAt:      i.IssuedAt(),
		DueDate:       i.DueDate(),
		PaidAt:        i.PaidAt(),
		Version:       i.Version(),
		CreatedAt:     i.CreatedAt(),
		UpdatedAt:     i.UpdatedAt(),
	}
}

func InvoiceToDomain(model *models.InvoiceModel) (*billing.Invoice, error) {
	return billing.ReconstructInvoice(
		model.ID, model.InvoiceNumber, model.ProjectID, model.PlanID,
		model.Amount, model.Currency, billing.InvoiceStatus(model.Status),
		model.IssuedAt, model.DueDate, model.PaidAt,
		model.Version, model.CreatedAt, model.UpdatedAt,
	)
}

func TransactionToModel(t *billing.Transaction) *models.TransactionModel {
	model := &models.TransactionModel{
		ID:                t.ID(),
		InvoiceID:         t.InvoiceID(),
		ProjectID:         t.ProjectID(),
		Reference:         t.Reference(),
		Provider:          t.Provider(),
		ProviderReference: t.ProviderReference(),
		Amount:            t.Amount(),
		Currency:          t.Currency(),
		Status:            string(t.Status()),
		AuthorizationURL:  t.AuthorizationURL(),
		PaidAt:            t.PaidAt(),
		Version:           t.Version(),
		CreatedAt:         t.CreatedAt(),
		UpdatedAt:         t.UpdatedAt(),
	}
	if payload := t.ProviderPayload(); len(payload) > 0 {
		model.ProviderPayload = datatypes.JSON(payload)
	}
	return model
}

func TransactionToDomain(model *models.TransactionModel) (*billing.Transaction, error) {
	return billing.ReconstructTransaction(
		model.ID, model.InvoiceID, model.ProjectID,
		model.Reference, model.Provider, model.ProviderReference,
		model.Amount, model.Currency, billing.TransactionStatus(model.Status),
		model.AuthorizationURL, []byte(model.ProviderPayload), model.PaidAt,
		model.Version, model.CreatedAt, model.UpdatedAt,
	)
}

func PaymentHistoryToModel(h *billing.PaymentHistory) *models.PaymentHistoryModel {
	return &models.PaymentHistoryModel{
		ID:              h.ID(),
		ProjectID:       h.ProjectID(),
		PlanID:          h.PlanID(),
		InvoiceID:       h.InvoiceID(),
		Status:          string(h.Status()),
		StartDate:       h.StartDate(),
		NextBillingDate: h.NextBillingDate(),
		Months:          h.Months(),
		Version:         h.Version(),
		CreatedAt:       h.CreatedAt(),
		UpdatedAt:       h.UpdatedAt(),
	}
}

func PaymentHistoryToDomain(model *models.PaymentHistoryModel) (*billing.PaymentHistory, error) {
	return billing.ReconstructPaymentHistory(
		model.ID, model.ProjectID, model.PlanID, model.InvoiceID,
		billing.PaymentHistoryStatus(model.Status),
		model.StartDate, model.NextBillingDate, model.Months,
		model.Version, model.CreatedAt, model.UpdatedAt,
	)
}
