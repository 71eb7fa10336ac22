package usecases

import (
	"context"

	billingusecases "github.com/oysterbuild/backend/internal/application/billing/usecases"
)

// PermissionChecker answers project-scoped authorization questions.
// Satisfied by permission.Resolver.
type PermissionChecker interface {
	HasProjectPermission(ctx context.Context, userID, projectID uint, permission string) (bool, error)
}

// QuotaService gates and records plan-package consumption. Satisfied by
// billing usecases.UsageMeter.
type QuotaService interface {
	HasReportQuota(ctx context.Context, projectID uint) (bool, error)
	IncrementReportUsage(ctx context.Context, projectID uint) error
}

// InvoiceGenerator opens a billing cycle for a project. Satisfied by
// billing usecases.GenerateInvoiceUseCase.
type InvoiceGenerator interface {
	Execute(ctx context.Context, cmd billingusecases.GenerateInvoiceCommand) (*billingusecases.GenerateInvoiceResult, error)
}
