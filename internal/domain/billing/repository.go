package billing

import (
	"context"
	"time"
)

type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	GetBySlug(ctx context.Context, slug string) (*Plan, error)
	Update(ctx context.Context, plan *Plan) error
	ListActive(ctx context.Context) ([]*Plan, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}

type PackageRepository interface {
	Create(ctx context.Context, pkg *Package) error
	GetByPlanAndTag(ctx context.Context, planID uint, tag string) (*Package, error)
	ListByPlanID(ctx context.Context, planID uint) ([]*Package, error)
	ExistsByPlanAndTag(ctx context.Context, planID uint, tag string) (bool, error)
}

type UsageCountRepository interface {
	// GetForUpdate loads the counter row under a row lock, serializing
	// concurrent increments for the same project and tag.
	GetForUpdate(ctx context.Context, projectID uint, packageTag string) (*UsageCount, error)
	Get(ctx context.Context, projectID uint, packageTag string) (*UsageCount, error)
	Create(ctx context.Context, count *UsageCount) error
	Update(ctx context.Context, count *UsageCount) error
	DeleteByProjectID(ctx context.Context, projectID uint) error
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *Invoice) error
	GetByID(ctx context.Context, id uint) (*Invoice, error)
	GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)
	Update(ctx context.Context, invoice *Invoice) error
	ListByProjectID(ctx context.Context, projectID uint, page, pageSize int) ([]*Invoice, int64, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, txn *Transaction) error
	GetByID(ctx context.Context, id uint) (*Transaction, error)
	GetByProviderReference(ctx context.Context, provider, providerReference string) (*Transaction, error)
	Update(ctx context.Context, txn *Transaction) error
}

type PaymentHistoryRepository interface {
	Create(ctx context.Context, history *PaymentHistory) error
	GetByID(ctx context.Context, id uint) (*PaymentHistory, error)
	// GetPendingByProjectIDForUpdate loads the project's Pending row under a
	// row lock. Returns nil without error when no Pending row exists.
	GetPendingByProjectIDForUpdate(ctx context.Context, projectID uint) (*PaymentHistory, error)
	GetByInvoiceID(ctx context.Context, invoiceID uint) (*PaymentHistory, error)
	Update(ctx context.Context, history *PaymentHistory) error
	ListByProjectID(ctx context.Context, projectID uint, page, pageSize int) ([]*PaymentHistory, int64, error)
	ExpireDue(ctx context.Context, asOf time.Time) (int64, error)
}
