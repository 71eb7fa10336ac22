package usecases

import (
	"context"
	"time"

	"github.com/oysterbuild/backend/internal/application/billing/gateway"
	"github.com/oysterbuild/backend/internal/domain/billing"
	"github.com/oysterbuild/backend/internal/domain/notification"
	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/domain/user"
	"github.com/oysterbuild/backend/internal/shared/errors"
)

// stubTxManager runs the callback directly; unit tests assert repository
// calls, not commit semantics.
type stubTxManager struct{}

func (stubTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockPlanRepo struct {
	GetByIDFunc      func(ctx context.Context, id uint) (*billing.Plan, error)
	GetBySlugFunc    func(ctx context.Context, slug string) (*billing.Plan, error)
	CreateFunc       func(ctx context.Context, plan *billing.Plan) error
	UpdateFunc       func(ctx context.Context, plan *billing.Plan) error
	ListActiveFunc   func(ctx context.Context) ([]*billing.Plan, error)
	ExistsBySlugFunc func(ctx context.Context, slug string) (bool, error)
}

func (m *mockPlanRepo) Create(ctx context.Context, plan *billing.Plan) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, plan)
	}
	return nil
}

func (m *mockPlanRepo) GetByID(ctx context.Context, id uint) (*billing.Plan, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockPlanRepo) GetBySlug(ctx context.Context, slug string) (*billing.Plan, error) {
	if m.GetBySlugFunc != nil {
		return m.GetBySlugFunc(ctx, slug)
	}
	return nil, errors.NewNotFoundError("plan not found")
}

func (m *mockPlanRepo) Update(ctx context.Context, plan *billing.Plan) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, plan)
	}
	return nil
}

func (m *mockPlanRepo) ListActive(ctx context.Context) ([]*billing.Plan, error) {
	return m.ListActiveFunc(ctx)
}

func (m *mockPlanRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	if m.ExistsBySlugFunc != nil {
		return m.ExistsBySlugFunc(ctx, slug)
	}
	return false, nil
}

type mockPackageRepo struct {
	CreateFunc             func(ctx context.Context, pkg *billing.Package) error
	GetByPlanAndTagFunc    func(ctx context.Context, planID uint, tag string) (*billing.Package, error)
	ListByPlanIDFunc       func(ctx context.Context, planID uint) ([]*billing.Package, error)
	ExistsByPlanAndTagFunc func(ctx context.Context, planID uint, tag string) (bool, error)
}

func (m *mockPackageRepo) Create(ctx context.Context, pkg *billing.Package) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, pkg)
	}
	return nil
}

func (m *mockPackageRepo) GetByPlanAndTag(ctx context.Context, planID uint, tag string) (*billing.Package, error) {
	return m.GetByPlanAndTagFunc(ctx, planID, tag)
}

func (m *mockPackageRepo) ListByPlanID(ctx context.Context, planID uint) ([]*billing.Package, error) {
	return m.ListByPlanIDFunc(ctx, planID)
}

func (m *mockPackageRepo) ExistsByPlanAndTag(ctx context.Context, planID uint, tag string) (bool, error) {
	if m.ExistsByPlanAndTagFunc != nil {
		return m.ExistsByPlanAndTagFunc(ctx, planID, tag)
	}
	return false, nil
}

type mockUsageRepo struct {
	GetForUpdateFunc      func(ctx context.Context, projectID uint, tag string) (*billing.UsageCount, error)
	GetFunc               func(ctx context.Context, projectID uint, tag string) (*billing.UsageCount, error)
	CreateFunc            func(ctx context.Context, count *billing.UsageCount) error
	UpdateFunc            func(ctx context.Context, count *billing.UsageCount) error
	DeleteByProjectIDFunc func(ctx context.Context, projectID uint) error
}

func (m *mockUsageRepo) GetForUpdate(ctx context.Context, projectID uint, tag string) (*billing.UsageCount, error) {
	return m.GetForUpdateFunc(ctx, projectID, tag)
}

func (m *mockUsageRepo) Get(ctx context.Context, projectID uint, tag string) (*billing.UsageCount, error) {
	return m.GetFunc(ctx, projectID, tag)
}

func (m *mockUsageRepo) Create(ctx context.Context, count *billing.UsageCount) error {
	return m.CreateFunc(ctx, count)
}

func (m *mockUsageRepo) Update(ctx context.Context, count *billing.UsageCount) error {
	return m.UpdateFunc(ctx, count)
}

func (m *mockUsageRepo) DeleteByProjectID(ctx context.Context, projectID uint) error {
	return m.DeleteByProjectIDFunc(ctx, projectID)
}

type mockInvoiceRepo struct {
	CreateFunc             func(ctx context.Context, invoice *billing.Invoice) error
	GetByIDFunc            func(ctx context.Context, id uint) (*billing.Invoice, error)
	GetByInvoiceNumberFunc func(ctx context.Context, invoiceNumber string) (*billing.Invoice, error)
	UpdateFunc             func(ctx context.Context, invoice *billing.Invoice) error
}

func (m *mockInvoiceRepo) Create(ctx context.Context, invoice *billing.Invoice) error {
	return m.CreateFunc(ctx, invoice)
}

func (m *mockInvoiceRepo) GetByID(ctx context.Context, id uint) (*billing.Invoice, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockInvoiceRepo) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*billing.Invoice, error) {
	return m.GetByInvoiceNumberFunc(ctx, invoiceNumber)
}

func (m *mockInvoiceRepo) Update(ctx context.Context, invoice *billing.Invoice) error {
	return m.UpdateFunc(ctx, invoice)
}

func (m *mockInvoiceRepo) ListByProjectID(ctx context.Context, projectID uint, page, pageSize int) ([]*billing.Invoice, int64, error) {
	return nil, 0, nil
}

type mockTransactionRepo struct {
	CreateFunc                 func(ctx context.Context, txn *billing.Transaction) error
	GetByIDFunc                func(ctx context.Context, id uint) (*billing.Transaction, error)
	GetByProviderReferenceFunc func(ctx context.Context, provider, providerReference string) (*billing.Transaction, error)
	UpdateFunc                 func(ctx context.Context, txn *billing.Transaction) error
}

func (m *mockTransactionRepo) Create(ctx context.Context, txn *billing.Transaction) error {
	return m.CreateFunc(ctx, txn)
}

func (m *mockTransactionRepo) GetByID(ctx context.Context, id uint) (*billing.Transaction, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockTransactionRepo) GetByProviderReference(ctx context.Context, provider, providerReference string) (*billing.Transaction, error) {
	return m.GetByProviderReferenceFunc(ctx, provider, providerReference)
}

func (m *mockTransactionRepo) Update(ctx context.Context, txn *billing.Transaction) error {
	return m.UpdateFunc(ctx, txn)
}

type mockHistoryRepo struct {
	CreateFunc                         func(ctx context.Context, history *billing.PaymentHistory) error
	GetByIDFunc                        func(ctx context.Context, id uint) (*billing.PaymentHistory, error)
	GetPendingByProjectIDForUpdateFunc func(ctx context.Context, projectID uint) (*billing.PaymentHistory, error)
	GetByInvoiceIDFunc                 func(ctx context.Context, invoiceID uint) (*billing.PaymentHistory, error)
	UpdateFunc                         func(ctx context.Context, history *billing.PaymentHistory) error
	ListByProjectIDFunc                func(ctx context.Context, projectID uint, page, pageSize int) ([]*billing.PaymentHistory, int64, error)
	ExpireDueFunc                      func(ctx context.Context, asOf time.Time) (int64, error)
}

func (m *mockHistoryRepo) Create(ctx context.Context, history *billing.PaymentHistory) error {
	return m.CreateFunc(ctx, history)
}

func (m *mockHistoryRepo) GetByID(ctx context.Context, id uint) (*billing.PaymentHistory, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockHistoryRepo) GetPendingByProjectIDForUpdate(ctx context.Context, projectID uint) (*billing.PaymentHistory, error) {
	return m.GetPendingByProjectIDForUpdateFunc(ctx, projectID)
}

func (m *mockHistoryRepo) GetByInvoiceID(ctx context.Context, invoiceID uint) (*billing.PaymentHistory, error) {
	return m.GetByInvoiceIDFunc(ctx, invoiceID)
}

func (m *mockHistoryRepo) Update(ctx context.Context, history *billing.PaymentHistory) error {
	return m.UpdateFunc(ctx, history)
}

func (m *mockHistoryRepo) ListByProjectID(ctx context.Context, projectID uint, page, pageSize int) ([]*billing.PaymentHistory, int64, error) {
	return m.ListByProjectIDFunc(ctx, projectID, page, pageSize)
}

func (m *mockHistoryRepo) ExpireDue(ctx context.Context, asOf time.Time) (int64, error) {
	return m.ExpireDueFunc(ctx, asOf)
}

type mockProjectRepo struct {
	CreateFunc                 func(ctx context.Context, p *project.Project) error
	GetByIDFunc                func(ctx context.Context, id uint) (*project.Project, error)
	GetByUIDFunc               func(ctx context.Context, uid string) (*project.Project, error)
	UpdateFunc                 func(ctx context.Context, p *project.Project) error
	DeleteFunc                 func(ctx context.Context, id uint) error
	ListByMemberFunc           func(ctx context.Context, userID uint, filter project.Filter) ([]*project.Project, int64, error)
	ExpireDueSubscriptionsFunc func(ctx context.Context, asOf time.Time) (int64, error)
	FindExpiringBetweenFunc    func(ctx context.Context, from, to time.Time) ([]*project.Project, error)
}

func (m *mockProjectRepo) Create(ctx context.Context, p *project.Project) error {
	return m.CreateFunc(ctx, p)
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id uint) (*project.Project, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockProjectRepo) GetByUID(ctx context.Context, uid string) (*project.Project, error) {
	return m.GetByUIDFunc(ctx, uid)
}

func (m *mockProjectRepo) Update(ctx context.Context, p *project.Project) error {
	return m.UpdateFunc(ctx, p)
}

func (m *mockProjectRepo) Delete(ctx context.Context, id uint) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockProjectRepo) ListByMember(ctx context.Context, userID uint, filter project.Filter) ([]*project.Project, int64, error) {
	return m.ListByMemberFunc(ctx, userID, filter)
}

func (m *mockProjectRepo) ExpireDueSubscriptions(ctx context.Context, asOf time.Time) (int64, error) {
	return m.ExpireDueSubscriptionsFunc(ctx, asOf)
}

func (m *mockProjectRepo) FindExpiringBetween(ctx context.Context, from, to time.Time) ([]*project.Project, error) {
	return m.FindExpiringBetweenFunc(ctx, from, to)
}

type mockUserRepo struct {
	GetByIDFunc func(ctx context.Context, id uint) (*user.User, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockUserRepo) GetByUID(ctx context.Context, uid string) (*user.User, error) {
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (m *mockUserRepo) Update(ctx context.Context, u *user.User) error { return nil }

type mockOutboxRepo struct {
	CreateFunc func(ctx context.Context, intent *notification.Outbox) error
	created    []*notification.Outbox
}

func (m *mockOutboxRepo) Create(ctx context.Context, intent *notification.Outbox) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, intent); err != nil {
			return err
		}
	}
	m.created = append(m.created, intent)
	return nil
}

func (m *mockOutboxRepo) ListPending(ctx context.Context, limit int) ([]*notification.Outbox, error) {
	return nil, nil
}

func (m *mockOutboxRepo) Update(ctx context.Context, intent *notification.Outbox) error {
	return nil
}

type mockGateway struct {
	name           string
	InitializeFunc func(ctx context.Context, email string, amount int64, currency, reference string) (*gateway.InitializeResult, error)
	VerifyFunc     func(payload []byte, signature string) bool
}

func (m *mockGateway) Name() string {
	if m.name == "" {
		return "PAYSTACK"
	}
	return m.name
}

func (m *mockGateway) Initialize(ctx context.Context, email string, amount int64, currency, reference string) (*gateway.InitializeResult, error) {
	return m.InitializeFunc(ctx, email, amount, currency, reference)
}

func (m *mockGateway) VerifySignature(payload []byte, signature string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(payload, signature)
	}
	return true
}
