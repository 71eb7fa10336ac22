package usecases

import (
	"context"
	"time"

	billingusecases "github.com/oysterbuild/backend/internal/application/billing/usecases"
	"github.com/oysterbuild/backend/internal/application/media"
	"github.com/oysterbuild/backend/internal/domain/billing"
	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/domain/rbac"
)

// stubTxManager runs the callback directly so tests observe repository calls
// without a database.
type stubTxManager struct{}

func (stubTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockPermissionChecker struct {
	HasProjectPermissionFunc func(ctx context.Context, userID, projectID uint, permission string) (bool, error)
}

func (m *mockPermissionChecker) HasProjectPermission(ctx context.Context, userID, projectID uint, permission string) (bool, error) {
	if m.HasProjectPermissionFunc != nil {
		return m.HasProjectPermissionFunc(ctx, userID, projectID, permission)
	}
	return true, nil
}

type mockQuotaService struct {
	HasReportQuotaFunc       func(ctx context.Context, projectID uint) (bool, error)
	IncrementReportUsageFunc func(ctx context.Context, projectID uint) error

	increments int
}

func (m *mockQuotaService) HasReportQuota(ctx context.Context, projectID uint) (bool, error) {
	if m.HasReportQuotaFunc != nil {
		return m.HasReportQuotaFunc(ctx, projectID)
	}
	return true, nil
}

func (m *mockQuotaService) IncrementReportUsage(ctx context.Context, projectID uint) error {
	m.increments++
	if m.IncrementReportUsageFunc != nil {
		return m.IncrementReportUsageFunc(ctx, projectID)
	}
	return nil
}

type mockInvoiceGenerator struct {
	ExecuteFunc func(ctx context.Context, cmd billingusecases.GenerateInvoiceCommand) (*billingusecases.GenerateInvoiceResult, error)
}

func (m *mockInvoiceGenerator) Execute(ctx context.Context, cmd billingusecases.GenerateInvoiceCommand) (*billingusecases.GenerateInvoiceResult, error) {
	return m.ExecuteFunc(ctx, cmd)
}

type mockMediaStore struct {
	UploadFunc func(ctx context.Context, in media.UploadInput) (string, error)
}

func (m *mockMediaStore) Upload(ctx context.Context, in media.UploadInput) (string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, in)
	}
	return "https://media.example.com/" + in.Folder + "/" + in.PublicID, nil
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

type mockMemberRepo struct {
	CreateFunc          func(ctx context.Context, member *project.Member) error
	GetActiveFunc       func(ctx context.Context, projectID, userID uint) (*project.Member, error)
	IsActiveMemberFunc  func(ctx context.Context, projectID, userID uint) (bool, error)
	ListByProjectIDFunc func(ctx context.Context, projectID uint) ([]*project.Member, error)
	DeactivateFunc      func(ctx context.Context, projectID, userID uint) error
}

func (m *mockMemberRepo) Create(ctx context.Context, member *project.Member) error {
	return m.CreateFunc(ctx, member)
}

func (m *mockMemberRepo) GetActive(ctx context.Context, projectID, userID uint) (*project.Member, error) {
	return m.GetActiveFunc(ctx, projectID, userID)
}

func (m *mockMemberRepo) IsActiveMember(ctx context.Context, projectID, userID uint) (bool, error) {
	return m.IsActiveMemberFunc(ctx, projectID, userID)
}

func (m *mockMemberRepo) ListByProjectID(ctx context.Context, projectID uint) ([]*project.Member, error) {
	return m.ListByProjectIDFunc(ctx, projectID)
}

func (m *mockMemberRepo) Deactivate(ctx context.Context, projectID, userID uint) error {
	return m.DeactivateFunc(ctx, projectID, userID)
}

type mockReportRepo struct {
	CreateFunc          func(ctx context.Context, r *project.Report) error
	GetByIDFunc         func(ctx context.Context, id uint) (*project.Report, error)
	UpdateFunc          func(ctx context.Context, r *project.Report) error
	DeleteFunc          func(ctx context.Context, id uint) error
	ListByProjectIDFunc func(ctx context.Context, projectID uint, filter project.ReportFilter) ([]*project.Report, int64, error)
}

func (m *mockReportRepo) Create(ctx context.Context, r *project.Report) error {
	return m.CreateFunc(ctx, r)
}

func (m *mockReportRepo) GetByID(ctx context.Context, id uint) (*project.Report, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockReportRepo) Update(ctx context.Context, r *project.Report) error {
	return m.UpdateFunc(ctx, r)
}

func (m *mockReportRepo) Delete(ctx context.Context, id uint) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockReportRepo) ListByProjectID(ctx context.Context, projectID uint, filter project.ReportFilter) ([]*project.Report, int64, error) {
	if m.ListByProjectIDFunc != nil {
		return m.ListByProjectIDFunc(ctx, projectID, filter)
	}
	return nil, 0, nil
}

type mockUploadRepo struct {
	CreateFunc                  func(ctx context.Context, u *project.Upload) error
	ListByProjectIDFunc         func(ctx context.Context, projectID uint, limit int) ([]*project.Upload, error)
	DeleteByProjectIDFunc       func(ctx context.Context, projectID uint) error
	DeleteByProjectIDExceptFunc func(ctx context.Context, projectID uint, keepIDs []uint) error
}

func (m *mockUploadRepo) Create(ctx context.Context, u *project.Upload) error {
	return m.CreateFunc(ctx, u)
}

func (m *mockUploadRepo) ListByProjectID(ctx context.Context, projectID uint, limit int) ([]*project.Upload, error) {
	if m.ListByProjectIDFunc != nil {
		return m.ListByProjectIDFunc(ctx, projectID, limit)
	}
	return nil, nil
}

func (m *mockUploadRepo) DeleteByProjectID(ctx context.Context, projectID uint) error {
	return m.DeleteByProjectIDFunc(ctx, projectID)
}

func (m *mockUploadRepo) DeleteByProjectIDExcept(ctx context.Context, projectID uint, keepIDs []uint) error {
	return m.DeleteByProjectIDExceptFunc(ctx, projectID, keepIDs)
}

type mockReportUploadRepo struct {
	CreateFunc                 func(ctx context.Context, u *project.ReportUpload) error
	ListByReportIDFunc         func(ctx context.Context, reportID uint) ([]*project.ReportUpload, error)
	DeleteByReportIDFunc       func(ctx context.Context, reportID uint) error
	DeleteByReportIDExceptFunc func(ctx context.Context, reportID uint, keepIDs []uint) error
}

func (m *mockReportUploadRepo) Create(ctx context.Context, u *project.ReportUpload) error {
	return m.CreateFunc(ctx, u)
}

func (m *mockReportUploadRepo) ListByReportID(ctx context.Context, reportID uint) ([]*project.ReportUpload, error) {
	if m.ListByReportIDFunc != nil {
		return m.ListByReportIDFunc(ctx, reportID)
	}
	return nil, nil
}

func (m *mockReportUploadRepo) DeleteByReportID(ctx context.Context, reportID uint) error {
	return m.DeleteByReportIDFunc(ctx, reportID)
}

func (m *mockReportUploadRepo) DeleteByReportIDExcept(ctx context.Context, reportID uint, keepIDs []uint) error {
	return m.DeleteByReportIDExceptFunc(ctx, reportID, keepIDs)
}

type mockRoleRepo struct {
	CreateFunc    func(ctx context.Context, role *rbac.Role) error
	GetByNameFunc func(ctx context.Context, name string) (*rbac.Role, error)
	ListFunc      func(ctx context.Context) ([]*rbac.Role, error)
}

func (m *mockRoleRepo) Create(ctx context.Context, role *rbac.Role) error {
	return m.CreateFunc(ctx, role)
}

func (m *mockRoleRepo) GetByName(ctx context.Context, name string) (*rbac.Role, error) {
	return m.GetByNameFunc(ctx, name)
}

func (m *mockRoleRepo) List(ctx context.Context) ([]*rbac.Role, error) {
	return m.ListFunc(ctx)
}

type mockPlanRepo struct {
	CreateFunc       func(ctx context.Context, plan *billing.Plan) error
	GetByIDFunc      func(ctx context.Context, id uint) (*billing.Plan, error)
	GetBySlugFunc    func(ctx context.Context, slug string) (*billing.Plan, error)
	UpdateFunc       func(ctx context.Context, plan *billing.Plan) error
	ListActiveFunc   func(ctx context.Context) ([]*billing.Plan, error)
	ExistsBySlugFunc func(ctx context.Context, slug string) (bool, error)
}

func (m *mockPlanRepo) Create(ctx context.Context, plan *billing.Plan) error {
	return m.CreateFunc(ctx, plan)
}

func (m *mockPlanRepo) GetByID(ctx context.Context, id uint) (*billing.Plan, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockPlanRepo) GetBySlug(ctx context.Context, slug string) (*billing.Plan, error) {
	return m.GetBySlugFunc(ctx, slug)
}

func (m *mockPlanRepo) Update(ctx context.Context, plan *billing.Plan) error {
	return m.UpdateFunc(ctx, plan)
}

func (m *mockPlanRepo) ListActive(ctx context.Context) ([]*billing.Plan, error) {
	return m.ListActiveFunc(ctx)
}

func (m *mockPlanRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return m.ExistsBySlugFunc(ctx, slug)
}

type mockHistoryRepo struct {
	CreateFunc                         func(ctx context.Context, h *billing.PaymentHistory) error
	GetByIDFunc                        func(ctx context.Context, id uint) (*billing.PaymentHistory, error)
	GetPendingByProjectIDForUpdateFunc func(ctx context.Context, projectID uint) (*billing.PaymentHistory, error)
	GetByInvoiceIDFunc                 func(ctx context.Context, invoiceID uint) (*billing.PaymentHistory, error)
	UpdateFunc                         func(ctx context.Context, h *billing.PaymentHistory) error
	ListByProjectIDFunc                func(ctx context.Context, projectID uint, page, pageSize int) ([]*billing.PaymentHistory, int64, error)
	ExpireDueFunc                      func(ctx context.Context, asOf time.Time) (int64, error)
}

func (m *mockHistoryRepo) Create(ctx context.Context, h *billing.PaymentHistory) error {
	return m.CreateFunc(ctx, h)
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

func (m *mockHistoryRepo) Update(ctx context.Context, h *billing.PaymentHistory) error {
	return m.UpdateFunc(ctx, h)
}

func (m *mockHistoryRepo) ListByProjectID(ctx context.Context, projectID uint, page, pageSize int) ([]*billing.PaymentHistory, int64, error) {
	return m.ListByProjectIDFunc(ctx, projectID, page, pageSize)
}

func (m *mockHistoryRepo) ExpireDue(ctx context.Context, asOf time.Time) (int64, error) {
	return m.ExpireDueFunc(ctx, asOf)
}
