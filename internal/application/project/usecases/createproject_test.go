package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingusecases "github.com/oysterbuild/backend/internal/application/billing/usecases"
	"github.com/oysterbuild/backend/internal/domain/billing"
	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/domain/rbac"
	"github.com/oysterbuild/backend/internal/shared/biztime"
	"github.com/oysterbuild/backend/internal/shared/constants"
	"github.com/oysterbuild/backend/internal/shared/errors"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

type createProjectFixture struct {
	projectRepo *mockProjectRepo
	memberRepo  *mockMemberRepo
	uploadRepo  *mockUploadRepo
	roleRepo    *mockRoleRepo
	invoiceUC   *mockInvoiceGenerator

	createdMember *project.Member
	invoiceCmds   []billingusecases.GenerateInvoiceCommand
}

func newCreateProjectFixture(t *testing.T) *createProjectFixture {
	f := &createProjectFixture{}
	f.projectRepo = &mockProjectRepo{
		CreateFunc: func(ctx context.Context, p *project.Project) error { return p.SetID(5) },
	}
	f.memberRepo = &mockMemberRepo{
		CreateFunc: func(ctx context.Context, m *project.Member) error {
			f.createdMember = m
			return nil
		},
	}
	f.uploadRepo = &mockUploadRepo{
		CreateFunc: func(ctx context.Context, u *project.Upload) error { return nil },
	}
	f.roleRepo = &mockRoleRepo{
		GetByNameFunc: func(ctx context.Context, name string) (*rbac.Role, error) {
			require.Equal(t, constants.RoleProjectOwner, name)
			return &rbac.Role{ID: 3, Name: name}, nil
		},
	}
	f.invoiceUC = &mockInvoiceGenerator{
		ExecuteFunc: func(ctx context.Context, cmd billingusecases.GenerateInvoiceCommand) (*billingusecases.GenerateInvoiceResult, error) {
			f.invoiceCmds = append(f.invoiceCmds, cmd)
			issuedAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
			inv, err := billing.NewInvoice(cmd.ProjectID, cmd.PlanID, "b2a7c9d1-0000-0000-0000-000000000000", 10000, "NGN", issuedAt)
			require.NoError(t, err)
			return &billingusecases.GenerateInvoiceResult{Invoice: inv}, nil
		},
	}
	return f
}

func (f *createProjectFixture) useCase() *CreateProjectUseCase {
	return NewCreateProjectUseCase(f.projectRepo, f.memberRepo, f.uploadRepo, f.roleRepo,
		&mockMediaStore{}, f.invoiceUC, stubTxManager{}, logger.NewLogger())
}

func validCreateProjectCommand() CreateProjectCommand {
	return CreateProjectCommand{
		OwnerID:     7,
		Name:        "Lekki Duplex",
		ProjectType: string(project.TypeResidential),
		PlanID:      2,
	}
}

func TestCreateProject_PaidPlan(t *testing.T) {
	f := newCreateProjectFixture(t)

	result, err := f.useCase().Execute(context.Background(), validCreateProjectCommand())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, uint(5), result.Project.ID)
	assert.Regexp(t, `^INV-[0-9A-F]{8}$`, result.InvoiceNumber)

	require.NotNil(t, f.createdMember)
	assert.Equal(t, uint(5), f.createdMember.ProjectID)
	assert.Equal(t, uint(7), f.createdMember.UserID)
	assert.Equal(t, uint(3), f.createdMember.RoleID)
	assert.True(t, f.createdMember.IsActive)

	require.Len(t, f.invoiceCmds, 1)
	assert.Equal(t, uint(5), f.invoiceCmds[0].ProjectID)
	assert.Equal(t, uint(2), f.invoiceCmds[0].PlanID)
}

func TestCreateProject_FreePlan(t *testing.T) {
	f := newCreateProjectFixture(t)
	f.invoiceUC.ExecuteFunc = func(ctx context.Context, cmd billingusecases.GenerateInvoiceCommand) (*billingusecases.GenerateInvoiceResult, error) {
		history, err := billing.NewPaymentHistory(cmd.ProjectID, cmd.PlanID, nil,
			billing.PaymentHistoryStatusActive, biztime.Today(), biztime.Today().AddDate(0, 1, 0), 1)
		require.NoError(t, err)
		return &billingusecases.GenerateInvoiceResult{History: history}, nil
	}

	result, err := f.useCase().Execute(context.Background(), validCreateProjectCommand())

	require.NoError(t, err)
	assert.Empty(t, result.InvoiceNumber)
}

func TestCreateProject_MissingPlan(t *testing.T) {
	f := newCreateProjectFixture(t)
	cmd := validCreateProjectCommand()
	cmd.PlanID = 0

	_, err := f.useCase().Execute(context.Background(), cmd)

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestCreateProject_InvalidType(t *testing.T) {
	f := newCreateProjectFixture(t)
	cmd := validCreateProjectCommand()
	cmd.ProjectType = "Skyscraper"

	_, err := f.useCase().Execute(context.Background(), cmd)

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestCreateProject_InvoiceFailureAborts(t *testing.T) {
	f := newCreateProjectFixture(t)
	f.invoiceUC.ExecuteFunc = func(ctx context.Context, cmd billingusecases.GenerateInvoiceCommand) (*billingusecases.GenerateInvoiceResult, error) {
		return nil, errors.NewNotFoundError("plan not found")
	}

	result, err := f.useCase().Execute(context.Background(), validCreateProjectCommand())

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsNotFoundError(err))
}
