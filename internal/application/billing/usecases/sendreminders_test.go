package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oysterbuild/backend/internal/domain/billing"
	"github.com/oysterbuild/backend/internal/domain/notification"
	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/domain/user"
	"github.com/oysterbuild/backend/internal/shared/biztime"
	"github.com/oysterbuild/backend/internal/shared/errors"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

func reconstructExpiringProject(t *testing.T, id, ownerID uint, endDate time.Time) *project.Project {
	t.Helper()
	now := time.Now().UTC()
	planID := uint(2)
	p, err := project.ReconstructProject(id, fmt.Sprintf("uid-%d", id),
		fmt.Sprintf("Site %d", id), "", project.TypeResidential, "", "", nil, nil, 0, "NGN",
		project.StatusActive, project.PaymentStatusActive, ownerID, &planID, 1, nil, "", &endDate, 1, now, now)
	require.NoError(t, err)
	return p
}

func TestSendReminders_WindowIsNextTwoWholeDays(t *testing.T) {
	var gotFrom, gotTo time.Time

	projectRepo := &mockProjectRepo{
		FindExpiringBetweenFunc: func(ctx context.Context, from, to time.Time) ([]*project.Project, error) {
			gotFrom, gotTo = from, to
			return nil, nil
		},
	}

	uc := NewSendExpirationRemindersUseCase(projectRepo, &mockPlanRepo{}, &mockUserRepo{},
		&mockOutboxRepo{}, logger.NewLogger())
	require.NoError(t, uc.Execute(context.Background()))

	// Cycle ends are midnight-anchored dates, so the inclusive window
	// [today+1, today+2] is exactly the 1-day and 2-day marks.
	assert.Equal(t, biztime.Today().AddDate(0, 0, 1), gotFrom)
	assert.Equal(t, biztime.Today().AddDate(0, 0, 2), gotTo)
}

func TestSendReminders_QueuesOnePerExpiringProject(t *testing.T) {
	tomorrow := biztime.Today().AddDate(0, 0, 1)
	dayAfter := biztime.Today().AddDate(0, 0, 2)

	projectRepo := &mockProjectRepo{
		FindExpiringBetweenFunc: func(ctx context.Context, from, to time.Time) ([]*project.Project, error) {
			return []*project.Project{
				reconstructExpiringProject(t, 5, 7, tomorrow),
				reconstructExpiringProject(t, 6, 8, dayAfter),
			}, nil
		},
	}
	planRepo := &mockPlanRepo{
		GetByIDFunc: func(ctx context.Context, id uint) (*billing.Plan, error) {
			return reconstructTestPlan(t, id, billing.PlanStatusPaid, 10000), nil
		},
	}
	userRepo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return &user.User{ID: id, Email: fmt.Sprintf("owner%d@example.com", id), FirstName: "Ada"}, nil
		},
	}
	outbox := &mockOutboxRepo{}

	uc := NewSendExpirationRemindersUseCase(projectRepo, planRepo, userRepo, outbox, logger.NewLogger())
	require.NoError(t, uc.Execute(context.Background()))

	require.Len(t, outbox.created, 2)
	assert.Equal(t, "owner7@example.com", outbox.created[0].Recipient)
	assert.Equal(t, "owner8@example.com", outbox.created[1].Recipient)
	for _, intent := range outbox.created {
		assert.Equal(t, notification.TemplateExpirationReminder, intent.Template)
	}
}

func TestSendReminders_OneFailingRecipientDoesNotAbortBatch(t *testing.T) {
	endDate := biztime.Today().AddDate(0, 0, 1)

	projectRepo := &mockProjectRepo{
		FindExpiringBetweenFunc: func(ctx context.Context, from, to time.Time) ([]*project.Project, error) {
			return []*project.Project{
				reconstructExpiringProject(t, 5, 7, endDate),
				reconstructExpiringProject(t, 6, 8, endDate),
			}, nil
		},
	}
	planRepo := &mockPlanRepo{
		GetByIDFunc: func(ctx context.Context, id uint) (*billing.Plan, error) {
			return reconstructTestPlan(t, id, billing.PlanStatusPaid, 10000), nil
		},
	}
	userRepo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			if id == 7 {
				return nil, errors.NewNotFoundError("user not found")
			}
			return &user.User{ID: id, Email: "owner8@example.com", FirstName: "Ada"}, nil
		},
	}
	outbox := &mockOutboxRepo{}

	uc := NewSendExpirationRemindersUseCase(projectRepo, planRepo, userRepo, outbox, logger.NewLogger())
	require.NoError(t, uc.Execute(context.Background()))

	require.Len(t, outbox.created, 1)
	assert.Equal(t, "owner8@example.com", outbox.created[0].Recipient)
}

func TestSendReminders_MissingPlanStillReminds(t *testing.T) {
	endDate := biztime.Today().AddDate(0, 0, 2)

	projectRepo := &mockProjectRepo{
		FindExpiringBetweenFunc: func(ctx context.Context, from, to time.Time) ([]*project.Project, error) {
			return []*project.Project{reconstructExpiringProject(t, 5, 7, endDate)}, nil
		},
	}
	planRepo := &mockPlanRepo{
		GetByIDFunc: func(ctx context.Context, id uint) (*billing.Plan, error) {
			return nil, errors.NewNotFoundError("plan not found")
		},
	}
	userRepo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return &user.User{ID: id, Email: "owner7@example.com", FirstName: "Ada"}, nil
		},
	}
	outbox := &mockOutboxRepo{}

	uc := NewSendExpirationRemindersUseCase(projectRepo, planRepo, userRepo, outbox, logger.NewLogger())
	require.NoError(t, uc.Execute(context.Background()))

	require.Len(t, outbox.created, 1)
}

func TestSendReminders_LookupErrorAborts(t *testing.T) {
	projectRepo := &mockProjectRepo{
		FindExpiringBetweenFunc: func(ctx context.Context, from, to time.Time) ([]*project.Project, error) {
			return nil, fmt.Errorf("connection reset")
		},
	}

	uc := NewSendExpirationRemindersUseCase(projectRepo, &mockPlanRepo{}, &mockUserRepo{},
		&mockOutboxRepo{}, logger.NewLogger())
	err := uc.Execute(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to find expiring projects")
}
