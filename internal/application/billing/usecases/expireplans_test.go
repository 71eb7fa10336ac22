package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oysterbuild/backend/internal/shared/biztime"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

func TestExpirePlans_SweepsBothTablesAtMidnightCutoff(t *testing.T) {
	var projectCutoff, historyCutoff time.Time

	projectRepo := &mockProjectRepo{
		ExpireDueSubscriptionsFunc: func(ctx context.Context, asOf time.Time) (int64, error) {
			projectCutoff = asOf
			return 3, nil
		},
	}
	historyRepo := &mockHistoryRepo{
		ExpireDueFunc: func(ctx context.Context, asOf time.Time) (int64, error) {
			historyCutoff = asOf
			return 2, nil
		},
	}

	uc := NewExpirePlansUseCase(projectRepo, historyRepo, logger.NewLogger())
	require.NoError(t, uc.Execute(context.Background()))

	// The cutoff is today's midnight, so a window ending yesterday is swept
	// and one ending tomorrow survives regardless of the hour the job runs.
	assert.Equal(t, biztime.Today(), projectCutoff)
	assert.Equal(t, biztime.Today(), historyCutoff)
	assert.Zero(t, projectCutoff.Hour())
	assert.Zero(t, projectCutoff.Minute())
}

func TestExpirePlans_ProjectSweepErrorAborts(t *testing.T) {
	projectRepo := &mockProjectRepo{
		ExpireDueSubscriptionsFunc: func(ctx context.Context, asOf time.Time) (int64, error) {
			return 0, fmt.Errorf("deadlock detected")
		},
	}
	historyRepo := &mockHistoryRepo{
		ExpireDueFunc: func(ctx context.Context, asOf time.Time) (int64, error) {
			t.Fatal("history sweep must not run after the project sweep fails")
			return 0, nil
		},
	}

	uc := NewExpirePlansUseCase(projectRepo, historyRepo, logger.NewLogger())
	err := uc.Execute(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to expire project subscriptions")
}

func TestExpirePlans_HistorySweepErrorReported(t *testing.T) {
	projectRepo := &mockProjectRepo{
		ExpireDueSubscriptionsFunc: func(ctx context.Context, asOf time.Time) (int64, error) {
			return 1, nil
		},
	}
	historyRepo := &mockHistoryRepo{
		ExpireDueFunc: func(ctx context.Context, asOf time.Time) (int64, error) {
			return 0, fmt.Errorf("connection reset")
		},
	}

	uc := NewExpirePlansUseCase(projectRepo, historyRepo, logger.NewLogger())
	err := uc.Execute(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to expire payment histories")
}
