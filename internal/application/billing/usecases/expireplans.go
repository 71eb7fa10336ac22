package usecases

import (
	"context"
	"fmt"

	"github.com/oysterbuild/backend/internal/domain/billing"
	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/shared/biztime"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

// ExpirePlansUseCase is the periodic expiration sweep. Both updates are
// set-based and idempotent: rows already Expired are untouched, so the
// sweep is safe to re-run and to race with in-flight reconciliations.
type ExpirePlansUseCase struct {
	projectRepo project.Repository
	historyRepo billing.PaymentHistoryRepository
	logger      logger.Interface
}

func NewExpirePlansUseCase(
	projectRepo project.Repository,
	historyRepo billing.PaymentHistoryRepository,
	logger logger.Interface,
) *ExpirePlansUseCase {
	return &ExpirePlansUseCase{
		projectRepo: projectRepo,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

func (uc *ExpirePlansUseCase) Execute(ctx context.Context) error {
	today := biztime.Today()

	projects, err := uc.projectRepo.ExpireDueSubscriptions(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to expire project subscriptions: %w", err)
	}

	histories, err := uc.historyRepo.ExpireDue(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to expire payment histories: %w", err)
	}

	if projects > 0 || histories > 0 {
		uc.logger.Infow("expiration sweep complete",
			"projects_expired", projects,
			"histories_expired", histories,
		)
	}
	return nil
}
