package usecases

import (
	"context"
	"fmt"

	"github.com/oysterbuild/backend/internal/domain/billing"
	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/shared/biztime"
	"github.com/oysterbuild/backend/internal/shared/db"
	"github.com/oysterbuild/backend/internal/shared/errors"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

// UsageMeter answers quota questions and records consumption. All lookups
// key usage rows by package tag; the package definition itself is resolved
// by (plan, tag). Quota checks fail closed: no plan, a non-active payment
// status, or a missing package all deny access.
type UsageMeter struct {
	projectRepo project.Repository
	pkgRepo     billing.PackageRepository
	usageRepo   billing.UsageCountRepository
	txManager   db.TxManager
	logger      logger.Interface
}

func NewUsageMeter(
	projectRepo project.Repository,
	pkgRepo billing.PackageRepository,
	usageRepo billing.UsageCountRepository,
	txManager db.TxManager,
	logger logger.Interface,
) *UsageMeter {
	return &UsageMeter{
		projectRepo: projectRepo,
		pkgRepo:     pkgRepo,
		usageRepo:   usageRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

func (m *UsageMeter) HasReportQuota(ctx context.Context, projectID uint) (bool, error) {
	return m.hasQuota(ctx, projectID, billing.PackageTagReports)
}

func (m *UsageMeter) HasStorageQuota(ctx context.Context, projectID uint) (bool, error) {
	return m.hasQuota(ctx, projectID, billing.PackageTagStorage)
}

func (m *UsageMeter) HasMemberQuota(ctx context.Context, projectID uint) (bool, error) {
	return m.hasQuota(ctx, projectID, billing.PackageTagTeamMembers)
}

func (m *UsageMeter) hasQuota(ctx context.Context, projectID uint, tag string) (bool, error) {
	proj, err := m.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return false, fmt.Errorf("failed to get project: %w", err)
	}
	if !proj.HasActiveSubscription() {
		return false, nil
	}

	pkg, err := m.pkgRepo.GetByPlanAndTag(ctx, *proj.PlanID(), tag)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get package: %w", err)
	}
	if pkg.IsUnlimited {
		return true, nil
	}

	usage := 0.0
	count, err := m.usageRepo.Get(ctx, projectID, tag)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			return false, fmt.Errorf("failed to get usage count: %w", err)
		}
	} else if count != nil {
		usage = count.UsageCount
	}

	return pkg.Allows(usage), nil
}

// IncrementReportUsage bumps the reports counter for the project, creating
// the row at 1 when absent. The row is locked for the duration of the
// surrounding transaction so concurrent report creations serialize.
func (m *UsageMeter) IncrementReportUsage(ctx context.Context, projectID uint) error {
	return m.increment(ctx, projectID, billing.PackageTagReports)
}

func (m *UsageMeter) increment(ctx context.Context, projectID uint, tag string) error {
	return m.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		count, err := m.usageRepo.GetForUpdate(txCtx, projectID, tag)
		if err != nil && !errors.IsNotFoundError(err) {
			return fmt.Errorf("failed to lock usage count: %w", err)
		}

		if count == nil {
			now := biztime.NowUTC()
			return m.usageRepo.Create(txCtx, &billing.UsageCount{
				ProjectID:  projectID,
				PackageTag: tag,
				UsageCount: 1,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
		}

		count.UsageCount++
		count.UpdatedAt = biztime.NowUTC()
		return m.usageRepo.Update(txCtx, count)
	})
}
