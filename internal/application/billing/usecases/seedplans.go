package usecases

import (
	"context"
	"fmt"

	"github.com/oysterbuild/backend/internal/domain/billing"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

type packageSeed struct {
	name        string
	tag         string
	count       float64
	isUnlimited bool
}

type planSeed struct {
	name        string
	slug        string
	description string
	amount      int64
	currency    string
	frequency   billing.Frequency
	planStatus  billing.PlanStatus
	packages    []packageSeed
}

var defaultPlans = []planSeed{
	{
		name:        "Free",
		slug:        "free",
		description: "Ideal for small teams or testing the PMS app.",
		amount:      0,
		currency:    "NGN",
		frequency:   billing.FrequencyMonthly,
		planStatus:  billing.PlanStatusFree,
		packages: []packageSeed{
			{name: "Projects", tag: billing.PackageTagProjects, count: 1},
			{name: "Reports", tag: billing.PackageTagReports, count: 10},
			{name: "Storage (KB)", tag: billing.PackageTagStorage, count: 500_000},
			{name: "Team Members", tag: billing.PackageTagTeamMembers, count: 1},
		},
	},
	{
		name:        "Basic",
		slug:        "basic",
		description: "Small teams with moderate usage of PMS features.",
		amount:      10000,
		currency:    "NGN",
		frequency:   billing.FrequencyMonthly,
		planStatus:  billing.PlanStatusPaid,
		packages: []packageSeed{
			{name: "Projects", tag: billing.PackageTagProjects, count: 5},
			{name: "Reports", tag: billing.PackageTagReports, count: 100},
			{name: "Storage (KB)", tag: billing.PackageTagStorage, count: 5_000_000},
			{name: "Team Members", tag: billing.PackageTagTeamMembers, count: 5},
		},
	},
	{
		name:        "Pro",
		slug:        "pro",
		description: "For growing teams managing multiple projects efficiently.",
		amount:      20000,
		currency:    "NGN",
		frequency:   billing.FrequencyMonthly,
		planStatus:  billing.PlanStatusPaid,
		packages: []packageSeed{
			{name: "Projects", tag: billing.PackageTagProjects, count: 20},
			{name: "Reports", tag: billing.PackageTagReports, count: 500},
			{name: "Storage (KB)", tag: billing.PackageTagStorage, count: 25_000_000},
			{name: "Team Members", tag: billing.PackageTagTeamMembers, count: 20},
		},
	},
	{
		name:        "Enterprise",
		slug:        "enterprise",
		description: "Custom plan for large organizations with unlimited usage.",
		amount:      50000,
		currency:    "NGN",
		frequency:   billing.FrequencyMonthly,
		planStatus:  billing.PlanStatusPaid,
		packages: []packageSeed{
			{name: "Projects", tag: billing.PackageTagProjects, isUnlimited: true},
			{name: "Reports", tag: billing.PackageTagReports, isUnlimited: true},
			{name: "Storage (KB)", tag: billing.PackageTagStorage, isUnlimited: true},
			{name: "Team Members", tag: billing.PackageTagTeamMembers, isUnlimited: true},
		},
	},
}

// SeedPlansUseCase installs the plan catalog. Idempotent by slug; existing
// plans and packages are left untouched.
type SeedPlansUseCase struct {
	planRepo billing.PlanRepository
	pkgRepo  billing.PackageRepository
	logger   logger.Interface
}

func NewSeedPlansUseCase(planRepo billing.PlanRepository, pkgRepo billing.PackageRepository, logger logger.Interface) *SeedPlansUseCase {
	return &SeedPlansUseCase{
		planRepo: planRepo,
		pkgRepo:  pkgRepo,
		logger:   logger,
	}
}

func (uc *SeedPlansUseCase) Execute(ctx context.Context) error {
	for _, seed := range defaultPlans {
		plan, err := uc.ensurePlan(ctx, seed)
		if err != nil {
			return err
		}

		for _, pkgSeed := range seed.packages {
			if err := uc.ensurePackage(ctx, plan.ID(), pkgSeed); err != nil {
				return err
			}
		}
	}
	uc.logger.Infow("plan catalog seeded", "plans", len(defaultPlans))
	return nil
}

func (uc *SeedPlansUseCase) ensurePlan(ctx context.Context, seed planSeed) (*billing.Plan, error) {
	existing, err := uc.planRepo.GetBySlug(ctx, seed.slug)
	if err == nil && existing != nil {
		return existing, nil
	}

	plan, err := billing.NewPlan(seed.name, seed.slug, seed.description, seed.frequency, seed.planStatus, seed.amount, seed.currency)
	if err != nil {
		return nil, fmt.Errorf("invalid plan seed %s: %w", seed.slug, err)
	}
	if err := uc.planRepo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to seed plan %s: %w", seed.slug, err)
	}
	return plan, nil
}

func (uc *SeedPlansUseCase) ensurePackage(ctx context.Context, planID uint, seed packageSeed) error {
	exists, err := uc.pkgRepo.ExistsByPlanAndTag(ctx, planID, seed.tag)
	if err != nil {
		return fmt.Errorf("failed to check package %s: %w", seed.tag, err)
	}
	if exists {
		return nil
	}

	pkg := &billing.Package{
		PlanID:      planID,
		Name:        seed.name,
		Tag:         seed.tag,
		IsUnlimited: seed.isUnlimited,
	}
	if !seed.isUnlimited {
		count := seed.count
		pkg.Count = &count
	}
	if err := uc.pkgRepo.Create(ctx, pkg); err != nil {
		return fmt.Errorf("failed to seed package %s: %w", seed.tag, err)
	}
	return nil
}
