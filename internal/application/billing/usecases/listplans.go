package usecases

import (
	"context"
	"fmt"

	"github.com/oysterbuild/backend/internal/domain/billing"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

type PlanWithPackages struct {
	Plan     *billing.Plan
	Packages []*billing.Package
}

type ListPlansUseCase struct {
	planRepo billing.PlanRepository
	pkgRepo  billing.PackageRepository
	logger   logger.Interface
}

func NewListPlansUseCase(planRepo billing.PlanRepository, pkgRepo billing.PackageRepository, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{
		planRepo: planRepo,
		pkgRepo:  pkgRepo,
		logger:   logger,
	}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context) ([]*PlanWithPackages, error) {
	plans, err := uc.planRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	result := make([]*PlanWithPackages, 0, len(plans))
	for _, plan := range plans {
		pkgs, err := uc.pkgRepo.ListByPlanID(ctx, plan.ID())
		if err != nil {
			return nil, fmt.Errorf("failed to list packages for plan %d: %w", plan.ID(), err)
		}
		result = append(result, &PlanWithPackages{Plan: plan, Packages: pkgs})
	}
	return result, nil
}
