package usecases

import (
	"context"
	"fmt"

	"github.com/oysterbuild/backend/internal/application/project/dto"
	"github.com/oysterbuild/backend/internal/domain/billing"
	"github.com/oysterbuild/backend/internal/shared/constants"
	"github.com/oysterbuild/backend/internal/shared/errors"
	"github.com/oysterbuild/backend/internal/shared/logger"
	"github.com/oysterbuild/backend/internal/shared/utils"
)

type ListPaymentHistoryCommand struct {
	UserID    uint
	ProjectID uint
	Page      int
	PageSize  int
}

type ListPaymentHistoryResult struct {
	Payments []*dto.PaymentHistoryDTO `json:"payments"`
	Total    int64                    `json:"total"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"page_size"`
}

// PaymentHistoryUseCase serves a project's subscription-cycle records joined
// with their plan summaries. Requires the view-project-payment permission.
type PaymentHistoryUseCase struct {
	historyRepo billing.PaymentHistoryRepository
	planRepo    billing.PlanRepository
	permissions PermissionChecker
	logger      logger.Interface
}

func NewPaymentHistoryUseCase(
	historyRepo billing.PaymentHistoryRepository,
	planRepo billing.PlanRepository,
	permissions PermissionChecker,
	logger logger.Interface,
) *PaymentHistoryUseCase {
	return &PaymentHistoryUseCase{
		historyRepo: historyRepo,
		planRepo:    planRepo,
		permissions: permissions,
		logger:      logger,
	}
}

func (uc *PaymentHistoryUseCase) List(ctx context.Context, cmd ListPaymentHistoryCommand) (*ListPaymentHistoryResult, error) {
	if err := uc.authorize(ctx, cmd.UserID, cmd.ProjectID); err != nil {
		return nil, err
	}

	pagination := utils.ValidatePagination(cmd.Page, cmd.PageSize)
	page, pageSize := pagination.Page, pagination.PageSize
	histories, total, err := uc.historyRepo.ListByProjectID(ctx, cmd.ProjectID, page, pageSize)
	if err != nil {
		uc.logger.Errorw("failed to list payment history", "project_id", cmd.ProjectID, "error", err)
		return nil, fmt.Errorf("failed to list payment history: %w", err)
	}

	// Plans repeat across cycles; fetch each once.
	plans := make(map[uint]*billing.Plan)
	payments := make([]*dto.PaymentHistoryDTO, 0, len(histories))
	for _, h := range histories {
		plan, ok := plans[h.PlanID()]
		if !ok {
			plan, err = uc.planRepo.GetByID(ctx, h.PlanID())
			if err != nil && !errors.IsNotFoundError(err) {
				return nil, fmt.Errorf("failed to get plan: %w", err)
			}
			plans[h.PlanID()] = plan
		}
		payments = append(payments, dto.ToPaymentHistoryDTO(h, plan))
	}

	return &ListPaymentHistoryResult{
		Payments: payments,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (uc *PaymentHistoryUseCase) Get(ctx context.Context, userID, projectID, paymentID uint) (*dto.PaymentHistoryDTO, error) {
	if err := uc.authorize(ctx, userID, projectID); err != nil {
		return nil, err
	}

	history, err := uc.historyRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("payment record not found")
		}
		return nil, fmt.Errorf("failed to get payment record: %w", err)
	}
	if history.ProjectID() != projectID {
		return nil, errors.NewNotFoundError("payment record not found")
	}

	plan, err := uc.planRepo.GetByID(ctx, history.PlanID())
	if err != nil && !errors.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return dto.ToPaymentHistoryDTO(history, plan), nil
}

func (uc *PaymentHistoryUseCase) authorize(ctx context.Context, userID, projectID uint) error {
	allowed, err := uc.permissions.HasProjectPermission(ctx, userID, projectID, constants.PermViewProjectPayment)
	if err != nil {
		return fmt.Errorf("failed to check permission: %w", err)
	}
	if !allowed {
		uc.logger.Warnw("payment history access denied", "user_id", userID, "project_id", projectID)
		return errors.NewForbiddenError("insufficient permission to complete the action")
	}
	return nil
}
