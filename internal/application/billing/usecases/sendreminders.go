package usecases

import (
	"context"
	"fmt"

	"github.com/oysterbuild/backend/internal/domain/billing"
	"github.com/oysterbuild/backend/internal/domain/notification"
	"github.com/oysterbuild/backend/internal/domain/project"
	"github.com/oysterbuild/backend/internal/domain/user"
	"github.com/oysterbuild/backend/internal/shared/biztime"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

// SendExpirationRemindersUseCase queues a reminder for every active project
// whose subscription ends in exactly one or two days. One failing recipient
// never aborts the batch.
type SendExpirationRemindersUseCase struct {
	projectRepo project.Repository
	planRepo    billing.PlanRepository
	userRepo    user.Repository
	outboxRepo  notification.Repository
	logger      logger.Interface
}

func NewSendExpirationRemindersUseCase(
	projectRepo project.Repository,
	planRepo billing.PlanRepository,
	userRepo user.Repository,
	outboxRepo notification.Repository,
	logger logger.Interface,
) *SendExpirationRemindersUseCase {
	return &SendExpirationRemindersUseCase{
		projectRepo: projectRepo,
		planRepo:    planRepo,
		userRepo:    userRepo,
		outboxRepo:  outboxRepo,
		logger:      logger,
	}
}

func (uc *SendExpirationRemindersUseCase) Execute(ctx context.Context) error {
	today := biztime.Today()
	from := today.AddDate(0, 0, 1)
	to := today.AddDate(0, 0, 2)

	projects, err := uc.projectRepo.FindExpiringBetween(ctx, from, to)
	if err != nil {
		return fmt.Errorf("failed to find expiring projects: %w", err)
	}

	queued := 0
	for _, proj := range projects {
		if err := uc.remind(ctx, proj); err != nil {
			uc.logger.Warnw("failed to queue expiration reminder",
				"project_id", proj.ID(), "error", err)
			continue
		}
		queued++
	}

	if len(projects) > 0 {
		uc.logger.Infow("expiration reminders queued", "matched", len(projects), "queued", queued)
	}
	return nil
}

func (uc *SendExpirationRemindersUseCase) remind(ctx context.Context, proj *project.Project) error {
	owner, err := uc.userRepo.GetByID(ctx, proj.OwnerID())
	if err != nil {
		return fmt.Errorf("owner lookup: %w", err)
	}

	planName := ""
	if proj.PlanID() != nil {
		plan, err := uc.planRepo.GetByID(ctx, *proj.PlanID())
		if err == nil {
			planName = plan.Name()
		}
	}

	endDate := ""
	if proj.SubscriptionEndDate() != nil {
		endDate = proj.SubscriptionEndDate().Format("2006-01-02")
	}

	intent, err := notification.NewOutbox(owner.Email, "Your plan is expiring soon", notification.TemplateExpirationReminder, map[string]any{
		"first_name":   owner.FirstName,
		"project_name": proj.Name(),
		"plan_name":    planName,
		"end_date":     endDate,
	})
	if err != nil {
		return err
	}
	return uc.outboxRepo.Create(ctx, intent)
}
