package server

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/oysterbuild/backend/internal/application/billing/gateway"
	billingUsecases "github.com/oysterbuild/backend/internal/application/billing/usecases"
	"github.com/oysterbuild/backend/internal/application/notification"
	"github.com/oysterbuild/backend/internal/application/permission"
	projectUsecases "github.com/oysterbuild/backend/internal/application/project/usecases"
	"github.com/oysterbuild/backend/internal/infrastructure/config"
	"github.com/oysterbuild/backend/internal/infrastructure/email"
	"github.com/oysterbuild/backend/internal/infrastructure/media"
	"github.com/oysterbuild/backend/internal/infrastructure/payment/paystack"
	"github.com/oysterbuild/backend/internal/infrastructure/ratelimit"
	"github.com/oysterbuild/backend/internal/infrastructure/repository"
	"github.com/oysterbuild/backend/internal/infrastructure/scheduler"
	"github.com/oysterbuild/backend/internal/interfaces/http/handlers"
	"github.com/oysterbuild/backend/internal/interfaces/http/middleware"
	"github.com/oysterbuild/backend/internal/shared/constants"
	"github.com/oysterbuild/backend/internal/shared/db"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

// Container wires repositories, use cases, handlers, and background jobs.
type Container struct {
	ProjectHandler *handlers.ProjectHandler
	ReportHandler  *handlers.ReportHandler
	PaymentHandler *handlers.PaymentHandler
	PlanHandler    *handlers.PlanHandler
	RoleHandler    *handlers.RoleHandler

	AuthMiddleware *middleware.AuthMiddleware
	RateLimit      gin.HandlerFunc

	Scheduler *scheduler.Manager

	redisClient *redis.Client
}

// BuildContainer assembles the application graph from the loaded config and
// database handle.
func BuildContainer(cfg *config.Config, gdb *gorm.DB, log logger.Interface) (*Container, error) {
	txManager := db.NewTransactionManager(gdb)

	// Repositories
	userRepo := repository.NewUserRepository(gdb)
	projectRepo := repository.NewProjectRepository(gdb)
	memberRepo := repository.NewMemberRepository(gdb)
	reportRepo := repository.NewReportRepository(gdb)
	uploadRepo := repository.NewUploadRepository(gdb)
	reportUploadRepo := repository.NewReportUploadRepository(gdb)
	planRepo := repository.NewPlanRepository(gdb)
	pkgRepo := repository.NewPackageRepository(gdb)
	usageRepo := repository.NewUsageCountRepository(gdb)
	invoiceRepo := repository.NewInvoiceRepository(gdb)
	txnRepo := repository.NewTransactionRepository(gdb)
	historyRepo := repository.NewPaymentHistoryRepository(gdb)
	roleRepo := repository.NewRoleRepository(gdb)
	rolePermRepo := repository.NewRolePermissionRepository(gdb)
	outboxRepo := repository.NewOutboxRepository(gdb)

	// Infrastructure services
	mediaStore, err := media.NewS3Store(context.Background(), &cfg.Media, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize media store: %w", err)
	}

	gateways := map[string]gateway.PaymentGateway{
		constants.ProviderPaystack: paystack.NewClient(&cfg.Paystack, log),
	}

	// Application services
	resolver := permission.NewResolver(userRepo, rolePermRepo, log)
	usageMeter := billingUsecases.NewUsageMeter(projectRepo, pkgRepo, usageRepo, txManager, log)
	invoiceUC := billingUsecases.NewGenerateInvoiceUseCase(projectRepo, planRepo, invoiceRepo, historyRepo, txManager, log)

	createProjectUC := projectUsecases.NewCreateProjectUseCase(
		projectRepo, memberRepo, uploadRepo, roleRepo, mediaStore, invoiceUC, txManager, log)
	getProjectUC := projectUsecases.NewGetProjectUseCase(
		projectRepo, memberRepo, reportRepo, uploadRepo, planRepo, resolver, usageMeter, log)
	listProjectsUC := projectUsecases.NewListProjectsUseCase(projectRepo, uploadRepo, log)
	updateProjectUC := projectUsecases.NewUpdateProjectUseCase(
		projectRepo, uploadRepo, mediaStore, resolver, txManager, log)
	deleteProjectUC := projectUsecases.NewDeleteProjectUseCase(projectRepo, resolver, log)
	upgradePlanUC := projectUsecases.NewUpgradePlanUseCase(projectRepo, invoiceUC, log)
	paymentHistoryUC := projectUsecases.NewPaymentHistoryUseCase(historyRepo, planRepo, resolver, log)

	createReportUC := projectUsecases.NewCreateReportUseCase(
		reportRepo, reportUploadRepo, mediaStore, resolver, usageMeter, txManager, log)
	getReportUC := projectUsecases.NewGetReportUseCase(reportRepo, reportUploadRepo, resolver, log)
	listReportsUC := projectUsecases.NewListReportsUseCase(
		memberRepo, reportRepo, reportUploadRepo, resolver, log)
	updateReportUC := projectUsecases.NewUpdateReportUseCase(
		reportRepo, reportUploadRepo, mediaStore, resolver, txManager, log)
	deleteReportUC := projectUsecases.NewDeleteReportUseCase(
		reportRepo, reportUploadRepo, resolver, txManager, log)

	listPlansUC := billingUsecases.NewListPlansUseCase(planRepo, pkgRepo, log)
	initiatePaymentUC := billingUsecases.NewInitiatePaymentUseCase(invoiceRepo, txnRepo, gateways, log)
	handleWebhookUC := billingUsecases.NewHandleWebhookUseCase(
		gateways, txnRepo, invoiceRepo, historyRepo, planRepo, usageRepo,
		projectRepo, userRepo, outboxRepo, txManager, log)

	c := &Container{
		ProjectHandler: handlers.NewProjectHandler(
			createProjectUC, getProjectUC, listProjectsUC, updateProjectUC,
			deleteProjectUC, upgradePlanUC, paymentHistoryUC, log),
		ReportHandler: handlers.NewReportHandler(
			createReportUC, getReportUC, listReportsUC, updateReportUC, deleteReportUC, log),
		PaymentHandler: handlers.NewPaymentHandler(initiatePaymentUC, handleWebhookUC, log),
		PlanHandler:    handlers.NewPlanHandler(listPlansUC, log),
		RoleHandler:    handlers.NewRoleHandler(roleRepo, log),
		AuthMiddleware: middleware.NewAuthMiddleware(cfg.Auth.JWTSecret, log),
	}

	if cfg.RateLimit.Enabled {
		c.redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter := ratelimit.NewRedisRateLimiter(c.redisClient)
		c.RateLimit = middleware.RateLimit(limiter, &cfg.RateLimit, log)
	}

	schedulerManager, err := scheduler.NewManager(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	expireUC := billingUsecases.NewExpirePlansUseCase(projectRepo, historyRepo, log)
	remindUC := billingUsecases.NewSendExpirationRemindersUseCase(
		projectRepo, planRepo, userRepo, outboxRepo, log)
	dispatcher := notification.NewDispatcher(outboxRepo, email.NewSMTPSender(&cfg.Email), log)

	if err := schedulerManager.RegisterExpirationJob(cfg.Scheduler.ExpirationCron, expireUC); err != nil {
		return nil, fmt.Errorf("failed to register expiration job: %w", err)
	}
	if err := schedulerManager.RegisterReminderJob(cfg.Scheduler.ReminderCron, remindUC); err != nil {
		return nil, fmt.Errorf("failed to register reminder job: %w", err)
	}
	outboxInterval := time.Duration(cfg.Scheduler.OutboxIntervalMs) * time.Millisecond
	if err := schedulerManager.RegisterOutboxJob(outboxInterval, dispatcher); err != nil {
		return nil, fmt.Errorf("failed to register outbox job: %w", err)
	}
	c.Scheduler = schedulerManager

	return c, nil
}

// Close releases container-held connections.
func (c *Container) Close() error {
	if c.redisClient != nil {
		return c.redisClient.Close()
	}
	return nil
}
