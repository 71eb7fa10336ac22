// Package scheduler runs the periodic maintenance jobs using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/oysterbuild/backend/internal/shared/biztime"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

// Job is one scheduled maintenance task.
type Job interface {
	Execute(ctx context.Context) error
}

// Manager owns the single gocron scheduler instance and the jobs
// registered on it.
type Manager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewManager creates a scheduler bound to the business timezone so cron
// expressions fire on local billing days.
func NewManager(log logger.Interface) (*Manager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &Manager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterExpirationJob schedules the daily subscription expiration sweep.
func (m *Manager) RegisterExpirationJob(cronExpr string, job Job) error {
	_, err := m.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(func() {
			m.runJob("subscription-expiration", 10*time.Minute, job)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("billing", "expire"),
		gocron.WithName("subscription-expiration"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered expiration job", "cron", cronExpr)
	return nil
}

// RegisterReminderJob schedules the daily expiration reminder batch.
func (m *Manager) RegisterReminderJob(cronExpr string, job Job) error {
	_, err := m.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(func() {
			m.runJob("expiration-reminders", 10*time.Minute, job)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("billing", "remind"),
		gocron.WithName("expiration-reminders"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered reminder job", "cron", cronExpr)
	return nil
}

// RegisterOutboxJob schedules the outbox drain at a fixed interval.
func (m *Manager) RegisterOutboxJob(interval time.Duration, job Job) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			m.runJob("outbox-dispatch", time.Minute, job)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("notification", "outbox"),
		gocron.WithName("outbox-dispatch"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered outbox job", "interval", interval)
	return nil
}

func (m *Manager) runJob(name string, timeout time.Duration, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := biztime.NowUTC()
	if err := job.Execute(ctx); err != nil {
		m.logger.Errorw("scheduled job failed",
			"job", name,
			"error", err,
			"duration", time.Since(start),
		)
		return
	}

	m.logger.Debugw("scheduled job completed",
		"job", name,
		"duration", time.Since(start),
	)
}

// Start begins executing registered jobs.
func (m *Manager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler started", "jobs", len(m.scheduler.Jobs()))
}

// Shutdown stops the scheduler and waits for running jobs to finish.
func (m *Manager) Shutdown() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	if err := m.scheduler.Shutdown(); err != nil {
		return err
	}

	m.started = false
	m.logger.Infow("scheduler stopped")
	return nil
}
