// Package notification drains the transactional outbox.
package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oysterbuild/backend/internal/domain/notification"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

const (
	defaultBatchSize   = 50
	defaultMaxAttempts = 5
)

// Dispatcher delivers pending outbox intents. Each intent is retried on its
// own; a failing recipient never blocks the rest of the batch.
type Dispatcher struct {
	outboxRepo  notification.Repository
	sender      notification.Sender
	batchSize   int
	maxAttempts int
	logger      logger.Interface
}

func NewDispatcher(
	outboxRepo notification.Repository,
	sender notification.Sender,
	logger logger.Interface,
) *Dispatcher {
	return &Dispatcher{
		outboxRepo:  outboxRepo,
		sender:      sender,
		batchSize:   defaultBatchSize,
		maxAttempts: defaultMaxAttempts,
		logger:      logger,
	}
}

// Execute sends one batch of pending intents.
func (d *Dispatcher) Execute(ctx context.Context) error {
	intents, err := d.outboxRepo.ListPending(ctx, d.batchSize)
	if err != nil {
		return fmt.Errorf("failed to list pending notifications: %w", err)
	}

	sent := 0
	for _, intent := range intents {
		if err := d.dispatch(ctx, intent); err != nil {
			d.logger.Warnw("notification delivery failed",
				"outbox_id", intent.ID,
				"template", intent.Template,
				"attempts", intent.Attempts,
				"error", err,
			)
			continue
		}
		sent++
	}

	if len(intents) > 0 {
		d.logger.Infow("outbox batch dispatched",
			"pending", len(intents),
			"sent", sent,
		)
	}
	return nil
}

func (d *Dispatcher) dispatch(ctx context.Context, intent *notification.Outbox) error {
	var templateCtx map[string]any
	if len(intent.Payload) > 0 {
		if err := json.Unmarshal(intent.Payload, &templateCtx); err != nil {
			intent.MarkFailed(fmt.Errorf("invalid payload: %w", err), 1)
			if updateErr := d.outboxRepo.Update(ctx, intent); updateErr != nil {
				return updateErr
			}
			return fmt.Errorf("invalid notification payload: %w", err)
		}
	}

	sendErr := d.sender.Send(ctx, intent.Recipient, intent.Subject, intent.Template, templateCtx)
	if sendErr != nil {
		intent.MarkFailed(sendErr, d.maxAttempts)
	} else {
		intent.MarkSent()
	}

	if err := d.outboxRepo.Update(ctx, intent); err != nil {
		return fmt.Errorf("failed to record dispatch result: %w", err)
	}
	return sendErr
}
