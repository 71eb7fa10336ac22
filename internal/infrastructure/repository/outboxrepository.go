package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/oysterbuild/backend/internal/domain/notification"
	"github.com/oysterbuild/backend/internal/infrastructure/persistence/mappers"
	"github.com/oysterbuild/backend/internal/infrastructure/persistence/models"
	"github.com/oysterbuild/backend/internal/shared/db"
)

type OutboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) Create(ctx context.Context, intent *notification.Outbox) error {
	model := mappers.OutboxToModel(intent)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create notification intent: %w", err)
	}

	intent.ID = model.ID
	return nil
}

func (r *OutboxRepository) ListPending(ctx context.Context, limit int) ([]*notification.Outbox, error) {
	var intentModels []models.NotificationOutboxModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("status = ? AND dispatch_at <= ?", string(notification.StatusPending), time.Now().UTC()).
		Order("dispatch_at ASC").
		Limit(limit).
		Find(&intentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending notifications: %w", err)
	}

	intents := make([]*notification.Outbox, 0, len(intentModels))
	for i := range intentModels {
		intents = append(intents, mappers.OutboxToDomain(&intentModels[i]))
	}
	return intents, nil
}

func (r *OutboxRepository) Update(ctx context.Context, intent *notification.Outbox) error {
	model := mappers.OutboxToModel(intent)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.NotificationOutboxModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"attempts":   model.Attempts,
			"last_error": model.LastError,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update notification intent: %w", result.Error)
	}
	return nil
}
