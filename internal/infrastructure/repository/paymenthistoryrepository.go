package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oysterbuild/backend/internal/domain/billing"
	"github.com/oysterbuild/backend/internal/infrastructure/persistence/mappers"
	"github.com/oysterbuild/backend/internal/infrastructure/persistence/models"
	"github.com/oysterbuild/backend/internal/shared/db"
	"github.com/oysterbuild/backend/internal/shared/errors"
)

type PaymentHistoryRepository struct {
	db *gorm.DB
}

func NewPaymentHistoryRepository(db *gorm.DB) *PaymentHistoryRepository {
	return &PaymentHistoryRepository{db: db}
}

func (r *PaymentHistoryRepository) Create(ctx context.Context, history *billing.PaymentHistory) error {
	model := mappers.PaymentHistoryToModel(history)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create payment history: %w", err)
	}

	history.SetID(model.ID)
	return nil
}

func (r *PaymentHistoryRepository) GetByID(ctx context.Context, id uint) (*billing.PaymentHistory, error) {
	var model models.PaymentHistoryModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("payment history not found")
		}
		return nil, fmt.Errorf("failed to get payment history: %w", err)
	}

	return mappers.PaymentHistoryToDomain(&model)
}

// GetPendingByProjectIDForUpdate locks the project's Pending row so invoice
// generation can reuse it instead of stacking a second Pending row. A missing
// row is not an error here.
func (r *PaymentHistoryRepository) GetPendingByProjectIDForUpdate(ctx context.Context, projectID uint) (*billing.PaymentHistory, error) {
	var model models.PaymentHistoryModel

	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("project_id = ? AND status = ?", projectID, string(billing.PaymentHistoryStatusPending)).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock pending payment history: %w", err)
	}

	return mappers.PaymentHistoryToDomain(&model)
}

func (r *PaymentHistoryRepository) GetByInvoiceID(ctx context.Context, invoiceID uint) (*billing.PaymentHistory, error) {
	var model models.PaymentHistoryModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("invoice_id = ?", invoiceID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("payment history not found")
		}
		return nil, fmt.Errorf("failed to get payment history by invoice: %w", err)
	}

	return mappers.PaymentHistoryToDomain(&model)
}

func (r *PaymentHistoryRepository) Update(ctx context.Context, history *billing.PaymentHistory) error {
	model := mappers.PaymentHistoryToModel(history)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentHistoryModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"plan_id":           model.PlanID,
			"invoice_id":        model.InvoiceID,
			"status":            model.Status,
			"start_date":        model.StartDate,
			"next_billing_date": model.NextBillingDate,
			"months":            model.Months,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update payment history: %w", result.Error)
	}
	return nil
}

func (r *PaymentHistoryRepository) ListByProjectID(ctx context.Context, projectID uint, page, pageSize int) ([]*billing.PaymentHistory, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := tx.Model(&models.PaymentHistoryModel{}).
		Where("project_id = ?", projectID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payment histories: %w", err)
	}

	var historyModels []models.PaymentHistoryModel
	if err := tx.
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&historyModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list payment histories: %w", err)
	}

	histories := make([]*billing.PaymentHistory, 0, len(historyModels))
	for i := range historyModels {
		history, err := mappers.PaymentHistoryToDomain(&historyModels[i])
		if err != nil {
			return nil, 0, err
		}
		histories = append(histories, history)
	}
	return histories, total, nil
}

// ExpireDue flips Active rows whose billing window has closed. Runs as a
// single statement so the daily sweep stays cheap regardless of row count.
func (r *PaymentHistoryRepository) ExpireDue(ctx context.Context, asOf time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentHistoryModel{}).
		Where("status = ? AND next_billing_date <= ?", string(billing.PaymentHistoryStatusActive), asOf).
		Updates(map[string]interface{}{
			"status":     string(billing.PaymentHistoryStatusExpired),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire payment histories: %w", result.Error)
	}
	return result.RowsAffected, nil
}
