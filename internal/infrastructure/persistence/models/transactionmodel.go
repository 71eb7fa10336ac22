package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/oysterbuild/backend/internal/shared/constants"
)

type TransactionModel struct {
	ID                uint   `gorm:"primaryKey"`
	InvoiceID         uint   `gorm:"index;not null"`
	ProjectID         uint   `gorm:"index;not null"`
	Reference         string `gorm:"uniqueIndex;size:64;not null"`
	Provider          string `gorm:"index:idx_transactions_provider_ref,unique;size:32;not null"`
	ProviderReference string `gorm:"index:idx_transactions_provider_ref,unique;size:128;not null"`
	Amount            int64  `gorm:"not null"`
	Currency          string `gorm:"size:10;not null"`
	Status            string `gorm:"size:20;not null;index"`
	AuthorizationURL  string `gorm:"type:text"`
	ProviderPayload   datatypes.JSON `gorm:"type:jsonb"`
	PaidAt            *time.Time
	Version           int `gorm:"default:1"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (TransactionModel) TableName() string {
	return constants.TableTransactions
}
