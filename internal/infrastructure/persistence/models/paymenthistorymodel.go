package models

import (
	"time"

	"github.com/oysterbuild/backend/internal/shared/constants"
)

type PaymentHistoryModel struct {
	ID              uint   `gorm:"primaryKey"`
	ProjectID       uint   `gorm:"index;not null"`
	PlanID          uint   `gorm:"index;not null"`
	InvoiceID       *uint  `gorm:"index"`
	Status          string `gorm:"size:20;not null;index"`
	StartDate       time.Time `gorm:"not null"`
	NextBillingDate time.Time `gorm:"index;not null"`
	Months          int       `gorm:"not null;default:1"`
	Version         int       `gorm:"default:1"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (PaymentHistoryModel) TableName() string {
	return constants.TablePaymentHistories
}
