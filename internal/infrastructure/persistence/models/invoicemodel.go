package models

import (
	"time"

	"github.com/oysterbuild/backend/internal/shared/constants"
)

type InvoiceModel struct {
	ID            uint   `gorm:"primaryKey"`
	InvoiceNumber string `gorm:"uniqueIndex;size:32;not null"`
	ProjectID     uint   `gorm:"index;not null"`
	PlanID        uint   `gorm:"index;not null"`
	Amount        int64  `gorm:"not null"`
	Currency      string `gorm:"size:10;not null"`
	Status        string `gorm:"size:20;not null;index"`
	IssuedAt      time.Time `gorm:"not null"`
	DueDate       time.Time `gorm:"not null"`
	PaidAt        *time.Time
	Version       int `gorm:"default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (InvoiceModel) TableName() string {
	return constants.TableInvoices
}
