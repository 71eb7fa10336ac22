package models

import (
	"time"

	"github.com/oysterbuild/backend/internal/shared/constants"
)

type ProjectModel struct {
	ID                  uint    `gorm:"primaryKey"`
	UID                 string  `gorm:"uniqueIndex;size:64;not null"`
	Name                string  `gorm:"size:225;not null"`
	Description         string  `gorm:"type:text"`
	ProjectType         string  `gorm:"size:32;not null"`
	LocationText        string  `gorm:"type:text"`
	LocationMap         string  `gorm:"type:text"`
	StartDate           *time.Time
	EndDate             *time.Time
	Budget              float64 `gorm:"not null;default:0"`
	BudgetCurrency      string  `gorm:"size:10;not null;default:'NGN'"`
	Status              string  `gorm:"size:20;not null;index"`
	PaymentStatus       string  `gorm:"size:20;not null;index"`
	OwnerID             uint    `gorm:"index;not null"`
	PlanID              *uint   `gorm:"index"`
	FloorNumber         int     `gorm:"not null;default:1"`
	InspectionDays      StringSlice `gorm:"type:jsonb"`
	InspectionWindow    string      `gorm:"size:32"`
	SubscriptionEndDate *time.Time  `gorm:"index"`
	Version             int         `gorm:"default:1"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (ProjectModel) TableName() string {
	return constants.TableProjects
}
