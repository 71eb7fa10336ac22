package models

import (
	"time"

	"github.com/oysterbuild/backend/internal/shared/constants"
)

type PlanModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null"`
	Slug        string `gorm:"uniqueIndex;size:100;not null"`
	Description string `gorm:"type:text"`
	Frequency   string `gorm:"size:20;not null"`
	PlanStatus  string `gorm:"size:20;not null"`
	Amount      int64  `gorm:"not null;default:0"`
	Currency    string `gorm:"size:10;not null;default:'NGN'"`
	Deactivated bool   `gorm:"not null;default:false"`
	Version     int    `gorm:"default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PlanModel) TableName() string {
	return constants.TablePlans
}

type PackageModel struct {
	ID          uint     `gorm:"primaryKey"`
	PlanID      uint     `gorm:"index:idx_packages_plan_tag,unique;not null"`
	Name        string   `gorm:"size:100;not null"`
	Tag         string   `gorm:"index:idx_packages_plan_tag,unique;size:32;not null"`
	Count       *float64
	IsUnlimited bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PackageModel) TableName() string {
	return constants.TablePackages
}

type UsageCountModel struct {
	ID         uint    `gorm:"primaryKey"`
	ProjectID  uint    `gorm:"index:idx_usage_counts_project_tag,unique;not null"`
	PackageTag string  `gorm:"index:idx_usage_counts_project_tag,unique;size:32;not null"`
	UsageCount float64 `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (UsageCountModel) TableName() string {
	return constants.TableUsageCounts
}
