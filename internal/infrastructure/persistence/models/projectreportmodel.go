package models

import (
	"time"

	"github.com/oysterbuild/backend/internal/shared/constants"
)

type ProjectReportModel struct {
	ID               uint      `gorm:"primaryKey"`
	ProjectID        uint      `gorm:"index;not null"`
	Title            string    `gorm:"size:255;not null"`
	ReportType       string    `gorm:"size:32;not null"`
	ReportDate       time.Time `gorm:"index;not null"`
	Description      string    `gorm:"type:text"`
	ProgressPercent  float64   `gorm:"not null;default:0"`
	Recommendations  StringSlice `gorm:"type:jsonb"`
	ApprovalRequired bool        `gorm:"not null;default:false"`
	Approved         bool        `gorm:"not null;default:false"`
	SubmittedBy      uint        `gorm:"index;not null"`
	Version          int         `gorm:"default:1"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (ProjectReportModel) TableName() string {
	return constants.TableProjectReports
}
