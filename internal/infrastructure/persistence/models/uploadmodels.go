package models

import (
	"time"

	"github.com/oysterbuild/backend/internal/shared/constants"
)

type ProjectUploadModel struct {
	ID         uint   `gorm:"primaryKey"`
	ProjectID  uint   `gorm:"index;not null"`
	FileURL    string `gorm:"type:text;not null"`
	FileType   string `gorm:"size:20;not null"`
	UploadedAt time.Time
}

func (ProjectUploadModel) TableName() string {
	return constants.TableProjectUploads
}

type ReportUploadModel struct {
	ID         uint   `gorm:"primaryKey"`
	ReportID   uint   `gorm:"index;not null"`
	FileURL    string `gorm:"type:text;not null"`
	FileType   string `gorm:"size:20;not null"`
	UploadedAt time.Time
}

func (ReportUploadModel) TableName() string {
	return constants.TableReportUploads
}
