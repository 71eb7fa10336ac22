package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/oysterbuild/backend/internal/shared/constants"
)

type NotificationOutboxModel struct {
	ID         uint   `gorm:"primaryKey"`
	Recipient  string `gorm:"size:255;not null"`
	Subject    string `gorm:"size:255;not null"`
	Template   string `gorm:"size:64;not null"`
	Payload    datatypes.JSON `gorm:"type:jsonb"`
	Status     string         `gorm:"size:20;not null;index"`
	Attempts   int            `gorm:"not null;default:0"`
	LastError  string         `gorm:"type:text"`
	DispatchAt time.Time `gorm:"index;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (NotificationOutboxModel) TableName() string {
	return constants.TableNotificationOutbox
}
