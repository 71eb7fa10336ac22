package models

import (
	"time"

	"github.com/oysterbuild/backend/internal/shared/constants"
)

type UserModel struct {
	ID        uint   `gorm:"primaryKey"`
	UID       string `gorm:"uniqueIndex;size:64;not null"`
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	FirstName string `gorm:"size:100"`
	LastName  string `gorm:"size:100"`
	Phone     string `gorm:"size:32"`
	Role      string `gorm:"size:20;not null;default:'USER'"`
	AvatarURL string `gorm:"type:text"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
