package models

import (
	"time"

	"github.com/oysterbuild/backend/internal/shared/constants"
)

type ProjectMemberModel struct {
	ID        uint `gorm:"primaryKey"`
	ProjectID uint `gorm:"index:idx_project_members_project_user,unique;not null"`
	UserID    uint `gorm:"index:idx_project_members_project_user,unique;not null"`
	RoleID    uint `gorm:"index;not null"`
	IsActive  bool `gorm:"not null;default:true"`
	JoinedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProjectMemberModel) TableName() string {
	return constants.TableProjectMembers
}
