package mappers

import (
	"github.com/oysterbuild/backend/internal/domain/notification"
	"github.com/oysterbuild/backend/internal/domain/rbac"
	"github.com/oysterbuild/backend/internal/domain/user"
	"github.com/oysterbuild/backend/internal/infrastructure/persistence/models"

	"gorm.io/datatypes"
)

func UserToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:        u.ID,
		UID:       u.UID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func UserToDomain(model *models.UserModel) *user.User {
	return &user.User{
		ID:        model.ID,
		UID:       model.UID,
		Email:     model.Email,
		FirstName: model.FirstName,
		LastName:  model.LastName,
		Phone:     model.Phone,
		Role:      model.Role,
		AvatarURL: model.AvatarURL,
		IsActive:  model.IsActive,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func RoleToModel(r *rbac.Role) *models.RoleModel {
	return &models.RoleModel{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func RoleToDomain(model *models.RoleModel) *rbac.Role {
	return &rbac.Role{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func PermissionToModel(p *rbac.Permission) *models.PermissionModel {
	return &models.PermissionModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func PermissionToDomain(model *models.PermissionModel) *rbac.Permission {
	return &rbac.Permission{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func OutboxToModel(o *notification.Outbox) *models.NotificationOutboxModel {
	model := &models.NotificationOutboxModel{
		ID:         o.ID,
		Recipient:  o.Recipient,
		Subject:    o.Subject,
		Template:   o.Template,
		Status:     string(o.Status),
		Attempts:   o.Attempts,
		LastError:  o.LastError,
		DispatchAt: o.DispatchAt,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	if len(o.Payload) > 0 {
		model.Payload = datatypes.JSON(o.Payload)
	}
	return model
}

func OutboxToDomain(model *models.NotificationOutboxModel) *notification.Outbox {
	return &notification.Outbox{
		ID:         model.ID,
		Recipient:  model.Recipient,
		Subject:    model.Subject,
		Template:   model.Template,
		Payload:    []byte(model.Payload),
		Status:     notification.Status(model.Status),
		Attempts:   model.Attempts,
		LastError:  model.LastError,
		DispatchAt: model.DispatchAt,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
