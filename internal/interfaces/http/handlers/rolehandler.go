package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oysterbuild/backend/internal/domain/rbac"
	"github.com/oysterbuild/backend/internal/shared/logger"
	"github.com/oysterbuild/backend/internal/shared/utils"
)

type RoleHandler struct {
	roleRepo rbac.RoleRepository
	logger   logger.Interface
}

func NewRoleHandler(roleRepo rbac.RoleRepository, logger logger.Interface) *RoleHandler {
	return &RoleHandler{
		roleRepo: roleRepo,
		logger:   logger,
	}
}

type RoleResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListRoles returns the assignable project roles.
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleRepo.List(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list roles", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	response := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		response = append(response, RoleResponse{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
		})
	}

	utils.SuccessResponse(c, http.StatusOK, "roles retrieved successfully", response)
}
