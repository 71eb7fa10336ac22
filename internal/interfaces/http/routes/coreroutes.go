package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/oysterbuild/backend/internal/interfaces/http/handlers"
	"github.com/oysterbuild/backend/internal/interfaces/http/middleware"
)

// CoreRouteConfig holds dependencies for core routes.
type CoreRouteConfig struct {
	RoleHandler    *handlers.RoleHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupCoreRoutes configures the core lookup routes.
func SetupCoreRoutes(engine *gin.Engine, cfg *CoreRouteConfig) {
	core := engine.Group("/core")
	core.Use(cfg.AuthMiddleware.RequireAuth())
	{
		core.GET("/roles", cfg.RoleHandler.ListRoles)
	}
}
