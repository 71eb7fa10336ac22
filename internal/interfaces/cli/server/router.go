package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oysterbuild/backend/internal/interfaces/http/middleware"
	"github.com/oysterbuild/backend/internal/interfaces/http/routes"
	"github.com/oysterbuild/backend/internal/shared/logger"
)

// NewRouter builds the gin engine with the full route surface.
func NewRouter(c *Container, log logger.Interface) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))

	engine.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupProjectRoutes(engine, &routes.ProjectRouteConfig{
		ProjectHandler: c.ProjectHandler,
		ReportHandler:  c.ReportHandler,
		AuthMiddleware: c.AuthMiddleware,
	})
	routes.SetupPaymentRoutes(engine, &routes.PaymentRouteConfig{
		PaymentHandler: c.PaymentHandler,
		AuthMiddleware: c.AuthMiddleware,
		RateLimit:      c.RateLimit,
	})
	routes.SetupPlanRoutes(engine, &routes.PlanRouteConfig{
		PlanHandler: c.PlanHandler,
	})
	routes.SetupCoreRoutes(engine, &routes.CoreRouteConfig{
		RoleHandler:    c.RoleHandler,
		AuthMiddleware: c.AuthMiddleware,
	})

	return engine
}
