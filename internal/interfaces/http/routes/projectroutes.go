package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/oysterbuild/backend/internal/interfaces/http/handlers"
	"github.com/oysterbuild/backend/internal/interfaces/http/middleware"
)

// ProjectRouteConfig holds dependencies for project routes.
type ProjectRouteConfig struct {
	ProjectHandler *handlers.ProjectHandler
	ReportHandler  *handlers.ReportHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupProjectRoutes configures project and report routes. Everything under
// /projects requires an authenticated principal.
func SetupProjectRoutes(engine *gin.Engine, cfg *ProjectRouteConfig) {
	projects := engine.Group("/projects")
	projects.Use(cfg.AuthMiddleware.RequireAuth())
	{
		projects.POST("", cfg.ProjectHandler.CreateProject)
		projects.GET("", cfg.ProjectHandler.ListProjects)
		projects.GET("/:project_id/overview", cfg.ProjectHandler.GetProjectOverview)
		projects.PUT("/:project_id/update", cfg.ProjectHandler.UpdateProject)
		projects.DELETE("/:project_id/delete", cfg.ProjectHandler.DeleteProject)

		projects.GET("/:project_id/reports", cfg.ReportHandler.ListReports)
		projects.POST("/:project_id/reports", cfg.ReportHandler.CreateReport)
		projects.GET("/:project_id/reports/:report_id", cfg.ReportHandler.GetReport)
		projects.PUT("/:project_id/reports/:report_id", cfg.ReportHandler.UpdateReport)
		projects.DELETE("/:project_id/reports/:report_id", cfg.ReportHandler.DeleteReport)

		projects.GET("/:project_id/payment/history", cfg.ProjectHandler.ListPaymentHistory)
		projects.GET("/:project_id/payment/history/:payment_id", cfg.ProjectHandler.GetPaymentHistory)
		projects.PUT("/:project_id/plan/:plan_id/upgrade", cfg.ProjectHandler.UpgradePlan)
	}
}
