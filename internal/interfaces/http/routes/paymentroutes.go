package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/oysterbuild/backend/internal/interfaces/http/handlers"
	"github.com/oysterbuild/backend/internal/interfaces/http/middleware"
)

// PaymentRouteConfig holds dependencies for payment routes.
type PaymentRouteConfig struct {
	PaymentHandler *handlers.PaymentHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimit      gin.HandlerFunc
}

// SetupPaymentRoutes configures payment routes. The webhook endpoint is
// unauthenticated; the gateway signs each delivery instead.
func SetupPaymentRoutes(engine *gin.Engine, cfg *PaymentRouteConfig) {
	payments := engine.Group("/payment")
	{
		webhook := payments.Group("")
		if cfg.RateLimit != nil {
			webhook.Use(cfg.RateLimit)
		}
		webhook.POST("/paystack/webhook-events", cfg.PaymentHandler.HandlePaystackWebhook)

		paymentsProtected := payments.Group("")
		paymentsProtected.Use(cfg.AuthMiddleware.RequireAuth())
		if cfg.RateLimit != nil {
			paymentsProtected.Use(cfg.RateLimit)
		}
		{
			paymentsProtected.POST("/invoice", cfg.PaymentHandler.InitiatePayment)
		}
	}
}
