package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/promptpilot/promptpilot/internal/interfaces/http/handlers"
	"github.com/promptpilot/promptpilot/internal/interfaces/http/middleware"
)

// APIRouteConfig holds dependencies for the /api routes.
type APIRouteConfig struct {
	OptimizeHandler       *handlers.OptimizeHandler
	UsageHandler          *handlers.UsageHandler
	SubscriptionHandler   *handlers.SubscriptionHandler
	PaymentHandler        *handlers.PaymentHandler
	AccountHandler        *handlers.AccountHandler
	PromptHandler         *handlers.PromptHandler
	AuthMiddleware        *middleware.AuthMiddleware
	ServiceAuthMiddleware *middleware.ServiceAuthMiddleware
	RateLimit             func(scope string) gin.HandlerFunc
}

// SetupAPIRoutes configures every endpoint under /api.
func SetupAPIRoutes(engine *gin.Engine, cfg *APIRouteConfig) {
	api := engine.Group("/api")

	// signature-authenticated
	api.POST("/payment/webhook", cfg.PaymentHandler.Webhook)

	payment := api.Group("/payment")
	payment.Use(cfg.ServiceAuthMiddleware.RequireServiceOrSession(), cfg.RateLimit("payment"))
	{
		payment.POST("/create-order", cfg.PaymentHandler.CreateOrder)
		payment.POST("/verify", cfg.PaymentHandler.VerifyPayment)
	}

	session := api.Group("")
	session.Use(cfg.AuthMiddleware.RequireAuth())
	{
		session.POST("/optimize", cfg.RateLimit("optimize"), cfg.OptimizeHandler.Optimize)

		session.GET("/usage", cfg.UsageHandler.GetUsage)
		session.POST("/usage", cfg.UsageHandler.ConsumeToken)
		session.GET("/user/status", cfg.UsageHandler.GetUserStatus)

		session.GET("/subscription/upgrade", cfg.SubscriptionHandler.GetSubscription)
		session.POST("/subscription/upgrade", cfg.SubscriptionHandler.PrepareUpgrade)

		session.DELETE("/account/delete", cfg.AccountHandler.DeleteAccount)

		session.GET("/prompts", cfg.PromptHandler.ListPrompts)
		session.GET("/prompts/export", cfg.PromptHandler.ExportPrompts)
	}
}
