package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/promptpilot/promptpilot/internal/interfaces/http/middleware"
	"github.com/promptpilot/promptpilot/internal/interfaces/http/routes"

	_ "github.com/promptpilot/promptpilot/docs"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.CustomLogger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/health", c.hdlrs.health.HealthCheck)
	if c.cfg.Server.Mode != gin.ReleaseMode {
		c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	routes.SetupAPIRoutes(c.engine, &routes.APIRouteConfig{
		OptimizeHandler:       c.hdlrs.optimize,
		UsageHandler:          c.hdlrs.usage,
		SubscriptionHandler:   c.hdlrs.subscription,
		PaymentHandler:        c.hdlrs.payment,
		AccountHandler:        c.hdlrs.account,
		PromptHandler:         c.hdlrs.prompt,
		AuthMiddleware:        c.authMiddleware,
		ServiceAuthMiddleware: c.serviceAuthMiddleware,
		RateLimit:             c.rateLimitFor,
	})
}

// rateLimitFor returns the limiter middleware for scope, or a pass-through when
// rate limiting is disabled.
func (c *Container) rateLimitFor(scope string) gin.HandlerFunc {
	if !c.cfg.RateLimit.Enabled {
		return func(ctx *gin.Context) { ctx.Next() }
	}
	return middleware.RateLimit(c.rateLimiter, scope, c.log)
}
