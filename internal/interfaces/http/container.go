package http

import (
	"context"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	accountUsecases "github.com/promptpilot/promptpilot/internal/application/account/usecases"
	entitlementUsecases "github.com/promptpilot/promptpilot/internal/application/entitlement/usecases"
	optimizationUsecases "github.com/promptpilot/promptpilot/internal/application/optimization/usecases"
	"github.com/promptpilot/promptpilot/internal/application/payment/signature"
	paymentUsecases "github.com/promptpilot/promptpilot/internal/application/payment/usecases"
	promptUsecases "github.com/promptpilot/promptpilot/internal/application/prompt/usecases"
	subscriptionUsecases "github.com/promptpilot/promptpilot/internal/application/subscription/usecases"
	"github.com/promptpilot/promptpilot/internal/infrastructure/auth"
	"github.com/promptpilot/promptpilot/internal/infrastructure/config"
	"github.com/promptpilot/promptpilot/internal/infrastructure/database"
	"github.com/promptpilot/promptpilot/internal/infrastructure/email"
	"github.com/promptpilot/promptpilot/internal/infrastructure/export"
	"github.com/promptpilot/promptpilot/internal/infrastructure/optimizer"
	infraPayment "github.com/promptpilot/promptpilot/internal/infrastructure/payment"
	"github.com/promptpilot/promptpilot/internal/infrastructure/ratelimit"
	"github.com/promptpilot/promptpilot/internal/infrastructure/repository"
	"github.com/promptpilot/promptpilot/internal/interfaces/http/handlers"
	"github.com/promptpilot/promptpilot/internal/interfaces/http/middleware"
	"github.com/promptpilot/promptpilot/internal/shared/db"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
	"github.com/promptpilot/promptpilot/internal/shared/services/markdown"
)

type repositories struct {
	entitlementRepo *repository.EntitlementRepository
	paymentRepo     *repository.PaymentRepository
	promptRepo      *repository.PromptRepository
}

type allHandlers struct {
	optimize     *handlers.OptimizeHandler
	usage        *handlers.UsageHandler
	subscription *handlers.SubscriptionHandler
	payment      *handlers.PaymentHandler
	account      *handlers.AccountHandler
	prompt       *handlers.PromptHandler
	health       *handlers.HealthHandler
}

// Container wires infrastructure, use cases and handlers, and releases them
// on Shutdown.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	hdlrs *allHandlers

	authMiddleware        *middleware.AuthMiddleware
	serviceAuthMiddleware *middleware.ServiceAuthMiddleware
	rateLimiter           ratelimit.RateLimiter

	closers []io.Closer
}

// NewContainer builds every component the HTTP server needs.
func NewContainer(ctx context.Context, gormDB *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     gormDB,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(ctx); err != nil {
		return nil, err
	}
	c.initHandlers(ctx)

	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.cfg

	c.repos = &repositories{
		entitlementRepo: repository.NewEntitlementRepository(c.db, c.log),
		paymentRepo:     repository.NewPaymentRepository(c.db),
		promptRepo:      repository.NewPromptRepository(c.db),
	}

	verifier, err := auth.NewTokenVerifier(cfg.Auth.JWT)
	if err != nil {
		return fmt.Errorf("failed to create token verifier: %w", err)
	}
	c.authMiddleware = middleware.NewAuthMiddleware(verifier, c.log)
	c.serviceAuthMiddleware = middleware.NewServiceAuthMiddleware(cfg.Auth.ServiceKey, c.authMiddleware, c.log)

	limit := ratelimit.Limit{Requests: cfg.RateLimit.Requests, Window: cfg.RateLimit.Window}
	if cfg.Redis.Enabled {
		c.redis = initRedis(ctx, cfg, c.log)
	}
	if c.redis != nil {
		c.rateLimiter = ratelimit.NewRedisRateLimiter(c.redis, limit)
	} else {
		c.rateLimiter = ratelimit.NewMemoryRateLimiter(limit)
	}

	return nil
}

// initRedis connects to Redis. An unreachable server disables it so rate
// limiting falls back to the in-process limiter.
func initRedis(ctx context.Context, cfg *config.Config, log logger.Interface) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnw("failed to connect to Redis, using in-memory rate limiter", "addr", cfg.Redis.GetAddr(), "error", err)
		_ = client.Close()
		return nil
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())
	return client
}

func (c *Container) initHandlers(ctx context.Context) {
	cfg := c.cfg
	log := c.log
	repos := c.repos
	txMgr := db.NewTransactionManager(c.db)
	md := markdown.NewMarkdownService()

	settings := paymentUsecases.Settings{
		ProAmount:                     cfg.Payment.ProAmount,
		Currency:                      cfg.Payment.Currency,
		Period:                        cfg.Payment.Period,
		RejectInvalidWebhookSignature: cfg.Payment.Webhook.RejectInvalidSignature,
	}
	sigVerifier := signature.NewVerifier(cfg.Payment.KeySecret, cfg.Payment.WebhookSecret())
	gateway := infraPayment.NewGateway(cfg.Payment, log)

	consumeUC := entitlementUsecases.NewConsumeTokenUseCase(repos.entitlementRepo, log)
	getUsageUC := entitlementUsecases.NewGetUsageUseCase(repos.entitlementRepo, log)
	getUserStatusUC := entitlementUsecases.NewGetUserStatusUseCase(repos.entitlementRepo, log)

	promptOptimizer := optimizer.New(ctx, cfg.Optimizer, log)
	if closer, ok := promptOptimizer.(io.Closer); ok {
		c.closers = append(c.closers, closer)
	}
	optimizeUC := optimizationUsecases.NewOptimizePromptUseCase(consumeUC, promptOptimizer, repos.promptRepo, log)

	getSubscriptionUC := subscriptionUsecases.NewGetSubscriptionUseCase(repos.entitlementRepo, repos.paymentRepo, log)
	prepareUpgradeUC := subscriptionUsecases.NewPrepareUpgradeUseCase(repos.entitlementRepo, cfg.Payment.ProAmount, log)

	createOrderUC := paymentUsecases.NewCreateOrderUseCase(repos.entitlementRepo, repos.paymentRepo, gateway, txMgr, settings, log)
	verifyPaymentUC := paymentUsecases.NewVerifyPaymentUseCase(repos.entitlementRepo, repos.paymentRepo, sigVerifier, txMgr, settings, log)
	webhookUC := paymentUsecases.NewHandleWebhookUseCase(repos.entitlementRepo, repos.paymentRepo, sigVerifier, txMgr, settings, log)
	if cfg.Email.Enabled() {
		receipts := email.NewSMTPReceiptSender(cfg.Email)
		verifyPaymentUC.SetReceiptSender(receipts)
		webhookUC.SetReceiptSender(receipts)
	}

	deleteAccountUC := accountUsecases.NewDeleteAccountUseCase(repos.entitlementRepo, repos.promptRepo, txMgr, log)

	listPromptsUC := promptUsecases.NewListPromptsUseCase(repos.promptRepo, md, log)
	exportPromptsUC := promptUsecases.NewExportPromptsUseCase(repos.promptRepo, export.NewXLSXExporter(), log)

	c.hdlrs = &allHandlers{
		optimize:     handlers.NewOptimizeHandler(optimizeUC, log),
		usage:        handlers.NewUsageHandler(getUsageUC, consumeUC, getUserStatusUC, log),
		subscription: handlers.NewSubscriptionHandler(getSubscriptionUC, prepareUpgradeUC, log),
		payment:      handlers.NewPaymentHandler(createOrderUC, verifyPaymentUC, webhookUC, log),
		account:      handlers.NewAccountHandler(deleteAccountUC, log),
		prompt:       handlers.NewPromptHandler(listPromptsUC, exportPromptsUC, log),
		health: handlers.NewHealthHandler(func(ctx context.Context) error {
			return database.Ping(ctx, c.db)
		}, log),
	}
}

// Engine returns the configured gin engine.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown releases external clients. The database is closed by the caller.
func (c *Container) Shutdown() {
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			c.log.Warnw("failed to close component", "error", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close Redis client", "error", err)
		}
	}
}
