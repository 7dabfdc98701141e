package handlers

import (
	"context"

	entitlementdto "github.com/promptpilot/promptpilot/internal/application/entitlement/dto"
	entitlementusecases "github.com/promptpilot/promptpilot/internal/application/entitlement/usecases"
	optimizationdto "github.com/promptpilot/promptpilot/internal/application/optimization/dto"
	optimizationusecases "github.com/promptpilot/promptpilot/internal/application/optimization/usecases"
	paymentdto "github.com/promptpilot/promptpilot/internal/application/payment/dto"
	paymentusecases "github.com/promptpilot/promptpilot/internal/application/payment/usecases"
	promptdto "github.com/promptpilot/promptpilot/internal/application/prompt/dto"
	promptusecases "github.com/promptpilot/promptpilot/internal/application/prompt/usecases"
	subscriptiondto "github.com/promptpilot/promptpilot/internal/application/subscription/dto"
	subscriptionusecases "github.com/promptpilot/promptpilot/internal/application/subscription/usecases"
	"github.com/promptpilot/promptpilot/internal/shared/auth"
)

// Use case interfaces consumed by the handlers

type optimizePromptUseCase interface {
	Execute(ctx context.Context, ac auth.Context, cmd optimizationusecases.OptimizeCommand) (*optimizationdto.OptimizeResultDTO, error)
}

type getUsageUseCase interface {
	Execute(ctx context.Context, ac auth.Context) (*entitlementdto.UsageDTO, error)
}

type consumeTokenUseCase interface {
	Execute(ctx context.Context, ac auth.Context) (*entitlementusecases.ConsumeResult, error)
}

type getUserStatusUseCase interface {
	Execute(ctx context.Context, ac auth.Context) (*entitlementdto.UserStatusDTO, error)
}

type getSubscriptionUseCase interface {
	Execute(ctx context.Context, ac auth.Context) (*subscriptiondto.SubscriptionDetailsDTO, error)
}

type prepareUpgradeUseCase interface {
	Execute(ctx context.Context, ac auth.Context, cmd subscriptionusecases.PrepareUpgradeCommand) (*subscriptiondto.UpgradeReadinessDTO, error)
}

type createOrderUseCase interface {
	Execute(ctx context.Context, cmd paymentusecases.CreateOrderCommand) (*paymentdto.OrderDTO, error)
}

type verifyPaymentUseCase interface {
	Execute(ctx context.Context, cmd paymentusecases.VerifyPaymentCommand) (*paymentdto.VerifiedSubscriptionDTO, error)
}

type handleWebhookUseCase interface {
	Execute(ctx context.Context, body []byte, sig string) error
}

type deleteAccountUseCase interface {
	Execute(ctx context.Context, ac auth.Context) error
}

type listPromptsUseCase interface {
	Execute(ctx context.Context, ac auth.Context, query promptusecases.ListPromptsQuery) (*promptdto.PromptListDTO, error)
}

type exportPromptsUseCase interface {
	Execute(ctx context.Context, ac auth.Context) (*promptusecases.ExportResult, error)
}
