package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Gin context keys set by the auth middleware.
const (
	ContextKeyAuth    = "auth_context"
	ContextKeyService = "service_caller"
)

const (
	HeaderServiceKey       = "X-Service-Key"
	HeaderWebhookSignature = "X-Razorpay-Signature"
	HeaderRequestID        = "X-Request-ID"
)
