package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host" yaml:"host"`
	Port           int      `mapstructure:"port" yaml:"port"`
	Mode           string   `mapstructure:"mode" yaml:"mode"`
	BaseURL        string   `mapstructure:"base_url" yaml:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	// Timezone is the IANA zone used to decide calendar days for token refills.
	Timezone string `mapstructure:"timezone" yaml:"timezone"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	// Driver is "mysql" or "sqlite".
	Driver          string `mapstructure:"driver" yaml:"driver"`
	Host            string `mapstructure:"host" yaml:"host"`
	Port            int    `mapstructure:"port" yaml:"port"`
	Username        string `mapstructure:"username" yaml:"username"`
	Password        string `mapstructure:"password" yaml:"password"`
	Database        string `mapstructure:"database" yaml:"database"`
	SQLitePath      string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`
}

type JWTConfig struct {
	// Secret verifies HS256 session tokens issued by the identity provider.
	Secret   string `mapstructure:"secret" yaml:"secret"`
	Issuer   string `mapstructure:"issuer" yaml:"issuer"`
	Audience string `mapstructure:"audience" yaml:"audience"`
	// JWKSURL switches verification to the provider's published key set.
	JWKSURL string `mapstructure:"jwks_url" yaml:"jwks_url"`
}

type AuthConfig struct {
	JWT        JWTConfig `mapstructure:"jwt" yaml:"jwt"`
	ServiceKey string    `mapstructure:"service_key" yaml:"service_key"`
}

type WebhookConfig struct {
	Secret                 string `mapstructure:"secret" yaml:"secret"`
	RejectInvalidSignature bool   `mapstructure:"reject_invalid_signature" yaml:"reject_invalid_signature"`
}

type PaymentConfig struct {
	KeyID     string        `mapstructure:"key_id" yaml:"key_id"`
	KeySecret string        `mapstructure:"key_secret" yaml:"key_secret"`
	Currency  string        `mapstructure:"currency" yaml:"currency"`
	ProAmount int64         `mapstructure:"pro_amount" yaml:"pro_amount"`
	Period    time.Duration `mapstructure:"period" yaml:"period"`
	Webhook   WebhookConfig `mapstructure:"webhook" yaml:"webhook"`
	// UseMock replaces the provider with an in-process gateway for local runs.
	UseMock bool `mapstructure:"use_mock" yaml:"use_mock"`
}

// WebhookSecret returns the webhook secret, falling back to the key secret.
func (p *PaymentConfig) WebhookSecret() string {
	if p.Webhook.Secret != "" {
		return p.Webhook.Secret
	}
	return p.KeySecret
}

type OptimizerConfig struct {
	Provider string        `mapstructure:"provider" yaml:"provider"`
	APIKey   string        `mapstructure:"api_key" yaml:"api_key"`
	Model    string        `mapstructure:"model" yaml:"model"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

func (o *OptimizerConfig) Enabled() bool {
	return o.Provider != "" && o.Provider != "template" && o.APIKey != ""
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host" yaml:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port" yaml:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user" yaml:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password" yaml:"smtp_password"`
	FromAddress  string `mapstructure:"from_address" yaml:"from_address"`
	FromName     string `mapstructure:"from_name" yaml:"from_name"`
}

func (e *EmailConfig) Enabled() bool {
	return e.SMTPHost != ""
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled" yaml:"enabled"`
	Requests int           `mapstructure:"requests" yaml:"requests"`
	Window   time.Duration `mapstructure:"window" yaml:"window"`
}
