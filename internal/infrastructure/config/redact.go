package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/promptpilot/promptpilot/internal/shared/utils"
)

// Redacted returns a copy with every credential masked down to its last four
// characters. Empty credentials stay empty so operators can see what is unset.
func (c *Config) Redacted() *Config {
	out := *c
	out.Server.AllowedOrigins = append([]string(nil), c.Server.AllowedOrigins...)

	mask := func(s *string) {
		*s = utils.MaskSecret(*s)
	}
	mask(&out.Database.Password)
	mask(&out.Auth.JWT.Secret)
	mask(&out.Auth.ServiceKey)
	mask(&out.Payment.KeySecret)
	mask(&out.Payment.Webhook.Secret)
	mask(&out.Optimizer.APIKey)
	mask(&out.Email.SMTPPassword)
	mask(&out.Redis.Password)
	return &out
}

// YAML renders the redacted configuration.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c.Redacted())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
