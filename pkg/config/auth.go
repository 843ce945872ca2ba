package config

import (
	"fmt"
	"time"
)

// AuthConfig holds the token-signing settings for the mock backend.
type AuthConfig struct {
	Secret   string        `koanf:"secret"`
	TokenTTL time.Duration `koanf:"tokenTtl"`
}

func (c *AuthConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("auth secret is not configured")
	}
	if len(c.Secret) < 16 {
		return fmt.Errorf("auth secret is too short: %d bytes", len(c.Secret))
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("invalid auth token TTL: %v", c.TokenTTL)
	}
	return nil
}
