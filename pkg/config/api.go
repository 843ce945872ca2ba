package config

import (
	"fmt"
	"net/url"
	"time"
)

// APIConfig describes how the admin client reaches the product backend.
type APIConfig struct {
	BaseURL string        `koanf:"baseUrl"`
	Timeout time.Duration `koanf:"timeout"`
}

func (c *APIConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("API base URL is not configured")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid API base URL %q: %w", c.BaseURL, err)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid API request timeout: %v", c.Timeout)
	}
	return nil
}

// CredentialsConfig locates the durable token store on disk and bounds
// how long a persisted token stays valid.
type CredentialsConfig struct {
	Path string        `koanf:"path"`
	TTL  time.Duration `koanf:"ttl"`
}

func (c *CredentialsConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("credentials path is not configured")
	}
	if c.TTL <= 0 {
		return fmt.Errorf("invalid credentials TTL: %v", c.TTL)
	}
	return nil
}
