// Package config assembles the admin client configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flogin/prodadmin/pkg/config"
	"github.com/flogin/prodadmin/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	API         config.APIConfig         `koanf:"api"`
	Credentials config.CredentialsConfig `koanf:"credentials"`
	Log         config.LogConfig         `koanf:"log"`
}

// Load reads the client configuration with built-in defaults suitable for
// a locally running mock backend. The persisted-token TTL defaults to
// 7 days, matching the cookie policy of the original admin panel.
func Load() (*Config, error) {
	return configloader.Load[*Config]("prodadmin", map[string]any{
		"api.baseUrl":      "http://localhost:8080",
		"api.timeout":      "10s",
		"credentials.path": defaultCredentialsPath(),
		"credentials.ttl":  "168h",
		"log.level":        "info",
	})
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("\n--- API ---\n")
	b.WriteString(fmt.Sprintf("  api.baseUrl: %s\n", c.API.BaseURL))
	b.WriteString(fmt.Sprintf("  api.timeout: %v\n", c.API.Timeout))
	b.WriteString("\n--- Credentials ---\n")
	b.WriteString(fmt.Sprintf("  credentials.path: %s\n", c.Credentials.Path))
	b.WriteString(fmt.Sprintf("  credentials.ttl: %v\n", c.Credentials.TTL))
	b.WriteString(c.Log.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.API.Validate(); err != nil {
		return err
	}
	if err := c.Credentials.Validate(); err != nil {
		return err
	}
	return c.Log.Validate()
}

func defaultCredentialsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "credentials.db"
	}
	return filepath.Join(home, ".prodadmin", "credentials.db")
}
