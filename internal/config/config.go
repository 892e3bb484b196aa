// Package config loads the storefront's TOML configuration.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/manacart/manacart/internal/pricing"
)

// Config represents the service configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Scryfall ScryfallConfig `toml:"scryfall"`
	Pricing  PricingConfig  `toml:"pricing"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port           int      `toml:"port"`             // Listen port
	AllowedOrigins []string `toml:"allowed_origins"`  // CORS origins
	AdminKeyHash   string   `toml:"admin_key_hash"`   // Argon2id hash of the admin API key
	RequestTimeout string   `toml:"request_timeout"`  // Per-request timeout (e.g., "30s")
}

// DatabaseConfig contains SQLite settings.
type DatabaseConfig struct {
	Path        string `toml:"path"`         // Path to the SQLite file
	AutoMigrate bool   `toml:"auto_migrate"` // Run migrations on startup
}

// ScryfallConfig contains card-data API settings.
type ScryfallConfig struct {
	BaseURL   string `toml:"base_url"`   // Override for tests and mirrors
	UserAgent string `toml:"user_agent"` // Sent on every request
}

// PricingConfig overrides the built-in volume tier ladder.
type PricingConfig struct {
	BasePrice float64        `toml:"base_price"` // Unit price below every tier (0 = default)
	Tiers     []pricing.Tier `toml:"tiers"`      // Replacement ladder (empty = default)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:3000"},
			RequestTimeout: "30s",
		},
		Database: DatabaseConfig{
			Path:        "manacart.db",
			AutoMigrate: true,
		},
		Scryfall: ScryfallConfig{
			UserAgent: "Manacart/1.0",
		},
		Pricing: PricingConfig{},
	}
}

// Load loads the configuration from path. A missing file yields the default
// configuration, so the service runs without any config at all.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if _, err := c.TierTable(); err != nil {
		return fmt.Errorf("invalid pricing config: %w", err)
	}
	return nil
}

// TierTable builds the tier table the config describes. Empty overrides
// fall back to the built-in ladder.
func (c *Config) TierTable() (*pricing.Table, error) {
	if len(c.Pricing.Tiers) == 0 && c.Pricing.BasePrice == 0 {
		return pricing.Default(), nil
	}

	base := c.Pricing.BasePrice
	if base == 0 {
		base = pricing.DefaultBasePrice
	}
	tiers := c.Pricing.Tiers
	if len(tiers) == 0 {
		tiers = pricing.Default().Tiers()
	}
	return pricing.NewTable(tiers, base)
}
