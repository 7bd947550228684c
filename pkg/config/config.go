package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port            int    `envconfig:"PORT" default:"8080"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseDriver  string `envconfig:"DATABASE_DRIVER" default:"mysql"`
	DatabaseURL     string `envconfig:"DATABASE_URL" required:"true"`
	Profile         string `envconfig:"PROFILE" default:"default"`
	SeedMembers     int    `envconfig:"SEED_MEMBERS" default:"100"`
	DefaultPageSize int    `envconfig:"DEFAULT_PAGE_SIZE" default:"20"`
	MaxPageSize     int    `envconfig:"MAX_PAGE_SIZE" default:"100"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	switch c.DatabaseDriver {
	case "mysql", "sqlite3":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q: want mysql or sqlite3", c.DatabaseDriver)
	}
	if c.DefaultPageSize <= 0 {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be positive, got %d", c.DefaultPageSize)
	}
	if c.MaxPageSize < c.DefaultPageSize {
		return fmt.Errorf("MAX_PAGE_SIZE %d is smaller than DEFAULT_PAGE_SIZE %d", c.MaxPageSize, c.DefaultPageSize)
	}
	return nil
}

// SeedEnabled reports whether sample teams and members are loaded at startup.
func (c *Config) SeedEnabled() bool {
	return c.Profile == "local"
}

// DSN returns DatabaseURL for sql.Open. SQLite URLs get foreign key enforcement switched on unless
// they already choose a setting.
func (c *Config) DSN() string {
	if c.DatabaseDriver != "sqlite3" {
		return c.DatabaseURL
	}
	if strings.Contains(c.DatabaseURL, "_foreign_keys=") || strings.Contains(c.DatabaseURL, "_fk=") {
		return c.DatabaseURL
	}
	sep := "?"
	if strings.Contains(c.DatabaseURL, "?") {
		sep = "&"
	}
	return c.DatabaseURL + sep + "_foreign_keys=on"
}
