// Package config loads console configuration from an optional YAML file
// with environment variable overrides. DATABASE_URL and ADMIN_EMAILS
// follow the deployment conventions of the hosted console.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration for the admin console.
type Config struct {
	Listen string `yaml:"listen"` // HTTP listen address.

	Database struct {
		DSN string `yaml:"dsn"` // Postgres URL or SQLite path.
	} `yaml:"database"`

	Admin struct {
		Emails   []string `yaml:"emails"`   // Allow-listed admin emails.
		Password string   `yaml:"password"` // Console login password.
	} `yaml:"admin"`

	JWT struct {
		Secret string `yaml:"secret"` // HS256 signing secret.
		Expiry string `yaml:"expiry"` // Session lifetime, Go duration string.
	} `yaml:"jwt"`

	Redis struct {
		Addr     string `yaml:"addr"` // Empty disables the cache.
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"` // Cache entry lifetime, Go duration string.
	} `yaml:"redis"`

	Log struct {
		Level      string `yaml:"level"` // debug|info|warn|error.
		File       string `yaml:"file"`  // Empty logs to stdout only.
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
	} `yaml:"log"`
}

// Load reads the YAML file at path (when it exists), applies environment
// overrides, fills defaults, and validates required settings.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, errRead := os.ReadFile(path)
		switch {
		case errRead == nil:
			if errParse := yaml.Unmarshal(data, cfg); errParse != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, errParse)
			}
		case os.IsNotExist(errRead):
			// Environment-only configuration is fine.
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, errRead)
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, fmt.Errorf("config: database dsn is required (set database.dsn or DATABASE_URL)")
	}
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, fmt.Errorf("config: jwt secret is required (set jwt.secret or JWT_SECRET)")
	}
	if _, err := cfg.JWTExpiry(); err != nil {
		return nil, err
	}
	if _, err := cfg.RedisTTL(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("ADMIN_EMAILS"); v != "" {
		cfg.Admin.Emails = splitCSV(v)
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.Admin.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	if cfg.JWT.Expiry == "" {
		cfg.JWT.Expiry = "24h"
	}
	if cfg.Redis.TTL == "" {
		cfg.Redis.TTL = "60s"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.MaxSizeMB <= 0 {
		cfg.Log.MaxSizeMB = 50
	}
	if cfg.Log.MaxBackups <= 0 {
		cfg.Log.MaxBackups = 5
	}
}

// JWTExpiry returns the parsed session lifetime.
func (c *Config) JWTExpiry() (time.Duration, error) {
	d, err := time.ParseDuration(c.JWT.Expiry)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("config: invalid jwt expiry %q", c.JWT.Expiry)
	}
	return d, nil
}

// RedisTTL returns the parsed cache entry lifetime.
func (c *Config) RedisTTL() (time.Duration, error) {
	d, err := time.ParseDuration(c.Redis.TTL)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("config: invalid redis ttl %q", c.Redis.TTL)
	}
	return d, nil
}

// IsAdminEmail reports whether email is on the admin allow-list,
// compared case-insensitively.
func (c *Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, allowed := range c.Admin.Emails {
		if strings.ToLower(strings.TrimSpace(allowed)) == email {
			return true
		}
	}
	return false
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
