package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromFileWithDefaults(t *testing.T) {
	path := writeConfigFile(t, `
database:
  dsn: "data/console.db"
jwt:
  secret: "file-secret"
admin:
  emails:
    - ops@example.com
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.DSN != "data/console.db" {
		t.Fatalf("unexpected dsn %q", cfg.Database.DSN)
	}
	if cfg.Listen != ":8080" {
		t.Fatalf("expected default listen, got %q", cfg.Listen)
	}
	if cfg.Log.Level != "info" || cfg.Log.MaxSizeMB != 50 || cfg.Log.MaxBackups != 5 {
		t.Fatalf("unexpected log defaults: %+v", cfg.Log)
	}
	expiry, errExpiry := cfg.JWTExpiry()
	if errExpiry != nil || expiry != 24*time.Hour {
		t.Fatalf("expected default 24h expiry, got %v (%v)", expiry, errExpiry)
	}
	ttl, errTTL := cfg.RedisTTL()
	if errTTL != nil || ttl != 60*time.Second {
		t.Fatalf("expected default 60s ttl, got %v (%v)", ttl, errTTL)
	}
}

func TestEnvOverridesBeatFile(t *testing.T) {
	path := writeConfigFile(t, `
database:
  dsn: "data/file.db"
jwt:
  secret: "file-secret"
admin:
  emails:
    - from-file@example.com
`)
	t.Setenv("DATABASE_URL", "postgres://app:pw@db:5432/console")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("ADMIN_EMAILS", "a@example.com, b@example.com,,")
	t.Setenv("LISTEN_ADDR", ":9090")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.DSN != "postgres://app:pw@db:5432/console" {
		t.Fatalf("env DATABASE_URL not applied: %q", cfg.Database.DSN)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Fatalf("env JWT_SECRET not applied: %q", cfg.JWT.Secret)
	}
	if cfg.Listen != ":9090" {
		t.Fatalf("env LISTEN_ADDR not applied: %q", cfg.Listen)
	}
	if len(cfg.Admin.Emails) != 2 || cfg.Admin.Emails[0] != "a@example.com" || cfg.Admin.Emails[1] != "b@example.com" {
		t.Fatalf("env ADMIN_EMAILS not split: %v", cfg.Admin.Emails)
	}
}

func TestLoadMissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "data/env-only.db")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.DSN != "data/env-only.db" {
		t.Fatalf("unexpected dsn %q", cfg.Database.DSN)
	}
}

func TestLoadRequiresDSNAndSecret(t *testing.T) {
	missingDSN := writeConfigFile(t, `
jwt:
  secret: "s"
`)
	if _, err := Load(missingDSN); err == nil || !strings.Contains(err.Error(), "dsn") {
		t.Fatalf("expected dsn error, got %v", err)
	}

	missingSecret := writeConfigFile(t, `
database:
  dsn: "data/x.db"
`)
	if _, err := Load(missingSecret); err == nil || !strings.Contains(err.Error(), "secret") {
		t.Fatalf("expected secret error, got %v", err)
	}
}

func TestLoadRejectsBadDurations(t *testing.T) {
	path := writeConfigFile(t, `
database:
  dsn: "data/x.db"
jwt:
  secret: "s"
  expiry: "soon"
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "expiry") {
		t.Fatalf("expected expiry error, got %v", err)
	}
}

func TestIsAdminEmail(t *testing.T) {
	cfg := &Config{}
	cfg.Admin.Emails = []string{"Ops@Example.com", " second@example.com "}

	cases := []struct {
		email string
		want  bool
	}{
		{"ops@example.com", true},
		{"OPS@EXAMPLE.COM", true},
		{"  second@example.com", true},
		{"third@example.com", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := cfg.IsAdminEmail(tc.email); got != tc.want {
			t.Fatalf("IsAdminEmail(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}
