package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoad_FileValues(t *testing.T) {
	dir := writeConfig(t, `
port: "9090"
db:
  driver: postgres
  dsn: postgres://u@localhost/habits
auth:
  signing_key: s3cret
  token_ttl: 2h
redis:
  addr: localhost:6379
  ttl: 30s
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.DB.Driver != DriverPostgres || cfg.DB.DSN != "postgres://u@localhost/habits" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour || cfg.Redis.TTL != 30*time.Second || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("durations/redis not decoded: %+v", cfg)
	}
	// untouched keys keep defaults
	if cfg.HTTP.IdleTimeout != 60*time.Second || cfg.Log.Level != "info" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoad_EnvOverridesAndMissingFile(t *testing.T) {
	t.Setenv("HABITS_AUTH_SIGNING_KEY", "from-env")
	t.Setenv("HABITS_DB_DSN", "/tmp/x.db")

	cfg, err := Load(t.TempDir()) // no config.yml here
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.SigningKey != "from-env" || cfg.DB.DSN != "/tmp/x.db" || cfg.DB.Driver != DriverSQLite {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	base := Config{DB: DBConfig{Driver: DriverSQLite}, Auth: AuthConfig{SigningKey: "k"}}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	noKey := base
	noKey.Auth.SigningKey = "  "
	if err := noKey.Validate(); !errors.Is(err, errNoSigningKey) {
		t.Fatalf("want errNoSigningKey, got %v", err)
	}

	badDriver := base
	badDriver.DB.Driver = "mysql"
	if err := badDriver.Validate(); !errors.Is(err, errUnknownDriver) {
		t.Fatalf("want errUnknownDriver, got %v", err)
	}
}
