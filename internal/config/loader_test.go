package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Server.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Logging.Service != "meritd" {
		t.Errorf("expected service meritd, got %s", cfg.Logging.Service)
	}
	if cfg.Cache.TTL != 5*time.Second {
		t.Errorf("expected cache TTL 5s, got %v", cfg.Cache.TTL)
	}
	if cfg.NATS.URL != "" {
		t.Errorf("expected NATS disabled by default, got %s", cfg.NATS.URL)
	}
}

func TestLoadYAMLOverride(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "test.yaml")

	content := `
server:
  port: "9090"
  cors_origin: "http://example.com"
nats:
  url: "nats://localhost:4222"
logging:
  level: "debug"
cache:
  ttl: 10s
`
	if err := os.WriteFile(yamlPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Defaults()
	if err := loadYAML(&cfg, yamlPath); err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Server.CORSOrigin != "http://example.com" {
		t.Errorf("expected cors http://example.com, got %s", cfg.Server.CORSOrigin)
	}
	if cfg.NATS.URL != "nats://localhost:4222" {
		t.Errorf("expected NATS URL set, got %s", cfg.NATS.URL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
	if cfg.Cache.TTL != 10*time.Second {
		t.Errorf("expected cache TTL 10s, got %v", cfg.Cache.TTL)
	}
	// Unchanged fields keep defaults
	if cfg.Logging.Service != "meritd" {
		t.Errorf("expected default service name, got %s", cfg.Logging.Service)
	}
}

func TestLoadYAMLMissing(t *testing.T) {
	cfg := Defaults()
	err := loadYAML(&cfg, "/nonexistent/path.yaml")
	if err != nil {
		t.Errorf("missing YAML should not error, got %v", err)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("MERITD_PORT", "7070")
	t.Setenv("MERITD_LOG_LEVEL", "warn")
	t.Setenv("MERITD_CACHE_TTL", "30s")

	cfg := Defaults()
	loadEnv(&cfg)

	if cfg.Server.Port != "7070" {
		t.Errorf("expected port 7070, got %s", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level warn, got %s", cfg.Logging.Level)
	}
	if cfg.Cache.TTL != 30*time.Second {
		t.Errorf("expected cache TTL 30s, got %v", cfg.Cache.TTL)
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	if err := validate(&cfg); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}

	bad := Defaults()
	bad.Server.Port = ""
	if err := validate(&bad); err == nil {
		t.Error("empty port should fail validation")
	}

	bad = Defaults()
	bad.Server.Port = "not-a-number"
	if err := validate(&bad); err == nil {
		t.Error("non-numeric port should fail validation")
	}

	bad = Defaults()
	bad.Cache.TTL = 0
	if err := validate(&bad); err == nil {
		t.Error("zero cache TTL should fail validation")
	}
}
