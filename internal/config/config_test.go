package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadDefaults tests that default configuration values are loaded correctly.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Expected default server host '0.0.0.0', got '%s'", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default server port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("Expected default read timeout 30s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.Debug {
		t.Error("Expected default debug false")
	}

	if cfg.Site.ContentBaseURL != "/" {
		t.Errorf("Expected default content base url '/', got '%s'", cfg.Site.ContentBaseURL)
	}
	if cfg.Site.PageSizeFor("product") != 48 {
		t.Errorf("Expected product page size 48, got %d", cfg.Site.PageSizeFor("product"))
	}
	if cfg.Site.PageSizeFor("review") != 25 {
		t.Errorf("Expected review page size 25, got %d", cfg.Site.PageSizeFor("review"))
	}
	if cfg.Site.PageSizeFor("order") != 10 {
		t.Errorf("Expected fallback page size 10, got %d", cfg.Site.PageSizeFor("order"))
	}

	if !cfg.Security.CSRFEnabled {
		t.Error("Expected csrf enabled by default")
	}
	if cfg.Security.JWTExpiration != 24*time.Hour {
		t.Errorf("Expected default jwt expiration 24h, got %v", cfg.Security.JWTExpiration)
	}
}

// TestLoadFromFile tests loading configuration from a YAML file.
func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
server:
  port: 9090
  debug: true
site:
  prefix: ai
  page_size_product: 24
security:
  csrf_enabled: false
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config file: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected server port 9090, got %d", cfg.Server.Port)
	}
	if !cfg.Server.Debug {
		t.Error("Expected debug true")
	}
	if cfg.Site.Prefix != "ai" {
		t.Errorf("Expected prefix 'ai', got '%s'", cfg.Site.Prefix)
	}
	if cfg.Site.PageSizeFor("product") != 24 {
		t.Errorf("Expected product page size 24, got %d", cfg.Site.PageSizeFor("product"))
	}
	if cfg.Security.CSRFEnabled {
		t.Error("Expected csrf disabled")
	}
	// Values not in the file keep their defaults.
	if cfg.Site.PageSize != 10 {
		t.Errorf("Expected fallback page size 10, got %d", cfg.Site.PageSize)
	}
}

// TestValidation tests configuration validation errors.
func TestValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 99999\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected validation error for invalid port")
	}
}
