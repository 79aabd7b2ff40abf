package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rohmanhakim/carpool/internal/config"
)

func writeConfigFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestWithDefault(t *testing.T) {
	cfg := config.WithDefault("http://foo.com")

	if cfg == nil {
		t.Fatal("WithDefault() returned nil")
	}

	builtCfg, err := cfg.Build()
	if err != nil {
		t.Fatalf("should not have any error, got %v", err)
	}

	if builtCfg.ContentSelector() != ".js-content" {
		t.Errorf("expected ContentSelector '.js-content', got '%s'", builtCfg.ContentSelector())
	}
	if builtCfg.Origin() != "http://foo.com" {
		t.Errorf("expected Origin 'http://foo.com', got '%s'", builtCfg.Origin())
	}
	if builtCfg.UserAgent() != "carpool/dev" {
		t.Errorf("expected UserAgent 'carpool/dev', got '%s'", builtCfg.UserAgent())
	}
	if builtCfg.Timeout() != 10*time.Second {
		t.Errorf("expected Timeout 10s, got %v", builtCfg.Timeout())
	}
	if !builtCfg.CoalesceInFlight() {
		t.Error("expected CoalesceInFlight true by default")
	}
}

func TestBuilder_Overrides(t *testing.T) {
	cfg, err := config.WithDefault("https://docs.example.com").
		WithContentSelector("#main").
		WithUserAgent("custom/1.0").
		WithTimeout(3 * time.Second).
		WithCoalesceInFlight(false).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ContentSelector() != "#main" {
		t.Errorf("expected ContentSelector '#main', got '%s'", cfg.ContentSelector())
	}
	if cfg.UserAgent() != "custom/1.0" {
		t.Errorf("expected UserAgent 'custom/1.0', got '%s'", cfg.UserAgent())
	}
	if cfg.Timeout() != 3*time.Second {
		t.Errorf("expected Timeout 3s, got %v", cfg.Timeout())
	}
	if cfg.CoalesceInFlight() {
		t.Error("expected CoalesceInFlight false")
	}
}

func TestBuild_OriginNormalization(t *testing.T) {
	tests := []struct {
		name     string
		origin   string
		expected string
	}{
		{"plain", "http://foo.com", "http://foo.com"},
		{"trailing slash", "http://foo.com/", "http://foo.com"},
		{"with port", "https://foo.com:8443", "https://foo.com:8443"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.WithDefault(tt.origin).Build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Origin() != tt.expected {
				t.Errorf("expected Origin %q, got %q", tt.expected, cfg.Origin())
			}
		})
	}
}

func TestBuild_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		builder *config.Config
	}{
		{"empty origin", config.WithDefault("")},
		{"relative origin", config.WithDefault("foo.com")},
		{"unsupported scheme", config.WithDefault("ftp://foo.com")},
		{"origin with path", config.WithDefault("http://foo.com/app")},
		{"origin with query", config.WithDefault("http://foo.com?x=1")},
		{"empty selector", config.WithDefault("http://foo.com").WithContentSelector(" ")},
		{"bad selector", config.WithDefault("http://foo.com").WithContentSelector("div[")},
		{"negative timeout", config.WithDefault("http://foo.com").WithTimeout(-time.Second)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, config.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestWithConfigFile_JSON(t *testing.T) {
	path := writeConfigFile(t, "config.json", `{
		"origin": "http://foo.com",
		"contentSelector": "#content",
		"timeout": "2s",
		"coalesceInFlight": false
	}`)

	cfg, err := config.WithConfigFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Origin() != "http://foo.com" {
		t.Errorf("expected Origin 'http://foo.com', got '%s'", cfg.Origin())
	}
	if cfg.ContentSelector() != "#content" {
		t.Errorf("expected ContentSelector '#content', got '%s'", cfg.ContentSelector())
	}
	if cfg.Timeout() != 2*time.Second {
		t.Errorf("expected Timeout 2s, got %v", cfg.Timeout())
	}
	if cfg.CoalesceInFlight() {
		t.Error("expected CoalesceInFlight false")
	}
	// Not set in file, falls back to default
	if cfg.UserAgent() != "carpool/dev" {
		t.Errorf("expected default UserAgent, got '%s'", cfg.UserAgent())
	}
}

func TestWithConfigFile_YAML(t *testing.T) {
	path := writeConfigFile(t, "config.yaml", `
origin: https://docs.example.com/
userAgent: yaml-agent/2.0
`)

	cfg, err := config.WithConfigFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Origin() != "https://docs.example.com" {
		t.Errorf("expected Origin 'https://docs.example.com', got '%s'", cfg.Origin())
	}
	if cfg.UserAgent() != "yaml-agent/2.0" {
		t.Errorf("expected UserAgent 'yaml-agent/2.0', got '%s'", cfg.UserAgent())
	}
	if cfg.ContentSelector() != config.DefaultContentSelector {
		t.Errorf("expected default ContentSelector, got '%s'", cfg.ContentSelector())
	}
	if !cfg.CoalesceInFlight() {
		t.Error("expected CoalesceInFlight default true")
	}
}

func TestWithConfigFile_Missing(t *testing.T) {
	_, err := config.WithConfigFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, config.ErrFileDoesNotExist) {
		t.Errorf("expected ErrFileDoesNotExist, got %v", err)
	}
}

func TestWithConfigFile_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "config.json", `{"origin": `},
		{"yaml", "config.yml", "origin: [unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.file, tt.content)
			_, err := config.WithConfigFile(path)
			if !errors.Is(err, config.ErrConfigParsingFail) {
				t.Errorf("expected ErrConfigParsingFail, got %v", err)
			}
		})
	}
}

func TestWithConfigFile_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing origin", `{"contentSelector": ".js-content"}`},
		{"bad timeout", `{"origin": "http://foo.com", "timeout": "soon"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, "config.json", tt.content)
			_, err := config.WithConfigFile(path)
			if !errors.Is(err, config.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
