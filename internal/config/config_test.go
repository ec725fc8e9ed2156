package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.Grid.Width != 50 || cfg.Grid.Height != 20 {
		t.Errorf("expected 50x20 grid by default, got %dx%d", cfg.Grid.Width, cfg.Grid.Height)
	}

	if cfg.Grid.Seed != 0 {
		t.Errorf("expected time-based seed by default, got %d", cfg.Grid.Seed)
	}

	if cfg.Catalog.Path != "" {
		t.Errorf("expected built-in catalog by default, got %q", cfg.Catalog.Path)
	}

	if cfg.Animation.Enabled {
		t.Error("expected animation to be off by default")
	}

	if cfg.Animation.Delay() != 20*time.Millisecond {
		t.Errorf("expected 20ms delay, got %v", cfg.Animation.Delay())
	}

	if cfg.Watch.Enabled() {
		t.Error("expected watch server to be off by default")
	}

	if len(cfg.Watch.AllowedOrigins) != 0 {
		t.Errorf("expected empty allowed origins by default, got %v", cfg.Watch.AllowedOrigins)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/wiremaze.yaml")

	if err != nil {
		t.Errorf("expected no error for missing file, got %v", err)
	}

	if cfg == nil {
		t.Fatal("expected default config for missing file, got nil")
	}

	if cfg.Grid.Width != 50 {
		t.Errorf("expected default width, got %d", cfg.Grid.Width)
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "wiremaze.yaml")

	content := `
grid:
  width: 80
  height: 24
  seed: 1234
catalog:
  path: tiles/ascii.yaml
animation:
  enabled: true
  delay_ms: 5
watch:
  address: ":8080"
  allowed_origins:
    - "https://example.com"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Grid.Width != 80 || cfg.Grid.Height != 24 {
		t.Errorf("expected 80x24, got %dx%d", cfg.Grid.Width, cfg.Grid.Height)
	}

	if cfg.Grid.Seed != 1234 {
		t.Errorf("expected seed 1234, got %d", cfg.Grid.Seed)
	}

	if cfg.Catalog.Path != "tiles/ascii.yaml" {
		t.Errorf("expected catalog path tiles/ascii.yaml, got %q", cfg.Catalog.Path)
	}

	if !cfg.Animation.Enabled || cfg.Animation.Delay() != 5*time.Millisecond {
		t.Errorf("expected animation enabled with 5ms delay, got %+v", cfg.Animation)
	}

	if !cfg.Watch.Enabled() || cfg.Watch.Address != ":8080" {
		t.Errorf("expected watch on :8080, got %q", cfg.Watch.Address)
	}

	// Unset fields keep their defaults
	if cfg.Watch.MaxMessageSize != 512 {
		t.Errorf("expected default max message size, got %d", cfg.Watch.MaxMessageSize)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "wiremaze.yaml")
	if err := os.WriteFile(configPath, []byte("grid: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(configPath)
	if err == nil {
		t.Error("expected parse error")
	}
	if cfg == nil || cfg.Grid.Width != 50 {
		t.Error("expected defaults alongside the parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{"defaults", func(c *Config) {}, nil},
		{"zero width", func(c *Config) { c.Grid.Width = 0 }, ErrInvalidDimensions},
		{"negative height", func(c *Config) { c.Grid.Height = -4 }, ErrInvalidDimensions},
		{"negative delay", func(c *Config) { c.Animation.DelayMS = -1 }, ErrNegativeDelay},
		{"zero delay", func(c *Config) { c.Animation.DelayMS = 0 }, nil},
		{"single cell", func(c *Config) { c.Grid.Width, c.Grid.Height = 1, 1 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsOriginAllowed_EmptyList_SameOrigin(t *testing.T) {
	cfg := WatchConfig{
		AllowedOrigins: []string{},
	}

	if !cfg.IsOriginAllowed("", "localhost:8080") {
		t.Error("expected empty origin to be allowed (same-origin)")
	}

	if !cfg.IsOriginAllowed("http://localhost:8080", "localhost:8080") {
		t.Error("expected matching origin to be allowed (same-origin)")
	}

	if cfg.IsOriginAllowed("http://evil.com", "localhost:8080") {
		t.Error("expected different origin to be rejected (same-origin policy)")
	}
}

func TestIsOriginAllowed_Wildcard(t *testing.T) {
	cfg := WatchConfig{
		AllowedOrigins: []string{"*"},
	}

	if !cfg.IsOriginAllowed("http://anything.com", "localhost:8080") {
		t.Error("expected wildcard to allow any origin")
	}

	if !cfg.IsOriginAllowed("", "localhost:8080") {
		t.Error("expected wildcard to allow empty origin")
	}
}

func TestIsOriginAllowed_ExactMatch(t *testing.T) {
	cfg := WatchConfig{
		AllowedOrigins: []string{
			"https://example.com",
			"http://localhost:3000",
		},
	}

	if !cfg.IsOriginAllowed("https://example.com", "localhost:8080") {
		t.Error("expected exact match to be allowed")
	}

	if !cfg.IsOriginAllowed("http://localhost:3000", "localhost:8080") {
		t.Error("expected exact match to be allowed")
	}

	if cfg.IsOriginAllowed("http://evil.com", "localhost:8080") {
		t.Error("expected non-matching origin to be rejected")
	}

	if cfg.IsOriginAllowed("https://example.com:8443", "localhost:8080") {
		t.Error("expected partial match to be rejected")
	}
}

func TestIsSameOrigin(t *testing.T) {
	tests := []struct {
		origin      string
		requestHost string
		expected    bool
	}{
		{"", "localhost:8080", true},                       // No origin header
		{"http://localhost:8080", "localhost:8080", true},  // HTTP match
		{"https://localhost:8080", "localhost:8080", true}, // HTTPS match
		{"http://localhost:8080/", "localhost:8080", true}, // Trailing slash
		{"http://example.com", "localhost:8080", false},    // Different host
		{"http://localhost:3000", "localhost:8080", false}, // Different port
		{"ws://localhost:8080", "localhost:8080", true},    // WebSocket scheme
	}

	for _, tt := range tests {
		result := isSameOrigin(tt.origin, tt.requestHost)
		if result != tt.expected {
			t.Errorf("isSameOrigin(%q, %q) = %v, want %v",
				tt.origin, tt.requestHost, result, tt.expected)
		}
	}
}
