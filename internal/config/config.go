package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidDimensions = errors.New("config: grid width and height must be positive")
	ErrNegativeDelay     = errors.New("config: animation delay cannot be negative")
)

// Config holds the generator settings. Command-line flags override it.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Animation AnimationConfig `yaml:"animation"`
	Watch     WatchConfig     `yaml:"watch"`
}

// GridConfig holds the maze dimensions and random seed.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Seed drives tile choices. 0 picks a time-based seed.
	Seed int64 `yaml:"seed"`
}

// CatalogConfig selects the tile set.
type CatalogConfig struct {
	// Path is a YAML catalog file. Empty uses the built-in box-drawing set.
	Path string `yaml:"path"`
}

// AnimationConfig controls drawing of intermediate frames.
type AnimationConfig struct {
	Enabled bool `yaml:"enabled"`
	DelayMS int  `yaml:"delay_ms"`
}

// Delay returns the pause between frames
func (a AnimationConfig) Delay() time.Duration {
	return time.Duration(a.DelayMS) * time.Millisecond
}

// WatchConfig holds the live viewer settings.
type WatchConfig struct {
	// Address to serve websocket viewers on, e.g. ":8080". Empty disables it.
	Address string `yaml:"address"`

	// AllowedOrigins is a list of origins allowed to connect via WebSocket.
	// Empty list enforces same-origin policy.
	// Use "*" to allow all origins.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxMessageSize is the maximum inbound WebSocket message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size"`
}

// Enabled reports whether the viewer should be started
func (w WatchConfig) Enabled() bool {
	return w.Address != ""
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{
			Width:  50,
			Height: 20,
		},
		Animation: AnimationConfig{
			DelayMS: 20,
		},
		Watch: WatchConfig{
			AllowedOrigins: []string{}, // Same-origin only by default
			MaxMessageSize: 512,
		},
	}
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, returns default config.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil // Use defaults if file doesn't exist
		}
		return config, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Validate checks the settings before any grid is allocated.
func (c *Config) Validate() error {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, c.Grid.Width, c.Grid.Height)
	}
	if c.Animation.DelayMS < 0 {
		return ErrNegativeDelay
	}
	return nil
}

// IsOriginAllowed checks if the given origin is allowed based on the config.
// Returns true if:
// - AllowedOrigins contains "*" (allow all)
// - AllowedOrigins contains the exact origin
// - AllowedOrigins is empty and origin matches the request host (same-origin)
func (w *WatchConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(w.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}

	for _, allowed := range w.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	return false
}

// isSameOrigin checks if the origin matches the request host.
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true // Non-browser clients send no Origin header
	}

	// "http://localhost:3000" -> "localhost:3000"
	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	originHost = strings.TrimSuffix(originHost, "/")

	return originHost == requestHost
}
