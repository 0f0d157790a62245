package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	// Address is an optional aa:bb:cc:dd:ee:ff direct-connect target.
	// Empty means scan and connect to the first advertiser.
	Address     string     `yaml:"address"`
	Scan        ScanConfig `yaml:"scan"`
	MaxServices int        `yaml:"max_services"`
	LogLevel    string     `yaml:"log_level"`
}

// ScanConfig holds scan timing, in 0.625 ms units.
type ScanConfig struct {
	IntervalUnits uint16 `yaml:"interval_units"`
	WindowUnits   uint16 `yaml:"window_units"`
}

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gatt-browser")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			IntervalUnits: 0x0030, // 30 ms
			WindowUnits:   0x0030,
		},
		MaxServices: 40,
		LogLevel:    "info",
	}
}

// Load reads and parses a YAML config file. Missing fields are filled
// with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if c.Scan.IntervalUnits == 0 {
		return fmt.Errorf("scan.interval_units must be > 0")
	}
	if c.Scan.WindowUnits == 0 {
		return fmt.Errorf("scan.window_units must be > 0")
	}
	// The controller requires the scan window to fit inside the interval.
	if c.Scan.WindowUnits > c.Scan.IntervalUnits {
		return fmt.Errorf("scan.window_units (%d) must not exceed scan.interval_units (%d)",
			c.Scan.WindowUnits, c.Scan.IntervalUnits)
	}
	if c.MaxServices <= 0 {
		return fmt.Errorf("max_services must be > 0")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}
	return nil
}

// ParseLogLevel maps a config log level string to a slog.Level.
// Unknown values default to info.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
