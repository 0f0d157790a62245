package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Address != "" {
		t.Errorf("Address = %q, want empty (scan mode)", cfg.Address)
	}
	if cfg.Scan.IntervalUnits != 0x0030 {
		t.Errorf("Scan.IntervalUnits = %#04x, want 0x0030", cfg.Scan.IntervalUnits)
	}
	if cfg.Scan.WindowUnits != 0x0030 {
		t.Errorf("Scan.WindowUnits = %#04x, want 0x0030", cfg.Scan.WindowUnits)
	}
	if cfg.MaxServices != 40 {
		t.Errorf("MaxServices = %d, want 40", cfg.MaxServices)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
}

func TestLoad(t *testing.T) {
	yamlContent := `
address: "aa:bb:cc:dd:ee:ff"
scan:
  interval_units: 96
  window_units: 48
max_services: 16
log_level: debug
`
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Address != "aa:bb:cc:dd:ee:ff" {
		t.Errorf("Address = %q, want %q", cfg.Address, "aa:bb:cc:dd:ee:ff")
	}
	if cfg.Scan.IntervalUnits != 96 {
		t.Errorf("Scan.IntervalUnits = %d, want 96", cfg.Scan.IntervalUnits)
	}
	if cfg.Scan.WindowUnits != 48 {
		t.Errorf("Scan.WindowUnits = %d, want 48", cfg.Scan.WindowUnits)
	}
	if cfg.MaxServices != 16 {
		t.Errorf("MaxServices = %d, want 16", cfg.MaxServices)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	yamlContent := `
log_level: warn
`
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MaxServices != 40 {
		t.Errorf("MaxServices = %d, want default 40", cfg.MaxServices)
	}
	if cfg.Scan.IntervalUnits != 0x0030 {
		t.Errorf("Scan.IntervalUnits = %#04x, want default 0x0030", cfg.Scan.IntervalUnits)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "zero scan interval",
			modify:  func(c *Config) { c.Scan.IntervalUnits = 0 },
			wantErr: true,
		},
		{
			name:    "zero scan window",
			modify:  func(c *Config) { c.Scan.WindowUnits = 0 },
			wantErr: true,
		},
		{
			name:    "window exceeds interval",
			modify:  func(c *Config) { c.Scan.WindowUnits = c.Scan.IntervalUnits + 1 },
			wantErr: true,
		},
		{
			name:    "zero max services",
			modify:  func(c *Config) { c.MaxServices = 0 },
			wantErr: true,
		},
		{
			name:    "negative max services",
			modify:  func(c *Config) { c.MaxServices = -1 },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			modify:  func(c *Config) { c.LogLevel = "invalid" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // defaults to info
		{"", slog.LevelInfo},        // defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLogLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
