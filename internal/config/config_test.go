package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ema-log.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Interval.Std() != time.Second {
		t.Errorf("interval = %s, want 1s", cfg.Interval.Std())
	}
	if cfg.Separator != "\t" {
		t.Errorf("separator = %q, want tab", cfg.Separator)
	}
	if !cfg.Columns.Temperature.All {
		t.Error("temperatures not logged by default")
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
device: "192.168.1.40:6936"
password: "secret"
interval: 5s
columns:
  temperature:
    all: false
    channels: [true, false, true, false]
  sensor:
    all: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Device != "192.168.1.40:6936" {
		t.Errorf("device = %q", cfg.Device)
	}
	if cfg.Password != "secret" {
		t.Errorf("password = %q", cfg.Password)
	}
	if cfg.Interval.Std() != 5*time.Second {
		t.Errorf("interval = %s, want 5s", cfg.Interval.Std())
	}
	// Defaults retained where the file is silent
	if cfg.Listen != "0.0.0.0:17120" {
		t.Errorf("listen = %q, want default", cfg.Listen)
	}
	if cfg.Separator != "\t" {
		t.Errorf("separator = %q, want default tab", cfg.Separator)
	}

	if cfg.Columns.Temperature.Enabled(0) != true ||
		cfg.Columns.Temperature.Enabled(1) != false ||
		cfg.Columns.Temperature.Enabled(2) != true {
		t.Error("temperature channel selection wrong")
	}
	if !cfg.Columns.Sensor.Enabled(3) {
		t.Error("sensor.all not honored")
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad duration", "interval: soon"},
		{"zero interval", "interval: 0s"},
		{"no device", `device: ""`},
		{"no columns", `
columns:
  temperature:
    all: false
`},
		{"not yaml", "{{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Load() expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestChannelSelectOutOfRange(t *testing.T) {
	sel := ChannelSelect{Channels: [4]bool{true, true, true, true}}
	if sel.Enabled(-1) || sel.Enabled(4) {
		t.Error("out-of-range channel reported enabled")
	}
}
