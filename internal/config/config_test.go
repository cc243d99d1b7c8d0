package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 5000 || cfg.Provider.Kind != "yahoo" || cfg.Engine.TopN != 5 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Provider.AutoAdjust == nil || !*cfg.Provider.AutoAdjust {
		t.Error("auto_adjust should default to true")
	}
	if cfg.Engine.Rounding != "half_even" {
		t.Errorf("expected half_even rounding, got %q", cfg.Engine.Rounding)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8081
provider:
  kind: rest
  base_url: http://bars.local
  timeout: 5s
  auto_adjust: false
engine:
  rounding: half_up
  top_n: 3
probe:
  cron: "0 */5 * * * *"
`)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ENGINE_TOP_N", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("env should override port, got %d", cfg.Server.Port)
	}
	if cfg.Engine.TopN != 7 {
		t.Errorf("env should override top_n, got %d", cfg.Engine.TopN)
	}
	if cfg.Provider.Kind != "rest" || cfg.Provider.Timeout != 5*time.Second {
		t.Errorf("yaml values lost: %+v", cfg.Provider)
	}
	if *cfg.Provider.AutoAdjust {
		t.Error("auto_adjust false in yaml should be kept")
	}
	if cfg.Engine.Rounding != "half_up" || cfg.Probe.Cron == "" {
		t.Errorf("yaml values lost: %+v %+v", cfg.Engine, cfg.Probe)
	}
	if cfg.Addr() != "0.0.0.0:9090" {
		t.Errorf("unexpected addr %s", cfg.Addr())
	}
}

func TestLoad_BadYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "server: [")); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 70000 }},
		{"kind", func(c *Config) { c.Provider.Kind = "csv" }},
		{"rest without url", func(c *Config) { c.Provider.Kind = "rest" }},
		{"rounding", func(c *Config) { c.Engine.Rounding = "floor" }},
		{"top_n", func(c *Config) { c.Engine.TopN = -1 }},
		{"chart", func(c *Config) { c.Chart.Width = 10 }},
		{"telegram half set", func(c *Config) { c.Telegram.BotToken = "x" }},
	}
	for _, tt := range tests {
		cfg := base()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
