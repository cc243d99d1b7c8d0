package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Host         string        `yaml:"host" env:"SERVER_HOST, overwrite"`
		Port         int           `yaml:"port" env:"SERVER_PORT, overwrite"`
		ReadTimeout  time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT, overwrite"`
		WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT, overwrite"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT, overwrite"`
	} `yaml:"server"`
	Provider struct {
		Kind       string        `yaml:"kind" env:"PROVIDER_KIND, overwrite"` // yahoo | rest
		BaseURL    string        `yaml:"base_url" env:"PROVIDER_BASE_URL, overwrite"`
		APIKey     string        `yaml:"api_key" env:"PROVIDER_API_KEY, overwrite"`
		Timeout    time.Duration `yaml:"timeout" env:"PROVIDER_TIMEOUT, overwrite"`
		AutoAdjust *bool         `yaml:"auto_adjust" env:"PROVIDER_AUTO_ADJUST, overwrite"`
	} `yaml:"provider"`
	Engine struct {
		Rounding    string  `yaml:"rounding" env:"ENGINE_ROUNDING, overwrite"` // half_even | half_up
		TopN        int     `yaml:"top_n" env:"ENGINE_TOP_N, overwrite"`
		DefaultTick float64 `yaml:"default_tick" env:"ENGINE_DEFAULT_TICK, overwrite"`
	} `yaml:"engine"`
	Chart struct {
		Width  int `yaml:"width" env:"CHART_WIDTH, overwrite"`
		Height int `yaml:"height" env:"CHART_HEIGHT, overwrite"`
	} `yaml:"chart"`
	Probe struct {
		Cron     string `yaml:"cron" env:"PROBE_CRON, overwrite"` // empty disables the probe
		Symbol   string `yaml:"symbol" env:"PROBE_SYMBOL, overwrite"`
		Period   string `yaml:"period" env:"PROBE_PERIOD, overwrite"`
		Interval string `yaml:"interval" env:"PROBE_INTERVAL, overwrite"`
	} `yaml:"probe"`
	Telegram struct {
		BotToken string `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN, overwrite"`
		ChatID   string `yaml:"chat_id" env:"TELEGRAM_CHAT_ID, overwrite"`
	} `yaml:"telegram"`
	Log struct {
		Level  string `yaml:"level" env:"LOG_LEVEL, overwrite"`
		Format string `yaml:"format" env:"LOG_FORMAT, overwrite"` // text | json
		Output string `yaml:"output" env:"LOG_OUTPUT, overwrite"` // stdout | stderr | file path
	} `yaml:"log"`
	Proxy string `yaml:"proxy" env:"HTTPS_PROXY, overwrite"`
}

// Load reads config from a YAML file, then applies .env and environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env never overrides variables already set in the process environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := envconfig.Process(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}

	// Defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 120 * time.Second
	}
	if cfg.Provider.Kind == "" {
		cfg.Provider.Kind = "yahoo"
	}
	if cfg.Provider.Timeout == 0 {
		cfg.Provider.Timeout = 30 * time.Second
	}
	if cfg.Provider.AutoAdjust == nil {
		on := true
		cfg.Provider.AutoAdjust = &on
	}
	if cfg.Engine.Rounding == "" {
		cfg.Engine.Rounding = "half_even"
	}
	if cfg.Engine.TopN == 0 {
		cfg.Engine.TopN = 5
	}
	if cfg.Chart.Width == 0 {
		cfg.Chart.Width = 1000
	}
	if cfg.Chart.Height == 0 {
		cfg.Chart.Height = 400
	}
	if cfg.Probe.Symbol == "" {
		cfg.Probe.Symbol = "SPX"
	}
	if cfg.Probe.Period == "" {
		cfg.Probe.Period = "5d"
	}
	if cfg.Probe.Interval == "" {
		cfg.Probe.Interval = "1d"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}

	return cfg, nil
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Provider.Kind {
	case "yahoo":
	case "rest":
		if c.Provider.BaseURL == "" {
			return fmt.Errorf("provider.base_url is required for the rest provider")
		}
	default:
		return fmt.Errorf("provider.kind must be yahoo or rest, got %q", c.Provider.Kind)
	}
	if c.Provider.Timeout < 0 {
		return fmt.Errorf("provider.timeout must not be negative")
	}
	if c.Engine.Rounding != "half_even" && c.Engine.Rounding != "half_up" {
		return fmt.Errorf("engine.rounding must be half_even or half_up, got %q", c.Engine.Rounding)
	}
	if c.Engine.TopN <= 0 {
		return fmt.Errorf("engine.top_n must be positive")
	}
	if c.Engine.DefaultTick < 0 {
		return fmt.Errorf("engine.default_tick must not be negative")
	}
	if c.Chart.Width < 200 || c.Chart.Height < 100 {
		return fmt.Errorf("chart size %dx%d too small", c.Chart.Width, c.Chart.Height)
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
