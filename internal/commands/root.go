package commands

import (
	"fmt"
	"os"

	"RangeScope/internal/calculator"
	"RangeScope/internal/collector"
	"RangeScope/internal/config"
	"RangeScope/internal/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rangescope",
	Short: "Intraday price range analysis by candle direction",
	Long: `RangeScope fetches OHLC bars for one ticker and reports how wide the
high-low range of each bar is, split into up and down candles.

For each direction it shows the mean and median range rounded to a tick size,
the most frequent range bins and a histogram.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultPath, "config file path")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "log level (debug, info, warn, error)")
}

// setup loads and validates the configuration and builds the logger.
func setup() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation: %w", err)
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

func newProvider(cfg *config.Config) collector.Provider {
	if cfg.Provider.Kind == "rest" {
		return collector.NewRESTProvider(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Proxy, cfg.Provider.Timeout)
	}
	return collector.NewYahooProvider(cfg.Proxy, cfg.Provider.Timeout, *cfg.Provider.AutoAdjust)
}

func newEngine(cfg *config.Config) (*calculator.Engine, error) {
	mode, err := calculator.ParseRoundingMode(cfg.Engine.Rounding)
	if err != nil {
		return nil, err
	}
	return calculator.NewEngine(mode, cfg.Engine.TopN), nil
}
