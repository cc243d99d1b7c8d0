package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"RangeScope/internal/chart"
	"RangeScope/internal/collector"
	"RangeScope/internal/logger"
	"RangeScope/internal/notifier"
	"RangeScope/internal/scheduler"
	"RangeScope/internal/web"

	"github.com/spf13/cobra"
)

var (
	serverPort int
	serverHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Long: `Start the RangeScope web server.

The server renders the analysis form on / and exposes the same analysis as
JSON on /api/v1/volatility. When probe.cron is set, a background job checks
that the market data provider answers and reports the result on /healthz.

Examples:
  rangescope serve                        # Start with configs/config.yaml
  rangescope serve --port 8080            # Start on custom port
  rangescope serve -c prod.yaml -l debug  # Custom config, debug logging`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 0, "Server port (overrides config)")
	serveCmd.Flags().StringVarP(&serverHost, "host", "H", "", "Server host (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}
	provider := newProvider(cfg)
	mainLog := logger.WithComponent(log, "main")
	mainLog.WithField("provider", provider.Name()).Info("Starting RangeScope")

	col := collector.NewCollector(provider, engine, chart.NewRenderer(cfg.Chart.Width, cfg.Chart.Height), cfg.Provider.Timeout, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var health web.HealthReporter
	if cfg.Probe.Cron != "" {
		var alerter scheduler.Alerter
		if tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log); tn.Enabled() {
			alerter = tn
		}
		prober := scheduler.NewProber(ctx, provider, alerter, cfg.Probe.Symbol, cfg.Probe.Period, cfg.Probe.Interval, cfg.Provider.Timeout, log)
		if err := prober.Register(cfg.Probe.Cron); err != nil {
			return err
		}
		prober.Start()
		defer prober.Stop()
		go prober.RunNow()
		health = prober
	}

	server := web.NewServer(cfg, log, col, health)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case sig := <-interrupt:
		mainLog.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Stop(shutdownCtx); err != nil {
		mainLog.WithError(err).Error("HTTP server shutdown")
	}
	mainLog.Info("RangeScope stopped")
	return nil
}
