package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"RangeScope/internal/scheduler"

	"github.com/spf13/cobra"
)

var probeSymbol string

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check the market data provider once",
	Long: `Fetch bars for the probe symbol and print the result as JSON.
Exits with a non-zero status when the provider does not answer.`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().StringVarP(&probeSymbol, "symbol", "s", "", "Symbol to fetch (overrides probe.symbol)")
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if probeSymbol != "" {
		cfg.Probe.Symbol = probeSymbol
	}

	prober := scheduler.NewProber(context.Background(), newProvider(cfg), nil,
		cfg.Probe.Symbol, cfg.Probe.Period, cfg.Probe.Interval, cfg.Provider.Timeout, log)
	st := prober.RunNow()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(st); err != nil {
		return fmt.Errorf("encode status: %w", err)
	}
	if !st.Healthy() {
		return fmt.Errorf("provider %s is %s: %s", st.Provider, st.State, st.Reason)
	}
	return nil
}
