package notifier

import (
	"fmt"
	"strings"
	"time"
)

// FormatProviderDown formats the alert sent when the market data probe starts failing.
func FormatProviderDown(provider, symbol, reason string, at time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔴 <b>RangeScope</b> | %s\n\n", at.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Market data provider <b>%s</b> is failing.\n", provider))
	b.WriteString(fmt.Sprintf("Probe symbol: %s\n", symbol))
	b.WriteString(fmt.Sprintf("Reason: %s\n", reason))
	return b.String()
}

// FormatProviderRecovered formats the alert sent when the probe succeeds again.
func FormatProviderRecovered(provider, symbol string, at time.Time, downFor time.Duration) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🟢 <b>RangeScope</b> | %s\n\n", at.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Market data provider <b>%s</b> recovered.\n", provider))
	b.WriteString(fmt.Sprintf("Probe symbol: %s\n", symbol))
	if downFor > 0 {
		b.WriteString(fmt.Sprintf("Outage: %s\n", downFor.Round(time.Second)))
	}
	return b.String()
}
