package collector

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"RangeScope/internal/model"
)

// Periods and intervals accepted by the Yahoo chart API.
var (
	validPeriods = map[string]bool{
		"1d": true, "5d": true, "1mo": true, "3mo": true, "6mo": true,
		"1y": true, "2y": true, "5y": true, "10y": true, "ytd": true, "max": true,
	}
	validIntervals = map[string]bool{
		"1m": true, "2m": true, "5m": true, "15m": true, "30m": true, "60m": true, "90m": true,
		"1h": true, "1d": true, "5d": true, "1wk": true, "1mo": true, "3mo": true,
	}
)

// ParseQuery builds a Query from raw form values.
func ParseQuery(symbol, period, interval, tickSize string) (model.Query, error) {
	q := model.Query{
		Symbol:   strings.ToUpper(strings.TrimSpace(symbol)),
		Period:   strings.TrimSpace(period),
		Interval: strings.TrimSpace(interval),
	}
	raw := strings.TrimSpace(tickSize)
	if raw == "" {
		return q, fmt.Errorf("%w: tick_size is required", model.ErrInvalidParameter)
	}
	tick, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return q, fmt.Errorf("%w: tick_size %q is not a number", model.ErrInvalidParameter, raw)
	}
	q.TickSize = tick
	return q, ValidateQuery(q)
}

// ValidateQuery checks that every field is present and usable.
func ValidateQuery(q model.Query) error {
	if q.Symbol == "" {
		return fmt.Errorf("%w: ticker is required", model.ErrInvalidParameter)
	}
	if !validPeriods[q.Period] {
		return fmt.Errorf("%w: unsupported period %q", model.ErrInvalidParameter, q.Period)
	}
	if !validIntervals[q.Interval] {
		return fmt.Errorf("%w: unsupported interval %q", model.ErrInvalidParameter, q.Interval)
	}
	if math.IsNaN(q.TickSize) || math.IsInf(q.TickSize, 0) || q.TickSize <= 0 {
		return fmt.Errorf("%w: tick_size must be positive, got %v", model.ErrInvalidParameter, q.TickSize)
	}
	return nil
}

// Periods returns the accepted periods in display order.
func Periods() []string {
	return []string{"1d", "5d", "1mo", "3mo", "6mo", "1y", "2y", "5y", "10y", "ytd", "max"}
}

// Intervals returns the accepted intervals in display order.
func Intervals() []string {
	return []string{"1m", "2m", "5m", "15m", "30m", "60m", "90m", "1h", "1d", "5d", "1wk", "1mo", "3mo"}
}
