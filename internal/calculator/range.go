package calculator

import (
	"fmt"
	"math"

	"RangeScope/internal/model"

	"github.com/shopspring/decimal"
)

// RoundingMode selects how a raw range is snapped to the tick grid.
type RoundingMode string

const (
	// RoundHalfEven rounds ties to the even multiple (banker's rounding).
	RoundHalfEven RoundingMode = "half_even"
	// RoundHalfUp rounds ties away from zero.
	RoundHalfUp RoundingMode = "half_up"
)

// ParseRoundingMode maps a config value to a RoundingMode. Empty means half_even.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch RoundingMode(s) {
	case "", RoundHalfEven:
		return RoundHalfEven, nil
	case RoundHalfUp:
		return RoundHalfUp, nil
	default:
		return "", fmt.Errorf("%w: unknown rounding mode %q", model.ErrInvalidParameter, s)
	}
}

func validateTick(tick float64) error {
	if math.IsNaN(tick) || math.IsInf(tick, 0) || tick <= 0 {
		return fmt.Errorf("%w: tick size must be positive, got %v", model.ErrInvalidParameter, tick)
	}
	return nil
}

// RoundToTick snaps raw to the nearest multiple of tick.
func RoundToTick(raw, tick float64, mode RoundingMode) (float64, error) {
	if err := validateTick(tick); err != nil {
		return 0, err
	}
	return roundDecimal(decimal.NewFromFloat(raw), decimal.NewFromFloat(tick), mode).InexactFloat64(), nil
}

func roundDecimal(raw, tick decimal.Decimal, mode RoundingMode) decimal.Decimal {
	q := raw.Div(tick)
	if mode == RoundHalfUp {
		q = q.Round(0)
	} else {
		q = q.RoundBank(0)
	}
	return q.Mul(tick)
}

// Classify returns Up when the bar closed above its open. Doji bars are Down.
func Classify(bar model.OHLCV) model.Direction {
	if bar.Close > bar.Open {
		return model.DirectionUp
	}
	return model.DirectionDown
}

// BuildSamples converts bars into rounded, direction-tagged range samples.
func BuildSamples(bars []model.OHLCV, tick float64, mode RoundingMode) ([]model.Sample, error) {
	if err := validateTick(tick); err != nil {
		return nil, err
	}
	t := decimal.NewFromFloat(tick)
	samples := make([]model.Sample, len(bars))
	for i, b := range bars {
		if err := checkBar(b); err != nil {
			return nil, fmt.Errorf("%w: bar %d (%s): %v", model.ErrProviderFailure, i, b.Time.Format("2006-01-02 15:04"), err)
		}
		// Subtract in decimal so a half-tick tie stays a tie.
		raw := decimal.NewFromFloat(b.High).Sub(decimal.NewFromFloat(b.Low))
		samples[i] = model.Sample{
			Range:     raw.InexactFloat64(),
			Rounded:   roundDecimal(raw, t, mode).InexactFloat64(),
			Direction: Classify(b),
		}
	}
	return samples, nil
}

func checkBar(b model.OHLCV) error {
	for _, v := range []float64{b.Open, b.High, b.Low, b.Close} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite price")
		}
	}
	if b.Low < 0 {
		return fmt.Errorf("negative low %v", b.Low)
	}
	if b.High < b.Low {
		return fmt.Errorf("high %v below low %v", b.High, b.Low)
	}
	return nil
}

// SplitByDirection partitions samples into Up and Down groups, keeping order.
func SplitByDirection(samples []model.Sample) (up, down []model.Sample) {
	for _, s := range samples {
		if s.Direction == model.DirectionUp {
			up = append(up, s)
		} else {
			down = append(down, s)
		}
	}
	return up, down
}

func roundedValues(samples []model.Sample) []float64 {
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.Rounded
	}
	return values
}
