package calculator

import (
	"fmt"
	"strings"

	"RangeScope/internal/model"
)

// Engine turns OHLC bars into a per-direction volatility report.
// It holds only settings and is safe for concurrent use.
type Engine struct {
	Rounding RoundingMode
	TopN     int
}

// NewEngine creates an Engine. A non-positive topN falls back to DefaultTopN.
func NewEngine(rounding RoundingMode, topN int) *Engine {
	if rounding == "" {
		rounding = RoundHalfEven
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Engine{Rounding: rounding, TopN: topN}
}

// Analyze computes samples, shared edges, summaries, bins and rankings.
// Images are left empty for the caller to render.
func (e *Engine) Analyze(bars []model.OHLCV, tick float64) (*model.VolatilityReport, error) {
	samples, err := BuildSamples(bars, tick, e.Rounding)
	if err != nil {
		return nil, err
	}
	// One edge set for both directions so bin i means the same range in each chart.
	edges, err := BinEdges(GlobalMax(samples), tick)
	if err != nil {
		return nil, err
	}
	up, down := SplitByDirection(samples)

	rep := &model.VolatilityReport{BarCount: len(bars), Edges: edges}
	if rep.Up, err = e.direction(model.DirectionUp, up, edges); err != nil {
		return nil, err
	}
	if rep.Down, err = e.direction(model.DirectionDown, down, edges); err != nil {
		return nil, err
	}
	return rep, nil
}

func (e *Engine) direction(dir model.Direction, samples []model.Sample, edges []float64) (model.DirectionReport, error) {
	d := model.DirectionReport{Direction: dir}
	if s, err := Summarize(samples); err != nil {
		d.Err = fmt.Errorf("%s: %w", strings.ToLower(string(dir)), err)
	} else {
		d.Summary = s
	}
	bins, err := CountBins(roundedValues(samples), edges)
	if err != nil {
		return d, err
	}
	d.Bins = bins
	d.Top = TopBins(bins, e.TopN)
	return d, nil
}
