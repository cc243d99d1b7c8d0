package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"RangeScope/internal/calculator"
	"RangeScope/internal/chart"
	"RangeScope/internal/model"

	"github.com/sirupsen/logrus"
)

// Collector orchestrates data fetching, volatility computation and chart rendering.
type Collector struct {
	Provider Provider
	Engine   *calculator.Engine
	Charts   *chart.Renderer
	Timeout  time.Duration
	Logger   *logrus.Logger
}

// NewCollector creates a new Collector.
func NewCollector(provider Provider, engine *calculator.Engine, charts *chart.Renderer, timeout time.Duration, logger *logrus.Logger) *Collector {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Collector{
		Provider: provider,
		Engine:   engine,
		Charts:   charts,
		Timeout:  timeout,
		Logger:   logger,
	}
}

// Collect runs one query end to end. The returned error wraps one of the
// model sentinels when the cause is known.
func (c *Collector) Collect(ctx context.Context, q model.Query) (*model.VolatilityReport, error) {
	if err := ValidateQuery(q); err != nil {
		return nil, err
	}

	bars, err := c.fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s (%s/%s)", model.ErrUnknownSymbol, q.Symbol, q.Period, q.Interval)
	}

	rep, err := c.Engine.Analyze(bars, q.TickSize)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", q.Symbol, err)
	}
	rep.Query = q

	for _, d := range []*model.DirectionReport{&rep.Up, &rep.Down} {
		img, err := c.Charts.Render(d.Direction, d.Bins)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", q.Symbol, err)
		}
		d.Image = img
	}

	c.Logger.WithFields(logrus.Fields{
		"component": "collector",
		"symbol":    q.Symbol,
		"bars":      rep.BarCount,
		"bins":      len(rep.Edges) - 1,
		"up":        rep.Up.Summary.Count,
		"down":      rep.Down.Summary.Count,
	}).Debug("volatility computed")
	return rep, nil
}

func (c *Collector) fetch(ctx context.Context, q model.Query) ([]model.OHLCV, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	bars, err := c.Provider.FetchBars(ctx, q.Symbol, q.Period, q.Interval)
	if err == nil {
		return bars, nil
	}
	if errors.Is(err, model.ErrInvalidParameter) || errors.Is(err, model.ErrProviderFailure) {
		return nil, fmt.Errorf("fetch %s from %s: %w", q.Symbol, c.Provider.Name(), err)
	}
	return nil, fmt.Errorf("fetch %s from %s: %w: %v", q.Symbol, c.Provider.Name(), model.ErrProviderFailure, err)
}
