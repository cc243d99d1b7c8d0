package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"RangeScope/internal/collector"
	"RangeScope/internal/model"
	"RangeScope/internal/notifier"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Probe states.
const (
	StateUnknown = "unknown"
	StateUp      = "up"
	StateDown    = "down"
)

// Alerter delivers probe state changes to an operator.
type Alerter interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Status is a snapshot of the most recent provider check.
type Status struct {
	Provider  string     `json:"provider"`
	State     string     `json:"state"`
	Reason    string     `json:"reason,omitempty"`
	LastCheck *time.Time `json:"last_check,omitempty"`
	DownSince *time.Time `json:"down_since,omitempty"`
	Checks    int        `json:"checks"`
	Failures  int        `json:"failures"`
}

// Healthy reports whether the provider answered the last probe.
func (s Status) Healthy() bool { return s.State == StateUp }

// Prober periodically fetches a known symbol to check that the market data
// provider is reachable.
type Prober struct {
	Cron     *cron.Cron
	Provider collector.Provider
	Alerter  Alerter
	Symbol   string
	Period   string
	Interval string
	Timeout  time.Duration
	Ctx      context.Context
	Logger   *logrus.Entry

	cancel context.CancelFunc
	mu     sync.RWMutex
	status Status
}

// NewProber creates a Prober. alerter may be nil. Stop cancels the context
// handed to probes and alerts.
func NewProber(ctx context.Context, p collector.Provider, alerter Alerter, symbol, period, interval string, timeout time.Duration, logger *logrus.Logger) *Prober {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Prober{
		Cron:     cron.New(cron.WithSeconds()),
		Provider: p,
		Alerter:  alerter,
		Symbol:   symbol,
		Period:   period,
		Interval: interval,
		Timeout:  timeout,
		Ctx:      ctx,
		cancel:   cancel,
		Logger:   logger.WithField("component", "probe"),
		status:   Status{Provider: p.Name(), State: StateUnknown},
	}
}

// Register schedules the probe with a six-field cron expression.
func (p *Prober) Register(spec string) error {
	if _, err := p.Cron.AddFunc(spec, func() { p.RunNow() }); err != nil {
		return fmt.Errorf("register probe: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (p *Prober) Start() {
	p.Cron.Start()
	p.Logger.Info("probe scheduler started")
}

// Stop cancels in-flight probes and alert retries, then waits for the
// running job to return.
func (p *Prober) Stop() {
	p.cancel()
	<-p.Cron.Stop().Done()
	p.Logger.Info("probe scheduler stopped")
}

// Status returns the latest probe result.
func (p *Prober) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// RunNow executes one probe immediately and returns the new status.
func (p *Prober) RunNow() Status {
	ctx := p.Ctx
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	now := time.Now()
	bars, err := p.Provider.FetchBars(ctx, p.Symbol, p.Period, p.Interval)
	if err == nil && len(bars) == 0 {
		err = model.ErrUnknownSymbol
	}

	p.mu.Lock()
	prev := p.status
	next := prev
	next.LastCheck = &now
	next.Checks++
	if err != nil {
		next.State = StateDown
		next.Reason = reason(err)
		next.Failures++
		if prev.State != StateDown {
			next.DownSince = &now
		}
	} else {
		next.State = StateUp
		next.Reason = ""
		next.DownSince = nil
	}
	p.status = next
	p.mu.Unlock()

	if err != nil {
		p.Logger.WithError(err).WithField("symbol", p.Symbol).Warn("provider probe failed")
	} else {
		p.Logger.WithField("bars", len(bars)).Debug("provider probe ok")
	}

	switch {
	case next.State == StateDown && prev.State != StateDown:
		p.trySend(notifier.FormatProviderDown(next.Provider, p.Symbol, next.Reason, now))
	case next.State == StateUp && prev.State == StateDown:
		var downFor time.Duration
		if prev.DownSince != nil {
			downFor = now.Sub(*prev.DownSince)
		}
		p.trySend(notifier.FormatProviderRecovered(next.Provider, p.Symbol, now, downFor))
	}
	return next
}

func (p *Prober) trySend(text string) {
	if p.Alerter == nil {
		return
	}
	if err := p.Alerter.SendWithRetry(p.Ctx, text, 3); err != nil {
		p.Logger.WithError(err).Error("send probe alert")
	}
}

// reason reduces a probe error to a stable category.
func reason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, model.ErrUnknownSymbol):
		return "no_data"
	case errors.Is(err, model.ErrInvalidParameter):
		return "invalid_parameter"
	default:
		return "provider_failure"
	}
}
