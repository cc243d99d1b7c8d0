package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"RangeScope/internal/calculator"
	"RangeScope/internal/chart"
	"RangeScope/internal/model"
)

func testBars() []model.OHLCV {
	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []model.OHLCV{
		{Time: t0, Open: 100, High: 101.2, Low: 100, Close: 101},
		{Time: t0.AddDate(0, 0, 1), Open: 100, High: 103.7, Low: 100, Close: 99},
		{Time: t0.AddDate(0, 0, 2), Open: 50, High: 51.1, Low: 50, Close: 51},
		{Time: t0.AddDate(0, 0, 3), Open: 10, High: 10.9, Low: 10, Close: 10},
	}
}

func newTestCollector(p Provider) *Collector {
	return NewCollector(p, calculator.NewEngine(calculator.RoundHalfEven, 5), chart.NewRenderer(400, 200), time.Second, nil)
}

func TestCollect_FullReport(t *testing.T) {
	c := newTestCollector(&StaticProvider{Bars: map[string][]model.OHLCV{"AAPL": testBars()}})
	q := model.Query{Symbol: "AAPL", Period: "1mo", Interval: "1d", TickSize: 1}
	rep, err := c.Collect(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Query != q || rep.BarCount != 4 {
		t.Errorf("unexpected header %+v", rep)
	}
	if len(rep.Up.Image) == 0 || len(rep.Down.Image) == 0 {
		t.Error("expected both histograms to be rendered")
	}
	if rep.Up.Summary.Count != 2 || rep.Down.Summary.Count != 2 {
		t.Errorf("expected 2/2 split, got %d/%d", rep.Up.Summary.Count, rep.Down.Summary.Count)
	}
	if rep.Down.Summary.Mean != 2.5 {
		t.Errorf("expected down mean 2.5, got %v", rep.Down.Summary.Mean)
	}
}

func TestCollect_UnknownSymbol(t *testing.T) {
	c := newTestCollector(&StaticProvider{})
	_, err := c.Collect(context.Background(), model.Query{Symbol: "NOPE", Period: "1mo", Interval: "1d", TickSize: 1})
	if !errors.Is(err, model.ErrUnknownSymbol) {
		t.Fatalf("expected ErrUnknownSymbol, got %v", err)
	}
	if errors.Is(err, model.ErrProviderFailure) {
		t.Error("unknown symbol must not be reported as a provider failure")
	}
}

func TestCollect_ProviderErrors(t *testing.T) {
	q := model.Query{Symbol: "AAPL", Period: "1mo", Interval: "1d", TickSize: 1}

	_, err := newTestCollector(&StaticProvider{Err: errors.New("connection reset")}).Collect(context.Background(), q)
	if !errors.Is(err, model.ErrProviderFailure) {
		t.Errorf("untyped provider error: expected ErrProviderFailure, got %v", err)
	}

	_, err = newTestCollector(&StaticProvider{Err: model.ErrInvalidParameter}).Collect(context.Background(), q)
	if !errors.Is(err, model.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter to pass through, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = newTestCollector(&StaticProvider{Bars: map[string][]model.OHLCV{"AAPL": testBars()}}).Collect(ctx, q)
	if !errors.Is(err, model.ErrProviderFailure) {
		t.Errorf("cancelled fetch: expected ErrProviderFailure, got %v", err)
	}
}

func TestCollect_InvalidQueryNeverFetches(t *testing.T) {
	p := &StaticProvider{Err: errors.New("should not be called")}
	_, err := newTestCollector(p).Collect(context.Background(), model.Query{Symbol: "AAPL", Period: "1mo", Interval: "1d", TickSize: 0})
	if !errors.Is(err, model.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestCollect_EmptyUpGroup(t *testing.T) {
	down := []model.OHLCV{
		{Open: 10, High: 12, Low: 9, Close: 9.5},
		{Open: 10, High: 11, Low: 9, Close: 10},
	}
	rep, err := newTestCollector(&StaticProvider{Bars: map[string][]model.OHLCV{"X": down}}).
		Collect(context.Background(), model.Query{Symbol: "X", Period: "5d", Interval: "1d", TickSize: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !errors.Is(rep.Up.Err, model.ErrEmptyGroup) || !rep.Down.Available() {
		t.Errorf("expected empty up group only, got up=%v down=%v", rep.Up.Err, rep.Down.Err)
	}
	if len(rep.Up.Image) == 0 {
		t.Error("expected an up histogram even for an empty group")
	}
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery(" aapl ", "1mo", "1d", "0.05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Symbol != "AAPL" || q.TickSize != 0.05 {
		t.Errorf("unexpected query %+v", q)
	}

	bad := [][4]string{
		{"", "1mo", "1d", "1"},
		{"AAPL", "", "1d", "1"},
		{"AAPL", "1mo", "", "1"},
		{"AAPL", "7w", "1d", "1"},
		{"AAPL", "1mo", "7m", "1"},
		{"AAPL", "1mo", "1d", ""},
		{"AAPL", "1mo", "1d", "abc"},
		{"AAPL", "1mo", "1d", "0"},
		{"AAPL", "1mo", "1d", "-2"},
		{"AAPL", "1mo", "1d", "NaN"},
		{"AAPL", "1mo", "1d", "Inf"},
	}
	for _, b := range bad {
		if _, err := ParseQuery(b[0], b[1], b[2], b[3]); !errors.Is(err, model.ErrInvalidParameter) {
			t.Errorf("ParseQuery%v: expected ErrInvalidParameter, got %v", b, err)
		}
	}
}
