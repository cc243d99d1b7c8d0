package collector

import (
	"context"
	"strings"

	"RangeScope/internal/model"
)

// StaticProvider serves fixed bars per symbol. Unknown symbols yield an empty series.
// Used for development and tests.
type StaticProvider struct {
	Bars map[string][]model.OHLCV
	Err  error
}

func (m *StaticProvider) Name() string { return "static" }

func (m *StaticProvider) FetchBars(ctx context.Context, symbol, _, _ string) ([]model.OHLCV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	bars := m.Bars[strings.ToUpper(symbol)]
	return append([]model.OHLCV(nil), bars...), nil
}
