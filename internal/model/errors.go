package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter covers a bad tick size or an unsupported period/interval.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrTooManyBins means the tick is valid but too fine for the observed ranges.
	// It is also an ErrInvalidParameter.
	ErrTooManyBins = fmt.Errorf("%w: tick size too small for the price range", ErrInvalidParameter)
	// ErrUnknownSymbol means the provider returned no bars for the query.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrEmptyGroup means one candle direction has no samples.
	ErrEmptyGroup = errors.New("empty direction group")
	// ErrProviderFailure wraps transport, status and decode failures of the data provider.
	ErrProviderFailure = errors.New("market data provider failure")
)
