package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Query is one volatility request for a single ticker.
type Query struct {
	Symbol   string
	Period   string // provider range, e.g. "1mo", "1y"
	Interval string // provider sampling interval, e.g. "1d", "1h"
	TickSize float64
}
