package collector

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"RangeScope/internal/model"
)

// Provider fetches an ordered OHLC series for one symbol.
// An empty slice with a nil error means the symbol is unknown to the provider.
type Provider interface {
	FetchBars(ctx context.Context, symbol, period, interval string) ([]model.OHLCV, error)
	Name() string
}

func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
