package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"RangeScope/internal/model"
)

// RESTProvider implements Provider against a generic JSON bars endpoint.
type RESTProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTProvider creates a new provider with optional proxy support.
func NewRESTProvider(baseURL, apiKey, proxyURL string, timeout time.Duration) *RESTProvider {
	return &RESTProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL, timeout),
	}
}

func (f *RESTProvider) Name() string { return "rest" }

// restBar is the expected JSON shape from the bars endpoint.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (f *RESTProvider) FetchBars(ctx context.Context, symbol, period, interval string) ([]model.OHLCV, error) {
	bars, err := f.fetchBars(ctx, symbol, period, interval)
	if err != nil && interval == "1wk" && ctx.Err() == nil {
		// Some backends only serve daily bars; aggregate them.
		dailyBars, dailyErr := f.fetchBars(ctx, symbol, period, "1d")
		if dailyErr != nil {
			return nil, fmt.Errorf("weekly fetch failed: %w; daily fallback also failed: %w", err, dailyErr)
		}
		return aggregateDailyToWeekly(dailyBars), nil
	}
	return bars, err
}

func (f *RESTProvider) fetchBars(ctx context.Context, symbol, period, interval string) ([]model.OHLCV, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("period", period)
	q.Set("interval", interval)
	endpoint := fmt.Sprintf("%s/api/v1/bars?%s", f.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrProviderFailure, err)
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch bars: %v", model.ErrProviderFailure, err)
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: bars endpoint rejected period %q / interval %q", model.ErrInvalidParameter, period, interval)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: fetch bars: status %d, body: %s", model.ErrProviderFailure, resp.StatusCode, string(body))
	}
	var raw []restBar
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode bars: %v", model.ErrProviderFailure, err)
	}
	bars := make([]model.OHLCV, len(raw))
	for i, rb := range raw {
		bars[i] = model.OHLCV{
			Time:   time.Unix(rb.Timestamp, 0),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: rb.Volume,
		}
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// aggregateDailyToWeekly converts daily bars into ISO-week bars.
func aggregateDailyToWeekly(daily []model.OHLCV) []model.OHLCV {
	if len(daily) == 0 {
		return nil
	}
	var weekly []model.OHLCV
	week := daily[0]
	wy, ww := week.Time.ISOWeek()

	for _, d := range daily[1:] {
		y, w := d.Time.ISOWeek()
		if y != wy || w != ww {
			weekly = append(weekly, week)
			week = d
			wy, ww = y, w
			continue
		}
		if d.High > week.High {
			week.High = d.High
		}
		if d.Low < week.Low {
			week.Low = d.Low
		}
		week.Close = d.Close
		week.Volume += d.Volume
	}
	return append(weekly, week)
}
