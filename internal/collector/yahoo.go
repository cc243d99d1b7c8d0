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

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooProvider implements Provider using the Yahoo Finance chart API.
type YahooProvider struct {
	BaseURL    string
	Client     *http.Client
	AutoAdjust bool
	SymbolMap  map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooProvider creates a Yahoo Finance provider with optional proxy support.
func NewYahooProvider(proxyURL string, timeout time.Duration, autoAdjust bool) *YahooProvider {
	return &YahooProvider{
		BaseURL:    yahooBaseURL,
		Client:     newHTTPClient(proxyURL, timeout),
		AutoAdjust: autoAdjust,
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooProvider) Name() string { return "yahoo" }

func (f *YahooProvider) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
// Null prices decode as nil pointers.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchBars fetches bars for period (Yahoo "range") sampled at interval.
func (f *YahooProvider) FetchBars(ctx context.Context, symbol, period, interval string) ([]model.OHLCV, error) {
	q := url.Values{}
	q.Set("interval", interval)
	q.Set("range", period)
	q.Set("events", "div,splits")
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: yahoo request: %v", model.ErrProviderFailure, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: yahoo fetch: %v", model.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: yahoo read body: %v", model.ErrProviderFailure, err)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: yahoo status %d", model.ErrProviderFailure, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: yahoo decode: %v", model.ErrProviderFailure, err)
	}
	if e := chart.Chart.Error; e != nil {
		switch e.Code {
		case "Not Found":
			return nil, nil
		case "Unprocessable Entity", "Bad Request":
			return nil, fmt.Errorf("%w: yahoo rejected period %q / interval %q: %s", model.ErrInvalidParameter, period, interval, e.Description)
		default:
			return nil, fmt.Errorf("%w: yahoo api error %s: %s", model.ErrProviderFailure, e.Code, e.Description)
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: yahoo status %d", model.ErrProviderFailure, resp.StatusCode)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	quote := result.Indicators.Quote[0]
	var adj []*float64
	if f.AutoAdjust && len(result.Indicators.AdjClose) > 0 {
		adj = result.Indicators.AdjClose[0].AdjClose
	}

	bars := make([]model.OHLCV, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o, h, l, c := at(quote.Open, i), at(quote.High, i), at(quote.Low, i), at(quote.Close, i)
		if o == nil || h == nil || l == nil || c == nil {
			continue // null bars (holidays, halted sessions)
		}
		b := model.OHLCV{
			Time:  time.Unix(ts, 0),
			Open:  *o,
			High:  *h,
			Low:   *l,
			Close: *c,
		}
		if v := at(quote.Volume, i); v != nil {
			b.Volume = *v
		}
		if a := at(adj, i); a != nil && b.Close != 0 {
			ratio := *a / b.Close
			b.Open *= ratio
			b.High *= ratio
			b.Low *= ratio
			b.Close = *a
		}
		bars = append(bars, b)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func at(values []*float64, i int) *float64 {
	if i < len(values) {
		return values[i]
	}
	return nil
}
