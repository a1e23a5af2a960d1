package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"time"

	"TradingDashboard/internal/model"

	"github.com/go-resty/resty/v2"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooSource fetches candles from the Yahoo Finance chart API.
type YahooSource struct {
	Client     *resty.Client
	Symbol     string
	DateOrigin time.Time
	SymbolMap  map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooSource creates a Yahoo source with optional proxy support.
func NewYahooSource(symbol string, dateOrigin time.Time, proxyURL string) *YahooSource {
	client := resty.New().
		SetBaseURL(yahooBaseURL).
		SetTimeout(30*time.Second).
		SetHeader("User-Agent", "Mozilla/5.0")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &YahooSource{
		Client:     client,
		Symbol:     symbol,
		DateOrigin: dateOrigin,
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooSource) Name() string { return "yahoo" }

func (f *YahooSource) yahooSymbol() string {
	if mapped, ok := f.SymbolMap[f.Symbol]; ok {
		return mapped
	}
	return f.Symbol
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`
					High  []*float64 `json:"high"`
					Low   []*float64 `json:"low"`
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// yahooInterval maps a bucket width to a Yahoo interval string.
func yahooInterval(bucket time.Duration) (string, error) {
	switch bucket {
	case time.Minute:
		return "1m", nil
	case 5 * time.Minute:
		return "5m", nil
	case 15 * time.Minute:
		return "15m", nil
	case 30 * time.Minute:
		return "30m", nil
	case time.Hour:
		return "60m", nil
	case 24 * time.Hour:
		return "1d", nil
	case 7 * 24 * time.Hour:
		return "1wk", nil
	}
	return "", fmt.Errorf("yahoo: unsupported bucket %v", bucket)
}

// yahooRange picks the smallest range that covers count buckets.
func yahooRange(count int, bucket time.Duration) string {
	span := time.Duration(count) * bucket
	day := 24 * time.Hour
	switch {
	case span <= 5*day:
		return "5d"
	case span <= 31*day:
		return "1mo"
	case span <= 92*day:
		return "3mo"
	case span <= 183*day:
		return "6mo"
	case span <= 366*day:
		return "1y"
	case span <= 2*366*day:
		return "2y"
	case span <= 5*366*day:
		return "5y"
	}
	return "max"
}

// FetchOHLC returns the most recent count candles, rebased onto the date origin.
func (f *YahooSource) FetchOHLC(ctx context.Context, count int, bucket time.Duration) ([]model.OHLCPoint, error) {
	interval, err := yahooInterval(bucket)
	if err != nil {
		return nil, err
	}

	resp, err := f.Client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"interval": interval,
			"range":    yahooRange(count, bucket),
		}).
		Get("/v8/finance/chart/" + url.PathEscape(f.yahooSymbol()))
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode(), resp.String())
	}

	var chart yahooChart
	if err := json.Unmarshal(resp.Body(), &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	points := make([]model.OHLCPoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o, h, l, c := valueAt(quote.Open, i), valueAt(quote.High, i), valueAt(quote.Low, i), valueAt(quote.Close, i)
		if o == nil || h == nil || l == nil || c == nil {
			continue // null bars (holidays etc.)
		}
		points = append(points, model.OHLCPoint{
			Timestamp: toOriginMillis(time.Unix(ts, 0), f.DateOrigin),
			Open:      *o,
			High:      *h,
			Low:       *l,
			Close:     *c,
		})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp < points[j].Timestamp })
	if len(points) > count {
		points = points[len(points)-count:]
	}
	return points, nil
}

func valueAt(vs []*float64, i int) *float64 {
	if i >= len(vs) {
		return nil
	}
	return vs[i]
}
