package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"TradingDashboard/internal/model"

	"github.com/go-resty/resty/v2"
)

// RESTSource fetches candles from a plain JSON bars endpoint.
type RESTSource struct {
	Client     *resty.Client
	Symbol     string
	DateOrigin time.Time
}

// NewRESTSource creates a source for baseURL with optional bearer auth and proxy.
func NewRESTSource(baseURL, apiKey, symbol string, dateOrigin time.Time, proxyURL string) *RESTSource {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second)
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &RESTSource{Client: client, Symbol: symbol, DateOrigin: dateOrigin}
}

func (f *RESTSource) Name() string { return "rest" }

// restBar is the expected JSON shape from the bars endpoint.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
}

// FetchOHLC requests count bars of the given bucket width.
func (f *RESTSource) FetchOHLC(ctx context.Context, count int, bucket time.Duration) ([]model.OHLCPoint, error) {
	resp, err := f.Client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol":   f.Symbol,
			"interval": strconv.FormatInt(int64(bucket/time.Second), 10),
			"limit":    strconv.Itoa(count),
		}).
		Get("/api/v1/bars")
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode(), resp.String())
	}

	var bars []restBar
	if err := json.Unmarshal(resp.Body(), &bars); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	points := make([]model.OHLCPoint, len(bars))
	for i, b := range bars {
		points[i] = model.OHLCPoint{
			Timestamp: toOriginMillis(time.Unix(b.Timestamp, 0), f.DateOrigin),
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
		}
	}
	// Ensure chronological order
	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp < points[j].Timestamp })
	return points, nil
}
