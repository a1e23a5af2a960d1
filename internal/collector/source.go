package collector

import (
	"context"
	"time"

	"TradingDashboard/internal/model"
)

// OHLCSource produces a finite batch of candles in one call.
type OHLCSource interface {
	FetchOHLC(ctx context.Context, count int, bucket time.Duration) ([]model.OHLCPoint, error)
	Name() string
}

// TraceSource produces a finite batch of trace samples in one call.
type TraceSource interface {
	FetchTrace(ctx context.Context, count int) ([]model.TracePoint, error)
	Name() string
}

// Result is what a one-shot request resolves to.
type Result[T any] struct {
	Source string
	Data   []T
	Err    error
}

// Request runs fetch in its own goroutine. The returned channel yields exactly one
// Result and is then closed. There is no retry and no partial delivery.
func Request[T any](ctx context.Context, source string, fetch func(context.Context) ([]T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		data, err := fetch(ctx)
		ch <- Result[T]{Source: source, Data: data, Err: err}
	}()
	return ch
}

// RequestOHLC issues a one-shot candle request.
func RequestOHLC(ctx context.Context, src OHLCSource, count int, bucket time.Duration) <-chan Result[model.OHLCPoint] {
	return Request(ctx, src.Name(), func(ctx context.Context) ([]model.OHLCPoint, error) {
		return src.FetchOHLC(ctx, count, bucket)
	})
}

// RequestTrace issues a one-shot trace request.
func RequestTrace(ctx context.Context, src TraceSource, count int) <-chan Result[model.TracePoint] {
	return Request(ctx, src.Name(), func(ctx context.Context) ([]model.TracePoint, error) {
		return src.FetchTrace(ctx, count)
	})
}

// toOriginMillis rebases a wall-clock time onto the dashboard X axis.
func toOriginMillis(t, origin time.Time) float64 {
	return float64(t.Sub(origin).Milliseconds())
}
