package collector

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"TradingDashboard/internal/model"
)

// SyntheticGenerator returns seeded random-walk data for demos and tests.
// Each call uses its own rand source, so candles and trace can be generated concurrently.
type SyntheticGenerator struct {
	Seed       int64
	StartPrice float64
	Volatility float64
}

// NewSyntheticGenerator creates a generator with the default walk parameters.
func NewSyntheticGenerator(seed int64) *SyntheticGenerator {
	return &SyntheticGenerator{Seed: seed, StartPrice: 100, Volatility: 1}
}

func (g *SyntheticGenerator) Name() string { return "synthetic" }

// FetchOHLC walks the close price and wraps each step in a candle.
// Timestamps start at 0 and advance by bucket.
func (g *SyntheticGenerator) FetchOHLC(ctx context.Context, count int, bucket time.Duration) ([]model.OHLCPoint, error) {
	if count <= 0 {
		return nil, fmt.Errorf("synthetic ohlc: count must be positive, got %d", count)
	}
	if bucket <= 0 {
		return nil, fmt.Errorf("synthetic ohlc: bucket must be positive, got %v", bucket)
	}
	rng := rand.New(rand.NewSource(g.Seed))
	step := float64(bucket.Milliseconds())

	points := make([]model.OHLCPoint, count)
	price := g.StartPrice
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		open := price
		closing := open + rng.NormFloat64()*g.Volatility
		high := math.Max(open, closing) + math.Abs(rng.NormFloat64())*g.Volatility/2
		low := math.Min(open, closing) - math.Abs(rng.NormFloat64())*g.Volatility/2
		points[i] = model.OHLCPoint{
			Timestamp: float64(i) * step,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     closing,
		}
		price = closing
	}
	return points, nil
}

// FetchTrace produces a progressive walk: x is the sample index, y drifts by ±0.5 per step.
func (g *SyntheticGenerator) FetchTrace(ctx context.Context, count int) ([]model.TracePoint, error) {
	if count <= 0 {
		return nil, fmt.Errorf("synthetic trace: count must be positive, got %d", count)
	}
	rng := rand.New(rand.NewSource(g.Seed + 1))

	points := make([]model.TracePoint, count)
	y := 0.0
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		y += rng.Float64() - 0.5
		points[i] = model.TracePoint{X: float64(i), Y: y}
	}
	return points, nil
}
