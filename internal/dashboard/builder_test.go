package dashboard

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"TradingDashboard/internal/calculator"
	"TradingDashboard/internal/collector"
	"TradingDashboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOHLC struct {
	points []model.OHLCPoint
	err    error
	wait   <-chan struct{}
}

func (f *fakeOHLC) Name() string { return "fake-ohlc" }

func (f *fakeOHLC) FetchOHLC(ctx context.Context, _ int, _ time.Duration) ([]model.OHLCPoint, error) {
	if f.wait != nil {
		select {
		case <-f.wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.points, f.err
}

type fakeTrace struct {
	points []model.TracePoint
	err    error
	done   chan struct{}
	wait   <-chan struct{}
}

func (f *fakeTrace) Name() string { return "fake-trace" }

func (f *fakeTrace) FetchTrace(ctx context.Context, _ int) ([]model.TracePoint, error) {
	if f.done != nil {
		defer close(f.done)
	}
	if f.wait != nil {
		select {
		case <-f.wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.points, f.err
}

var candles = []model.OHLCPoint{
	{Timestamp: 0, Open: 100, High: 110, Low: 95, Close: 105},
	{Timestamp: 86400000, Open: 105, High: 120, Low: 100, Close: 118},
	{Timestamp: 172800000, Open: 118, High: 119, Low: 90.2, Close: 92},
}

var rawTrace = []model.TracePoint{{X: 0, Y: 1}, {X: 1, Y: -5}, {X: 2, Y: 2}}

func unitShape() collector.TraceShape {
	return collector.TraceShape{Bucket: time.Millisecond, Scale: 10}
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.TraceShape = unitShape()
	return opts
}

func TestRun_BothSourcesFitsBothAxes(t *testing.T) {
	b := NewBuilder(&fakeOHLC{points: candles}, &fakeTrace{points: rawTrace}, testOptions())
	snap, err := b.Run(context.Background())
	require.NoError(t, err)
	require.True(t, snap.Fitted())

	// band: highs 109.8,119.8,118.8 lows 95.2,100.2,90.4
	view, ok := snap.View()
	require.True(t, ok)
	bandExt := model.Extent{Min: 90.4, Max: 119.8}
	assert.InDelta(t, bandExt.Min-bandExt.Range()*0.33, view.Primary.Start, 1e-9)
	assert.InDelta(t, 119.8, view.Primary.End, 1e-9)
	assert.Equal(t, model.AxisInterval{Start: 10, End: 50}, view.Secondary)

	assert.Equal(t, Ready, snap.Price.State)
	assert.Equal(t, Ready, snap.Volume.State)
	assert.Len(t, snap.Candles, 3)
	assert.Len(t, snap.Band, 3)
	assert.Equal(t, []model.TracePoint{{X: 0, Y: 10}, {X: 1, Y: 50}, {X: 2, Y: 20}}, snap.Trace)
	assert.InDelta(t, 2.0/3.0, snap.Price.RowShare, 1e-12)
}

func TestRun_MatchesPureFit(t *testing.T) {
	snap, err := NewBuilder(&fakeOHLC{points: candles}, &fakeTrace{points: rawTrace}, testOptions()).Run(context.Background())
	require.NoError(t, err)

	bandExt, err := calculator.BandExtent(calculator.DeriveAll(candles, calculator.DefaultBandOffset))
	require.NoError(t, err)
	traceExt, err := calculator.TraceExtent(collector.ShapeTrace(rawTrace, unitShape()))
	require.NoError(t, err)

	view, ok := snap.View()
	require.True(t, ok)
	assert.Equal(t, calculator.Fit(bandExt, traceExt, calculator.DefaultMarginFraction), view)
}

func TestRun_TraceFailureLeavesVolumeUnfitted(t *testing.T) {
	boom := errors.New("generator rejected")
	snap, err := NewBuilder(&fakeOHLC{points: candles}, &fakeTrace{err: boom}, testOptions()).Run(context.Background())
	require.ErrorIs(t, err, boom)

	assert.NotNil(t, snap.Price.Interval)
	assert.Nil(t, snap.Volume.Interval)
	assert.Equal(t, AwaitingData, snap.Volume.State)
	assert.False(t, snap.Fitted())
	_, ok := snap.View()
	assert.False(t, ok)
}

func TestRun_TraceFirstThenOHLCFailure(t *testing.T) {
	boom := errors.New("ohlc rejected")
	trace := &fakeTrace{points: rawTrace, done: make(chan struct{})}
	ohlc := &fakeOHLC{err: boom, wait: trace.done}

	snap, err := NewBuilder(ohlc, trace, testOptions()).Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Nil(t, snap.Price.Interval)
	assert.Equal(t, AwaitingData, snap.Price.State)
	require.NotNil(t, snap.Volume.Interval)
	assert.Equal(t, model.AxisInterval{Start: 10, End: 50}, *snap.Volume.Interval)
}

func TestRun_NonFiniteTraceSkipsVolumeFit(t *testing.T) {
	trace := []model.TracePoint{{X: 0, Y: math.NaN()}}
	snap, err := NewBuilder(&fakeOHLC{points: candles}, &fakeTrace{points: trace}, testOptions()).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Ready, snap.Volume.State)
	assert.Nil(t, snap.Volume.Interval)
	require.NotNil(t, snap.Price.Interval)
	assert.InDelta(t, 119.8, snap.Price.Interval.End, 1e-9)
	assert.False(t, snap.Fitted())
}

func TestRun_NonFiniteCandleSkipsPriceFit(t *testing.T) {
	bad := append([]model.OHLCPoint{}, candles...)
	bad[1].High = math.Inf(1)
	snap, err := NewBuilder(&fakeOHLC{points: bad}, &fakeTrace{points: rawTrace}, testOptions()).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Ready, snap.Price.State)
	assert.Nil(t, snap.Price.Interval)
	require.NotNil(t, snap.Volume.Interval)
	assert.Equal(t, model.AxisInterval{Start: 10, End: 50}, *snap.Volume.Interval)
}

func TestRun_EmptyBatchStaysAwaiting(t *testing.T) {
	snap, err := NewBuilder(&fakeOHLC{}, &fakeTrace{points: rawTrace}, testOptions()).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, AwaitingData, snap.Price.State)
	assert.Nil(t, snap.Price.Interval)
	assert.Nil(t, snap.Price.Extent)
	assert.NotNil(t, snap.Volume.Interval)
}

func TestRun_CancelledBeforeResolution(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	snap, err := NewBuilder(&fakeOHLC{wait: block}, &fakeTrace{wait: block}, testOptions()).Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, snap.Fitted())
	assert.Equal(t, AwaitingData, snap.Price.State)
	assert.Equal(t, AwaitingData, snap.Volume.State)
}

func TestRun_BollingerMode(t *testing.T) {
	opts := testOptions()
	opts.BandMode = BandBollinger
	opts.BollPeriod = 2
	snap, err := NewBuilder(&fakeOHLC{points: candles}, &fakeTrace{points: rawTrace}, opts).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Band, 2)
	assert.Equal(t, candles[1].Timestamp, snap.Band[0].Timestamp)
	for _, b := range snap.Band {
		assert.GreaterOrEqual(t, b.High, b.Low)
	}
}

func TestRun_BollingerFallsBackWhenTooShort(t *testing.T) {
	opts := testOptions()
	opts.BandMode = BandBollinger
	opts.BollPeriod = 20
	snap, err := NewBuilder(&fakeOHLC{points: candles}, &fakeTrace{points: rawTrace}, opts).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, calculator.DeriveAll(candles, opts.BandOffset), snap.Band)
}

func TestRun_SyntheticEndToEnd(t *testing.T) {
	gen := collector.NewSyntheticGenerator(3)
	snap, err := NewBuilder(gen, gen, DefaultOptions()).Run(context.Background())
	require.NoError(t, err)
	require.True(t, snap.Fitted())
	assert.Len(t, snap.Candles, 100)
	assert.Len(t, snap.Trace, 990)

	for _, p := range snap.Trace {
		assert.GreaterOrEqual(t, p.Y, 0.0)
	}
	assert.LessOrEqual(t, snap.Price.Interval.Start, snap.Price.Extent.Min)
	assert.Equal(t, snap.Volume.Extent.Min, snap.Volume.Interval.Start)
}
