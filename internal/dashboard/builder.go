package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"TradingDashboard/internal/calculator"
	"TradingDashboard/internal/chart"
	"TradingDashboard/internal/collector"
	"TradingDashboard/internal/model"

	log "github.com/sirupsen/logrus"
)

// BandMode selects how the band around the candles is derived.
type BandMode string

const (
	BandFixed     BandMode = "fixed"
	BandBollinger BandMode = "bollinger"
)

// Options controls one dashboard build.
type Options struct {
	Title            string
	DateOrigin       time.Time
	PrimaryRowHeight float64

	OHLCPoints int
	OHLCBucket time.Duration
	BandMode   BandMode
	BandOffset float64
	BollPeriod int
	BollDevs   float64

	TracePoints int
	TraceShape  collector.TraceShape

	MarginFraction float64
}

// DefaultOptions mirrors the stock trading dashboard.
func DefaultOptions() Options {
	return Options{
		Title:            "Trading dashboard",
		DateOrigin:       time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
		PrimaryRowHeight: 2,
		OHLCPoints:       100,
		OHLCBucket:       24 * time.Hour,
		BandMode:         BandFixed,
		BandOffset:       calculator.DefaultBandOffset,
		BollPeriod:       20,
		BollDevs:         2,
		TracePoints:      990,
		TraceShape:       collector.DefaultTraceShape(),
		MarginFraction:   calculator.DefaultMarginFraction,
	}
}

// Builder wires two one-shot data requests into a dashboard and fits its axes.
type Builder struct {
	OHLC    collector.OHLCSource
	Trace   collector.TraceSource
	Options Options
	logger  *log.Entry
}

// NewBuilder creates a Builder.
func NewBuilder(ohlc collector.OHLCSource, trace collector.TraceSource, opts Options) *Builder {
	return &Builder{
		OHLC:    ohlc,
		Trace:   trace,
		Options: opts,
		logger:  log.WithField("component", "dashboard"),
	}
}

// run is the state of one build. It is owned by the goroutine executing Run.
type run struct {
	opts      Options
	dash      *chart.Dashboard
	primary   State
	secondary State
	logger    *log.Entry
}

// Run requests candles and trace concurrently and joins on both completions.
// The view is refitted after every completion from the full data held so far.
// A failed request leaves its axis unfitted; the error is returned alongside the snapshot.
func (b *Builder) Run(ctx context.Context) (*Snapshot, error) {
	dash := chart.NewDashboard(b.Options.Title, b.Options.DateOrigin)
	if b.Options.PrimaryRowHeight > 0 {
		if err := dash.SetRowHeight(dash.Price.Row, b.Options.PrimaryRowHeight); err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
	}
	r := &run{opts: b.Options, dash: dash, logger: b.logger}

	ohlcCh := collector.RequestOHLC(ctx, b.OHLC, b.Options.OHLCPoints, b.Options.OHLCBucket)
	traceCh := collector.RequestTrace(ctx, b.Trace, b.Options.TracePoints)

	var errs []error
	for ohlcCh != nil || traceCh != nil {
		select {
		case <-ctx.Done():
			errs = append(errs, ctx.Err())
			r.logger.Warnf("build interrupted: %v", ctx.Err())
			return r.snapshot(), errors.Join(errs...)
		case res := <-ohlcCh:
			ohlcCh = nil
			if err := r.onOHLC(res); err != nil {
				errs = append(errs, err)
			}
		case res := <-traceCh:
			traceCh = nil
			if err := r.onTrace(res); err != nil {
				errs = append(errs, err)
			}
		}
		r.fitView()
	}
	return r.snapshot(), errors.Join(errs...)
}

func (r *run) onOHLC(res collector.Result[model.OHLCPoint]) error {
	if res.Err != nil {
		r.logger.Errorf("ohlc source %s failed: %v", res.Source, res.Err)
		return fmt.Errorf("ohlc source %s: %w", res.Source, res.Err)
	}
	r.dash.Price.Candles.Append(res.Data...)

	var bands []model.BandPoint
	switch r.opts.BandMode {
	case BandBollinger:
		var err error
		bands, err = calculator.BollingerBands(res.Data, r.opts.BollPeriod, r.opts.BollDevs)
		if err != nil {
			r.logger.Warnf("bollinger band unavailable: %v, falling back to fixed offset", err)
			bands = calculator.DeriveAll(res.Data, r.opts.BandOffset)
		}
	default:
		bands = calculator.DeriveAll(res.Data, r.opts.BandOffset)
	}
	r.dash.Price.Band.Append(bands...)

	if r.dash.Price.Band.Len() > 0 {
		r.primary = Ready
	}
	r.logger.Infof("ohlc source %s resolved: %d candles, %d band points", res.Source, len(res.Data), len(bands))
	return nil
}

func (r *run) onTrace(res collector.Result[model.TracePoint]) error {
	if res.Err != nil {
		r.logger.Errorf("trace source %s failed: %v", res.Source, res.Err)
		return fmt.Errorf("trace source %s: %w", res.Source, res.Err)
	}
	shaped := collector.ShapeTrace(res.Data, r.opts.TraceShape)
	r.dash.Volume.Volume.Append(shaped...)

	if r.dash.Volume.Volume.Len() > 0 {
		r.secondary = Ready
	}
	r.logger.Infof("trace source %s resolved: %d points", res.Source, len(shaped))
	return nil
}

// fitView pins every axis whose series is Ready. Axes still awaiting data keep auto scrolling.
func (r *run) fitView() {
	if r.primary == Ready {
		if ext, ok := r.extent(r.dash.Price.Band); ok {
			r.dash.Price.AxisY.SetInterval(calculator.FitPrimary(ext, r.opts.MarginFraction))
		}
	}
	if r.secondary == Ready {
		if ext, ok := r.extent(r.dash.Volume.Volume); ok {
			r.dash.Volume.AxisY.SetInterval(calculator.FitSecondary(ext))
		}
	}
}

func (r *run) extent(s chart.Series) (model.Extent, bool) {
	ext, err := s.Extent()
	if err == nil {
		err = ext.Validate()
	}
	if err != nil {
		r.logger.Warnf("skip fitting %s: %v", s.Name(), err)
		return model.Extent{}, false
	}
	return ext, true
}
