package chart

import (
	"math"

	"TradingDashboard/internal/calculator"
	"TradingDashboard/internal/model"
)

// extentTracker keeps a running min/max so Extent is O(1) per read.
type extentTracker struct {
	min, max float64
	n        int
}

func (e *extentTracker) observe(lo, hi float64) {
	if e.n == 0 {
		e.min, e.max = lo, hi
	} else {
		e.min = math.Min(e.min, lo)
		e.max = math.Max(e.max, hi)
	}
	e.n++
}

func (e *extentTracker) extent() (model.Extent, error) {
	if e.n == 0 {
		return model.Extent{}, calculator.ErrEmptySeries
	}
	return model.Extent{Min: e.min, Max: e.max}, nil
}

// Series is the part of a chart series the view fitter needs.
type Series interface {
	Name() string
	Len() int
	Extent() (model.Extent, error)
}

// OHLCSeries holds candlesticks. Points are append-only.
type OHLCSeries struct {
	name   string
	Style  CandleStyle
	points []model.OHLCPoint
	ext    extentTracker
}

func NewOHLCSeries(name string) *OHLCSeries {
	return &OHLCSeries{name: name, Style: DefaultCandleStyle()}
}

func (s *OHLCSeries) Name() string { return s.name }
func (s *OHLCSeries) Len() int     { return len(s.points) }

func (s *OHLCSeries) Append(points ...model.OHLCPoint) {
	for _, p := range points {
		s.points = append(s.points, p)
		s.ext.observe(p.Low, p.High)
	}
}

// Points returns a copy of the held candles.
func (s *OHLCSeries) Points() []model.OHLCPoint {
	return append([]model.OHLCPoint(nil), s.points...)
}

func (s *OHLCSeries) Extent() (model.Extent, error) { return s.ext.extent() }

// BandSeries holds the envelope drawn around the candles.
type BandSeries struct {
	name   string
	Style  AreaStyle
	points []model.BandPoint
	ext    extentTracker
}

func NewBandSeries(name string) *BandSeries {
	return &BandSeries{name: name, Style: DefaultBandStyle()}
}

func (s *BandSeries) Name() string { return s.name }
func (s *BandSeries) Len() int     { return len(s.points) }

func (s *BandSeries) Append(points ...model.BandPoint) {
	for _, p := range points {
		s.points = append(s.points, p)
		s.ext.observe(math.Min(p.Low, p.High), math.Max(p.Low, p.High))
	}
}

func (s *BandSeries) Points() []model.BandPoint {
	return append([]model.BandPoint(nil), s.points...)
}

func (s *BandSeries) Extent() (model.Extent, error) { return s.ext.extent() }

// AreaSeries holds a filled trace such as volume.
type AreaSeries struct {
	name   string
	Style  AreaStyle
	points []model.TracePoint
	ext    extentTracker
}

func NewAreaSeries(name string) *AreaSeries {
	return &AreaSeries{name: name, Style: DefaultVolumeStyle()}
}

func (s *AreaSeries) Name() string { return s.name }
func (s *AreaSeries) Len() int     { return len(s.points) }

func (s *AreaSeries) Append(points ...model.TracePoint) {
	for _, p := range points {
		s.points = append(s.points, p)
		s.ext.observe(p.Y, p.Y)
	}
}

func (s *AreaSeries) Points() []model.TracePoint {
	return append([]model.TracePoint(nil), s.points...)
}

func (s *AreaSeries) Extent() (model.Extent, error) { return s.ext.extent() }
