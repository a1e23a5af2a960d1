package calculator

import (
	"errors"

	"TradingDashboard/internal/model"

	"gonum.org/v1/gonum/floats"
)

// ErrEmptySeries is returned when an extent is requested for a series with no values.
var ErrEmptySeries = errors.New("series has no data")

// ExtentOf scans every value of every slice and returns the overall min and max.
func ExtentOf(values ...[]float64) (model.Extent, error) {
	var ext model.Extent
	seen := false
	for _, vs := range values {
		if len(vs) == 0 {
			continue
		}
		lo, hi := floats.Min(vs), floats.Max(vs)
		if !seen {
			ext = model.Extent{Min: lo, Max: hi}
			seen = true
			continue
		}
		if lo < ext.Min {
			ext.Min = lo
		}
		if hi > ext.Max {
			ext.Max = hi
		}
	}
	if !seen {
		return model.Extent{}, ErrEmptySeries
	}
	return ext, nil
}

// BandExtent returns the Y range covered by a band sequence.
func BandExtent(bands []model.BandPoint) (model.Extent, error) {
	highs := make([]float64, len(bands))
	lows := make([]float64, len(bands))
	for i, b := range bands {
		highs[i] = b.High
		lows[i] = b.Low
	}
	return ExtentOf(highs, lows)
}

// TraceExtent returns the Y range covered by a trace.
func TraceExtent(points []model.TracePoint) (model.Extent, error) {
	ys := make([]float64, len(points))
	for i, p := range points {
		ys[i] = p.Y
	}
	return ExtentOf(ys)
}
