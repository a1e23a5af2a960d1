package calculator

import "TradingDashboard/internal/model"

// DefaultBandOffset is how far the band edges sit from each candle's high and low.
const DefaultBandOffset = 0.2

// Derive projects one candle onto the band drawn around it.
// A negative offset, or one wider than half the candle, inverts the band. Callers own that.
func Derive(p model.OHLCPoint, offset float64) model.BandPoint {
	return model.BandPoint{
		Timestamp: p.Timestamp,
		High:      p.High - offset,
		Low:       p.Low + offset,
	}
}

// DeriveAll returns one band point per candle, in input order.
func DeriveAll(points []model.OHLCPoint, offset float64) []model.BandPoint {
	bands := make([]model.BandPoint, len(points))
	for i, p := range points {
		bands[i] = Derive(p, offset)
	}
	return bands
}
