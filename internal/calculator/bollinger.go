package calculator

import (
	"errors"
	"fmt"

	"TradingDashboard/internal/model"

	"github.com/markcheno/go-talib"
)

// ErrInsufficientData is returned when there are fewer candles than the band period.
var ErrInsufficientData = errors.New("not enough data for band calculation")

// BollingerBands computes SMA(period) ± deviations·σ over the closes.
// The first period-1 candles have no band and are dropped.
func BollingerBands(points []model.OHLCPoint, period int, deviations float64) ([]model.BandPoint, error) {
	if period <= 1 {
		return nil, errors.New("period must be greater than 1")
	}
	if len(points) < period {
		return nil, fmt.Errorf("%w: have %d candles, need %d", ErrInsufficientData, len(points), period)
	}

	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Close
	}
	upper, _, lower := talib.BBands(closes, period, deviations, deviations, talib.SMA)

	lookback := period - 1
	bands := make([]model.BandPoint, 0, len(points)-lookback)
	for i := lookback; i < len(points); i++ {
		bands = append(bands, model.BandPoint{
			Timestamp: points[i].Timestamp,
			High:      upper[i],
			Low:       lower[i],
		})
	}
	return bands, nil
}
