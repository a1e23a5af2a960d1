package recorder

import (
	"time"

	"TradingDashboard/internal/model"
)

// RunRecord holds everything kept about one dashboard build.
type RunRecord struct {
	ResolvedAt     time.Time
	OHLCSource     string
	TraceSource    string
	OHLCPoints     int
	TracePoints    int
	MarginFraction float64
	Primary        *model.AxisInterval // nil when the price axis was not fitted
	Secondary      *model.AxisInterval // nil when the volume axis was not fitted
	Band           []model.BandPoint
	Err            string
}

// Recorder persists dashboard builds for later analysis.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
