package recorder

import "TradingDashboard/internal/dashboard"

// FromSnapshot builds a RunRecord from a finished build. buildErr may be nil.
func FromSnapshot(snap *dashboard.Snapshot, ohlcSource, traceSource string, marginFraction float64, buildErr error) *RunRecord {
	rec := &RunRecord{
		ResolvedAt:     snap.ResolvedAt,
		OHLCSource:     ohlcSource,
		TraceSource:    traceSource,
		OHLCPoints:     len(snap.Candles),
		TracePoints:    len(snap.Trace),
		MarginFraction: marginFraction,
		Primary:        snap.Price.Interval,
		Secondary:      snap.Volume.Interval,
		Band:           snap.Band,
	}
	if buildErr != nil {
		rec.Err = buildErr.Error()
	}
	return rec
}
