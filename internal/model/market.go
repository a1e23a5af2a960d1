package model

// OHLCPoint represents a single candlestick bucket.
// Timestamp is in milliseconds on the dashboard X axis.
type OHLCPoint struct {
	Timestamp float64 `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
}

// BandPoint is one sample of the envelope drawn around the candles.
type BandPoint struct {
	Timestamp float64 `json:"timestamp"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
}

// TracePoint is one sample of the volume trace.
type TracePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
