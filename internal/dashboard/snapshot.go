package dashboard

import (
	"time"

	"TradingDashboard/internal/chart"
	"TradingDashboard/internal/model"
)

// State is the readiness of one series.
type State int

const (
	// AwaitingData means no point has arrived; the series extent is undefined.
	AwaitingData State = iota
	// Ready means at least one point is held.
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "awaiting"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// PanelSnapshot describes one panel after a build.
type PanelSnapshot struct {
	Title    string              `json:"title"`
	Series   string              `json:"series"`
	State    State               `json:"state"`
	Points   int                 `json:"points"`
	Extent   *model.Extent       `json:"extent,omitempty"`
	Interval *model.AxisInterval `json:"interval,omitempty"`
	RowShare float64             `json:"row_share"`
}

// Snapshot is the result of one build.
type Snapshot struct {
	ResolvedAt time.Time          `json:"resolved_at"`
	DateOrigin time.Time          `json:"date_origin"`
	Price      PanelSnapshot      `json:"price"`
	Volume     PanelSnapshot      `json:"volume"`
	Candles    []model.OHLCPoint  `json:"candles"`
	Band       []model.BandPoint  `json:"band"`
	Trace      []model.TracePoint `json:"trace"`

	Dashboard *chart.Dashboard `json:"-"`
}

// Fitted reports whether both axes were pinned.
func (s *Snapshot) Fitted() bool {
	return s.Price.Interval != nil && s.Volume.Interval != nil
}

// View returns the fitted view. ok is false unless both axes are pinned.
func (s *Snapshot) View() (v model.View, ok bool) {
	if !s.Fitted() {
		return model.View{}, false
	}
	return model.View{Primary: *s.Price.Interval, Secondary: *s.Volume.Interval}, true
}

func (r *run) snapshot() *Snapshot {
	d := r.dash
	return &Snapshot{
		ResolvedAt: time.Now(),
		DateOrigin: d.DateOrigin,
		Price:      panelSnapshot(d, d.Price.Panel, d.Price.Band, r.primary),
		Volume:     panelSnapshot(d, d.Volume.Panel, d.Volume.Volume, r.secondary),
		Candles:    d.Price.Candles.Points(),
		Band:       d.Price.Band.Points(),
		Trace:      d.Volume.Volume.Points(),
		Dashboard:  d,
	}
}

func panelSnapshot(d *chart.Dashboard, p chart.Panel, s chart.Series, st State) PanelSnapshot {
	ps := PanelSnapshot{
		Title:    p.Title,
		Series:   s.Name(),
		State:    st,
		Points:   s.Len(),
		RowShare: d.RowShare(p.Row),
	}
	if ext, err := s.Extent(); err == nil {
		ps.Extent = &ext
	}
	if iv, ok := p.AxisY.Interval(); ok {
		ps.Interval = &iv
	}
	return ps
}
