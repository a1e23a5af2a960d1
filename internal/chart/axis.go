package chart

import "TradingDashboard/internal/model"

// ScrollStrategy decides who owns an axis range.
type ScrollStrategy string

const (
	// ScrollAuto lets the renderer fit the axis to whatever data it holds.
	ScrollAuto ScrollStrategy = "auto"
	// ScrollFixed keeps the interval last passed to SetInterval.
	ScrollFixed ScrollStrategy = "fixed"
)

// Axis is a Y axis whose visible range can be pinned.
type Axis struct {
	Title    string
	interval model.AxisInterval
	scroll   ScrollStrategy
}

func NewAxis(title string) *Axis {
	return &Axis{Title: title, scroll: ScrollAuto}
}

// SetInterval pins the visible range and switches the axis to fixed scrolling.
func (a *Axis) SetInterval(iv model.AxisInterval) {
	a.interval = iv
	a.scroll = ScrollFixed
}

// Interval returns the pinned range. ok is false while the axis is still auto scrolling.
func (a *Axis) Interval() (iv model.AxisInterval, ok bool) {
	return a.interval, a.scroll == ScrollFixed
}

func (a *Axis) Scroll() ScrollStrategy { return a.scroll }
