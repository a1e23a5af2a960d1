package chart

import (
	"fmt"
	"time"
)

// Panel is one chart area of the dashboard.
type Panel struct {
	Title string
	Row   int
	AxisY *Axis
}

// PricePanel shows the candles and the band on a shared Y axis.
type PricePanel struct {
	Panel
	Candles *OHLCSeries
	Band    *BandSeries
}

// VolumePanel shows the volume trace below the price panel.
type VolumePanel struct {
	Panel
	Volume *AreaSeries
}

// Dashboard is a single-column grid with the price panel above the volume panel.
type Dashboard struct {
	DateOrigin time.Time
	Price      *PricePanel
	Volume     *VolumePanel
	rowHeights []float64
}

// NewDashboard lays out the two panels. Both rows start with height weight 1.
func NewDashboard(title string, dateOrigin time.Time) *Dashboard {
	return &Dashboard{
		DateOrigin: dateOrigin,
		Price: &PricePanel{
			Panel:   Panel{Title: title, Row: 0, AxisY: NewAxis("USD")},
			Candles: NewOHLCSeries("Candle-Sticks"),
			Band:    NewBandSeries("Bollinger band"),
		},
		Volume: &VolumePanel{
			Panel:  Panel{Title: "Volume", Row: 1, AxisY: NewAxis("USD")},
			Volume: NewAreaSeries("Volume"),
		},
		rowHeights: []float64{1, 1},
	}
}

// Rows returns the number of grid rows.
func (d *Dashboard) Rows() int { return len(d.rowHeights) }

// SetRowHeight sets the relative height weight of a row.
func (d *Dashboard) SetRowHeight(row int, weight float64) error {
	if row < 0 || row >= len(d.rowHeights) {
		return fmt.Errorf("row %d out of range [0,%d)", row, len(d.rowHeights))
	}
	if weight <= 0 {
		return fmt.Errorf("row weight must be positive, got %v", weight)
	}
	d.rowHeights[row] = weight
	return nil
}

// RowShare returns the fraction of the total height given to row.
func (d *Dashboard) RowShare(row int) float64 {
	if row < 0 || row >= len(d.rowHeights) {
		return 0
	}
	total := 0.0
	for _, h := range d.rowHeights {
		total += h
	}
	return d.rowHeights[row] / total
}

// Time converts an X value in milliseconds from the date origin to wall time.
func (d *Dashboard) Time(x float64) time.Time {
	return d.DateOrigin.Add(time.Duration(x * float64(time.Millisecond)))
}
