package chart

import (
	"testing"
	"time"

	"TradingDashboard/internal/calculator"
	"TradingDashboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeries_EmptyExtentIsAnError(t *testing.T) {
	for _, s := range []Series{NewOHLCSeries("o"), NewBandSeries("b"), NewAreaSeries("a")} {
		_, err := s.Extent()
		assert.ErrorIs(t, err, calculator.ErrEmptySeries, s.Name())
		assert.Zero(t, s.Len())
	}
}

func TestBandSeries_TracksExtentAcrossAppends(t *testing.T) {
	s := NewBandSeries("band")
	s.Append(model.BandPoint{Timestamp: 0, High: 11.8, Low: 8.2})
	ext, err := s.Extent()
	require.NoError(t, err)
	assert.Equal(t, model.Extent{Min: 8.2, Max: 11.8}, ext)

	s.Append(model.BandPoint{Timestamp: 1, High: 15, Low: 9}, model.BandPoint{Timestamp: 2, High: 10, Low: 7})
	ext, err = s.Extent()
	require.NoError(t, err)
	assert.Equal(t, model.Extent{Min: 7, Max: 15}, ext)
	assert.Equal(t, 3, s.Len())

	full, err := calculator.BandExtent(s.Points())
	require.NoError(t, err)
	assert.Equal(t, full, ext, "incremental extent must match a full scan")
}

func TestOHLCSeries_ExtentUsesHighLow(t *testing.T) {
	s := NewOHLCSeries("candles")
	s.Append(
		model.OHLCPoint{Open: 10, High: 12, Low: 8, Close: 11},
		model.OHLCPoint{Open: 11, High: 14, Low: 10, Close: 13},
	)
	ext, err := s.Extent()
	require.NoError(t, err)
	assert.Equal(t, model.Extent{Min: 8, Max: 14}, ext)
}

func TestAreaSeries_PointsIsACopy(t *testing.T) {
	s := NewAreaSeries("volume")
	s.Append(model.TracePoint{X: 0, Y: 3})
	pts := s.Points()
	pts[0].Y = 99
	assert.Equal(t, 3.0, s.Points()[0].Y)
}

func TestAxis_ScrollSwitchesOnSetInterval(t *testing.T) {
	a := NewAxis("USD")
	_, ok := a.Interval()
	assert.False(t, ok)
	assert.Equal(t, ScrollAuto, a.Scroll())

	a.SetInterval(model.AxisInterval{Start: 1, End: 2})
	iv, ok := a.Interval()
	assert.True(t, ok)
	assert.Equal(t, ScrollFixed, a.Scroll())
	assert.Equal(t, model.AxisInterval{Start: 1, End: 2}, iv)
}

func TestDashboard_RowShare(t *testing.T) {
	d := NewDashboard("Trading dashboard", time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.InDelta(t, 0.5, d.RowShare(0), 1e-12)

	require.NoError(t, d.SetRowHeight(0, 2))
	assert.InDelta(t, 2.0/3.0, d.RowShare(0), 1e-12)
	assert.InDelta(t, 1.0/3.0, d.RowShare(1), 1e-12)

	assert.Error(t, d.SetRowHeight(2, 1))
	assert.Error(t, d.SetRowHeight(1, 0))
	assert.Zero(t, d.RowShare(5))
}

func TestDashboard_Time(t *testing.T) {
	origin := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	d := NewDashboard("t", origin)
	assert.Equal(t, origin.Add(24*time.Hour), d.Time(24*60*60*1000))
}
