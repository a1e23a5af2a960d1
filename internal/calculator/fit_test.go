package calculator

import (
	"math"
	"testing"

	"TradingDashboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit_ObservedScenario(t *testing.T) {
	v := Fit(model.Extent{Min: 90, Max: 120}, model.Extent{Min: 0, Max: 50}, DefaultMarginFraction)

	assert.InDelta(t, 80.1, v.Primary.Start, 1e-9)
	assert.Equal(t, 120.0, v.Primary.End)
	assert.Equal(t, model.AxisInterval{Start: 0, End: 50}, v.Secondary)
}

func TestFit_Properties(t *testing.T) {
	cases := []struct {
		a, b, c, d, f float64
	}{
		{0, 1, 0, 1, 0},
		{10, 20, -5, 5, 0.33},
		{-100, -50, 3, 1e6, 1},
		{1.25, 1.75, 0, 0, 2.5},
	}
	for _, tc := range cases {
		v := Fit(model.Extent{Min: tc.a, Max: tc.b}, model.Extent{Min: tc.c, Max: tc.d}, tc.f)
		assert.Equal(t, model.AxisInterval{Start: tc.c, End: tc.d}, v.Secondary)
		assert.Equal(t, tc.b, v.Primary.End)
		assert.Equal(t, tc.a-(tc.b-tc.a)*tc.f, v.Primary.Start)
	}
}

func TestFit_ZeroRangePrimaryIsDegenerate(t *testing.T) {
	for _, f := range []float64{0, 0.33, 10} {
		iv := FitPrimary(model.Extent{Min: 42, Max: 42}, f)
		assert.Equal(t, 42.0, iv.Start)
		assert.Equal(t, 42.0, iv.End)
		assert.Zero(t, iv.Span())
	}
}

func TestExtentOf(t *testing.T) {
	ext, err := ExtentOf([]float64{3, 1, 2}, nil, []float64{-4, 9})
	require.NoError(t, err)
	assert.Equal(t, model.Extent{Min: -4, Max: 9}, ext)

	_, err = ExtentOf()
	assert.ErrorIs(t, err, ErrEmptySeries)
	_, err = ExtentOf(nil, []float64{})
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestBandAndTraceExtent(t *testing.T) {
	ext, err := BandExtent([]model.BandPoint{{High: 11.8, Low: 8.2}, {High: 13, Low: 9}})
	require.NoError(t, err)
	assert.Equal(t, model.Extent{Min: 8.2, Max: 13}, ext)

	ext, err = TraceExtent([]model.TracePoint{{X: 0, Y: 4}, {X: 1, Y: 0}, {X: 2, Y: 7}})
	require.NoError(t, err)
	assert.Equal(t, model.Extent{Min: 0, Max: 7}, ext)

	_, err = TraceExtent(nil)
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestExtentValidate(t *testing.T) {
	assert.NoError(t, model.Extent{Min: 1, Max: 1}.Validate())
	assert.ErrorIs(t, model.Extent{Min: math.NaN(), Max: 1}.Validate(), model.ErrNonFinite)
	assert.ErrorIs(t, model.Extent{Min: 0, Max: math.Inf(1)}.Validate(), model.ErrNonFinite)
	assert.ErrorIs(t, model.Extent{Min: 2, Max: 1}.Validate(), model.ErrInvertedExtent)
}
