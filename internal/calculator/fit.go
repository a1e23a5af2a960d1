package calculator

import "TradingDashboard/internal/model"

// DefaultMarginFraction is the share of the price span reserved below the candles for the volume panel.
const DefaultMarginFraction = 0.33

// Fit computes both axis intervals so the price series sits above the volume series.
// Inputs are not validated; run Extent.Validate first when the data is untrusted.
func Fit(primary, secondary model.Extent, marginFraction float64) model.View {
	return model.View{
		Primary:   FitPrimary(primary, marginFraction),
		Secondary: FitSecondary(secondary),
	}
}

// FitPrimary pads the lower bound of the price axis by marginFraction of its own span.
func FitPrimary(primary model.Extent, marginFraction float64) model.AxisInterval {
	return model.AxisInterval{
		Start: primary.Min - primary.Range()*marginFraction,
		End:   primary.Max,
	}
}

// FitSecondary gives the volume axis exactly its data range.
func FitSecondary(secondary model.Extent) model.AxisInterval {
	return model.AxisInterval{Start: secondary.Min, End: secondary.Max}
}
