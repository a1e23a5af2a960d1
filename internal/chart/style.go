package chart

import "image/color"

// LineStyle describes a stroke.
type LineStyle struct {
	Color     color.RGBA
	Thickness float64
}

// CandleStyle styles one direction of candlestick.
type CandleStyle struct {
	FigureWidth float64
	Positive    CandleFigure
	Negative    CandleFigure
}

// CandleFigure is the look of a rising or falling candle.
type CandleFigure struct {
	BodyFill   color.RGBA
	BodyStroke LineStyle
	Wick       LineStyle
}

// AreaStyle styles an area or area-range series.
type AreaStyle struct {
	Fill   color.RGBA
	Stroke LineStyle
}

var black = color.RGBA{A: 255}

func DefaultCandleStyle() CandleStyle {
	return CandleStyle{
		FigureWidth: 5,
		Positive: CandleFigure{
			BodyFill:   color.RGBA{G: 255, A: 255},
			BodyStroke: LineStyle{Color: black, Thickness: 1},
			Wick:       LineStyle{Color: color.RGBA{G: 128, A: 255}, Thickness: 1},
		},
		Negative: CandleFigure{
			BodyFill:   color.RGBA{R: 255, A: 255},
			BodyStroke: LineStyle{Color: black, Thickness: 1},
			Wick:       LineStyle{Color: color.RGBA{R: 128, A: 255}, Thickness: 1},
		},
	}
}

// DefaultBandStyle is cornflower blue with a translucent fill.
func DefaultBandStyle() AreaStyle {
	return AreaStyle{
		Fill:   color.RGBA{R: 100, G: 149, B: 237, A: 50},
		Stroke: LineStyle{Color: color.RGBA{R: 100, G: 149, B: 237, A: 255}, Thickness: 1},
	}
}

// DefaultVolumeStyle is teal.
func DefaultVolumeStyle() AreaStyle {
	return AreaStyle{
		Fill:   color.RGBA{G: 128, B: 128, A: 60},
		Stroke: LineStyle{Color: color.RGBA{G: 128, B: 128, A: 255}, Thickness: 1},
	}
}
