package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"time"

	"TradingDashboard/internal/chart"
	"TradingDashboard/internal/model"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// singlePointPad is how far the x range extends either side of a lone timestamp.
const singlePointPad = 12 * time.Hour

// Options sizes the rendered dashboard.
type Options struct {
	Width  int
	Height int
}

func DefaultOptions() Options {
	return Options{Width: 1200, Height: 900}
}

// PNG draws the dashboard with the price panel stacked above the volume panel.
// Each panel gets its row share of the height; pinned axes are drawn with their fixed interval.
func PNG(w io.Writer, d *chart.Dashboard, opts Options) error {
	canvas := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	top := 0
	panels := []struct {
		row  int
		draw func(width, height int) (image.Image, error)
	}{
		{d.Price.Row, func(w, h int) (image.Image, error) { return pricePanel(d, w, h) }},
		{d.Volume.Row, func(w, h int) (image.Image, error) { return volumePanel(d, w, h) }},
	}
	for i, p := range panels {
		height := int(float64(opts.Height) * d.RowShare(p.row))
		if i == len(panels)-1 {
			height = opts.Height - top
		}
		img, err := p.draw(opts.Width, height)
		if err != nil {
			return fmt.Errorf("render row %d: %w", p.row, err)
		}
		if img != nil {
			draw.Draw(canvas, image.Rect(0, top, opts.Width, top+height), img, img.Bounds().Min, draw.Over)
		}
		top += height
	}
	return png.Encode(w, canvas)
}

func pricePanel(d *chart.Dashboard, width, height int) (image.Image, error) {
	band := d.Price.Band.Points()
	candles := d.Price.Candles.Points()
	if len(band) == 0 && len(candles) == 0 {
		return nil, nil
	}

	var series []gochart.Series
	var times []time.Time
	if len(band) > 0 {
		xs := make([]time.Time, len(band))
		highs := make([]float64, len(band))
		lows := make([]float64, len(band))
		for i, b := range band {
			xs[i] = d.Time(b.Timestamp)
			highs[i] = b.High
			lows[i] = b.Low
		}
		times = append(times, xs...)
		st := lineStyle(d.Price.Band.Style.Stroke)
		series = append(series,
			gochart.TimeSeries{Name: d.Price.Band.Name() + " high", XValues: xs, YValues: highs, Style: st},
			gochart.TimeSeries{Name: d.Price.Band.Name() + " low", XValues: xs, YValues: lows, Style: st},
		)
	}
	if len(candles) > 0 {
		xs := make([]time.Time, len(candles))
		closes := make([]float64, len(candles))
		for i, c := range candles {
			xs[i] = d.Time(c.Timestamp)
			closes[i] = c.Close
		}
		times = append(times, xs...)
		series = append(series, gochart.TimeSeries{
			Name:    d.Price.Candles.Name(),
			XValues: xs,
			YValues: closes,
			Style:   lineStyle(d.Price.Candles.Style.Positive.Wick),
		})
	}
	return renderPanel(d.Price.Panel, series, timeRange(times), width, height)
}

func volumePanel(d *chart.Dashboard, width, height int) (image.Image, error) {
	points := d.Volume.Volume.Points()
	if len(points) == 0 {
		return nil, nil
	}
	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = d.Time(p.X)
		ys[i] = p.Y
	}
	st := lineStyle(d.Volume.Volume.Style.Stroke)
	st.FillColor = toDrawing(d.Volume.Volume.Style.Fill)
	series := []gochart.Series{gochart.TimeSeries{Name: d.Volume.Volume.Name(), XValues: xs, YValues: ys, Style: st}}
	return renderPanel(d.Volume.Panel, series, timeRange(xs), width, height)
}

func renderPanel(p chart.Panel, series []gochart.Series, xRange gochart.Range, width, height int) (image.Image, error) {
	ch := gochart.Chart{
		Title:      p.Title,
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 30, Left: 16, Right: 40, Bottom: 16}},
		XAxis:      gochart.XAxis{ValueFormatter: gochart.TimeDateValueFormatter, Range: xRange},
		YAxis:      gochart.YAxis{Name: p.AxisY.Title, Range: axisRange(p.AxisY)},
		Series:     series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// axisRange pins the go-chart range to a fitted interval. A zero-span interval is
// widened by one unit so the renderer can still draw it.
func axisRange(a *chart.Axis) gochart.Range {
	iv, ok := a.Interval()
	if !ok {
		return nil
	}
	iv = drawable(iv)
	return &gochart.ContinuousRange{Min: iv.Start, Max: iv.End}
}

// timeRange returns an explicit x range when every point shares one timestamp,
// since go-chart cannot derive a range from a single x value. Otherwise nil.
func timeRange(xs []time.Time) gochart.Range {
	if len(xs) == 0 {
		return nil
	}
	for _, t := range xs[1:] {
		if !t.Equal(xs[0]) {
			return nil
		}
	}
	return &gochart.ContinuousRange{
		Min: float64(xs[0].Add(-singlePointPad).UnixNano()),
		Max: float64(xs[0].Add(singlePointPad).UnixNano()),
	}
}

func drawable(iv model.AxisInterval) model.AxisInterval {
	if iv.Span() == 0 {
		return model.AxisInterval{Start: iv.Start - 0.5, End: iv.End + 0.5}
	}
	return iv
}

func lineStyle(ls chart.LineStyle) gochart.Style {
	return gochart.Style{
		StrokeColor: toDrawing(ls.Color),
		StrokeWidth: ls.Thickness,
	}
}

func toDrawing(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
