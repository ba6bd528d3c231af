package chart

import (
	"io"
	"math"

	"codeberg.org/mutker/bodymind/internal/errors"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultWidth  = 900
	DefaultHeight = 360
)

// RenderPNG draws the datasets as a line chart with labels as x ticks.
// NaN points are skipped; datasets left without points are dropped.
func RenderPNG(w io.Writer, title string, labels []string, datasets []Dataset, width, height int) error {
	errFactory := errors.New()

	if err := Validate(labels, datasets); err != nil {
		return err
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	series := make([]gochart.Series, 0, len(datasets))
	for _, d := range datasets {
		xs, ys := finitePoints(d.Values)
		if len(xs) == 0 {
			continue
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    d.Name,
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(d),
		})
	}
	if len(series) == 0 {
		return errFactory.New(ErrNoData)
	}

	lo, hi, _ := bounds(datasets)
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.1, 1)
	}

	xTicks := make([]gochart.Tick, len(labels))
	for i, l := range labels {
		xTicks[i] = gochart.Tick{Value: float64(i), Label: l}
	}

	graph := gochart.Chart{
		Title:      title,
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: math.Max(float64(len(labels)-1), 1)},
			Ticks: xTicks,
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: lo - pad, Max: hi + pad},
		},
		Series: series,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	if err := graph.Render(gochart.PNG, w); err != nil {
		return errFactory.Wrap(ErrRender, err)
	}
	return nil
}

func finitePoints(values []float64) (xs, ys []float64) {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, v)
	}
	return xs, ys
}

func lineStyle(d Dataset) gochart.Style {
	c := drawing.Color{R: d.Color.R, G: d.Color.G, B: d.Color.B, A: 255}
	st := gochart.Style{
		StrokeColor: c,
		StrokeWidth: 2,
		DotColor:    c,
		DotWidth:    3,
	}
	if d.Dashed {
		st.StrokeDashArray = []float64{6, 4}
	}
	if d.Fill {
		st.FillColor = c.WithAlpha(64)
	}
	return st
}
