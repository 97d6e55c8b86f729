// Package plot builds S-N charts as ordered trace lists and renders them to
// PNG or SVG.
//
// A Figure is owned by a single request. Nothing in this package keeps
// state between calls, so independent figures may be built concurrently.
package plot

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type Mode string

const (
	ModeLines   Mode = "lines"
	ModeMarkers Mode = "markers"
)

type Dash string

const (
	DashSolid Dash = "solid"
	DashDash  Dash = "dash"
)

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat accepts "png" (also the empty string) and "svg".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	}
	return "", fmt.Errorf("unknown chart format %q: want png|svg", s)
}

// ContentType returns the MIME type of the rendered output.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Trace is one named x/y series on a figure. Group ties the traces of one
// curve or data set together.
type Trace struct {
	Name  string    `json:"name"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
	Mode  Mode      `json:"mode"`
	Color string    `json:"color"`
	Dash  Dash      `json:"dash"`
	Group string    `json:"group"`
}

// Figure is a mutable chart. Traces are drawn in insertion order.
type Figure struct {
	Title  string  `json:"title"`
	XLabel string  `json:"x_label"`
	YLabel string  `json:"y_label"`
	LogX   bool    `json:"log_x"`
	LogY   bool    `json:"log_y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Traces []Trace `json:"traces"`
}

// NewFigure returns an empty log-log cycles/load figure.
func NewFigure(title string) *Figure {
	return &Figure{
		Title:  title,
		XLabel: "cycles",
		YLabel: "load",
		LogX:   true,
		LogY:   true,
		Width:  960,
		Height: 600,
	}
}

// AddTrace appends t to the figure.
func (f *Figure) AddTrace(t Trace) *Figure {
	f.Traces = append(f.Traces, t)
	return f
}

// AddMarkers appends a point-only trace.
func (f *Figure) AddMarkers(name string, x, y []float64, color string) *Figure {
	return f.AddTrace(Trace{Name: name, X: x, Y: y, Mode: ModeMarkers, Color: color, Dash: DashSolid, Group: name})
}

// TraceNames lists trace names in drawing order.
func (f *Figure) TraceNames() []string {
	names := make([]string, len(f.Traces))
	for i, t := range f.Traces {
		names[i] = t.Name
	}
	return names
}

// Render draws the figure. Points that cannot be shown on a log axis are
// skipped.
func (f *Figure) Render(w io.Writer, format Format) error {
	series := make([]chart.Series, 0, len(f.Traces))
	xr, yr := newBounds(), newBounds()
	for _, t := range f.Traces {
		if len(t.X) != len(t.Y) {
			return fmt.Errorf("trace %q: %d x values but %d y values", t.Name, len(t.X), len(t.Y))
		}
		xs := make([]float64, 0, len(t.X))
		ys := make([]float64, 0, len(t.Y))
		for i := range t.X {
			x, okx := project(t.X[i], f.LogX)
			y, oky := project(t.Y[i], f.LogY)
			if !okx || !oky {
				continue
			}
			xs = append(xs, x)
			ys = append(ys, y)
			xr.add(x)
			yr.add(y)
		}
		if len(xs) == 0 {
			continue
		}
		style, err := t.style()
		if err != nil {
			return err
		}
		series = append(series, chart.ContinuousSeries{Name: t.Name, XValues: xs, YValues: ys, Style: style})
	}
	if len(series) == 0 {
		return fmt.Errorf("figure %q has nothing to draw", f.Title)
	}

	ch := chart.Chart{
		Title:      f.Title,
		Width:      f.Width,
		Height:     f.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 28}},
		XAxis:      axis(f.XLabel, xr, f.LogX).x(),
		YAxis:      axis(f.YLabel, yr, f.LogY).y(),
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	provider := chart.PNG
	if format == FormatSVG {
		provider = chart.SVG
	}
	return ch.Render(provider, w)
}

func project(v float64, logScale bool) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if !logScale {
		return v, true
	}
	if v <= 0 {
		return 0, false
	}
	return math.Log10(v), true
}

type bounds struct{ min, max float64 }

func newBounds() *bounds { return &bounds{min: math.Inf(1), max: math.Inf(-1)} }

func (b *bounds) add(v float64) {
	b.min = math.Min(b.min, v)
	b.max = math.Max(b.max, v)
}

type axisSpec struct {
	name  string
	rng   *chart.ContinuousRange
	ticks []chart.Tick
}

// axis widens degenerate ranges and, on log axes, labels whole decades.
func axis(name string, b *bounds, logScale bool) axisSpec {
	lo, hi := b.min, b.max
	if logScale {
		lo, hi = math.Floor(lo), math.Ceil(hi)
	}
	if hi <= lo {
		pad := math.Max(math.Abs(lo)*0.1, 1)
		lo, hi = lo-pad, hi+pad
	}
	spec := axisSpec{name: name, rng: &chart.ContinuousRange{Min: lo, Max: hi}}
	if logScale {
		for e := lo; e <= hi; e++ {
			spec.ticks = append(spec.ticks, chart.Tick{Value: e, Label: fmt.Sprintf("1e%d", int(e))})
		}
	}
	return spec
}

func (a axisSpec) x() chart.XAxis {
	return chart.XAxis{Name: a.name, Range: a.rng, Ticks: a.ticks}
}

func (a axisSpec) y() chart.YAxis {
	return chart.YAxis{Name: a.name, Range: a.rng, Ticks: a.ticks}
}

func (t Trace) style() (chart.Style, error) {
	col, err := ParseColor(t.Color)
	if err != nil {
		return chart.Style{}, fmt.Errorf("trace %q: %w", t.Name, err)
	}
	if t.Mode == ModeMarkers {
		return chart.Style{
			StrokeColor: drawing.ColorTransparent,
			DotWidth:    4,
			DotColor:    col,
		}, nil
	}
	st := chart.Style{StrokeColor: col, StrokeWidth: 2}
	if t.Dash == DashDash {
		st.StrokeDashArray = []float64{6, 4}
	}
	return st, nil
}
