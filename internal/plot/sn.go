package plot

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"Durability/internal/calc/calcerr"
)

// LoadEvaluator is the curve capability RenderSNCurve needs.
type LoadEvaluator interface {
	BasquinLoad(cycles []float64, failureProbability float64) ([]float64, error)
}

var bands = []struct {
	probability float64
	suffix      string
	dash        Dash
}{
	{0.5, " 50%", DashSolid},
	{0.1, " 10%", DashDash},
	{0.9, " 90%", DashDash},
}

// RenderSNCurve appends the 50%, 10% and 90% failure probability lines of
// curve to fig, all in one color. The median line is solid, the scatter
// band dashed. Either all three traces are added or, on error, none.
func RenderSNCurve(fig *Figure, cycles []float64, curve LoadEvaluator, name, color string) (*Figure, error) {
	if len(cycles) == 0 {
		return fig, calcerr.Invalid("cycles", "axis must not be empty")
	}
	for i, c := range cycles {
		if !(c > 0) || math.IsInf(c, 0) {
			return fig, calcerr.Invalid("cycles", "value %g at index %d must be positive and finite", c, i)
		}
	}
	if _, err := ParseColor(color); err != nil {
		return fig, calcerr.Invalid("color", "%v", err)
	}

	traces := make([]Trace, 0, len(bands))
	for _, b := range bands {
		load, err := curve.BasquinLoad(cycles, b.probability)
		if err != nil {
			return fig, err
		}
		traces = append(traces, Trace{
			Name:  name + b.suffix,
			X:     append([]float64(nil), cycles...),
			Y:     load,
			Mode:  ModeLines,
			Color: color,
			Dash:  b.dash,
			Group: name,
		})
	}
	fig.Traces = append(fig.Traces, traces...)
	return fig, nil
}

// LogSpace returns n cycle counts spaced evenly in log between lo and hi.
func LogSpace(lo, hi float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, calcerr.Invalid("points", "need at least 2, got %d", n)
	}
	if !(lo > 0) || !(hi >= lo) || math.IsInf(hi, 0) {
		return nil, calcerr.Invalid("cycles", "range [%g, %g] must be positive and ordered", lo, hi)
	}
	return floats.LogSpan(make([]float64, n), lo, hi), nil
}
