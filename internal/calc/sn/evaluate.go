package sn

import (
	"fmt"

	"Durability/internal/calc/calcerr"
	"Durability/internal/calc/fatiguedata"
	"Durability/internal/calc/woehler"
	"Durability/internal/plot"
)

// AxisPoints is the resolution of the cycle axis spanning the test data.
const AxisPoints = 100

// Evaluation is the outcome of one S-N evaluation request.
type Evaluation struct {
	Stats   fatiguedata.Stats        `json:"stats"`
	Methods []string                 `json:"methods"`
	Curves  map[string]woehler.Curve `json:"curves"`
	Figure  *plot.Figure             `json:"-"`
}

// Evaluate plots the test results and overlays the scatter band of every
// selected method. The cycle axis runs from the shortest to the longest test.
// Curves are supplied by the caller; nothing is fitted here.
func Evaluate(data fatiguedata.Data, curves map[string]woehler.Curve, methods []string, colors []string) (*Evaluation, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	selected := make(map[string]woehler.Curve, len(methods))
	for _, m := range methods {
		c, ok := curves[m]
		if !ok {
			return nil, &calcerr.ConfigurationError{Method: m}
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", m, err)
		}
		selected[m] = c
	}

	fig := plot.NewFigure("Woehler analysis")
	if f := data.Fractures(); len(f) > 0 {
		fig.AddMarkers("fracture", f.Cycles(), f.Loads(), "red")
	}
	if ro := data.Runouts(); len(ro) > 0 {
		fig.AddMarkers("runout", ro.Cycles(), ro.Loads(), "gray")
	}

	cycles, err := data.CycleAxis(AxisPoints)
	if err != nil {
		return nil, err
	}
	for i, m := range methods {
		if _, err := plot.RenderSNCurve(fig, cycles, selected[m], m, plot.ColorAt(colors, i)); err != nil {
			return nil, fmt.Errorf("%s: %w", m, err)
		}
	}
	return &Evaluation{
		Stats:   data.Summary(),
		Methods: methods,
		Curves:  selected,
		Figure:  fig,
	}, nil
}
