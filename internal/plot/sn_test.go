package plot

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Durability/internal/calc/calcerr"
	"Durability/internal/calc/woehler"
)

func steel() woehler.Curve {
	return woehler.Curve{K1: -8, ND: 1e6, SD: 100, TN: 12, TS: 1.1}
}

type failingCurve struct{ calls int }

func (f *failingCurve) BasquinLoad(cycles []float64, p float64) ([]float64, error) {
	f.calls++
	if p != 0.5 {
		return nil, errors.New("evaluation failed")
	}
	return make([]float64, len(cycles)), nil
}

func TestRenderSNCurve_AppendsThreeBands(t *testing.T) {
	fig := NewFigure("woehler")
	fig.AddMarkers("fracture", []float64{1e4}, []float64{150}, "red")
	before := append([]Trace(nil), fig.Traces...)

	cycles, err := LogSpace(1e3, 1e8, 50)
	require.NoError(t, err)
	got, err := RenderSNCurve(fig, cycles, steel(), "Probit", "blue")
	require.NoError(t, err)
	require.Same(t, fig, got)

	want := []string{"fracture", "Probit 50%", "Probit 10%", "Probit 90%"}
	if diff := cmp.Diff(want, fig.TraceNames()); diff != "" {
		t.Fatalf("trace names (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, fig.Traces[:1]); diff != "" {
		t.Errorf("existing trace changed (-want +got):\n%s", diff)
	}
	for _, tr := range fig.Traces[1:] {
		assert.Equal(t, "blue", tr.Color)
		assert.Equal(t, ModeLines, tr.Mode)
		assert.Equal(t, "Probit", tr.Group)
		assert.Len(t, tr.Y, len(cycles))
	}
	assert.Equal(t, DashSolid, fig.Traces[1].Dash)
	assert.Equal(t, DashDash, fig.Traces[2].Dash)
	assert.Equal(t, DashDash, fig.Traces[3].Dash)
	assert.Equal(t, "fracture", fig.Traces[0].Group)
}

func TestRenderSNCurve_ComposesCurves(t *testing.T) {
	cycles := []float64{1e4, 1e5, 1e6, 1e7}
	fig := NewFigure("two curves")
	_, err := RenderSNCurve(fig, cycles, steel(), "Probit", "black")
	require.NoError(t, err)
	_, err = RenderSNCurve(fig, cycles, steel().MinerHaibach(), "ML full", "blue")
	require.NoError(t, err)

	require.Len(t, fig.Traces, 6)
	alone, err := RenderSNCurve(NewFigure("alone"), cycles, steel(), "Probit", "black")
	require.NoError(t, err)
	if diff := cmp.Diff(alone.Traces, fig.Traces[:3]); diff != "" {
		t.Errorf("first curve disturbed by second (-want +got):\n%s", diff)
	}
}

func TestRenderSNCurve_IsDeterministic(t *testing.T) {
	cycles := []float64{1e3, 1e6, 1e9}
	a, err := RenderSNCurve(NewFigure(""), cycles, steel(), "x", "red")
	require.NoError(t, err)
	b, err := RenderSNCurve(NewFigure(""), cycles, steel(), "x", "red")
	require.NoError(t, err)
	assert.True(t, cmp.Equal(a, b))
}

func TestRenderSNCurve_DoesNotAliasCycles(t *testing.T) {
	cycles := []float64{1e4, 1e5}
	fig, err := RenderSNCurve(NewFigure(""), cycles, steel(), "x", "black")
	require.NoError(t, err)
	cycles[0] = 7
	assert.Equal(t, 1e4, fig.Traces[0].X[0])
}

func TestRenderSNCurve_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		cycles []float64
		color  string
	}{
		{name: "empty axis", cycles: nil, color: "black"},
		{name: "zero cycles", cycles: []float64{0, 10}, color: "black"},
		{name: "bad color", cycles: []float64{10}, color: "not-a-color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fig := NewFigure("")
			_, err := RenderSNCurve(fig, tt.cycles, steel(), "x", tt.color)
			assert.True(t, calcerr.IsClientError(err), "got %v", err)
			assert.Empty(t, fig.Traces)
		})
	}
}

func TestRenderSNCurve_PropagatesEvaluationError(t *testing.T) {
	fig := NewFigure("")
	fc := &failingCurve{}
	_, err := RenderSNCurve(fig, []float64{10}, fc, "x", "black")
	require.EqualError(t, err, "evaluation failed")
	assert.Equal(t, 2, fc.calls)
	assert.Empty(t, fig.Traces)
}

func TestLogSpace(t *testing.T) {
	got, err := LogSpace(10, 1e12, 12)
	require.NoError(t, err)
	require.Len(t, got, 12)
	assert.InEpsilon(t, 10, got[0], 1e-12)
	assert.InEpsilon(t, 1e12, got[11], 1e-12)
	assert.InEpsilon(t, 100, got[1], 1e-12)

	_, err = LogSpace(0, 10, 5)
	assert.Error(t, err)
	_, err = LogSpace(10, 1, 5)
	assert.Error(t, err)
	_, err = LogSpace(1, 10, 1)
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	fig := NewFigure("render")
	cycles, err := LogSpace(1e3, 1e8, 40)
	require.NoError(t, err)
	_, err = RenderSNCurve(fig, cycles, steel(), "curve", "#336699")
	require.NoError(t, err)
	fig.AddMarkers("runout", []float64{1e7, 0}, []float64{90, 90}, "gray")

	var png bytes.Buffer
	require.NoError(t, fig.Render(&png, FormatPNG))
	assert.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")))

	var svg bytes.Buffer
	require.NoError(t, fig.Render(&svg, FormatSVG))
	assert.True(t, strings.Contains(svg.String(), "<svg"))
}

func TestRender_NothingToDraw(t *testing.T) {
	fig := NewFigure("empty")
	fig.AddMarkers("bad", []float64{-1}, []float64{5}, "black")
	assert.Error(t, fig.Render(&bytes.Buffer{}, FormatPNG))
}

func TestParseColor(t *testing.T) {
	for _, ok := range []string{"", "black", "Blue", "#00ff00", "00FF00"} {
		_, err := ParseColor(ok)
		assert.NoError(t, err, ok)
	}
	_, err := ParseColor("#12")
	assert.Error(t, err)
	assert.Equal(t, "black", ColorAt(nil, 0))
	assert.Equal(t, "blue", ColorAt([]string{""}, 1))
	assert.Equal(t, "red", ColorAt([]string{"red"}, 0))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)
	f, err = ParseFormat("SVG")
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", f.ContentType())
	_, err = ParseFormat("gif")
	assert.Error(t, err)
}
