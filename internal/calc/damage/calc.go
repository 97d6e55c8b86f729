package damage

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"Durability/internal/calc/calcerr"
	"Durability/internal/calc/woehler"
	"Durability/internal/plot"
)

const (
	MinerOriginal   = "miner_original"
	MinerElementary = "miner_elementary"
	MinerHaibach    = "miner_haibach"
)

// MethodOrder is the display order of the canonical methods.
var MethodOrder = []string{MinerOriginal, MinerElementary, MinerHaibach}

// Level is one block of a load spectrum.
type Level struct {
	Amplitude float64 `json:"amplitude"`
	Cycles    float64 `json:"cycles"`
}

// Spectrum is a block-loading history. Level order carries no meaning but is
// kept in every per-level output.
type Spectrum []Level

// ExampleSpectrum is the four-level spectrum shown when nothing is uploaded.
func ExampleSpectrum() Spectrum {
	return Spectrum{
		{Amplitude: 100, Cycles: 1e3},
		{Amplitude: 50, Cycles: 5e3},
		{Amplitude: 75, Cycles: 10e3},
		{Amplitude: 25, Cycles: 25e3},
	}
}

func (s Spectrum) Validate() error {
	if len(s) == 0 {
		return calcerr.Invalid("load spectrum", "no load levels")
	}
	for i, l := range s {
		if !(l.Amplitude > 0) || math.IsInf(l.Amplitude, 0) {
			return calcerr.Invalid("amplitude", "level %d: %g must be positive", i+1, l.Amplitude)
		}
		if !(l.Cycles > 0) || math.IsInf(l.Cycles, 0) {
			return calcerr.Invalid("cycles", "level %d: %g must be positive", i+1, l.Cycles)
		}
	}
	return nil
}

func (s Spectrum) Amplitudes() []float64 {
	out := make([]float64, len(s))
	for i, l := range s {
		out[i] = l.Amplitude
	}
	return out
}

func (s Spectrum) Cycles() []float64 {
	out := make([]float64, len(s))
	for i, l := range s {
		out[i] = l.Cycles
	}
	return out
}

// Scaled returns a copy with every amplitude multiplied by f.
func (s Spectrum) Scaled(f float64) Spectrum {
	out := make(Spectrum, len(s))
	for i, l := range s {
		out[i] = Level{Amplitude: l.Amplitude * f, Cycles: l.Cycles}
	}
	return out
}

// Summary is the damage of one method: a value per spectrum level and
// their sum.
type Summary struct {
	PerLevel []float64 `json:"per_level"`
	Total    float64   `json:"total"`
}

// BlocksToFailure is how often the spectrum can be repeated until the damage
// sum reaches 1.
func (s Summary) BlocksToFailure() float64 {
	if s.Total == 0 {
		return math.Inf(1)
	}
	return 1 / s.Total
}

// Result maps a method name to its summary.
type Result map[string]Summary

// CanonicalMethods derives the three Miner variants from one curve. They
// differ only in the slope beyond the knee point.
func CanonicalMethods(base woehler.Curve) map[string]woehler.Curve {
	return map[string]woehler.Curve{
		MinerOriginal:   base.MinerOriginal(),
		MinerElementary: base.MinerElementary(),
		MinerHaibach:    base.MinerHaibach(),
	}
}

// Summarize computes the per-level damage and damage sum of spectrum for each
// selected method. No check against the failure sum of 1 is made.
func Summarize(spectrum Spectrum, methods map[string]woehler.Curve, selected []string) (Result, error) {
	out := make(Result, len(selected))
	if len(selected) == 0 {
		return out, nil
	}
	for _, name := range selected {
		if _, ok := methods[name]; !ok {
			return nil, &calcerr.ConfigurationError{Method: name}
		}
	}
	if err := spectrum.Validate(); err != nil {
		return nil, err
	}
	amps, cycles := spectrum.Amplitudes(), spectrum.Cycles()
	for _, name := range selected {
		per, err := methods[name].Damage(amps, cycles)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[name] = Summary{PerLevel: per, Total: floats.Sum(per)}
	}
	return out, nil
}

// TotalLine formats the damage sum the way the summary table prints it.
func TotalLine(method string, total float64) string {
	return fmt.Sprintf("total damage sum %s :  %.2e", method, total)
}

// Overlay draws the spectrum levels and the S-N band of every selected method
// onto fig.
func Overlay(fig *plot.Figure, spectrum Spectrum, methods map[string]woehler.Curve, selected []string, cycles []float64, colors []string) (*plot.Figure, error) {
	fig.AddMarkers("load spectrum", spectrum.Cycles(), spectrum.Amplitudes(), "gray")
	for i, name := range selected {
		curve, ok := methods[name]
		if !ok {
			return fig, &calcerr.ConfigurationError{Method: name}
		}
		if _, err := plot.RenderSNCurve(fig, cycles, curve, name, plot.ColorAt(colors, i)); err != nil {
			return fig, fmt.Errorf("%s: %w", name, err)
		}
	}
	return fig, nil
}
