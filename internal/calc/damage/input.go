package damage

import (
	"fmt"

	"Durability/internal/calc/calcerr"
	"Durability/internal/calc/woehler"
)

// Materials looks up named curve presets.
type Materials interface {
	Lookup(name string) (woehler.Curve, bool)
}

// Input is the request shared by the damage tools. Curve parameters come
// either inline or from a named material preset; Methods overrides the
// canonical Miner variants derived from that curve.
type Input struct {
	Spectrum Spectrum                 `json:"spectrum"`
	Material string                   `json:"material"`
	Curve    *woehler.Curve           `json:"curve"`
	Methods  map[string]woehler.Curve `json:"methods"`
	Selected []string                 `json:"selected"`
	Colors   []string                 `json:"colors"`
}

// Resolve returns the method set and the base curve for in. An empty
// spectrum falls back to the example spectrum.
func (in *Input) Resolve(materials Materials) (map[string]woehler.Curve, woehler.Curve, error) {
	if len(in.Spectrum) == 0 {
		in.Spectrum = ExampleSpectrum()
	}
	if len(in.Methods) > 0 {
		for name, c := range in.Methods {
			if err := c.Validate(); err != nil {
				return nil, woehler.Curve{}, fmt.Errorf("%s: %w", name, err)
			}
		}
		var base woehler.Curve
		if in.Curve != nil {
			base = *in.Curve
		}
		return in.Methods, base, nil
	}

	var base woehler.Curve
	switch {
	case in.Curve != nil:
		base = *in.Curve
	case in.Material != "" && materials != nil:
		c, ok := materials.Lookup(in.Material)
		if !ok {
			return nil, woehler.Curve{}, calcerr.Invalid("material", "unknown preset %q", in.Material)
		}
		base = c
	default:
		return nil, woehler.Curve{}, calcerr.Invalid("curve", "either curve or material is required")
	}
	if err := base.Validate(); err != nil {
		return nil, woehler.Curve{}, err
	}
	return CanonicalMethods(base), base, nil
}
