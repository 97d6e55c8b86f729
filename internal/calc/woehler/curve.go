package woehler

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"Durability/internal/calc/calcerr"
)

// MedianProbability is the failure probability of the nominal curve.
const MedianProbability = 0.5

// Curve holds the parameters of a two-segment Woehler (S-N) curve.
// K1 is the negative slope exponent of the finite-life region, so the load
// falls as life grows. K2 is the slope beyond the knee point; nil (or an
// infinite value) keeps the curve flat at SD there.
type Curve struct {
	K1 float64  `json:"k_1" yaml:"k_1"`
	ND float64  `json:"ND" yaml:"ND"`
	SD float64  `json:"SD" yaml:"SD"`
	TN float64  `json:"TN" yaml:"TN"`
	TS float64  `json:"TS" yaml:"TS"`
	K2 *float64 `json:"k_2,omitempty" yaml:"k_2,omitempty"`
}

// Slope returns a pointer suitable for Curve.K2.
func Slope(k float64) *float64 {
	return &k
}

// Validate checks the parameter invariants.
func (c Curve) Validate() error {
	switch {
	case !(c.K1 < 0) || math.IsInf(c.K1, 0):
		return calcerr.Invalid("k_1", "slope %g must be negative and finite", c.K1)
	case !(c.ND > 0) || math.IsInf(c.ND, 0):
		return calcerr.Invalid("ND", "knee point cycles %g must be positive", c.ND)
	case !(c.SD > 0) || math.IsInf(c.SD, 0):
		return calcerr.Invalid("SD", "endurance load %g must be positive", c.SD)
	case !(c.TN >= 1) || math.IsInf(c.TN, 0):
		return calcerr.Invalid("TN", "scatter %g must be at least 1", c.TN)
	case !(c.TS >= 1) || math.IsInf(c.TS, 0):
		return calcerr.Invalid("TS", "scatter %g must be at least 1", c.TS)
	}
	if c.K2 != nil && !math.IsInf(*c.K2, 0) && !(*c.K2 < 0) {
		return calcerr.Invalid("k_2", "slope %g must be negative", *c.K2)
	}
	return nil
}

// Flat reports whether the curve stays at SD beyond the knee point.
func (c Curve) Flat() bool {
	return c.K2 == nil || math.IsInf(*c.K2, 0)
}

// WithK2 returns a copy of c with the post-knee slope replaced.
func (c Curve) WithK2(k2 *float64) Curve {
	if k2 != nil {
		k2 = Slope(*k2)
	}
	c.K2 = k2
	return c
}

// MinerOriginal keeps the curve flat beyond the knee, so loads below SD do
// no damage.
func (c Curve) MinerOriginal() Curve {
	return c.WithK2(nil)
}

// MinerElementary extends the finite-life slope past the knee point.
func (c Curve) MinerElementary() Curve {
	return c.WithK2(Slope(c.K1))
}

// MinerHaibach uses the 2k-1 slope beyond the knee point. With the negative
// slope convention this is 2*K1+1, e.g. -15 for K1 = -8.
func (c Curve) MinerHaibach() Curve {
	return c.WithK2(Slope(2*c.K1 + 1))
}

// scatterExponent maps a failure probability onto the exponent applied to the
// 10%-90% scatter ranges TN and TS.
func scatterExponent(failureProbability float64) float64 {
	return distuv.UnitNormal.Quantile(failureProbability) / (2 * distuv.UnitNormal.Quantile(0.9))
}

// AtFailureProbability returns the curve shifted to the given failure
// probability. The median curve is returned unchanged.
func (c Curve) AtFailureProbability(failureProbability float64) (Curve, error) {
	if err := c.Validate(); err != nil {
		return Curve{}, err
	}
	if !(failureProbability > 0 && failureProbability < 1) {
		return Curve{}, calcerr.Invalid("failure_probability", "%g must lie in (0, 1)", failureProbability)
	}
	if failureProbability == MedianProbability {
		return c, nil
	}
	e := scatterExponent(failureProbability)
	sd := c.SD * math.Pow(c.TS, e)
	shifted := c
	shifted.SD = sd
	shifted.ND = c.ND * math.Pow(sd/c.SD, c.K1) * math.Pow(c.TN, e)
	return shifted, nil
}

// BasquinLoad returns the load sustainable for each cycle count at the given
// failure probability.
func (c Curve) BasquinLoad(cycles []float64, failureProbability float64) ([]float64, error) {
	cur, err := c.AtFailureProbability(failureProbability)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(cycles))
	for i, n := range cycles {
		if !(n > 0) || math.IsInf(n, 0) {
			return nil, calcerr.Invalid("cycles", "value %g at index %d must be positive and finite", n, i)
		}
		k := cur.K1
		if n > cur.ND {
			if cur.Flat() {
				out[i] = cur.SD
				continue
			}
			k = *cur.K2
		}
		out[i] = cur.SD * math.Pow(n/cur.ND, 1/k)
	}
	return out, nil
}

// BasquinCycles returns the cycles to failure for each load at the given
// failure probability. Loads below SD on a flat curve give +Inf.
func (c Curve) BasquinCycles(loads []float64, failureProbability float64) ([]float64, error) {
	cur, err := c.AtFailureProbability(failureProbability)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(loads))
	for i, s := range loads {
		if !(s > 0) || math.IsInf(s, 0) {
			return nil, calcerr.Invalid("load", "value %g at index %d must be positive and finite", s, i)
		}
		k := cur.K1
		if s < cur.SD {
			if cur.Flat() {
				out[i] = math.Inf(1)
				continue
			}
			k = *cur.K2
		}
		out[i] = cur.ND * math.Pow(s/cur.SD, k)
	}
	return out, nil
}

// Damage returns the linear damage contribution n/N of every load level,
// evaluated on the median curve.
func (c Curve) Damage(amplitudes, cycles []float64) ([]float64, error) {
	if len(amplitudes) != len(cycles) {
		return nil, calcerr.Invalid("load spectrum", "%d amplitudes but %d cycle counts", len(amplitudes), len(cycles))
	}
	life, err := c.BasquinCycles(amplitudes, MedianProbability)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(cycles))
	for i, n := range cycles {
		if !(n > 0) || math.IsInf(n, 0) {
			return nil, calcerr.Invalid("cycles", "value %g at index %d must be positive and finite", n, i)
		}
		out[i] = n / life[i]
	}
	return out, nil
}
