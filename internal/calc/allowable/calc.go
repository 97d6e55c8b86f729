// Package allowable finds how far a load spectrum can be scaled before its
// damage sum reaches a target.
package allowable

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"Durability/internal/calc/calcerr"
	"Durability/internal/calc/damage"
	"Durability/internal/calc/woehler"
)

const (
	DefaultMethod = damage.MinerHaibach
	DefaultTarget = 1.0

	maxBracketSteps = 200
	maxBisections   = 200
	tolerance       = 1e-12
)

type Result struct {
	Method     string          `json:"method"`
	Target     float64         `json:"target"`
	Factor     float64         `json:"factor"`
	Total      float64         `json:"total"`
	Spectrum   damage.Spectrum `json:"spectrum"`
	Iterations int             `json:"iterations"`
}

func total(spectrum damage.Spectrum, curve woehler.Curve, f float64) (float64, error) {
	d, err := curve.Damage(spectrum.Scaled(f).Amplitudes(), spectrum.Cycles())
	if err != nil {
		return 0, err
	}
	return floats.Sum(d), nil
}

// Scale returns the smallest amplitude factor at which the damage sum of
// spectrum reaches target. The damage sum grows with the factor, so the
// factor is bracketed by halving and doubling and then bisected in log space.
func Scale(spectrum damage.Spectrum, curve woehler.Curve, method string, target float64) (Result, error) {
	if !(target > 0) || math.IsInf(target, 0) {
		return Result{}, calcerr.Invalid("target", "%g must be positive", target)
	}
	if err := spectrum.Validate(); err != nil {
		return Result{}, err
	}
	if err := curve.Validate(); err != nil {
		return Result{}, err
	}

	lo, hi := 1.0, 1.0
	d, err := total(spectrum, curve, 1)
	if err != nil {
		return Result{}, err
	}
	steps := 0
	if d < target {
		for ; d < target; steps++ {
			if steps == maxBracketSteps {
				return Result{}, calcerr.Invalid("target", "damage sum %g is not reached", target)
			}
			lo = hi
			hi *= 2
			if d, err = total(spectrum, curve, hi); err != nil {
				return Result{}, err
			}
		}
	} else {
		for ; d >= target; steps++ {
			if steps == maxBracketSteps {
				return Result{}, calcerr.Invalid("target", "damage sum %g is exceeded at any scale", target)
			}
			hi = lo
			lo /= 2
			if d, err = total(spectrum, curve, lo); err != nil {
				return Result{}, err
			}
		}
	}

	// invariant: total(lo) < target <= total(hi)
	iter := 0
	for ; iter < maxBisections && hi/lo-1 > tolerance; iter++ {
		mid := math.Sqrt(lo * hi)
		d, err := total(spectrum, curve, mid)
		if err != nil {
			return Result{}, err
		}
		if d < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	d, err = total(spectrum, curve, hi)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Method:     method,
		Target:     target,
		Factor:     hi,
		Total:      d,
		Spectrum:   spectrum.Scaled(hi),
		Iterations: steps + iter,
	}, nil
}
