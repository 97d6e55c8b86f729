// Package batch evaluates several load spectra against one method set.
package batch

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"Durability/internal/calc/calcerr"
	"Durability/internal/calc/damage"
	"Durability/internal/calc/woehler"
)

// Case is one named spectrum of a batch.
type Case struct {
	Name     string          `json:"name"`
	Spectrum damage.Spectrum `json:"spectrum"`
}

type CaseResult struct {
	Name    string        `json:"name"`
	Results damage.Result `json:"results"`
	// Worst is the selected method with the largest damage sum.
	Worst string `json:"worst"`
}

// Evaluate runs damage.Summarize for every case concurrently. Results keep
// the case order. The first failing case cancels the rest and is reported
// with its name.
func Evaluate(ctx context.Context, cases []Case, methods map[string]woehler.Curve, selected []string) ([]CaseResult, error) {
	if len(cases) == 0 {
		return nil, calcerr.Invalid("cases", "no items")
	}
	out := make([]CaseResult, len(cases))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range cases {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res, err := damage.Summarize(c.Spectrum, methods, selected)
			if err != nil {
				return fmt.Errorf("case %q: %w", name(c, i), err)
			}
			out[i] = CaseResult{Name: name(c, i), Results: res, Worst: worst(res, selected)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func name(c Case, i int) string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("case %d", i+1)
}

func worst(res damage.Result, selected []string) string {
	best, top := "", -1.0
	for _, m := range selected {
		if t := res[m].Total; t > top {
			best, top = m, t
		}
	}
	return best
}
