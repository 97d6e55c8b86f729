package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"Durability/internal/calc/allowable"
	"Durability/internal/calc/damage"
)

func newAllowableCmd() *cobra.Command {
	var flags struct {
		spectrum string
		material string
		method   string
		target   float64
	}
	cmd := &cobra.Command{
		Use:   "allowable",
		Short: "Amplitude factor at which the spectrum reaches a damage sum",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			spectrum, err := readSpectrum(flags.spectrum)
			if err != nil {
				return err
			}
			h := &allowable.Handler{Materials: catalog}
			res, err := h.Solve(&allowable.Input{
				Input:  damage.Input{Spectrum: spectrum, Material: flags.material},
				Method: flags.method,
				Target: flags.target,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "method:  %s\n", res.Method)
			fmt.Fprintf(out, "target:  %g\n", res.Target)
			fmt.Fprintf(out, "factor:  %.6g\n", res.Factor)
			fmt.Fprintf(out, "damage:  %.6g\n", res.Total)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.spectrum, "spectrum", "", "Load spectrum file (default: example spectrum)")
	f.StringVar(&flags.material, "material", "default", "Material preset")
	f.StringVar(&flags.method, "method", allowable.DefaultMethod, "Miner variant to scale against")
	f.Float64Var(&flags.target, "target", allowable.DefaultTarget, "Damage sum to reach")
	return cmd
}
