package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"Durability/internal/calc/damage"
	"Durability/internal/calc/woehler"
)

func newDamageCmd() *cobra.Command {
	var flags struct {
		spectrum string
		material string
		selected string
		chart    string
		xlsx     string
	}
	cmd := &cobra.Command{
		Use:   "damage",
		Short: "Damage sums of a load spectrum for the Miner variants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			spectrum, err := readSpectrum(flags.spectrum)
			if err != nil {
				return err
			}
			in := damage.Input{Spectrum: spectrum, Material: flags.material, Selected: splitList(flags.selected)}
			methods, _, err := in.Resolve(catalog)
			if err != nil {
				return err
			}
			if len(in.Selected) == 0 {
				in.Selected = damage.MethodNames(methods)
			}
			h := &damage.Handler{Materials: catalog}
			res, err := damage.Summarize(in.Spectrum, methods, in.Selected)
			if err != nil {
				return err
			}
			slog.Debug("damage evaluated", "levels", len(in.Spectrum), "methods", in.Selected)

			printDamage(cmd, in.Spectrum, methods, in.Selected, res)

			if flags.chart != "" {
				fig, err := h.Figure(in, methods)
				if err != nil {
					return err
				}
				if err := writeChart(fig, flags.chart); err != nil {
					return err
				}
			}
			if flags.xlsx != "" {
				var buf bytes.Buffer
				if err := damage.WriteXLSX(&buf, in.Spectrum, res, in.Selected); err != nil {
					return err
				}
				if err := os.WriteFile(flags.xlsx, buf.Bytes(), 0o644); err != nil {
					return err
				}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.spectrum, "spectrum", "", "Load spectrum file, amplitude and cycles per row (default: example spectrum)")
	f.StringVar(&flags.material, "material", "default", "Material preset")
	f.StringVar(&flags.selected, "select", "", "Comma separated methods (default: all)")
	f.StringVar(&flags.chart, "chart", "", "Write the chart to this .png or .svg file")
	f.StringVar(&flags.xlsx, "xlsx", "", "Write the table to this .xlsx file")
	return cmd
}

func printDamage(cmd *cobra.Command, spectrum damage.Spectrum, methods map[string]woehler.Curve, selected []string, res damage.Result) {
	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "level\tamplitude\tcycles")
	for _, m := range selected {
		fmt.Fprintf(tw, "\t%s", m)
	}
	fmt.Fprintln(tw)
	for i, l := range spectrum {
		fmt.Fprintf(tw, "%d\t%g\t%g", i+1, l.Amplitude, l.Cycles)
		for _, m := range selected {
			fmt.Fprintf(tw, "\t%.3e", res[m].PerLevel[i])
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
	fmt.Fprintln(out)
	for _, m := range selected {
		fmt.Fprintln(out, damage.TotalLine(m, res[m].Total))
	}
}
