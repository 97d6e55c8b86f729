package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"Durability/internal/calc/fatiguedata"
	"Durability/internal/calc/results"
	"Durability/internal/calc/sn"
)

func newSNCmd() *cobra.Command {
	var flags struct {
		data    string
		results string
		methods string
		chart   string
		csv     string
	}
	cmd := &cobra.Command{
		Use:   "sn",
		Short: "Draw S-N curves and scatter bands over fatigue test data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			df, err := os.Open(flags.data)
			if err != nil {
				return err
			}
			defer df.Close()
			data, err := fatiguedata.Parse(filepath.Base(flags.data), df)
			if err != nil {
				return err
			}

			rf, err := os.Open(flags.results)
			if err != nil {
				return err
			}
			defer rf.Close()
			curves, order, err := results.ReadCSV(rf)
			if err != nil {
				return err
			}
			methods := splitList(flags.methods)
			if len(methods) == 0 {
				methods = order
			}

			ev, err := sn.Evaluate(data, curves, methods, nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			s := ev.Stats
			fmt.Fprintf(out, "records: %d (%d fractures, %d runouts) on %d load levels\n", s.Count, s.Fractures, s.Runouts, s.LoadLevels)
			fmt.Fprintf(out, "cycles:  %g .. %g\n", s.MinCycles, s.MaxCycles)

			if flags.chart != "" {
				if err := writeChart(ev.Figure, flags.chart); err != nil {
					return err
				}
			}
			if flags.csv != "" {
				var buf bytes.Buffer
				if err := results.WriteCSV(&buf, curves, methods); err != nil {
					return err
				}
				if err := os.WriteFile(flags.csv, buf.Bytes(), 0o644); err != nil {
					return err
				}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.data, "data", "", "Fatigue test data: load, cycles, fracture per row (required)")
	f.StringVar(&flags.results, "results", "", "Curve parameters in the "+results.FileName+" layout (required)")
	f.StringVar(&flags.methods, "methods", "", "Comma separated methods to draw (default: all columns)")
	f.StringVar(&flags.chart, "chart", "", "Write the chart to this .png or .svg file")
	f.StringVar(&flags.csv, "csv", "", "Write the selected curves to this .csv file")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("results")
	return cmd
}
