// fatigue evaluates load spectra and S-N test data from the command line.
//
// Usage:
//
//	fatigue damage    [--spectrum=<csv|xlsx>] [--material=<name>] [--select=a,b] [--chart=<png|svg>] [--xlsx=<path>]
//	fatigue allowable [--spectrum=<csv|xlsx>] [--material=<name>] [--method=<name>] [--target=1]
//	fatigue sn        --data=<csv|xlsx> --results=<csv> [--methods=a,b] [--chart=<png|svg>] [--csv=<path>]
//	fatigue materials [--materials=<yaml>]
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "fatigue",
		Short: "Damage accumulation and S-N curve evaluation",
		Long:  "fatigue sums Palmgren-Miner damage of block load spectra and draws\nS-N curves with their scatter bands over fatigue test data.",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr")
	root.PersistentFlags().String("materials", "materials.yaml", "Material preset catalog (YAML)")

	root.AddCommand(newDamageCmd())
	root.AddCommand(newAllowableCmd())
	root.AddCommand(newSNCmd())
	root.AddCommand(newMaterialsCmd())
	root.Version = version
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
