package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newMaterialsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "materials",
		Short: "List the material presets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "name\tk_1\tk_2\tND\tSD\tTN\tTS")
			for _, name := range catalog.Names() {
				c, _ := catalog.Lookup(name)
				k2 := "-"
				if c.K2 != nil {
					k2 = fmt.Sprintf("%g", *c.K2)
				}
				fmt.Fprintf(tw, "%s\t%g\t%s\t%g\t%g\t%g\t%g\n", name, c.K1, k2, c.ND, c.SD, c.TN, c.TS)
			}
			return tw.Flush()
		},
	}
}
