package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"omibyte.io/neoirq/targets"
)

var (
	targetsCmd = &cobra.Command{
		Use:   "targets",
		Short: "List the known SoC targets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tALIASES\tSOC\tXIRQ\tCHANNELS\tFEATURES")
			for _, t := range targets.All() {
				fmt.Fprintf(w, "%s\t%s\t0x%08x\t0x%08x\t%d\t%s\n",
					t.Name, strings.Join(t.Aliases, ","), t.SocWord(), t.XirqBase, t.XirqChannels, strings.Join(t.Features, ","))
			}
			w.Flush()
		},
	}

	envCmd = &cobra.Command{
		Use:   "env",
		Short: "Print neoirq environment information",
		Run: func(cmd *cobra.Command, args []string) {
			Environment().Print()
		},
	}
)
