package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"omibyte.io/neoirq/targets"
)

var (
	rootOpts = struct {
		target  string
		verbose bool
	}{}

	logger *slog.Logger

	rootCmd = &cobra.Command{
		Use:           "neoirq",
		Short:         "Configure and exercise NEORV32 interrupt peripherals",
		Long:          "neoirq programs the XIRQ controller and the FIRQ crossbar of a NEORV32 SoC model and traces interrupt dispatch.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(os.Stderr, rootOpts.verbose)
		},
	}
)

func init() {
	env := Environment()
	rootCmd.PersistentFlags().StringVarP(&rootOpts.target, "target", "t", env.Value("NEOIRQ_TARGET"), "target SoC. Default: $NEOIRQ_TARGET")
	rootCmd.PersistentFlags().BoolVarP(&rootOpts.verbose, "verbose", "v", false, "log register accesses")

	rootCmd.AddCommand(targetsCmd, envCmd, layoutCmd, routeCmd, dispatchCmd, svdCmd)
}

func target() (targets.TargetInfo, error) {
	return targets.All().Find(rootOpts.target)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "neoirq:", err)
		os.Exit(1)
	}
}
