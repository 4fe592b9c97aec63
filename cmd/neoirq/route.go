package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"omibyte.io/neoirq/peripheral"
	"omibyte.io/neoirq/peripheral/firqcb"
	"omibyte.io/neoirq/routing"
	"omibyte.io/neoirq/runtime/riscv/neorv32"
	"omibyte.io/neoirq/sim"
	"omibyte.io/neoirq/targets"
)

var routeCmd = &cobra.Command{
	Use:   "route [plan.yaml]",
	Short: "Validate a crossbar routing plan and apply it to the SoC model",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := Environment().Value("NEOIRQ_PLAN")
		if len(args) > 0 {
			path = args[0]
		}
		if len(path) == 0 {
			return errors.New("no routing plan given")
		}

		plan, err := routing.LoadFile(path)
		if err != nil {
			return err
		}

		t, err := planTarget(cmd, plan)
		if err != nil {
			return err
		}
		logger.Info("applying routing plan", "plan", path, "target", t.Name, "routes", len(plan.Routes))

		soc := sim.NewSoC(t)
		cb := firqcb.New(trace("firqcb", soc.Crossbar, logger), neorv32.NewSysinfo(soc.Sysinfo))
		if !cb.Available() {
			return fmt.Errorf("%w: %s has no FIRQ crossbar", peripheral.ErrUnavailable, t.Name)
		}
		if err := plan.Apply(cb, t); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fanout := plan.Fanout(t)
		sources := maps.Keys(fanout)
		slices.Sort(sources)
		for _, source := range sources {
			fmt.Fprintf(out, "%-10s -> %v\n", source, fanout[source])
		}

		names := []string{"CH_EN_MASK", "CH_WRPR_MASK[0]", "CH_WRPR_MASK[1]", "CH_ASSIGN[0]", "CH_ASSIGN[1]", "CH_ASSIGN[2]"}
		for i, value := range soc.Crossbar.Registers() {
			fmt.Fprintf(out, "%-16s 0x%08x\n", names[i], value)
		}
		return nil
	},
}

// planTarget prefers an explicit --target over the target named in the plan.
func planTarget(cmd *cobra.Command, plan *routing.Plan) (targets.TargetInfo, error) {
	if !cmd.Flags().Changed("target") && len(plan.Target) > 0 {
		return targets.All().Find(plan.Target)
	}
	return target()
}
