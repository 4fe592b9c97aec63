package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"omibyte.io/neoirq/peripheral/xirq"
	"omibyte.io/neoirq/runtime/riscv/neorv32"
	"omibyte.io/neoirq/sim"
)

var (
	dispatchOpts = struct {
		unhandled []int
		passes    int
	}{}

	dispatchCmd = &cobra.Command{
		Use:   "dispatch [lines...]",
		Short: "Raise external interrupt lines on the SoC model and trace their dispatch",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines := []int{3, 7}
			if len(args) > 0 {
				lines = lines[:0]
				for _, arg := range args {
					ch, err := strconv.Atoi(arg)
					if err != nil {
						return fmt.Errorf("invalid line %q: %w", arg, err)
					}
					lines = append(lines, ch)
				}
			}

			t, err := target()
			if err != nil {
				return err
			}

			soc := sim.NewSoC(t)
			ctrl := xirq.New(trace("xirq", soc.XIRQ, logger), neorv32.NewSysinfo(soc.Sysinfo), soc.Line())
			if err := ctrl.Setup(); err != nil {
				return err
			}
			logger.Info("xirq ready", "target", t.Name, "channels", ctrl.ChannelCount())

			var order []int
			for _, ch := range lines {
				ch := ch
				if err := ctrl.Install(ch, func() {
					logger.Debug("handler", "channel", ch)
					order = append(order, ch)
				}); err != nil {
					return err
				}
			}
			raised := append(append([]int(nil), lines...), dispatchOpts.unhandled...)
			for _, ch := range raised {
				if err := ctrl.EnableChannel(ch); err != nil {
					return err
				}
			}

			var g errgroup.Group
			for _, ch := range raised {
				ch := ch
				g.Go(func() error {
					if !soc.XIRQ.Raise(ch) {
						return fmt.Errorf("line %d not implemented on %s", ch, t.Name)
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			ctrl.GlobalEnable()
			soc.EnableInterrupts()

			traps := soc.Service(func() {
				ch, handled := ctrl.Dispatch()
				if !handled {
					logger.Warn("no handler installed", "channel", ch)
				}
			}, dispatchOpts.passes)

			fmt.Fprintf(cmd.OutOrStdout(), "traps: %d\nhandled: %v\n", traps, order)
			if soc.Line().Pending() {
				logger.Warn("requests still pending", "eip", hex32(soc.XIRQ.Pending()))
			}
			return nil
		},
	}
)

func init() {
	dispatchCmd.Flags().IntSliceVarP(&dispatchOpts.unhandled, "unhandled", "u", nil, "lines to raise without a handler")
	dispatchCmd.Flags().IntVar(&dispatchOpts.passes, "passes", 64, "maximum number of traps to take")
}
