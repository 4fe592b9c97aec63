package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"omibyte.io/neoirq/peripheral/firqcb"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the crossbar register field layout",
	Long:  "Print the register, bit offset and width of every crossbar channel's protection and source assignment field.",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			printLayoutTable(out)
		} else {
			printLayoutPlain(out)
		}
	},
}

func printLayoutTable(out io.Writer) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "CH\tWRPR REG\tBITS\tASSIGN REG\tBITS\t")
	for ch := 0; ch < firqcb.NumChannels; ch++ {
		p, a := firqcb.ProtectionField(ch), firqcb.AssignField(ch)
		fmt.Fprintf(w, "%d\t0x%02x\t%d:%d\t0x%02x\t%d:%d\t\n",
			ch, p.Offset, p.Shift+p.Width-1, p.Shift, a.Offset, a.Shift+a.Width-1, a.Shift)
	}
	w.Flush()
}

func printLayoutPlain(out io.Writer) {
	for ch := 0; ch < firqcb.NumChannels; ch++ {
		p, a := firqcb.ProtectionField(ch), firqcb.AssignField(ch)
		fmt.Fprintf(out, "%d wrpr 0x%02x %d %d assign 0x%02x %d %d\n",
			ch, p.Offset, p.Shift, p.Width, a.Offset, a.Shift, a.Width)
	}
}
