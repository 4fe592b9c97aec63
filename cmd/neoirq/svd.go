package main

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"omibyte.io/neoirq/peripheral/firqcb"
	"omibyte.io/neoirq/peripheral/xirq"
	"omibyte.io/neoirq/runtime/riscv/neorv32"
	"omibyte.io/neoirq/svd"
	"omibyte.io/neoirq/targets"
)

var svdCmd = &cobra.Command{
	Use:   "svd",
	Short: "Write a CMSIS-SVD description of the target's interrupt peripherals",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := target()
		if err != nil {
			return err
		}
		return writeSVD(cmd.OutOrStdout(), describe(t))
	},
}

func writeSVD(out io.Writer, device svd.DeviceElement) error {
	if _, err := io.WriteString(out, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(out)
	enc.Indent("", "  ")
	if err := enc.Encode(device); err != nil {
		return err
	}
	_, err := io.WriteString(out, "\n")
	return err
}

func describe(t targets.TargetInfo) svd.DeviceElement {
	device := svd.DeviceElement{
		SchemaVersion:    "1.3",
		Name:             t.Name,
		Description:      "NEORV32 interrupt peripherals",
		Version:          "1.0",
		CPU:              svd.CPUElement{Name: "other", Revision: "r0p0", Endian: "little"},
		AddressableWidth: 8,
		BitWidth:         32,
		RegisterSize:     32,
		DefaultAccess:    "read-write",
		ResetMask:        0xFFFF_FFFF,
	}
	if t.Has("xirq") {
		device.Peripherals.Elements = append(device.Peripherals.Elements, describeXirq(t))
	}
	if t.Has("firqcb") {
		device.Peripherals.Elements = append(device.Peripherals.Elements, describeFirqCb(t))
	}
	return device
}

func describeXirq(t targets.TargetInfo) svd.PeripheralElement {
	channels := svd.Integer(t.XirqChannels)
	return svd.PeripheralElement{
		Name:         "XIRQ",
		Description:  "External interrupt controller",
		BaseAddress:  svd.Integer(t.XirqBase),
		AddressBlock: svd.AddressBlockElement{Size: 16, Usage: "registers"},
		Interrupts: []svd.InterruptElement{{
			Name:        "XIRQ",
			Description: "Aggregated external interrupt request",
			Value:       svd.Integer(neorv32.FirqBase + int(t.XirqFirq)),
		}},
		Registers: svd.RegistersElement{RegisterElements: []svd.RegisterElement{
			{
				Name: "EIE", Description: "Channel enable", AddressOffset: 0x0, Size: 32,
				Fields: svd.FieldElements{Elements: []svd.FieldElement{
					{Name: "EIE", Description: "Bit n enables channel n", BitWidth: channels},
				}},
			},
			{
				Name: "EIP", Description: "Channel pending, write 0 to clear", AddressOffset: 0x4, Size: 32,
				Fields: svd.FieldElements{Elements: []svd.FieldElement{
					{Name: "EIP", Description: "Bit n is set while channel n is pending", BitWidth: channels},
				}},
			},
			{
				Name: "ESC", Description: "Active source, write to acknowledge", AddressOffset: 0x8, Size: 32,
				Fields: svd.FieldElements{Elements: []svd.FieldElement{
					{Name: "SRC", Description: "Highest-priority pending channel", BitWidth: svd.Integer(bitsFor(xirq.MaxChannels))},
				}},
			},
		}},
	}
}

func describeFirqCb(t targets.TargetInfo) svd.PeripheralElement {
	levels := &svd.EnumeratedValuesElement{Name: "WRPR"}
	for l := firqcb.Level0; l <= firqcb.Level3; l++ {
		levels.Elements = append(levels.Elements, svd.EnumeratedValueElement{
			Name:        fmt.Sprintf("LEVEL%d", l),
			Description: fmt.Sprintf("Protection level %d", l),
			Value:       svd.Integer(l),
		})
	}

	regs := []svd.RegisterElement{{Name: "CH_EN_MASK", Description: "Output channel enable", Size: 32}}
	for ch := 0; ch < firqcb.NumChannels; ch++ {
		regs[0].Fields.Elements = append(regs[0].Fields.Elements, svd.FieldElement{
			Name: fmt.Sprintf("CH%d_EN", ch), Description: fmt.Sprintf("Channel %d forwards its source", ch),
			BitOffset: svd.Integer(ch), BitWidth: 1,
		})
	}

	field := func(name string, f firqcb.Field, ch int, desc string) {
		i, ok := svd.RegistersElement{RegisterElements: regs}.Find(name)
		if !ok {
			regs = append(regs, svd.RegisterElement{Name: name, AddressOffset: svd.Integer(f.Offset), Size: 32})
			i = len(regs) - 1
		}
		fe := svd.FieldElement{
			Name: fmt.Sprintf("CH%d_%s", ch, desc), Description: fmt.Sprintf("Channel %d %s", ch, desc),
			BitOffset: svd.Integer(f.Shift), BitWidth: svd.Integer(f.Width),
		}
		if desc == "WRPR" {
			fe.EnumeratedValues = levels
		}
		regs[i].Fields.Elements = append(regs[i].Fields.Elements, fe)
	}
	for ch := 0; ch < firqcb.NumChannels; ch++ {
		f := firqcb.ProtectionField(ch)
		field(fmt.Sprintf("CH_WRPR_MASK%d", (f.Offset-0x4)/4), f, ch, "WRPR")
	}
	for ch := 0; ch < firqcb.NumChannels; ch++ {
		f := firqcb.AssignField(ch)
		field(fmt.Sprintf("CH_ASSIGN%d", (f.Offset-0xC)/4), f, ch, "SRC")
	}

	return svd.PeripheralElement{
		Name:         "FIRQ_CB",
		Description:  "Fast interrupt crossbar",
		BaseAddress:  svd.Integer(t.FirqCbBase),
		AddressBlock: svd.AddressBlockElement{Size: 24, Usage: "registers"},
		Registers:    svd.RegistersElement{RegisterElements: regs},
	}
}

func bitsFor(n int) int {
	b := 0
	for 1<<b < n {
		b++
	}
	return b
}
