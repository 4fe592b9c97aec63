// Package firqcb drives the FIRQ crossbar, which routes internal fast
// interrupt sources to 16 CPU-facing output channels.
//
// The crossbar is configured during system setup and is never touched from
// interrupt context.
package firqcb

import (
	"fmt"

	"omibyte.io/neoirq/mmio"
	"omibyte.io/neoirq/peripheral"
	"omibyte.io/neoirq/runtime/riscv/neorv32"
)

// Level is the write-protection level of a channel.
type Level uint8

const (
	Level0 Level = iota
	Level1
	Level2
	Level3
)

type Crossbar struct {
	regs mmio.Window
	sys  peripheral.Capability
}

func New(regs mmio.Window, sys peripheral.Capability) *Crossbar {
	return &Crossbar{regs: regs, sys: sys}
}

// Available reports whether the crossbar was synthesized. The other methods
// do not check this.
func (c *Crossbar) Available() bool {
	return c.sys.Has(neorv32.SocIoFirqCb)
}

func checkChannel(ch int) error {
	if ch < 0 || ch >= NumChannels {
		return fmt.Errorf("%w: crossbar channel %d", peripheral.ErrOutOfRange, ch)
	}
	return nil
}

func (c *Crossbar) EnableChannel(ch int) error {
	if err := checkChannel(ch); err != nil {
		return err
	}
	mmio.Set(c.regs, regChEnMask, 1<<ch)
	return nil
}

func (c *Crossbar) DisableChannel(ch int) error {
	if err := checkChannel(ch); err != nil {
		return err
	}
	mmio.Clear(c.regs, regChEnMask, 1<<ch)
	return nil
}

func (c *Crossbar) Enabled(ch int) (bool, error) {
	if err := checkChannel(ch); err != nil {
		return false, err
	}
	return c.regs.Load(regChEnMask)&(1<<ch) != 0, nil
}

// SetProtection programs the protection level of channel ch. The field is
// committed cleared before the new level bits are set.
func (c *Crossbar) SetProtection(ch int, level Level) error {
	if err := checkChannel(ch); err != nil {
		return err
	}
	if level > Level3 {
		return fmt.Errorf("%w: protection level %d", peripheral.ErrOutOfRange, level)
	}

	f := ProtectionField(ch)
	mmio.Clear(c.regs, f.Offset, f.Mask())

	var bits uint32
	if level&0x1 != 0 {
		bits |= 0x1 << f.Shift
	}
	if level&0x2 != 0 {
		bits |= 0x2 << f.Shift
	}
	if bits != 0 {
		mmio.Set(c.regs, f.Offset, bits)
	}
	return nil
}

func (c *Crossbar) Protection(ch int) (Level, error) {
	if err := checkChannel(ch); err != nil {
		return Level0, err
	}
	f := ProtectionField(ch)
	return Level(f.Extract(c.regs.Load(f.Offset))), nil
}

// Assign routes internal interrupt source to output channel ch.
func (c *Crossbar) Assign(ch int, source uint8) error {
	if err := checkChannel(ch); err != nil {
		return err
	}
	if source >= NumSources {
		return fmt.Errorf("%w: crossbar source %d", peripheral.ErrOutOfRange, source)
	}
	f := AssignField(ch)
	c.regs.Store(f.Offset, f.Insert(c.regs.Load(f.Offset), uint32(source)))
	return nil
}

func (c *Crossbar) Assignment(ch int) (uint8, error) {
	if err := checkChannel(ch); err != nil {
		return 0, err
	}
	f := AssignField(ch)
	return uint8(f.Extract(c.regs.Load(f.Offset))), nil
}

func (l Level) String() string {
	return fmt.Sprintf("level%d", uint8(l))
}
