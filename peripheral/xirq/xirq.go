// Package xirq drives the external interrupt controller, which multiplexes up
// to 32 external interrupt lines onto a single CPU fast interrupt.
//
// Each channel moves through three states: uninstalled, installed but
// disabled, and installed and enabled. Only the last one is armed. The driver
// does not enforce the order of Install and EnableChannel; disable a channel
// before changing its handler slot, as Dispatch may run at any point between
// two ordinary calls.
package xirq

import (
	"fmt"
	"math/bits"

	"omibyte.io/neoirq/mmio"
	"omibyte.io/neoirq/peripheral"
	"omibyte.io/neoirq/runtime/riscv/neorv32"
)

// Register offsets
const (
	regEIE = 0x0 // channel enable, bit n = channel n (RW)
	regEIP = 0x4 // channel pending, writing 0 clears a bit and 1 leaves it (RW)
	regESC = 0x8 // highest-priority pending channel, any write acknowledges (RW)
	// 0xC is reserved
)

const (
	MaxChannels = 32

	escSourceMask = MaxChannels - 1
)

// Handler services one channel. A nil Handler is an empty table slot.
type Handler func()

type Controller struct {
	regs     mmio.Window
	sys      peripheral.Capability
	line     peripheral.Interrupt
	handlers [MaxChannels]Handler
}

// New returns a controller for the registers at regs. line is the CPU fast
// interrupt the controller's aggregated request is wired to.
func New(regs mmio.Window, sys peripheral.Capability, line peripheral.Interrupt) *Controller {
	return &Controller{regs: regs, sys: sys, line: line}
}

func (c *Controller) Available() bool {
	return c.sys.Has(neorv32.SocIoXirq)
}

// Setup empties the handler table, disables every channel and clears all
// pending requests. Nothing is written when the controller is absent.
func (c *Controller) Setup() error {
	if !c.Available() {
		return fmt.Errorf("%w: xirq", peripheral.ErrUnavailable)
	}

	for i := range c.handlers {
		c.handlers[i] = nil
	}
	c.regs.Store(regEIE, 0)
	c.regs.Store(regEIP, 0)
	c.regs.Store(regESC, 0)
	return nil
}

// GlobalEnable lets the aggregated request reach the CPU.
func (c *Controller) GlobalEnable() {
	c.line.EnableIRQ()
}

func (c *Controller) GlobalDisable() {
	c.line.DisableIRQ()
}

// ChannelCount probes the number of implemented channels. Enable bits of
// channels that are not implemented read back as zero. EIE and the CPU line
// are restored afterwards.
func (c *Controller) ChannelCount() int {
	if !c.Available() {
		return 0
	}

	enabled := c.line.Enabled()
	c.line.DisableIRQ()

	eie := c.regs.Load(regEIE)
	c.regs.Store(regEIE, 0xFFFF_FFFF)
	n := bits.OnesCount32(c.regs.Load(regEIE))
	c.regs.Store(regEIE, eie)

	if enabled {
		c.line.EnableIRQ()
	}
	return n
}

func checkChannel(ch int) error {
	if ch < 0 || ch >= MaxChannels {
		return fmt.Errorf("%w: xirq channel %d", peripheral.ErrOutOfRange, ch)
	}
	return nil
}

func (c *Controller) EnableChannel(ch int) error {
	if err := checkChannel(ch); err != nil {
		return err
	}
	mmio.Set(c.regs, regEIE, 1<<ch)
	return nil
}

func (c *Controller) DisableChannel(ch int) error {
	if err := checkChannel(ch); err != nil {
		return err
	}
	mmio.Clear(c.regs, regEIE, 1<<ch)
	return nil
}

func (c *Controller) Enabled(ch int) (bool, error) {
	if err := checkChannel(ch); err != nil {
		return false, err
	}
	return c.regs.Load(regEIE)&(1<<ch) != 0, nil
}

func (c *Controller) Pending(ch int) (bool, error) {
	if err := checkChannel(ch); err != nil {
		return false, err
	}
	return c.regs.Load(regEIP)&(1<<ch) != 0, nil
}

// ClearPending drops the pending request of channel ch. Until it is cleared
// the controller keeps reporting ch as the active source.
func (c *Controller) ClearPending(ch int) error {
	if err := checkChannel(ch); err != nil {
		return err
	}
	c.clearPending(ch)
	return nil
}

func (c *Controller) clearPending(ch int) {
	c.regs.Store(regEIP, ^(uint32(1) << ch))
}

// Install binds h to channel ch. The channel is not enabled. An occupied slot
// must be uninstalled first.
func (c *Controller) Install(ch int, h Handler) error {
	if err := checkChannel(ch); err != nil {
		return err
	}
	if h == nil {
		return fmt.Errorf("%w: nil handler for xirq channel %d", peripheral.ErrInvalidConfig, ch)
	}
	if c.handlers[ch] != nil {
		return fmt.Errorf("%w: xirq channel %d", peripheral.ErrAlreadyInstalled, ch)
	}
	c.handlers[ch] = h
	return nil
}

// Uninstall empties the slot of channel ch. The channel stays enabled if it
// was; disable it first.
func (c *Controller) Uninstall(ch int) error {
	if err := checkChannel(ch); err != nil {
		return err
	}
	if c.handlers[ch] == nil {
		return fmt.Errorf("%w: xirq channel %d", peripheral.ErrNotInstalled, ch)
	}
	c.handlers[ch] = nil
	return nil
}

func (c *Controller) Installed(ch int) bool {
	return checkChannel(ch) == nil && c.handlers[ch] != nil
}

// Dispatch services the highest-priority pending channel and returns it.
// handled is false when the channel had no handler; its request is cleared
// regardless. One channel is serviced per call. The trap path re-enters while
// more requests are pending.
func (c *Controller) Dispatch() (ch int, handled bool) {
	c.line.Acknowledge()

	ch = int(c.regs.Load(regESC) & escSourceMask)
	if h := c.handlers[ch]; h != nil {
		h()
		handled = true
	}

	c.clearPending(ch)
	c.regs.Store(regESC, 0)
	return ch, handled
}

// Handle is Dispatch in the shape of a trap vector entry.
func (c *Controller) Handle() {
	c.Dispatch()
}
