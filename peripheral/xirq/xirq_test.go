package xirq

import (
	"errors"
	"testing"

	"omibyte.io/neoirq/mmio"
	"omibyte.io/neoirq/peripheral"
	"omibyte.io/neoirq/runtime/riscv/neorv32"
	"omibyte.io/neoirq/sim"
	"omibyte.io/neoirq/targets"
)

type soc uint32

func (s soc) Has(bit uint) bool { return uint32(s)&(1<<bit) != 0 }

func newSimulated(t *testing.T, name string) (*Controller, *sim.SoC) {
	t.Helper()
	target, err := targets.All().Find(name)
	if err != nil {
		t.Fatal(err)
	}
	s := sim.NewSoC(target)
	c := New(s.XIRQ, neorv32.NewSysinfo(s.Sysinfo), s.Line())
	if err := c.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	return c, s
}

func TestSetup(t *testing.T) {
	regs := mmio.NewMemory(4)
	regs.Poke(regEIE, 0xDEAD_BEEF)
	regs.Poke(regEIP, 0x0000_00F0)
	line := neorv32.NewFIRQ(neorv32.FirqXirq, sim.NewCSRFile())
	c := New(regs, soc(1<<neorv32.SocIoXirq), line)

	if err := c.Install(4, func() {}); err != nil {
		t.Fatal(err)
	}
	if err := c.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if regs.Load(regEIE) != 0 || regs.Load(regEIP) != 0 {
		t.Errorf("EIE = %#x, EIP = %#x after Setup", regs.Load(regEIE), regs.Load(regEIP))
	}
	for ch := 0; ch < MaxChannels; ch++ {
		if c.Installed(ch) {
			t.Errorf("channel %d still installed after Setup", ch)
		}
	}
}

func TestSetupUnavailable(t *testing.T) {
	regs := mmio.NewMemory(4)
	line := neorv32.NewFIRQ(neorv32.FirqXirq, sim.NewCSRFile())
	c := New(regs, soc(1<<neorv32.SocIoFirqCb), line)

	if c.Available() {
		t.Fatal("controller should not be available")
	}
	if err := c.Setup(); !errors.Is(err, peripheral.ErrUnavailable) {
		t.Errorf("Setup() = %v, want ErrUnavailable", err)
	}
	if len(regs.Writes()) != 0 {
		t.Errorf("Setup wrote registers: %v", regs.Writes())
	}
	if c.ChannelCount() != 0 {
		t.Error("ChannelCount on absent hardware should be 0")
	}
}

func TestSetupOnMinimalTarget(t *testing.T) {
	target, err := targets.All().Find("minimal")
	if err != nil {
		t.Fatal(err)
	}
	s := sim.NewSoC(target)
	c := New(s.XIRQ, neorv32.NewSysinfo(s.Sysinfo), s.Line())
	if err := c.Setup(); !errors.Is(err, peripheral.ErrUnavailable) {
		t.Errorf("Setup() = %v, want ErrUnavailable", err)
	}
	if s.XIRQ.Writes() != 0 {
		t.Errorf("Setup made %d register writes", s.XIRQ.Writes())
	}
}

func TestInstall(t *testing.T) {
	c, _ := newSimulated(t, "default")

	var first, second int
	if err := c.Install(6, func() { first++ }); err != nil {
		t.Fatal(err)
	}
	if err := c.Install(6, func() { second++ }); !errors.Is(err, peripheral.ErrAlreadyInstalled) {
		t.Errorf("second Install = %v, want ErrAlreadyInstalled", err)
	}
	c.handlers[6]()
	if first != 1 || second != 0 {
		t.Errorf("table no longer holds the first handler")
	}

	if on, _ := c.Enabled(6); on {
		t.Error("Install enabled the channel")
	}

	if err := c.Uninstall(6); err != nil {
		t.Fatal(err)
	}
	if err := c.Uninstall(6); !errors.Is(err, peripheral.ErrNotInstalled) {
		t.Errorf("second Uninstall = %v, want ErrNotInstalled", err)
	}
	if err := c.Install(6, func() { second++ }); err != nil {
		t.Errorf("Install after Uninstall: %v", err)
	}
	if err := c.Install(7, nil); !errors.Is(err, peripheral.ErrInvalidConfig) {
		t.Errorf("Install(nil) = %v", err)
	}
}

func TestUninstallKeepsChannelEnabled(t *testing.T) {
	c, _ := newSimulated(t, "default")
	if err := c.Install(2, func() {}); err != nil {
		t.Fatal(err)
	}
	if err := c.EnableChannel(2); err != nil {
		t.Fatal(err)
	}
	if err := c.Uninstall(2); err != nil {
		t.Fatal(err)
	}
	if on, _ := c.Enabled(2); !on {
		t.Error("Uninstall disabled the channel")
	}
}

func TestOutOfRange(t *testing.T) {
	regs := mmio.NewMemory(4)
	line := neorv32.NewFIRQ(neorv32.FirqXirq, sim.NewCSRFile())
	c := New(regs, soc(1<<neorv32.SocIoXirq), line)

	tests := []struct {
		name string
		call func() error
	}{
		{"enable32", func() error { return c.EnableChannel(32) }},
		{"enableNegative", func() error { return c.EnableChannel(-1) }},
		{"disable32", func() error { return c.DisableChannel(32) }},
		{"clearPending", func() error { return c.ClearPending(40) }},
		{"install", func() error { return c.Install(32, func() {}) }},
		{"uninstall", func() error { return c.Uninstall(-3) }},
		{"pending", func() error { _, err := c.Pending(32); return err }},
		{"enabled", func() error { _, err := c.Enabled(-1); return err }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := test.call(); !errors.Is(err, peripheral.ErrOutOfRange) {
				t.Errorf("got %v, want ErrOutOfRange", err)
			}
		})
	}
	if len(regs.Writes()) != 0 {
		t.Errorf("rejected calls wrote registers: %v", regs.Writes())
	}
	if c.Installed(32) {
		t.Error("Installed(32) = true")
	}
}

func TestChannelCount(t *testing.T) {
	tests := []struct {
		target string
		want   int
	}{
		{"neorv32-xirq32", 32},
		{"neorv32-xirq8", 8},
	}
	for _, test := range tests {
		t.Run(test.target, func(t *testing.T) {
			c, s := newSimulated(t, test.target)
			if err := c.EnableChannel(1); err != nil {
				t.Fatal(err)
			}
			c.GlobalEnable()

			if got := c.ChannelCount(); got != test.want {
				t.Errorf("ChannelCount() = %d, want %d", got, test.want)
			}
			if got := s.XIRQ.Load(regEIE); got != 1<<1 {
				t.Errorf("EIE = %#x after probe, want 0x2", got)
			}
			if !s.Line().Enabled() {
				t.Error("probe left the CPU line disabled")
			}
		})
	}
}

func TestGlobalEnable(t *testing.T) {
	c, s := newSimulated(t, "default")
	if err := c.EnableChannel(3); err != nil {
		t.Fatal(err)
	}

	c.GlobalEnable()
	if s.CSR.Read(neorv32.CsrMie) != 1<<(neorv32.FirqBase+neorv32.FirqXirq) {
		t.Errorf("mie = %#x", s.CSR.Read(neorv32.CsrMie))
	}
	c.GlobalDisable()
	if s.CSR.Read(neorv32.CsrMie) != 0 {
		t.Errorf("mie = %#x", s.CSR.Read(neorv32.CsrMie))
	}
	if on, _ := c.Enabled(3); !on {
		t.Error("global disable touched channel state")
	}
}

func TestDispatchPriority(t *testing.T) {
	c, s := newSimulated(t, "default")

	calls := map[int]int{}
	for _, ch := range []int{3, 7} {
		ch := ch
		if err := c.Install(ch, func() { calls[ch]++ }); err != nil {
			t.Fatal(err)
		}
		if err := c.EnableChannel(ch); err != nil {
			t.Fatal(err)
		}
	}
	s.XIRQ.Raise(7)
	s.XIRQ.Raise(3)

	ch, handled := c.Dispatch()
	if ch != 3 || !handled {
		t.Fatalf("Dispatch() = %d, %v, want 3, true", ch, handled)
	}
	if calls[3] != 1 || calls[7] != 0 {
		t.Errorf("calls = %v", calls)
	}
	if p, _ := c.Pending(3); p {
		t.Error("channel 3 still pending")
	}
	if p, _ := c.Pending(7); !p {
		t.Error("channel 7 no longer pending")
	}
	if !s.Line().Pending() {
		t.Error("CPU request dropped while channel 7 is pending")
	}

	ch, handled = c.Dispatch()
	if ch != 7 || !handled || calls[7] != 1 || calls[3] != 1 {
		t.Errorf("second Dispatch() = %d, %v, calls = %v", ch, handled, calls)
	}
	if s.Line().Pending() {
		t.Error("CPU request still asserted")
	}
}

func TestDispatchWithoutHandler(t *testing.T) {
	c, s := newSimulated(t, "default")
	if err := c.EnableChannel(12); err != nil {
		t.Fatal(err)
	}
	s.XIRQ.Raise(12)

	ch, handled := c.Dispatch()
	if ch != 12 || handled {
		t.Errorf("Dispatch() = %d, %v, want 12, false", ch, handled)
	}
	if p, _ := c.Pending(12); p {
		t.Error("pending bit not cleared")
	}
}

func TestClearPending(t *testing.T) {
	c, s := newSimulated(t, "default")
	for _, ch := range []int{0, 5, 31} {
		if err := c.EnableChannel(ch); err != nil {
			t.Fatal(err)
		}
		s.XIRQ.Raise(ch)
	}
	if err := c.ClearPending(5); err != nil {
		t.Fatal(err)
	}
	if got := s.XIRQ.Load(regEIP); got != 1|1<<31 {
		t.Errorf("EIP = %#x, want 0x80000001", got)
	}
}

func TestTrapLoop(t *testing.T) {
	c, s := newSimulated(t, "default")

	var order []int
	for _, ch := range []int{9, 1, 20} {
		ch := ch
		if err := c.Install(ch, func() { order = append(order, ch) }); err != nil {
			t.Fatal(err)
		}
		if err := c.EnableChannel(ch); err != nil {
			t.Fatal(err)
		}
		s.XIRQ.Raise(ch)
	}
	c.GlobalEnable()
	s.EnableInterrupts()

	if n := s.Service(c.Handle, 10); n != 3 {
		t.Errorf("Service took %d traps, want 3", n)
	}
	want := []int{1, 9, 20}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
