package firqcb

import (
	"errors"
	"reflect"
	"testing"

	"omibyte.io/neoirq/mmio"
	"omibyte.io/neoirq/peripheral"
	"omibyte.io/neoirq/runtime/riscv/neorv32"
)

type soc uint32

func (s soc) Has(bit uint) bool { return uint32(s)&(1<<bit) != 0 }

func newCrossbar() (*Crossbar, *mmio.Memory) {
	regs := mmio.NewMemory(6)
	return New(regs, soc(1<<neorv32.SocIoFirqCb)), regs
}

func TestAvailable(t *testing.T) {
	regs := mmio.NewMemory(6)
	if !New(regs, soc(1<<neorv32.SocIoFirqCb)).Available() {
		t.Error("crossbar should be available")
	}
	if New(regs, soc(1<<neorv32.SocIoXirq)).Available() {
		t.Error("crossbar should not be available")
	}
}

func TestEnableChannel(t *testing.T) {
	for ch := 0; ch < NumChannels; ch++ {
		cb, regs := newCrossbar()
		regs.Poke(regChEnMask, 0x0000_8421&^(1<<ch))
		before := regs.Load(regChEnMask)

		if err := cb.EnableChannel(ch); err != nil {
			t.Fatalf("EnableChannel(%d): %v", ch, err)
		}
		if _, err := cb.Protection(ch); err != nil {
			t.Fatalf("Protection(%d): %v", ch, err)
		}
		if got := regs.Load(regChEnMask); got != before|1<<ch {
			t.Errorf("channel %d: CH_EN_MASK = %#x, want %#x", ch, got, before|1<<ch)
		}

		if err := cb.DisableChannel(ch); err != nil {
			t.Fatalf("DisableChannel(%d): %v", ch, err)
		}
		if got := regs.Load(regChEnMask); got != before {
			t.Errorf("channel %d: CH_EN_MASK = %#x after disable, want %#x", ch, got, before)
		}
		if on, _ := cb.Enabled(ch); on {
			t.Errorf("channel %d still enabled", ch)
		}
	}
}

func TestOutOfRange(t *testing.T) {
	cb, regs := newCrossbar()
	for i := range regs.Snapshot() {
		regs.Poke(uintptr(i*4), 0x1234_5678)
	}
	before := regs.Snapshot()

	tests := []struct {
		name string
		call func() error
	}{
		{"enable16", func() error { return cb.EnableChannel(16) }},
		{"enableNegative", func() error { return cb.EnableChannel(-1) }},
		{"disable16", func() error { return cb.DisableChannel(16) }},
		{"protection16", func() error { return cb.SetProtection(16, Level1) }},
		{"protectionNegative", func() error { return cb.SetProtection(-1, Level3) }},
		{"protectionLevel", func() error { return cb.SetProtection(3, Level(4)) }},
		{"assign16", func() error { return cb.Assign(16, 0) }},
		{"assignSource", func() error { return cb.Assign(0, NumSources) }},
		{"getProtection", func() error { _, err := cb.Protection(99); return err }},
		{"assignment", func() error { _, err := cb.Assignment(-5); return err }},
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
	if !reflect.DeepEqual(regs.Snapshot(), before) {
		t.Errorf("registers changed: %#v", regs.Snapshot())
	}
}

func TestProtection(t *testing.T) {
	levels := []Level{Level0, Level1, Level2, Level3}
	for ch := 0; ch < NumChannels; ch++ {
		for _, level := range levels {
			cb, regs := newCrossbar()
			// Every other channel starts at level 3 so stale bits would show.
			regs.Poke(regChWrpr0, 0xFFFF_FFFF)
			regs.Poke(regChWrpr1, 0xFFFF_FFFF)

			if err := cb.SetProtection(ch, level); err != nil {
				t.Fatalf("SetProtection(%d, %v): %v", ch, level, err)
			}
			if got, _ := cb.Protection(ch); got != level {
				t.Errorf("channel %d: Protection() = %v, want %v", ch, got, level)
			}
			for other := 0; other < NumChannels; other++ {
				if other == ch {
					continue
				}
				if got, _ := cb.Protection(other); got != Level3 {
					t.Errorf("channel %d: setting it changed channel %d to %v", ch, other, got)
				}
			}
		}
	}
}

func TestProtectionTransition(t *testing.T) {
	cb, regs := newCrossbar()
	if err := cb.SetProtection(9, Level3); err != nil {
		t.Fatal(err)
	}
	if err := cb.SetProtection(9, Level1); err != nil {
		t.Fatal(err)
	}
	if got := regs.Load(regChWrpr1); got != 0x1<<2 {
		t.Errorf("CH_WRPR_MASK[1] = %#x, want 0x4", got)
	}
	if err := cb.SetProtection(9, Level0); err != nil {
		t.Fatal(err)
	}
	if got := regs.Load(regChWrpr1); got != 0 {
		t.Errorf("CH_WRPR_MASK[1] = %#x, want 0", got)
	}
	if regs.Load(regChWrpr0) != 0 {
		t.Error("channel 9 touched CH_WRPR_MASK[0]")
	}
}

func TestAssign(t *testing.T) {
	cb, _ := newCrossbar()
	for ch := 0; ch < NumChannels; ch++ {
		if err := cb.Assign(ch, uint8(31-ch)); err != nil {
			t.Fatalf("Assign(%d): %v", ch, err)
		}
	}
	for ch := 0; ch < NumChannels; ch++ {
		if got, _ := cb.Assignment(ch); got != uint8(31-ch) {
			t.Errorf("Assignment(%d) = %d, want %d", ch, got, 31-ch)
		}
	}

	if err := cb.Assign(7, 2); err != nil {
		t.Fatal(err)
	}
	for ch := 0; ch < NumChannels; ch++ {
		want := uint8(31 - ch)
		if ch == 7 {
			want = 2
		}
		if got, _ := cb.Assignment(ch); got != want {
			t.Errorf("after reassign: Assignment(%d) = %d, want %d", ch, got, want)
		}
	}
}
