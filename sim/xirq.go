package sim

import (
	"math/bits"
	"sync"
)

// XIRQ register offsets
const (
	xirqEIE = 0x0
	xirqEIP = 0x4
	xirqESC = 0x8
)

// XIRQ models the external interrupt controller. A line only latches a
// pending bit while its channel is enabled. ESC reports the lowest pending
// channel. The aggregated request follows EIP != 0.
type XIRQ struct {
	mu          sync.Mutex
	implemented uint32
	eie         uint32
	eip         uint32
	request     func(level bool)

	writes int
}

// NewXIRQ returns a controller with the given number of channels. request is
// called with the level of the aggregated interrupt after every change.
func NewXIRQ(channels int, request func(level bool)) *XIRQ {
	var implemented uint32
	switch {
	case channels >= 32:
		implemented = 0xFFFF_FFFF
	case channels > 0:
		implemented = 1<<channels - 1
	}
	if request == nil {
		request = func(bool) {}
	}
	return &XIRQ{implemented: implemented, request: request}
}

func (x *XIRQ) Load(offset uintptr) uint32 {
	x.mu.Lock()
	defer x.mu.Unlock()

	switch offset {
	case xirqEIE:
		return x.eie
	case xirqEIP:
		return x.eip
	case xirqESC:
		return x.source()
	}
	return 0
}

func (x *XIRQ) Store(offset uintptr, value uint32) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.writes++
	switch offset {
	case xirqEIE:
		x.eie = value & x.implemented
	case xirqEIP:
		x.eip &= value
	case xirqESC:
		// acknowledge
	}
	x.request(x.eip != 0)
}

func (x *XIRQ) source() uint32 {
	if x.eip == 0 {
		return 0
	}
	return uint32(bits.TrailingZeros32(x.eip))
}

// Raise signals an edge on external line ch. It reports whether a pending
// bit was latched.
func (x *XIRQ) Raise(ch int) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	if ch < 0 || ch >= 32 || x.eie&(1<<ch) == 0 {
		return false
	}
	x.eip |= 1 << ch
	x.request(true)
	return true
}

// Poke overwrites a register as the hardware side, bypassing write
// semantics and the write counter.
func (x *XIRQ) Poke(offset uintptr, value uint32) {
	x.mu.Lock()
	defer x.mu.Unlock()

	switch offset {
	case xirqEIE:
		x.eie = value & x.implemented
	case xirqEIP:
		x.eip = value
	}
	x.request(x.eip != 0)
}

// Pending returns EIP.
func (x *XIRQ) Pending() uint32 {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.eip
}

// Writes returns the number of stores made by software.
func (x *XIRQ) Writes() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.writes
}
