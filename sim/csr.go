// Package sim models the NEORV32 interrupt peripherals at register level so
// the drivers can run without silicon.
package sim

import (
	"sync"

	"omibyte.io/neoirq/runtime/riscv/neorv32"
)

// CSRFile is the machine-mode CSR state of a single hart.
type CSRFile struct {
	mu   sync.Mutex
	regs map[uint16]uint32
}

func NewCSRFile() *CSRFile {
	return &CSRFile{regs: map[uint16]uint32{}}
}

func (c *CSRFile) Read(csr uint16) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.regs[csr]
}

func (c *CSRFile) Write(csr uint16, value uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.regs[csr] = value
}

func (c *CSRFile) Set(csr uint16, mask uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.regs[csr] |= mask
}

func (c *CSRFile) Clear(csr uint16, mask uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.regs[csr] &^= mask
}

// Request drives the mip bit of fast interrupt n.
func (c *CSRFile) Request(n uint8, level bool) {
	mask := uint32(1) << (neorv32.FirqBase + uint32(n))
	if level {
		c.Set(neorv32.CsrMip, mask)
	} else {
		c.Clear(neorv32.CsrMip, mask)
	}
}

// Taken reports whether fast interrupt n would trap now.
func (c *CSRFile) Taken(n uint8) bool {
	mask := uint32(1) << (neorv32.FirqBase + uint32(n))
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.regs[neorv32.CsrMie]&c.regs[neorv32.CsrMip]&mask != 0
}
