package mmio

import "fmt"

// Write records a single store made through a Memory window.
type Write struct {
	Offset uintptr
	Value  uint32
}

// Memory is a plain register file. Every store is kept in a write log so
// tests can assert exactly which register accesses a driver made.
type Memory struct {
	regs   []uint32
	writes []Write
}

// NewMemory returns a zeroed register file of n registers.
func NewMemory(n int) *Memory {
	return &Memory{regs: make([]uint32, n)}
}

func (m *Memory) index(offset uintptr) int {
	if offset%4 != 0 || int(offset/4) >= len(m.regs) {
		panic(fmt.Sprintf("mmio: invalid register offset 0x%x", offset))
	}
	return int(offset / 4)
}

func (m *Memory) Load(offset uintptr) uint32 {
	return m.regs[m.index(offset)]
}

func (m *Memory) Store(offset uintptr, value uint32) {
	m.regs[m.index(offset)] = value
	m.writes = append(m.writes, Write{Offset: offset, Value: value})
}

// Poke sets a register without recording a write, as hardware would.
func (m *Memory) Poke(offset uintptr, value uint32) {
	m.regs[m.index(offset)] = value
}

// Writes returns the log of stores since creation or the last ResetLog.
func (m *Memory) Writes() []Write {
	return append([]Write(nil), m.writes...)
}

func (m *Memory) ResetLog() {
	m.writes = m.writes[:0]
}

// Snapshot returns a copy of all registers.
func (m *Memory) Snapshot() []uint32 {
	return append([]uint32(nil), m.regs...)
}
