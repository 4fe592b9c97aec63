package sim

import "omibyte.io/neoirq/runtime/riscv/neorv32"

// Sysinfo is the read-only SYSINFO block. Stores are ignored.
type Sysinfo struct {
	Clock uint32
	Soc   uint32
}

func (s *Sysinfo) Load(offset uintptr) uint32 {
	switch offset {
	case neorv32.SysinfoClk:
		return s.Clock
	case neorv32.SysinfoSoc:
		return s.Soc
	}
	return 0
}

func (s *Sysinfo) Store(offset uintptr, value uint32) {}
