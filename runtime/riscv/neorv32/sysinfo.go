// Package neorv32 describes the parts of the NEORV32 SoC that its peripheral
// drivers depend on: the SYSINFO block and the CPU interrupt CSRs.
package neorv32

import "omibyte.io/neoirq/mmio"

// SYSINFO register offsets
const (
	SysinfoClk   = 0x0 // clock frequency in Hz (R)
	SysinfoMem   = 0x4 // memory configuration (R)
	SysinfoSoc   = 0x8 // implemented SoC features (R)
	SysinfoCache = 0xC // cache configuration (R)
)

// SysinfoSoc bits
const (
	SocBootloader = 0
	SocXip        = 1
	SocImem       = 2
	SocDmem       = 3
	SocOcd        = 4
	SocIoGpio     = 16
	SocIoMtime    = 17
	SocIoUart0    = 18
	SocIoSpi      = 19
	SocIoTwi      = 20
	SocIoUart1    = 21
	SocIoPwm      = 22
	SocIoWdt      = 23
	SocIoCfs      = 24
	SocIoTrng     = 25
	SocIoSdi      = 26
	SocIoGptmr    = 27
	SocIoXirq     = 28
	SocIoOnewire  = 29
	SocIoDma      = 30
	SocIoFirqCb   = 31
)

type Sysinfo struct {
	regs mmio.Window
}

func NewSysinfo(regs mmio.Window) *Sysinfo {
	return &Sysinfo{regs: regs}
}

func (s *Sysinfo) Clock() uint32 {
	return s.regs.Load(SysinfoClk)
}

func (s *Sysinfo) Soc() uint32 {
	return s.regs.Load(SysinfoSoc)
}

// Has reports whether SOC feature bit is set.
func (s *Sysinfo) Has(bit uint) bool {
	return bit < 32 && s.Soc()&(1<<bit) != 0
}
