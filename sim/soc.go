package sim

import (
	"omibyte.io/neoirq/runtime/riscv/neorv32"
	"omibyte.io/neoirq/targets"
)

// SoC wires the models of one target together. The XIRQ request drives the
// mip bit of the target's XIRQ fast interrupt.
type SoC struct {
	Target   targets.TargetInfo
	CSR      *CSRFile
	Sysinfo  *Sysinfo
	XIRQ     *XIRQ
	Crossbar *Crossbar
}

func NewSoC(target targets.TargetInfo) *SoC {
	s := &SoC{
		Target:   target,
		CSR:      NewCSRFile(),
		Sysinfo:  &Sysinfo{Clock: target.Clock, Soc: target.SocWord()},
		Crossbar: &Crossbar{},
	}
	s.XIRQ = NewXIRQ(target.XirqChannels, func(level bool) {
		s.CSR.Request(target.XirqFirq, level)
	})
	return s
}

// Line is the CPU fast interrupt the XIRQ is wired to.
func (s *SoC) Line() neorv32.FIRQ {
	return neorv32.NewFIRQ(s.Target.XirqFirq, s.CSR)
}

// EnableInterrupts sets the global machine interrupt enable.
func (s *SoC) EnableInterrupts() {
	s.CSR.Set(neorv32.CsrMstatus, neorv32.MstatusMIE)
}

func (s *SoC) DisableInterrupts() {
	s.CSR.Clear(neorv32.CsrMstatus, neorv32.MstatusMIE)
}

// Service plays the trap path for the XIRQ fast interrupt: as long as the
// interrupt is enabled and pending, mcause is set and handler is entered.
// It stops after limit traps and returns the number taken.
func (s *SoC) Service(handler func(), limit int) int {
	n := 0
	for n < limit && s.CSR.Read(neorv32.CsrMstatus)&neorv32.MstatusMIE != 0 && s.CSR.Taken(s.Target.XirqFirq) {
		s.CSR.Write(neorv32.CsrMcause, s.Line().Cause())
		handler()
		n++
	}
	return n
}
