package neorv32

// FIRQ is one of the 16 fast interrupt lines of the CPU.
type FIRQ struct {
	n   uint8
	csr CSR
}

func NewFIRQ(n uint8, csr CSR) FIRQ {
	return FIRQ{n: n & (NumFirq - 1), csr: csr}
}

func (f FIRQ) mask() uint32 {
	return 1 << (FirqBase + uint32(f.n))
}

func (f FIRQ) Number() uint8 {
	return f.n
}

// Cause is the mcause value the CPU reports when this line traps.
func (f FIRQ) Cause() uint32 {
	return TrapFirq0 + uint32(f.n)
}

func (f FIRQ) EnableIRQ() {
	f.csr.Set(CsrMie, f.mask())
}

func (f FIRQ) DisableIRQ() {
	f.csr.Clear(CsrMie, f.mask())
}

func (f FIRQ) Enabled() bool {
	return f.csr.Read(CsrMie)&f.mask() != 0
}

func (f FIRQ) Pending() bool {
	return f.csr.Read(CsrMip)&f.mask() != 0
}

func (f FIRQ) Acknowledge() {
	f.csr.Clear(CsrMip, f.mask())
}
