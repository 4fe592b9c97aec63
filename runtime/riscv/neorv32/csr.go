package neorv32

const (
	CsrMstatus = 0x300
	CsrMie     = 0x304
	CsrMtvec   = 0x305
	CsrMcause  = 0x342
	CsrMip     = 0x344
)

const (
	MstatusMIE = 1 << 3

	// FirqBase is the mie/mip bit of fast interrupt 0.
	FirqBase = 16
	NumFirq  = 16
)

// Fast interrupt channels with a fixed peripheral behind them.
const (
	FirqXirq = 8
)

// TrapFirq0 is the mcause value of fast interrupt 0.
const TrapFirq0 = 0x8000_0010

// CSR gives access to the machine-mode control and status registers. On
// silicon this is a set of csrr/csrw/csrs/csrc instructions.
type CSR interface {
	Read(csr uint16) uint32
	Write(csr uint16, value uint32)
	Set(csr uint16, mask uint32)
	Clear(csr uint16, mask uint32)
}
