package peripheral

// Interrupt is a CPU-side interrupt line.
type Interrupt interface {
	EnableIRQ()
	DisableIRQ()
	Enabled() bool
	Pending() bool
	Acknowledge()
}

// Capability reports whether an optional SoC feature is present.
type Capability interface {
	Has(bit uint) bool
}
