package firqcb

// Register offsets
const (
	regChEnMask  = 0x00 // output channel enable, bit n = channel n (RW)
	regChWrpr0   = 0x04 // protection levels of channels 0-7 (RW)
	regChWrpr1   = 0x08 // protection levels of channels 8-15 (RW)
	regChAssign0 = 0x0C // source assignment of channels 0-5 (RW)
	regChAssign1 = 0x10 // source assignment of channels 6-11 (RW)
	regChAssign2 = 0x14 // source assignment of channels 12-15 (RW)
)

const (
	NumChannels = 16

	protectionWidth  = 2
	protectionPerReg = 8

	sourceWidth   = 5
	sourcesPerReg = 32 / sourceWidth

	// NumSources is the number of source indices a channel can be assigned.
	NumSources = 1 << sourceWidth
)

// Field locates a bit field inside the register block.
type Field struct {
	Offset uintptr
	Shift  uint
	Width  uint
}

func (f Field) Mask() uint32 {
	return (1<<f.Width - 1) << f.Shift
}

func (f Field) Extract(reg uint32) uint32 {
	return (reg & f.Mask()) >> f.Shift
}

func (f Field) Insert(reg, value uint32) uint32 {
	return reg&^f.Mask() | (value<<f.Shift)&f.Mask()
}

// ProtectionField returns the 2-bit protection field of channel ch. Channels
// 0-7 live in the first protection register and 8-15 in the second.
func ProtectionField(ch int) Field {
	return Field{
		Offset: regChWrpr0 + uintptr(ch/protectionPerReg)*4,
		Shift:  uint(protectionWidth * (ch % protectionPerReg)),
		Width:  protectionWidth,
	}
}

// AssignField returns the 5-bit source field of channel ch. Six fields are
// packed into each assignment register starting at bit 0. Bits 30 and 31 are
// unused.
func AssignField(ch int) Field {
	return Field{
		Offset: regChAssign0 + uintptr(ch/sourcesPerReg)*4,
		Shift:  uint(sourceWidth * (ch % sourcesPerReg)),
		Width:  sourceWidth,
	}
}
