package sim

import "sync"

const (
	crossbarChannels = 16
	assignWidth      = 5
	assignPerReg     = 6
)

// Crossbar models the FIRQ crossbar register block: an enable mask, two
// protection registers and three assignment registers.
type Crossbar struct {
	mu   sync.Mutex
	regs [6]uint32
}

var crossbarMasks = [6]uint32{
	0x0000_FFFF,
	0x0000_FFFF,
	0x0000_FFFF,
	0x3FFF_FFFF,
	0x3FFF_FFFF,
	0x000F_FFFF,
}

func (c *Crossbar) Load(offset uintptr) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := offset / 4; i < uintptr(len(c.regs)) {
		return c.regs[i]
	}
	return 0
}

func (c *Crossbar) Store(offset uintptr, value uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := offset / 4; i < uintptr(len(c.regs)) {
		c.regs[i] = value & crossbarMasks[i]
	}
}

// Route returns the enabled channels that forward source to the CPU.
func (c *Crossbar) Route(source uint8) []int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var channels []int
	for ch := 0; ch < crossbarChannels; ch++ {
		if c.regs[0]&(1<<ch) == 0 {
			continue
		}
		reg := c.regs[3+ch/assignPerReg]
		shift := assignWidth * (ch % assignPerReg)
		if uint8(reg>>shift&(1<<assignWidth-1)) == source {
			channels = append(channels, ch)
		}
	}
	return channels
}

// Registers returns a copy of the register block.
func (c *Crossbar) Registers() [6]uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.regs
}
