// Package mmio provides access to blocks of 32-bit memory-mapped registers.
package mmio

import (
	"sync/atomic"
	"unsafe"
)

// Window is a block of 32-bit registers addressed by byte offset from the
// block base. Single accesses are atomic. Sequences of accesses are not.
type Window interface {
	Load(offset uintptr) uint32
	Store(offset uintptr, value uint32)
}

// Set commits reg |= mask.
func Set(w Window, offset uintptr, mask uint32) {
	w.Store(offset, w.Load(offset)|mask)
}

// Clear commits reg &^= mask.
func Clear(w Window, offset uintptr, mask uint32) {
	w.Store(offset, w.Load(offset)&^mask)
}

// Block is a Window over real memory.
type Block struct {
	base unsafe.Pointer
}

// At returns a block for the peripheral mapped at addr.
func At(addr uintptr) *Block {
	return &Block{base: unsafe.Pointer(addr)}
}

// FromPointer returns a block starting at p.
func FromPointer(p unsafe.Pointer) *Block {
	return &Block{base: p}
}

func (b *Block) reg(offset uintptr) *uint32 {
	return (*uint32)(unsafe.Add(b.base, offset))
}

func (b *Block) Load(offset uintptr) uint32 {
	return atomic.LoadUint32(b.reg(offset))
}

func (b *Block) Store(offset uintptr, value uint32) {
	atomic.StoreUint32(b.reg(offset), value)
}
