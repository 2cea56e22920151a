// Package bus provides the narrow byte-addressable store the Cpu is
// parameterized over: a 16-bit address space exposing ReadByte and
// WriteByte. It owns no CPU state; it is the opaque collaborator described
// as "external" to the interpreter core.
package bus

// Memory is the capability the Cpu needs from its backing store. Any
// implementor -- a flat array, a mapped device bus, a mock recorder in a
// test -- can stand in for it.
type Memory interface {
	ReadByte(addr uint16) byte
	WriteByte(addr uint16, v byte)
}

// RAM is the reference implementation: a flat, unmirrored 64 KiB array,
// zeroed on construction. It provides the entire program image, zero page,
// stack page ($0100-$01ff), and the reset/IRQ/BRK vectors.
type RAM struct {
	data [1 << 16]byte
}

// NewRAM returns a zeroed 64 KiB store.
func NewRAM() *RAM {
	return &RAM{}
}

// LoadAt copies program into the store starting at addr, wrapping around
// $FFFF back to $0000 if program does not fit in the remaining space.
func (r *RAM) LoadAt(addr uint16, program []byte) {
	for i, b := range program {
		r.data[addr+uint16(i)] = b
	}
}

func (r *RAM) ReadByte(addr uint16) byte {
	return r.data[addr]
}

func (r *RAM) WriteByte(addr uint16, v byte) {
	r.data[addr] = v
}
