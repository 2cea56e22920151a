package cpu

import (
	"go6502/bus"
	"go6502/mask"
)

// resolve computes the effective address for every mode that references
// memory, given the byte(s) immediately following the opcode at pc. It does
// not read the operand itself -- callers do that via mem.ReadByte(addr) --
// and it must not be called for Implied, Accumulator, or Relative (the
// latter has its own helper, relativeTarget, since a taken branch needs the
// PC-after-the-full-instruction, not just the operand bytes).
//
// The bytes at pc+1 and pc+2 are the two operand bytes LL and HH described
// in spec.md's mode table.
func resolve(pc uint16, x, y byte, mem bus.Memory, mode AddressingMode) uint16 {
	ll := mem.ReadByte(pc + 1)

	switch mode {
	case Immediate:
		return pc + 1

	case ZeroPage:
		return uint16(ll)

	case ZeroPageX:
		// no carry into the high byte: the sum wraps within page 0
		return uint16(mask.AddRelative(ll, x))

	case ZeroPageY:
		return uint16(mask.AddRelative(ll, y))

	case Absolute:
		hh := mem.ReadByte(pc + 2)
		return mask.Word(hh, ll)

	case AbsoluteX:
		hh := mem.ReadByte(pc + 2)
		return mask.Word(hh, ll) + uint16(x)

	case AbsoluteY:
		hh := mem.ReadByte(pc + 2)
		return mask.Word(hh, ll) + uint16(y)

	case Indirect:
		hh := mem.ReadByte(pc + 2)
		ptr := mask.Word(hh, ll)
		// the documented page-wrap bug: if the pointer's low byte is
		// 0xff, the high byte of the target is read from the start of
		// the SAME page, not the next one
		var hiAddr uint16
		if ll == 0xff {
			hiAddr = ptr &^ 0x00ff
		} else {
			hiAddr = ptr + 1
		}
		return mask.Word(mem.ReadByte(hiAddr), mem.ReadByte(ptr))

	case IndexedIndirectX:
		ptr := mask.AddRelative(ll, x)
		lo := mem.ReadByte(uint16(ptr))
		hi := mem.ReadByte(uint16(mask.AddRelative(ptr, 1)))
		return mask.Word(hi, lo)

	case IndirectIndexedY:
		lo := mem.ReadByte(uint16(ll))
		hi := mem.ReadByte(uint16(mask.AddRelative(ll, 1)))
		return mask.Word(hi, lo) + uint16(y)

	default:
		panic("resolve called with a mode that has no effective address")
	}
}

// relativeTarget computes the branch target for a Relative-mode
// instruction: offsetAddr = pc+1 (the signed displacement byte itself),
// target = offsetAddr + 1 + sign_extend(displacement), with 16-bit
// wrapping. The "+1" accounts for the displacement byte's own consumption.
func relativeTarget(pc uint16, mem bus.Memory) uint16 {
	offsetAddr := pc + 1
	displacement := mem.ReadByte(offsetAddr)
	return offsetAddr + 1 + mask.SignExtend(displacement)
}
