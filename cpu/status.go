package cpu

import "go6502/mask"

// Status is the 8-bit processor status register (the P register), laid out
// MSB to LSB as N V - B D I Z C. It is deliberately a single byte rather
// than seven booleans: PHP/PLP and BRK/RTI push and pop the whole register
// at once, and a struct of bools has no single value to push.
type Status byte

// Bit positions, 1-indexed MSB-first to match mask's convention. Typed as
// mask.byteIndex by inference from I1..I8 -- the type itself is unexported,
// so it is never named here, only used.
const (
	flagN = mask.I1 // negative
	flagV = mask.I2 // overflow
	flagU = mask.I3 // unused, always 1
	flagB = mask.I4 // break
	flagD = mask.I5 // decimal
	flagI = mask.I6 // interrupt disable
	flagZ = mask.I7 // zero
	flagC = mask.I8 // carry
)

// resetStatus is the status register's value immediately after reset:
// every flag clear except the permanently-set unused bit.
const resetStatus Status = 0b0010_0000

func (p Status) Negative() bool  { return mask.IsSet(byte(p), flagN) }
func (p Status) Overflow() bool  { return mask.IsSet(byte(p), flagV) }
func (p Status) Break() bool     { return mask.IsSet(byte(p), flagB) }
func (p Status) Decimal() bool   { return mask.IsSet(byte(p), flagD) }
func (p Status) Interrupt() bool { return mask.IsSet(byte(p), flagI) }
func (p Status) Zero() bool      { return mask.IsSet(byte(p), flagZ) }
func (p Status) Carry() bool     { return mask.IsSet(byte(p), flagC) }

func (p Status) withNegative(v bool) Status {
	if v {
		return Status(mask.Set(byte(p), flagN, 1))
	}
	return Status(mask.Unset(byte(p), flagN, flagN))
}

func (p Status) withOverflow(v bool) Status {
	if v {
		return Status(mask.Set(byte(p), flagV, 1))
	}
	return Status(mask.Unset(byte(p), flagV, flagV))
}

func (p Status) withBreak(v bool) Status {
	if v {
		return Status(mask.Set(byte(p), flagB, 1))
	}
	return Status(mask.Unset(byte(p), flagB, flagB))
}

func (p Status) withDecimal(v bool) Status {
	if v {
		return Status(mask.Set(byte(p), flagD, 1))
	}
	return Status(mask.Unset(byte(p), flagD, flagD))
}

func (p Status) withInterrupt(v bool) Status {
	if v {
		return Status(mask.Set(byte(p), flagI, 1))
	}
	return Status(mask.Unset(byte(p), flagI, flagI))
}

func (p Status) withZero(v bool) Status {
	if v {
		return Status(mask.Set(byte(p), flagZ, 1))
	}
	return Status(mask.Unset(byte(p), flagZ, flagZ))
}

func (p Status) withCarry(v bool) Status {
	if v {
		return Status(mask.Set(byte(p), flagC, 1))
	}
	return Status(mask.Unset(byte(p), flagC, flagC))
}

// withNZ sets Negative and Zero from a result byte, as every data-producing
// instruction (loads, transfers, logical ops, INC/DEC, shifts) does.
func (p Status) withNZ(result byte) Status {
	return p.withNegative(mask.IsNegative(result)).withZero(result == 0)
}

// Byte returns the raw register value, with the unused bit forced to 1 as
// real 6502 hardware always reads it -- used when pushing P to the stack.
func (p Status) Byte() byte {
	return byte(Status(mask.Set(byte(p), flagU, 1)))
}

// FromByte reconstructs a Status from a popped stack byte. The break flag
// has no effect on CPU behavior when restored this way; it exists purely so
// software can distinguish a BRK-pushed status from an IRQ-pushed one.
func FromByte(b byte) Status {
	return Status(b)
}
