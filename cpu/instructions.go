package cpu

import (
	"fmt"

	"go6502/bus"
	"go6502/mask"
)

// operandAddress resolves the effective address for modes that reference
// memory, returning 0 (never read) for Implied, Accumulator, and Relative --
// those are handled by the instructions themselves (register-only, or via
// relativeTarget).
func operandAddress(pc uint16, x, y byte, mem bus.Memory, mode AddressingMode) uint16 {
	switch mode {
	case Implied, Accumulator, Relative:
		return 0
	default:
		return resolve(pc, x, y, mem, mode)
	}
}

// readOperand fetches the instruction's input byte: the accumulator itself
// in Accumulator mode, otherwise the byte at addr (which for Immediate mode
// is the operand byte, since resolve points Immediate at PC+1 directly).
func (c *CPU) readOperand(mode AddressingMode, addr uint16) byte {
	if mode == Accumulator {
		return c.A
	}
	return c.Bus.ReadByte(addr)
}

// writeOperand stores a result back to wherever readOperand took it from.
func (c *CPU) writeOperand(mode AddressingMode, addr uint16, v byte) {
	if mode == Accumulator {
		c.A = v
		return
	}
	c.Bus.WriteByte(addr, v)
}

// execute dispatches entry's instruction against the CPU's current state.
// pcAtFetch is the address of the opcode byte itself -- needed by JSR, BRK,
// and the branches, all of which compute their target relative to the
// instruction's own position rather than its operand.
func (c *CPU) execute(entry *OpcodeEntry) {
	pcAtFetch := c.PC
	mode := entry.Mode
	addr := operandAddress(pcAtFetch, c.X, c.Y, c.Bus, mode)

	// PC advances past the instruction's bytes now; JMP/JSR/RTS/RTI/BRK
	// and taken branches overwrite it below.
	c.PC = pcAtFetch + mode.instructionLength()

	switch entry.Instruction {
	case ADC:
		c.adc(c.readOperand(mode, addr))
	case AND:
		c.A &= c.readOperand(mode, addr)
		c.P = c.P.withNZ(c.A)
	case ASL:
		c.shiftLeft(mode, addr)
	case BCC:
		c.branch(!c.P.Carry(), pcAtFetch)
	case BCS:
		c.branch(c.P.Carry(), pcAtFetch)
	case BEQ:
		c.branch(c.P.Zero(), pcAtFetch)
	case BIT:
		c.bit(c.readOperand(mode, addr))
	case BMI:
		c.branch(c.P.Negative(), pcAtFetch)
	case BNE:
		c.branch(!c.P.Zero(), pcAtFetch)
	case BPL:
		c.branch(!c.P.Negative(), pcAtFetch)
	case BRK:
		c.brk(pcAtFetch)
	case BVC:
		c.branch(!c.P.Overflow(), pcAtFetch)
	case BVS:
		c.branch(c.P.Overflow(), pcAtFetch)
	case CLC:
		c.P = c.P.withCarry(false)
	case CLD:
		c.P = c.P.withDecimal(false)
	case CLI:
		c.P = c.P.withInterrupt(false)
	case CLV:
		c.P = c.P.withOverflow(false)
	case CMP:
		c.compare(c.A, c.readOperand(mode, addr))
	case CPX:
		c.compare(c.X, c.readOperand(mode, addr))
	case CPY:
		c.compare(c.Y, c.readOperand(mode, addr))
	case DEC:
		v := c.Bus.ReadByte(addr) - 1
		c.Bus.WriteByte(addr, v)
		c.P = c.P.withNZ(v)
	case DEX:
		c.X--
		c.P = c.P.withNZ(c.X)
	case DEY:
		c.Y--
		c.P = c.P.withNZ(c.Y)
	case EOR:
		c.A ^= c.readOperand(mode, addr)
		c.P = c.P.withNZ(c.A)
	case INC:
		v := c.Bus.ReadByte(addr) + 1
		c.Bus.WriteByte(addr, v)
		c.P = c.P.withNZ(v)
	case INX:
		c.X++
		c.P = c.P.withNZ(c.X)
	case INY:
		c.Y++
		c.P = c.P.withNZ(c.Y)
	case JMP:
		c.PC = addr
	case JSR:
		// the last byte of the 3-byte JSR instruction, per the 6502
		// convention RTS expects (it adds 1 back on return)
		c.pushWord(pcAtFetch + 2)
		c.PC = addr
	case LDA:
		c.A = c.readOperand(mode, addr)
		c.P = c.P.withNZ(c.A)
	case LDX:
		c.X = c.readOperand(mode, addr)
		c.P = c.P.withNZ(c.X)
	case LDY:
		c.Y = c.readOperand(mode, addr)
		c.P = c.P.withNZ(c.Y)
	case LSR:
		c.shiftRight(mode, addr)
	case NOP:
		// no effect beyond cycle consumption
	case ORA:
		c.A |= c.readOperand(mode, addr)
		c.P = c.P.withNZ(c.A)
	case PHA:
		c.pushByte(c.A)
	case PHP:
		c.pushByte(c.P.Byte())
	case PLA:
		c.A = c.popByte()
		c.P = c.P.withNZ(c.A)
	case PLP:
		c.P = FromByte(c.popByte())
	case ROL:
		c.rotateLeft(mode, addr)
	case ROR:
		c.rotateRight(mode, addr)
	case RTI:
		c.P = FromByte(c.popByte())
		c.PC = c.popWord()
	case RTS:
		c.PC = c.popWord() + 1
	case SBC:
		c.sbc(c.readOperand(mode, addr))
	case SEC:
		c.P = c.P.withCarry(true)
	case SED:
		c.P = c.P.withDecimal(true)
	case SEI:
		c.P = c.P.withInterrupt(true)
	case STA:
		c.Bus.WriteByte(addr, c.A)
	case STX:
		c.Bus.WriteByte(addr, c.X)
	case STY:
		c.Bus.WriteByte(addr, c.Y)
	case TAX:
		c.X = c.A
		c.P = c.P.withNZ(c.X)
	case TAY:
		c.Y = c.A
		c.P = c.P.withNZ(c.Y)
	case TSX:
		c.X = byte(c.SP)
		c.P = c.P.withNZ(c.X)
	case TXA:
		c.A = c.X
		c.P = c.P.withNZ(c.A)
	case TXS:
		// no flag update: TXS only ever targets the stack pointer
		c.SP = stackPage | uint16(c.X)
	case TYA:
		c.A = c.Y
		c.P = c.P.withNZ(c.A)
	default:
		panic(fmt.Sprintf("no executor registered for instruction %s", entry.Instruction))
	}
}

func (c *CPU) branch(taken bool, pcAtFetch uint16) {
	if taken {
		c.PC = relativeTarget(pcAtFetch, c.Bus)
	}
}

// adc implements add-with-carry, including the packed-BCD path the 6502's
// decimal mode uses: when D is set, A and the operand are treated as two
// packed-decimal digit pairs.
func (c *CPU) adc(operand byte) {
	if c.P.Decimal() {
		sum, carry := mask.BCDAdd(c.A, operand)
		if c.P.Carry() {
			// fold the incoming carry in as a second packed-decimal add of
			// 1 -- BCDAdd's own result is always a valid two-digit value,
			// so this can never itself produce an invalid digit pair
			var carry2 bool
			sum, carry2 = mask.BCDAdd(sum, 0x01)
			carry = carry || carry2
		}
		c.P = c.P.withCarry(carry).withNZ(sum)
		c.A = sum
		return
	}
	c.addBinary(operand)
}

// sbc implements subtract-with-borrow in binary mode only. Decimal-mode
// subtraction is deliberately unimplemented (spec Non-goal).
func (c *CPU) sbc(operand byte) {
	if c.P.Decimal() {
		panic(fmt.Errorf("SBC: %w", ErrDecimalSBCUnimplemented))
	}
	// the 6502's adder handles subtraction as addition of the operand's
	// one's complement: A - M - borrow == A + ^M + C
	c.addBinary(^operand)
}

func (c *CPU) addBinary(operand byte) {
	carryIn := byte(0)
	if c.P.Carry() {
		carryIn = 1
	}
	sum16 := uint16(c.A) + uint16(operand) + uint16(carryIn)
	result := byte(sum16)
	c.P = c.P.
		withCarry(sum16 > 0xFF).
		withOverflow(mask.Overflows(c.A, operand, result)).
		withNZ(result)
	c.A = result
}

// bit tests operand against A without storing a result. Z is set from
// whole-byte equality rather than the documented (A AND M) == 0 -- the
// source's own test suite asserts equality, so that is what is reproduced
// here.
func (c *CPU) bit(operand byte) {
	c.P = c.P.
		withZero(c.A == operand).
		withNegative(mask.IsNegative(operand)).
		withOverflow(operand&0x40 != 0)
}

func (c *CPU) compare(reg, operand byte) {
	result := reg - operand
	c.P = c.P.
		withCarry(reg >= operand).
		withZero(reg == operand).
		withNegative(mask.IsNegative(result))
}

func (c *CPU) shiftLeft(mode AddressingMode, addr uint16) {
	v := c.readOperand(mode, addr)
	carryOut := mask.IsNegative(v)
	result := v << 1
	c.writeOperand(mode, addr, result)
	c.P = c.P.withCarry(carryOut).withNZ(result)
}

func (c *CPU) shiftRight(mode AddressingMode, addr uint16) {
	v := c.readOperand(mode, addr)
	carryOut := v&0x01 != 0
	result := v >> 1
	c.writeOperand(mode, addr, result)
	c.P = c.P.withCarry(carryOut).withNZ(result)
}

func (c *CPU) rotateLeft(mode AddressingMode, addr uint16) {
	v := c.readOperand(mode, addr)
	var carryIn byte
	if c.P.Carry() {
		carryIn = 1
	}
	carryOut := mask.IsNegative(v)
	result := v<<1 | carryIn
	c.writeOperand(mode, addr, result)
	c.P = c.P.withCarry(carryOut).withNZ(result)
}

func (c *CPU) rotateRight(mode AddressingMode, addr uint16) {
	v := c.readOperand(mode, addr)
	var carryIn byte
	if c.P.Carry() {
		carryIn = 0x80
	}
	carryOut := v&0x01 != 0
	result := v>>1 | carryIn
	c.writeOperand(mode, addr, result)
	c.P = c.P.withCarry(carryOut).withNZ(result)
}

// brk pushes the return address two bytes past the BRK opcode (skipping the
// signature/padding byte that follows it), sets the break flag in P and
// pushes P, sets the interrupt-disable flag, then loads PC from the
// interrupt vector. B stays set in P after BRK.
func (c *CPU) brk(pcAtFetch uint16) {
	c.pushWord(pcAtFetch + 2)
	c.P = c.P.withBreak(true)
	c.pushByte(c.P.Byte())
	c.P = c.P.withInterrupt(true)
	lo := c.Bus.ReadByte(brkVectorLo)
	hi := c.Bus.ReadByte(brkVectorHi)
	c.PC = uint16(hi)<<8 | uint16(lo)
}
