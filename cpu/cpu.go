// Package cpu implements a cycle-countable MOS Technology 6502 interpreter:
// the 151-entry opcode table, addressing-mode resolution, the instruction
// set, and the fetch-decode-execute loop that drives them.
package cpu

import (
	"fmt"

	"go6502/bus"
)

const (
	resetVectorHi uint16 = 0xFFFC
	resetVectorLo uint16 = 0xFFFD
	brkVectorLo   uint16 = 0xFFFE
	brkVectorHi   uint16 = 0xFFFF

	stackPage uint16 = 0x0100
)

// CPU holds the complete architectural state of a 6502: the three
// general-purpose registers, the program counter, the status register, the
// stack pointer, and a handle to the Bus it executes against. It carries no
// backing memory of its own.
type CPU struct {
	Bus bus.Memory

	PC uint16
	A  byte
	X  byte
	Y  byte
	P  Status
	SP uint16 // high byte is always 0x01; only the low byte ever changes

	IR     Instruction // last decoded instruction, for inspection only
	Cycles uint64      // cumulative cycles executed since construction
}

// State is a read-only, value-type snapshot of a CPU, handed to an Observer
// before every instruction dispatches. Because it is a value and not *CPU,
// an Observer cannot mutate interpreter state through it even by accident.
type State struct {
	PC     uint16
	A      byte
	X      byte
	Y      byte
	P      Status
	SP     uint16
	IR     Instruction
	Cycles uint64
}

// Observer is invoked once per instruction, after decode but before
// execute, with a State snapshot of the CPU as it stood at that point.
// Returning true halts the run before the instruction is dispatched.
type Observer func(State) (stop bool)

// New constructs a CPU wired to mem and immediately performs the reset
// sequence, so callers never observe a zero-value, un-reset CPU.
func New(mem bus.Memory) *CPU {
	c := &CPU{Bus: mem}
	c.Reset()
	return c
}

// Reset reinitializes registers to their power-up state and loads PC from
// the reset vector. The source this interpreter is built from reads the
// vector's two bytes in reverse of the canonical 6502 order -- high byte
// from $FFFC, low byte from $FFFD -- and that ordering is reproduced here
// rather than "corrected," since programs and tests written against it
// depend on it.
func (c *CPU) Reset() {
	c.A = 0
	c.X = 0
	c.Y = 0
	c.SP = stackPage | 0x00FF
	c.P = resetStatus
	c.Cycles = 0
	c.IR = 0

	hi := c.Bus.ReadByte(resetVectorHi)
	lo := c.Bus.ReadByte(resetVectorLo)
	c.PC = uint16(hi)<<8 | uint16(lo)
}

// snapshot copies the current architectural state into a State value.
func (c *CPU) snapshot() State {
	return State{
		PC:     c.PC,
		A:      c.A,
		X:      c.X,
		Y:      c.Y,
		P:      c.P,
		SP:     c.SP,
		IR:     c.IR,
		Cycles: c.Cycles,
	}
}

// Step fetches and decodes the instruction at PC, invokes observer (if
// non-nil) with the pre-execute State, and then -- unless the observer
// requested a stop -- dispatches and tallies cycles. It returns (stop, nil)
// on success, or (false, *UnknownOpcodeError) if the byte at PC has no
// opcode-table entry.
func (c *CPU) Step(observer Observer) (bool, error) {
	opcode := c.Bus.ReadByte(c.PC)
	entry := lookup(opcode)
	if entry == nil {
		return false, &UnknownOpcodeError{Opcode: opcode, PC: c.PC}
	}
	c.IR = entry.Instruction

	if observer != nil && observer(c.snapshot()) {
		return true, nil
	}

	c.execute(entry)
	c.Cycles += uint64(entry.Cycles)
	return false, nil
}

// Run steps the CPU until observer requests a stop or Step returns an
// error, whichever comes first. A nil observer runs forever (or until an
// unknown opcode is hit), so callers driving a fixed-length program should
// always supply one.
func (c *CPU) Run(observer Observer) error {
	for {
		stop, err := c.Step(observer)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
}

// pushByte writes v to the current stack address and decrements SP's low
// byte, with 8-bit wraparound -- the stack never leaves page 1.
func (c *CPU) pushByte(v byte) {
	c.Bus.WriteByte(c.SP, v)
	c.SP = stackPage | uint16(byte(c.SP)-1)
}

// popByte increments SP's low byte and reads the byte now on top of the
// stack.
func (c *CPU) popByte() byte {
	c.SP = stackPage | uint16(byte(c.SP)+1)
	return c.Bus.ReadByte(c.SP)
}

// pushWord pushes v high byte first, then low byte, matching the order
// JSR/BRK use and RTS/RTI reverse.
func (c *CPU) pushWord(v uint16) {
	c.pushByte(byte(v >> 8))
	c.pushByte(byte(v))
}

// popWord pops low byte then high byte, the inverse of pushWord.
func (c *CPU) popWord() uint16 {
	lo := c.popByte()
	hi := c.popByte()
	return uint16(hi)<<8 | uint16(lo)
}

// PeekByte reads a byte from the bus without affecting any CPU state --
// useful for inspection (debuggers, tests) without the side effects a real
// instruction fetch would have.
func (c *CPU) PeekByte(addr uint16) byte {
	return c.Bus.ReadByte(addr)
}

// StackDepth reports how many bytes currently separate SP from an empty
// stack ($01FF), i.e. how many bytes have been pushed.
func (c *CPU) StackDepth() int {
	return int(0xFF - byte(c.SP))
}

// Disassemble renders a one-line mnemonic for the instruction at addr,
// without advancing the CPU: "LDA #$10", "JMP $C000", and so on. Undefined
// opcodes render as "??? (0xXX)", e.g. "??? (0x02)".
func (c *CPU) Disassemble(addr uint16) string {
	opcode := c.Bus.ReadByte(addr)
	entry := lookup(opcode)
	if entry == nil {
		return fmt.Sprintf("??? (0x%02X)", opcode)
	}

	mnemonic := entry.Instruction.String()
	switch entry.Mode {
	case Implied:
		return mnemonic
	case Accumulator:
		return mnemonic + " A"
	case Immediate:
		return fmt.Sprintf("%s #$%02X", mnemonic, c.Bus.ReadByte(addr+1))
	case ZeroPage:
		return fmt.Sprintf("%s $%02X", mnemonic, c.Bus.ReadByte(addr+1))
	case ZeroPageX:
		return fmt.Sprintf("%s $%02X,X", mnemonic, c.Bus.ReadByte(addr+1))
	case ZeroPageY:
		return fmt.Sprintf("%s $%02X,Y", mnemonic, c.Bus.ReadByte(addr+1))
	case Relative:
		return fmt.Sprintf("%s $%02X", mnemonic, c.Bus.ReadByte(addr+1))
	case Absolute:
		return fmt.Sprintf("%s $%04X", mnemonic, wordAt(c, addr+1))
	case AbsoluteX:
		return fmt.Sprintf("%s $%04X,X", mnemonic, wordAt(c, addr+1))
	case AbsoluteY:
		return fmt.Sprintf("%s $%04X,Y", mnemonic, wordAt(c, addr+1))
	case Indirect:
		return fmt.Sprintf("%s ($%04X)", mnemonic, wordAt(c, addr+1))
	case IndexedIndirectX:
		return fmt.Sprintf("%s ($%02X,X)", mnemonic, c.Bus.ReadByte(addr+1))
	case IndirectIndexedY:
		return fmt.Sprintf("%s ($%02X),Y", mnemonic, c.Bus.ReadByte(addr+1))
	default:
		return mnemonic
	}
}

func wordAt(c *CPU, addr uint16) uint16 {
	lo := c.Bus.ReadByte(addr)
	hi := c.Bus.ReadByte(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}
