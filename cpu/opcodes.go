package cpu

import "fmt"

// An OpcodeEntry associates an opcode byte with the Instruction it decodes
// to, the AddressingMode used to locate its operand, and the base number of
// clock cycles the instruction consumes. Page-cross penalties are not
// modeled (spec Non-goal: sub-instruction bus-cycle accuracy).
type OpcodeEntry struct {
	Instruction Instruction
	Mode        AddressingMode
	Cycles      byte
}

// opcodeTable is a frozen, sparse 256-slot table: 151 entries populated at
// init time, the rest left nil. Lookup is the table's only observable
// operation at runtime; construction is where uniqueness is enforced.
var opcodeTable [256]*OpcodeEntry

// seenModeByInstruction tracks, per Instruction, which AddressingModes have
// already been registered -- a bitmask keyed by AddressingMode, mirroring
// the uniqueness check the original opcode-table builder performs.
var seenModeByInstruction = map[Instruction]uint16{}

// add registers opcode -> (inst, mode, cycles). It panics on a duplicated
// opcode byte or a repeated (inst, mode) pair: these are programmer errors
// caught at package-init time, never at runtime.
func add(opcode byte, inst Instruction, mode AddressingMode, cycles byte) {
	if opcodeTable[opcode] != nil {
		panic(fmt.Sprintf("opcode %#02x already registered for %s", opcode, opcodeTable[opcode].Instruction))
	}
	modeBit := uint16(1) << uint(mode)
	if seenModeByInstruction[inst]&modeBit != 0 {
		panic(fmt.Sprintf("addressing mode %s already registered for instruction %s", mode, inst))
	}
	seenModeByInstruction[inst] |= modeBit
	opcodeTable[opcode] = &OpcodeEntry{Instruction: inst, Mode: mode, Cycles: cycles}
}

// lookup returns the OpcodeEntry for a given opcode byte, or nil if the
// byte is one of the 105 undefined opcodes.
func lookup(opcode byte) *OpcodeEntry {
	return opcodeTable[opcode]
}

func init() {
	add(0x69, ADC, Immediate, 2)
	add(0x65, ADC, ZeroPage, 3)
	add(0x75, ADC, ZeroPageX, 4)
	add(0x6D, ADC, Absolute, 4)
	add(0x7D, ADC, AbsoluteX, 4)
	add(0x79, ADC, AbsoluteY, 4)
	add(0x61, ADC, IndexedIndirectX, 6)
	add(0x71, ADC, IndirectIndexedY, 5)

	add(0x29, AND, Immediate, 2)
	add(0x25, AND, ZeroPage, 3)
	add(0x35, AND, ZeroPageX, 4)
	add(0x2D, AND, Absolute, 4)
	add(0x3D, AND, AbsoluteX, 4)
	add(0x39, AND, AbsoluteY, 4)
	add(0x21, AND, IndexedIndirectX, 6)
	add(0x31, AND, IndirectIndexedY, 5)

	add(0x0A, ASL, Accumulator, 2)
	add(0x06, ASL, ZeroPage, 5)
	add(0x16, ASL, ZeroPageX, 6)
	add(0x0E, ASL, Absolute, 6)
	add(0x1E, ASL, AbsoluteX, 7)

	add(0x90, BCC, Relative, 2)
	add(0xB0, BCS, Relative, 2)
	add(0xF0, BEQ, Relative, 2)

	add(0x24, BIT, ZeroPage, 3)
	add(0x2C, BIT, Absolute, 4)

	add(0x30, BMI, Relative, 2)
	add(0xD0, BNE, Relative, 2)
	add(0x10, BPL, Relative, 2)

	add(0x00, BRK, Implied, 7)

	add(0x50, BVC, Relative, 2)
	add(0x70, BVS, Relative, 2)

	add(0x18, CLC, Implied, 2)
	add(0xD8, CLD, Implied, 2)
	add(0x58, CLI, Implied, 2)
	add(0xB8, CLV, Implied, 2)

	add(0xC9, CMP, Immediate, 2)
	add(0xC5, CMP, ZeroPage, 3)
	add(0xD5, CMP, ZeroPageX, 4)
	add(0xCD, CMP, Absolute, 4)
	add(0xDD, CMP, AbsoluteX, 4)
	add(0xD9, CMP, AbsoluteY, 4)
	add(0xC1, CMP, IndexedIndirectX, 6)
	add(0xD1, CMP, IndirectIndexedY, 5)

	add(0xE0, CPX, Immediate, 2)
	add(0xE4, CPX, ZeroPage, 3)
	add(0xEC, CPX, Absolute, 4)

	add(0xC0, CPY, Immediate, 2)
	add(0xC4, CPY, ZeroPage, 3)
	add(0xCC, CPY, Absolute, 4)

	add(0xC6, DEC, ZeroPage, 5)
	add(0xD6, DEC, ZeroPageX, 6)
	add(0xCE, DEC, Absolute, 6)
	add(0xDE, DEC, AbsoluteX, 7)

	add(0xCA, DEX, Implied, 2)
	add(0x88, DEY, Implied, 2)

	add(0x49, EOR, Immediate, 2)
	add(0x45, EOR, ZeroPage, 3)
	add(0x55, EOR, ZeroPageX, 4)
	add(0x4D, EOR, Absolute, 4)
	add(0x5D, EOR, AbsoluteX, 4)
	add(0x59, EOR, AbsoluteY, 4)
	add(0x41, EOR, IndexedIndirectX, 6)
	add(0x51, EOR, IndirectIndexedY, 5)

	add(0xE6, INC, ZeroPage, 5)
	add(0xF6, INC, ZeroPageX, 6)
	add(0xEE, INC, Absolute, 6)
	add(0xFE, INC, AbsoluteX, 7)

	add(0xE8, INX, Implied, 2)
	add(0xC8, INY, Implied, 2)

	add(0x4C, JMP, Absolute, 3)
	add(0x6C, JMP, Indirect, 5)

	add(0x20, JSR, Absolute, 6)

	add(0xA9, LDA, Immediate, 2)
	add(0xA5, LDA, ZeroPage, 3)
	add(0xB5, LDA, ZeroPageX, 4)
	add(0xAD, LDA, Absolute, 4)
	add(0xBD, LDA, AbsoluteX, 4)
	add(0xB9, LDA, AbsoluteY, 4)
	add(0xA1, LDA, IndexedIndirectX, 6)
	add(0xB1, LDA, IndirectIndexedY, 5)

	add(0xA2, LDX, Immediate, 2)
	add(0xA6, LDX, ZeroPage, 3)
	add(0xB6, LDX, ZeroPageY, 4)
	add(0xAE, LDX, Absolute, 4)
	add(0xBE, LDX, AbsoluteY, 4)

	add(0xA0, LDY, Immediate, 2)
	add(0xA4, LDY, ZeroPage, 3)
	add(0xB4, LDY, ZeroPageX, 4)
	add(0xAC, LDY, Absolute, 4)
	add(0xBC, LDY, AbsoluteX, 4)

	add(0x4A, LSR, Accumulator, 2)
	add(0x46, LSR, ZeroPage, 5)
	add(0x56, LSR, ZeroPageX, 6)
	add(0x4E, LSR, Absolute, 6)
	add(0x5E, LSR, AbsoluteX, 7)

	add(0xEA, NOP, Implied, 2)

	add(0x09, ORA, Immediate, 2)
	add(0x05, ORA, ZeroPage, 3)
	add(0x15, ORA, ZeroPageX, 4)
	add(0x0D, ORA, Absolute, 4)
	add(0x1D, ORA, AbsoluteX, 4)
	add(0x19, ORA, AbsoluteY, 4)
	add(0x01, ORA, IndexedIndirectX, 6)
	add(0x11, ORA, IndirectIndexedY, 5)

	add(0x48, PHA, Implied, 3)
	add(0x08, PHP, Implied, 3)
	add(0x68, PLA, Implied, 4)
	add(0x28, PLP, Implied, 4)

	add(0x2A, ROL, Accumulator, 2)
	add(0x26, ROL, ZeroPage, 5)
	add(0x36, ROL, ZeroPageX, 6)
	add(0x2E, ROL, Absolute, 6)
	add(0x3E, ROL, AbsoluteX, 7)

	add(0x6A, ROR, Accumulator, 2)
	add(0x66, ROR, ZeroPage, 5)
	add(0x76, ROR, ZeroPageX, 6)
	add(0x6E, ROR, Absolute, 6)
	add(0x7E, ROR, AbsoluteX, 7)

	add(0x40, RTI, Implied, 6)
	add(0x60, RTS, Implied, 6)

	add(0xE9, SBC, Immediate, 2)
	add(0xE5, SBC, ZeroPage, 3)
	add(0xF5, SBC, ZeroPageX, 4)
	add(0xED, SBC, Absolute, 4)
	add(0xFD, SBC, AbsoluteX, 4)
	add(0xF9, SBC, AbsoluteY, 4)
	add(0xE1, SBC, IndexedIndirectX, 6)
	add(0xF1, SBC, IndirectIndexedY, 5)

	add(0x38, SEC, Implied, 2)
	add(0xF8, SED, Implied, 2)
	add(0x78, SEI, Implied, 2)

	add(0x85, STA, ZeroPage, 3)
	add(0x95, STA, ZeroPageX, 4)
	add(0x8D, STA, Absolute, 4)
	add(0x9D, STA, AbsoluteX, 5)
	add(0x99, STA, AbsoluteY, 5)
	add(0x81, STA, IndexedIndirectX, 6)
	add(0x91, STA, IndirectIndexedY, 6)

	add(0x86, STX, ZeroPage, 3)
	add(0x96, STX, ZeroPageY, 4)
	add(0x8E, STX, Absolute, 4)

	add(0x84, STY, ZeroPage, 3)
	add(0x94, STY, ZeroPageX, 4)
	add(0x8C, STY, Absolute, 4)

	add(0xAA, TAX, Implied, 2)
	add(0xA8, TAY, Implied, 2)
	add(0xBA, TSX, Implied, 2)
	add(0x8A, TXA, Implied, 2)
	add(0x9A, TXS, Implied, 2)
	add(0x98, TYA, Implied, 2)
}
