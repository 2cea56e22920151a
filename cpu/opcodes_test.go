package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeTableDefinedCount(t *testing.T) {
	defined := 0
	for _, entry := range opcodeTable {
		if entry != nil {
			defined++
		}
	}
	assert.Equal(t, 151, defined)
}

func TestOpcodeTableLookup(t *testing.T) {
	for _, tt := range []struct {
		opcode byte
		inst   Instruction
		mode   AddressingMode
		cycles byte
	}{
		{0xA9, LDA, Immediate, 2},
		{0x00, BRK, Implied, 7},
		{0x6C, JMP, Indirect, 5},
		{0xCA, DEX, Implied, 2},
		{0xD0, BNE, Relative, 2},
		{0x69, ADC, Immediate, 2},
		{0xE9, SBC, Immediate, 2},
		{0x91, STA, IndirectIndexedY, 6},
		{0x81, STA, IndexedIndirectX, 6},
	} {
		entry := lookup(tt.opcode)
		assert.NotNil(t, entry, "opcode %#02x should be defined", tt.opcode)
		assert.Equal(t, tt.inst, entry.Instruction)
		assert.Equal(t, tt.mode, entry.Mode)
		assert.Equal(t, tt.cycles, entry.Cycles)
	}
}

func TestOpcodeTableUndefinedSlotsAreNil(t *testing.T) {
	for _, opcode := range []byte{0x02, 0x03, 0x0B, 0xFF, 0x04, 0x12} {
		assert.Nil(t, lookup(opcode), "opcode %#02x should be undefined", opcode)
	}
}

func TestAddPanicsOnDuplicateOpcode(t *testing.T) {
	assert.Panics(t, func() {
		add(0xA9, LDX, Immediate, 2) // 0xA9 already registered to LDA
	})
}

func TestAddPanicsOnDuplicateModeForInstruction(t *testing.T) {
	assert.Panics(t, func() {
		add(0xFF, LDA, Immediate, 2) // LDA already has an Immediate entry
	})
}
