package cpu

import (
	"errors"
	"fmt"
)

// ErrDecimalSBCUnimplemented is the sentinel wrapped into the panic SBC
// raises when the decimal flag is set. Decimal-mode subtraction is out of
// scope; this exists so a caller that somehow reaches it gets a named,
// greppable cause rather than a silent wrong answer.
var ErrDecimalSBCUnimplemented = errors.New("decimal-mode SBC is not implemented")

// UnknownOpcodeError is returned by Step/Run when the byte at PC has no
// entry in opcodeTable -- one of the 105 undefined 6502 opcodes. It is the
// only error Step ever returns. Every other failure panics instead: a
// disallowed addressing mode reaching resolve (a programmer error in the
// opcode table), and decimal-mode SBC, which any program reaches by
// executing SBC while the decimal flag is set.
type UnknownOpcodeError struct {
	Opcode byte
	PC     uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode 0x%02X at $%04X", e.Opcode, e.PC)
}
