package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go6502/bus"
)

// newTestCPU wires a fresh RAM-backed CPU with the reset vector pointing at
// origin, so tests can load a handful of instruction bytes there and Step
// through them without worrying about the rest of the address space.
func newTestCPU(origin uint16) (*CPU, *bus.RAM) {
	mem := bus.NewRAM()
	mem.WriteByte(0xFFFC, byte(origin>>8))
	mem.WriteByte(0xFFFD, byte(origin))
	return New(mem), mem
}

func TestLDAImmediateSetsNZ(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0xA9, 0x00}) // LDA #$00
	_, err := c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x00), c.A)
	assert.True(t, c.P.Zero())
	assert.False(t, c.P.Negative())

	c, mem = newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0xA9, 0x80}) // LDA #$80
	_, err = c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x80), c.A)
	assert.False(t, c.P.Zero())
	assert.True(t, c.P.Negative())
}

func TestSTAAbsolute(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x8D, 0x00, 0x20}) // STA $2000
	c.A = 0x42
	_, err := c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), mem.ReadByte(0x2000))
}

func TestADCBinaryCarryAndOverflow(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x69, 0x41}) // ADC #$41 (65)
	c.A = 0x40                             // 64
	_, err := c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x81), c.A) // -127 in two's complement
	assert.False(t, c.P.Carry())
	assert.True(t, c.P.Overflow(), "two positives summing negative must set V")
}

func TestADCBCD(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x69, 0x29}) // ADC #$29
	c.P = c.P.withDecimal(true)
	c.A = 0x19
	_, err := c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x48), c.A)
	assert.False(t, c.P.Carry())
}

func TestADCBCDWithIncomingCarry(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x69, 0x01}) // ADC #$01
	c.P = c.P.withDecimal(true).withCarry(true)
	c.A = 0x99
	_, err := c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), c.A) // 99 + 1 + 1 = 101 -> wraps to 01 packed-decimal
	assert.True(t, c.P.Carry())
}

func TestSBCBinary(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0xE9, 0x01}) // SBC #$01
	c.A = 0x05
	c.P = c.P.withCarry(true) // carry set means "no borrow" going in
	_, err := c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x04), c.A)
	assert.True(t, c.P.Carry())
}

func TestSBCDecimalPanics(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0xE9, 0x01})
	c.P = c.P.withDecimal(true).withCarry(true)
	assert.PanicsWithError(t, "SBC: decimal-mode SBC is not implemented", func() {
		_, _ = c.Step(nil)
	})
}

func TestANDOraEor(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x29, 0x0F}) // AND #$0F
	c.A = 0xFF
	_, err := c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x0F), c.A)

	c, mem = newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x09, 0xF0}) // ORA #$F0
	c.A = 0x0F
	_, err = c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0xFF), c.A)

	c, mem = newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x49, 0xFF}) // EOR #$FF
	c.A = 0x0F
	_, err = c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0xF0), c.A)
}

func TestASLMemoryAndAccumulator(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x06, 0x10}) // ASL $10
	mem.WriteByte(0x0010, 0x81)
	_, err := c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x02), mem.ReadByte(0x0010))
	assert.True(t, c.P.Carry())

	c, mem = newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x0A}) // ASL A
	c.A = 0x40
	_, err = c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x80), c.A)
	assert.False(t, c.P.Carry())
	assert.True(t, c.P.Negative())
}

func TestLSR(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x4A}) // LSR A
	c.A = 0x03
	_, err := c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), c.A)
	assert.True(t, c.P.Carry())
}

func TestROLThroughCarry(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x2A}) // ROL A
	c.A = 0x80
	c.P = c.P.withCarry(true)
	_, err := c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), c.A) // bit shifted in from old carry
	assert.True(t, c.P.Carry())      // old bit 7 shifted out
}

func TestRORThroughCarry(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x6A}) // ROR A
	c.A = 0x01
	c.P = c.P.withCarry(true)
	_, err := c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x80), c.A)
	assert.True(t, c.P.Carry())
}

func TestBITEqualityQuirk(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x24, 0x10}) // BIT $10
	mem.WriteByte(0x0010, 0xC0)            // N and V bits set in the operand
	c.A = 0xC0                             // equal to operand -> Z set per the equality quirk
	_, err := c.Step(nil)
	require.NoError(t, err)
	assert.True(t, c.P.Zero())
	assert.True(t, c.P.Negative())
	assert.True(t, c.P.Overflow())

	c, mem = newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x24, 0x10})
	mem.WriteByte(0x0010, 0x00)
	c.A = 0xFF // (A AND M) == 0 here, but A != M, so Z must be false
	_, err = c.Step(nil)
	require.NoError(t, err)
	assert.False(t, c.P.Zero())
}

func TestCMPFamily(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0xC9, 0x40}) // CMP #$40
	c.A = 0x40
	_, err := c.Step(nil)
	require.NoError(t, err)
	assert.True(t, c.P.Zero())
	assert.True(t, c.P.Carry())

	c, mem = newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0xE0, 0x50}) // CPX #$50
	c.X = 0x10
	_, err = c.Step(nil)
	require.NoError(t, err)
	assert.False(t, c.P.Carry(), "X < M means a borrow occurred")
}

func TestIncDec(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0xE6, 0x10}) // INC $10
	mem.WriteByte(0x0010, 0xFF)
	_, err := c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x00), mem.ReadByte(0x0010))
	assert.True(t, c.P.Zero())

	c, mem = newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0xCA}) // DEX
	c.X = 0x01
	_, err = c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x00), c.X)
	assert.True(t, c.P.Zero())
}

func TestBranchTakenAndNotTaken(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0xF0, 0x05}) // BEQ +5
	c.P = c.P.withZero(true)
	_, err := c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x8007), c.PC) // 0x8002 + 5

	c, mem = newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0xF0, 0x05})
	c.P = c.P.withZero(false)
	_, err = c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x8002), c.PC)
}

func TestJMPAbsoluteAndIndirectPageWrapBug(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x4C, 0x00, 0x90}) // JMP $9000
	_, err := c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x9000), c.PC)

	c, mem = newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x6C, 0xFF, 0x30}) // JMP ($30FF)
	mem.WriteByte(0x30FF, 0x00)
	mem.WriteByte(0x3000, 0x40) // wrapped read: high byte from $3000, not $3100
	mem.WriteByte(0x3100, 0x99)
	_, err = c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x4000), c.PC)
}

func TestJSRAndRTSRoundTrip(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x20, 0x00, 0x90}) // JSR $9000
	mem.LoadAt(0x9000, []byte{0x60})             // RTS
	_, err := c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x9000), c.PC)
	assert.Equal(t, 2, c.StackDepth())

	_, err = c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x8003), c.PC) // return address + 1
	assert.Equal(t, 0, c.StackDepth())
}

func TestBRKAndRTIRoundTrip(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x00, 0x00}) // BRK, padding byte
	mem.WriteByte(0xFFFE, 0x00)
	mem.WriteByte(0xFFFF, 0x90)
	mem.LoadAt(0x9000, []byte{0x40}) // RTI

	_, err := c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x9000), c.PC)
	assert.True(t, c.P.Interrupt())

	_, err = c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x8002), c.PC) // popped PC, no +1
	assert.Equal(t, 0, c.StackDepth())
}

func TestStackInstructions(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x48, 0x68}) // PHA, PLA
	c.A = 0x55
	_, err := c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, c.StackDepth())

	c.A = 0x00
	_, err = c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x55), c.A)
	assert.Equal(t, 0, c.StackDepth())
}

func TestPHPPLPPreservesUnusedBit(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x08, 0x28}) // PHP, PLP
	c.P = c.P.withCarry(true).withNegative(true)
	_, err := c.Step(nil)
	require.NoError(t, err)

	c.P = resetStatus // clobber before popping
	_, err = c.Step(nil)
	require.NoError(t, err)
	assert.True(t, c.P.Carry())
	assert.True(t, c.P.Negative())
	assert.Equal(t, byte(0b0010_0000), c.P.Byte()&0b0010_0000)
}

func TestFlagSetAndClearInstructions(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x38, 0x18}) // SEC, CLC
	_, err := c.Step(nil)
	require.NoError(t, err)
	assert.True(t, c.P.Carry())
	_, err = c.Step(nil)
	require.NoError(t, err)
	assert.False(t, c.P.Carry())
}

func TestTransferInstructions(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0xAA, 0xA8, 0xBA, 0x8A, 0x9A, 0x98})
	c.A = 0x42
	_, err := c.Step(nil) // TAX
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), c.X)

	_, err = c.Step(nil) // TAY
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), c.Y)

	_, err = c.Step(nil) // TSX
	require.NoError(t, err)
	assert.Equal(t, byte(0xFF), c.X)

	c.X = 0x33
	_, err = c.Step(nil) // TXA
	require.NoError(t, err)
	assert.Equal(t, byte(0x33), c.A)

	_, err = c.Step(nil) // TXS
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0133), c.SP)

	c.Y = 0x77
	_, err = c.Step(nil) // TYA
	require.NoError(t, err)
	assert.Equal(t, byte(0x77), c.A)
}

func TestNOP(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0xEA})
	before := *c
	_, err := c.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, before.A, c.A)
	assert.Equal(t, before.X, c.X)
	assert.Equal(t, before.Y, c.Y)
	assert.Equal(t, uint16(0x8001), c.PC)
}

func TestUnknownOpcode(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.LoadAt(0x8000, []byte{0x02}) // undefined
	_, err := c.Step(nil)
	require.Error(t, err)
	var unknown *UnknownOpcodeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, byte(0x02), unknown.Opcode)
}
