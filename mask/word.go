package mask

// Word combines a high and low byte into a 16-bit little-endian word:
// word = hi<<8 | lo.
func Word(hi, lo byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// SignExtend extends a signed 8-bit offset to a 16-bit word, e.g. 0xff (-1)
// becomes 0xffff, not 0x00ff.
func SignExtend(b byte) uint16 {
	return uint16(int16(int8(b)))
}

// AddRelative adds an 8-bit displacement to the byte base with 8-bit
// wraparound -- the zero-page wrap quirk used by indexed zero-page
// addressing, where the sum never carries out of page 0. It works on a
// single byte only; there is no 16-bit form that adds to an address while
// keeping its high byte. The full-width wraps used elsewhere (absolute
// indexing, relative branches) are plain uint16 additions.
func AddRelative(base byte, displacement byte) byte {
	return base + displacement
}

// IsNegative reports whether b's sign bit (bit 7) is set.
func IsNegative(b byte) bool {
	return b&0x80 != 0
}

// Overflows reports the 6502's signed-overflow predicate for addition: true
// when two same-signed operands (a, b) produce a result (sum) of the
// opposite sign, i.e. the carry into bit 7 differs from the carry out of
// bit 7.
func Overflows(a, b, sum byte) bool {
	return (a^sum)&(b^sum)&0x80 != 0
}

// BCDAdd adds two packed binary-coded-decimal bytes (each nibble a decimal
// digit 0-9) and returns the packed-decimal sum along with whether the sum
// exceeded 99 (the BCD carry).
func BCDAdd(a, b byte) (sum byte, carry bool) {
	aTens, aOnes := a>>4, a&0x0f
	bTens, bOnes := b>>4, b&0x0f
	total := int(aTens)*10 + int(aOnes) + int(bTens)*10 + int(bOnes)
	carry = total > 99
	total %= 100
	return byte(total/10)<<4 | byte(total%10), carry
}
