package cpu

// swap exchanges the upper and lower nibbles of b.
//
//	SWAP n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swap(b uint8) uint8 {
	computed := b<<4 | b>>4
	c.setFlags(computed == 0, false, false, false)
	return computed
}
