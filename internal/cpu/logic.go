package cpu

// and performs a bitwise AND of a and b.
//
//	AND A, n
//	n = A, B, C, D, E, H, L, (HL), n8
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(a, b uint8) uint8 {
	computed := a & b
	c.setFlags(computed == 0, false, true, false)
	return computed
}

// or performs a bitwise OR of a and b.
//
//	OR A, n
//	n = A, B, C, D, E, H, L, (HL), n8
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(a, b uint8) uint8 {
	computed := a | b
	c.setFlags(computed == 0, false, false, false)
	return computed
}

// xor performs a bitwise XOR of a and b.
//
//	XOR A, n
//	n = A, B, C, D, E, H, L, (HL), n8
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(a, b uint8) uint8 {
	computed := a ^ b
	c.setFlags(computed == 0, false, false, false)
	return computed
}

// compare subtracts b from a, discarding the result.
//
//	CP A, n
//	n = A, B, C, D, E, H, L, (HL), n8
//
// Flags affected:
//
//	Z - Set if a == b.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if a < b.
func (c *CPU) compare(a, b uint8) {
	c.sub(a, b, false)
}
