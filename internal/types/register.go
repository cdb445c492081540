package types

// Register represents an 8-bit SM83 register. The 8-bit registers
// have no storage of their own: A, F, B, C, D, E, H and L are the
// high and low halves of a RegisterPair.
type Register = uint8

// RegisterPair represents a pair of 8-bit registers which together
// hold a 16-bit value. The CPU has 4 register pairs: AF, BC, DE, and
// HL. The first register of the pair is stored in the high byte.
type RegisterPair uint16

// Uint16 returns the value of the RegisterPair as an uint16.
func (r RegisterPair) Uint16() uint16 {
	return uint16(r)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	*r = RegisterPair(value)
}

// High returns the high register of the pair.
func (r RegisterPair) High() Register {
	return Register(r >> 8)
}

// Low returns the low register of the pair.
func (r RegisterPair) Low() Register {
	return Register(r)
}

// SetHigh sets the high register of the pair, leaving the low
// register untouched.
func (r *RegisterPair) SetHigh(value Register) {
	*r = RegisterPair(uint16(value)<<8 | uint16(*r)&0x00FF)
}

// SetLow sets the low register of the pair, leaving the high
// register untouched.
func (r *RegisterPair) SetLow(value Register) {
	*r = RegisterPair(uint16(*r)&0xFF00 | uint16(value))
}
