package cpu

// Flag is the bit position of a flag in the F register.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// Condition is a flag test, as used by conditional jumps, calls and
// returns.
type Condition uint8

const (
	CondZ Condition = iota
	CondNZ
	CondC
	CondNC
	CondN
	CondH
)

var conditionNames = [...]string{"Z", "NZ", "C", "NC", "N", "H"}

func (c Condition) String() string {
	if int(c) < len(conditionNames) {
		return conditionNames[c]
	}
	return "?"
}

// isFlagSet returns true if the given flag is set.
func (r *Registers) isFlagSet(flag Flag) bool {
	return r.F()&(1<<flag) != 0
}

// Flag evaluates the given condition against the F register.
func (r *Registers) Flag(cond Condition) bool {
	switch cond {
	case CondZ:
		return r.isFlagSet(FlagZero)
	case CondNZ:
		return !r.isFlagSet(FlagZero)
	case CondC:
		return r.isFlagSet(FlagCarry)
	case CondNC:
		return !r.isFlagSet(FlagCarry)
	case CondN:
		return r.isFlagSet(FlagSubtract)
	case CondH:
		return r.isFlagSet(FlagHalfCarry)
	}
	return false
}

// SetFlags sets all four flags at once.
func (r *Registers) SetFlags(zero, subtract, halfCarry, carry bool) {
	var f uint8
	if zero {
		f |= 1 << FlagZero
	}
	if subtract {
		f |= 1 << FlagSubtract
	}
	if halfCarry {
		f |= 1 << FlagHalfCarry
	}
	if carry {
		f |= 1 << FlagCarry
	}
	r.setF(f)
}

// setFlags is shorthand for SetFlags, used by the ALU.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.SetFlags(zero, subtract, halfCarry, carry)
}

// setFlag sets a single flag.
func (c *CPU) setFlag(flag Flag) {
	c.setF(c.F() | 1<<flag)
}

// clearFlag clears a single flag.
func (c *CPU) clearFlag(flag Flag) {
	c.setF(c.F() &^ (1 << flag))
}

// shouldZeroFlag sets the zero flag if value is 0, and clears it
// otherwise.
func (c *CPU) shouldZeroFlag(value uint8) {
	if value == 0 {
		c.setFlag(FlagZero)
	} else {
		c.clearFlag(FlagZero)
	}
}
