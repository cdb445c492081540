package cpu

// pushStack pushes a 16 bit value onto the stack. The high byte ends
// up at SP+1 and the low byte at SP.
//
//	PUSH nn
//	nn = AF, BC, DE, HL
func (c *CPU) pushStack(value uint16) {
	c.bus.Write(c.SP-1, uint8(value>>8))
	c.bus.Write(c.SP-2, uint8(value))
	c.SP -= 2
}

// popStack pops a 16 bit value off the stack.
//
//	POP nn
//	nn = AF, BC, DE, HL
func (c *CPU) popStack() uint16 {
	lower := uint16(c.bus.Read(c.SP))
	upper := uint16(c.bus.Read(c.SP+1)) << 8
	c.SP += 2
	return lower | upper
}

// condition splits the optional leading condition from the operands
// of a branch instruction. A branch without a condition is always taken.
func (c *CPU) condition(ops []Operand) (bool, []Operand) {
	if len(ops) > 0 && ops[0].Kind == OperandFlag {
		return c.Flag(ops[0].Condition), ops[1:]
	}
	return true, ops
}

// jumpAbsolute jumps to the given address if the condition holds.
//
//	JP nn
//	JP cc, nn
//	JP HL
//	cc = NZ, Z, NC, C
func (c *CPU) jumpAbsolute(ops []Operand) (bool, error) {
	taken, ops := c.condition(ops)
	if len(ops) != 1 {
		return false, &UnknownOperandError{Name: "JP target"}
	}
	address, err := c.read16(ops[0])
	if err != nil || !taken {
		return false, err
	}
	c.PC = address
	return true, nil
}

// jumpRelative adds the signed displacement to PC, which already
// points at the following instruction, if the condition holds.
//
//	JR e
//	JR cc, e
//	cc = NZ, Z, NC, C
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelative(ops []Operand) (bool, error) {
	taken, ops := c.condition(ops)
	if len(ops) != 1 {
		return false, &UnknownOperandError{Name: "JR displacement"}
	}
	offset, err := c.read8(ops[0])
	if err != nil || !taken {
		return false, err
	}
	c.PC = uint16(int32(c.PC) + int32(int8(offset)))
	return true, nil
}

// call pushes the address of the next instruction onto the stack and
// jumps to the given address if the condition holds.
//
//	CALL nn
//	CALL cc, nn
//	cc = NZ, Z, NC, C
func (c *CPU) call(ops []Operand) (bool, error) {
	taken, ops := c.condition(ops)
	if len(ops) != 1 {
		return false, &UnknownOperandError{Name: "CALL target"}
	}
	address, err := c.read16(ops[0])
	if err != nil || !taken {
		return false, err
	}
	c.pushStack(c.PC)
	c.PC = address
	return true, nil
}

// ret pops the return address off the stack if the condition holds.
//
//	RET
//	RET cc
//	cc = NZ, Z, NC, C
func (c *CPU) ret(ops []Operand) (bool, error) {
	taken, ops := c.condition(ops)
	if len(ops) != 0 {
		return false, &UnknownOperandError{Name: "RET operand"}
	}
	if taken {
		c.PC = c.popStack()
	}
	return taken, nil
}

// retInterrupt returns and enables interrupts.
//
//	RETI
func (c *CPU) retInterrupt() {
	c.PC = c.popStack()
	c.ime = true
}

// restart pushes the address of the next instruction onto the stack
// and jumps to one of the fixed restart vectors.
//
//	RST n
//	n = 0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38
func (c *CPU) restart(vector Operand) error {
	address, err := c.read16(vector)
	if err != nil {
		return err
	}
	c.pushStack(c.PC)
	c.PC = address
	return nil
}
