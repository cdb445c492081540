package cpu

import (
	"github.com/thelolagemann/sm83/internal/opcodes"
)

// execute runs a decoded instruction. PC already points at the next
// instruction. taken reports whether a conditional instruction
// branched; it is true for every unconditional instruction.
func (c *CPU) execute(d *decoded) (taken bool, err error) {
	ops := d.ops()

	switch d.Mnemonic {
	case opcodes.NOP:
	case opcodes.LD:
		if !d.Prefixed && d.Opcode == 0x40 && c.Debug {
			c.DebugBreakpoint = true
		}
		err = c.load(d)
	case opcodes.LDH:
		err = c.loadHigh(ops)
	case opcodes.PUSH:
		var v uint16
		if v, err = c.read16(single(ops)); err == nil {
			c.pushStack(v)
		}
	case opcodes.POP:
		dst := single(ops)
		if err = checkWidth(dst, 16); err == nil {
			err = c.write16(dst, c.popStack())
		}

	case opcodes.ADD:
		err = c.add8or16(ops)
	case opcodes.ADC:
		err = c.arithmetic(ops, true, func(a, b uint8) uint8 { return c.add(a, b, true) })
	case opcodes.SUB:
		err = c.arithmetic(ops, true, func(a, b uint8) uint8 { return c.sub(a, b, false) })
	case opcodes.SBC:
		err = c.arithmetic(ops, true, func(a, b uint8) uint8 { return c.sub(a, b, true) })
	case opcodes.AND:
		err = c.arithmetic(ops, true, c.and)
	case opcodes.OR:
		err = c.arithmetic(ops, true, c.or)
	case opcodes.XOR:
		err = c.arithmetic(ops, true, c.xor)
	case opcodes.CP:
		err = c.arithmetic(ops, false, func(a, b uint8) uint8 { c.compare(a, b); return a })
	case opcodes.INC:
		err = c.step8or16(single(ops), c.increment, c.incrementNN)
	case opcodes.DEC:
		err = c.step8or16(single(ops), c.decrement, c.decrementNN)

	case opcodes.JP:
		return c.jumpAbsolute(ops)
	case opcodes.JR:
		return c.jumpRelative(ops)
	case opcodes.CALL:
		return c.call(ops)
	case opcodes.RET:
		return c.ret(ops)
	case opcodes.RETI:
		c.retInterrupt()
	case opcodes.RST:
		err = c.restart(single(ops))

	case opcodes.DI:
		c.ime = false
	case opcodes.EI:
		c.ime = true
	case opcodes.HALT:
		c.status = Halted
	case opcodes.STOP:
		c.status = Stopped

	case opcodes.DAA:
		c.decimalAdjust()
	case opcodes.CPL:
		c.complement()
	case opcodes.SCF:
		c.setCarryFlag()
	case opcodes.CCF:
		c.complementCarryFlag()
	case opcodes.RLCA:
		c.rotateAccumulator(c.rotateLeftCarry)
	case opcodes.RRCA:
		c.rotateAccumulator(c.rotateRightCarry)
	case opcodes.RLA:
		c.rotateAccumulator(c.rotateLeftThroughCarry)
	case opcodes.RRA:
		c.rotateAccumulator(c.rotateRightThroughCarry)

	case opcodes.RLC:
		err = c.modify(single(ops), c.rotateLeftCarry)
	case opcodes.RRC:
		err = c.modify(single(ops), c.rotateRightCarry)
	case opcodes.RL:
		err = c.modify(single(ops), c.rotateLeftThroughCarry)
	case opcodes.RR:
		err = c.modify(single(ops), c.rotateRightThroughCarry)
	case opcodes.SLA:
		err = c.modify(single(ops), c.shiftLeftArithmetic)
	case opcodes.SRA:
		err = c.modify(single(ops), c.shiftRightArithmetic)
	case opcodes.SWAP:
		err = c.modify(single(ops), c.swap)
	case opcodes.SRL:
		err = c.modify(single(ops), c.shiftRightLogical)
	case opcodes.BIT:
		err = c.bitOp(ops, func(v, bit uint8) (uint8, bool) { c.testBit(v, bit); return v, false })
	case opcodes.RES:
		err = c.bitOp(ops, func(v, bit uint8) (uint8, bool) { return c.clearBit(v, bit), true })
	case opcodes.SET:
		err = c.bitOp(ops, func(v, bit uint8) (uint8, bool) { return c.setBit(v, bit), true })

	default:
		// PREFIX is consumed by the decoder and never executed
		return false, &UnknownOpcodeError{Opcode: d.Opcode, Prefixed: d.Prefixed, PC: d.pc}
	}

	return err == nil, err
}

// single returns the only operand, or a None operand that every
// accessor rejects.
func single(ops []Operand) Operand {
	if len(ops) != 1 {
		return Operand{}
	}
	return ops[0]
}

func checkWidth(o Operand, width uint8) error {
	if o.Width() != width {
		return &InvalidOperandWidthError{Expected: width, Got: o.Width()}
	}
	return nil
}

// accumulatorOperands returns the destination and source of an 8-bit
// ALU instruction. Tables list the accumulator explicitly (ADD A, B)
// but the shorter single operand form (SUB B) is accepted as well.
func accumulatorOperands(ops []Operand) (Operand, Operand) {
	if len(ops) == 1 {
		return Operand{Kind: OperandRegister, Register: RegA}, ops[0]
	}
	if len(ops) != 2 {
		return Operand{}, Operand{}
	}
	return ops[0], ops[1]
}

// arithmetic applies fn to the destination and source, storing the
// result in the destination when store is set.
func (c *CPU) arithmetic(ops []Operand, store bool, fn func(a, b uint8) uint8) error {
	dst, src := accumulatorOperands(ops)
	a, err := c.read8(dst)
	if err != nil {
		return err
	}
	b, err := c.read8(src)
	if err != nil {
		return err
	}
	result := fn(a, b)
	if !store {
		return nil
	}
	return c.write8(dst, result)
}

// add8or16 dispatches ADD on the width of its destination: ADD A, n,
// ADD HL, rr or ADD SP, e8.
func (c *CPU) add8or16(ops []Operand) error {
	dst, src := accumulatorOperands(ops)
	if dst.Width() != 16 {
		return c.arithmetic(ops, true, func(a, b uint8) uint8 { return c.add(a, b, false) })
	}

	a, err := c.read16(dst)
	if err != nil {
		return err
	}
	if dst.Kind == OperandRegister && dst.Register == RegSP {
		offset, err := c.read8(src)
		if err != nil {
			return err
		}
		return c.write16(dst, c.addSPSigned(a, offset))
	}
	b, err := c.read16(src)
	if err != nil {
		return err
	}
	return c.write16(dst, c.addUint16(a, b))
}

// step8or16 dispatches INC and DEC on the width of the operand.
func (c *CPU) step8or16(o Operand, fn8 func(uint8) uint8, fn16 func(uint16) uint16) error {
	if o.Width() == 16 {
		v, err := c.read16(o)
		if err != nil {
			return err
		}
		return c.write16(o, fn16(v))
	}
	return c.modify(o, fn8)
}

// modify replaces an 8-bit operand with fn applied to it.
func (c *CPU) modify(o Operand, fn func(uint8) uint8) error {
	v, err := c.read8(o)
	if err != nil {
		return err
	}
	return c.write8(o, fn(v))
}

// bitOp runs BIT, RES or SET. fn returns the new value and whether it
// needs to be written back.
func (c *CPU) bitOp(ops []Operand, fn func(v, bit uint8) (uint8, bool)) error {
	if len(ops) != 2 {
		return &UnknownOperandError{Name: "bit operands"}
	}
	bit, err := c.read8(ops[0])
	if err != nil {
		return err
	}
	v, err := c.read8(ops[1])
	if err != nil {
		return err
	}
	if result, write := fn(v, bit&0x7); write {
		return c.write8(ops[1], result)
	}
	return nil
}
