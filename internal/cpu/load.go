package cpu

import (
	"github.com/thelolagemann/sm83/internal/opcodes"
	"github.com/thelolagemann/sm83/internal/types"
)

// load copies the source operand into the destination operand. The
// width of the transfer is the width of the destination, except when
// the destination is memory, where the source decides. This is how
// LD (a16), SP stores both bytes of SP.
//
//	LD r, r'
//	LD r, n8
//	LD rr, n16
//	LD (rr), A
//	LD A, (rr)
//	LD (a16), SP
//	LD SP, HL
//	LD (HL+), A
//	LD A, (HL-)
//
// Flags affected: none.
func (c *CPU) load(d *decoded) error {
	ops := d.ops()
	if len(ops) == 3 {
		return c.loadStackOffset(ops)
	}
	if len(ops) != 2 {
		return &UnknownOperandError{Name: "LD operands"}
	}
	dst, src := ops[0], ops[1]

	width := dst.Width()
	if dst.Kind == OperandMemory {
		width = src.Width()
	}

	switch width {
	case 8:
		v, err := c.read8(src)
		if err != nil {
			return err
		}
		if err := c.write8(dst, v); err != nil {
			return err
		}
	case 16:
		v, err := c.read16(src)
		if err != nil {
			return err
		}
		if dst.Kind == OperandMemory {
			c.bus.WriteWord(dst.Address, v)
		} else if err := c.write16(dst, v); err != nil {
			return err
		}
	default:
		return &InvalidOperandWidthError{Expected: 8, Got: width}
	}

	c.postIncrement(d.Operands)
	return nil
}

// postIncrement applies the (HL+) and (HL-) addressing modes once the
// transfer has completed.
func (c *CPU) postIncrement(descs []opcodes.Operand) {
	for _, desc := range descs {
		if desc.Immediate || desc.Name != opcodes.HL {
			continue
		}
		if desc.Increment {
			c.HL.SetUint16(c.HL.Uint16() + 1)
		} else if desc.Decrement {
			c.HL.SetUint16(c.HL.Uint16() - 1)
		}
	}
}

// loadStackOffset loads SP plus a signed offset into the destination.
//
//	LD HL, SP+e8
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) loadStackOffset(ops []Operand) error {
	sp, err := c.read16(ops[1])
	if err != nil {
		return err
	}
	offset, err := c.read8(ops[2])
	if err != nil {
		return err
	}
	return c.write16(ops[0], c.addSPSigned(sp, offset))
}

// loadHigh transfers a byte between A and the high page. An 8-bit
// offset operand addresses 0xFF00 + offset; (C) has already been
// resolved to 0xFF00 + C.
//
//	LDH A, (a8)
//	LDH (a8), A
//	LDH A, (C)
//	LDH (C), A
//
// Flags affected: none.
func (c *CPU) loadHigh(ops []Operand) error {
	if len(ops) != 2 {
		return &UnknownOperandError{Name: "LDH operands"}
	}
	dst, src := highPage(ops[0]), highPage(ops[1])
	if dst.Kind != OperandMemory && src.Kind != OperandMemory {
		return &InvalidRegisterError{Register: dst.String(), Op: "LDH"}
	}

	v, err := c.read8(src)
	if err != nil {
		return err
	}
	return c.write8(dst, v)
}

func highPage(o Operand) Operand {
	switch o.Kind {
	case OperandImmediate8:
		return Operand{Kind: OperandMemory, Address: types.HighPage + o.Value}
	case OperandMemory:
		if o.Address < types.HighPage {
			return Operand{Kind: OperandMemory, Address: types.HighPage + o.Address&0xFF}
		}
	}
	return o
}
