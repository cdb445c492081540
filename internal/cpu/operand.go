package cpu

import "fmt"

// OperandKind identifies what an Operand refers to.
type OperandKind uint8

const (
	OperandNone OperandKind = iota
	OperandRegister
	OperandMemory
	OperandImmediate8
	OperandImmediate16
	OperandFlag
)

// Operand is a resolved instruction operand. Operands are built by
// the resolver for a single instruction and are never stored.
type Operand struct {
	Kind      OperandKind
	Register  Reg       // OperandRegister
	Address   uint16    // OperandMemory
	Value     uint16    // OperandImmediate8, OperandImmediate16
	Condition Condition // OperandFlag
}

// Width returns the width of the operand in bits. Memory operands are
// always a single byte.
func (o Operand) Width() uint8 {
	switch o.Kind {
	case OperandRegister:
		if o.Register.Is16() {
			return 16
		}
		return 8
	case OperandMemory, OperandImmediate8:
		return 8
	case OperandImmediate16, OperandFlag:
		return 16
	}
	return 0
}

func (o Operand) String() string {
	switch o.Kind {
	case OperandRegister:
		return o.Register.String()
	case OperandMemory:
		return fmt.Sprintf("(%04X)", o.Address)
	case OperandImmediate8:
		return fmt.Sprintf("%02X", o.Value)
	case OperandImmediate16:
		return fmt.Sprintf("%04X", o.Value)
	case OperandFlag:
		return o.Condition.String()
	}
	return "-"
}

// read8 returns the 8-bit value of the operand.
func (c *CPU) read8(o Operand) (uint8, error) {
	switch o.Kind {
	case OperandRegister:
		if o.Register.Is16() {
			return 0, &InvalidOperandWidthError{Expected: 8, Got: 16}
		}
		return c.Get8(o.Register)
	case OperandMemory:
		return c.bus.Read(o.Address), nil
	case OperandImmediate8:
		return uint8(o.Value), nil
	}
	return 0, &InvalidOperandWidthError{Expected: 8, Got: o.Width()}
}

// write8 stores an 8-bit value into the operand.
func (c *CPU) write8(o Operand, v uint8) error {
	switch o.Kind {
	case OperandRegister:
		if o.Register.Is16() {
			return &InvalidOperandWidthError{Expected: 8, Got: 16}
		}
		return c.Set8(o.Register, v)
	case OperandMemory:
		c.bus.Write(o.Address, v)
		return nil
	}
	return &InvalidRegisterError{Register: o.String(), Op: "write"}
}

// read16 returns the 16-bit value of the operand.
func (c *CPU) read16(o Operand) (uint16, error) {
	switch o.Kind {
	case OperandRegister:
		if !o.Register.Is16() {
			return 0, &InvalidOperandWidthError{Expected: 16, Got: 8}
		}
		return c.Get16(o.Register)
	case OperandImmediate16:
		return o.Value, nil
	}
	return 0, &InvalidOperandWidthError{Expected: 16, Got: o.Width()}
}

// write16 stores a 16-bit value into the operand.
func (c *CPU) write16(o Operand, v uint16) error {
	switch o.Kind {
	case OperandRegister:
		if !o.Register.Is16() {
			return &InvalidOperandWidthError{Expected: 16, Got: 8}
		}
		return c.Set16(o.Register, v)
	case OperandMemory:
		return &InvalidOperandWidthError{Expected: 16, Got: 8}
	}
	return &InvalidRegisterError{Register: o.String(), Op: "write"}
}
