package cpu

import "fmt"

// UnknownOpcodeError is returned when the fetched opcode has no entry
// in the opcode table.
type UnknownOpcodeError struct {
	Opcode   uint8
	Prefixed bool
	PC       uint16
}

func (e *UnknownOpcodeError) Error() string {
	if e.Prefixed {
		return fmt.Sprintf("unknown opcode 0xCB 0x%02X at 0x%04X", e.Opcode, e.PC)
	}
	return fmt.Sprintf("unknown opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

// UnknownOperandError is returned when an operand descriptor cannot be
// resolved for the instruction it belongs to.
type UnknownOperandError struct {
	Name string
}

func (e *UnknownOperandError) Error() string {
	return fmt.Sprintf("unknown operand %q", e.Name)
}

// InvalidOperandWidthError is returned when an operand is used at a
// width it does not have.
type InvalidOperandWidthError struct {
	Expected uint8
	Got      uint8
}

func (e *InvalidOperandWidthError) Error() string {
	return fmt.Sprintf("invalid operand width: expected %d-bit, got %d-bit", e.Expected, e.Got)
}

// InvalidRegisterError is returned when a register or operand does
// not support the requested access.
type InvalidRegisterError struct {
	Register string
	Op       string
}

func (e *InvalidRegisterError) Error() string {
	return fmt.Sprintf("invalid register %s for %s", e.Register, e.Op)
}
