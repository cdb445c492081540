package cpu

import (
	"fmt"

	"github.com/thelolagemann/sm83/internal/types"
)

// Reg selects a register of the register file.
type Reg uint8

const (
	RegA Reg = iota
	RegF
	RegB
	RegC
	RegD
	RegE
	RegH
	RegL
	RegAF
	RegBC
	RegDE
	RegHL
	RegSP
	RegPC
)

var regNames = [...]string{"A", "F", "B", "C", "D", "E", "H", "L", "AF", "BC", "DE", "HL", "SP", "PC"}

func (r Reg) String() string {
	if int(r) < len(regNames) {
		return regNames[r]
	}
	return fmt.Sprintf("Reg(%d)", uint8(r))
}

// Is16 returns true for the register pairs, SP and PC.
func (r Reg) Is16() bool {
	return r >= RegAF && r <= RegPC
}

// Registers is the SM83 register file. The 8-bit registers are views
// onto the high and low bytes of the four register pairs, so writing
// to B changes BC and vice versa.
type Registers struct {
	AF types.RegisterPair
	BC types.RegisterPair
	DE types.RegisterPair
	HL types.RegisterPair

	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
}

// NewRegisters returns a register file holding the values the boot ROM
// leaves behind on a DMG.
func NewRegisters() Registers {
	return Registers{
		AF: 0x01B0,
		BC: 0x0013,
		DE: 0x00D8,
		HL: 0x014D,
		SP: types.ResetSP,
		PC: types.ResetPC,
	}
}

// A returns the accumulator.
func (r *Registers) A() uint8 { return r.AF.High() }

// F returns the flag register.
func (r *Registers) F() uint8 { return r.AF.Low() }

func (r *Registers) setA(v uint8) { r.AF.SetHigh(v) }
func (r *Registers) setF(v uint8) { r.AF.SetLow(v & 0xF0) }

// Get8 returns the value of an 8-bit register.
func (r *Registers) Get8(reg Reg) (uint8, error) {
	switch reg {
	case RegA:
		return r.AF.High(), nil
	case RegF:
		return r.AF.Low(), nil
	case RegB:
		return r.BC.High(), nil
	case RegC:
		return r.BC.Low(), nil
	case RegD:
		return r.DE.High(), nil
	case RegE:
		return r.DE.Low(), nil
	case RegH:
		return r.HL.High(), nil
	case RegL:
		return r.HL.Low(), nil
	}
	return 0, &InvalidRegisterError{Register: reg.String(), Op: "8-bit read"}
}

// Set8 sets the value of an 8-bit register. The low nibble of F is
// always cleared.
func (r *Registers) Set8(reg Reg, v uint8) error {
	switch reg {
	case RegA:
		r.AF.SetHigh(v)
	case RegF:
		r.setF(v)
	case RegB:
		r.BC.SetHigh(v)
	case RegC:
		r.BC.SetLow(v)
	case RegD:
		r.DE.SetHigh(v)
	case RegE:
		r.DE.SetLow(v)
	case RegH:
		r.HL.SetHigh(v)
	case RegL:
		r.HL.SetLow(v)
	default:
		return &InvalidRegisterError{Register: reg.String(), Op: "8-bit write"}
	}
	return nil
}

// Get16 returns the value of a register pair, SP or PC.
func (r *Registers) Get16(reg Reg) (uint16, error) {
	switch reg {
	case RegAF:
		return r.AF.Uint16(), nil
	case RegBC:
		return r.BC.Uint16(), nil
	case RegDE:
		return r.DE.Uint16(), nil
	case RegHL:
		return r.HL.Uint16(), nil
	case RegSP:
		return r.SP, nil
	case RegPC:
		return r.PC, nil
	}
	return 0, &InvalidRegisterError{Register: reg.String(), Op: "16-bit read"}
}

// Set16 sets the value of a register pair, SP or PC. Writing AF
// clears the low nibble of F.
func (r *Registers) Set16(reg Reg, v uint16) error {
	switch reg {
	case RegAF:
		r.AF.SetUint16(v & 0xFFF0)
	case RegBC:
		r.BC.SetUint16(v)
	case RegDE:
		r.DE.SetUint16(v)
	case RegHL:
		r.HL.SetUint16(v)
	case RegSP:
		r.SP = v
	case RegPC:
		r.PC = v
	default:
		return &InvalidRegisterError{Register: reg.String(), Op: "16-bit write"}
	}
	return nil
}

func (r *Registers) String() string {
	return fmt.Sprintf("AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X [%s]",
		r.AF.Uint16(), r.BC.Uint16(), r.DE.Uint16(), r.HL.Uint16(), r.SP, r.PC, r.flagString())
}

func (r *Registers) flagString() string {
	b := []byte("----")
	for i, f := range []Flag{FlagZero, FlagSubtract, FlagHalfCarry, FlagCarry} {
		if r.isFlagSet(f) {
			b[i] = "ZNHC"[i]
		}
	}
	return string(b)
}
