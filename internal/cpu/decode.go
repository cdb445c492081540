package cpu

import (
	"github.com/thelolagemann/sm83/internal/opcodes"
	"github.com/thelolagemann/sm83/internal/types"
)

// decoded is a fully resolved instruction, ready to be executed.
type decoded struct {
	*opcodes.Instruction

	pc       uint16 // address of the opcode
	next     uint16 // address of the following instruction
	operands [opcodes.MaxOperands]Operand
}

// ops returns the resolved operands.
func (d *decoded) ops() []Operand {
	return d.operands[:len(d.Operands)]
}

// decode fetches and resolves the instruction at PC. Nothing is
// mutated, so decoding the same state twice yields the same result.
func (c *CPU) decode() (*decoded, error) {
	pc := c.PC
	cursor := pc

	opcode := c.bus.ReadROM(cursor)
	cursor++
	prefixed := opcode == 0xCB
	if prefixed {
		opcode = c.bus.ReadROM(cursor)
		cursor++
	}

	instr, ok := c.table.Lookup(opcode, prefixed)
	if !ok {
		return nil, &UnknownOpcodeError{Opcode: opcode, Prefixed: prefixed, PC: pc}
	}

	d := &decoded{Instruction: instr, pc: pc}
	for i, desc := range instr.Operands {
		op, err := c.resolve(desc, instr.Mnemonic, &cursor)
		if err != nil {
			return nil, err
		}
		d.operands[i] = op
	}
	d.next = cursor

	return d, nil
}

// fetch8 reads the byte at the cursor and advances it.
func (c *CPU) fetch8(cursor *uint16) uint8 {
	v := c.bus.ReadROM(*cursor)
	*cursor++
	return v
}

// fetch16 reads the little-endian word at the cursor and advances it.
func (c *CPU) fetch16(cursor *uint16) uint16 {
	low := uint16(c.fetch8(cursor))
	high := uint16(c.fetch8(cursor))
	return high<<8 | low
}

// resolve converts an operand descriptor into an Operand, consuming
// immediate bytes from the cursor. The rules are applied in order:
//
//   - n16/a16 read a word; LD with an indirect descriptor addresses
//     memory, anything else is a 16-bit immediate.
//   - n8/a8/e8 read a byte.
//   - Z, NZ, C and NC are conditions when used by JP, JR, CALL or RET.
//   - registers are used directly, or as an address when indirect.
//     An indirect C addresses the high page.
//   - bit indices and restart vectors are immediates that occupy no
//     instruction bytes.
func (c *CPU) resolve(desc opcodes.Operand, mnemonic opcodes.Mnemonic, cursor *uint16) (Operand, error) {
	name := desc.Name

	switch name.ImmediateBytes() {
	case 2:
		v := c.fetch16(cursor)
		if mnemonic == opcodes.LD && !desc.Immediate {
			return Operand{Kind: OperandMemory, Address: v}, nil
		}
		return Operand{Kind: OperandImmediate16, Value: v}, nil
	case 1:
		return Operand{Kind: OperandImmediate8, Value: uint16(c.fetch8(cursor))}, nil
	}

	if name.IsCondition() && mnemonic.IsBranch() {
		return Operand{Kind: OperandFlag, Condition: conditionFor(name)}, nil
	}

	if name.IsRegister() {
		reg := regFor(name)
		if desc.Immediate {
			return Operand{Kind: OperandRegister, Register: reg}, nil
		}
		switch {
		case reg == RegC:
			return Operand{Kind: OperandMemory, Address: types.HighPage + uint16(c.BC.Low())}, nil
		case reg.Is16():
			addr, _ := c.Get16(reg)
			return Operand{Kind: OperandMemory, Address: addr}, nil
		}
	}

	if bit, ok := name.BitIndex(); ok {
		return Operand{Kind: OperandImmediate8, Value: uint16(bit)}, nil
	}
	if vec, ok := name.Vector(); ok {
		return Operand{Kind: OperandImmediate16, Value: vec}, nil
	}

	return Operand{}, &UnknownOperandError{Name: desc.String()}
}

func regFor(n opcodes.Name) Reg {
	switch n {
	case opcodes.A:
		return RegA
	case opcodes.B:
		return RegB
	case opcodes.C:
		return RegC
	case opcodes.D:
		return RegD
	case opcodes.E:
		return RegE
	case opcodes.H:
		return RegH
	case opcodes.L:
		return RegL
	case opcodes.AF:
		return RegAF
	case opcodes.BC:
		return RegBC
	case opcodes.DE:
		return RegDE
	case opcodes.HL:
		return RegHL
	}
	return RegSP
}

func conditionFor(n opcodes.Name) Condition {
	switch n {
	case opcodes.CondNZ:
		return CondNZ
	case opcodes.C:
		return CondC
	case opcodes.CondNC:
		return CondNC
	}
	return CondZ
}
