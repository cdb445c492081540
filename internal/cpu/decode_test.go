package cpu

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/sm83/internal/mmu"
	"github.com/thelolagemann/sm83/internal/opcodes"
	"github.com/thelolagemann/sm83/internal/types"
)

func TestResolve(t *testing.T) {
	c, bus := newTestCPU(t)
	require.NoError(t, bus.Load(0xC000, []byte{0x34, 0x12}))
	c.HL.SetUint16(0xC100)
	c.BC.SetLow(0x44)

	for _, tt := range []struct {
		name     string
		desc     opcodes.Operand
		mnemonic opcodes.Mnemonic
		want     Operand
		consumed uint16
	}{
		{"a16 indirect LD", opcodes.Operand{Name: opcodes.A16}, opcodes.LD, Operand{Kind: OperandMemory, Address: 0x1234}, 2},
		{"a16 JP", opcodes.Operand{Name: opcodes.A16, Immediate: true}, opcodes.JP, Operand{Kind: OperandImmediate16, Value: 0x1234}, 2},
		{"n16", opcodes.Operand{Name: opcodes.N16, Immediate: true}, opcodes.LD, Operand{Kind: OperandImmediate16, Value: 0x1234}, 2},
		{"n8", opcodes.Operand{Name: opcodes.N8, Immediate: true}, opcodes.ADD, Operand{Kind: OperandImmediate8, Value: 0x34}, 1},
		{"a8", opcodes.Operand{Name: opcodes.A8}, opcodes.LDH, Operand{Kind: OperandImmediate8, Value: 0x34}, 1},
		{"e8", opcodes.Operand{Name: opcodes.E8, Immediate: true}, opcodes.JR, Operand{Kind: OperandImmediate8, Value: 0x34}, 1},
		{"condition C", opcodes.Operand{Name: opcodes.C, Immediate: true}, opcodes.RET, Operand{Kind: OperandFlag, Condition: CondC}, 0},
		{"condition NZ", opcodes.Operand{Name: opcodes.CondNZ, Immediate: true}, opcodes.JP, Operand{Kind: OperandFlag, Condition: CondNZ}, 0},
		{"register C", opcodes.Operand{Name: opcodes.C, Immediate: true}, opcodes.LD, Operand{Kind: OperandRegister, Register: RegC}, 0},
		{"register SP", opcodes.Operand{Name: opcodes.SP, Immediate: true}, opcodes.ADD, Operand{Kind: OperandRegister, Register: RegSP}, 0},
		{"(HL)", opcodes.Operand{Name: opcodes.HL}, opcodes.INC, Operand{Kind: OperandMemory, Address: 0xC100}, 0},
		{"(C)", opcodes.Operand{Name: opcodes.C}, opcodes.LDH, Operand{Kind: OperandMemory, Address: 0xFF44}, 0},
		{"bit", opcodes.Operand{Name: opcodes.Bit3, Immediate: true}, opcodes.BIT, Operand{Kind: OperandImmediate8, Value: 3}, 0},
		{"vector", opcodes.Operand{Name: opcodes.Vec18, Immediate: true}, opcodes.RST, Operand{Kind: OperandImmediate16, Value: 0x18}, 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			cursor := uint16(0xC000)
			got, err := c.resolve(tt.desc, tt.mnemonic, &cursor)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 0xC000+tt.consumed, cursor)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		for _, desc := range []opcodes.Operand{
			{Name: opcodes.CondNZ, Immediate: true}, // condition outside a branch
			{Name: opcodes.B},                       // (B) is not an addressing mode
			{Name: opcodes.InvalidName, Immediate: true},
		} {
			cursor := uint16(0xC000)
			_, err := c.resolve(desc, opcodes.LD, &cursor)
			var unknown *UnknownOperandError
			assert.Truef(t, errors.As(err, &unknown), "%s: expected UnknownOperandError, got %v", desc, err)
		}
	})
}

func TestOperand_Width(t *testing.T) {
	assert.Equal(t, uint8(8), Operand{Kind: OperandRegister, Register: RegA}.Width())
	assert.Equal(t, uint8(16), Operand{Kind: OperandRegister, Register: RegHL}.Width())
	assert.Equal(t, uint8(8), Operand{Kind: OperandMemory, Address: 0xC000}.Width())
	assert.Equal(t, uint8(8), Operand{Kind: OperandMemory, Address: 0x0010}.Width())
	assert.Equal(t, uint8(8), Operand{Kind: OperandImmediate8}.Width())
	assert.Equal(t, uint8(16), Operand{Kind: OperandImmediate16}.Width())
	assert.Equal(t, uint8(16), Operand{Kind: OperandFlag}.Width())
	assert.Equal(t, uint8(0), Operand{}.Width())
}

func TestPeek_Idempotent(t *testing.T) {
	c, bus := newTestCPU(t)
	for op := 0; op < 0x100; op++ {
		require.NoError(t, bus.Load(types.ResetPC, []byte{uint8(op), 0x12, 0x34}))
		c.Reset()
		before := c.Registers

		first, err1 := c.Peek()
		second, err2 := c.Peek()
		assert.Equal(t, err1 == nil, err2 == nil)
		assert.Same(t, first, second)
		assert.Equal(t, before, c.Registers, "0x%02X: Peek should not mutate registers", op)
	}
}

// TestStep_ProgramCounter checks that every instruction that does not
// transfer control advances PC by its size in the opcode table.
func TestStep_ProgramCounter(t *testing.T) {
	table := opcodes.Default()
	branches := map[opcodes.Mnemonic]bool{
		opcodes.JP: true, opcodes.JR: true, opcodes.CALL: true,
		opcodes.RET: true, opcodes.RETI: true, opcodes.RST: true,
	}

	for _, prefixed := range []bool{false, true} {
		for op := 0; op < 0x100; op++ {
			instr, ok := table.Lookup(uint8(op), prefixed)
			if !ok || instr.Mnemonic == opcodes.PREFIX || branches[instr.Mnemonic] {
				continue
			}
			t.Run(instr.String(), func(t *testing.T) {
				program := []byte{uint8(op), 0x00, 0x00}
				if prefixed {
					program = []byte{0xCB, uint8(op)}
				}
				c, _ := newTestCPU(t, program...)
				mustStep(t, c)
				assert.Equal(t, types.ResetPC+uint16(instr.Bytes), c.PC)
				assert.Zero(t, c.F()&0x0F)
			})
		}
	}
}

func TestStep_Errors(t *testing.T) {
	t.Run("unknown opcode", func(t *testing.T) {
		c, _ := newTestCPU(t, 0xD3)
		before := c.Registers

		err := c.Step()
		var unknown *UnknownOpcodeError
		require.True(t, errors.As(err, &unknown), "got %v", err)
		assert.Equal(t, uint8(0xD3), unknown.Opcode)
		assert.False(t, unknown.Prefixed)
		assert.Equal(t, uint16(0x0100), unknown.PC)
		assert.Equal(t, before, c.Registers)
		assert.Contains(t, err.Error(), "step at 0x0100")
	})

	table, err := opcodes.Load([]byte(`{
		"unprefixed": {
			"0x00": {"mnemonic": "LD", "operands": [{"name": "BC", "immediate": true}, {"name": "A", "immediate": true}]},
			"0x01": {"mnemonic": "INC", "operands": [{"name": "n8", "immediate": true}]},
			"0x02": {"mnemonic": "LD", "operands": [{"name": "NZ", "immediate": true}, {"name": "A", "immediate": true}]},
			"0x03": {"mnemonic": "PREFIX", "operands": []}
		},
		"cbprefixed": {}
	}`))
	require.NoError(t, err)

	for _, tt := range []struct {
		name   string
		opcode uint8
		target interface{}
	}{
		{"width", 0x00, new(*InvalidOperandWidthError)},
		{"immediate destination", 0x01, new(*InvalidRegisterError)},
		{"unknown operand", 0x02, new(*UnknownOperandError)},
		{"prefix", 0x03, new(*UnknownOpcodeError)},
		{"empty prefixed table", 0xCB, new(*UnknownOpcodeError)},
	} {
		t.Run(tt.name, func(t *testing.T) {
			bus, _ := mmu.New()
			require.NoError(t, bus.Load(types.ResetPC, []byte{tt.opcode, 0x00}))
			c, err := New(bus, WithTable(table))
			require.NoError(t, err)
			before := c.Registers

			err = c.Step()
			require.Error(t, err)
			assert.True(t, errors.As(err, tt.target), "got %v", err)
			assert.Equal(t, before, c.Registers, "registers should be untouched")
		})
	}
}
