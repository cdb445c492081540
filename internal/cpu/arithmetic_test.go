package cpu

import (
	"testing"
)

func TestInstruction_Arithmetic8(t *testing.T) {
	type ref func(a, b uint8, carry bool) (result uint8, h, c bool)

	add := func(a, b uint8, carry bool) (uint8, bool, bool) {
		ci := 0
		if carry {
			ci = 1
		}
		sum := int(a) + int(b) + ci
		return uint8(sum), int(a&0xF)+int(b&0xF)+ci > 0xF, sum > 0xFF
	}
	sub := func(a, b uint8, carry bool) (uint8, bool, bool) {
		ci := 0
		if carry {
			ci = 1
		}
		diff := int(a) - int(b) - ci
		return uint8(diff), int(a&0xF)-int(b&0xF)-ci < 0, diff < 0
	}

	for _, tt := range []struct {
		name     string
		opcode   uint8
		useCarry bool
		subtract bool
		store    bool
		ref      ref
	}{
		{"ADD A, B", 0x80, false, false, true, add},
		{"ADC A, B", 0x88, true, false, true, add},
		{"SUB A, B", 0x90, false, true, true, sub},
		{"SBC A, B", 0x98, true, true, true, sub},
		{"CP A, B", 0xB8, false, true, false, sub},
	} {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU(t, tt.opcode)
			for _, carry := range []bool{false, true} {
				for a := 0; a < 0x100; a++ {
					for b := 0; b < 0x100; b++ {
						c.PC = 0x0100
						c.setA(uint8(a))
						c.BC.SetHigh(uint8(b))
						c.SetFlags(false, false, false, carry)

						mustStep(t, c)

						result, h, cy := tt.ref(uint8(a), uint8(b), carry && tt.useCarry)
						got := c.A()
						if !tt.store {
							if got != uint8(a) {
								t.Fatalf("Expected CP to leave A unchanged, got 0x%02x", got)
							}
						} else if got != result {
							t.Fatalf("0x%02x, 0x%02x (carry %t): expected 0x%02x, got 0x%02x", a, b, carry, result, got)
						}
						if c.isFlagSet(FlagZero) != (result == 0) {
							t.Fatalf("0x%02x, 0x%02x: expected Z to be set iff the result is zero", a, b)
						}
						if c.isFlagSet(FlagSubtract) != tt.subtract || c.isFlagSet(FlagHalfCarry) != h || c.isFlagSet(FlagCarry) != cy {
							t.Fatalf("0x%02x, 0x%02x (carry %t): unexpected flags 0x%02x", a, b, carry, c.F())
						}
						if c.F()&0x0F != 0 {
							t.Fatalf("Expected F low nibble to be clear, got 0x%02x", c.F())
						}
					}
				}
			}
		})
	}
}

func TestInstruction_Arithmetic8_Operands(t *testing.T) {
	t.Run("ADD A, n8", func(t *testing.T) {
		c, _ := newTestCPU(t, 0xC6, 0x22)
		c.setA(0x11)
		mustStep(t, c)
		if c.A() != 0x33 || c.PC != 0x0102 {
			t.Errorf("Expected A=0x33 PC=0x0102, got A=0x%02x PC=0x%04x", c.A(), c.PC)
		}
	})
	t.Run("SUB A, (HL)", func(t *testing.T) {
		c, bus := newTestCPU(t, 0x96)
		c.HL.SetUint16(0xC000)
		bus.Write(0xC000, 0x01)
		c.setA(0x10)
		mustStep(t, c)
		if c.A() != 0x0F {
			t.Errorf("Expected A to be 0x0f, got 0x%02x", c.A())
		}
		expectFlags(t, c, false, true, true, false)
	})
}

func TestInstruction_IncrementDecrement8(t *testing.T) {
	c, _ := newTestCPU(t, 0x04, 0x05) // INC B, DEC B
	for _, carry := range []bool{false, true} {
		for v := 0; v < 0x100; v++ {
			c.PC = 0x0100
			c.BC.SetHigh(uint8(v))
			c.SetFlags(false, false, false, carry)

			mustStep(t, c)
			want := uint8(v + 1)
			if c.BC.High() != want {
				t.Fatalf("INC 0x%02x: expected 0x%02x, got 0x%02x", v, want, c.BC.High())
			}
			expectFlags(t, c, want == 0, false, v&0xF == 0xF, carry)

			c.BC.SetHigh(uint8(v))
			mustStep(t, c)
			want = uint8(v - 1)
			if c.BC.High() != want {
				t.Fatalf("DEC 0x%02x: expected 0x%02x, got 0x%02x", v, want, c.BC.High())
			}
			expectFlags(t, c, want == 0, true, v&0xF == 0, carry)
		}
	}

	t.Run("INC (HL)", func(t *testing.T) {
		c, bus := newTestCPU(t, 0x34, 0x35)
		c.HL.SetUint16(0x1234)
		bus.Write(0x1234, 0xFF)
		c.SetFlags(false, false, false, false)
		mustStep(t, c)
		if bus.Read(0x1234) != 0x00 {
			t.Errorf("Expected memory at 0x1234 to be 0x00, got 0x%02x", bus.Read(0x1234))
		}
		if bus.Read(0x1235) != 0x00 {
			t.Errorf("Expected INC (HL) to only touch a single byte")
		}
		expectFlags(t, c, true, false, true, false)

		mustStep(t, c)
		if bus.Read(0x1234) != 0xFF {
			t.Errorf("Expected memory at 0x1234 to be 0xff, got 0x%02x", bus.Read(0x1234))
		}
	})
}

func TestInstruction_IncrementDecrement16(t *testing.T) {
	for _, tt := range []struct {
		name   string
		opcode uint8
		reg    Reg
		from   uint16
		want   uint16
	}{
		{"INC BC", 0x03, RegBC, 0xFFFF, 0x0000},
		{"INC DE", 0x13, RegDE, 0x00FF, 0x0100},
		{"INC HL", 0x23, RegHL, 0x1234, 0x1235},
		{"INC SP", 0x33, RegSP, 0xFFFE, 0xFFFF},
		{"DEC BC", 0x0B, RegBC, 0x0000, 0xFFFF},
		{"DEC DE", 0x1B, RegDE, 0x0100, 0x00FF},
		{"DEC HL", 0x2B, RegHL, 0x0001, 0x0000},
		{"DEC SP", 0x3B, RegSP, 0xFFFE, 0xFFFD},
	} {
		t.Run(tt.name, func(t *testing.T) {
			for _, f := range []uint8{0x00, 0xF0} {
				c, _ := newTestCPU(t, tt.opcode)
				_ = c.Set16(tt.reg, tt.from)
				_ = c.Set8(RegF, f)

				mustStep(t, c)
				if got, _ := c.Get16(tt.reg); got != tt.want {
					t.Errorf("Expected %s to be 0x%04x, got 0x%04x", tt.reg, tt.want, got)
				}
				if c.F() != f {
					t.Errorf("Expected flags to be unaffected, got 0x%02x", c.F())
				}
			}
		})
	}
}

func TestInstruction_AddHL(t *testing.T) {
	for _, tt := range []struct {
		name     string
		hl, bc   uint16
		want     uint16
		zero     bool
		h, carry bool
	}{
		{"no carry", 0x1000, 0x0234, 0x1234, false, false, false},
		{"half carry", 0x0FFF, 0x0001, 0x1000, false, true, false},
		{"carry", 0xF000, 0x1000, 0x0000, false, false, true},
		{"both", 0xFFFF, 0x0001, 0x0000, true, true, true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU(t, 0x09) // ADD HL, BC
			c.HL.SetUint16(tt.hl)
			c.BC.SetUint16(tt.bc)
			c.SetFlags(tt.zero, true, false, false)

			mustStep(t, c)
			if c.HL.Uint16() != tt.want {
				t.Errorf("Expected HL to be 0x%04x, got 0x%04x", tt.want, c.HL.Uint16())
			}
			// Z is not affected
			expectFlags(t, c, tt.zero, false, tt.h, tt.carry)
		})
	}
}

func TestInstruction_StackOffset(t *testing.T) {
	for _, tt := range []struct {
		name     string
		sp       uint16
		offset   uint8
		want     uint16
		h, carry bool
	}{
		{"positive", 0xFFF0, 0x05, 0xFFF5, false, false},
		{"negative", 0xFFF8, 0xFE, 0xFFF6, true, true},
		{"half carry", 0x000F, 0x01, 0x0010, true, false},
		{"carry", 0x00F0, 0x10, 0x0100, false, true},
		{"minus one", 0x0000, 0xFF, 0xFFFF, false, false},
	} {
		t.Run("ADD SP, e8 "+tt.name, func(t *testing.T) {
			c, _ := newTestCPU(t, 0xE8, tt.offset)
			c.SP = tt.sp
			c.SetFlags(true, true, false, false)

			mustStep(t, c)
			if c.SP != tt.want {
				t.Errorf("Expected SP to be 0x%04x, got 0x%04x", tt.want, c.SP)
			}
			expectFlags(t, c, false, false, tt.h, tt.carry)
		})
		t.Run("LD HL, SP+e8 "+tt.name, func(t *testing.T) {
			c, _ := newTestCPU(t, 0xF8, tt.offset)
			c.SP = tt.sp
			c.SetFlags(true, true, false, false)

			mustStep(t, c)
			if c.HL.Uint16() != tt.want || c.SP != tt.sp {
				t.Errorf("Expected HL=0x%04x SP=0x%04x, got HL=0x%04x SP=0x%04x", tt.want, tt.sp, c.HL.Uint16(), c.SP)
			}
			expectFlags(t, c, false, false, tt.h, tt.carry)
			if c.PC != 0x0102 {
				t.Errorf("Expected PC to be 0x0102, got 0x%04x", c.PC)
			}
		})
	}
}

func toBCD(v int) uint8 {
	return uint8(v/10<<4 | v%10)
}

func TestInstruction_DAA(t *testing.T) {
	t.Run("addition", func(t *testing.T) {
		c, bus := newTestCPU(t)
		for a := 0; a < 100; a++ {
			for b := 0; b < 100; b++ {
				c.setA(toBCD(a))
				c.BC.SetHigh(toBCD(b))
				run(t, c, bus, 2, 0x80, 0x27) // ADD A, B; DAA

				want := toBCD((a + b) % 100)
				if c.A() != want {
					t.Fatalf("%d + %d: expected 0x%02x, got 0x%02x", a, b, want, c.A())
				}
				expectFlags(t, c, want == 0, false, false, a+b >= 100)
			}
		}
	})

	t.Run("subtraction", func(t *testing.T) {
		c, bus := newTestCPU(t)
		for a := 0; a < 100; a++ {
			for b := 0; b < 100; b++ {
				c.setA(toBCD(a))
				c.BC.SetHigh(toBCD(b))
				run(t, c, bus, 2, 0x90, 0x27) // SUB A, B; DAA

				want := toBCD((a - b + 100) % 100)
				if c.A() != want {
					t.Fatalf("%d - %d: expected 0x%02x, got 0x%02x", a, b, want, c.A())
				}
				expectFlags(t, c, want == 0, true, false, a < b)
			}
		}
	})

	t.Run("carry is kept", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x27)
		c.setA(0x00)
		c.SetFlags(false, false, false, true)
		mustStep(t, c)
		if c.A() != 0x60 {
			t.Errorf("Expected A to be 0x60, got 0x%02x", c.A())
		}
		expectFlags(t, c, false, false, false, true)
	})
}

func TestInstruction_Misc(t *testing.T) {
	t.Run("CPL", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x2F)
		c.setA(0x35)
		c.SetFlags(true, false, false, true)
		mustStep(t, c)
		if c.A() != 0xCA {
			t.Errorf("Expected A to be 0xca, got 0x%02x", c.A())
		}
		expectFlags(t, c, true, true, true, true)
	})
	t.Run("SCF", func(t *testing.T) {
		c, _ := newTestCPU(t, 0x37)
		c.SetFlags(false, true, true, false)
		mustStep(t, c)
		expectFlags(t, c, false, false, false, true)
	})
	t.Run("CCF", func(t *testing.T) {
		c, bus := newTestCPU(t, 0x3F)
		c.SetFlags(true, true, true, true)
		mustStep(t, c)
		expectFlags(t, c, true, false, false, false)
		run(t, c, bus, 1, 0x3F)
		expectFlags(t, c, true, false, false, true)
	})
}
