package cpu

import "testing"

func TestInstruction_Shift(t *testing.T) {
	testCBFamily(t, []cbFamily{
		{"SLA B", 0x20, func(v uint8, _ bool) (uint8, bool) { return v << 1, v&0x80 != 0 }},
		{"SRA B", 0x28, func(v uint8, _ bool) (uint8, bool) { return uint8(int8(v) >> 1), v&0x01 != 0 }},
		{"SRL B", 0x38, func(v uint8, _ bool) (uint8, bool) { return v >> 1, v&0x01 != 0 }},
	})
}

func TestInstruction_ShiftRightArithmeticKeepsSign(t *testing.T) {
	c, _ := newTestCPU(t, 0xCB, 0x2F) // SRA A
	c.setA(0x81)
	mustStep(t, c)
	if c.A() != 0xC0 {
		t.Errorf("Expected A to be 0xc0, got 0x%02x", c.A())
	}
	expectFlags(t, c, false, false, false, true)
}
