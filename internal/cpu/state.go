package cpu

import (
	"github.com/pkg/errors"
	"github.com/thelolagemann/sm83/internal/types"
)

var _ types.Stater = (*CPU)(nil)

// stateSize is the number of bytes written by Save.
const stateSize = 6*2 + 1 + 1 + 2*4

// Save writes the registers and execution state of the CPU.
func (c *CPU) Save(s *types.State) {
	s.Write16(c.AF.Uint16())
	s.Write16(c.BC.Uint16())
	s.Write16(c.DE.Uint16())
	s.Write16(c.HL.Uint16())
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.Write8(uint8(c.status))
	s.WriteBool(c.ime)
	s.Write32(uint32(c.Ticks >> 32))
	s.Write32(uint32(c.Ticks))
}

// Load restores a state written by Save. The CPU is left untouched
// if the state is invalid.
func (c *CPU) Load(s *types.State) error {
	if s.Remaining() < stateSize {
		return errors.Errorf("cpu state: need %d bytes, have %d", stateSize, s.Remaining())
	}
	var r Registers
	r.AF.SetUint16(s.Read16() & 0xFFF0)
	r.BC.SetUint16(s.Read16())
	r.DE.SetUint16(s.Read16())
	r.HL.SetUint16(s.Read16())
	r.SP = s.Read16()
	r.PC = s.Read16()

	status := Status(s.Read8())
	if status < Running || status > Stopped {
		return errors.Errorf("cpu state: invalid status %d", status)
	}
	ime := s.ReadBool()
	high := uint64(s.Read32())

	c.Registers = r
	c.status = status
	c.ime = ime
	c.Ticks = high<<32 | uint64(s.Read32())
	return nil
}
