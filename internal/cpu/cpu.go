// Package cpu implements the instruction execution core of the Sharp
// SM83, the CPU of the Game Boy. It decodes instructions against an
// opcode table, resolves their operands and executes them against a
// register file and a memory bus.
package cpu

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/thelolagemann/sm83/internal/opcodes"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

// Bus is the memory the CPU executes from. Words are little-endian.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	ReadWord(address uint16) uint16
	WriteWord(address uint16, value uint16)
	// ReadROM is used to fetch opcodes and immediate operands.
	ReadROM(address uint16) uint8
}

// CPU represents the SM83 CPU. It is responsible for executing instructions.
//
// A CPU is not safe for concurrent use.
type CPU struct {
	// Registers contains the 8-bit registers, the 16-bit register pairs, SP and PC.
	Registers

	// Ticks is the number of clock cycles executed, as listed in
	// the opcode table.
	Ticks uint64

	// Debug enables instruction tracing and the LD B, B breakpoint.
	Debug bool
	// DebugBreakpoint is set when LD B, B is executed in debug mode.
	DebugBreakpoint bool

	bus   Bus
	table *opcodes.Table
	log   log.Logger

	status    Status
	ime       bool
	bootState bool
	loadErr   error
}

// Opt is a function that configures a CPU.
type Opt func(c *CPU)

// WithLogger sets the logger used for tracing.
func WithLogger(l log.Logger) Opt {
	return func(c *CPU) {
		c.log = l
	}
}

// Debug enables debug mode.
func Debug() Opt {
	return func(c *CPU) {
		c.Debug = true
	}
}

// WithTable replaces the embedded opcode table.
func WithTable(t *opcodes.Table) Opt {
	return func(c *CPU) {
		c.table = t
	}
}

// WithBootROMState starts the CPU with every register cleared, the
// state the hardware powers up in before the boot ROM has run.
func WithBootROMState() Opt {
	return func(c *CPU) {
		c.bootState = true
		c.Registers = Registers{}
	}
}

// WithState restores a state previously written by Save.
func WithState(s *types.State) Opt {
	return func(c *CPU) {
		c.loadErr = c.Load(s)
	}
}

// New creates a new CPU executing from the given bus. Unless
// configured otherwise, the registers hold their post boot ROM
// values and the embedded opcode table is used.
func New(bus Bus, opts ...Opt) (*CPU, error) {
	c := &CPU{
		Registers: NewRegisters(),
		bus:       bus,
		table:     opcodes.Default(),
		log:       log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.loadErr != nil {
		return nil, errors.Wrap(c.loadErr, "cpu: restoring state")
	}
	return c, nil
}

// Status returns the current execution state.
func (c *CPU) Status() Status {
	return c.status
}

// InterruptsEnabled returns the state of the interrupt master enable
// flag, as set by EI, DI and RETI.
func (c *CPU) InterruptsEnabled() bool {
	return c.ime
}

// Reset returns the CPU to its initial state.
func (c *CPU) Reset() {
	if c.bootState {
		c.Registers = Registers{}
	} else {
		c.Registers = NewRegisters()
	}
	c.ime = false
	c.status = Running
	c.Ticks = 0
	c.DebugBreakpoint = false
}

// Wake leaves the halted or stopped state, leaving every register as
// it is. Execution resumes at the instruction following HALT or STOP.
func (c *CPU) Wake() {
	c.status = Running
}

// Peek decodes the instruction at PC without executing it.
func (c *CPU) Peek() (*opcodes.Instruction, error) {
	d, err := c.decode()
	if err != nil {
		return nil, errors.Wrapf(err, "peek at 0x%04X", c.PC)
	}
	return d.Instruction, nil
}

// Step executes a single instruction. When the CPU is halted or
// stopped, Step does nothing.
//
// If the instruction cannot be decoded or executed, the registers are
// left as they were and PC still points at the failing opcode.
func (c *CPU) Step() error {
	if !c.status.IsRunning() {
		return nil
	}

	d, err := c.decode()
	if err != nil {
		return errors.Wrapf(err, "step at 0x%04X", c.PC)
	}
	if c.Debug {
		c.trace(d)
	}

	saved, ime, status := c.Registers, c.ime, c.status
	c.PC = d.next

	taken, err := c.execute(d)
	if err != nil {
		c.Registers, c.ime, c.status = saved, ime, status
		return errors.Wrapf(err, "step at 0x%04X", d.pc)
	}

	c.Ticks += uint64(cycles(d.Instruction, taken))
	return nil
}

// cycles returns the duration of an instruction. Conditional
// instructions list the taken duration first.
func cycles(instr *opcodes.Instruction, taken bool) uint8 {
	switch {
	case len(instr.Cycles) == 0:
		return 0
	case !taken && len(instr.Cycles) > 1:
		return instr.Cycles[1]
	}
	return instr.Cycles[0]
}

func (c *CPU) trace(d *decoded) {
	var raw strings.Builder
	for addr := d.pc; addr != d.next; addr++ {
		fmt.Fprintf(&raw, "%02X ", c.bus.ReadROM(addr))
	}
	c.log.Debugf("%04X  %-9s %-16s %s", d.pc, raw.String(), d.Instruction, c.Registers.String())
}
