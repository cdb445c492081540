// Package mmu provides the memory bus the CPU executes from: a flat
// 64kB address space, optionally with a read-only program image
// mapped over the cartridge ROM window.
package mmu

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/thelolagemann/sm83/internal/ram"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
)

// MMU is a flat 64kB memory bus.
type MMU struct {
	// 64kB address space
	raw [65536]*types.Address

	// 0x0000 - 0x7FFF - ROM (32kB), when mapped
	rom ram.RAM
	// 0x0000 - 0xFFFF - RAM (64kB)
	mem ram.RAM

	image []byte
	Log   log.Logger
}

// Opt is a function that configures an MMU.
type Opt func(m *MMU)

// WithROM maps image read-only from 0x0000. The image may not be
// larger than the 32kB ROM window.
func WithROM(image []byte) Opt {
	return func(m *MMU) {
		m.image = image
	}
}

// WithLogger sets the logger used to report writes to ROM.
func WithLogger(l log.Logger) Opt {
	return func(m *MMU) {
		m.Log = l
	}
}

// New returns a new MMU.
func New(opts ...Opt) (*MMU, error) {
	m := &MMU{
		mem: ram.NewRAM(0x10000),
		Log: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if len(m.image) > int(types.ROMEnd) {
		return nil, errors.Errorf("mmu: ROM image of %d bytes exceeds the %d byte ROM window", len(m.image), types.ROMEnd)
	}
	m.init()
	return m, nil
}

func (m *MMU) init() {
	addresses := []types.Address{
		{Read: m.mem.Read, Write: m.mem.Write},
		{},
	}

	for i := range m.raw {
		m.raw[i] = &addresses[0]
	}

	if m.image == nil {
		return
	}

	m.rom = ram.NewROM(m.image, func(address uint16, value uint8) {
		m.Log.Debugf("mmu: dropped write of 0x%02X to ROM at 0x%04X", value, address)
	})
	addresses[1] = types.Address{Read: m.rom.Read, Write: m.rom.Write}

	// 0x0000 - 0x7FFF - ROM (32kB)
	for i := 0x0000; i < int(types.ROMEnd); i++ {
		m.raw[i] = &addresses[1]
	}
}

// HasROM returns true if a program image is mapped as ROM.
func (m *MMU) HasROM() bool {
	return m.rom != nil
}

// Read returns the value at the given address.
func (m *MMU) Read(address uint16) uint8 {
	return m.raw[address].Read(address)
}

// Write writes the value to the given address. Writes to a mapped
// ROM are dropped.
func (m *MMU) Write(address uint16, value uint8) {
	m.raw[address].Write(address, value)
}

// ReadWord reads the little-endian word at the given address.
func (m *MMU) ReadWord(address uint16) uint16 {
	return uint16(m.Read(address)) | uint16(m.Read(address+1))<<8
}

// WriteWord writes value as a little-endian word at the given address.
func (m *MMU) WriteWord(address uint16, value uint16) {
	m.Write(address, uint8(value))
	m.Write(address+1, uint8(value>>8))
}

// ReadROM reads an instruction byte. The bus is flat, so this is the
// same as Read.
func (m *MMU) ReadROM(address uint16) uint8 {
	return m.Read(address)
}

// Load copies data into RAM starting at address. It fails if the data
// does not fit below 0x10000 or overlaps a mapped ROM.
func (m *MMU) Load(address uint16, data []byte) error {
	end := int(address) + len(data)
	if end > 0x10000 {
		return fmt.Errorf("mmu: %d bytes at 0x%04X overflow the address space", len(data), address)
	}
	if m.HasROM() && int(address) < int(types.ROMEnd) && len(data) > 0 {
		return fmt.Errorf("mmu: cannot load into ROM at 0x%04X", address)
	}
	for i, b := range data {
		m.Write(address+uint16(i), b)
	}
	return nil
}
