package types

// Address represents a region of the SM83 address space which can
// be read from or written to. It is used to abstract away the backing
// storage of a region, so that a bus can map ROM, RAM or anything
// else behind the same interface.
type Address struct {
	// Read is a function that is called when the CPU reads from
	// the address.
	Read func(address uint16) uint8
	// Write is a function that is called when the CPU writes to
	// the address.
	Write func(address uint16, value uint8)
}

const (
	// ROMEnd is the first address past the cartridge ROM window.
	// A program image mapped as ROM occupies 0x0000 - 0x7FFF.
	ROMEnd uint16 = 0x8000
	// HighPage is the base of the 0xFF00 - 0xFFFF page addressed
	// by LDH and the (C) forms of LD.
	HighPage uint16 = 0xFF00
	// ResetPC is the entry point jumped to once the boot ROM
	// has finished executing.
	ResetPC uint16 = 0x0100
	// ResetSP is the stack pointer left behind by the boot ROM.
	ResetSP uint16 = 0xFFFE
)
