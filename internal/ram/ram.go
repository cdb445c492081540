// Package ram provides the byte storage backing the memory bus.
package ram

// RAM represents a block of memory addressed from 0.
type RAM interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	Size() int
}

type ram struct {
	data []byte
}

// NewRAM returns a new, zeroed RAM of the given size.
func NewRAM(size uint32) RAM {
	return &ram{
		data: make([]byte, size),
	}
}

// Read returns the value at the given address. Addresses past the
// end of the RAM read as 0xFF, like an open bus.
func (r *ram) Read(address uint16) uint8 {
	if int(address) >= len(r.data) {
		return 0xFF
	}
	return r.data[address]
}

// Write writes the value to the given address. Writes past the end
// of the RAM are ignored.
func (r *ram) Write(address uint16, value uint8) {
	if int(address) < len(r.data) {
		r.data[address] = value
	}
}

func (r *ram) Size() int {
	return len(r.data)
}

type rom struct {
	ram
	onWrite func(address uint16, value uint8)
}

// NewROM returns a read-only RAM holding a copy of data. Writes are
// passed to onWrite, which may be nil, and otherwise discarded.
func NewROM(data []byte, onWrite func(address uint16, value uint8)) RAM {
	r := &rom{ram: ram{data: make([]byte, len(data))}, onWrite: onWrite}
	copy(r.data, data)
	return r
}

func (r *rom) Write(address uint16, value uint8) {
	if r.onWrite != nil {
		r.onWrite(address, value)
	}
}
