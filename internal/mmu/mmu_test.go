package mmu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	debug []string
}

func (r *recordingLogger) Infof(string, ...interface{})  {}
func (r *recordingLogger) Errorf(string, ...interface{}) {}
func (r *recordingLogger) Debugf(format string, args ...interface{}) {
	r.debug = append(r.debug, format)
}

func TestMMU_RAM(t *testing.T) {
	m, err := New()
	require.NoError(t, err)
	assert.False(t, m.HasROM())

	for _, addr := range []uint16{0x0000, 0x0100, 0x7FFF, 0x8000, 0xC000, 0xFF80, 0xFFFF} {
		m.Write(addr, 0x42)
		assert.Equalf(t, uint8(0x42), m.Read(addr), "address 0x%04X", addr)
		assert.Equal(t, m.Read(addr), m.ReadROM(addr))
	}
}

func TestMMU_Word(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	m.WriteWord(0xC000, 0x1234)
	assert.Equal(t, uint8(0x34), m.Read(0xC000), "low byte first")
	assert.Equal(t, uint8(0x12), m.Read(0xC001))
	assert.Equal(t, uint16(0x1234), m.ReadWord(0xC000))

	t.Run("wraps", func(t *testing.T) {
		m.WriteWord(0xFFFF, 0xBEEF)
		assert.Equal(t, uint8(0xEF), m.Read(0xFFFF))
		assert.Equal(t, uint8(0xBE), m.Read(0x0000))
	})
}

func TestMMU_ROM(t *testing.T) {
	l := &recordingLogger{}
	m, err := New(WithROM([]byte{0x3E, 0x42}), WithLogger(l))
	require.NoError(t, err)
	assert.True(t, m.HasROM())

	assert.Equal(t, uint8(0x3E), m.ReadROM(0x0000))
	assert.Equal(t, uint8(0x42), m.Read(0x0001))
	assert.Equal(t, uint8(0xFF), m.Read(0x0002), "past the image reads as open bus")

	m.Write(0x0000, 0x00)
	assert.Equal(t, uint8(0x3E), m.Read(0x0000), "ROM writes should be dropped")
	assert.Len(t, l.debug, 1)

	m.Write(0x8000, 0x01)
	assert.Equal(t, uint8(0x01), m.Read(0x8000), "RAM above the ROM window is writable")

	t.Run("too large", func(t *testing.T) {
		_, err := New(WithROM(make([]byte, 0x8001)))
		assert.Error(t, err)
	})
}

func TestMMU_Load(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	require.NoError(t, m.Load(0x0100, []byte{0x01, 0x69, 0x69}))
	assert.Equal(t, uint16(0x6969), m.ReadWord(0x0101))

	assert.Error(t, m.Load(0xFFFF, []byte{0x00, 0x00}))

	rom, err := New(WithROM([]byte{0x00}))
	require.NoError(t, err)
	assert.Error(t, rom.Load(0x0100, []byte{0x00}))
	assert.NoError(t, rom.Load(0xC000, []byte{0x00}))
}
