package memory

import (
	"errors"
	"fmt"
)

const (
	// Size is the amount of addressable bytes.
	Size = 0x1000
	// AddressMask folds any 16 bit address into the addressable range.
	AddressMask = Size - 1

	// ProgramStart is where ROMs are loaded and execution begins.
	ProgramStart = 0x200
	// MaxProgramSize is the largest ROM that fits between ProgramStart and the end of memory.
	MaxProgramSize = Size - ProgramStart
)

// ErrProgramTooLarge is returned when a ROM does not fit in program memory.
var ErrProgramTooLarge = errors.New("program exceeds available memory")

// RAM is the 4KB address space shared by font, program and data.
// Every access wraps modulo Size, so no address can be out of range.
type RAM struct {
	data [Size]byte
}

// New returns zeroed memory with the built-in font loaded.
func New() *RAM {
	m := &RAM{}
	m.LoadFont(DefaultFont)
	return m
}

func (m *RAM) Read(address uint16) byte {
	return m.data[address&AddressMask]
}

func (m *RAM) Write(address uint16, value byte) {
	m.data[address&AddressMask] = value
}

// ReadWord reads a big-endian 16 bit value, the second byte wrapping around
// the top of memory if needed.
func (m *RAM) ReadWord(address uint16) uint16 {
	return uint16(m.Read(address))<<8 | uint16(m.Read(address+1))
}

// Slice copies length bytes starting at address, wrapping at the top of memory.
func (m *RAM) Slice(address uint16, length int) []byte {
	out := make([]byte, length)
	for i := range out {
		out[i] = m.Read(address + uint16(i))
	}
	return out
}

// LoadProgram copies a ROM image at ProgramStart.
func (m *RAM) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	copy(m.data[ProgramStart:], program)
	return nil
}

// LoadFont copies the glyph table into the reserved font region.
func (m *RAM) LoadFont(glyphs [FontSize]byte) {
	copy(m.data[FontStart:], glyphs[:])
}

// Reset zeroes memory and reloads the default font.
func (m *RAM) Reset() {
	m.data = [Size]byte{}
	m.LoadFont(DefaultFont)
}
