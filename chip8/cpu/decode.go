package cpu

import "github.com/valerio/go-chip8/chip8/bit"

// Instruction holds every field that can be extracted from an opcode.
// Handlers pick the ones they need.
type Instruction struct {
	Opcode uint16
	Family uint8  // bits 15-12
	X      uint8  // bits 11-8
	Y      uint8  // bits 7-4
	N      uint8  // bits 3-0
	NN     uint8  // bits 7-0
	NNN    uint16 // bits 11-0
}

// Decode splits an opcode into its fields. It always succeeds, whether the
// opcode is valid is decided at dispatch.
func Decode(opcode uint16) Instruction {
	return Instruction{
		Opcode: opcode,
		Family: bit.Nibble(opcode, 3),
		X:      bit.Nibble(opcode, 2),
		Y:      bit.Nibble(opcode, 1),
		N:      bit.Nibble(opcode, 0),
		NN:     bit.Low(opcode),
		NNN:    opcode & 0x0FFF,
	}
}
