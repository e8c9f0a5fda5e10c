package disasm

import (
	"fmt"

	"github.com/valerio/go-chip8/chip8/cpu"
)

// InstructionLength is the size in bytes of every instruction.
const InstructionLength = 2

// Reader is the memory access needed to disassemble.
type Reader interface {
	ReadWord(address uint16) uint16
}

// DisassemblyLine represents a single disassembled instruction
type DisassemblyLine struct {
	Address     uint16
	Opcode      uint16
	Instruction string
}

// Disassemble returns the mnemonic for a single opcode. Words that are not
// instructions come out as data.
func Disassemble(opcode uint16) string {
	in := cpu.Decode(opcode)

	switch in.Family {
	case 0x0:
		switch in.NNN {
		case 0x0E0:
			return "CLS"
		case 0x0EE:
			return "RET"
		}
	case 0x1:
		return fmt.Sprintf("JP 0x%03X", in.NNN)
	case 0x2:
		return fmt.Sprintf("CALL 0x%03X", in.NNN)
	case 0x3:
		return fmt.Sprintf("SE V%X, 0x%02X", in.X, in.NN)
	case 0x4:
		return fmt.Sprintf("SNE V%X, 0x%02X", in.X, in.NN)
	case 0x5:
		return fmt.Sprintf("SE V%X, V%X", in.X, in.Y)
	case 0x6:
		return fmt.Sprintf("LD V%X, 0x%02X", in.X, in.NN)
	case 0x7:
		return fmt.Sprintf("ADD V%X, 0x%02X", in.X, in.NN)
	case 0x8:
		if template, ok := aluTemplates[in.N]; ok {
			return fmt.Sprintf(template, in.X, in.Y)
		}
	case 0x9:
		return fmt.Sprintf("SNE V%X, V%X", in.X, in.Y)
	case 0xA:
		return fmt.Sprintf("LD I, 0x%03X", in.NNN)
	case 0xB:
		return fmt.Sprintf("JP V0, 0x%03X", in.NNN)
	case 0xC:
		return fmt.Sprintf("RND V%X, 0x%02X", in.X, in.NN)
	case 0xD:
		return fmt.Sprintf("DRW V%X, V%X, %d", in.X, in.Y, in.N)
	case 0xE:
		switch in.NN {
		case 0x9E:
			return fmt.Sprintf("SKP V%X", in.X)
		case 0xA1:
			return fmt.Sprintf("SKNP V%X", in.X)
		}
	case 0xF:
		if template, ok := miscTemplates[in.NN]; ok {
			return fmt.Sprintf(template, in.X)
		}
	}

	return fmt.Sprintf("DW 0x%04X", opcode)
}

var aluTemplates = map[uint8]string{
	0x0: "LD V%X, V%X",
	0x1: "OR V%X, V%X",
	0x2: "AND V%X, V%X",
	0x3: "XOR V%X, V%X",
	0x4: "ADD V%X, V%X",
	0x5: "SUB V%X, V%X",
	0x6: "SHR V%X {, V%X}",
	0x7: "SUBN V%X, V%X",
	0xE: "SHL V%X {, V%X}",
}

var miscTemplates = map[uint8]string{
	0x07: "LD V%X, DT",
	0x0A: "LD V%X, K",
	0x15: "LD DT, V%X",
	0x18: "LD ST, V%X",
	0x1E: "ADD I, V%X",
	0x29: "LD F, V%X",
	0x33: "LD B, V%X",
	0x55: "LD [I], V%X",
	0x65: "LD V%X, [I]",
}

// DisassembleAt disassembles the instruction at the given address
func DisassembleAt(address uint16, mem Reader) DisassemblyLine {
	opcode := mem.ReadWord(address)
	return DisassemblyLine{
		Address:     address,
		Opcode:      opcode,
		Instruction: Disassemble(opcode),
	}
}

// DisassembleRange disassembles count instructions starting from address
func DisassembleRange(address uint16, count int, mem Reader) []DisassemblyLine {
	lines := make([]DisassemblyLine, 0, count)
	for i := 0; i < count; i++ {
		lines = append(lines, DisassembleAt(address, mem))
		address += InstructionLength
	}
	return lines
}

// DisassembleAround returns instructions before, at, and after pc. Since
// every instruction is two bytes, going backwards is exact as long as the
// program stays word aligned.
func DisassembleAround(pc uint16, beforeCount, afterCount int, mem Reader) []DisassemblyLine {
	start := pc
	for i := 0; i < beforeCount && start >= InstructionLength; i++ {
		start -= InstructionLength
	}

	count := int(pc-start)/InstructionLength + 1 + afterCount
	return DisassembleRange(start, count, mem)
}

// DisassembleProgram disassembles a raw ROM image as if loaded at origin.
// A trailing odd byte is emitted as a data word padded with zero.
func DisassembleProgram(program []byte, origin uint16) []DisassemblyLine {
	lines := make([]DisassemblyLine, 0, (len(program)+1)/2)
	for offset := 0; offset < len(program); offset += InstructionLength {
		opcode := uint16(program[offset]) << 8
		if offset+1 < len(program) {
			opcode |= uint16(program[offset+1])
		}
		lines = append(lines, DisassemblyLine{
			Address:     origin + uint16(offset),
			Opcode:      opcode,
			Instruction: Disassemble(opcode),
		})
	}
	return lines
}

// FormatDisassemblyLine formats a disassembly line for display
func FormatDisassemblyLine(line DisassemblyLine, isCurrentPC bool) string {
	prefix := " "
	if isCurrentPC {
		prefix = "→"
	}

	return fmt.Sprintf("%s0x%03X: %04X  %s", prefix, line.Address, line.Opcode, line.Instruction)
}
