package cpu

// Opcode is a function that executes a decoded instruction.
type Opcode func(*CPU, Instruction) error

// familyTable dispatches on the top nibble. Families 0, 8, E and F
// dispatch again on a sub-code.
var familyTable = [16]Opcode{
	0x0: execSystem,
	0x1: opJump,
	0x2: opCall,
	0x3: opSkipEqualImm,
	0x4: opSkipNotEqualImm,
	0x5: opSkipEqualReg,
	0x6: opLoadImm,
	0x7: opAddImm,
	0x8: execALU,
	0x9: opSkipNotEqualReg,
	0xA: opLoadIndex,
	0xB: opJumpOffset,
	0xC: opRandom,
	0xD: opDraw,
	0xE: execKeySkip,
	0xF: execMisc,
}

// systemTable is keyed on the low 12 bits of family 0.
var systemTable = map[uint16]Opcode{
	0x0E0: opClear,
	0x0EE: opReturn,
}

// aluTable is keyed on N of family 8.
var aluTable = [16]Opcode{
	0x0: opMove,
	0x1: opOr,
	0x2: opAnd,
	0x3: opXor,
	0x4: opAdd,
	0x5: opSub,
	0x6: opShiftRight,
	0x7: opSubReverse,
	0xE: opShiftLeft,
}

// keyTable is keyed on NN of family E.
var keyTable = map[uint8]Opcode{
	0x9E: opSkipPressed,
	0xA1: opSkipNotPressed,
}

// miscTable is keyed on NN of family F.
var miscTable = map[uint8]Opcode{
	0x07: opLoadDelay,
	0x0A: opWaitKey,
	0x15: opSetDelay,
	0x18: opSetSound,
	0x1E: opAddIndex,
	0x29: opLoadGlyph,
	0x33: opStoreBCD,
	0x55: opStoreRegisters,
	0x65: opLoadRegisters,
}

func dispatch(c *CPU, in Instruction) error {
	return familyTable[in.Family](c, in)
}

func unknown(c *CPU, in Instruction) error {
	return &UnknownOpcodeError{Opcode: in.Opcode, PC: c.opcodePC}
}

func execSystem(c *CPU, in Instruction) error {
	if op, ok := systemTable[in.NNN]; ok {
		return op(c, in)
	}
	return unknown(c, in)
}

func execALU(c *CPU, in Instruction) error {
	if op := aluTable[in.N]; op != nil {
		return op(c, in)
	}
	return unknown(c, in)
}

func execKeySkip(c *CPU, in Instruction) error {
	if op, ok := keyTable[in.NN]; ok {
		return op(c, in)
	}
	return unknown(c, in)
}

func execMisc(c *CPU, in Instruction) error {
	if op, ok := miscTable[in.NN]; ok {
		return op(c, in)
	}
	return unknown(c, in)
}
