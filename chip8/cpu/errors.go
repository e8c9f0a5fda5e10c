package cpu

import "fmt"

// UnknownOpcodeError is returned when a fetched word has no handler.
// It is fatal: the CPU halts and every later Step returns the same error.
type UnknownOpcodeError struct {
	Opcode uint16
	PC     uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode 0x%04X at 0x%03X", e.Opcode, e.PC)
}

// StackOverflowError is returned by CALL when all stack frames are in use.
type StackOverflowError struct {
	PC     uint16
	Target uint16
}

func (e *StackOverflowError) Error() string {
	return fmt.Sprintf("stack overflow calling 0x%03X at 0x%03X (depth %d)", e.Target, e.PC, StackDepth)
}

// StackUnderflowError is returned by RET with an empty stack.
type StackUnderflowError struct {
	PC uint16
}

func (e *StackUnderflowError) Error() string {
	return fmt.Sprintf("stack underflow returning at 0x%03X", e.PC)
}
