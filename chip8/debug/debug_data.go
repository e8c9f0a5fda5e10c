package debug

import (
	"github.com/valerio/go-chip8/chip8/disasm"
)

// CPUState contains all CPU register information for debugging
type CPUState struct {
	V  [16]uint8
	I  uint16
	PC uint16
	SP uint8

	Stack      []uint16
	DelayTimer uint8
	SoundTimer uint8
	Waiting    bool // stalled on Fx0A
	Opcode     uint16
	Cycles     uint64
	Fault      error
}

// DebuggerState represents the current debugger state
type DebuggerState int

const (
	DebuggerRunning DebuggerState = iota
	DebuggerPaused
	DebuggerStepInstruction
	DebuggerStepFrame
)

func (s DebuggerState) String() string {
	switch s {
	case DebuggerRunning:
		return "RUNNING"
	case DebuggerPaused:
		return "PAUSED"
	case DebuggerStepInstruction:
		return "STEP"
	case DebuggerStepFrame:
		return "FRAME"
	default:
		return "UNKNOWN"
	}
}

// CompleteDebugData contains all debug information needed by debug displays
type CompleteDebugData struct {
	CPU           *CPUState
	Disassembly   []disasm.DisassemblyLine
	Keys          [16]bool
	DebuggerState DebuggerState
}
