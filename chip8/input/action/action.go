package action

import "fmt"

// Action represents input actions that can be performed in the emulator
type Action int

const (
	// CHIP-8 hex keypad, in key order so Keypad0+n is key n
	Keypad0 Action = iota
	Keypad1
	Keypad2
	Keypad3
	Keypad4
	Keypad5
	Keypad6
	Keypad7
	Keypad8
	Keypad9
	KeypadA
	KeypadB
	KeypadC
	KeypadD
	KeypadE
	KeypadF

	// Emulator features
	EmulatorDebugToggle
	EmulatorSnapshot
	EmulatorPauseToggle
	EmulatorStepFrame
	EmulatorStepInstruction
	EmulatorReset
	EmulatorTestPatternCycle
	EmulatorQuit

	// Debug controls
	DebugLogLevelIncrease
	DebugLogLevelDecrease
)

// KeypadKey returns the hex key an action stands for, if it is a keypad action.
func KeypadKey(act Action) (uint8, bool) {
	if act < Keypad0 || act > KeypadF {
		return 0, false
	}
	return uint8(act - Keypad0), true
}

// ForKey returns the keypad action for hex key k (0x0-0xF).
func ForKey(k uint8) Action {
	return Keypad0 + Action(k&0xF)
}

func (a Action) String() string {
	if k, ok := KeypadKey(a); ok {
		return fmt.Sprintf("Keypad%X", k)
	}
	switch a {
	case EmulatorDebugToggle:
		return "DebugToggle"
	case EmulatorSnapshot:
		return "Snapshot"
	case EmulatorPauseToggle:
		return "PauseToggle"
	case EmulatorStepFrame:
		return "StepFrame"
	case EmulatorStepInstruction:
		return "StepInstruction"
	case EmulatorReset:
		return "Reset"
	case EmulatorTestPatternCycle:
		return "TestPatternCycle"
	case EmulatorQuit:
		return "Quit"
	case DebugLogLevelIncrease:
		return "LogLevelIncrease"
	case DebugLogLevelDecrease:
		return "LogLevelDecrease"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}
