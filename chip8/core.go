package chip8

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/valerio/go-chip8/chip8/audio"
	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/disasm"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

const (
	// disassembly lines shown before and after PC in debug data
	disasmBefore = 4
	disasmAfter  = 4
)

// Chip8 drives a CPU on a shared timeline: instructions run at the
// configured rate, timers tick at their own rate and frames are cut from the
// same timeline for presentation.
type Chip8 struct {
	cpu     *cpu.CPU
	clock   *timing.Clock
	config  Config
	program []byte

	inputManager *input.Manager
	tone         *audio.Tone

	frames     *timing.FrameSlicer
	frameCount uint64

	paused                   bool
	stepFrameRequested       bool
	stepInstructionRequested bool
	debuggerState            debug.DebuggerState
}

// New creates an emulator with no program loaded.
func New(config Config) (*Chip8, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Chip8{
		config: config,
		clock:  timing.NewClock(config.InstructionsPerSecond, config.TimerHz),
		tone:   audio.NewTone(audio.SampleRate, audio.DefaultToneHz),
		frames: timing.NewFrameSlicer(config.FrameRate),
	}
	e.cpu = e.newCPU()
	e.inputManager = input.NewManager(e)
	e.registerActions()

	return e, nil
}

// NewWithProgram creates an emulator with program loaded at 0x200.
func NewWithProgram(program []byte, config Config) (*Chip8, error) {
	e, err := New(config)
	if err != nil {
		return nil, err
	}

	if err := e.cpu.LoadProgram(program); err != nil {
		return nil, err
	}
	e.program = append([]byte(nil), program...)

	return e, nil
}

// NewWithFile creates an emulator and loads the ROM at path into it.
func NewWithFile(path string, config Config) (*Chip8, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	e, err := New(config)
	if err != nil {
		return nil, err
	}

	if err := e.cpu.LoadProgram(data); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	e.program = data

	slog.Info("ROM loaded", "path", path, "bytes", len(data))
	return e, nil
}

func (e *Chip8) newCPU() *cpu.CPU {
	if e.config.Seed != 0 {
		return cpu.New(cpu.WithSeed(e.config.Seed))
	}
	return cpu.New()
}

func (e *Chip8) registerActions() {
	for _, act := range []action.Action{
		action.EmulatorPauseToggle,
		action.EmulatorStepFrame,
		action.EmulatorStepInstruction,
		action.EmulatorReset,
	} {
		e.inputManager.On(act, event.Press, func() { e.HandleAction(act, true) })
	}
}

// RunUntilFrame advances emulation by one frame period. While paused it only
// honours pending step requests. A fatal CPU error pauses the emulator and
// is returned on this and every later call until Reset.
func (e *Chip8) RunUntilFrame() error {
	if fault := e.cpu.Fault(); fault != nil {
		return fault
	}

	if e.paused {
		switch {
		case e.stepInstructionRequested:
			e.stepInstructionRequested = false
			e.debuggerState = debug.DebuggerPaused
			return e.StepInstruction()
		case e.stepFrameRequested:
			e.stepFrameRequested = false
			e.debuggerState = debug.DebuggerPaused
		default:
			return nil
		}
	}

	err := e.clock.Advance(e.frames.Next(), e.cpu.Step, e.cpu.TickTimers)
	e.frameCount++
	e.tone.SetActive(e.SoundActive())

	if err != nil {
		e.paused = true
		e.debuggerState = debug.DebuggerPaused
		return err
	}
	return nil
}

// StepInstruction executes exactly one instruction without ticking timers.
func (e *Chip8) StepInstruction() error {
	err := e.cpu.Step()
	e.tone.SetActive(e.SoundActive())
	if err != nil {
		e.paused = true
		e.debuggerState = debug.DebuggerPaused
	}
	return err
}

// HandleAction applies a keypad change or an emulator control.
func (e *Chip8) HandleAction(act action.Action, pressed bool) {
	if key, ok := action.KeypadKey(act); ok {
		e.cpu.SetKey(key, pressed)
		return
	}

	if !pressed {
		return
	}

	switch act {
	case action.EmulatorPauseToggle:
		e.paused = !e.paused
		if e.paused {
			e.debuggerState = debug.DebuggerPaused
			e.tone.SetActive(false)
		} else {
			e.debuggerState = debug.DebuggerRunning
			e.stepFrameRequested = false
			e.stepInstructionRequested = false
			e.clock.Reset()
			e.frames.Reset()
		}
		slog.Info("Emulation paused", "paused", e.paused)
	case action.EmulatorStepFrame:
		if e.paused {
			e.stepFrameRequested = true
			e.debuggerState = debug.DebuggerStepFrame
		}
	case action.EmulatorStepInstruction:
		if e.paused {
			e.stepInstructionRequested = true
			e.debuggerState = debug.DebuggerStepInstruction
		}
	case action.EmulatorReset:
		e.Reset()
	}
}

// SetKey updates a keypad key. It lets the input manager write straight to
// the keypad.
func (e *Chip8) SetKey(key uint8, pressed bool) {
	e.cpu.SetKey(key, pressed)
}

// Reset power-cycles the machine and reloads the current program. The pause
// state is kept so a paused session can be stepped from the first
// instruction.
func (e *Chip8) Reset() {
	e.cpu = e.newCPU()
	if len(e.program) > 0 {
		// the program fit before, it fits again
		_ = e.cpu.LoadProgram(e.program)
	}

	e.clock.Reset()
	e.frames.Reset()
	e.tone.SetActive(false)
	e.frameCount = 0
	e.stepFrameRequested = false
	e.stepInstructionRequested = false
	if e.paused {
		e.debuggerState = debug.DebuggerPaused
	} else {
		e.debuggerState = debug.DebuggerRunning
	}

	slog.Info("Emulator reset", "program_bytes", len(e.program))
}

// GetCurrentFrame returns a copy of the display.
func (e *Chip8) GetCurrentFrame() video.Frame {
	return e.cpu.Frame()
}

// SoundActive reports whether the buzzer should sound.
func (e *Chip8) SoundActive() bool {
	return e.cpu.SoundTimer() > 0
}

// ExtractDebugData captures registers, keypad and disassembly around PC.
func (e *Chip8) ExtractDebugData() *debug.CompleteDebugData {
	c := e.cpu
	return &debug.CompleteDebugData{
		CPU: &debug.CPUState{
			V:          c.Registers(),
			I:          c.I(),
			PC:         c.PC(),
			SP:         c.SP(),
			Stack:      c.Stack(),
			DelayTimer: c.DelayTimer(),
			SoundTimer: c.SoundTimer(),
			Waiting:    c.Waiting(),
			Opcode:     c.CurrentOpcode(),
			Cycles:     c.Cycles(),
			Fault:      c.Fault(),
		},
		Disassembly:   disasm.DisassembleAround(c.PC(), disasmBefore, disasmAfter, c.Memory()),
		Keys:          c.Keypad().State(),
		DebuggerState: e.debuggerState,
	}
}

// InputManager returns the manager routing actions into this emulator.
func (e *Chip8) InputManager() *input.Manager {
	return e.inputManager
}

// Tone returns the buzzer, gated by the sound timer.
func (e *Chip8) Tone() *audio.Tone {
	return e.tone
}

// Paused reports whether emulation is paused.
func (e *Chip8) Paused() bool {
	return e.paused
}

// FrameCount returns the number of frames run since the last reset.
func (e *Chip8) FrameCount() uint64 {
	return e.frameCount
}

// InstructionCount returns the number of instructions executed since the
// last reset.
func (e *Chip8) InstructionCount() uint64 {
	return e.cpu.Cycles()
}
