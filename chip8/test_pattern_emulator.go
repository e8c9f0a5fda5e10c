package chip8

import (
	"log/slog"

	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

// testPatternAnimationFrames is how many frames pass between animation steps.
const testPatternAnimationFrames = 8

// TestPatternEmulator displays test patterns without actual emulation
type TestPatternEmulator struct {
	frame            video.Frame
	pattern          video.TestPattern
	animationCounter int
	inputManager     *input.Manager
}

func NewTestPatternEmulator() *TestPatternEmulator {
	e := &TestPatternEmulator{
		frame:        video.GenerateTestPattern(video.PatternCheckerboard, 0),
		inputManager: input.NewManager(nil),
	}
	e.inputManager.On(action.EmulatorTestPatternCycle, event.Press, func() {
		e.HandleAction(action.EmulatorTestPatternCycle, true)
	})
	return e
}

func (e *TestPatternEmulator) RunUntilFrame() error {
	e.animationCounter++
	if e.animationCounter%testPatternAnimationFrames == 0 {
		e.frame = video.GenerateTestPattern(e.pattern, e.animationCounter/testPatternAnimationFrames)
	}
	return nil
}

func (e *TestPatternEmulator) GetCurrentFrame() video.Frame {
	return e.frame
}

func (e *TestPatternEmulator) HandleAction(act action.Action, pressed bool) {
	if act == action.EmulatorTestPatternCycle && pressed {
		e.CycleTestPattern()
	}
}

func (e *TestPatternEmulator) ExtractDebugData() *debug.CompleteDebugData {
	return &debug.CompleteDebugData{
		DebuggerState: debug.DebuggerRunning,
	}
}

func (e *TestPatternEmulator) InputManager() *input.Manager {
	return e.inputManager
}

// Pattern returns the pattern currently shown.
func (e *TestPatternEmulator) Pattern() video.TestPattern {
	return e.pattern
}

func (e *TestPatternEmulator) CycleTestPattern() {
	e.pattern = e.pattern.Next()
	e.frame = video.GenerateTestPattern(e.pattern, e.animationCounter/testPatternAnimationFrames)
	slog.Info("Switched to test pattern", "pattern", e.pattern)
}
