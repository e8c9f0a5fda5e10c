package terminal

import (
	"errors"
	"log/slog"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/disasm"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

type fakeProvider struct {
	data *debug.CompleteDebugData
}

func (f *fakeProvider) ExtractDebugData() *debug.CompleteDebugData { return f.data }

// newTestBackend returns an initialized backend on a 120x40 simulation screen
// with a controllable clock.
func newTestBackend(t *testing.T, config backend.BackendConfig) (*Backend, tcell.SimulationScreen, *time.Time) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	screen := tcell.NewSimulationScreen("UTF-8")
	b := NewWithScreen(screen)
	now := time.Unix(0, 0)
	b.now = func() time.Time { return now }

	require.NoError(t, b.Init(config))
	screen.SetSize(120, 40)
	t.Cleanup(func() { _ = b.Cleanup() })

	return b, screen, &now
}

func cellRune(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func rowText(screen tcell.Screen, y, from, to int) string {
	var sb strings.Builder
	for x := from; x < to; x++ {
		sb.WriteRune(cellRune(screen, x, y))
	}
	return sb.String()
}

func TestBackend_RendersHalfBlocks(t *testing.T) {
	b, screen, _ := newTestBackend(t, backend.BackendConfig{})

	var frame video.Frame
	frame[0][0] = true
	frame[1][0] = true
	frame[0][1] = true
	frame[3][2] = true

	_, err := b.Update(&frame)
	require.NoError(t, err)

	assert.Equal(t, '█', cellRune(screen, 0, 1))
	assert.Equal(t, '▀', cellRune(screen, 1, 1))
	assert.Equal(t, '▄', cellRune(screen, 2, 2))
	assert.Equal(t, ' ', cellRune(screen, 3, 1))
}

func TestBackend_KeypadPressHoldRelease(t *testing.T) {
	b, screen, now := newTestBackend(t, backend.BackendConfig{})
	var frame video.Frame

	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	events, err := b.Update(&frame)
	require.NoError(t, err)
	assert.Equal(t, []backend.InputEvent{{Action: action.Keypad0, Type: event.Press}}, events)

	*now = now.Add(50 * time.Millisecond)
	events, _ = b.Update(&frame)
	assert.Equal(t, []backend.InputEvent{{Action: action.Keypad0, Type: event.Hold}}, events)

	*now = now.Add(keyTimeout)
	events, _ = b.Update(&frame)
	assert.Equal(t, []backend.InputEvent{{Action: action.Keypad0, Type: event.Release}}, events)

	events, _ = b.Update(&frame)
	assert.Empty(t, events)
}

func TestBackend_UppercaseKeys(t *testing.T) {
	b, screen, _ := newTestBackend(t, backend.BackendConfig{})
	var frame video.Frame

	screen.InjectKey(tcell.KeyRune, 'V', tcell.ModNone)
	events, _ := b.Update(&frame)

	require.Len(t, events, 1)
	assert.Equal(t, action.KeypadF, events[0].Action)
}

func TestBackend_ControlKeys(t *testing.T) {
	b, screen, _ := newTestBackend(t, backend.BackendConfig{})
	var frame video.Frame

	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	screen.InjectKey(tcell.KeyF5, 0, tcell.ModNone)
	events, _ := b.Update(&frame)

	assert.Equal(t, []backend.InputEvent{
		{Action: action.EmulatorPauseToggle, Type: event.Press},
		{Action: action.EmulatorReset, Type: event.Press},
	}, events)
}

func TestBackend_Quit(t *testing.T) {
	b, screen, _ := newTestBackend(t, backend.BackendConfig{})
	var frame video.Frame

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	events, _ := b.Update(&frame)

	require.Len(t, events, 1)
	assert.Equal(t, action.EmulatorQuit, events[0].Action)
	assert.False(t, b.running)
}

func TestBackend_DebugPanes(t *testing.T) {
	provider := &fakeProvider{data: &debug.CompleteDebugData{
		CPU: &debug.CPUState{
			V:     [16]uint8{0x2A},
			PC:    0x202,
			I:     0x300,
			Stack: []uint16{0x204},
			Fault: errors.New("boom"),
		},
		Disassembly: []disasm.DisassemblyLine{
			{Address: 0x200, Opcode: 0x00E0, Instruction: "CLS"},
			{Address: 0x202, Opcode: 0x1200, Instruction: "JP 0x200"},
		},
		DebuggerState: debug.DebuggerPaused,
	}}
	b, screen, _ := newTestBackend(t, backend.BackendConfig{ShowDebug: true, DebugProvider: provider})

	var frame video.Frame
	_, err := b.Update(&frame)
	require.NoError(t, err)

	x := width + 3
	assert.Contains(t, rowText(screen, 1, x, 120), "Status: PAUSED")
	assert.Contains(t, rowText(screen, 2, x, 120), "V0:2A")
	assert.Contains(t, rowText(screen, 6, x, 120), "PC: 0x202")
	assert.Contains(t, rowText(screen, 8, x, 120), "Stack: 204")
	assert.Contains(t, rowText(screen, 11, x, 120), "Fault: boom")

	disasmY := registerHeight + 2
	assert.Contains(t, rowText(screen, disasmY, x, 120), "CLS")
	assert.Contains(t, rowText(screen, disasmY+1, x, 120), "→0x202: 1200  JP 0x200")
}

func TestBackend_Callbacks(t *testing.T) {
	m := input.NewManager(nil)
	b, _, _ := newTestBackend(t, backend.BackendConfig{InputManager: m, LogLevel: slog.LevelInfo})

	m.Trigger(action.EmulatorDebugToggle, event.Press)
	assert.True(t, b.config.ShowDebug)

	m.Trigger(action.DebugLogLevelIncrease, event.Press)
	assert.Equal(t, slog.LevelDebug, b.logLevel)

	m.Trigger(action.EmulatorQuit, event.Press)
	assert.False(t, b.running)
}

func TestBackend_InstructionTraceFiltered(t *testing.T) {
	b, _, _ := newTestBackend(t, backend.BackendConfig{LogLevel: slog.LevelInfo})

	c := cpu.New()
	require.NoError(t, c.LoadProgram([]byte{0x12, 0x00})) // JP 0x200
	slog.Info("ROM loaded")

	for i := 0; i < 2*logCapacity; i++ {
		require.NoError(t, c.Step())
	}

	entries := b.logBuffer.GetRecent(logCapacity, slog.LevelDebug)
	messages := make([]string, 0, len(entries))
	for _, entry := range entries {
		assert.GreaterOrEqual(t, entry.Level, slog.LevelInfo)
		messages = append(messages, entry.Message)
	}
	assert.Contains(t, messages, "ROM loaded")

	b.changeLogLevel(1)
	require.NoError(t, c.Step())

	recent := b.logBuffer.GetRecent(1, slog.LevelDebug)
	require.Len(t, recent, 1)
	assert.Equal(t, slog.LevelDebug, recent[0].Level)
	assert.True(t, strings.HasPrefix(recent[0].Message, "exec"), recent[0].Message)
}

func TestBackend_SignalCallsOnQuit(t *testing.T) {
	quit := 0
	config := backend.BackendConfig{Callbacks: backend.BackendCallbacks{OnQuit: func() { quit++ }}}
	b, _, _ := newTestBackend(t, config)

	b.signals <- syscall.SIGTERM
	var frame video.Frame
	_, err := b.Update(&frame)
	require.NoError(t, err)

	assert.Equal(t, 1, quit)
	assert.False(t, b.running)
}

func TestBackend_TooSmall(t *testing.T) {
	b, screen, _ := newTestBackend(t, backend.BackendConfig{})
	screen.SetSize(40, 10)

	var frame video.Frame
	_, err := b.Update(&frame)
	require.NoError(t, err)

	assert.Contains(t, rowText(screen, 5, 0, 40), "Terminal too small")
}

func TestBuildRuneMapping(t *testing.T) {
	assert.Equal(t, action.KeypadC, runeMapping['4'])
	assert.Equal(t, action.Keypad4, runeMapping['q'])
	assert.Equal(t, action.Keypad4, runeMapping['Q'])
	assert.Equal(t, action.EmulatorPauseToggle, runeMapping[' '])
	assert.Equal(t, action.EmulatorQuit, keyMapping[tcell.KeyCtrlC])
}
