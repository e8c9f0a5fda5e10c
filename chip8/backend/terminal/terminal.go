package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/terminal/render"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/disasm"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

const (
	width  = video.FramebufferWidth
	height = video.FramebufferHeight

	// two pixel rows per terminal row
	gameAreaHeight = height / 2

	registerHeight = 11
	disasmHeight   = 9
	minTermWidth   = width + 2
	minTermHeight  = gameAreaHeight + 3
	logCapacity    = 200
)

// Key expiry timeout. Terminals only report key presses (and auto-repeat),
// so a key counts as held until no repeat has arrived for this long.
const keyTimeout = 100 * time.Millisecond

// Backend implements the Backend interface using tcell for terminal rendering
type Backend struct {
	screen     tcell.Screen
	running    bool
	logBuffer  *render.LogBuffer
	logLevel   slog.Level
	levelVar   *slog.LevelVar // handler threshold, follows logLevel
	config     backend.BackendConfig
	eventQueue []backend.InputEvent // non-keypad events collected between updates
	signals    chan os.Signal

	keyStates  map[action.Action]time.Time // Last time each keypad key was seen
	activeKeys map[action.Action]bool      // Keypad keys held in the previous update

	debugProvider backend.DebugDataProvider

	// Snapshot state
	currentFrame video.Frame

	now func() time.Time
}

// New creates a new terminal backend
func New() *Backend {
	return &Backend{
		logLevel: slog.LevelInfo,
		levelVar: new(slog.LevelVar),
		now:      time.Now,
	}
}

// NewWithScreen creates a terminal backend drawing to the given screen
// instead of the controlling terminal.
func NewWithScreen(screen tcell.Screen) *Backend {
	b := New()
	b.screen = screen
	return b
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.BackendConfig) error {
	t.config = config
	t.debugProvider = config.DebugProvider
	t.keyStates = make(map[action.Action]time.Time)
	t.activeKeys = make(map[action.Action]bool)
	t.setLogLevel(config.LogLevel)

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		t.screen = screen
	}

	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	t.running = true

	// Records below the pane's level are dropped before they reach the ring,
	// so debug tracing cannot evict them while it is filtered out.
	t.logBuffer = render.NewLogBuffer(logCapacity)
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, t.levelVar)))

	t.setupCallbacks()

	if config.TestPattern {
		slog.Info("Terminal backend initialized in test pattern mode")
	} else {
		slog.Info("Terminal backend initialized")
		if config.ShowDebug {
			slog.Debug("Debug mode enabled")
		}
	}

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	t.signals = make(chan os.Signal, 1)
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	return nil
}

func (t *Backend) setupCallbacks() {
	m := t.config.InputManager
	if m == nil {
		slog.Warn("No input manager available, callbacks not registered")
		return
	}

	m.On(action.EmulatorQuit, event.Press, func() {
		t.running = false
	})
	m.On(action.EmulatorSnapshot, event.Press, func() {
		label := ""
		if t.config.TestPattern {
			label = "test_pattern"
		}
		debug.TakeSnapshot(&t.currentFrame, label)
	})
	m.On(action.EmulatorDebugToggle, event.Press, func() {
		t.config.ShowDebug = !t.config.ShowDebug
		slog.Info("Debug display toggled", "enabled", t.config.ShowDebug)
	})
	m.On(action.DebugLogLevelIncrease, event.Press, func() { t.changeLogLevel(1) })
	m.On(action.DebugLogLevelDecrease, event.Press, func() { t.changeLogLevel(-1) })
}

// Update renders a frame and processes events
func (t *Backend) Update(frame *video.Frame) ([]backend.InputEvent, error) {
	var events []backend.InputEvent
	now := t.now()

	select {
	case sig := <-t.signals:
		slog.Info("Received signal, shutting down", "signal", sig)
		t.running = false
		if t.config.Callbacks.OnQuit != nil {
			t.config.Callbacks.OnQuit()
		}
	default:
	}

	// Poll for input events synchronously
	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	events = append(events, t.keypadEvents(now)...)
	events = append(events, t.eventQueue...)
	t.eventQueue = nil

	if !t.running {
		return events, nil
	}

	t.currentFrame = *frame
	t.render(frame)
	t.screen.Show()

	return events, nil
}

// keypadEvents turns the timestamps of recent key presses into Press, Hold
// and Release transitions.
func (t *Backend) keypadEvents(now time.Time) []backend.InputEvent {
	var events []backend.InputEvent
	currentlyActive := make(map[action.Action]bool)

	for act, lastPressed := range t.keyStates {
		if now.Sub(lastPressed) >= keyTimeout {
			delete(t.keyStates, act)
			continue
		}

		currentlyActive[act] = true
		if !t.activeKeys[act] {
			slog.Debug("Key press", "action", act)
			events = append(events, backend.InputEvent{Action: act, Type: event.Press})
		} else {
			events = append(events, backend.InputEvent{Action: act, Type: event.Hold})
		}
	}

	for act := range t.activeKeys {
		if !currentlyActive[act] {
			slog.Debug("Key release", "action", act)
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}

	t.activeKeys = currentlyActive
	return events
}

// Cleanup cleans up terminal resources
func (t *Backend) Cleanup() error {
	if t.signals != nil {
		signal.Stop(t.signals)
	}
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
	}
	return nil
}

// specialKeyNames converts tcell keys to key names used in default mappings
var specialKeyNames = map[tcell.Key]string{
	tcell.KeyEscape: "Escape",
	tcell.KeyF5:     "F5",
	tcell.KeyF9:     "F9",
	tcell.KeyF10:    "F10",
	tcell.KeyF12:    "F12",
}

// buildKeyMapping creates the key mapping from default mappings
func buildKeyMapping() map[tcell.Key]action.Action {
	mapping := make(map[tcell.Key]action.Action)

	for key, keyName := range specialKeyNames {
		if act, ok := input.GetDefaultMapping(keyName); ok {
			mapping[key] = act
		}
	}

	mapping[tcell.KeyCtrlC] = action.EmulatorQuit

	return mapping
}

// buildRuneMapping creates the rune mapping from default mappings. Letters
// match regardless of case so caps lock does not disable the keypad.
func buildRuneMapping() map[rune]action.Action {
	mapping := make(map[rune]action.Action)

	for keyName, act := range input.DefaultKeyMap {
		if keyName == "Space" {
			mapping[' '] = act
			continue
		}
		runes := []rune(keyName)
		if len(runes) != 1 {
			continue
		}
		mapping[runes[0]] = act
		if upper := []rune(strings.ToUpper(keyName)); upper[0] != runes[0] {
			mapping[upper[0]] = act
		}
	}

	return mapping
}

// keyMapping maps tcell keys to actions
var keyMapping = buildKeyMapping()

// runeMapping maps runes to actions
var runeMapping = buildRuneMapping()

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	act, ok := keyMapping[ev.Key()]
	if !ok && ev.Key() == tcell.KeyRune {
		act, ok = runeMapping[ev.Rune()]
	}
	if !ok {
		return
	}

	if _, isKey := action.KeypadKey(act); isKey {
		t.keyStates[act] = now
		return
	}

	if act == action.EmulatorQuit {
		t.running = false
	}
	t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: act, Type: event.Press})
}

func (t *Backend) setLogLevel(level slog.Level) {
	t.logLevel = level
	t.levelVar.Set(level)
}

func (t *Backend) changeLogLevel(direction int) {
	oldLevel := t.logLevel
	newLevel := oldLevel
	switch direction {
	case -1:
		switch oldLevel {
		case slog.LevelDebug:
			newLevel = slog.LevelInfo
		case slog.LevelInfo:
			newLevel = slog.LevelWarn
		case slog.LevelWarn:
			newLevel = slog.LevelError
		}
	case 1:
		switch oldLevel {
		case slog.LevelError:
			newLevel = slog.LevelWarn
		case slog.LevelWarn:
			newLevel = slog.LevelInfo
		case slog.LevelInfo:
			newLevel = slog.LevelDebug
		}
	}
	if oldLevel != newLevel {
		t.setLogLevel(newLevel)
		slog.Info("Log filter changed", "from", oldLevel, "to", newLevel)
	}
}

func (t *Backend) render(frame *video.Frame) {
	termWidth, termHeight := t.screen.Size()
	t.screen.Clear()

	if termWidth < minTermWidth || termHeight < minTermHeight {
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		t.drawText(0, termHeight/2, termWidth, msg, style)
		return
	}

	dividerX := width + 1
	rightPanelX := dividerX + 2
	rightPanelWidth := max(termWidth-rightPanelX, 0)

	t.drawBorders(termWidth, termHeight, dividerX)
	t.drawScreen(frame)

	logsY := 1
	if t.config.ShowDebug && t.debugProvider != nil {
		if data := t.debugProvider.ExtractDebugData(); data != nil {
			t.drawRegisters(data, rightPanelX, 1, rightPanelWidth, termHeight)
			t.drawDisassembly(data, rightPanelX, registerHeight+2, rightPanelWidth, termHeight)
		}
		logsY = registerHeight + disasmHeight + 3
	}
	t.drawLogs(rightPanelX, logsY, rightPanelWidth, termHeight)
}

func (t *Backend) drawBorders(termWidth, termHeight, dividerX int) {
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	for y := 0; y < termHeight-1; y++ {
		if dividerX < termWidth {
			t.screen.SetContent(dividerX, y, '│', nil, borderStyle)
		}
	}

	title := " CHIP-8 "
	if t.config.Title != "" {
		title = " " + t.config.Title + " "
	}
	if t.config.TestPattern {
		title = " Test Pattern "
	}
	t.drawText(1, 0, dividerX-1, title, titleStyle)

	if t.config.ShowDebug {
		registerEndY := registerHeight + 1
		disasmEndY := registerEndY + disasmHeight + 1
		for _, y := range []int{registerEndY, disasmEndY} {
			if y >= termHeight-1 {
				continue
			}
			for x := dividerX + 1; x < termWidth; x++ {
				t.screen.SetContent(x, y, '─', nil, borderStyle)
			}
			t.screen.SetContent(dividerX, y, '├', nil, borderStyle)
		}

		t.drawText(dividerX+2, 0, termWidth-dividerX-2, " Registers ", titleStyle)
		t.drawText(dividerX+2, registerEndY, termWidth-dividerX-2, " Disassembly ", titleStyle)
		t.drawText(dividerX+2, disasmEndY, termWidth-dividerX-2, fmt.Sprintf(" Logs [%s] (-/+ filter) ", t.logLevel), titleStyle)
	} else {
		t.drawText(dividerX+2, 0, termWidth-dividerX-2, fmt.Sprintf(" Logs [%s] ", t.logLevel), titleStyle)
	}

	helpText := " Keys: 1234/QWER/ASDF/ZXCV  SPACE=pause O=frame I=step F5=reset F9=snapshot F10=debug ESC=quit "
	if t.config.TestPattern {
		helpText = " Test Pattern Mode: F12=cycle patterns F9=snapshot ESC=exit "
	}
	t.drawText(0, termHeight-1, termWidth, helpText, borderStyle)
}

func (t *Backend) drawScreen(frame *video.Frame) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			char := render.HalfBlock(frame[y][x], frame[y+1][x])
			t.screen.SetContent(x, y/2+1, char, nil, style)
		}
	}
}

func (t *Backend) drawRegisters(data *debug.CompleteDebugData, startX, startY, width, termHeight int) {
	if data.CPU == nil || width <= 0 {
		return
	}
	cpu := data.CPU

	lines := []string{
		fmt.Sprintf("Status: %s  Cycles: %d", data.DebuggerState, cpu.Cycles),
	}
	for row := 0; row < 4; row++ {
		var sb strings.Builder
		for col := 0; col < 4; col++ {
			r := row*4 + col
			fmt.Fprintf(&sb, "V%X:%02X ", r, cpu.V[r])
		}
		lines = append(lines, strings.TrimSpace(sb.String()))
	}
	lines = append(lines,
		fmt.Sprintf("I: 0x%03X  PC: 0x%03X  SP: %d", cpu.I, cpu.PC, cpu.SP),
		fmt.Sprintf("DT: %02X  ST: %02X  Op: %04X", cpu.DelayTimer, cpu.SoundTimer, cpu.Opcode),
		"Stack: "+formatStack(cpu.Stack),
		"Keys:  "+formatKeys(data.Keys),
		fmt.Sprintf("Wait key: %s", map[bool]string{true: "yes", false: "no"}[cpu.Waiting]),
	)
	if cpu.Fault != nil {
		lines = append(lines, "Fault: "+cpu.Fault.Error())
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	faultStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	for i, line := range lines {
		y := startY + i
		if y >= termHeight-1 || i >= registerHeight {
			break
		}
		useStyle := style
		if strings.HasPrefix(line, "Fault") {
			useStyle = faultStyle
		}
		t.drawText(startX, y, width, line, useStyle)
	}
}

func formatStack(stack []uint16) string {
	if len(stack) == 0 {
		return "-"
	}
	parts := make([]string, len(stack))
	for i, addr := range stack {
		parts[i] = fmt.Sprintf("%03X", addr)
	}
	return strings.Join(parts, " ")
}

func formatKeys(keys [16]bool) string {
	var sb strings.Builder
	for k, pressed := range keys {
		if pressed {
			fmt.Fprintf(&sb, "%X", k)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

func (t *Backend) drawDisassembly(data *debug.CompleteDebugData, startX, startY, width, termHeight int) {
	if data.CPU == nil || width <= 0 {
		return
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	currentStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)

	for i, line := range data.Disassembly {
		y := startY + i
		if i >= disasmHeight || y >= termHeight-1 {
			break
		}

		isCurrent := line.Address == data.CPU.PC
		useStyle := style
		if isCurrent {
			useStyle = currentStyle
		}
		t.drawText(startX, y, width, disasm.FormatDisassemblyLine(line, isCurrent), useStyle)
	}
}

func (t *Backend) drawLogs(startX, startY, width, termHeight int) {
	availableHeight := termHeight - startY - 1
	if width <= 0 || availableHeight <= 0 {
		return
	}

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, entry := range t.logBuffer.GetRecent(availableHeight, t.logLevel) {
		style := infoStyle
		switch {
		case entry.Level >= slog.LevelError:
			style = errStyle
		case entry.Level >= slog.LevelWarn:
			style = warnStyle
		case entry.Level < slog.LevelInfo:
			style = debugStyle
		}

		t.drawText(startX, startY+i, width, render.FormatLogEntry(entry), style)
	}
}

// drawText writes text at x, y, cut to maxWidth cells.
func (t *Backend) drawText(x, y, maxWidth int, text string, style tcell.Style) {
	for i, ch := range []rune(render.Truncate(text, maxWidth)) {
		t.screen.SetContent(x+i, y, ch, nil, style)
	}
}
