//go:build sdl2

package sdl2

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	defaultScale  = 10
	bytesPerPixel = 4

	// RGBA8888 packs as 0xRRGGBBAA in a little-endian uint32
	colorOn  = 0xFFFFFFFF
	colorOff = 0x000000FF
)

// Backend implements the Backend interface using SDL2 bindings
// Note: building this requires SDL2 development libraries installed.
// Default builds skip this and use a stubbed backend, see build tags (sdl2)
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	running  bool
	config   backend.BackendConfig
	pixels   []byte
	events   []backend.InputEvent

	// Snapshot state
	currentFrame video.Frame
}

// New creates a new SDL2 backend
func New() *Backend {
	return &Backend{
		pixels: make([]byte, video.FramebufferWidth*video.FramebufferHeight*bytesPerPixel),
	}
}

// Init initializes the SDL2 backend
func (s *Backend) Init(config backend.BackendConfig) error {
	s.config = config

	scale := config.Scale
	if scale <= 0 {
		scale = defaultScale
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %w", err)
	}

	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(video.FramebufferWidth*scale),
		int32(video.FramebufferHeight*scale),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %w", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	s.renderer = renderer
	renderer.SetLogicalSize(video.FramebufferWidth, video.FramebufferHeight)

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888,
		sdl.TEXTUREACCESS_STREAMING,
		video.FramebufferWidth,
		video.FramebufferHeight,
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create texture: %w", err)
	}
	s.texture = texture

	s.running = true
	s.setupCallbacks()

	if config.TestPattern {
		slog.Info("SDL2 backend initialized in test pattern mode")
	} else {
		slog.Info("SDL2 backend initialized", "scale", scale)
	}

	return nil
}

func (s *Backend) setupCallbacks() {
	m := s.config.InputManager
	if m == nil {
		slog.Warn("No input manager available, callbacks not registered")
		return
	}

	m.On(action.EmulatorQuit, event.Press, func() {
		s.running = false
	})
	m.On(action.EmulatorSnapshot, event.Press, func() {
		debug.TakeSnapshot(&s.currentFrame, "")
	})
}

// Update renders a frame and processes events
func (s *Backend) Update(frame *video.Frame) ([]backend.InputEvent, error) {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		s.handleEvent(ev)
	}

	events := s.events
	s.events = nil

	if !s.running {
		return events, nil
	}

	s.currentFrame = *frame
	if err := s.renderFrame(frame); err != nil {
		return events, err
	}

	return events, nil
}

// Cleanup cleans up SDL2 resources
func (s *Backend) Cleanup() error {
	slog.Info("Cleaning up SDL2 backend")

	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()

	return nil
}

func (s *Backend) handleEvent(ev sdl.Event) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		s.running = false
		if s.config.Callbacks.OnQuit != nil {
			s.config.Callbacks.OnQuit()
		}

	case *sdl.KeyboardEvent:
		act, ok := keyMapping[e.Keysym.Scancode]
		if !ok {
			return
		}

		_, isKey := action.KeypadKey(act)
		switch {
		case e.Type == sdl.KEYDOWN && e.Repeat != 0:
			if isKey {
				s.events = append(s.events, backend.InputEvent{Action: act, Type: event.Hold})
			}
		case e.Type == sdl.KEYDOWN:
			s.events = append(s.events, backend.InputEvent{Action: act, Type: event.Press})
		case e.Type == sdl.KEYUP && isKey:
			s.events = append(s.events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}
}

// keyMapping maps physical key positions to actions, so the keypad block
// stays in place on non-QWERTY layouts.
var keyMapping = map[sdl.Scancode]action.Action{
	sdl.SCANCODE_1: action.Keypad1,
	sdl.SCANCODE_2: action.Keypad2,
	sdl.SCANCODE_3: action.Keypad3,
	sdl.SCANCODE_4: action.KeypadC,
	sdl.SCANCODE_Q: action.Keypad4,
	sdl.SCANCODE_W: action.Keypad5,
	sdl.SCANCODE_E: action.Keypad6,
	sdl.SCANCODE_R: action.KeypadD,
	sdl.SCANCODE_A: action.Keypad7,
	sdl.SCANCODE_S: action.Keypad8,
	sdl.SCANCODE_D: action.Keypad9,
	sdl.SCANCODE_F: action.KeypadE,
	sdl.SCANCODE_Z: action.KeypadA,
	sdl.SCANCODE_X: action.Keypad0,
	sdl.SCANCODE_C: action.KeypadB,
	sdl.SCANCODE_V: action.KeypadF,

	// Emulator controls
	sdl.SCANCODE_SPACE:  action.EmulatorPauseToggle,
	sdl.SCANCODE_P:      action.EmulatorPauseToggle,
	sdl.SCANCODE_O:      action.EmulatorStepFrame,
	sdl.SCANCODE_I:      action.EmulatorStepInstruction,
	sdl.SCANCODE_F5:     action.EmulatorReset,
	sdl.SCANCODE_F9:     action.EmulatorSnapshot,
	sdl.SCANCODE_F12:    action.EmulatorTestPatternCycle,
	sdl.SCANCODE_ESCAPE: action.EmulatorQuit,
}

func (s *Backend) renderFrame(frame *video.Frame) error {
	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			color := uint32(colorOff)
			if frame[y][x] {
				color = colorOn
			}
			idx := (y*video.FramebufferWidth + x) * bytesPerPixel
			*(*uint32)(unsafe.Pointer(&s.pixels[idx])) = color
		}
	}

	if err := s.texture.Update(nil, unsafe.Pointer(&s.pixels[0]), video.FramebufferWidth*bytesPerPixel); err != nil {
		return fmt.Errorf("failed to update texture: %w", err)
	}

	s.renderer.SetDrawColor(0, 0, 0, 0xFF)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
	return nil
}
