package chip8

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/timing"
)

// Run drives emu through b until a quit action arrives or something fails.
// Each iteration runs one frame, presents it, dispatches the returned input
// events through the emulator's input manager and waits on limiter.
// A nil limiter runs unthrottled.
func Run(emu Emulator, b backend.Backend, config backend.BackendConfig, limiter timing.Limiter) error {
	if limiter == nil {
		limiter = timing.NewNoOpLimiter()
	}

	manager := emu.InputManager()
	config.InputManager = manager
	if config.DebugProvider == nil {
		config.DebugProvider = emu
	}

	running := true
	manager.On(action.EmulatorQuit, event.Press, func() { running = false })
	onQuit := config.Callbacks.OnQuit
	config.Callbacks.OnQuit = func() {
		running = false
		if onQuit != nil {
			onQuit()
		}
	}

	if err := b.Init(config); err != nil {
		return fmt.Errorf("failed to initialize backend: %w", err)
	}
	defer func() {
		if cerr := b.Cleanup(); cerr != nil {
			slog.Warn("Backend cleanup failed", "error", cerr)
		}
	}()

	for running {
		if err := emu.RunUntilFrame(); err != nil {
			return fmt.Errorf("emulation stopped: %w", err)
		}

		frame := emu.GetCurrentFrame()
		events, err := b.Update(&frame)
		if err != nil {
			return fmt.Errorf("backend update failed: %w", err)
		}

		for _, evt := range events {
			manager.Trigger(evt.Action, evt.Type)
		}

		if running {
			limiter.WaitForNextFrame()
		}
	}

	return nil
}
