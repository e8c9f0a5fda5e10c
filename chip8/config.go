package chip8

import (
	"errors"
	"fmt"
)

const (
	// DefaultInstructionsPerSecond is a speed most ROMs were written for.
	DefaultInstructionsPerSecond = 1000
	// DefaultTimerHz is the fixed rate of the delay and sound timers.
	DefaultTimerHz = 60
	// DefaultFrameRate is how often a frame is presented to the backend.
	DefaultFrameRate = 60
)

// Config holds the timing and randomness settings of an emulator.
type Config struct {
	// InstructionsPerSecond is how many instructions run per emulated second.
	InstructionsPerSecond int
	// TimerHz is the tick rate of the delay and sound timers.
	TimerHz int
	// FrameRate is how many frames are produced per emulated second. It only
	// sets how the timeline is sliced and never changes emulation speed.
	FrameRate int
	// Seed makes Cxnn reproducible. Zero picks a random seed.
	Seed uint64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		InstructionsPerSecond: DefaultInstructionsPerSecond,
		TimerHz:               DefaultTimerHz,
		FrameRate:             DefaultFrameRate,
	}
}

var errNonPositiveRate = errors.New("must be positive")

// Validate reports the first setting that cannot drive the clock.
func (c Config) Validate() error {
	switch {
	case c.InstructionsPerSecond <= 0:
		return fmt.Errorf("instructions per second %d: %w", c.InstructionsPerSecond, errNonPositiveRate)
	case c.TimerHz <= 0:
		return fmt.Errorf("timer rate %d: %w", c.TimerHz, errNonPositiveRate)
	case c.FrameRate <= 0:
		return fmt.Errorf("frame rate %d: %w", c.FrameRate, errNonPositiveRate)
	}
	return nil
}
