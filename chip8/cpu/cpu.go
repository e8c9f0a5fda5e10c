package cpu

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/video"
)

const (
	// RegisterCount is the number of V registers.
	RegisterCount = 16
	// FlagRegister is VF, written by opcodes that produce a carry, borrow or collision.
	FlagRegister = 0xF
	// StackDepth is the number of nested calls allowed.
	StackDepth = 16
)

// CPU holds the whole machine state: registers, timers, stack and the
// memory, keypad and display it executes against.
// It is not safe for concurrent use, callers serialize Step with reads of
// the frame and keypad.
type CPU struct {
	// registers
	v  [RegisterCount]uint8
	i  uint16
	pc uint16
	sp uint8

	stack [StackDepth]uint16

	delayTimer uint8
	soundTimer uint8

	// waitingForKey is set while Fx0A is stalled on input.
	waitingForKey bool

	// metadata
	currentOpcode uint16
	opcodePC      uint16
	cycles        uint64
	fault         error

	mem     *memory.RAM
	keypad  *memory.Keypad
	display *video.FrameBuffer
	random  func() uint8
	font    [memory.FontSize]byte // reinstalled by Reset
}

// Option configures a CPU at construction.
type Option func(*CPU)

// WithSeed makes Cxnn deterministic.
func WithSeed(seed uint64) Option {
	return func(c *CPU) {
		rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
		c.random = func() uint8 { return uint8(rng.Uint32()) }
	}
}

// WithRandom replaces the random byte source used by Cxnn.
func WithRandom(source func() uint8) Option {
	return func(c *CPU) {
		c.random = source
	}
}

// New returns a CPU with zeroed memory, the built-in font loaded and PC at
// the program start.
func New(opts ...Option) *CPU {
	c := &CPU{
		mem:     memory.New(),
		keypad:  memory.NewKeypad(),
		display: video.NewFrameBuffer(),
		pc:      memory.ProgramStart,
		random:  func() uint8 { return uint8(rand.Uint32()) },
		font:    memory.DefaultFont,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Reset brings the machine back to its power-on state. Memory is zeroed
// except for the font last installed, so the program has to be loaded again.
func (c *CPU) Reset() {
	c.v = [RegisterCount]uint8{}
	c.i = 0
	c.pc = memory.ProgramStart
	c.sp = 0
	c.stack = [StackDepth]uint16{}
	c.delayTimer = 0
	c.soundTimer = 0
	c.waitingForKey = false
	c.currentOpcode = 0
	c.opcodePC = 0
	c.cycles = 0
	c.fault = nil

	c.mem.Reset()
	c.mem.LoadFont(c.font)
	c.keypad.Reset()
	c.display.Clear()
}

// LoadProgram copies a ROM image at 0x200.
func (c *CPU) LoadProgram(program []byte) error {
	return c.mem.LoadProgram(program)
}

// LoadFont replaces the glyphs used by Fx29.
func (c *CPU) LoadFont(glyphs [memory.FontSize]byte) {
	c.font = glyphs
	c.mem.LoadFont(glyphs)
}

// SetKey updates a keypad key, keys outside 0-F are ignored.
func (c *CPU) SetKey(key uint8, pressed bool) {
	c.keypad.Set(memory.Key(key), pressed)
}

// Step fetches, decodes and executes a single instruction.
// A returned error is fatal: the CPU stays halted and keeps returning it.
func (c *CPU) Step() error {
	if c.fault != nil {
		return c.fault
	}

	c.opcodePC = c.pc & memory.AddressMask
	c.currentOpcode = c.mem.ReadWord(c.opcodePC)
	c.pc = c.opcodePC + 2

	instruction := Decode(c.currentOpcode)

	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		slog.Debug("exec",
			"pc", fmt.Sprintf("0x%03X", c.opcodePC),
			"opcode", fmt.Sprintf("0x%04X", c.currentOpcode))
	}

	if err := dispatch(c, instruction); err != nil {
		c.fault = err
		slog.Error("CPU halted", "error", err)
		return err
	}

	c.cycles++
	return nil
}

// TickTimers decrements both timers by one, stopping at zero. It is driven
// at its own fixed rate, independent of Step.
func (c *CPU) TickTimers() {
	if c.delayTimer > 0 {
		c.delayTimer--
	}
	if c.soundTimer > 0 {
		c.soundTimer--
	}
}

// Frame returns a copy of the display.
func (c *CPU) Frame() video.Frame {
	return c.display.Snapshot()
}

func (c *CPU) DelayTimer() uint8 { return c.delayTimer }
func (c *CPU) SoundTimer() uint8 { return c.soundTimer }

// Debug getters
func (c *CPU) PC() uint16                      { return c.pc }
func (c *CPU) I() uint16                       { return c.i }
func (c *CPU) SP() uint8                       { return c.sp }
func (c *CPU) V(index uint8) uint8             { return c.v[index&0x0F] }
func (c *CPU) Registers() [RegisterCount]uint8 { return c.v }
func (c *CPU) Cycles() uint64                  { return c.cycles }
func (c *CPU) CurrentOpcode() uint16           { return c.currentOpcode }
func (c *CPU) Waiting() bool                   { return c.waitingForKey }
func (c *CPU) Fault() error                    { return c.fault }
func (c *CPU) Memory() *memory.RAM             { return c.mem }
func (c *CPU) Keypad() *memory.Keypad          { return c.keypad }

// Stack returns the return addresses currently pushed, oldest first.
func (c *CPU) Stack() []uint16 {
	frames := make([]uint16, c.sp)
	copy(frames, c.stack[:c.sp])
	return frames
}

func (c *CPU) setFlag(condition bool) {
	if condition {
		c.v[FlagRegister] = 1
	} else {
		c.v[FlagRegister] = 0
	}
}

func (c *CPU) skipIf(condition bool) {
	if condition {
		c.pc += 2
	}
}
