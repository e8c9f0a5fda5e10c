package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli"
	"github.com/valerio/go-chip8/chip8"
	"github.com/valerio/go-chip8/chip8/audio"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/headless"
	"github.com/valerio/go-chip8/chip8/backend/sdl2"
	"github.com/valerio/go-chip8/chip8/backend/terminal"
	"github.com/valerio/go-chip8/chip8/disasm"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/timing"
)

func main() {
	app := cli.NewApp()
	app.Name = "chip8"
	app.Description = "A CHIP-8 interpreter"
	app.Usage = "chip8 [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = runFlags()
	app.Action = runEmulator
	app.Commands = []cli.Command{
		{
			Name:   "run",
			Usage:  "Run a ROM (default command)",
			Flags:  runFlags(),
			Action: runEmulator,
		},
		{
			Name:      "disasm",
			Usage:     "Print the disassembly of a ROM",
			ArgsUsage: "<ROM file>",
			Action:    disassembleROM,
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		// backends may have redirected the default logger
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func runFlags() []cli.Flag {
	defaults := chip8.DefaultConfig()

	return []cli.Flag{
		cli.StringFlag{
			Name:   "rom",
			Usage:  "Path to the ROM file",
			EnvVar: "CHIP8_ROM",
		},
		cli.BoolFlag{
			Name:   "headless",
			Usage:  "Run the emulator without a graphical interface",
			EnvVar: "CHIP8_HEADLESS",
		},
		cli.IntFlag{
			Name:   "frames",
			Usage:  "Number of frames to run in headless mode (required for headless)",
			EnvVar: "CHIP8_FRAMES",
		},
		cli.IntFlag{
			Name:   "ips",
			Usage:  "Instructions executed per second",
			Value:  defaults.InstructionsPerSecond,
			EnvVar: "CHIP8_IPS",
		},
		cli.IntFlag{
			Name:   "timer-hz",
			Usage:  "Delay and sound timer rate",
			Value:  defaults.TimerHz,
			EnvVar: "CHIP8_TIMER_HZ",
		},
		cli.IntFlag{
			Name:   "fps",
			Usage:  "Frames presented per second",
			Value:  defaults.FrameRate,
			EnvVar: "CHIP8_FPS",
		},
		cli.Uint64Flag{
			Name:   "seed",
			Usage:  "Random seed for RND (0 = random)",
			EnvVar: "CHIP8_SEED",
		},
		cli.IntFlag{
			Name:   "snapshot-interval",
			Usage:  "Save frame snapshots every N frames in headless mode (0 = disabled)",
			EnvVar: "CHIP8_SNAPSHOT_INTERVAL",
		},
		cli.StringFlag{
			Name:   "snapshot-dir",
			Usage:  "Directory to save frame snapshots (default: temp directory)",
			EnvVar: "CHIP8_SNAPSHOT_DIR",
		},
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "Minimum log level (debug, info, warn, error)",
			Value:  "info",
			EnvVar: "CHIP8_LOG_LEVEL",
		},
		cli.BoolFlag{
			Name:   "debug",
			Usage:  "Show the register and disassembly panes",
			EnvVar: "CHIP8_DEBUG",
		},
		cli.StringFlag{
			Name:   "backend",
			Usage:  "Display backend (terminal, sdl2)",
			Value:  "terminal",
			EnvVar: "CHIP8_BACKEND",
		},
		cli.IntFlag{
			Name:   "scale",
			Usage:  "Window pixel scale for the sdl2 backend",
			Value:  10,
			EnvVar: "CHIP8_SCALE",
		},
		cli.BoolFlag{
			Name:  "test-pattern",
			Usage: "Display a test pattern instead of emulation (for debugging display)",
		},
		cli.StringFlag{
			Name:   "limiter",
			Usage:  "Frame limiter (ticker, adaptive)",
			Value:  "adaptive",
			EnvVar: "CHIP8_LIMITER",
		},
		cli.BoolFlag{
			Name:   "audio",
			Usage:  "Play the buzzer (needs a build with the audio tag)",
			EnvVar: "CHIP8_AUDIO",
		},
	}
}

func runEmulator(c *cli.Context) error {
	logLevel, err := parseLogLevel(c.String("log-level"))
	if err != nil {
		return err
	}

	config := chip8.Config{
		InstructionsPerSecond: c.Int("ips"),
		TimerHz:               c.Int("timer-hz"),
		FrameRate:             c.Int("fps"),
		Seed:                  c.Uint64("seed"),
	}

	backendConfig := backend.BackendConfig{
		Title:       "CHIP-8",
		Scale:       c.Int("scale"),
		LogLevel:    logLevel,
		ShowDebug:   c.Bool("debug"),
		TestPattern: c.Bool("test-pattern"),
	}

	romPath := ""
	var emu chip8.Emulator

	// Test pattern mode - no ROM needed
	if backendConfig.TestPattern {
		slog.Info("Running in test pattern mode")
		emu = chip8.NewTestPatternEmulator()
	} else {
		romPath = c.String("rom")
		if romPath == "" {
			if c.NArg() > 0 {
				romPath = c.Args().Get(0)
			} else {
				cli.ShowAppHelp(c)
				return errors.New("no ROM path provided")
			}
		}

		core, err := chip8.NewWithFile(romPath, config)
		if err != nil {
			return err
		}
		backendConfig.Title = "CHIP-8 - " + romPath

		if c.Bool("audio") {
			player, err := audio.NewPlayer(core.Tone())
			if err != nil {
				slog.Warn("Audio disabled", "error", err)
			} else {
				defer player.Close()
			}
		}
		emu = core
	}

	var b backend.Backend
	var limiter timing.Limiter

	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 && !backendConfig.TestPattern {
			return errors.New("headless mode requires --frames option with a positive value")
		}

		snapshotConfig, err := headless.CreateSnapshotConfig(c.Int("snapshot-interval"), c.String("snapshot-dir"), romPath)
		if err != nil {
			return err
		}
		b = headless.New(frames, snapshotConfig)
		limiter = timing.NewNoOpLimiter()
	} else {
		b, err = newBackend(c.String("backend"))
		if err != nil {
			return err
		}
		limiter, err = newLimiter(c.String("limiter"), config.FrameRate)
		if err != nil {
			return err
		}
	}

	if ticker, ok := limiter.(*timing.TickerLimiter); ok {
		defer ticker.Stop()
	}

	return chip8.Run(emu, b, backendConfig, limiter)
}

func newBackend(name string) (backend.Backend, error) {
	switch strings.ToLower(name) {
	case "terminal", "":
		return terminal.New(), nil
	case "sdl2", "sdl":
		return sdl2.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (terminal, sdl2)", name)
	}
}

func newLimiter(name string, fps int) (timing.Limiter, error) {
	switch strings.ToLower(name) {
	case "adaptive", "":
		return timing.NewAdaptiveLimiter(fps), nil
	case "ticker":
		return timing.NewTickerLimiter(fps), nil
	case "none":
		return timing.NewNoOpLimiter(), nil
	default:
		return nil, fmt.Errorf("unknown limiter %q (ticker, adaptive, none)", name)
	}
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func disassembleROM(c *cli.Context) error {
	if c.NArg() == 0 {
		cli.ShowCommandHelp(c, "disasm")
		return errors.New("no ROM path provided")
	}

	path := c.Args().First()
	data, err := os.ReadFile(path)
	if err != nil {
		return &chip8.LoadError{Path: path, Err: err}
	}

	return writeDisassembly(os.Stdout, data)
}

func writeDisassembly(w io.Writer, program []byte) error {
	for _, line := range disasm.DisassembleProgram(program, memory.ProgramStart) {
		if _, err := fmt.Fprintln(w, disasm.FormatDisassemblyLine(line, false)); err != nil {
			return err
		}
	}
	return nil
}
