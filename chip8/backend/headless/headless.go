package headless

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

// Backend implements the Backend interface for automated testing and batch processing
type Backend struct {
	config         backend.BackendConfig
	frameCount     int
	maxFrames      int
	snapshotConfig SnapshotConfig
	lastFrame      video.Frame
	saved          []string
}

// SnapshotConfig holds configuration for frame snapshots
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // Save snapshot every N frames
	Directory string // Directory to save snapshots
	ROMName   string // ROM name for snapshot filenames
	Scale     int    // PNG pixel scale
}

func New(maxFrames int, snapshotConfig SnapshotConfig) *Backend {
	if snapshotConfig.Scale <= 0 {
		snapshotConfig.Scale = debug.DefaultSnapshotScale
	}
	return &Backend{
		maxFrames:      maxFrames,
		snapshotConfig: snapshotConfig,
	}
}

func (h *Backend) Init(config backend.BackendConfig) error {
	h.config = config

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.LogLevel,
	})
	slog.SetDefault(slog.New(handler))

	if config.TestPattern {
		slog.Info("Headless test pattern mode, rendering one frame and exiting")
		return nil
	}

	slog.Info("Running headless mode",
		"frames", h.maxFrames,
		"snapshot_interval", h.snapshotConfig.Interval,
		"snapshot_dir", h.snapshotConfig.Directory)

	return nil
}

// Update processes a frame and handles snapshots
func (h *Backend) Update(frame *video.Frame) ([]backend.InputEvent, error) {
	quit := []backend.InputEvent{{Action: action.EmulatorQuit, Type: event.Press}}

	h.frameCount++
	h.lastFrame = *frame

	if h.config.TestPattern {
		if h.snapshotConfig.Enabled {
			h.saveSnapshot(frame)
		}
		return quit, nil
	}

	if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval == 0 {
		h.saveSnapshot(frame)
	}

	if h.frameCount%60 == 0 {
		slog.Debug("Frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}

	if h.maxFrames > 0 && h.frameCount >= h.maxFrames {
		if h.snapshotConfig.Enabled {
			// Save final snapshot if we haven't just saved one
			if h.frameCount%h.snapshotConfig.Interval != 0 {
				h.saveSnapshot(frame)
			}
			h.saveText(frame)
			slog.Info("Headless execution completed", "frames", h.frameCount, "snapshots_saved_to", h.snapshotConfig.Directory)
		} else {
			slog.Info("Headless execution completed", "frames", h.frameCount)
		}

		return quit, nil
	}

	return nil, nil
}

func (h *Backend) Cleanup() error {
	return nil
}

// FrameCount returns how many frames have been presented.
func (h *Backend) FrameCount() int {
	return h.frameCount
}

// LastFrame returns a copy of the most recently presented frame.
func (h *Backend) LastFrame() video.Frame {
	return h.lastFrame
}

// SavedFiles lists every snapshot written so far, in order.
func (h *Backend) SavedFiles() []string {
	return h.saved
}

// CreateSnapshotConfig creates a snapshot configuration from CLI parameters
func CreateSnapshotConfig(interval int, directory, romPath string) (SnapshotConfig, error) {
	config := SnapshotConfig{
		Enabled:  interval > 0,
		Interval: interval,
		Scale:    debug.DefaultSnapshotScale,
	}

	if !config.Enabled {
		return config, nil
	}

	if directory == "" {
		tempDir, err := os.MkdirTemp("", "chip8-snapshots-*")
		if err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = tempDir
	} else {
		if err := os.MkdirAll(directory, 0755); err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = directory
	}

	config.ROMName = romBaseName(romPath)

	return config, nil
}

func romBaseName(romPath string) string {
	if romPath == "" {
		return "chip8"
	}
	name := filepath.Base(romPath)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// saveSnapshot saves a PNG snapshot for the current frame
func (h *Backend) saveSnapshot(frame *video.Frame) {
	pngBaseName := fmt.Sprintf("%s_frame_%d", h.snapshotConfig.ROMName, h.frameCount)
	caption := fmt.Sprintf("%s frame %d", h.snapshotConfig.ROMName, h.frameCount)

	path, err := debug.SaveFramePNG(frame, pngBaseName, h.snapshotConfig.Directory, h.snapshotConfig.Scale, caption)
	if err != nil {
		slog.Error("Failed to save PNG snapshot", "frame", h.frameCount, "error", err)
		return
	}
	h.saved = append(h.saved, path)
}

// saveText writes the final frame as text so runs can be diffed.
func (h *Backend) saveText(frame *video.Frame) {
	baseName := fmt.Sprintf("%s_frame_%d", h.snapshotConfig.ROMName, h.frameCount)

	path, err := debug.SaveFrameText(frame, baseName, h.snapshotConfig.Directory)
	if err != nil {
		slog.Error("Failed to save text snapshot", "frame", h.frameCount, "error", err)
		return
	}
	h.saved = append(h.saved, path)
}
