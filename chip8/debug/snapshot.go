package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/valerio/go-chip8/chip8/video"
)

// DefaultSnapshotScale enlarges the 64x32 screen to something viewable.
const DefaultSnapshotScale = 8

var (
	pixelOn  = color.Gray{Y: 0xFF}
	pixelOff = color.Gray{Y: 0x00}

	captionHeight = basicfont.Face7x13.Metrics().Height.Ceil() + 4
)

// FrameToImage converts a frame to a 1:1 grayscale image.
func FrameToImage(frame *video.Frame) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, video.FramebufferWidth, video.FramebufferHeight))
	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			if frame[y][x] {
				img.SetGray(x, y, pixelOn)
			} else {
				img.SetGray(x, y, pixelOff)
			}
		}
	}
	return img
}

// RenderFrame scales a frame by an integer factor with nearest-neighbour
// sampling, so pixels stay square. A non-empty caption is drawn on a strip
// below the screen.
func RenderFrame(frame *video.Frame, scale int, caption string) *image.Gray {
	if scale < 1 {
		scale = 1
	}

	screen := image.Rect(0, 0, video.FramebufferWidth*scale, video.FramebufferHeight*scale)
	bounds := screen
	if caption != "" {
		bounds.Max.Y += captionHeight
	}

	dst := image.NewGray(bounds)
	draw.NearestNeighbor.Scale(dst, screen, FrameToImage(frame), image.Rect(0, 0, video.FramebufferWidth, video.FramebufferHeight), draw.Src, nil)

	if caption != "" {
		d := &font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(pixelOn),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(2, screen.Max.Y+basicfont.Face7x13.Ascent+2),
		}
		d.DrawString(caption)
	}

	return dst
}

// TakeSnapshot handles the snapshot action for backends. label, if set, is
// appended to the file name.
func TakeSnapshot(frame *video.Frame, label string) {
	if frame == nil {
		slog.Warn("No frame data available for snapshot")
		return
	}

	baseName := "chip8_snapshot"
	if label != "" {
		baseName = fmt.Sprintf("chip8_snapshot_%s", label)
	}

	if _, err := SaveFramePNGToDir(frame, baseName, "", DefaultSnapshotScale, ""); err != nil {
		slog.Error("Failed to save snapshot", "error", err)
	}
}

// SaveFramePNGToDir saves a frame as a scaled PNG with a timestamp in its name
// and returns the written path. An empty directory means the working directory.
func SaveFramePNGToDir(frame *video.Frame, baseName, directory string, scale int, caption string) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	return SaveFramePNG(frame, fmt.Sprintf("%s_%s", baseName, timestamp), directory, scale, caption)
}

// SaveFramePNG writes directory/baseName.png, replacing any existing file.
func SaveFramePNG(frame *video.Frame, baseName, directory string, scale int, caption string) (string, error) {
	img := RenderFrame(frame, scale, caption)

	outputDir, err := resolveDir(directory)
	if err != nil {
		return "", err
	}

	filePath := filepath.Join(outputDir, baseName+".png")
	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", filePath, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}

	slog.Info("Snapshot saved", "path", filePath, "size", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()), "format", "PNG")
	return filePath, nil
}

// FrameToText renders a frame as 32 lines of 64 characters, '#' for on and
// '.' for off.
func FrameToText(frame *video.Frame) string {
	var sb strings.Builder
	sb.Grow((video.FramebufferWidth + 1) * video.FramebufferHeight)
	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			if frame[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// SaveFrameText writes FrameToText output to directory/baseName.txt.
func SaveFrameText(frame *video.Frame, baseName, directory string) (string, error) {
	outputDir, err := resolveDir(directory)
	if err != nil {
		return "", err
	}

	filePath := filepath.Join(outputDir, baseName+".txt")
	if err := os.WriteFile(filePath, []byte(FrameToText(frame)), 0644); err != nil {
		return "", fmt.Errorf("failed to write text snapshot: %w", err)
	}
	return filePath, nil
}

func resolveDir(directory string) (string, error) {
	if directory != "" {
		return directory, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return cwd, nil
}
