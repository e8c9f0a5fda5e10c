package video

const (
	FramebufferWidth  = 64
	FramebufferHeight = 32
)

// SpriteWidth is the fixed width in pixels of every sprite row.
const SpriteWidth = 8

// Frame is a read-only copy of the screen, indexed [y][x].
type Frame [FramebufferHeight][FramebufferWidth]bool

// Pixel returns the pixel at x, y. Coordinates wrap around the screen.
func (f *Frame) Pixel(x, y int) bool {
	return f[wrap(y, FramebufferHeight)][wrap(x, FramebufferWidth)]
}

// Count returns how many pixels are on.
func (f *Frame) Count() int {
	n := 0
	for y := range f {
		for x := range f[y] {
			if f[y][x] {
				n++
			}
		}
	}
	return n
}

// FrameBuffer is the 64x32 monochrome display. It can only be cleared or
// XOR-blitted into.
type FrameBuffer struct {
	pixels Frame
}

// NewFrameBuffer creates a blank frame buffer.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

// Clear turns every pixel off.
func (fb *FrameBuffer) Clear() {
	fb.pixels = Frame{}
}

// DrawSprite XORs rows onto the screen starting at (x, y). Each row is 8
// pixels wide, MSB leftmost. The origin wraps modulo the screen size and so
// does every pixel of the sprite. Returns true if any pixel went from on to off.
func (fb *FrameBuffer) DrawSprite(x, y uint8, rows []byte) bool {
	originX := int(x) % FramebufferWidth
	originY := int(y) % FramebufferHeight
	collision := false

	for row, line := range rows {
		py := (originY + row) % FramebufferHeight
		for col := 0; col < SpriteWidth; col++ {
			if line&(0x80>>col) == 0 {
				continue
			}

			px := (originX + col) % FramebufferWidth
			if fb.pixels[py][px] {
				collision = true
			}
			fb.pixels[py][px] = !fb.pixels[py][px]
		}
	}

	return collision
}

// Snapshot returns a copy of the current screen.
func (fb *FrameBuffer) Snapshot() Frame {
	return fb.pixels
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
