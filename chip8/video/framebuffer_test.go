package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrawSprite_FullRowThenSelfXOR(t *testing.T) {
	fb := NewFrameBuffer()

	collision := fb.DrawSprite(0, 0, []byte{0xFF})
	assert.False(t, collision)
	for x := uint(0); x < 8; x++ {
		assert.True(t, fb.pixels[0][x], "pixel %d should be on", x)
	}
	assert.False(t, fb.pixels[0][8])

	collision = fb.DrawSprite(0, 0, []byte{0xFF})
	assert.True(t, collision)
	for x := uint(0); x < 8; x++ {
		assert.False(t, fb.pixels[0][x], "pixel %d should be off", x)
	}
}

func TestDrawSprite_PartialOverlap(t *testing.T) {
	fb := NewFrameBuffer()

	fb.DrawSprite(0, 0, []byte{0xF0})
	collision := fb.DrawSprite(0, 0, []byte{0x0F})

	assert.False(t, collision, "disjoint pixels do not collide")
	frame := fb.Snapshot()
	assert.Equal(t, 8, frame.Count())
}

func TestDrawSprite_WrapsHorizontally(t *testing.T) {
	fb := NewFrameBuffer()
	fb.DrawSprite(60, 0, []byte{0xFF})

	for x := uint(60); x < 64; x++ {
		assert.True(t, fb.pixels[0][x])
	}
	for x := uint(0); x < 4; x++ {
		assert.True(t, fb.pixels[0][x])
	}
	assert.False(t, fb.pixels[0][4])
}

func TestDrawSprite_WrapsVertically(t *testing.T) {
	fb := NewFrameBuffer()
	fb.DrawSprite(0, 31, []byte{0x80, 0x80})

	assert.True(t, fb.pixels[31][0])
	assert.True(t, fb.pixels[0][0])
}

func TestDrawSprite_OriginWraps(t *testing.T) {
	fb := NewFrameBuffer()
	fb.DrawSprite(64+3, 32+2, []byte{0x80})

	assert.True(t, fb.pixels[2][3])
}

func TestClear(t *testing.T) {
	fb := NewFrameBuffer()
	fb.DrawSprite(10, 10, []byte{0xFF, 0xFF})
	fb.Clear()

	frame := fb.Snapshot()
	assert.Equal(t, 0, frame.Count())
}

func TestSnapshot_IsCopy(t *testing.T) {
	fb := NewFrameBuffer()
	frame := fb.Snapshot()
	fb.DrawSprite(0, 0, []byte{0x80})

	assert.False(t, frame.Pixel(0, 0))
	assert.True(t, fb.pixels[0][0])
}

func TestFrame_PixelWraps(t *testing.T) {
	var f Frame
	f[0][0] = true

	assert.True(t, f.Pixel(64, 32))
	assert.True(t, f.Pixel(-64, -32))
}
