package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-chip8/chip8/memory"
)

func TestCPU_loadIndex(t *testing.T) {
	c := New()
	exec(t, c, 0xA123)
	assert.Equal(t, uint16(0x123), c.i)
}

func TestCPU_addIndex(t *testing.T) {
	t.Run("adds", func(t *testing.T) {
		c := New()
		c.i = 0x0100
		c.v[2] = 0x20
		exec(t, c, 0xF21E)
		assert.Equal(t, uint16(0x0120), c.i)
	})

	t.Run("wraps at 16 bits without touching VF", func(t *testing.T) {
		c := New()
		c.i = 0xFFFF
		c.v[2] = 0x02
		c.v[FlagRegister] = 0x5A
		exec(t, c, 0xF21E)
		assert.Equal(t, uint16(0x0001), c.i)
		assert.Equal(t, uint8(0x5A), c.v[FlagRegister])
	})

	t.Run("past the address space without overflow flag", func(t *testing.T) {
		c := New()
		c.i = 0x0FFF
		c.v[2] = 0x01
		exec(t, c, 0xF21E)
		assert.Equal(t, uint16(0x1000), c.i)
		assert.Equal(t, uint8(0), c.v[FlagRegister])
	})
}

func TestCPU_loadGlyph(t *testing.T) {
	c := New()
	c.v[4] = 10
	exec(t, c, 0xF429)
	assert.Equal(t, uint16(memory.FontStart+50), c.i)

	glyphA := c.mem.Slice(c.i, memory.GlyphHeight)
	assert.Equal(t, []byte{0xF0, 0x90, 0xF0, 0x90, 0x90}, glyphA)
}

func TestCPU_storeBCD(t *testing.T) {
	testCases := []struct {
		value uint8
		want  []byte
	}{
		{value: 157, want: []byte{1, 5, 7}},
		{value: 0, want: []byte{0, 0, 0}},
		{value: 9, want: []byte{0, 0, 9}},
		{value: 40, want: []byte{0, 4, 0}},
		{value: 255, want: []byte{2, 5, 5}},
	}
	for _, tC := range testCases {
		c := New()
		c.i = 0x300
		c.v[7] = tC.value
		exec(t, c, 0xF733)
		assert.Equal(t, tC.want, c.mem.Slice(0x300, 3), "BCD of %d", tC.value)
		assert.Equal(t, uint16(0x300), c.i)
	}
}

func TestCPU_storeLoadRegistersRoundTrip(t *testing.T) {
	c := New()
	for r := range c.v {
		c.v[r] = uint8(r*17 + 3)
	}
	original := c.v
	c.i = 0x400

	exec(t, c, 0xFF55)
	assert.Equal(t, uint16(0x400), c.i, "I is not incremented")
	assert.Equal(t, original[:], c.mem.Slice(0x400, RegisterCount))

	c.v = [RegisterCount]uint8{}
	exec(t, c, 0xFF65)
	assert.Equal(t, original, c.v)
}

func TestCPU_storeRegistersPartial(t *testing.T) {
	c := New()
	c.v[0], c.v[1], c.v[2], c.v[3] = 1, 2, 3, 4
	c.i = 0x500

	exec(t, c, 0xF255)
	assert.Equal(t, []byte{1, 2, 3, 0}, c.mem.Slice(0x500, 4))

	c.mem.Write(0x500, 9)
	c.mem.Write(0x503, 9)
	exec(t, c, 0xF065)
	assert.Equal(t, uint8(9), c.v[0])
	assert.Equal(t, uint8(2), c.v[1], "only V0 is loaded")
	assert.Equal(t, uint8(4), c.v[3])
}

func TestCPU_storeRegistersWrapsMemory(t *testing.T) {
	c := New()
	c.v[0], c.v[1] = 0xAA, 0xBB
	c.i = 0x0FFF
	exec(t, c, 0xF155)

	assert.Equal(t, byte(0xAA), c.mem.Read(0x0FFF))
	assert.Equal(t, byte(0xBB), c.mem.Read(0x0000))
}

func TestCPU_timers(t *testing.T) {
	c := New()
	c.v[1] = 3
	exec(t, c, 0xF115)
	exec(t, c, 0xF118)
	assert.Equal(t, uint8(3), c.DelayTimer())
	assert.Equal(t, uint8(3), c.SoundTimer())

	c.TickTimers()
	exec(t, c, 0xF207)
	assert.Equal(t, uint8(2), c.v[2])

	for i := 0; i < 10; i++ {
		c.TickTimers()
	}
	assert.Equal(t, uint8(0), c.DelayTimer(), "floored at zero")
	assert.Equal(t, uint8(0), c.SoundTimer())
}

func TestCPU_timersIndependentOfSteps(t *testing.T) {
	// LD V0, 5; LD DT, V0; then spin
	c := newTestCPU(t, 0x6005, 0xF015, 0x1204)
	steps(t, c, 2)

	steps(t, c, 100)
	assert.Equal(t, uint8(5), c.DelayTimer(), "stepping never decrements timers")

	c.TickTimers()
	assert.Equal(t, uint8(4), c.DelayTimer())
}
