package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCPU_skipKey(t *testing.T) {
	testCases := []struct {
		desc    string
		opcode  uint16
		pressed bool
		skip    bool
	}{
		{desc: "SKP pressed", opcode: 0xE19E, pressed: true, skip: true},
		{desc: "SKP released", opcode: 0xE19E, pressed: false, skip: false},
		{desc: "SKNP pressed", opcode: 0xE1A1, pressed: true, skip: false},
		{desc: "SKNP released", opcode: 0xE1A1, pressed: false, skip: true},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			c := New()
			c.v[1] = 0xB
			c.SetKey(0xB, tC.pressed)
			exec(t, c, tC.opcode)

			want := uint16(0x202)
			if tC.skip {
				want = 0x204
			}
			assert.Equal(t, want, c.pc)
		})
	}
}

func TestCPU_skipKeyMasksRegister(t *testing.T) {
	c := New()
	c.v[1] = 0x1B
	c.SetKey(0xB, true)
	exec(t, c, 0xE19E)
	assert.Equal(t, uint16(0x204), c.pc)
}

func TestCPU_waitKey(t *testing.T) {
	// 0x200: LD V5, K
	// 0x202: JP 0x202
	c := newTestCPU(t, 0xF50A, 0x1202)

	for i := 0; i < 10; i++ {
		steps(t, c, 1)
		assert.Equal(t, uint16(0x200), c.pc, "PC does not advance while waiting")
		assert.True(t, c.Waiting())
	}

	c.SetKey(0x9, true)
	c.SetKey(0x4, true)
	steps(t, c, 1)
	assert.Equal(t, uint8(0x4), c.v[5], "lowest key wins")
	assert.Equal(t, uint16(0x202), c.pc)
	assert.False(t, c.Waiting())

	steps(t, c, 1)
	assert.Equal(t, uint16(0x202), c.pc, "execution continues past the wait")
}

func TestCPU_waitKeyHeldOnEntry(t *testing.T) {
	c := newTestCPU(t, 0xF30A)
	c.SetKey(0xE, true)

	steps(t, c, 1)
	assert.Equal(t, uint8(0xE), c.v[3])
	assert.Equal(t, uint16(0x202), c.pc)
	assert.False(t, c.Waiting())
}

func TestCPU_waitKeyIgnoresRelease(t *testing.T) {
	c := newTestCPU(t, 0xF30A)

	steps(t, c, 1)
	assert.True(t, c.Waiting())

	// a release is not a key-down
	c.SetKey(0x2, false)
	steps(t, c, 1)
	assert.True(t, c.Waiting())
	assert.Equal(t, uint16(0x200), c.pc)
}

func TestCPU_waitKeyShortPress(t *testing.T) {
	c := newTestCPU(t, 0xF30A)
	steps(t, c, 1)

	// pressed and released between two steps
	c.SetKey(0x7, true)
	c.SetKey(0x7, false)
	steps(t, c, 1)

	assert.Equal(t, uint8(0x7), c.v[3])
	assert.False(t, c.Waiting())
	assert.Equal(t, uint16(0x202), c.pc)
}

func TestCPU_waitKeyPrefersHeldKey(t *testing.T) {
	c := newTestCPU(t, 0xF30A)
	steps(t, c, 1)

	// 9 stays down, 4 is tapped before the next step
	c.SetKey(0x9, true)
	c.SetKey(0x4, true)
	c.SetKey(0x4, false)
	steps(t, c, 1)

	assert.Equal(t, uint8(0x9), c.v[3])
	assert.False(t, c.Waiting())
}

func TestCPU_waitKeyDoesNotBlockTimers(t *testing.T) {
	c := newTestCPU(t, 0xF30A)
	c.delayTimer = 2
	steps(t, c, 1)

	c.TickTimers()
	steps(t, c, 1)
	assert.Equal(t, uint8(1), c.DelayTimer())
	assert.True(t, c.Waiting())
}
