package cpu

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch_UnknownOpcodes(t *testing.T) {
	unknownOpcodes := []uint16{
		0x0000, // SYS 0x000
		0x0123, // SYS call into machine code
		0x00E1,
		0x00FF, // SUPER-CHIP high-res is not supported
		0x8008,
		0x800F,
		0xE000,
		0xE19F,
		0xF000,
		0xF075,
		0xFFFF,
	}

	for _, op := range unknownOpcodes {
		t.Run(fmt.Sprintf("0x%04X", op), func(t *testing.T) {
			c := newTestCPU(t, op)
			err := c.Step()

			var unknownErr *UnknownOpcodeError
			require.True(t, errors.As(err, &unknownErr), "0x%04X should be unknown", op)
			assert.Equal(t, op, unknownErr.Opcode)
			assert.Equal(t, uint16(0x200), unknownErr.PC)
		})
	}
}

func TestDispatch_KnownOpcodes(t *testing.T) {
	knownOpcodes := []uint16{
		0x00E0, 0x1200, 0x3000, 0x4000, 0x5010, 0x6000, 0x7000,
		0x8010, 0x8011, 0x8012, 0x8013, 0x8014, 0x8015, 0x8016, 0x8017, 0x801E,
		0x9010, 0xA000, 0xB200, 0xC0FF, 0xD001, 0xE09E, 0xE0A1,
		0xF007, 0xF015, 0xF018, 0xF01E, 0xF029, 0xF033, 0xF055, 0xF065,
	}

	for _, op := range knownOpcodes {
		c := newTestCPU(t, op)
		assert.NoError(t, c.Step(), "0x%04X should be handled", op)
	}
}

func TestStep_HaltsAfterFatalError(t *testing.T) {
	c := newTestCPU(t, 0xFFFF, 0x6001)

	first := c.Step()
	require.Error(t, first)

	second := c.Step()
	assert.Same(t, first, second)
	assert.Equal(t, uint8(0), c.v[0], "no further instruction executes")
	assert.Equal(t, first, c.Fault())
}
