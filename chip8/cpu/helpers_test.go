package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/bit"
	"github.com/valerio/go-chip8/chip8/memory"
)

// newTestCPU returns a CPU with the given opcodes loaded at the program start.
func newTestCPU(t *testing.T, opcodes ...uint16) *CPU {
	t.Helper()

	program := make([]byte, 0, len(opcodes)*2)
	for _, op := range opcodes {
		program = append(program, bit.High(op), bit.Low(op))
	}

	c := New(WithSeed(1))
	require.NoError(t, c.LoadProgram(program))
	return c
}

// exec runs a single opcode at the program start.
func exec(t *testing.T, c *CPU, opcode uint16) {
	t.Helper()

	c.pc = memory.ProgramStart
	c.mem.Write(memory.ProgramStart, bit.High(opcode))
	c.mem.Write(memory.ProgramStart+1, bit.Low(opcode))
	require.NoError(t, c.Step())
}

func steps(t *testing.T, c *CPU, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		require.NoError(t, c.Step())
	}
}
