package cpu

import "github.com/valerio/go-chip8/chip8/memory"

// Annn - LD I, addr
func opLoadIndex(c *CPU, in Instruction) error {
	c.i = in.NNN
	return nil
}

// Fx07 - LD Vx, DT
func opLoadDelay(c *CPU, in Instruction) error {
	c.v[in.X] = c.delayTimer
	return nil
}

// Fx15 - LD DT, Vx
func opSetDelay(c *CPU, in Instruction) error {
	c.delayTimer = c.v[in.X]
	return nil
}

// Fx18 - LD ST, Vx
func opSetSound(c *CPU, in Instruction) error {
	c.soundTimer = c.v[in.X]
	return nil
}

// Fx1E - ADD I, Vx
// 16 bit wrap, VF is not touched.
func opAddIndex(c *CPU, in Instruction) error {
	c.i += uint16(c.v[in.X])
	return nil
}

// Fx29 - LD F, Vx
func opLoadGlyph(c *CPU, in Instruction) error {
	c.i = memory.GlyphAddress(c.v[in.X])
	return nil
}

// Fx33 - LD B, Vx
func opStoreBCD(c *CPU, in Instruction) error {
	value := c.v[in.X]
	c.mem.Write(c.i, value/100)
	c.mem.Write(c.i+1, (value/10)%10)
	c.mem.Write(c.i+2, value%10)
	return nil
}

// Fx55 - LD [I], Vx
// I is left unchanged.
func opStoreRegisters(c *CPU, in Instruction) error {
	for r := uint16(0); r <= uint16(in.X); r++ {
		c.mem.Write(c.i+r, c.v[r])
	}
	return nil
}

// Fx65 - LD Vx, [I]
func opLoadRegisters(c *CPU, in Instruction) error {
	for r := uint16(0); r <= uint16(in.X); r++ {
		c.v[r] = c.mem.Read(c.i + r)
	}
	return nil
}
