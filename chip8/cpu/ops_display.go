package cpu

// 00E0 - CLS
func opClear(c *CPU, _ Instruction) error {
	c.display.Clear()
	return nil
}

// Dxyn - DRW Vx, Vy, nibble
// Sprite rows come from memory at I, VF reports whether any pixel was erased.
func opDraw(c *CPU, in Instruction) error {
	sprite := c.mem.Slice(c.i, int(in.N))
	collision := c.display.DrawSprite(c.v[in.X], c.v[in.Y], sprite)
	c.setFlag(collision)
	return nil
}
