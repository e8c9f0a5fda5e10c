package cpu

import "github.com/valerio/go-chip8/chip8/bit"

// 6xnn - LD Vx, byte
func opLoadImm(c *CPU, in Instruction) error {
	c.v[in.X] = in.NN
	return nil
}

// 7xnn - ADD Vx, byte
// Wraps around, VF is left alone.
func opAddImm(c *CPU, in Instruction) error {
	c.v[in.X] += in.NN
	return nil
}

// 8xy0 - LD Vx, Vy
func opMove(c *CPU, in Instruction) error {
	c.v[in.X] = c.v[in.Y]
	return nil
}

// 8xy1 - OR Vx, Vy
func opOr(c *CPU, in Instruction) error {
	c.v[in.X] |= c.v[in.Y]
	return nil
}

// 8xy2 - AND Vx, Vy
func opAnd(c *CPU, in Instruction) error {
	c.v[in.X] &= c.v[in.Y]
	return nil
}

// 8xy3 - XOR Vx, Vy
func opXor(c *CPU, in Instruction) error {
	c.v[in.X] ^= c.v[in.Y]
	return nil
}

// The flag producing ops below write the result before VF, so that with
// x == F the flag is what remains in the register.

// 8xy4 - ADD Vx, Vy
func opAdd(c *CPU, in Instruction) error {
	result, carry := bit.CheckedAdd(c.v[in.X], c.v[in.Y])
	c.v[in.X] = result
	c.setFlag(carry)
	return nil
}

// 8xy5 - SUB Vx, Vy
// VF is 1 when there is no borrow.
func opSub(c *CPU, in Instruction) error {
	result, borrow := bit.CheckedSub(c.v[in.X], c.v[in.Y])
	c.v[in.X] = result
	c.setFlag(!borrow)
	return nil
}

// 8xy6 - SHR Vx
func opShiftRight(c *CPU, in Instruction) error {
	value := c.v[in.X]
	c.v[in.X] = value >> 1
	c.v[FlagRegister] = bit.GetBitValue(0, value)
	return nil
}

// 8xy7 - SUBN Vx, Vy
func opSubReverse(c *CPU, in Instruction) error {
	result, borrow := bit.CheckedSub(c.v[in.Y], c.v[in.X])
	c.v[in.X] = result
	c.setFlag(!borrow)
	return nil
}

// 8xyE - SHL Vx
func opShiftLeft(c *CPU, in Instruction) error {
	value := c.v[in.X]
	c.v[in.X] = value << 1
	c.v[FlagRegister] = bit.GetBitValue(7, value)
	return nil
}

// Cxnn - RND Vx, byte
func opRandom(c *CPU, in Instruction) error {
	c.v[in.X] = c.random() & in.NN
	return nil
}
