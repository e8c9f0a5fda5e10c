package cpu

// 00EE - RET
func opReturn(c *CPU, _ Instruction) error {
	if c.sp == 0 {
		return &StackUnderflowError{PC: c.opcodePC}
	}

	c.sp--
	c.pc = c.stack[c.sp]
	return nil
}

// 1nnn - JP addr
func opJump(c *CPU, in Instruction) error {
	c.pc = in.NNN
	return nil
}

// 2nnn - CALL addr
func opCall(c *CPU, in Instruction) error {
	if int(c.sp) >= StackDepth {
		return &StackOverflowError{PC: c.opcodePC, Target: in.NNN}
	}

	c.stack[c.sp] = c.pc
	c.sp++
	c.pc = in.NNN
	return nil
}

// 3xnn - SE Vx, byte
func opSkipEqualImm(c *CPU, in Instruction) error {
	c.skipIf(c.v[in.X] == in.NN)
	return nil
}

// 4xnn - SNE Vx, byte
func opSkipNotEqualImm(c *CPU, in Instruction) error {
	c.skipIf(c.v[in.X] != in.NN)
	return nil
}

// 5xy0 - SE Vx, Vy
func opSkipEqualReg(c *CPU, in Instruction) error {
	c.skipIf(c.v[in.X] == c.v[in.Y])
	return nil
}

// 9xy0 - SNE Vx, Vy
func opSkipNotEqualReg(c *CPU, in Instruction) error {
	c.skipIf(c.v[in.X] != c.v[in.Y])
	return nil
}

// Bnnn - JP V0, addr
func opJumpOffset(c *CPU, in Instruction) error {
	c.pc = in.NNN + uint16(c.v[0])
	return nil
}
