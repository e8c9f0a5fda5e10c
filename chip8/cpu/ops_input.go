package cpu

import "github.com/valerio/go-chip8/chip8/memory"

// Ex9E - SKP Vx
func opSkipPressed(c *CPU, in Instruction) error {
	c.skipIf(c.keypad.IsPressed(memory.Key(c.v[in.X])))
	return nil
}

// ExA1 - SKNP Vx
func opSkipNotPressed(c *CPU, in Instruction) error {
	c.skipIf(!c.keypad.IsPressed(memory.Key(c.v[in.X])))
	return nil
}

// Fx0A - LD Vx, K
//
// The only instruction spanning several steps. With no key held it enters
// the waiting state and rewinds PC, so the next step executes it again.
// While waiting, it completes on the first key-down seen since the wait
// began, the lowest key winning a tie.
func opWaitKey(c *CPU, in Instruction) error {
	if !c.waitingForKey {
		if key, ok := c.keypad.LowestPressed(); ok {
			c.v[in.X] = uint8(key)
			return nil
		}

		c.waitingForKey = true
		c.keypad.ClearLatch()
		c.pc -= 2
		return nil
	}

	if key, ok := c.keypad.TakeLatched(); ok {
		c.v[in.X] = uint8(key)
		c.waitingForKey = false
		return nil
	}

	c.pc -= 2
	return nil
}
