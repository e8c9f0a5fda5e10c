package memory

// Key is one of the 16 hex keys, 0x0 to 0xF.
type Key uint8

// KeyCount is the number of keys on the pad.
const KeyCount = 16

// Keypad tracks which keys are held, and latches key-down transitions so
// that a press shorter than one step is still observed by a key wait.
type Keypad struct {
	pressed [KeyCount]bool
	latched uint16
}

// NewKeypad creates a keypad with no keys held.
func NewKeypad() *Keypad {
	return &Keypad{}
}

// Set updates the state of a key. Keys outside 0-F are ignored.
func (k *Keypad) Set(key Key, pressed bool) {
	if key >= KeyCount {
		return
	}

	if pressed && !k.pressed[key] {
		k.latched |= 1 << key
	}
	k.pressed[key] = pressed
}

// IsPressed reports whether the low nibble of key is currently held.
func (k *Keypad) IsPressed(key Key) bool {
	return k.pressed[key&0x0F]
}

// LowestPressed returns the lowest held key.
func (k *Keypad) LowestPressed() (Key, bool) {
	for i, p := range k.pressed {
		if p {
			return Key(i), true
		}
	}
	return 0, false
}

// TakeLatched returns a key that went down since the last call to ClearLatch
// or TakeLatched, and clears the latch. The lowest latched key that is still
// held wins; when every latched key was already released the lowest of them
// is returned so short taps are not lost.
func (k *Keypad) TakeLatched() (Key, bool) {
	if k.latched == 0 {
		return 0, false
	}

	released, found := Key(0), false
	for i := Key(0); i < KeyCount; i++ {
		if k.latched&(1<<i) == 0 {
			continue
		}
		if k.pressed[i] {
			k.latched = 0
			return i, true
		}
		if !found {
			released, found = i, true
		}
	}
	k.latched = 0
	return released, found
}

// ClearLatch forgets any key-down transitions seen so far.
func (k *Keypad) ClearLatch() {
	k.latched = 0
}

// State returns a copy of the held keys.
func (k *Keypad) State() [KeyCount]bool {
	return k.pressed
}

// Reset releases all keys.
func (k *Keypad) Reset() {
	k.pressed = [KeyCount]bool{}
	k.latched = 0
}
