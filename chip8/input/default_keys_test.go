package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-chip8/chip8/input/action"
)

func TestDefaultKeyMap_CoversWholeKeypad(t *testing.T) {
	seen := make(map[uint8]string)
	for key, act := range DefaultKeyMap {
		k, ok := action.KeypadKey(act)
		if !ok {
			continue
		}
		if prev, dup := seen[k]; dup {
			t.Fatalf("keypad %X mapped twice (%q and %q)", k, prev, key)
		}
		seen[k] = key
	}

	assert.Len(t, seen, 16)
}

func TestGetDefaultMapping(t *testing.T) {
	act, ok := GetDefaultMapping("x")
	assert.True(t, ok)
	assert.Equal(t, action.Keypad0, act)

	act, ok = GetDefaultMapping("v")
	assert.True(t, ok)
	assert.Equal(t, action.KeypadF, act)

	_, ok = GetDefaultMapping("F1")
	assert.False(t, ok)
}

func TestKeypadKey(t *testing.T) {
	for k := uint8(0); k < 16; k++ {
		got, ok := action.KeypadKey(action.ForKey(k))
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}

	_, ok := action.KeypadKey(action.EmulatorQuit)
	assert.False(t, ok)
	assert.Equal(t, "KeypadB", action.KeypadB.String())
	assert.Equal(t, "Quit", action.EmulatorQuit.String())
}
