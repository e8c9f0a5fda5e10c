package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/memory"
)

type keyCall struct {
	key     uint8
	pressed bool
}

type fakeKeypad struct {
	calls []keyCall
}

func (f *fakeKeypad) SetKey(key uint8, pressed bool) {
	f.calls = append(f.calls, keyCall{key, pressed})
}

// newTestManager returns a manager whose clock is driven by the returned pointer.
func newTestManager(k Keypad) (*Manager, *time.Time) {
	m := NewManager(k)
	now := time.Unix(1000, 0)
	m.now = func() time.Time { return now }
	return m, &now
}

func TestManager_KeypadActions(t *testing.T) {
	k := &fakeKeypad{}
	m, _ := newTestManager(k)

	m.Trigger(action.KeypadA, event.Press)
	m.Trigger(action.KeypadA, event.Release)
	m.Trigger(action.KeypadA, event.Press)
	m.Trigger(action.KeypadA, event.Hold)
	m.Trigger(action.Keypad3, event.Press)

	assert.Equal(t, []keyCall{
		{0xA, true},
		{0xA, false},
		{0xA, true},
		{0x3, true},
	}, k.calls, "keypad events are never debounced and Hold is ignored")
}

func TestManager_KeypadActionsSkipCallbacks(t *testing.T) {
	m, _ := newTestManager(&fakeKeypad{})

	called := false
	m.On(action.Keypad1, event.Press, func() { called = true })
	m.Trigger(action.Keypad1, event.Press)

	assert.False(t, called)
}

func TestManager_RealKeypad(t *testing.T) {
	pad := memory.NewKeypad()
	m := NewManager(keypadAdapter{pad})

	m.Trigger(action.KeypadF, event.Press)
	assert.True(t, pad.IsPressed(0xF))

	m.Trigger(action.KeypadF, event.Release)
	assert.False(t, pad.IsPressed(0xF))
}

type keypadAdapter struct{ *memory.Keypad }

func (a keypadAdapter) SetKey(key uint8, pressed bool) { a.Set(memory.Key(key), pressed) }

func TestManager_NilKeypad(t *testing.T) {
	m, _ := newTestManager(nil)

	assert.NotPanics(t, func() { m.Trigger(action.Keypad0, event.Press) })
}

func TestManager_Debouncing(t *testing.T) {
	tests := []struct {
		name        string
		eventType   event.Type
		timeBetween time.Duration
		wantCalls   int
	}{
		{"rapid press is debounced", event.Press, 100 * time.Millisecond, 1},
		{"slow press passes", event.Press, 400 * time.Millisecond, 2},
		{"rapid release is debounced", event.Release, 10 * time.Millisecond, 1},
		{"hold is never debounced", event.Hold, 10 * time.Millisecond, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, now := newTestManager(nil)

			calls := 0
			m.On(action.EmulatorPauseToggle, tt.eventType, func() { calls++ })

			m.Trigger(action.EmulatorPauseToggle, tt.eventType)
			*now = now.Add(tt.timeBetween)
			m.Trigger(action.EmulatorPauseToggle, tt.eventType)

			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestManager_ActionsDebounceIndependently(t *testing.T) {
	m, _ := newTestManager(nil)

	var got []action.Action
	m.On(action.EmulatorDebugToggle, event.Press, func() { got = append(got, action.EmulatorDebugToggle) })
	m.On(action.EmulatorSnapshot, event.Press, func() { got = append(got, action.EmulatorSnapshot) })

	m.Trigger(action.EmulatorDebugToggle, event.Press)
	m.Trigger(action.EmulatorSnapshot, event.Press)
	m.Trigger(action.EmulatorDebugToggle, event.Press)

	assert.Equal(t, []action.Action{action.EmulatorDebugToggle, action.EmulatorSnapshot}, got)
}

func TestManager_MultipleCallbacks(t *testing.T) {
	m, _ := newTestManager(nil)

	order := []int{}
	m.On(action.EmulatorQuit, event.Press, func() { order = append(order, 1) })
	m.On(action.EmulatorQuit, event.Press, func() { order = append(order, 2) })
	m.Trigger(action.EmulatorQuit, event.Press)

	assert.Equal(t, []int{1, 2}, order)
}

func TestManager_CallbackCanRegister(t *testing.T) {
	m, _ := newTestManager(nil)

	m.On(action.EmulatorReset, event.Press, func() {
		m.On(action.EmulatorQuit, event.Press, func() {})
	})

	assert.NotPanics(t, func() { m.Trigger(action.EmulatorReset, event.Press) })
}
