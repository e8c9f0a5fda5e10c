package input

import (
	"sync"
	"time"

	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
)

const (
	// debounceDuration is the minimum time between debounced events
	debounceDuration = 300 * time.Millisecond
)

// Keypad receives hex keypad state changes.
type Keypad interface {
	SetKey(key uint8, pressed bool)
}

// Manager handles input actions and their associated callbacks.
// Keypad actions go straight to the keypad and are never debounced, since
// games rely on seeing every press and release. Everything else is routed to
// registered callbacks.
type Manager struct {
	mu            sync.Mutex
	handlers      map[action.Action]map[event.Type][]func()
	lastTriggered map[action.Action]map[event.Type]time.Time
	keypad        Keypad
	now           func() time.Time
}

func NewManager(k Keypad) *Manager {
	return &Manager{
		handlers:      make(map[action.Action]map[event.Type][]func()),
		lastTriggered: make(map[action.Action]map[event.Type]time.Time),
		keypad:        k,
		now:           time.Now,
	}
}

// On registers a callback for a specific action and event type
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}
	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger handles the given action and event type.
func (m *Manager) Trigger(act action.Action, evt event.Type) {
	if key, ok := action.KeypadKey(act); ok {
		if m.keypad == nil {
			return
		}
		switch evt {
		case event.Press:
			m.keypad.SetKey(key, true)
		case event.Release:
			m.keypad.SetKey(key, false)
		}
		return
	}

	m.mu.Lock()
	if (evt == event.Press || evt == event.Release) && m.debounced(act, evt) {
		m.mu.Unlock()
		return
	}
	callbacks := append([]func(){}, m.handlers[act][evt]...)
	m.mu.Unlock()

	for _, callback := range callbacks {
		callback()
	}
}

// debounced reports whether the event came too soon after the previous one,
// recording it otherwise. Must be called with mu held.
func (m *Manager) debounced(act action.Action, evt event.Type) bool {
	now := m.now()
	if m.lastTriggered[act] == nil {
		m.lastTriggered[act] = make(map[event.Type]time.Time)
	}
	if last, ok := m.lastTriggered[act][evt]; ok && now.Sub(last) < debounceDuration {
		return true
	}
	m.lastTriggered[act][evt] = now
	return false
}
