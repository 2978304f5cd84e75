package host

import (
	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/retrogolib/set"
)

// KeyTracker turns polled key states into press and release transitions.
// Frontends that poll input every frame collect the currently held keys from
// all sources and pass them to Update.
type KeyTracker struct {
	held set.Set[chip8.Key]
}

// NewKeyTracker returns a tracker with all keys released.
func NewKeyTracker() *KeyTracker {
	return &KeyTracker{
		held: set.New[chip8.Key](),
	}
}

// Update stores the held keys and returns the keys that were pressed and
// released since the previous call.
func (t *KeyTracker) Update(held set.Set[chip8.Key]) (pressed, released []chip8.Key) {
	for key := range chip8.Key(chip8.KeyCount) {
		was := t.held.Contains(key)
		is := held.Contains(key)
		switch {
		case is && !was:
			pressed = append(pressed, key)
		case was && !is:
			released = append(released, key)
		}
	}
	t.held = held
	return pressed, released
}
