package chip8

import "fmt"

// Key is a logical key of the hex keypad, 0x0-0xF.
type Key uint8

// Keypad keys.
const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

// String returns the hex digit of the key.
func (k Key) String() string {
	return fmt.Sprintf("%X", uint8(k))
}

// Valid returns whether the key exists on the keypad.
func (k Key) Valid() bool {
	return k < KeyCount
}

// KeyState is the last known state of a key.
type KeyState uint8

// Key states.
const (
	Released KeyState = iota
	Pressed
)

func (s KeyState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// KeyEvent is a key transition delivered by a host input source.
type KeyEvent struct {
	Key   Key
	State KeyState
}

// Keypad holds the latest state of every key. There is no event queue and no debouncing.
type Keypad struct {
	keys [KeyCount]KeyState
}

// Set stores the state of a key. Invalid keys are ignored and reported as false.
func (k *Keypad) Set(key Key, state KeyState) bool {
	if !key.Valid() {
		return false
	}
	k.keys[key] = state
	return true
}

// IsPressed returns whether the key is currently pressed.
func (k *Keypad) IsPressed(key Key) bool {
	return key.Valid() && k.keys[key] == Pressed
}

// FirstPressed returns the lowest pressed key.
func (k *Keypad) FirstPressed() (Key, bool) {
	for key, state := range k.keys {
		if state == Pressed {
			return Key(key), true
		}
	}
	return 0, false
}

// Bits returns the keypad as a bitfield, bit n is set if key n is pressed.
func (k *Keypad) Bits() uint16 {
	var bits uint16
	for key, state := range k.keys {
		if state == Pressed {
			bits |= 1 << key
		}
	}
	return bits
}
