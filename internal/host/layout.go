// Package host contains frontend independent helpers: the mapping of host
// keys and touch areas to the keypad and the conversion of the framebuffer
// into host images and text.
package host

import (
	"unicode"

	"github.com/retroenv/chip8vm/internal/chip8"
)

// Layout maps host characters to keypad keys.
type Layout map[rune]chip8.Key

// DefaultLayout places the 4x4 keypad
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
//
// on the left block of a QWERTY keyboard:
//
//	1 2 3 4
//	Q W E R
//	A S D F
//	Z X C V
var DefaultLayout = Layout{
	'1': chip8.Key1, '2': chip8.Key2, '3': chip8.Key3, '4': chip8.KeyC,
	'q': chip8.Key4, 'w': chip8.Key5, 'e': chip8.Key6, 'r': chip8.KeyD,
	'a': chip8.Key7, 's': chip8.Key8, 'd': chip8.Key9, 'f': chip8.KeyE,
	'z': chip8.KeyA, 'x': chip8.Key0, 'c': chip8.KeyB, 'v': chip8.KeyF,
}

// Key returns the keypad key for a host character, case is ignored.
func (l Layout) Key(r rune) (chip8.Key, bool) {
	key, ok := l[unicode.ToLower(r)]
	return key, ok
}

// Rune returns the host character that is mapped to a keypad key.
func (l Layout) Rune(key chip8.Key) (rune, bool) {
	for r, k := range l {
		if k == key {
			return r, true
		}
	}
	return 0, false
}
