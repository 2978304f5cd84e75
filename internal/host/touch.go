package host

import (
	"image"

	"github.com/retroenv/chip8vm/internal/chip8"
)

// TouchArea maps a rectangle of the window to a key. The rectangle is given in
// fractions of the window size, so that it scales with the window.
type TouchArea struct {
	Left, Top, Right, Bottom float64
	Key                      chip8.Key
}

// PongTouchAreas splits the window into quarters for the paddles of two players:
// the left half controls player one with keys 1 and 4, the right half player two
// with keys C and D.
var PongTouchAreas = []TouchArea{
	{Left: 0, Top: 0, Right: 0.5, Bottom: 0.5, Key: chip8.Key1},
	{Left: 0, Top: 0.5, Right: 0.5, Bottom: 1, Key: chip8.Key4},
	{Left: 0.5, Top: 0, Right: 1, Bottom: 0.5, Key: chip8.KeyC},
	{Left: 0.5, Top: 0.5, Right: 1, Bottom: 1, Key: chip8.KeyD},
}

// Rect returns the area in pixels for a window of the given size.
func (a TouchArea) Rect(width, height int) image.Rectangle {
	return image.Rect(
		int(a.Left*float64(width)), int(a.Top*float64(height)),
		int(a.Right*float64(width)), int(a.Bottom*float64(height)),
	)
}

// KeyAt returns the key of the first area that contains the point.
func KeyAt(areas []TouchArea, x, y, width, height int) (chip8.Key, bool) {
	p := image.Pt(x, y)
	for _, area := range areas {
		if p.In(area.Rect(width, height)) {
			return area.Key, true
		}
	}
	return 0, false
}
