package host

import (
	"image/color"
	"strings"

	"github.com/retroenv/chip8vm/internal/chip8"
)

// Default pixel colors.
var (
	Foreground = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	Background = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF}
)

// RGBASize is the size of an RGBA image of the screen in bytes.
const RGBASize = chip8.ScreenWidth * chip8.ScreenHeight * 4

// FillRGBA writes the screen as RGBA pixels into buf, which must hold at least RGBASize bytes.
func FillRGBA(buf []byte, fb *chip8.Framebuffer, fg, bg color.RGBA) {
	for row := range chip8.ScreenHeight {
		bits := fb.Row(row)
		for col := range chip8.ScreenWidth {
			c := bg
			if bits&(1<<(chip8.ScreenWidth-1-col)) != 0 {
				c = fg
			}
			offset := (row*chip8.ScreenWidth + col) * 4
			buf[offset] = c.R
			buf[offset+1] = c.G
			buf[offset+2] = c.B
			buf[offset+3] = c.A
		}
	}
}

// ASCII returns the screen as text, one line per row.
func ASCII(fb *chip8.Framebuffer, on, off rune) string {
	var sb strings.Builder
	sb.Grow((chip8.ScreenWidth + 1) * chip8.ScreenHeight)

	for row := range chip8.ScreenHeight {
		for col := range chip8.ScreenWidth {
			if fb.Pixel(col, row) {
				sb.WriteRune(on)
			} else {
				sb.WriteRune(off)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
