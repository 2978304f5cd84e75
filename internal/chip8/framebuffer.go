package chip8

import "encoding/binary"

// PackedFramebufferSize is the size of the packed framebuffer in bytes.
const PackedFramebufferSize = ScreenWidth * ScreenHeight / 8

// Framebuffer is the 64x32 monochrome screen. Each row is stored as one word,
// the most significant bit is the leftmost pixel.
type Framebuffer struct {
	rows [ScreenHeight]uint64
}

// Clear turns all pixels off.
func (f *Framebuffer) Clear() {
	f.rows = [ScreenHeight]uint64{}
}

// Pixel returns whether the pixel at the given position is on.
// Positions outside of the screen are always off.
func (f *Framebuffer) Pixel(col, row int) bool {
	if col < 0 || col >= ScreenWidth || row < 0 || row >= ScreenHeight {
		return false
	}
	return f.rows[row]>>(ScreenWidth-1-col)&1 == 1
}

// Row returns the pixels of a row, the most significant bit is column 0.
func (f *Framebuffer) Row(row int) uint64 {
	if row < 0 || row >= ScreenHeight {
		return 0
	}
	return f.rows[row]
}

// Packed returns the screen as 256 bytes, row by row, 8 pixels per byte with
// the most significant bit being the leftmost pixel.
func (f *Framebuffer) Packed() []byte {
	buf := make([]byte, PackedFramebufferSize)
	for row, bits := range f.rows {
		binary.BigEndian.PutUint64(buf[row*8:], bits)
	}
	return buf
}

// DrawSprite XORs the sprite rows onto the screen. The start position wraps
// around the screen edges, pixels that extend past the right or bottom edge
// are clipped. It returns true if any pixel was turned off.
func (f *Framebuffer) DrawSprite(col, row int, sprite []byte) bool {
	col = (col%ScreenWidth + ScreenWidth) % ScreenWidth
	row = (row%ScreenHeight + ScreenHeight) % ScreenHeight

	var collision bool
	for offset, data := range sprite {
		line := row + offset
		if line >= ScreenHeight {
			break
		}

		// bits shifted past column 63 fall off the word
		bits := uint64(data) << (ScreenWidth - 8) >> col
		if f.rows[line]&bits != 0 {
			collision = true
		}
		f.rows[line] ^= bits
	}
	return collision
}
