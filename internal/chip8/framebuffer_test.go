package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFramebuffer_DrawSprite(t *testing.T) {
	tests := []struct {
		name     string
		col, row int
		sprite   []byte
		on       [][2]int
		off      [][2]int
	}{
		{
			name:   "origin",
			sprite: []byte{0x81},
			on:     [][2]int{{0, 0}, {7, 0}},
			off:    [][2]int{{1, 0}, {8, 0}},
		},
		{
			name:   "right edge clipped",
			col:    62,
			sprite: []byte{0xFF},
			on:     [][2]int{{62, 0}, {63, 0}},
			off:    [][2]int{{0, 0}, {1, 0}},
		},
		{
			name:   "start wraps",
			col:    ScreenWidth + 1,
			row:    ScreenHeight + 2,
			sprite: []byte{0x80},
			on:     [][2]int{{1, 2}},
		},
		{
			name:   "negative start wraps",
			col:    -1,
			sprite: []byte{0x80},
			on:     [][2]int{{63, 0}},
		},
		{
			name:   "bottom edge clipped",
			row:    ScreenHeight - 1,
			sprite: []byte{0x80, 0x80},
			on:     [][2]int{{0, ScreenHeight - 1}},
			off:    [][2]int{{0, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fb Framebuffer
			assert.False(t, fb.DrawSprite(tt.col, tt.row, tt.sprite))
			for _, p := range tt.on {
				assert.True(t, fb.Pixel(p[0], p[1]))
			}
			for _, p := range tt.off {
				assert.False(t, fb.Pixel(p[0], p[1]))
			}
		})
	}
}

func TestFramebuffer_Collision(t *testing.T) {
	var fb Framebuffer
	assert.False(t, fb.DrawSprite(0, 0, []byte{0xF0}))
	assert.False(t, fb.DrawSprite(0, 0, []byte{0x0F}))
	assert.Equal(t, uint64(0xFF)<<56, fb.Row(0))

	assert.True(t, fb.DrawSprite(4, 0, []byte{0x80}))
	assert.False(t, fb.Pixel(4, 0))
}

func TestFramebuffer_Packed(t *testing.T) {
	var fb Framebuffer
	fb.DrawSprite(8, 1, []byte{0xA5})

	packed := fb.Packed()
	assert.Len(t, packed, PackedFramebufferSize)
	assert.Equal(t, uint8(0xA5), packed[8+1])
	assert.Equal(t, uint8(0), packed[8])

	fb.Clear()
	assert.Equal(t, make([]byte, PackedFramebufferSize), fb.Packed())
	assert.False(t, fb.Pixel(-1, 0))
	assert.Equal(t, uint64(0), fb.Row(ScreenHeight))
}
