package host

import (
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDefaultLayout(t *testing.T) {
	rows := []string{"1234", "qwer", "asdf", "zxcv"}
	pad := [][]chip8.Key{
		{chip8.Key1, chip8.Key2, chip8.Key3, chip8.KeyC},
		{chip8.Key4, chip8.Key5, chip8.Key6, chip8.KeyD},
		{chip8.Key7, chip8.Key8, chip8.Key9, chip8.KeyE},
		{chip8.KeyA, chip8.Key0, chip8.KeyB, chip8.KeyF},
	}

	for i, row := range rows {
		for j, r := range row {
			key, ok := DefaultLayout.Key(r)
			assert.True(t, ok)
			assert.Equal(t, pad[i][j], key)

			back, ok := DefaultLayout.Rune(key)
			assert.True(t, ok)
			assert.Equal(t, r, back)
		}
	}

	key, ok := DefaultLayout.Key('Q')
	assert.True(t, ok)
	assert.Equal(t, chip8.Key4, key)

	_, ok = DefaultLayout.Key('p')
	assert.False(t, ok)
	assert.Len(t, DefaultLayout, chip8.KeyCount)
}

func TestKeyAt(t *testing.T) {
	tests := []struct {
		name   string
		x, y   int
		want   chip8.Key
		wantOK bool
	}{
		{name: "upper left", x: 10, y: 10, want: chip8.Key1, wantOK: true},
		{name: "lower left", x: 10, y: 200, want: chip8.Key4, wantOK: true},
		{name: "upper right", x: 500, y: 0, want: chip8.KeyC, wantOK: true},
		{name: "lower right", x: 639, y: 319, want: chip8.KeyD, wantOK: true},
		{name: "center belongs to lower right", x: 320, y: 160, want: chip8.KeyD, wantOK: true},
		{name: "outside", x: 640, y: 10},
		{name: "negative", x: -1, y: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KeyAt(PongTouchAreas, tt.x, tt.y, 640, 320)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestASCII(t *testing.T) {
	var fb chip8.Framebuffer
	fb.DrawSprite(0, 0, []byte{0xC0})
	fb.DrawSprite(63, 31, []byte{0x80})

	lines := strings.Split(strings.TrimSuffix(ASCII(&fb, '#', '.'), "\n"), "\n")
	assert.Len(t, lines, chip8.ScreenHeight)
	assert.Equal(t, "##"+strings.Repeat(".", 62), lines[0])
	assert.Equal(t, strings.Repeat(".", 63)+"#", lines[31])
}

func TestFillRGBA(t *testing.T) {
	var fb chip8.Framebuffer
	fb.DrawSprite(1, 0, []byte{0x80})

	buf := make([]byte, RGBASize)
	FillRGBA(buf, &fb, Foreground, Background)

	assert.Equal(t, []byte{Background.R, Background.G, Background.B, Background.A}, buf[0:4])
	assert.Equal(t, []byte{Foreground.R, Foreground.G, Foreground.B, Foreground.A}, buf[4:8])
	assert.Equal(t, Background.R, buf[RGBASize-4])
}
