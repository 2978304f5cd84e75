// Package otoplayer plays the beep tone through the system audio device.
package otoplayer

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/retroenv/chip8vm/internal/audio"
)

// Player streams a tone to an oto audio context.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	tone   *audio.Tone
	mutex  sync.Mutex
}

// New opens the audio device and starts streaming the tone. The tone stays
// silent until it is triggered.
func New(tone *audio.Tone) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   tone.SampleRate(),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0, // platform default
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	p := &Player{
		ctx:  ctx,
		tone: tone,
	}
	p.player = ctx.NewPlayer(tone)
	p.player.Play()
	return p, nil
}

// Open is an audio.Opener for the system audio device.
func Open(tone *audio.Tone) (audio.Sink, error) {
	p, err := New(tone)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Beep triggers the tone.
func (p *Player) Beep() {
	p.tone.Beep()
}

// Close stops the playback.
func (p *Player) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	if err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}

var _ audio.Sink = (*Player)(nil)
