// Package audio generates the beep of the sound timer.
package audio

import (
	"encoding/binary"
	"math"
	"sync/atomic"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Default tone settings.
const (
	DefaultSampleRate = 44100
	DefaultFrequency  = 440
	DefaultVolume     = 0.25

	// BeepDuration is the length of a beep, a little longer than one 60Hz timer tick.
	BeepDuration = 50 * time.Millisecond
)

const bytesPerSample = 4 // mono float32

// A Beeper plays a short tone.
type Beeper interface {
	Beep()
}

// A Sink is an opened audio device that plays beeps until it is closed.
type Sink interface {
	Beeper
	Close() error
}

// Opener opens an audio device that plays the tone.
type Opener func(tone *Tone) (Sink, error)

// Open creates a tone with the default settings and opens a device for it.
// A failing device is logged and replaced by a Silent sink.
func Open(logger *log.Logger, opener Opener) Sink {
	tone := NewTone(DefaultSampleRate, DefaultFrequency, DefaultVolume)
	sink, err := opener(tone)
	if err != nil {
		logger.Warn("Audio output not available, beep disabled", log.Err(err))
		return Silent{}
	}
	return sink
}

// Silent is a Sink that does nothing.
type Silent struct{}

// Beep does nothing.
func (Silent) Beep() {}

// Close does nothing.
func (Silent) Close() error { return nil }

// Tone is a gated square wave generator. It is read by the audio sink as a
// stream of mono little-endian float32 samples and outputs silence while no
// beep is active. Trigger can be called concurrently to Read.
type Tone struct {
	sampleRate int
	halfPeriod int // samples per half wave
	volume     float32

	remaining atomic.Int64 // samples left of the active beep
	position  int
}

// NewTone returns a tone generator.
func NewTone(sampleRate, frequency int, volume float32) *Tone {
	halfPeriod := 1
	if frequency > 0 {
		halfPeriod = max(1, sampleRate/(2*frequency))
	}
	return &Tone{
		sampleRate: sampleRate,
		halfPeriod: halfPeriod,
		volume:     volume,
	}
}

// SampleRate returns the sample rate of the generated stream.
func (t *Tone) SampleRate() int {
	return t.sampleRate
}

// Trigger starts a beep of the given duration, an active beep is extended.
func (t *Tone) Trigger(d time.Duration) {
	samples := int64(d) * int64(t.sampleRate) / int64(time.Second)
	for {
		current := t.remaining.Load()
		if current >= samples || t.remaining.CompareAndSwap(current, samples) {
			return
		}
	}
}

// Active returns whether a beep is playing.
func (t *Tone) Active() bool {
	return t.remaining.Load() > 0
}

// Beep triggers a beep of BeepDuration.
func (t *Tone) Beep() {
	t.Trigger(BeepDuration)
}

// Read fills p with samples. It never returns an error, the stream is endless.
func (t *Tone) Read(p []byte) (int, error) {
	samples := len(p) / bytesPerSample
	for i := range samples {
		var value float32
		if t.remaining.Load() > 0 {
			value = t.volume
			if (t.position/t.halfPeriod)%2 == 1 {
				value = -t.volume
			}
			t.position++
			t.remaining.Add(-1)
		} else {
			t.position = 0
		}
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(value))
	}
	return samples * bytesPerSample, nil
}
