//go:build !tinygo && cgo

package hal

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const toneSampleRate = 44100

// hostTone plays the square wave through Ebiten's audio package. The
// audio player pulls from an endless stream; Start/Mute only flip the
// generator frequency, so both return immediately.
type hostTone struct {
	mu     sync.Mutex
	ctx    *audio.Context
	player *audio.Player
	gen    *squareWave
}

func newHostTone() *hostTone {
	return &hostTone{gen: newSquareWave(toneSampleRate)}
}

func (t *hostTone) Start(freqHz uint32) error {
	if err := t.ensurePlayer(); err != nil {
		return err
	}
	t.gen.SetFrequency(freqHz)
	return nil
}

func (t *hostTone) Mute() {
	t.gen.SetFrequency(0)
}

func (t *hostTone) SetVolume(vol uint8) {
	t.gen.SetVolume(vol)
}

func (t *hostTone) ensurePlayer() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.player != nil {
		return nil
	}
	if t.ctx == nil {
		t.ctx = audio.NewContext(toneSampleRate)
	}
	p, err := t.ctx.NewPlayer(&toneReader{gen: t.gen})
	if err != nil {
		return err
	}
	p.SetBufferSize(20 * time.Millisecond)
	p.Play()
	t.player = p
	return nil
}

type toneReader struct {
	gen *squareWave
}

// Read fills p with 16-bit little-endian stereo and never returns EOF.
func (r *toneReader) Read(p []byte) (int, error) {
	for i := 0; i+3 < len(p); i += 4 {
		s := r.gen.nextSample()
		p[i+0] = byte(s)
		p[i+1] = byte(s >> 8)
		p[i+2] = byte(s)
		p[i+3] = byte(s >> 8)
	}
	return len(p) / 4 * 4, nil
}
