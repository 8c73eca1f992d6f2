package hal

import "sync/atomic"

// squareWave produces centered 16-bit square-wave samples at a fixed
// sample rate. Frequency and volume updates may come from a different
// goroutine than the sample reader, hence the atomics.
type squareWave struct {
	sampleRate uint32
	period     atomic.Uint32 // samples per full wave, 0 = silence
	volume     atomic.Uint32 // 0..255
	pos        uint32
}

func newSquareWave(sampleRate uint32) *squareWave {
	g := &squareWave{sampleRate: sampleRate}
	g.volume.Store(255)
	return g
}

// SetFrequency switches the generator to freqHz; 0 silences it.
func (g *squareWave) SetFrequency(freqHz uint32) {
	if freqHz == 0 || freqHz > g.sampleRate/2 {
		g.period.Store(0)
		return
	}
	p := g.sampleRate / freqHz
	if p < 2 {
		p = 2
	}
	g.period.Store(p)
}

func (g *squareWave) SetVolume(vol uint8) {
	g.volume.Store(uint32(vol))
}

// amplitude of the raw wave before volume scaling. Well below full
// scale: a square wave at 32767 is unpleasant on laptop speakers.
const squareAmplitude = 8000

// nextSample returns the next mono sample. Only the reader goroutine
// may call it.
func (g *squareWave) nextSample() int16 {
	period := g.period.Load()
	if period == 0 {
		g.pos = 0
		return 0
	}
	if g.pos >= period {
		g.pos = 0
	}

	s := int32(squareAmplitude)
	if g.pos >= period/2 {
		s = -s
	}
	g.pos++

	s = s * int32(g.volume.Load()) / 255
	return int16(s)
}
