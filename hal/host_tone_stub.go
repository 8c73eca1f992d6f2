//go:build !tinygo && !cgo

package hal

// stubTone is used when no audio backend is available; playback still
// schedules correctly, it just stays silent.
type stubTone struct{}

func newHostTone() Tone { return stubTone{} }

func (stubTone) Start(freqHz uint32) error { return nil }
func (stubTone) Mute()                     {}
func (stubTone) SetVolume(vol uint8)       {}
