package hal

import "errors"

var ErrNotImplemented = errors.New("not implemented")

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

// Tone is a single square-wave tone source.
//
// Both Start and Mute return without waiting; timing is the caller's
// concern. There is no duration parameter: a started tone sounds until
// the next Start or Mute.
type Tone interface {
	// Start emits freqHz until further notice.
	Start(freqHz uint32) error
	// Mute silences the output.
	Mute()
	// SetVolume sets the output level (0..255). Implementations without
	// amplitude control ignore it.
	SetVolume(vol uint8)
}

// Time provides a base tick stream.
//
// One tick is one millisecond on every platform; playback deadlines are
// expressed in ticks.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the firmware and the
// outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	Tone() Tone
	Time() Time
}
