//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	t      *hostTime
	tone   Tone
}

// New returns a host HAL implementation.
func New() HAL {
	logger := &hostLogger{w: os.Stdout}
	return &hostHAL{
		logger: logger,
		led:    &hostLED{logger: logger},
		t:      newHostTime(),
		tone:   newHostTone(),
	}
}

func (h *hostHAL) Logger() Logger { return h.logger }
func (h *hostHAL) LED() LED       { return h.led }
func (h *hostHAL) Tone() Tone     { return h.tone }
func (h *hostHAL) Time() Time     { return h.t }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.on {
		return
	}
	l.on = true
	l.logger.WriteLineString("led: HIGH")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.on {
		return
	}
	l.on = false
	l.logger.WriteLineString("led: LOW")
}
