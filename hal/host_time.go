//go:build !tinygo

package hal

import "time"

// tickBacklog bounds how many undelivered ticks the channel buffers; a
// stalled consumer loses ticks rather than stalling the runner.
const tickBacklog = 1024

// hostTime maps wall-clock time onto the 1 tick = 1 ms stream. Tick
// numbers derive from the elapsed time since the first step call, so a
// slow runner catches up instead of drifting.
type hostTime struct {
	ch    chan uint64
	seq   uint64
	epoch time.Time
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, tickBacklog)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// step emits every tick that wall-clock time has reached since the
// previous call. The first call establishes the epoch and emits tick 1.
func (t *hostTime) step() {
	if t.epoch.IsZero() {
		t.epoch = time.Now()
		t.push()
		return
	}
	// Tick 1 fired at the epoch itself.
	due := uint64(time.Since(t.epoch)/time.Millisecond) + 1
	for t.seq < due {
		t.push()
	}
}

func (t *hostTime) push() {
	t.seq++
	select {
	case t.ch <- t.seq:
	default:
	}
}
