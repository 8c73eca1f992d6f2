//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64
}

// RunHeadless runs the firmware on the host: a wall-clock ticker feeds
// the HAL tick stream and the app step function runs once per tick.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	h := New().(*hostHAL)
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			h.tone.Mute()
			return ctx.Err()
		case <-t.C:
			h.t.step()
			if step != nil {
				if err := step(); err != nil {
					h.tone.Mute()
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				h.tone.Mute()
				return nil
			}
		}
	}
}
