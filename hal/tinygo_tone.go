//go:build tinygo && baremetal

package hal

import (
	"machine"

	"tinygo.org/x/drivers/tone"
)

// pwmTone drives a piezo buzzer from a PWM slice at 50% duty. Frequency
// changes reprogram the slice period; there is no amplitude control.
type pwmTone struct {
	speaker tone.Speaker
	ok      bool
}

func newPWMTone(pin machine.Pin) *pwmTone {
	pwm := pwmForPin(pin)
	if pwm == nil {
		return &pwmTone{}
	}
	sp, err := tone.New(pwm, pin)
	if err != nil {
		return &pwmTone{}
	}
	return &pwmTone{speaker: sp, ok: true}
}

func pwmForPin(pin machine.Pin) tone.PWM {
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		return nil
	}
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		return nil
	}
}

func (t *pwmTone) Start(freqHz uint32) error {
	if !t.ok {
		return ErrNotImplemented
	}
	if freqHz == 0 {
		t.speaker.Stop()
		return nil
	}
	return t.speaker.SetPeriod(uint64(1e9) / uint64(freqHz))
}

func (t *pwmTone) Mute() {
	if !t.ok {
		return
	}
	t.speaker.Stop()
}

// SetVolume is a no-op: duty cycle stays at 50%.
func (t *pwmTone) SetVolume(vol uint8) {}
