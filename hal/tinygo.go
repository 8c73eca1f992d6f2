//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"
)

type tinyGoHAL struct {
	logger *uartLogger
	led    *pinLED
	t      *tinyGoTime
	tone   Tone
}

// New returns an RP2 HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1. Buzzer on GP2.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		led:    &pinLED{pin: ledPin},
		t:      newTinyGoTime(),
		tone:   newPWMTone(machine.GP2),
	}
}

func (h *tinyGoHAL) Logger() Logger { return h.logger }
func (h *tinyGoHAL) LED() LED       { return h.led }
func (h *tinyGoHAL) Tone() Tone     { return h.tone }
func (h *tinyGoHAL) Time() Time     { return h.t }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	l.uart.Write([]byte(s))
	l.uart.Write([]byte("\r\n"))
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	l.uart.Write(b)
	l.uart.Write([]byte("\r\n"))
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

type tinyGoTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }
