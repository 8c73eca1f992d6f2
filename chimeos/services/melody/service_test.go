package melody

import (
	"testing"

	"chime/chimeos/kernel"
	"chime/chimeos/proto"
)

type fakeTone struct {
	calls []uint32 // frequency per Start, 0 per Mute
	vol   uint8
}

func (f *fakeTone) Start(freqHz uint32) error {
	f.calls = append(f.calls, freqHz)
	return nil
}

func (f *fakeTone) Mute()               { f.calls = append(f.calls, 0) }
func (f *fakeTone) SetVolume(vol uint8) { f.vol = vol }

func (f *fakeTone) starts() []uint32 {
	var out []uint32
	for _, c := range f.calls {
		if c != 0 {
			out = append(out, c)
		}
	}
	return out
}

type fakeLED struct {
	on    bool
	flips int
}

func (l *fakeLED) High() {
	if !l.on {
		l.on = true
		l.flips++
	}
}

func (l *fakeLED) Low() {
	if l.on {
		l.on = false
		l.flips++
	}
}

type action struct {
	at uint64
	fn func(*kernel.Context)
}

// script drives the service the way a real task would: one action per
// step once its tick is due, collecting status traffic in between.
type script struct {
	statusCap kernel.Capability
	actions   []action
	i         int

	states []proto.MelodyState
	errs   []proto.ErrCode
}

func (s *script) Step(ctx *kernel.Context) {
	for {
		msg, ok := ctx.TryRecv(s.statusCap)
		if !ok {
			break
		}
		switch proto.Kind(msg.Kind) {
		case proto.MsgMelodyStatus:
			if state, _, _, ok := proto.DecodeMelodyStatusPayload(msg.Payload()); ok {
				s.states = append(s.states, state)
			}
		case proto.MsgError:
			if code, _, _, ok := proto.DecodeErrorPayload(msg.Payload()); ok {
				s.errs = append(s.errs, code)
			}
		}
	}

	if s.i < len(s.actions) && ctx.NowTick() >= s.actions[s.i].at {
		fn := s.actions[s.i].fn
		s.i++
		fn(ctx)
		return
	}
	ctx.BlockOnTick()
}

type harness struct {
	k      *kernel.Kernel
	tone   *fakeTone
	led    *fakeLED
	script *script
}

func newHarness(actions func(melodyCap, statusCap kernel.Capability) []action) *harness {
	k := kernel.New()
	melodyEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	statusEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	tone := &fakeTone{}
	led := &fakeLED{}
	sc := &script{
		statusCap: statusEP.Restrict(kernel.RightRecv),
		actions:   actions(melodyEP.Restrict(kernel.RightSend), statusEP.Restrict(kernel.RightSend)),
	}

	k.AddTask(New(tone, led, melodyEP.Restrict(kernel.RightRecv), kernel.Capability{}))
	k.AddTask(sc)
	return &harness{k: k, tone: tone, led: led, script: sc}
}

// runTicks advances kernel time one tick at a time, stepping until all
// tasks are parked before each advance.
func (h *harness) runTicks(t *testing.T, until uint64) {
	t.Helper()
	for now := uint64(0); now <= until; now++ {
		if now > 0 {
			h.k.TickTo(now)
		}
		for guard := 0; h.k.Step(); guard++ {
			if guard > 1000 {
				t.Fatal("kernel livelock")
			}
		}
	}
}

func subscribe(melodyCap, statusCap kernel.Capability) func(*kernel.Context) {
	return func(ctx *kernel.Context) {
		ctx.SendToCap(melodyCap, uint16(proto.MsgMelodySubscribe), proto.MelodySubscribePayload(), statusCap)
	}
}

// scaleFreqs are the tone starts of the songbook "scale" entry.
var scaleFreqs = []uint32{523, 587, 659, 698, 784, 880, 988, 1047}

func TestPlaySongToCompletion(t *testing.T) {
	h := newHarness(func(melodyCap, statusCap kernel.Capability) []action {
		return []action{
			{0, subscribe(melodyCap, statusCap)},
			{0, func(ctx *kernel.Context) {
				ctx.SendTo(melodyCap, uint16(proto.MsgMelodyPlay), proto.MelodyPlayPayload(false, 10, "scale"))
			}},
		}
	})

	// "scale" is 8 eighth notes at whole=750ms: ~94 ticks each.
	h.runTicks(t, 1000)

	starts := h.tone.starts()
	if len(starts) != len(scaleFreqs) {
		t.Fatalf("got %d tone starts (%v), want %d", len(starts), starts, len(scaleFreqs))
	}
	for i, f := range scaleFreqs {
		if starts[i] != f {
			t.Fatalf("start %d = %dHz, want %d", i, starts[i], f)
		}
	}
	if h.tone.calls[len(h.tone.calls)-1] != 0 {
		t.Fatal("output not muted after the song")
	}

	wantStates := []proto.MelodyState{proto.MelodyStopped, proto.MelodyPlaying, proto.MelodyStopped}
	if len(h.script.states) != len(wantStates) {
		t.Fatalf("status states %v, want %v", h.script.states, wantStates)
	}
	for i, st := range wantStates {
		if h.script.states[i] != st {
			t.Fatalf("status %d = %s, want %s", i, h.script.states[i], st)
		}
	}

	if h.led.on || h.led.flips != 2 {
		t.Fatalf("led on=%v flips=%d, want off after exactly one on/off", h.led.on, h.led.flips)
	}
}

func TestUnknownSongReportsNotFound(t *testing.T) {
	h := newHarness(func(melodyCap, statusCap kernel.Capability) []action {
		return []action{
			{0, subscribe(melodyCap, statusCap)},
			{0, func(ctx *kernel.Context) {
				ctx.SendTo(melodyCap, uint16(proto.MsgMelodyPlay), proto.MelodyPlayPayload(false, 10, "nope"))
			}},
		}
	})

	h.runTicks(t, 10)

	if len(h.script.errs) != 1 || h.script.errs[0] != proto.ErrNotFound {
		t.Fatalf("errors %v, want [not_found]", h.script.errs)
	}
	if len(h.tone.starts()) != 0 {
		t.Fatal("unknown song started a tone")
	}
}

func TestStopRequestIsImmediate(t *testing.T) {
	h := newHarness(func(melodyCap, statusCap kernel.Capability) []action {
		return []action{
			{0, subscribe(melodyCap, statusCap)},
			{0, func(ctx *kernel.Context) {
				ctx.SendTo(melodyCap, uint16(proto.MsgMelodyPlay), proto.MelodyPlayPayload(false, 10, "scale"))
			}},
			{200, func(ctx *kernel.Context) {
				ctx.SendTo(melodyCap, uint16(proto.MsgMelodyStop), nil)
			}},
		}
	})

	h.runTicks(t, 400)

	starts := h.tone.starts()
	if len(starts) == 0 || len(starts) >= len(scaleFreqs) {
		t.Fatalf("got %d tone starts, want a partial song", len(starts))
	}
	if h.tone.calls[len(h.tone.calls)-1] != 0 {
		t.Fatal("output not muted by stop")
	}
	if h.led.on {
		t.Fatal("led still on after stop")
	}
	last := h.script.states[len(h.script.states)-1]
	if last != proto.MelodyStopped {
		t.Fatalf("final status %s, want stopped", last)
	}
}

func TestLoopRestartsSong(t *testing.T) {
	h := newHarness(func(melodyCap, statusCap kernel.Capability) []action {
		return []action{
			{0, subscribe(melodyCap, statusCap)},
			{0, func(ctx *kernel.Context) {
				ctx.SendTo(melodyCap, uint16(proto.MsgMelodyPlay), proto.MelodyPlayPayload(true, 10, "scale"))
			}},
		}
	})

	// One pass is ~760 ticks; two thousand covers several.
	h.runTicks(t, 2000)

	if len(h.tone.starts()) <= len(scaleFreqs) {
		t.Fatalf("got %d tone starts, want more than one pass (%d)", len(h.tone.starts()), len(scaleFreqs))
	}
	if !h.led.on {
		t.Fatal("led off while looping")
	}
	// Looping never reports stopped after the initial subscribe echo.
	for i, st := range h.script.states[1:] {
		if st != proto.MelodyPlaying {
			t.Fatalf("status %d = %s while looping, want playing", i+1, st)
		}
	}
}

func TestSetVolumeReachesTone(t *testing.T) {
	h := newHarness(func(melodyCap, statusCap kernel.Capability) []action {
		return []action{
			{0, func(ctx *kernel.Context) {
				ctx.SendTo(melodyCap, uint16(proto.MsgMelodySetVolume), proto.MelodySetVolumePayload(42))
			}},
		}
	})

	h.runTicks(t, 10)

	if h.tone.vol != 42 {
		t.Fatalf("tone volume %d, want 42", h.tone.vol)
	}
}
