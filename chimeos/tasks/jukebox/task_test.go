package jukebox

import (
	"strings"
	"testing"

	"chime/chimeos/kernel"
	"chime/chimeos/services/logger"
	"chime/chimeos/services/melody"
)

type fakeTone struct {
	starts int
	muted  bool
	vol    uint8
}

func (f *fakeTone) Start(freqHz uint32) error {
	f.starts++
	f.muted = false
	return nil
}

func (f *fakeTone) Mute()               { f.muted = true }
func (f *fakeTone) SetVolume(vol uint8) { f.vol = vol }

type fakeLED struct{ on bool }

func (l *fakeLED) High() { l.on = true }
func (l *fakeLED) Low()  { l.on = false }

type fakeLogger struct{ lines []string }

func (f *fakeLogger) WriteLineString(s string) { f.lines = append(f.lines, s) }
func (f *fakeLogger) WriteLineBytes(b []byte)  { f.lines = append(f.lines, string(b)) }

func (f *fakeLogger) contains(sub string) bool {
	for _, l := range f.lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

func (f *fakeLogger) count(sub string) int {
	n := 0
	for _, l := range f.lines {
		if strings.Contains(l, sub) {
			n++
		}
	}
	return n
}

type system struct {
	k    *kernel.Kernel
	tone *fakeTone
	led  *fakeLED
	log  *fakeLogger
}

func newSystem(playlist []string, loop bool, volume uint8) *system {
	k := kernel.New()
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	melodyEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	jukeEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	tone := &fakeTone{}
	led := &fakeLED{}
	log := &fakeLogger{}

	logCap := logEP.Restrict(kernel.RightSend)
	k.AddTask(logger.New(log, logEP.Restrict(kernel.RightRecv)))
	k.AddTask(melody.New(tone, led, melodyEP.Restrict(kernel.RightRecv), logCap))
	k.AddTask(New(jukeEP, melodyEP.Restrict(kernel.RightSend), logCap, playlist, loop, volume))

	return &system{k: k, tone: tone, led: led, log: log}
}

func (s *system) run(t *testing.T, ticks uint64) {
	t.Helper()
	for now := uint64(0); now <= ticks; now++ {
		if now > 0 {
			s.k.TickTo(now)
		}
		for guard := 0; s.k.Step(); guard++ {
			if guard > 1000 {
				t.Fatal("kernel livelock")
			}
		}
	}
}

func TestPlaylistRunsToEnd(t *testing.T) {
	// "scale" lasts roughly 760 ticks per pass.
	s := newSystem([]string{"scale", "scale"}, false, 0)
	s.run(t, 2500)

	if s.tone.starts != 16 {
		t.Fatalf("got %d tone starts, want 16 (two scale passes)", s.tone.starts)
	}
	if !s.tone.muted {
		t.Fatal("output not muted after the playlist")
	}
	if s.led.on {
		t.Fatal("led still on after the playlist")
	}
	if n := s.log.count("melody: play scale"); n != 2 {
		t.Fatalf("got %d play log lines, want 2: %v", n, s.log.lines)
	}
	if !s.log.contains("jukebox: playlist done") {
		t.Fatalf("missing playlist done log line: %v", s.log.lines)
	}
}

func TestPlaylistLoopWraps(t *testing.T) {
	s := newSystem([]string{"scale"}, true, 0)
	s.run(t, 2000)

	if s.tone.starts <= 8 {
		t.Fatalf("got %d tone starts, want more than one pass", s.tone.starts)
	}
	if s.log.contains("jukebox: playlist done") {
		t.Fatal("looping playlist reported done")
	}
}

func TestUnknownSongIsSkipped(t *testing.T) {
	s := newSystem([]string{"nope", "scale"}, false, 0)
	s.run(t, 1500)

	if s.tone.starts != 8 {
		t.Fatalf("got %d tone starts, want 8 (only scale plays)", s.tone.starts)
	}
	if !s.log.contains("melody: unknown song nope") {
		t.Fatalf("missing unknown-song log line: %v", s.log.lines)
	}
	if !s.log.contains("jukebox: playlist done") {
		t.Fatalf("missing playlist done log line: %v", s.log.lines)
	}
}

func TestVolumeForwarded(t *testing.T) {
	s := newSystem([]string{"scale"}, false, 200)
	s.run(t, 1000)

	if s.tone.vol != 200 {
		t.Fatalf("tone volume %d, want 200", s.tone.vol)
	}
}
