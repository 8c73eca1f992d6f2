package hal

import "testing"

func TestSquareWavePeriod(t *testing.T) {
	g := newSquareWave(44100)
	g.SetFrequency(441) // 100 samples per wave

	// First half high, second half low.
	for i := 0; i < 50; i++ {
		if s := g.nextSample(); s <= 0 {
			t.Fatalf("sample %d = %d, want positive", i, s)
		}
	}
	for i := 50; i < 100; i++ {
		if s := g.nextSample(); s >= 0 {
			t.Fatalf("sample %d = %d, want negative", i, s)
		}
	}
	if s := g.nextSample(); s <= 0 {
		t.Fatalf("wave did not wrap: sample 100 = %d", s)
	}
}

func TestSquareWaveSilence(t *testing.T) {
	g := newSquareWave(44100)
	g.SetFrequency(440)
	g.nextSample()

	g.SetFrequency(0)
	for i := 0; i < 10; i++ {
		if s := g.nextSample(); s != 0 {
			t.Fatalf("muted sample %d = %d, want 0", i, s)
		}
	}
}

func TestSquareWaveVolume(t *testing.T) {
	g := newSquareWave(44100)
	g.SetFrequency(441)

	full := g.nextSample()
	g.SetVolume(0)
	if s := g.nextSample(); s != 0 {
		t.Fatalf("zero volume sample = %d, want 0", s)
	}
	g.SetVolume(128)
	half := g.nextSample()
	if half <= 0 || half >= full {
		t.Fatalf("half volume sample = %d, full = %d", half, full)
	}
}

func TestSquareWaveRejectsUnplayableFrequency(t *testing.T) {
	g := newSquareWave(44100)
	g.SetFrequency(30000) // above Nyquist
	if s := g.nextSample(); s != 0 {
		t.Fatalf("unplayable frequency produced sample %d", s)
	}
}
