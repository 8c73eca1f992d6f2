// Package app assembles the firmware: kernel, services, tasks and the
// tick pump that drives them.
package app

import (
	"chime/chimeos/kernel"
	loggersvc "chime/chimeos/services/logger"
	melodysvc "chime/chimeos/services/melody"
	"chime/chimeos/songbook"
	"chime/chimeos/tasks/jukebox"
	"chime/hal"
	"chime/internal/buildinfo"
)

// stepBudget bounds how many task steps run per app step, so a single
// step call stays short even when every task is runnable.
const stepBudget = 64

type Config struct {
	// Playlist of songbook names; empty plays the whole book.
	Playlist []string
	// Loop restarts the playlist (or loops a single song) forever.
	Loop bool
	// Volume is the output level (1..255); 0 keeps the default.
	Volume uint8
}

type system struct {
	k     *kernel.Kernel
	ticks <-chan uint64
}

// New initializes the firmware with default config and returns its
// step function for an external runner.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

// NewWithConfig initializes the firmware and returns its step function.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	return newSystem(h, cfg).step
}

// Run starts the firmware and blocks forever (TinyGo entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, Config{})
}

// RunWithConfig starts the firmware and blocks forever.
func RunWithConfig(h hal.HAL, cfg Config) {
	newSystem(h, cfg).run()
}

func newSystem(h hal.HAL, cfg Config) *system {
	h.Logger().WriteLineString("chime " + buildinfo.Short())

	k := kernel.New()

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	melodyEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	jukeEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	playlist := cfg.Playlist
	if len(playlist) == 0 {
		playlist = songbook.Names()
	}

	k.AddTask(loggersvc.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	k.AddTask(melodysvc.New(h.Tone(), h.LED(),
		melodyEP.Restrict(kernel.RightRecv), logEP.Restrict(kernel.RightSend)))
	k.AddTask(jukebox.New(jukeEP, melodyEP.Restrict(kernel.RightSend),
		logEP.Restrict(kernel.RightSend), playlist, cfg.Loop, cfg.Volume))

	var ticks <-chan uint64
	if ht := h.Time(); ht != nil {
		ticks = ht.Ticks()
	}
	return &system{k: k, ticks: ticks}
}

// step drains pending ticks and runs up to stepBudget task steps. It is
// the host runner's per-frame entrypoint.
func (s *system) step() error {
	s.drainTicks()
	s.runTasks()
	return nil
}

// run drives the kernel from the tick stream. It never returns.
func (s *system) run() {
	if s.ticks == nil {
		for {
			s.runTasks()
		}
	}
	for seq := range s.ticks {
		s.k.TickTo(seq)
		s.runTasks()
	}
}

func (s *system) drainTicks() {
	if s.ticks == nil {
		return
	}
	for {
		select {
		case seq := <-s.ticks:
			s.k.TickTo(seq)
		default:
			return
		}
	}
}

func (s *system) runTasks() {
	for i := 0; i < stepBudget; i++ {
		if !s.k.Step() {
			return
		}
	}
}
