// Package jukebox walks a playlist of songbook entries: it subscribes
// to the melody service and requests the next song whenever playback
// reports stopped.
package jukebox

import (
	loggerclient "chime/chimeos/client/logger"
	melodyclient "chime/chimeos/client/melody"
	"chime/chimeos/kernel"
	"chime/chimeos/proto"
)

type Task struct {
	ep     kernel.Capability
	logCap kernel.Capability
	client *melodyclient.Client

	playlist []string
	loop     bool
	volume   uint8 // 0 keeps the service default

	idx        int
	subscribed bool
	requested  bool
	sawPlaying bool
	finished   bool
}

// New creates a jukebox over the given playlist. With loop set the
// playlist restarts from the top; a single-song looping playlist is
// delegated to the melody service's own loop mode.
func New(ep, melodyCap, logCap kernel.Capability, playlist []string, loop bool, volume uint8) *Task {
	return &Task{
		ep:       ep,
		logCap:   logCap,
		client:   melodyclient.New(melodyCap),
		playlist: playlist,
		loop:     loop,
		volume:   volume,
	}
}

func (t *Task) Step(ctx *kernel.Context) {
	if t.finished || len(t.playlist) == 0 {
		// Nothing left to request; just drain stray status messages.
		_, _ = ctx.Recv(t.ep.Restrict(kernel.RightRecv))
		return
	}

	if !t.subscribed {
		if err := t.client.Subscribe(ctx, t.ep.Restrict(kernel.RightSend)); err != nil {
			ctx.BlockOnTick()
			return
		}
		if t.volume > 0 {
			_ = t.client.SetVolume(ctx, t.volume)
		}
		t.subscribed = true
	}

	if !t.requested {
		t.playCurrent(ctx)
		return
	}

	msg, ok := ctx.Recv(t.ep.Restrict(kernel.RightRecv))
	if !ok {
		return
	}

	switch proto.Kind(msg.Kind) {
	case proto.MsgMelodyStatus:
		state, _, _, ok := proto.DecodeMelodyStatusPayload(msg.Payload())
		if !ok {
			return
		}
		if state == proto.MelodyPlaying {
			t.sawPlaying = true
			return
		}
		if t.sawPlaying {
			t.advance(ctx)
		}
	case proto.MsgError:
		code, ref, _, ok := proto.DecodeErrorPayload(msg.Payload())
		if ok {
			loggerclient.Log(ctx, t.logCap, "jukebox: "+ref.String()+" failed: "+code.String())
		}
		t.advance(ctx)
	}
}

func (t *Task) playCurrent(ctx *kernel.Context) {
	name := t.playlist[t.idx]
	songLoop := t.loop && len(t.playlist) == 1
	if err := t.client.Play(ctx, name, songLoop); err != nil {
		// Mailbox full; retry on a later step.
		ctx.BlockOnTick()
		return
	}
	t.requested = true
	t.sawPlaying = false
}

func (t *Task) advance(ctx *kernel.Context) {
	t.idx++
	if t.idx >= len(t.playlist) {
		if !t.loop {
			loggerclient.Log(ctx, t.logCap, "jukebox: playlist done")
			t.finished = true
			return
		}
		t.idx = 0
	}
	t.requested = false
}
