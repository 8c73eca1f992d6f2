// Package melody owns the ringtone player and the tone output. It
// steps playback on kernel ticks, executes play/stop/volume requests
// from IPC, mirrors the playing state on the status LED and pushes
// status updates to a single subscriber.
package melody

import (
	loggerclient "chime/chimeos/client/logger"
	"chime/chimeos/kernel"
	"chime/chimeos/proto"
	"chime/chimeos/rtttl"
	"chime/chimeos/songbook"
	"chime/hal"
)

type Service struct {
	ep     kernel.Capability
	logCap kernel.Capability
	tone   hal.Tone
	led    hal.LED

	player     *rtttl.Player
	subscriber kernel.Capability

	name   string
	loop   bool
	outVol uint8
}

func New(tone hal.Tone, led hal.LED, ep, logCap kernel.Capability) *Service {
	return &Service{
		ep:     ep,
		logCap: logCap,
		tone:   tone,
		led:    led,
		player: rtttl.New(tone),
		outVol: 255,
	}
}

func (s *Service) Step(ctx *kernel.Context) {
	// Requests first, so a stop lands before this tick's note advance.
	for {
		msg, ok := ctx.TryRecv(s.ep)
		if !ok {
			break
		}
		s.handle(ctx, &msg)
	}

	if !s.player.IsPlaying() {
		// Idle: park on the request endpoint instead of burning ticks.
		msg, ok := ctx.Recv(s.ep)
		if !ok {
			return
		}
		s.handle(ctx, &msg)
	}

	if s.player.IsPlaying() {
		if !s.player.Step(ctx.NowTick()) {
			s.songEnded(ctx)
		}
	}
	if s.player.IsPlaying() {
		ctx.BlockOnTick()
	}
}

func (s *Service) handle(ctx *kernel.Context, msg *kernel.Message) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgMelodySubscribe:
		if !msg.Cap.Valid() {
			return
		}
		s.subscriber = msg.Cap
		s.sendStatus(ctx)
	case proto.MsgMelodyPlay:
		s.handlePlay(ctx, msg)
	case proto.MsgMelodyStop:
		s.player.Stop()
		s.led.Low()
		s.loop = false
		s.sendStatus(ctx)
	case proto.MsgMelodySetVolume:
		vol, ok := proto.DecodeMelodySetVolumePayload(msg.Payload())
		if !ok {
			s.sendError(ctx, proto.ErrBadMessage, proto.MsgMelodySetVolume)
			return
		}
		s.outVol = vol
		s.tone.SetVolume(vol)
	}
}

func (s *Service) handlePlay(ctx *kernel.Context, msg *kernel.Message) {
	loop, volume, name, ok := proto.DecodeMelodyPlayPayload(msg.Payload())
	if !ok || name == "" {
		s.sendError(ctx, proto.ErrBadMessage, proto.MsgMelodyPlay)
		return
	}

	song, found := songbook.Get(name)
	if !found {
		loggerclient.Log(ctx, s.logCap, "melody: unknown song "+name)
		s.sendError(ctx, proto.ErrNotFound, proto.MsgMelodyPlay)
		return
	}
	if err := s.player.LoadVolume(song, volume); err != nil {
		loggerclient.Log(ctx, s.logCap, "melody: "+name+": "+err.Error())
		s.led.Low()
		s.sendError(ctx, proto.ErrBadSong, proto.MsgMelodyPlay)
		return
	}

	s.name = name
	s.loop = loop
	s.player.Play()
	s.led.High()
	loggerclient.Log(ctx, s.logCap, "melody: play "+name)
	s.sendStatus(ctx)
}

func (s *Service) songEnded(ctx *kernel.Context) {
	if s.loop {
		// The player rearms at the first note on its own.
		s.player.Play()
		return
	}
	s.led.Low()
	loggerclient.Log(ctx, s.logCap, "melody: done "+s.name)
	s.sendStatus(ctx)
}

func (s *Service) sendStatus(ctx *kernel.Context) {
	if !s.subscriber.Valid() {
		return
	}
	state := proto.MelodyStopped
	if s.player.IsPlaying() {
		state = proto.MelodyPlaying
	}
	ctx.SendTo(s.subscriber, uint16(proto.MsgMelodyStatus),
		proto.MelodyStatusPayload(state, s.outVol, s.name))
}

func (s *Service) sendError(ctx *kernel.Context, code proto.ErrCode, ref proto.Kind) {
	if !s.subscriber.Valid() {
		return
	}
	ctx.SendTo(s.subscriber, uint16(proto.MsgError), proto.ErrorPayload(code, ref, nil))
}
