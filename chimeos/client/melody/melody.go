// Package melody is the request side of the melody service.
package melody

import (
	"fmt"

	"chime/chimeos/kernel"
	"chime/chimeos/proto"
	"chime/chimeos/rtttl"
)

type Client struct {
	melodyCap kernel.Capability
}

func New(melodyCap kernel.Capability) *Client {
	return &Client{melodyCap: melodyCap}
}

// Subscribe registers statusCap to receive MsgMelodyStatus updates.
func (c *Client) Subscribe(ctx *kernel.Context, statusCap kernel.Capability) error {
	return c.send(ctx, proto.MsgMelodySubscribe, proto.MelodySubscribePayload(), statusCap)
}

// Play requests playback of a songbook entry.
func (c *Client) Play(ctx *kernel.Context, name string, loop bool) error {
	payload := proto.MelodyPlayPayload(loop, rtttl.DefaultVolume, name)
	return c.send(ctx, proto.MsgMelodyPlay, payload, kernel.Capability{})
}

// Stop cancels the current song.
func (c *Client) Stop(ctx *kernel.Context) error {
	return c.send(ctx, proto.MsgMelodyStop, nil, kernel.Capability{})
}

// SetVolume sets the output level (0..255).
func (c *Client) SetVolume(ctx *kernel.Context, vol uint8) error {
	return c.send(ctx, proto.MsgMelodySetVolume, proto.MelodySetVolumePayload(vol), kernel.Capability{})
}

// send is one attempt; a cooperative caller retries from its next Step
// when the service mailbox is full.
func (c *Client) send(ctx *kernel.Context, kind proto.Kind, payload []byte, xfer kernel.Capability) error {
	if ctx == nil {
		return fmt.Errorf("melody client: nil context for %s", kind)
	}
	if !c.melodyCap.Valid() {
		return fmt.Errorf("melody client: missing capability for %s", kind)
	}
	if res := ctx.SendToCapResult(c.melodyCap, uint16(kind), payload, xfer); res != kernel.SendOK {
		return fmt.Errorf("melody client send %s: %s", kind, res)
	}
	return nil
}
