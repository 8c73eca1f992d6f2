package proto

// MelodyState is the playback state reported by MsgMelodyStatus.
type MelodyState uint8

const (
	MelodyStopped MelodyState = iota
	MelodyPlaying
)

func (s MelodyState) String() string {
	switch s {
	case MelodyStopped:
		return "stopped"
	case MelodyPlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// MelodySubscribePayload encodes a subscription request.
//
// The request payload is empty; the sender provides an endpoint
// capability in msg.Cap to receive MsgMelodyStatus updates.
func MelodySubscribePayload() []byte { return nil }

// MelodyPlayPayload encodes a play request for a songbook entry.
//
// Layout:
//   - u8: flags (bit0=loop)
//   - u8: volume
//   - bytes: UTF-8 song name
func MelodyPlayPayload(loop bool, volume uint8, name string) []byte {
	n := []byte(name)
	buf := make([]byte, 2+len(n))
	if loop {
		buf[0] = 1
	}
	buf[1] = volume
	copy(buf[2:], n)
	return buf
}

// DecodeMelodyPlayPayload decodes a MelodyPlayPayload.
func DecodeMelodyPlayPayload(b []byte) (loop bool, volume uint8, name string, ok bool) {
	if len(b) < 2 {
		return false, 0, "", false
	}
	loop = (b[0] & 1) != 0
	return loop, b[1], string(b[2:]), true
}

// MelodySetVolumePayload encodes volume (0..255).
func MelodySetVolumePayload(vol uint8) []byte { return []byte{vol} }

// DecodeMelodySetVolumePayload decodes a MelodySetVolumePayload.
func DecodeMelodySetVolumePayload(b []byte) (vol uint8, ok bool) {
	if len(b) != 1 {
		return 0, false
	}
	return b[0], true
}

// MelodyStatusPayload encodes playback status.
//
// Layout:
//   - u8: state (MelodyState)
//   - u8: volume
//   - bytes: UTF-8 name of the current (or last) song
func MelodyStatusPayload(state MelodyState, volume uint8, name string) []byte {
	n := []byte(name)
	buf := make([]byte, 2+len(n))
	buf[0] = uint8(state)
	buf[1] = volume
	copy(buf[2:], n)
	return buf
}

// DecodeMelodyStatusPayload decodes a MelodyStatusPayload.
func DecodeMelodyStatusPayload(b []byte) (state MelodyState, volume uint8, name string, ok bool) {
	if len(b) < 2 {
		return 0, 0, "", false
	}
	return MelodyState(b[0]), b[1], string(b[2:]), true
}
