// Package proto defines the message kinds and payload codecs used over
// kernel IPC. Payloads are hand-packed little-endian; every decoder
// returns an ok flag instead of an error.
package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgError
	MsgMelodySubscribe
	MsgMelodyPlay
	MsgMelodyStop
	MsgMelodySetVolume
	MsgMelodyStatus
)

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgError:
		return "error"
	case MsgMelodySubscribe:
		return "melody_subscribe"
	case MsgMelodyPlay:
		return "melody_play"
	case MsgMelodyStop:
		return "melody_stop"
	case MsgMelodySetVolume:
		return "melody_set_volume"
	case MsgMelodyStatus:
		return "melody_status"
	default:
		return "unknown"
	}
}

// ErrCode is a generic error category for MsgError responses.
type ErrCode uint16

const (
	ErrUnknown ErrCode = iota
	ErrBadMessage
	ErrNotFound
	ErrBadSong
	ErrInternal
)

func (c ErrCode) String() string {
	switch c {
	case ErrUnknown:
		return "unknown"
	case ErrBadMessage:
		return "bad_message"
	case ErrNotFound:
		return "not_found"
	case ErrBadSong:
		return "bad_song"
	case ErrInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// LogLinePayload encodes a MsgLogLine payload.
//
// Convention:
// - Payload is UTF-8 bytes without a trailing newline.
// - Delivery is best-effort; callers may drop on overflow.
func LogLinePayload(b []byte) []byte {
	if b == nil {
		return nil
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}
