// Package logger is the sending side of the log service.
package logger

import (
	"chime/chimeos/kernel"
	"chime/chimeos/proto"
)

// Log sends a log line to the logger service.
//
// The call is best-effort: it may drop on queue full.
func Log(ctx *kernel.Context, logCap kernel.Capability, line string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	b := []byte(line)
	if len(b) > kernel.MaxMessageBytes {
		b = b[:kernel.MaxMessageBytes]
	}
	return ctx.SendToCapResult(logCap, uint16(proto.MsgLogLine), proto.LogLinePayload(b), kernel.Capability{})
}
