package kernel

// Context provides task-local access to kernel operations for the
// duration of one Step call.
type Context struct {
	k      *Kernel
	taskID TaskID

	blocked     bool
	blockOnTick bool
	blockOn     Endpoint
}

// TaskID returns the current task ID.
func (c *Context) TaskID() TaskID { return c.taskID }

// Recv pops one message from the capability endpoint. When the mailbox
// is empty it marks the task blocked on that endpoint and returns
// false; the caller must then return from Step and will be stepped
// again once a message arrives.
func (c *Context) Recv(epCap Capability) (Message, bool) {
	if !epCap.allows(RightRecv) {
		return Message{}, false
	}
	msg, ok := c.k.recv(epCap.ep)
	if ok {
		return msg, true
	}
	c.blocked = true
	c.blockOnTick = false
	c.blockOn = epCap.ep
	return Message{}, false
}

// TryRecv pops one message without marking the task blocked.
func (c *Context) TryRecv(epCap Capability) (Message, bool) {
	if !epCap.allows(RightRecv) {
		return Message{}, false
	}
	return c.k.recv(epCap.ep)
}

// BlockOnTick parks the task until kernel time next advances.
func (c *Context) BlockOnTick() {
	c.blocked = true
	c.blockOnTick = true
}

// NowTick returns the last observed tick value.
func (c *Context) NowTick() uint64 { return c.k.now }

// SendTo sends a message to the capability endpoint. The message From
// field is set to 0 (unknown).
func (c *Context) SendTo(toCap Capability, kind uint16, payload []byte) bool {
	return c.SendToCapResult(toCap, kind, payload, Capability{}) == SendOK
}

// SendToCap sends a message and transfers an optional capability.
func (c *Context) SendToCap(toCap Capability, kind uint16, payload []byte, xfer Capability) bool {
	return c.SendToCapResult(toCap, kind, payload, xfer) == SendOK
}

// SendToCapResult sends a message and transfers an optional capability,
// reporting the detailed outcome.
func (c *Context) SendToCapResult(toCap Capability, kind uint16, payload []byte, xfer Capability) SendResult {
	if !toCap.Valid() {
		return SendErrInvalidToCap
	}
	if !toCap.allows(RightSend) {
		return SendErrToNoSendRight
	}
	return c.k.send(0, toCap.ep, kind, payload, xfer)
}
