// Package kernel is a minimal cooperative scheduler plus IPC router.
//
// Tasks are stepped one at a time from a single external loop, so no
// task may block: a task that has nothing to do marks itself waiting
// (on an endpoint or on the next tick) and returns from Step.
package kernel

const (
	maxTasks     = 16
	maxEndpoints = 16
	mailboxSlots = 8
)

type TaskID uint8

// Rights select which mailbox operations a capability permits.
type Rights uint8

const (
	RightSend Rights = 1 << iota
	RightRecv
)

// Endpoint names one mailbox inside a kernel instance.
type Endpoint uint8

// Capability is an unforgeable handle onto an endpoint: holders can do
// exactly what its rights allow, and a zero Capability allows nothing.
// Capabilities move between tasks only inside messages.
type Capability struct {
	ep     Endpoint
	rights Rights
}

// Valid reports whether the capability refers to an endpoint at all.
func (c Capability) Valid() bool { return c.rights != 0 }

// allows reports whether every right in r is present.
func (c Capability) allows(r Rights) bool { return c.rights&r == r }

// Restrict derives a weaker capability carrying only the rights present
// in both c and rights. When nothing remains the result is the zero
// Capability.
func (c Capability) Restrict(rights Rights) Capability {
	kept := c.rights & rights
	if kept == 0 {
		return Capability{}
	}
	return Capability{ep: c.ep, rights: kept}
}

// MaxMessageBytes is the maximum payload size for IPC messages. It is
// sized so that a full ringtone string fits in one message.
const MaxMessageBytes = 256

// Message is a fixed-size IPC envelope.
type Message struct {
	From Endpoint
	To   Endpoint
	Kind uint16
	Len  uint16
	Data [MaxMessageBytes]byte
	Cap  Capability
}

// Payload returns the used portion of the message data.
func (m *Message) Payload() []byte { return m.Data[:m.Len] }

// SendResult describes the outcome of a send attempt.
type SendResult uint8

const (
	SendOK SendResult = iota
	SendErrInvalidFromCap
	SendErrInvalidToCap
	SendErrFromNoSendRight
	SendErrToNoSendRight
	SendErrNoEndpoint
	SendErrPayloadTooLarge
	SendErrQueueFull
)

var sendResultNames = [...]string{
	SendOK:                 "ok",
	SendErrInvalidFromCap:  "invalid from capability",
	SendErrInvalidToCap:    "invalid to capability",
	SendErrFromNoSendRight: "from capability has no send right",
	SendErrToNoSendRight:   "to capability has no send right",
	SendErrNoEndpoint:      "no such endpoint",
	SendErrPayloadTooLarge: "payload too large",
	SendErrQueueFull:       "queue full",
}

func (r SendResult) String() string {
	if int(r) < len(sendResultNames) {
		return sendResultNames[r]
	}
	return "unknown"
}

// Task is a cooperative unit of execution.
type Task interface {
	Step(*Context)
}

// mailbox is a tiny fixed-size FIFO. Single stepping context, so no
// synchronization.
type mailbox struct {
	head  uint8
	tail  uint8
	slots [mailboxSlots]Message
}

func (mb *mailbox) push(msg Message) bool {
	if mb.head-mb.tail >= mailboxSlots {
		return false
	}
	mb.slots[mb.head%mailboxSlots] = msg
	mb.head++
	return true
}

func (mb *mailbox) pop() (Message, bool) {
	if mb.tail == mb.head {
		return Message{}, false
	}
	msg := mb.slots[mb.tail%mailboxSlots]
	mb.tail++
	return msg, true
}

type endpointState struct {
	q        mailbox
	waitMask uint32
}

type taskState struct {
	task     Task
	runnable bool
	waiting  Endpoint
}

// Kernel routes messages between endpoints and steps tasks round-robin.
type Kernel struct {
	endpoints     [maxEndpoints]endpointState
	endpointCount Endpoint

	tasks     [maxTasks]taskState
	taskCount TaskID

	rr TaskID

	now          uint64
	tickWaitMask uint32
}

// New creates a kernel instance.
func New() *Kernel {
	return &Kernel{}
}

// NewEndpoint allocates a new endpoint and returns a capability for it.
func (k *Kernel) NewEndpoint(rights Rights) Capability {
	if k.endpointCount >= maxEndpoints {
		return Capability{}
	}
	ep := k.endpointCount
	k.endpointCount++
	return Capability{ep: ep, rights: rights}
}

// AddTask registers a task and returns its ID.
func (k *Kernel) AddTask(t Task) TaskID {
	if k.taskCount >= maxTasks {
		return 0
	}
	id := k.taskCount
	k.taskCount++
	k.tasks[id] = taskState{task: t, runnable: true}
	return id
}

// Step runs at most one runnable task step and reports whether any task
// was runnable.
func (k *Kernel) Step() bool {
	if k.taskCount == 0 {
		return false
	}

	for i := TaskID(0); i < k.taskCount; i++ {
		id := (k.rr + i) % k.taskCount
		st := &k.tasks[id]
		if st.task == nil || !st.runnable {
			continue
		}

		k.rr = (id + 1) % k.taskCount
		ctx := &Context{k: k, taskID: id}
		st.task.Step(ctx)

		if ctx.blocked {
			st.runnable = false
			if ctx.blockOnTick {
				k.tickWaitMask |= 1 << id
			} else {
				st.waiting = ctx.blockOn
				if st.waiting < k.endpointCount {
					k.endpoints[st.waiting].waitMask |= 1 << id
				}
			}
		}
		return true
	}
	return false
}

// Now returns the last observed tick value.
func (k *Kernel) Now() uint64 { return k.now }

// TickTo advances kernel time to seq and wakes tasks blocked via
// Context.BlockOnTick. Stale sequence numbers are ignored.
func (k *Kernel) TickTo(seq uint64) {
	if seq <= k.now {
		return
	}
	k.now = seq

	wait := k.tickWaitMask
	if wait == 0 {
		return
	}
	for tid := TaskID(0); tid < k.taskCount; tid++ {
		if wait&(1<<tid) == 0 {
			continue
		}
		k.tasks[tid].runnable = true
	}
	k.tickWaitMask = 0
}

func (k *Kernel) send(from Endpoint, to Endpoint, kind uint16, payload []byte, xfer Capability) SendResult {
	if to >= k.endpointCount {
		return SendErrNoEndpoint
	}
	if len(payload) > MaxMessageBytes {
		return SendErrPayloadTooLarge
	}

	var msg Message
	msg.From = from
	msg.To = to
	msg.Kind = kind
	msg.Len = uint16(len(payload))
	copy(msg.Data[:], payload)
	msg.Cap = xfer

	ep := &k.endpoints[to]
	if !ep.q.push(msg) {
		return SendErrQueueFull
	}

	wait := ep.waitMask
	if wait == 0 {
		return SendOK
	}
	for tid := TaskID(0); tid < k.taskCount; tid++ {
		if wait&(1<<tid) == 0 {
			continue
		}
		k.tasks[tid].runnable = true
		ep.waitMask &^= 1 << tid
	}
	return SendOK
}

func (k *Kernel) recv(from Endpoint) (Message, bool) {
	if from >= k.endpointCount {
		return Message{}, false
	}
	return k.endpoints[from].q.pop()
}
