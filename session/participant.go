package session

import (
	"sync"
	"time"
)

// outboundSlice is one queued write with a per-slice read position so a
// partial kernel write resumes where it stopped.
type outboundSlice struct {
	data []byte
	pos  int
}

func (s *outboundSlice) remaining() []byte { return s.data[s.pos:] }
func (s *outboundSlice) advance(n int)     { s.pos += n }
func (s *outboundSlice) done() bool        { return s.pos >= len(s.data) }

// Participant is one endpoint of a session, distinct from the underlying
// channel. Its outbound queue is produced by any number of application
// goroutines and consumed only by the transport reactor's single
// event-loop goroutine; a mutex stands in for a lock-free MPSC queue,
// since a correctly-synchronized mutex queue has the same observable
// FIFO semantics for this core's purposes.
type Participant struct {
	mu sync.Mutex

	id            string
	role          Role
	connectedAt   time.Time
	remoteAddr    string
	inbound       []byte
	inboundCap    int
	outboundQueue []*outboundSlice
	secCtx        *ParticipantSecurityContext
	state         ParticipantState
	lastActivity  time.Time
}

// NewParticipant constructs a participant in CONNECTING state with a fresh
// security context and an inbound buffer of the configured capacity.
func NewParticipant(id string, role Role, remoteAddr string, inboundCap int) *Participant {
	now := time.Now()
	return &Participant{
		id:           id,
		role:         role,
		connectedAt:  now,
		remoteAddr:   remoteAddr,
		inboundCap:   inboundCap,
		secCtx:       NewParticipantSecurityContext(),
		state:        ParticipantConnecting,
		lastActivity: now,
	}
}

// LastActivity reports when the participant last sent or received data,
// for the transport reactor's idle-timeout sweep.
func (p *Participant) LastActivity() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastActivity
}

func (p *Participant) touchActivity() {
	p.lastActivity = time.Now()
}

func (p *Participant) ID() string               { return p.id }
func (p *Participant) Role() Role                { return p.role }
func (p *Participant) ConnectedAt() time.Time    { return p.connectedAt }
func (p *Participant) RemoteAddr() string        { return p.remoteAddr }
func (p *Participant) SecurityContext() *ParticipantSecurityContext { return p.secCtx }

func (p *Participant) State() ParticipantState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// validTransitions enforces the monotonic participant state machine, with
// re-entry into CLOSED permitted (idempotent close).
var validTransitions = map[ParticipantState][]ParticipantState{
	ParticipantConnecting:  {ParticipantHandshaking, ParticipantClosing, ParticipantClosed},
	ParticipantHandshaking: {ParticipantEstablished, ParticipantClosing, ParticipantClosed},
	ParticipantEstablished: {ParticipantClosing, ParticipantClosed},
	ParticipantClosing:     {ParticipantClosed},
	ParticipantClosed:      {ParticipantClosed},
}

// SetState applies a state transition, rejecting anything not reachable
// from the current state.
func (p *Participant) SetState(next ParticipantState) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, allowed := range validTransitions[p.state] {
		if allowed == next {
			p.state = next
			return nil
		}
	}
	return ErrInvalidStateTransition
}

// EnqueueOutbound appends data to the outbound FIFO. Safe for concurrent
// callers; per-caller call order is preserved.
func (p *Participant) EnqueueOutbound(data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.outboundQueue = append(p.outboundQueue, &outboundSlice{data: data})
	p.touchActivity()
}

// FlushOutbound drains as much of the outbound queue as writeFn accepts:
// peek the head, write what it accepts; if bytes remain, stop and keep
// the slice at the head; otherwise dequeue and continue. Returns true
// once the queue is fully drained.
func (p *Participant) FlushOutbound(writeFn func([]byte) (int, error)) (drained bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.outboundQueue) > 0 {
		head := p.outboundQueue[0]
		n, werr := writeFn(head.remaining())
		if n > 0 {
			head.advance(n)
		}
		if werr != nil {
			return false, werr
		}
		if !head.done() {
			return false, nil
		}
		p.outboundQueue = p.outboundQueue[1:]
	}
	return true, nil
}

// OutboundQueueLength reports how many slices remain queued.
func (p *Participant) OutboundQueueLength() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.outboundQueue)
}

// AppendInbound appends data read from the channel into the inbound
// buffer, up to its configured capacity.
func (p *Participant) AppendInbound(data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inbound = append(p.inbound, data...)
	if p.inboundCap > 0 && len(p.inbound) > p.inboundCap {
		p.inbound = p.inbound[len(p.inbound)-p.inboundCap:]
	}
	p.touchActivity()
}

// DrainInbound removes the consumed prefix of length n (capped at the
// buffered length) from the inbound buffer and returns a copy of it.
func (p *Participant) DrainInbound(n int) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n > len(p.inbound) {
		n = len(p.inbound)
	}
	out := append([]byte(nil), p.inbound[:n]...)
	p.inbound = p.inbound[n:]
	return out
}

func (p *Participant) InboundLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.inbound)
}

// PeekInbound returns a copy of the unconsumed inbound bytes without
// draining them, so a caller can attempt to parse a frame and only call
// DrainInbound once it knows how many bytes the frame actually consumed
// (the same mark/reset parsing discipline readField applies).
func (p *Participant) PeekInbound() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]byte, len(p.inbound))
	copy(out, p.inbound)
	return out
}

// Close transitions the participant to CLOSED and releases its security
// context. Idempotent; never fails.
func (p *Participant) Close() {
	p.mu.Lock()
	p.state = ParticipantClosed
	p.mu.Unlock()
	p.secCtx.Close()
}
