package transport

import (
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/entanglement-project/entanglement-core/arena"
	"github.com/entanglement-project/entanglement-core/catalog"
	"github.com/entanglement-project/entanglement-core/handshake"
	"github.com/entanglement-project/entanglement-core/registry"
	"github.com/entanglement-project/entanglement-core/session"
)

// connHandle tracks one accepted connection's reader/writer goroutines and
// its handshake-in-progress state, keyed by participant id in Reactor.handles.
type connHandle struct {
	conn        net.Conn
	participant *session.Participant
	session     *session.Session
	server      *handshake.ServerState
	deadline    time.Time

	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newConnHandle(conn net.Conn, p *session.Participant, sess *session.Session, server *handshake.ServerState, deadline time.Time) *connHandle {
	return &connHandle{
		conn:        conn,
		participant: p,
		session:     sess,
		server:      server,
		deadline:    deadline,
		wake:        make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
}

func (h *connHandle) signalWrite() {
	select {
	case h.wake <- struct{}{}:
	default:
	}
}

// Reactor is the single-reactor transport server. See the package doc for
// the Go-idiomatic translation of "one event-loop thread" onto this type's
// goroutine discipline.
type Reactor struct {
	sessions *session.Manager
	registry *registry.Registry
	kemType  catalog.KEMType
	events   Events
	cfg      Config

	listener net.Listener
	running  atomic.Bool
	stopCh   chan struct{}
	wg       sync.WaitGroup

	mu               sync.Mutex
	handles          map[string]*connHandle
	defaultSessionID string
}

// New constructs a Reactor bound to sessions and registry, negotiating kemType
// during every handshake. events may be nil, in which case NoopEvents is used.
func New(sessions *session.Manager, reg *registry.Registry, kemType catalog.KEMType, events Events, cfg Config) *Reactor {
	if events == nil {
		events = NoopEvents{}
	}
	return &Reactor{
		sessions: sessions,
		registry: reg,
		kemType:  kemType,
		events:   events,
		cfg:      cfg,
		handles:  make(map[string]*connHandle),
	}
}

// Sessions exposes the underlying session.Manager so callers can create
// additional sessions or inspect participants directly.
func (r *Reactor) Sessions() *session.Manager { return r.sessions }

// defaultSession lazily creates the reactor's default session, the one new
// connections join absent any out-of-band session-selection mechanism.
// The reactor supports multiple concurrent sessions, so Sessions() remains
// the path to additional, explicitly-created sessions.
func (r *Reactor) defaultSession() (*session.Session, error) {
	r.mu.Lock()
	id := r.defaultSessionID
	r.mu.Unlock()

	if id != "" {
		if s, ok := r.sessions.GetSession(id); ok {
			return s, nil
		}
	}
	s, err := r.sessions.CreateSession("")
	if err != nil {
		return nil, err
	}
	if err := s.Activate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.defaultSessionID = s.ID()
	r.mu.Unlock()
	return s, nil
}

// Serve binds addr and starts the accept loop, the per-connection
// reader/writer goroutines it spawns, and the two timeout-sweep goroutines
// (handshake sweep every HandshakeSweepInterval, session sweep every
// SessionSweepInterval).
func (r *Reactor) Serve(addr string) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrReactorRunning
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		r.running.Store(false)
		return err
	}
	r.listener = ln
	r.stopCh = make(chan struct{})
	arena.MarkServerContext()

	r.wg.Add(3)
	go r.acceptLoop()
	go r.sweepLoop(r.cfg.HandshakeSweepInterval, r.sweepHandshakeTimeouts)
	go r.sweepLoop(r.cfg.SessionSweepInterval, r.sessions.Sweep)
	return nil
}

// Addr returns the listener's bound address; only valid after Serve.
func (r *Reactor) Addr() net.Addr {
	if r.listener == nil {
		return nil
	}
	return r.listener.Addr()
}

func (r *Reactor) acceptLoop() {
	defer r.wg.Done()
	for {
		conn, err := r.listener.Accept()
		if err != nil {
			if !r.running.Load() {
				return
			}
			r.events.OnServerError(nil, err)
			continue
		}
		r.wg.Add(1)
		go r.handleConn(conn)
	}
}

func (r *Reactor) sweepLoop(interval time.Duration, fn func()) {
	defer r.wg.Done()
	if interval <= 0 {
		<-r.stopCh
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			fn()
		case <-r.stopCh:
			return
		}
	}
}

func (r *Reactor) sweepHandshakeTimeouts() {
	now := time.Now()
	r.mu.Lock()
	var stale []*connHandle
	for _, h := range r.handles {
		if h.participant.State() == session.ParticipantHandshaking && now.After(h.deadline) {
			stale = append(stale, h)
		}
	}
	r.mu.Unlock()
	for _, h := range stale {
		r.events.OnServerError(h.participant, handshake.ErrHandshakeTimeout)
		r.closeHandle(h)
	}
}

// handleConn accepts one connection through to its terminal state: create
// the participant, run the reader goroutine inline (so Accept's goroutine
// count matches connection count), and spawn the writer goroutine.
func (r *Reactor) handleConn(conn net.Conn) {
	defer r.wg.Done()

	sess, err := r.defaultSession()
	if err != nil {
		r.events.OnServerError(nil, err)
		conn.Close()
		return
	}

	p := session.NewParticipant(uuid.NewString(), session.RoleResponder, conn.RemoteAddr().String(), r.cfg.InboundBufferSize)
	if err := sess.AddParticipant(p); err != nil {
		r.events.OnServerError(p, err)
		conn.Close()
		return
	}
	if err := p.SetState(session.ParticipantHandshaking); err != nil {
		r.events.OnServerError(p, err)
		sess.RemoveParticipant(p.ID())
		conn.Close()
		return
	}

	kem, err := r.registry.KEM(r.kemType)
	if err != nil {
		r.events.OnServerError(p, err)
		sess.RemoveParticipant(p.ID())
		p.Close()
		conn.Close()
		return
	}

	h := newConnHandle(conn, p, sess, handshake.NewServer(kem), time.Now().Add(r.cfg.HandshakeTimeout))
	r.track(h)
	defer r.untrack(h)

	r.events.OnClientConnected(p)

	r.wg.Add(1)
	go r.writerLoop(h)

	r.readerLoop(h)
}

func (r *Reactor) readerLoop(h *connHandle) {
	buf := make([]byte, r.cfg.ReadChunkSize)
	for {
		n, err := h.conn.Read(buf)
		if n > 0 {
			h.participant.AppendInbound(buf[:n])
			if derr := r.dispatch(h); derr != nil {
				r.events.OnServerError(h.participant, derr)
				r.closeHandle(h)
				return
			}
		}
		if err != nil {
			r.closeHandle(h)
			return
		}
	}
}

func (r *Reactor) writerLoop(h *connHandle) {
	defer r.wg.Done()
	for {
		select {
		case <-h.wake:
		case <-h.done:
			return
		}
		for {
			drained, err := h.participant.FlushOutbound(func(b []byte) (int, error) {
				return h.conn.Write(b)
			})
			if err != nil {
				r.closeHandle(h)
				return
			}
			if drained {
				break
			}
			// The kernel accepted a partial write; keep draining the queue
			// until a write would block.
		}
	}
}

// dispatch demultiplexes on participant state: HANDSHAKING frames go
// through the handshake state machine, ESTABLISHED frames are decrypted
// data records.
func (r *Reactor) dispatch(h *connHandle) error {
	switch h.participant.State() {
	case session.ParticipantHandshaking:
		return r.dispatchHandshake(h)
	case session.ParticipantEstablished:
		return r.dispatchData(h)
	default:
		return nil
	}
}

func (r *Reactor) dispatchHandshake(h *connHandle) error {
	for {
		buf := h.participant.PeekInbound()
		if len(buf) == 0 {
			return nil
		}
		typ, err := handshake.PeekType(buf)
		if err != nil {
			return nil
		}

		switch typ {
		case handshake.TypeClientHello:
			resp, consumed, err := h.server.ProcessClientHello(buf)
			if err != nil {
				if errors.Is(err, handshake.ErrIncompleteFrame) {
					return nil
				}
				return err
			}
			h.participant.DrainInbound(consumed)
			h.participant.EnqueueOutbound(resp)
			h.signalWrite()

		case handshake.TypeFinished:
			consumed, err := h.server.ProcessFinished(buf)
			if err != nil {
				if errors.Is(err, handshake.ErrIncompleteFrame) {
					return nil
				}
				return err
			}
			h.participant.DrainInbound(consumed)
			if err := r.completeHandshake(h); err != nil {
				return err
			}
			// Bytes that followed Finished in the same read are data records.
			return r.dispatchData(h)

		default:
			return handshake.ErrUnexpectedMessage
		}
	}
}

func (r *Reactor) completeHandshake(h *connHandle) error {
	shared, ok := h.server.SharedSecret()
	if !ok {
		return handshake.ErrUnexpectedMessage
	}
	sharedBytes, err := shared.AsByteBuffer()
	if err != nil {
		shared.Close()
		return err
	}
	key, baseIV, err := handshake.DeriveSessionKeys(sharedBytes)
	shared.Close()
	h.server.Close()
	if err != nil {
		return err
	}

	secCtx := h.participant.SecurityContext()
	secCtx.SetSessionKey(key, string(r.kemType))
	secCtx.SetBaseIV(baseIV)

	if err := h.participant.SetState(session.ParticipantEstablished); err != nil {
		return err
	}
	r.events.OnHandshakeComplete(h.participant)
	return nil
}

func (r *Reactor) dispatchData(h *connHandle) error {
	for {
		buf := h.participant.PeekInbound()
		ciphertext, consumed, err := decodeDataFrame(buf)
		if err != nil {
			if errors.Is(err, errIncompleteFrame) {
				return nil
			}
			return err
		}
		h.participant.DrainInbound(consumed)

		plaintext, err := decryptRecord(h.participant.SecurityContext(), ciphertext)
		if err != nil {
			return err
		}
		r.events.OnDataReceived(h.participant, plaintext)
	}
}

func (r *Reactor) track(h *connHandle) {
	r.mu.Lock()
	r.handles[h.participant.ID()] = h
	r.mu.Unlock()
}

func (r *Reactor) untrack(h *connHandle) {
	r.mu.Lock()
	delete(r.handles, h.participant.ID())
	r.mu.Unlock()
}

// closeHandle tears a connection down exactly once: close the socket, wake
// (and let exit) the writer goroutine, remove the participant from its
// session, and close the participant (idempotent, never fails). Safe to
// call from the reader goroutine, the handshake sweep, or Stop.
func (r *Reactor) closeHandle(h *connHandle) {
	h.closeOnce.Do(func() {
		close(h.done)
		h.conn.Close()
		_ = h.participant.SetState(session.ParticipantClosing)
		h.session.RemoveParticipant(h.participant.ID())
		h.participant.Close()
		r.untrack(h)
		r.events.OnParticipantClosed(h.participant)
	})
}

// Stop transitions the reactor to stopped, closes the listener (unblocking
// Accept), closes every tracked connection, waits for all goroutines, and
// closes the session manager (which closes every session and, transitively,
// every remaining participant).
func (r *Reactor) Stop() error {
	if !r.running.CompareAndSwap(true, false) {
		return nil
	}
	close(r.stopCh)
	if r.listener != nil {
		r.listener.Close()
	}

	r.mu.Lock()
	handles := make([]*connHandle, 0, len(r.handles))
	for _, h := range r.handles {
		handles = append(handles, h)
	}
	r.mu.Unlock()
	for _, h := range handles {
		r.closeHandle(h)
	}

	r.wg.Wait()
	return r.sessions.Close()
}
