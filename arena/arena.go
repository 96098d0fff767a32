// Package arena implements scoped off-heap-style memory regions and the
// Sensitive Data Container (SDC) that owns segments drawn from them.
//
// Go has no user-visible managed/unmanaged heap split, so "off-heap" here
// means "a byte slice whose lifetime is governed by an explicit Close, with
// a guaranteed wipe on teardown" rather than memory outside the garbage
// collector's view.
package arena

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Mode selects how an Arena is shared across goroutines.
type Mode int

const (
	// Confined arenas may only be used through the Ticket returned by
	// NewArena; presenting any other ticket (or none) fails with
	// ErrWrongThread. This is the Go-idiomatic substitute for JVM
	// thread-confinement checks: Go exposes no portable goroutine-id API,
	// so confinement is enforced by capability (the Ticket) rather than by
	// runtime introspection.
	Confined Mode = iota
	// Shared arenas may be used from any goroutine, at the cost of every
	// allocation taking a mutex.
	Shared
)

func (m Mode) String() string {
	if m == Shared {
		return "shared"
	}
	return "confined"
}

// Ticket is the capability a Confined arena hands back at construction.
// Every subsequent call must present the same ticket.
type Ticket struct{ _ int }

// Arena is a scoped memory region. Segments allocated from it become invalid
// the instant Close returns.
type Arena interface {
	// Allocate returns a new zero-initialized Segment of n bytes.
	Allocate(n int, tk *Ticket) (*Segment, error)
	// Close invalidates all segments drawn from this arena. Idempotent.
	Close() error
	// Alive reports whether the arena has not yet been closed.
	Alive() bool
	// Mode reports Confined or Shared.
	Mode() Mode
	// Ticket returns the capability required to use a Confined arena; nil
	// for Shared arenas (any ticket, including nil, is accepted).
	Ticket() *Ticket
}

type baseArena struct {
	alive int32 // atomic bool
	mode  Mode
	tk    *Ticket
	mu    sync.Mutex // only used by sharedArena allocation path
}

func (a *baseArena) Alive() bool { return atomic.LoadInt32(&a.alive) == 1 }
func (a *baseArena) Mode() Mode  { return a.mode }
func (a *baseArena) Ticket() *Ticket {
	if a.mode == Shared {
		return nil
	}
	return a.tk
}

func (a *baseArena) checkTicket(tk *Ticket) error {
	if a.mode == Confined && tk != a.tk {
		return ErrWrongThread
	}
	return nil
}

func (a *baseArena) Close() error {
	atomic.StoreInt32(&a.alive, 0)
	return nil
}

// confinedArena is a baseArena with Confined semantics; allocation needs no
// lock because only the ticket holder is expected to call it, matching a
// JVM confined Arena's single-thread contract.
type confinedArena struct{ baseArena }

func (a *confinedArena) Allocate(n int, tk *Ticket) (*Segment, error) {
	if !a.Alive() {
		return nil, ErrAlreadyDisposed
	}
	if err := a.checkTicket(tk); err != nil {
		return nil, err
	}
	return newSegment(a, n), nil
}

// sharedArena allows allocation from any goroutine under a mutex.
type sharedArena struct{ baseArena }

func (a *sharedArena) Allocate(n int, tk *Ticket) (*Segment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.Alive() {
		return nil, ErrAlreadyDisposed
	}
	return newSegment(a, n), nil
}

// Option configures NewArena.
type Option func(*options)

type options struct {
	mode    *Mode
	serverCtx bool
}

// WithMode forces Confined or Shared, overriding the heuristic.
func WithMode(m Mode) Option {
	return func(o *options) { o.mode = &m }
}

// serverSentinel, once set via MarkServerContext, makes the heuristic
// factory default every subsequently created arena to Shared — the
// Go-idiomatic analogue of "presence of an async/server-framework sentinel
// forces shared". The transport reactor calls this once at startup.
var serverSentinel int32

// MarkServerContext records that a non-blocking transport reactor is active
// in this process, so the arena heuristic factory defaults to Shared mode.
func MarkServerContext() { atomic.StoreInt32(&serverSentinel, 1) }

// serverContextActive reports whether MarkServerContext has been called.
func serverContextActive() bool { return atomic.LoadInt32(&serverSentinel) == 1 }

// NewArena opens a new arena and returns it along with the Ticket required
// to use it if it ended up Confined (nil if Shared). The heuristic: an
// explicit WithMode wins; otherwise a prior MarkServerContext call forces
// Shared; otherwise Confined.
func NewArena(opts ...Option) (Arena, *Ticket) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	mode := Confined
	switch {
	case o.mode != nil:
		mode = *o.mode
	case serverContextActive():
		mode = Shared
	}

	switch mode {
	case Shared:
		a := &sharedArena{baseArena{alive: 1, mode: Shared}}
		return a, nil
	default:
		tk := &Ticket{}
		a := &confinedArena{baseArena{alive: 1, mode: Confined, tk: tk}}
		return a, tk
	}
}

// SecureWipe overwrites buf with zeros. It is the Go substitute for the
// native ABI's entanglement_secure_wipe(buf_ptr, len) symbol: there is no
// dlopen'd native library to call into, so the wipe is done
// in-process and runtime.KeepAlive pins buf past the final write so the
// compiler cannot prove the store dead and elide it.
func SecureWipe(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}
