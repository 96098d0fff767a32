package arena

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
)

// SDC (Sensitive Data Container) owns one arena and one segment, plus an
// ordered list of child SDCs it is responsible for closing.
type SDC struct {
	mu       sync.Mutex
	arena    Arena
	ticket   *Ticket
	segment  *Segment
	bindings []*SDC

	fromData    []byte // retained original input, if ownership was not transferred
	segmentData []byte // heap copy produced by ExportData

	closed bool
	onLog  func(format string, args ...any)
}

// New creates an SDC with a fresh segment of the given size, backed by a
// new heuristically-selected arena.
func New(size int, opts ...Option) (*SDC, error) {
	a, tk := NewArena(opts...)
	seg, err := a.Allocate(size, tk)
	if err != nil {
		return nil, err
	}
	return &SDC{arena: a, ticket: tk, segment: seg}, nil
}

// NewFrom creates an SDC whose segment is initialized from data.
//
// If forceWipe is true, ownership of data transfers to the SDC: data is
// zeroized immediately and the SDC does not retain it as FromData (its
// bytes already live in the SDC's own segment copy). If forceWipe is
// false, the SDC copies data into its segment AND retains the original
// slice as FromData, zeroizing it only when the SDC itself closes.
func NewFrom(data []byte, forceWipe bool, opts ...Option) (*SDC, error) {
	s, err := New(len(data), opts...)
	if err != nil {
		return nil, err
	}
	buf, _ := s.segment.Bytes()
	copy(buf, data)

	if forceWipe {
		SecureWipe(data)
	} else {
		s.fromData = data
	}
	return s, nil
}

// SetLogger installs a logging hook used by Close to report non-fatal
// failures (native-wipe errors, already-closed re-entry). Safe to leave
// unset; defaults to a no-op.
func (s *SDC) SetLogger(fn func(format string, args ...any)) { s.onLog = fn }

func (s *SDC) logf(format string, args ...any) {
	if s.onLog != nil {
		s.onLog(format, args...)
	}
}

// AddContainerDataChild appends an already-constructed child SDC.
func (s *SDC) AddContainerDataChild(child *SDC) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.arena.Alive() {
		return fmt.Errorf("%w: parent SDC closed", ErrAlreadyDisposed)
	}
	s.bindings = append(s.bindings, child)
	return nil
}

// AddContainerDataSize allocates a new child SDC of the given size and
// appends it.
func (s *SDC) AddContainerDataSize(size int, opts ...Option) (*SDC, error) {
	child, err := New(size, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.AddContainerDataChild(child); err != nil {
		child.Close()
		return nil, err
	}
	return child, nil
}

// AddContainerDataBytes allocates a new child SDC from bytes and appends
// it. The bytes are zeroized even if the append is rejected because the
// parent is already closed.
func (s *SDC) AddContainerDataBytes(data []byte, forceWipe bool, opts ...Option) (*SDC, error) {
	s.mu.Lock()
	alive := s.arena.Alive()
	s.mu.Unlock()
	if !alive {
		SecureWipe(data)
		return nil, fmt.Errorf("%w: parent SDC closed", ErrAlreadyDisposed)
	}

	child, err := NewFrom(data, forceWipe)
	if err != nil {
		return nil, err
	}
	if err := s.AddContainerDataChild(child); err != nil {
		child.Close()
		return nil, err
	}
	return child, nil
}

// Get returns the i-th binding, or ok=false if out of range.
func (s *SDC) Get(index int) (*SDC, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.bindings) {
		return nil, false
	}
	return s.bindings[index], true
}

// Bindings returns a defensive copy of the binding list.
func (s *SDC) Bindings() []*SDC {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*SDC, len(s.bindings))
	copy(out, s.bindings)
	return out
}

// ExportData copies the segment into a newly allocated heap buffer stored
// as SegmentData. Deprecated: once bytes reach the managed heap they may be
// relocated by a copying collector, leaving orphan copies that this
// container no longer controls the lifetime of. Strategies should consume
// segments directly; this exists for debugging and legacy callers only.
//
// Deprecated: prefer AsByteBuffer/segment-level access.
func (s *SDC) ExportData() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.arena.Alive() {
		return nil, ErrAlreadyDisposed
	}
	buf, err := s.segment.Bytes()
	if err != nil {
		return nil, err
	}
	cp := make([]byte, len(buf))
	copy(cp, buf)
	s.segmentData = cp

	out := make([]byte, len(cp))
	copy(out, cp)
	return out, nil
}

// GetSegmentData returns a defensive copy of the previously exported data,
// or nil if ExportData was never called.
func (s *SDC) GetSegmentData() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.segmentData == nil {
		return nil
	}
	out := make([]byte, len(s.segmentData))
	copy(out, s.segmentData)
	return out
}

// GetSegmentDataBase64 returns the Base64 encoding of the exported data.
func (s *SDC) GetSegmentDataBase64() string {
	return base64.StdEncoding.EncodeToString(s.GetSegmentData())
}

// AsByteBuffer returns a read-only view of the underlying segment (not a
// copy); it is invalidated the instant the arena closes.
func (s *SDC) AsByteBuffer() ([]byte, error) {
	return s.segment.Bytes()
}

// ZeroingExportedData zeroizes SegmentData in place without closing the SDC.
func (s *SDC) ZeroingExportedData() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.segmentData != nil {
		SecureWipe(s.segmentData)
		s.segmentData = nil
	}
}

// Size returns the backing segment's length.
func (s *SDC) Size() int { return s.segment.Size() }

// Close implements the five-step close algorithm: snapshot bindings under
// lock, release, close children in reverse insertion order outside the
// lock (so a child's re-entrant call into the parent cannot deadlock),
// re-acquire to sweep any late arrivals, then wipe.
func (s *SDC) Close() error {
	s.mu.Lock()
	if !s.arena.Alive() {
		s.mu.Unlock()
		s.logf("entanglement/arena: Close on already-disposed SDC, ignored")
		return nil
	}
	snapshot := s.bindings
	s.bindings = nil
	s.mu.Unlock()

	for i := len(snapshot) - 1; i >= 0; i-- {
		if err := snapshot[i].Close(); err != nil {
			s.logf("entanglement/arena: child close failed: %v", err)
		}
	}

	s.mu.Lock()
	late := s.bindings
	s.bindings = nil
	s.mu.Unlock()

	for i := len(late) - 1; i >= 0; i-- {
		if err := late[i].Close(); err != nil {
			s.logf("entanglement/arena: late child close failed: %v", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.arena.Alive() {
		// Another goroutine won the race to close; nothing left to wipe.
		return nil
	}
	s.segment.wipe()
	if s.fromData != nil {
		SecureWipe(s.fromData)
		s.fromData = nil
	}
	if s.segmentData != nil {
		SecureWipe(s.segmentData)
		s.segmentData = nil
	}
	if err := s.arena.Close(); err != nil {
		s.logf("entanglement/arena: arena close failed: %v", err)
	}
	return nil
}

// GenerateSafeRandomBytes returns n cryptographically random bytes from the
// process CSPRNG. Not a method of SDC, but part of this module.
func GenerateSafeRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("entanglement/arena: random read failed: %w", err)
	}
	return b, nil
}
