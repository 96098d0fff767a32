package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session owns a participant map, a role index, and an optional security
// context. Grounded on the teacher's core/session.Manager (RWMutex-guarded
// map, background cleanup) generalized from a flat session-ID map to the
// full Session/Participant/role-index model this core needs.
type Session struct {
	mu sync.RWMutex

	id           string
	createdAt    time.Time
	lastActivity time.Time
	config       Config
	secCtx       *SessionSecurityContext
	state        State

	participants map[string]*Participant
	roleIndex    map[Role]map[string]struct{}

	listenersMu sync.Mutex
	listeners   []EventListener
}

// New creates a session in CREATED state. If id is empty, a fresh UUID is
// generated.
func New(id string, config Config) *Session {
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now()
	return &Session{
		id:           id,
		createdAt:    now,
		lastActivity: now,
		config:       config,
		state:        StateCreated,
		participants: make(map[string]*Participant),
		roleIndex:    make(map[Role]map[string]struct{}),
	}
}

func (s *Session) ID() string            { return s.id }
func (s *Session) CreatedAt() time.Time  { return s.createdAt }

func (s *Session) LastActivity() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActivity
}

// expired reports whether the session has exceeded its configured MaxAge
// or gone idle past IdleTimeout. A zero duration disables that check.
func (s *Session) expired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := time.Now()
	if s.config.MaxAge > 0 && now.Sub(s.createdAt) > s.config.MaxAge {
		return true
	}
	if s.config.IdleTimeout > 0 && now.Sub(s.lastActivity) > s.config.IdleTimeout {
		return true
	}
	return false
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// AddListener registers a listener using copy-on-write so concurrent
// dispatch is never perturbed by a listener mutating the list mid-fire.
func (s *Session) AddListener(l EventListener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	next := make([]EventListener, len(s.listeners)+1)
	copy(next, s.listeners)
	next[len(next)-1] = l
	s.listeners = next
}

func (s *Session) snapshotListeners() []EventListener {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	return s.listeners
}

// AddParticipant rejects unless state is CREATED or ACTIVE, rejects a
// duplicate id, and rejects when MaxParticipants > 0 and the session is
// full. The id map and role index are updated atomically under the write
// lock.
func (s *Session) AddParticipant(p *Participant) error {
	s.mu.Lock()
	if s.state != StateCreated && s.state != StateActive {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if _, exists := s.participants[p.ID()]; exists {
		s.mu.Unlock()
		return ErrDuplicateParticipant
	}
	if s.config.MaxParticipants > 0 && len(s.participants) >= s.config.MaxParticipants {
		s.mu.Unlock()
		return ErrSessionCapacityExceeded
	}
	s.participants[p.ID()] = p
	if s.roleIndex[p.Role()] == nil {
		s.roleIndex[p.Role()] = make(map[string]struct{})
	}
	s.roleIndex[p.Role()][p.ID()] = struct{}{}
	s.mu.Unlock()

	s.touch()
	for _, l := range s.snapshotListeners() {
		l.OnParticipantJoined(s, p)
	}
	return nil
}

// RemoveParticipant removes a participant from both indexes under the
// write lock and fires OnParticipantLeft.
func (s *Session) RemoveParticipant(id string) error {
	s.mu.Lock()
	p, exists := s.participants[id]
	if !exists {
		s.mu.Unlock()
		return ErrParticipantNotFound
	}
	delete(s.participants, id)
	if idx := s.roleIndex[p.Role()]; idx != nil {
		delete(idx, id)
		if len(idx) == 0 {
			delete(s.roleIndex, p.Role())
		}
	}
	s.mu.Unlock()

	for _, l := range s.snapshotListeners() {
		l.OnParticipantLeft(s, p)
	}
	return nil
}

// GetParticipant returns the participant for id, if present.
func (s *Session) GetParticipant(id string) (*Participant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.participants[id]
	return p, ok
}

// GetParticipantsByRole returns a defensive copy of the participants
// holding role; the two indexes never disagree about membership because
// both are mutated together under the same lock.
func (s *Session) GetParticipantsByRole(role Role) []*Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.roleIndex[role]
	out := make([]*Participant, 0, len(ids))
	for id := range ids {
		out = append(out, s.participants[id])
	}
	return out
}

// FindParticipants returns a defensive copy of every participant for which
// predicate returns true.
func (s *Session) FindParticipants(predicate func(*Participant) bool) []*Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Participant
	for _, p := range s.participants {
		if predicate(p) {
			out = append(out, p)
		}
	}
	return out
}

// ParticipantCount returns the number of currently tracked participants.
func (s *Session) ParticipantCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.participants)
}

// SecurityContext returns the session's security context, initializing one
// on first access.
func (s *Session) SecurityContext() *SessionSecurityContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.secCtx == nil {
		s.secCtx = NewSessionSecurityContext()
	}
	return s.secCtx
}

func (s *Session) setState(next State) {
	s.mu.Lock()
	prev := s.state
	s.state = next
	s.mu.Unlock()
	for _, l := range s.snapshotListeners() {
		l.OnStateChanged(s, prev, next)
	}
}

// Activate transitions CREATED|SUSPENDED → ACTIVE.
func (s *Session) Activate() error {
	s.mu.RLock()
	cur := s.state
	s.mu.RUnlock()
	if cur != StateCreated && cur != StateSuspended {
		return ErrInvalidStateTransition
	}
	s.setState(StateActive)
	return nil
}

// Suspend transitions ACTIVE → SUSPENDED.
func (s *Session) Suspend() error {
	s.mu.RLock()
	cur := s.state
	s.mu.RUnlock()
	if cur != StateActive {
		return ErrInvalidStateTransition
	}
	s.setState(StateSuspended)
	return nil
}

// Close follows the same snapshot/release/close pattern as SDC.Close to
// avoid reentrant deadlock with participants' own close:
// CREATED|ACTIVE|SUSPENDED → CLOSING → CLOSED, idempotent thereafter.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.state == StateClosed || s.state == StateTerminated {
		s.mu.Unlock()
		return nil
	}
	if s.state != StateCreated && s.state != StateActive && s.state != StateSuspended {
		s.mu.Unlock()
		return ErrInvalidStateTransition
	}
	s.state = StateClosing
	snapshot := make([]*Participant, 0, len(s.participants))
	for _, p := range s.participants {
		snapshot = append(snapshot, p)
	}
	s.participants = make(map[string]*Participant)
	s.roleIndex = make(map[Role]map[string]struct{})
	secCtx := s.secCtx
	s.mu.Unlock()

	for _, p := range snapshot {
		p.Close()
	}
	if secCtx != nil {
		secCtx.Clear()
	}

	s.setState(StateClosed)
	return nil
}

// Terminate is an unconditional path that clears indexes and the security
// context regardless of current state.
func (s *Session) Terminate() {
	s.mu.Lock()
	snapshot := make([]*Participant, 0, len(s.participants))
	for _, p := range s.participants {
		snapshot = append(snapshot, p)
	}
	s.participants = make(map[string]*Participant)
	s.roleIndex = make(map[Role]map[string]struct{})
	secCtx := s.secCtx
	s.mu.Unlock()

	for _, p := range snapshot {
		p.Close()
	}
	if secCtx != nil {
		secCtx.Clear()
	}
	s.setState(StateTerminated)
}
