package session

import (
	"sync"
	"time"
)

// Manager owns every concurrently active Session, keyed by session ID, and
// sweeps idle/expired ones on a ticker. Grounded on the teacher's
// core/session.Manager (RWMutex-guarded map, 30s cleanup ticker,
// stopCleanup channel), adapted from a flat secret-backed Session to the
// full participant/role-index Session of this package.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	defaultConfig Config
	sweepInterval time.Duration
	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
	stopOnce      sync.Once
}

// NewManager starts a manager with a background sweep every interval. A
// non-positive interval disables the background sweep; callers may still
// invoke Sweep directly.
func NewManager(defaultConfig Config, sweepInterval time.Duration) *Manager {
	m := &Manager{
		sessions:      make(map[string]*Session),
		defaultConfig: defaultConfig,
		sweepInterval: sweepInterval,
		stopCleanup:   make(chan struct{}),
	}
	if sweepInterval > 0 {
		m.cleanupTicker = time.NewTicker(sweepInterval)
		go m.runCleanup()
	}
	return m
}

func (m *Manager) runCleanup() {
	for {
		select {
		case <-m.cleanupTicker.C:
			m.Sweep()
		case <-m.stopCleanup:
			return
		}
	}
}

// CreateSession creates and registers a new session under id. If id is
// empty a UUID is generated by Session.New. Returns ErrDuplicateParticipant's
// session-level sibling if id is already in use.
func (m *Manager) CreateSession(id string) (*Session, error) {
	return m.CreateSessionWithConfig(id, m.defaultConfig)
}

func (m *Manager) CreateSessionWithConfig(id string, config Config) (*Session, error) {
	s := New(id, config)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[s.ID()]; exists {
		return nil, ErrDuplicateSession
	}
	m.sessions[s.ID()] = s
	return s, nil
}

// GetSession returns the session for id, evicting and reporting "not
// found" if it has aged out per its own config.
func (m *Manager) GetSession(id string) (*Session, bool) {
	m.mu.RLock()
	s, exists := m.sessions[id]
	m.mu.RUnlock()
	if !exists {
		return nil, false
	}
	if s.expired() {
		m.RemoveSession(id)
		return nil, false
	}
	return s, true
}

// RemoveSession closes and forgets the session for id, if present.
func (m *Manager) RemoveSession(id string) {
	m.mu.Lock()
	s, exists := m.sessions[id]
	if exists {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if exists {
		s.Close()
	}
}

// ListSessionIDs returns every currently tracked session ID.
func (m *Manager) ListSessionIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}

func (m *Manager) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes every expired or idle-timed-out session. Runs
// automatically on sweepInterval when one was configured.
func (m *Manager) Sweep() {
	m.mu.RLock()
	var stale []string
	for id, s := range m.sessions {
		if s.expired() {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range stale {
		m.RemoveSession(id)
	}
}

// Close stops the background sweep and closes every managed session.
func (m *Manager) Close() error {
	m.stopOnce.Do(func() {
		close(m.stopCleanup)
		if m.cleanupTicker != nil {
			m.cleanupTicker.Stop()
		}
	})

	m.mu.Lock()
	snapshot := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		snapshot = append(snapshot, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range snapshot {
		s.Close()
	}
	return nil
}
