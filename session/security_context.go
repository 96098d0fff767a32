package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/entanglement-project/entanglement-core/arena"
	"github.com/entanglement-project/entanglement-core/catalog"
)

// ParticipantSecurityContext holds one participant's session key and
// monotonic sequence counters. NextWriteSequence/NextReadSequence use
// atomic fetch-and-increment so concurrent senders never observe or
// reuse the same sequence number.
type ParticipantSecurityContext struct {
	mu sync.Mutex

	sessionKey       *arena.SDC
	readSequence     atomic.Uint64
	writeSequence    atomic.Uint64
	negotiatedLabel  string
	peerPublicKey    *arena.SDC
	baseIV           []byte
}

// NewParticipantSecurityContext constructs an empty context; SetSessionKey
// populates it once the handshake completes.
func NewParticipantSecurityContext() *ParticipantSecurityContext {
	return &ParticipantSecurityContext{}
}

// SetSessionKey installs the negotiated per-participant key, closing any
// previously held key first.
func (c *ParticipantSecurityContext) SetSessionKey(key *arena.SDC, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessionKey != nil {
		c.sessionKey.Close()
	}
	c.sessionKey = key
	c.negotiatedLabel = label
}

// SetPeerPublicKey records the peer's public key for later inspection
// (e.g. signature verification during the handshake).
func (c *ParticipantSecurityContext) SetPeerPublicKey(pub *arena.SDC) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.peerPublicKey != nil {
		c.peerPublicKey.Close()
	}
	c.peerPublicKey = pub
}

func (c *ParticipantSecurityContext) SessionKey() *arena.SDC {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionKey
}

func (c *ParticipantSecurityContext) PeerPublicKey() *arena.SDC {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.peerPublicKey
}

func (c *ParticipantSecurityContext) NegotiatedLabel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.negotiatedLabel
}

// SetBaseIV installs the per-participant base IV derived once at handshake
// completion; every data-phase record's nonce is
// CalculateNonce(BaseIV(), sequence).
func (c *ParticipantSecurityContext) SetBaseIV(iv []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseIV = append([]byte(nil), iv...)
}

func (c *ParticipantSecurityContext) BaseIV() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.baseIV
}

// NextWriteSequence returns the next sequence number to use for an
// outbound record and advances the counter.
func (c *ParticipantSecurityContext) NextWriteSequence() uint64 {
	return c.writeSequence.Add(1) - 1
}

// NextReadSequence returns the next expected sequence number for an
// inbound record and advances the counter.
func (c *ParticipantSecurityContext) NextReadSequence() uint64 {
	return c.readSequence.Add(1) - 1
}

// Close releases the held keys. Errors are never propagated from a close
// path.
func (c *ParticipantSecurityContext) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessionKey != nil {
		c.sessionKey.Close()
		c.sessionKey = nil
	}
	if c.peerPublicKey != nil {
		c.peerPublicKey.Close()
		c.peerPublicKey = nil
	}
	if c.baseIV != nil {
		arena.SecureWipe(c.baseIV)
		c.baseIV = nil
	}
}

// SessionSecurityContext holds the session-wide master key, optional salt,
// negotiated algorithm choices, and rotation bookkeeping.
type SessionSecurityContext struct {
	mu sync.Mutex

	masterKey         *arena.SDC
	salt              *arena.SDC
	kemType           catalog.KEMType
	sigType           catalog.SignatureType
	classicECDH       bool
	messageCounter    atomic.Uint64
	lastRotationAt    time.Time
	rotationInterval  time.Duration
	initialized       bool
	cleared           bool
}

// NewSessionSecurityContext returns an uninitialized context.
func NewSessionSecurityContext() *SessionSecurityContext {
	return &SessionSecurityContext{}
}

// Initialize is idempotent until Clear is called.
func (c *SessionSecurityContext) Initialize(master, salt *arena.SDC, kem catalog.KEMType, sig catalog.SignatureType, classicECDH bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cleared {
		return ErrSecurityContextCleared
	}
	if c.initialized {
		return nil
	}
	c.masterKey = master
	c.salt = salt
	c.kemType = kem
	c.sigType = sig
	c.classicECDH = classicECDH
	c.lastRotationAt = time.Now()
	c.initialized = true
	return nil
}

// RotateKey atomically swaps in a new master key (and optional salt),
// closing the old ones.
func (c *SessionSecurityContext) RotateKey(newMaster, newSalt *arena.SDC) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cleared {
		return ErrSecurityContextCleared
	}
	if !c.initialized {
		return ErrSecurityContextNotReady
	}
	oldMaster, oldSalt := c.masterKey, c.salt
	c.masterKey = newMaster
	c.salt = newSalt
	c.lastRotationAt = time.Now()
	if oldMaster != nil {
		oldMaster.Close()
	}
	if oldSalt != nil {
		oldSalt.Close()
	}
	return nil
}

// SetRotationInterval configures the periodic rotation interval; zero
// disables rotation.
func (c *SessionSecurityContext) SetRotationInterval(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotationInterval = d
}

// NeedsKeyRotation returns true when the rotation interval has elapsed and
// is configured (> 0).
func (c *SessionSecurityContext) NeedsKeyRotation() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rotationInterval <= 0 || !c.initialized {
		return false
	}
	return time.Since(c.lastRotationAt) >= c.rotationInterval
}

func (c *SessionSecurityContext) MasterKey() *arena.SDC {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.masterKey
}

func (c *SessionSecurityContext) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

func (c *SessionSecurityContext) NextMessageCount() uint64 {
	return c.messageCounter.Add(1)
}

// Clear closes any held key material and marks the context permanently
// cleared. Idempotent; never propagates an error.
func (c *SessionSecurityContext) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cleared {
		return
	}
	if c.masterKey != nil {
		c.masterKey.Close()
		c.masterKey = nil
	}
	if c.salt != nil {
		c.salt.Close()
		c.salt = nil
	}
	c.cleared = true
}
