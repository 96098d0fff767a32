// Package session implements Session, Participant, and two security
// context types: ParticipantSecurityContext (per-connection key +
// sequence counters) and SessionSecurityContext (session-wide master
// key + rotation). Grounded on the teacher's
// core/session package (Manager's RWMutex-guarded map and cleanup ticker,
// Session's lifecycle surface), generalized from a single encrypted-channel
// abstraction to the spec's participant/role/state model.
package session

import "errors"

var (
	ErrSessionClosed            = errors.New("session: session is closed")
	ErrSessionCapacityExceeded  = errors.New("session: max participants reached")
	ErrDuplicateParticipant     = errors.New("session: participant id already present")
	ErrParticipantNotFound      = errors.New("session: participant not found")
	ErrInvalidStateTransition   = errors.New("session: invalid state transition")
	ErrSecurityContextNotReady  = errors.New("session: security context not initialized")
	ErrSecurityContextCleared   = errors.New("session: security context already cleared")
	ErrDuplicateSession         = errors.New("session: session id already present in manager")
)
