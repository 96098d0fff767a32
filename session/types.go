package session

import "time"

// Role is a participant's position in the session.
type Role string

const (
	RoleInitiator Role = "INITIATOR"
	RoleResponder Role = "RESPONDER"
	RoleObserver  Role = "OBSERVER"
	RoleCustom    Role = "CUSTOM"
)

// ParticipantState is a participant's connection lifecycle state. State
// transitions are monotonic except re-use of the terminal CLOSED state.
type ParticipantState string

const (
	ParticipantConnecting  ParticipantState = "CONNECTING"
	ParticipantHandshaking ParticipantState = "HANDSHAKING"
	ParticipantEstablished ParticipantState = "ESTABLISHED"
	ParticipantClosing     ParticipantState = "CLOSING"
	ParticipantClosed      ParticipantState = "CLOSED"
)

// State is a Session's lifecycle state.
type State string

const (
	StateCreated     State = "CREATED"
	StateActive      State = "ACTIVE"
	StateSuspended   State = "SUSPENDED"
	StateClosing     State = "CLOSING"
	StateClosed      State = "CLOSED"
	StateTerminated  State = "TERMINATED"
)

// Config holds per-session policy knobs, generalized from the teacher's
// session.Config (MaxAge/IdleTimeout/MaxMessages) to add the participant
// cap and per-participant inbound buffer size this session model needs.
type Config struct {
	MaxAge          time.Duration
	IdleTimeout     time.Duration
	MaxMessages     int
	MaxParticipants int // 0 = unbounded
	InboundBufSize  int // capacity of each participant's inbound buffer
}

// DefaultConfig mirrors the teacher's NewManager defaults, with
// MaxParticipants and InboundBufSize added for the participant model.
func DefaultConfig() Config {
	return Config{
		MaxAge:          time.Hour,
		IdleTimeout:     10 * time.Minute,
		MaxMessages:     1000,
		MaxParticipants: 0,
		InboundBufSize:  64 * 1024,
	}
}
