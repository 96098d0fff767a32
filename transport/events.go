package transport

import "github.com/entanglement-project/entanglement-core/session"

// Events receives reactor lifecycle notifications. The server surfaces
// handshake failures via OnServerError / participant disconnect callbacks
// and never logs plaintext, keys, or shared secrets. Embed NoopEvents to
// implement only the callbacks a caller cares about.
type Events interface {
	// OnClientConnected fires once a participant is accepted and moved to
	// HANDSHAKING.
	OnClientConnected(p *session.Participant)
	// OnHandshakeComplete fires once a participant reaches ESTABLISHED.
	OnHandshakeComplete(p *session.Participant)
	// OnDataReceived fires once per decrypted, authenticated data-phase
	// record.
	OnDataReceived(p *session.Participant, plaintext []byte)
	// OnParticipantClosed fires when a participant's connection is torn
	// down, for any reason (clean close, error, timeout).
	OnParticipantClosed(p *session.Participant)
	// OnServerError fires on any non-fatal per-connection error; p is nil
	// for errors not attributable to a specific participant (e.g. an
	// Accept failure). Handshake overflow and timeout both surface here.
	OnServerError(p *session.Participant, err error)
}

// NoopEvents implements Events with no-ops, embeddable by callers that
// only want a subset of the callbacks.
type NoopEvents struct{}

func (NoopEvents) OnClientConnected(*session.Participant)            {}
func (NoopEvents) OnHandshakeComplete(*session.Participant)          {}
func (NoopEvents) OnDataReceived(*session.Participant, []byte)       {}
func (NoopEvents) OnParticipantClosed(*session.Participant)          {}
func (NoopEvents) OnServerError(*session.Participant, error)         {}
