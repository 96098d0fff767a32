package session

// EventListener receives lifecycle notifications. Each method is optional
// to implement meaningfully; embed NoopListener to satisfy the interface
// with no-ops for the events a listener doesn't care about.
type EventListener interface {
	OnParticipantJoined(s *Session, p *Participant)
	OnParticipantLeft(s *Session, p *Participant)
	OnStateChanged(s *Session, from, to State)
}

// NoopListener is embeddable by listeners that only care about a subset of
// events.
type NoopListener struct{}

func (NoopListener) OnParticipantJoined(*Session, *Participant) {}
func (NoopListener) OnParticipantLeft(*Session, *Participant)   {}
func (NoopListener) OnStateChanged(*Session, State, State)      {}
