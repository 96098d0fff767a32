package transport

import (
	"github.com/entanglement-project/entanglement-core/session"
)

// Send encrypts plaintext under p's session key and queues it on p's
// outbound FIFO, waking the writer goroutine. Returns ErrNotEstablished if
// the handshake has not completed. Safe to call from any goroutine: the
// outbound queue is a multi-producer, single-consumer FIFO.
func (r *Reactor) Send(p *session.Participant, plaintext []byte) error {
	if p.State() != session.ParticipantEstablished {
		return ErrNotEstablished
	}
	ciphertext, err := encryptRecord(p.SecurityContext(), plaintext)
	if err != nil {
		return err
	}
	p.EnqueueOutbound(encodeDataFrame(ciphertext))

	r.mu.Lock()
	h, ok := r.handles[p.ID()]
	r.mu.Unlock()
	if ok {
		h.signalWrite()
	}
	return nil
}

// Broadcast sends plaintext to every ESTABLISHED participant of sess,
// returning one error per participant for which Send failed (nil entries
// omitted). Each participant gets an independent copy of plaintext since
// each encrypts under its own session key and sequence (the per-participant
// unicast security model).
func (r *Reactor) Broadcast(sess *session.Session, plaintext []byte) []error {
	targets := sess.FindParticipants(func(p *session.Participant) bool {
		return p.State() == session.ParticipantEstablished
	})

	var errs []error
	for _, p := range targets {
		cp := append([]byte(nil), plaintext...)
		if err := r.Send(p, cp); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
