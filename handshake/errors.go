// Package handshake implements the two-round PQC handshake framing and
// state transitions: ClientHello/ServerHello/Finished over the raw
// transport, no TLS record layer. Grounded on the teacher's
// core/handshake package (typed message structs, length-prefixed framing
// helpers in utils.go, GenerateSalt's crypto/rand usage in session.go),
// adapted from JSON envelope messages to the spec's binary wire format.
package handshake

import "errors"

var (
	// ErrIncompleteFrame signals the buffer does not yet hold a full
	// frame; the caller should wait for more bytes without consuming any
	// (the mark/reset parsing discipline readField applies).
	ErrIncompleteFrame = errors.New("handshake: incomplete frame")

	// ErrHandshakeOverflow is returned when a ClientHello's advertised
	// length is negative or exceeds the 16 KiB guard.
	ErrHandshakeOverflow = errors.New("handshake: advertised length exceeds guard")

	ErrUnknownMessageType = errors.New("handshake: unknown message type")
	ErrMalformedFrame     = errors.New("handshake: malformed frame")
	ErrHandshakeTimeout   = errors.New("handshake: participant exceeded handshake timeout")
	ErrUnexpectedMessage  = errors.New("handshake: message out of sequence")
)
