package transport

import "errors"

var (
	// ErrNotEstablished is returned by Send when the participant has not
	// completed the handshake.
	ErrNotEstablished = errors.New("transport: participant is not ESTABLISHED")

	// errIncompleteFrame signals a data-phase frame is not yet fully
	// buffered; mirrors handshake.ErrIncompleteFrame's mark/reset contract
	// but for the data-phase wire format, which handshake does not own.
	errIncompleteFrame = errors.New("transport: incomplete data frame")

	// ErrDataFrameOverflow guards the data-phase frame length prefix the
	// same way handshake.ErrHandshakeOverflow guards handshake fields.
	ErrDataFrameOverflow = errors.New("transport: data frame length exceeds guard")

	// ErrReactorStopped is returned by Serve if called after Stop.
	ErrReactorStopped = errors.New("transport: reactor already stopped")

	// ErrReactorRunning is returned by Serve if the reactor is already serving.
	ErrReactorRunning = errors.New("transport: reactor already serving")
)
