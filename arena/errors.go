package arena

import "errors"

// Sentinel errors returned by arena and SDC operations. Callers match with
// errors.Is; wrapped errors always retain one of these at the root.
var (
	// ErrAlreadyDisposed is returned by any operation on a closed Arena, Segment or SDC.
	ErrAlreadyDisposed = errors.New("entanglement/arena: already disposed")

	// ErrWrongThread is returned when a confined arena is accessed from a
	// goroutine that did not present the ticket issued at construction.
	ErrWrongThread = errors.New("entanglement/arena: confined arena accessed without its ticket")

	// ErrInvalidIndex is returned by SDC.Get for an out-of-range binding index.
	ErrInvalidIndex = errors.New("entanglement/arena: invalid binding index")

	// ErrSizeMismatch is returned when a buffer does not fit an allocation.
	ErrSizeMismatch = errors.New("entanglement/arena: size mismatch")
)
