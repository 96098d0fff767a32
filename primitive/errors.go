package primitive

import "errors"

var (
	// ErrUnsupportedAlgorithm is returned when a catalog constant has no
	// registered primitive adapter.
	ErrUnsupportedAlgorithm = errors.New("primitive: unsupported algorithm")
	// ErrInvalidKeySize is returned when a caller-supplied key does not
	// match the algorithm's catalog.ParameterSizeDetail.
	ErrInvalidKeySize = errors.New("primitive: invalid key size")
	// ErrVerificationFailed is returned by a Signer.Verify call that did
	// not panic but simply rejected the signature.
	ErrVerificationFailed = errors.New("primitive: signature verification failed")
)
