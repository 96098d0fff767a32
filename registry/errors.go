package registry

import "errors"

// ErrUnsupportedAlgorithm is returned when the requested pairing of
// algorithm identifier and strategy contract has no registered bundle.
var ErrUnsupportedAlgorithm = errors.New("registry: unsupported algorithm")
