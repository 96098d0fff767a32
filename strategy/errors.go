// Package strategy implements the uniform cipher/signature/KEM/ECDH
// contracts: every concrete strategy consumes and produces
// *arena.SDC values, never raw key material that outlives the call.
package strategy

import "errors"

var (
	ErrInvalidIvLength           = errors.New("strategy: invalid IV length")
	ErrInvalidParameterSize      = errors.New("strategy: invalid parameter size")
	ErrAuthenticationFailed      = errors.New("strategy: AEAD authentication failed")
	ErrInvalidAlgorithmInput     = errors.New("strategy: invalid algorithm input")
	ErrKemProcessingFailure      = errors.New("strategy: KEM processing failure")
	ErrSignatureProcessingFailure = errors.New("strategy: signature processing failure")
	ErrPublicKeyBoundToPrivate   = errors.New("strategy: public key must not be bound to a signing private key container")
)
