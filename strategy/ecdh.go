package strategy

import (
	"crypto/ecdh"

	"github.com/entanglement-project/entanglement-core/arena"
)

// x25519Strategy implements ECDHStrategy over stdlib crypto/ecdh's X25519
// curve.
type x25519Strategy struct{}

// NewX25519Strategy returns an ECDHStrategy for X25519.
func NewX25519Strategy() ECDHStrategy { return x25519Strategy{} }

// ComputeSharedSecret validates both keys are 32 bytes, then computes the
// raw Diffie-Hellman shared secret.
func (x25519Strategy) ComputeSharedSecret(priv, peerPub *arena.SDC) (*arena.SDC, error) {
	privBytes, err := sdcBytes(priv)
	if err != nil {
		return nil, err
	}
	pubBytes, err := sdcBytes(peerPub)
	if err != nil {
		return nil, err
	}
	if len(privBytes) != 32 || len(pubBytes) != 32 {
		return nil, ErrInvalidParameterSize
	}

	sk, err := ecdh.X25519().NewPrivateKey(privBytes)
	if err != nil {
		return nil, ErrInvalidAlgorithmInput
	}
	pk, err := ecdh.X25519().NewPublicKey(pubBytes)
	if err != nil {
		return nil, ErrInvalidAlgorithmInput
	}
	ss, err := sk.ECDH(pk)
	if err != nil {
		return nil, ErrInvalidAlgorithmInput
	}
	return arena.NewFrom(ss, true)
}
