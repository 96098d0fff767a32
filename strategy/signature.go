package strategy

import (
	"github.com/entanglement-project/entanglement-core/arena"
	"github.com/entanglement-project/entanglement-core/catalog"
	"github.com/entanglement-project/entanglement-core/primitive"
)

// signatureStrategy implements SignatureStrategy over one of the ML-DSA,
// SLH-DSA, or Ed25519 adapters in package primitive.
type signatureStrategy struct {
	sigType catalog.SignatureType
	signer  primitive.Signer
}

// NewSignatureStrategy returns a SignatureStrategy for t.
func NewSignatureStrategy(t catalog.SignatureType) (SignatureStrategy, error) {
	signer, err := primitive.NewSigner(t)
	if err != nil {
		return nil, err
	}
	return &signatureStrategy{sigType: t, signer: signer}, nil
}

// Sign implements the signature contract: the private-key container must not carry
// the matching public key as a binding, to prevent accidental disclosure
// of the public key alongside a private-key buffer.
func (s *signatureStrategy) Sign(privKey *arena.SDC, message []byte) (*arena.SDC, error) {
	if len(privKey.Bindings()) > 0 {
		return nil, ErrPublicKeyBoundToPrivate
	}
	privBytes, err := sdcBytes(privKey)
	if err != nil {
		return nil, err
	}
	sig, err := s.signer.Sign(privBytes, message)
	if err != nil {
		return nil, ErrSignatureProcessingFailure
	}
	return arena.NewFrom(sig, true)
}

// Verify consumes a container whose segment is the signature and whose
// bindings are [0]=message, [1]=public key.
func (s *signatureStrategy) Verify(container *arena.SDC) (bool, error) {
	sig, err := sdcBytes(container)
	if err != nil {
		return false, err
	}
	msgSDC, ok := container.Get(0)
	if !ok {
		return false, ErrInvalidAlgorithmInput
	}
	pubSDC, ok := container.Get(1)
	if !ok {
		return false, ErrInvalidAlgorithmInput
	}
	msg, err := sdcBytes(msgSDC)
	if err != nil {
		return false, err
	}
	pub, err := sdcBytes(pubSDC)
	if err != nil {
		return false, err
	}
	if err := s.signer.Verify(pub, msg, sig); err != nil {
		return false, nil
	}
	return true, nil
}
