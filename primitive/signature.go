package primitive

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/cloudflare/circl/sign"
	"github.com/cloudflare/circl/sign/mldsa/mldsa44"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
	"github.com/cloudflare/circl/sign/mldsa/mldsa87"
	"github.com/cloudflare/circl/sign/slhdsa"
	"github.com/entanglement-project/entanglement-core/catalog"
)

// Signer is a signature scheme over opaque byte-encoded keys.
type Signer interface {
	GenerateKeyPair() (pub, priv []byte, err error)
	Sign(priv, message []byte) (signature []byte, err error)
	Verify(pub, message, signature []byte) error
}

// circlSigner adapts a circl sign.Scheme (used by the ML-DSA family) to
// the Signer interface above.
type circlSigner struct {
	scheme sign.Scheme
}

func (s circlSigner) GenerateKeyPair() ([]byte, []byte, error) {
	pub, priv, err := s.scheme.GenerateKey()
	if err != nil {
		return nil, nil, err
	}
	pubBytes, err := pub.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}
	privBytes, err := priv.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}
	return pubBytes, privBytes, nil
}

func (s circlSigner) Sign(priv, message []byte) ([]byte, error) {
	sk, err := s.scheme.UnmarshalBinaryPrivateKey(priv)
	if err != nil {
		return nil, err
	}
	return s.scheme.Sign(sk, message, nil), nil
}

func (s circlSigner) Verify(pub, message, signature []byte) error {
	pk, err := s.scheme.UnmarshalBinaryPublicKey(pub)
	if err != nil {
		return err
	}
	if !s.scheme.Verify(pk, message, signature, nil) {
		return ErrVerificationFailed
	}
	return nil
}

var sigSchemes = map[catalog.SignatureType]sign.Scheme{
	catalog.SigMLDSA44: mldsa44.Scheme(),
	catalog.SigMLDSA65: mldsa65.Scheme(),
	catalog.SigMLDSA87: mldsa87.Scheme(),
}

// slhdsaSigner adapts circl's SLH-DSA (a stateless hash-based scheme with a
// parameter-set rather than a sign.Scheme API) to the Signer interface.
type slhdsaSigner struct {
	id slhdsa.ParamID
}

func (s slhdsaSigner) GenerateKeyPair() ([]byte, []byte, error) {
	pub, priv, err := slhdsa.GenerateKey(rand.Reader, s.id)
	if err != nil {
		return nil, nil, err
	}
	pubBytes, err := pub.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}
	privBytes, err := priv.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}
	return pubBytes, privBytes, nil
}

func (s slhdsaSigner) Sign(priv, message []byte) ([]byte, error) {
	var sk slhdsa.PrivateKey
	if err := sk.UnmarshalBinary(priv); err != nil {
		return nil, err
	}
	return sk.Sign(rand.Reader, message, crypto.Hash(0))
}

func (s slhdsaSigner) Verify(pub, message, signature []byte) error {
	var pk slhdsa.PublicKey
	if err := pk.UnmarshalBinary(pub); err != nil {
		return err
	}
	if !slhdsa.Verify(&pk, message, signature, nil) {
		return ErrVerificationFailed
	}
	return nil
}

var slhdsaParams = map[catalog.SignatureType]slhdsa.ParamID{
	catalog.SigSLHDSA128S: slhdsa.ParamIDSHA2128Small,
	catalog.SigSLHDSA192S: slhdsa.ParamIDSHA2192Small,
	catalog.SigSLHDSA256S: slhdsa.ParamIDSHA2256Small,
}

// ed25519Signer adapts stdlib crypto/ed25519 to the Signer interface, the
// classical signature option next to ML-DSA and SLH-DSA.
type ed25519Signer struct{}

func (ed25519Signer) GenerateKeyPair() ([]byte, []byte, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	return []byte(pub), []byte(priv), nil
}

func (ed25519Signer) Sign(priv, message []byte) ([]byte, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, ErrInvalidKeySize
	}
	return ed25519.Sign(ed25519.PrivateKey(priv), message), nil
}

func (ed25519Signer) Verify(pub, message, signature []byte) error {
	if len(pub) != ed25519.PublicKeySize {
		return ErrInvalidKeySize
	}
	if !ed25519.Verify(ed25519.PublicKey(pub), message, signature) {
		return ErrVerificationFailed
	}
	return nil
}

// NewSigner returns the Signer adapter for t.
func NewSigner(t catalog.SignatureType) (Signer, error) {
	if t == catalog.SigEd25519 {
		return ed25519Signer{}, nil
	}
	if id, ok := slhdsaParams[t]; ok {
		return slhdsaSigner{id: id}, nil
	}
	scheme, ok := sigSchemes[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, t)
	}
	return circlSigner{scheme: scheme}, nil
}
