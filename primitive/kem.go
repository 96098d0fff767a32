package primitive

import (
	"crypto/ecdh"
	"crypto/rand"
	"fmt"

	"github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/mlkem/mlkem1024"
	"github.com/cloudflare/circl/kem/mlkem/mlkem512"
	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
	"github.com/entanglement-project/entanglement-core/catalog"
)

// KEM is a key-encapsulation mechanism over opaque byte-encoded keys.
type KEM interface {
	GenerateKeyPair() (pub, priv []byte, err error)
	Encapsulate(pub []byte) (ciphertext, sharedSecret []byte, err error)
	Decapsulate(priv, ciphertext []byte) (sharedSecret []byte, err error)
}

// circlKEM adapts a circl kem.Scheme (used by the ML-KEM family) to the KEM
// interface above.
type circlKEM struct {
	scheme kem.Scheme
}

func (c circlKEM) GenerateKeyPair() ([]byte, []byte, error) {
	pub, priv, err := c.scheme.GenerateKeyPair()
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

func (c circlKEM) Encapsulate(pub []byte) ([]byte, []byte, error) {
	pk, err := c.scheme.UnmarshalBinaryPublicKey(pub)
	if err != nil {
		return nil, nil, err
	}
	ct, ss, err := c.scheme.Encapsulate(pk)
	if err != nil {
		return nil, nil, err
	}
	return ct, ss, nil
}

func (c circlKEM) Decapsulate(priv, ciphertext []byte) ([]byte, error) {
	sk, err := c.scheme.UnmarshalBinaryPrivateKey(priv)
	if err != nil {
		return nil, err
	}
	return c.scheme.Decapsulate(sk, ciphertext)
}

// x25519KEM adapts stdlib crypto/ecdh's X25519 curve to the KEM interface:
// "encapsulation" is an ephemeral ECDH exchange, "ciphertext" is the
// ephemeral public key.
type x25519KEM struct{}

func (x25519KEM) GenerateKeyPair() ([]byte, []byte, error) {
	priv, err := ecdh.X25519().GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	return priv.PublicKey().Bytes(), priv.Bytes(), nil
}

func (x25519KEM) Encapsulate(pub []byte) ([]byte, []byte, error) {
	peerPub, err := ecdh.X25519().NewPublicKey(pub)
	if err != nil {
		return nil, nil, err
	}
	eph, err := ecdh.X25519().GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	ss, err := eph.ECDH(peerPub)
	if err != nil {
		return nil, nil, err
	}
	return eph.PublicKey().Bytes(), ss, nil
}

func (x25519KEM) Decapsulate(priv, ciphertext []byte) ([]byte, error) {
	sk, err := ecdh.X25519().NewPrivateKey(priv)
	if err != nil {
		return nil, err
	}
	ephPub, err := ecdh.X25519().NewPublicKey(ciphertext)
	if err != nil {
		return nil, err
	}
	return sk.ECDH(ephPub)
}

var kemSchemes = map[catalog.KEMType]kem.Scheme{
	catalog.KEMMLKEM512:  mlkem512.Scheme(),
	catalog.KEMMLKEM768:  mlkem768.Scheme(),
	catalog.KEMMLKEM1024: mlkem1024.Scheme(),
}

// NewKEM returns the KEM adapter for t. The hybrid composition is built one
// layer up, in strategy/hybrid, out of the ML-KEM-768 and X25519 instances
// returned here.
func NewKEM(t catalog.KEMType) (KEM, error) {
	if t == catalog.KEMX25519 {
		return x25519KEM{}, nil
	}
	scheme, ok := kemSchemes[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, t)
	}
	return circlKEM{scheme: scheme}, nil
}
