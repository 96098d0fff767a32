package primitive

import (
	"crypto/ed25519"
	"crypto/sha512"
	"fmt"

	"filippo.io/edwards25519"
)

// ConvertEd25519PrivateToX25519 turns an Ed25519 private key into the
// corresponding X25519 scalar, letting an agent reuse one long-term
// signing key as the seed for KEM key agreement (RFC 8032 §5.1.5).
func ConvertEd25519PrivateToX25519(priv ed25519.PrivateKey) ([]byte, error) {
	if l := len(priv); l != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("primitive: bad Ed25519 private key length: %d", l)
	}
	seed := priv.Seed()
	h := sha512.Sum512(seed)
	h[0] &= 248
	h[31] &= 127
	h[31] |= 64

	x := make([]byte, 32)
	copy(x, h[:32])
	return x, nil
}

// ConvertEd25519PublicToX25519 decompresses an Ed25519 public key's edwards
// point and returns its Montgomery (X25519) form.
func ConvertEd25519PublicToX25519(pub ed25519.PublicKey) ([]byte, error) {
	if l := len(pub); l != ed25519.PublicKeySize {
		return nil, fmt.Errorf("primitive: bad Ed25519 public key length: %d", l)
	}
	p, err := new(edwards25519.Point).SetBytes(pub)
	if err != nil {
		return nil, fmt.Errorf("primitive: invalid Ed25519 public key: %w", err)
	}
	return p.BytesMontgomery(), nil
}
