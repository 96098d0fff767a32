package handshake

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/entanglement-project/entanglement-core/arena"
)

// sessionKeyInfo binds derived key material to this handshake's data-phase
// usage, so the same raw shared secret used for any other purpose would not
// collide with it.
var sessionKeyInfo = []byte("entanglement-core session-key v1")

// DeriveSessionKeys expands the raw KEM shared secret into a 32-byte
// AES-256-GCM session key and a 12-byte base IV via HKDF-SHA256. Rather
// than transmitting a base IV, both peers derive it once, identically,
// from the handshake's shared secret; every data-phase record's nonce is
// then
// strategy.CalculateNonce(baseIV, sequence). It also reduces a
// variable-length shared secret (32 bytes for a bare KEM, 64 for the
// X25519+ML-KEM-768 hybrid) to the fixed 32-byte key AES-256-GCM requires.
func DeriveSessionKeys(sharedSecret []byte) (key *arena.SDC, baseIV []byte, err error) {
	kdf := hkdf.New(sha256.New, sharedSecret, nil, sessionKeyInfo)
	material := make([]byte, 32+12)
	if _, err := io.ReadFull(kdf, material); err != nil {
		return nil, nil, err
	}

	key, err = arena.NewFrom(material[:32], true)
	if err != nil {
		return nil, nil, err
	}
	baseIV = append([]byte(nil), material[32:]...)
	arena.SecureWipe(material[32:])
	return key, baseIV, nil
}
