package primitive

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/RyuaNerin/go-krypto/aria"
	"github.com/entanglement-project/entanglement-core/catalog"
	"golang.org/x/crypto/chacha20poly1305"
)

// AEADFactory constructs an AEAD cipher from a raw key.
type AEADFactory func(key []byte) (cipher.AEAD, error)

func aesGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func ariaGCM(key []byte) (cipher.AEAD, error) {
	block, err := aria.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

var aeadFactories = map[catalog.CipherType]AEADFactory{
	catalog.CipherAES128GCM:        aesGCM,
	catalog.CipherAES256GCM:        aesGCM,
	catalog.CipherARIA128:          ariaGCM,
	catalog.CipherARIA256:          ariaGCM,
	catalog.CipherChaCha20Poly1305: chacha20poly1305.New,
}

// NewAEAD returns an AEAD cipher for t, validating the key length first.
func NewAEAD(t catalog.CipherType, key []byte) (cipher.AEAD, error) {
	factory, ok := aeadFactories[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, t)
	}
	detail, _ := t.SizeDetail()
	if len(key) != detail.SecretKeySize {
		return nil, fmt.Errorf("%w: %s wants %d bytes, got %d", ErrInvalidKeySize, t, detail.SecretKeySize, len(key))
	}
	return factory(key)
}
