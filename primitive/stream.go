package primitive

import (
	"crypto/cipher"
	"fmt"

	"github.com/entanglement-project/entanglement-core/catalog"
	"golang.org/x/crypto/chacha20"
)

// StreamCipherFactory constructs a stream cipher from a key and nonce.
type StreamCipherFactory func(key, nonce []byte) (cipher.Stream, error)

func newChaCha20(key, nonce []byte) (cipher.Stream, error) {
	return chacha20.NewUnauthenticatedCipher(key, nonce)
}

var streamFactories = map[catalog.CipherType]StreamCipherFactory{
	catalog.CipherChaCha20: newChaCha20,
}

// NewStreamCipher returns a stream cipher for t.
func NewStreamCipher(t catalog.CipherType, key, nonce []byte) (cipher.Stream, error) {
	factory, ok := streamFactories[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, t)
	}
	detail, _ := t.SizeDetail()
	if len(key) != detail.SecretKeySize {
		return nil, fmt.Errorf("%w: %s wants %d bytes, got %d", ErrInvalidKeySize, t, detail.SecretKeySize, len(key))
	}
	return factory(key, nonce)
}

// NewCTRStream wraps a block cipher in CTR mode, used for block ciphers
// (AES, ARIA) run as a stream alongside the native stream ciphers so
// callers get one cipher.Stream interface regardless of family.
func NewCTRStream(t catalog.CipherType, key, iv []byte) (cipher.Stream, error) {
	block, err := NewBlockCipher(t, key)
	if err != nil {
		return nil, err
	}
	return cipher.NewCTR(block, iv), nil
}
