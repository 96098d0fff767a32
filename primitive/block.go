// Package primitive holds thin, allocation-light adapters over the actual
// cryptographic implementations (stdlib crypto/*, golang.org/x/crypto, and
// github.com/cloudflare/circl for post-quantum algorithms). Nothing in this
// package knows about SDC or sessions; strategy builds on top of it.
package primitive

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/RyuaNerin/go-krypto/aria"
	"github.com/entanglement-project/entanglement-core/catalog"
)

// BlockCipherFactory constructs a cipher.Block from a raw key.
type BlockCipherFactory func(key []byte) (cipher.Block, error)

var blockFactories = map[catalog.CipherType]BlockCipherFactory{
	catalog.CipherAES128: aes.NewCipher,
	catalog.CipherAES192: aes.NewCipher,
	catalog.CipherAES256: aes.NewCipher,
	catalog.CipherARIA128: aria.NewCipher,
	catalog.CipherARIA192: aria.NewCipher,
	catalog.CipherARIA256: aria.NewCipher,
}

// NewBlockCipher returns a block cipher constructor for t, validating the
// key length against catalog's canonical size before delegating to the
// underlying library.
func NewBlockCipher(t catalog.CipherType, key []byte) (cipher.Block, error) {
	factory, ok := blockFactories[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, t)
	}
	detail, _ := t.SizeDetail()
	if len(key) != detail.SecretKeySize {
		return nil, fmt.Errorf("%w: %s wants %d bytes, got %d", ErrInvalidKeySize, t, detail.SecretKeySize, len(key))
	}
	return factory(key)
}
