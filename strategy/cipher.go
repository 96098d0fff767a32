package strategy

import (
	"crypto/cipher"
	"fmt"

	"github.com/entanglement-project/entanglement-core/arena"
	"github.com/entanglement-project/entanglement-core/catalog"
	"github.com/entanglement-project/entanglement-core/primitive"
)

const blockSize = 16 // AES and ARIA both use 128-bit blocks.

// blockCipherStrategy implements BlockCipherStrategy for AES and ARIA,
// grounded on the shared CipherStrategy/BlockCipherStrategy
// contract. One instance is not safe for concurrent use (it carries IV/AAD
// scratch state), matching §5's "strategy instance must not be shared
// across threads" rule.
type blockCipherStrategy struct {
	cipherType catalog.CipherType
	mode       catalog.Mode
	padding    catalog.Padding
	digest     catalog.DigestType
	iv         []byte
	aad        []byte
}

// NewBlockCipherStrategy returns a BlockCipherStrategy for t, defaulting to
// CBC mode and PKCS5 padding.
func NewBlockCipherStrategy(t catalog.CipherType) BlockCipherStrategy {
	return &blockCipherStrategy{cipherType: t, mode: catalog.ModeCBC, padding: catalog.PaddingPKCS5}
}

func (b *blockCipherStrategy) SetMode(m catalog.Mode)       { b.mode = m }
func (b *blockCipherStrategy) SetPadding(p catalog.Padding) { b.padding = p }
func (b *blockCipherStrategy) SetDigest(d catalog.DigestType) { b.digest = d }

func (b *blockCipherStrategy) SetIV(value any) error {
	switch v := value.(type) {
	case int:
		if b.mode.AEAD() && v != 12 {
			return ErrInvalidIvLength
		}
		b.iv = make([]byte, v)
	case []byte:
		if b.mode.AEAD() && len(v) != 12 {
			return ErrInvalidIvLength
		}
		b.iv = append([]byte(nil), v...)
	case *arena.SDC:
		buf, err := v.AsByteBuffer()
		if err != nil {
			return err
		}
		if b.mode.AEAD() && len(buf) != 12 {
			return ErrInvalidIvLength
		}
		b.iv = append([]byte(nil), buf...)
	default:
		return ErrInvalidAlgorithmInput
	}
	return nil
}

func (b *blockCipherStrategy) UpdateAAD(aad []byte) {
	b.aad = append([]byte(nil), aad...)
}

func pkcs5Pad(data []byte) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

func pkcs5Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrInvalidAlgorithmInput
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, ErrInvalidAlgorithmInput
	}
	return data[:len(data)-padLen], nil
}

func (b *blockCipherStrategy) ivOrDefault() ([]byte, error) {
	size := blockSize
	if b.mode.AEAD() {
		size = 12
	}
	if len(b.iv) == size {
		return b.iv, nil
	}
	return arena.GenerateSafeRandomBytes(size)
}

// Encrypt implements the encrypt contract for block ciphers.
func (b *blockCipherStrategy) Encrypt(key *arena.SDC, plain any, ivChaining bool) (*arena.SDC, error) {
	keyBytes, err := sdcBytes(key)
	if err != nil {
		return nil, err
	}
	plainBytes, err := asBytes(plain)
	if err != nil {
		return nil, err
	}

	iv, err := b.ivOrDefault()
	if err != nil {
		return nil, err
	}

	var ciphertext []byte
	if b.mode.AEAD() {
		aead, err := primitive.NewAEAD(b.cipherType, keyBytes)
		if err != nil {
			return nil, err
		}
		ciphertext = aead.Seal(nil, iv, plainBytes, b.aad)
	} else {
		block, err := primitive.NewBlockCipher(b.cipherType, keyBytes)
		if err != nil {
			return nil, err
		}
		padded := plainBytes
		if b.padding != catalog.PaddingNone && b.mode != catalog.ModeCTR && b.mode != catalog.ModeCFB && b.mode != catalog.ModeOFB {
			padded = pkcs5Pad(plainBytes)
		}
		ciphertext = make([]byte, len(padded))
		switch b.mode {
		case catalog.ModeCBC:
			cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
		case catalog.ModeCFB:
			cipher.NewCFBEncrypter(block, iv).XORKeyStream(ciphertext, padded)
		case catalog.ModeOFB:
			cipher.NewOFB(block, iv).XORKeyStream(ciphertext, padded)
		case catalog.ModeCTR:
			cipher.NewCTR(block, iv).XORKeyStream(ciphertext, padded)
		case catalog.ModeECB:
			for off := 0; off+blockSize <= len(padded); off += blockSize {
				block.Encrypt(ciphertext[off:off+blockSize], padded[off:off+blockSize])
			}
		default:
			return nil, fmt.Errorf("%w: mode %s", ErrInvalidAlgorithmInput, b.mode)
		}
	}

	out := ciphertext
	if ivChaining && b.mode != catalog.ModeECB {
		out = append(append([]byte(nil), iv...), ciphertext...)
	}
	return arena.NewFrom(out, true)
}

// Decrypt implements the decrypt contract for block ciphers.
func (b *blockCipherStrategy) Decrypt(key *arena.SDC, ciphertextSDC *arena.SDC, ivInference bool) (*arena.SDC, error) {
	keyBytes, err := sdcBytes(key)
	if err != nil {
		return nil, err
	}
	data, err := sdcBytes(ciphertextSDC)
	if err != nil {
		return nil, err
	}

	ivSize := blockSize
	if b.mode.AEAD() {
		ivSize = 12
	}

	iv := b.iv
	ciphertext := data
	if ivInference && b.mode != catalog.ModeECB {
		if len(data) < ivSize {
			return nil, ErrInvalidAlgorithmInput
		}
		iv = data[:ivSize]
		ciphertext = data[ivSize:]
	}

	var plaintext []byte
	if b.mode.AEAD() {
		aead, err := primitive.NewAEAD(b.cipherType, keyBytes)
		if err != nil {
			return nil, err
		}
		plaintext, err = aead.Open(nil, iv, ciphertext, b.aad)
		if err != nil {
			return nil, ErrAuthenticationFailed
		}
	} else {
		block, err := primitive.NewBlockCipher(b.cipherType, keyBytes)
		if err != nil {
			return nil, err
		}
		decrypted := make([]byte, len(ciphertext))
		switch b.mode {
		case catalog.ModeCBC:
			cipher.NewCBCDecrypter(block, iv).CryptBlocks(decrypted, ciphertext)
		case catalog.ModeCFB:
			cipher.NewCFBDecrypter(block, iv).XORKeyStream(decrypted, ciphertext)
		case catalog.ModeOFB:
			cipher.NewOFB(block, iv).XORKeyStream(decrypted, ciphertext)
		case catalog.ModeCTR:
			cipher.NewCTR(block, iv).XORKeyStream(decrypted, ciphertext)
		case catalog.ModeECB:
			for off := 0; off+blockSize <= len(ciphertext); off += blockSize {
				block.Decrypt(decrypted[off:off+blockSize], ciphertext[off:off+blockSize])
			}
		default:
			return nil, fmt.Errorf("%w: mode %s", ErrInvalidAlgorithmInput, b.mode)
		}
		plaintext = decrypted
		if b.padding != catalog.PaddingNone && b.mode != catalog.ModeCTR && b.mode != catalog.ModeCFB && b.mode != catalog.ModeOFB {
			plaintext, err = pkcs5Unpad(decrypted)
			if err != nil {
				return nil, err
			}
		}
	}
	return arena.NewFrom(plaintext, true)
}
