package strategy

import (
	"bytes"

	"github.com/entanglement-project/entanglement-core/arena"
	"github.com/entanglement-project/entanglement-core/catalog"
	"github.com/entanglement-project/entanglement-core/primitive"
)

const streamChunkSize = 64 * 1024

// chaChaStreamStrategy implements StreamCipherStrategy for ChaCha20 and
// ChaCha20-Poly1305, chunking input into 64 KiB frames.
// For ChaCha20-Poly1305 each chunk is wire-framed as
// nonce(12) || ciphertext || tag(16); plain ChaCha20 has no per-chunk
// framing since it carries no authentication tag.
type chaChaStreamStrategy struct {
	cipherType catalog.CipherType
	iv         []byte
	aad        []byte
}

// NewStreamCipherStrategy returns a StreamCipherStrategy for t (ChaCha20 or
// ChaCha20-Poly1305).
func NewStreamCipherStrategy(t catalog.CipherType) StreamCipherStrategy {
	return &chaChaStreamStrategy{cipherType: t}
}

func (c *chaChaStreamStrategy) SetIV(value any) error {
	b, err := asBytes(value)
	if err != nil {
		if n, ok := value.(int); ok {
			c.iv = make([]byte, n)
			return nil
		}
		return err
	}
	c.iv = append([]byte(nil), b...)
	return nil
}

func (c *chaChaStreamStrategy) UpdateAAD(aad []byte) { c.aad = append([]byte(nil), aad...) }

func (c *chaChaStreamStrategy) Encrypt(key *arena.SDC, plain any, ivChaining bool) (*arena.SDC, error) {
	plainBytes, err := asBytes(plain)
	if err != nil {
		return nil, err
	}
	out, err := c.StreamEncrypt(key, plainBytes)
	if err != nil {
		return nil, err
	}
	return arena.NewFrom(out, true)
}

func (c *chaChaStreamStrategy) Decrypt(key *arena.SDC, ciphertext *arena.SDC, ivInference bool) (*arena.SDC, error) {
	data, err := sdcBytes(ciphertext)
	if err != nil {
		return nil, err
	}
	out, err := c.StreamDecrypt(key, data)
	if err != nil {
		return nil, err
	}
	return arena.NewFrom(out, true)
}

func (c *chaChaStreamStrategy) StreamEncrypt(key *arena.SDC, input []byte) ([]byte, error) {
	keyBytes, err := sdcBytes(key)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	for off := 0; off < len(input); off += streamChunkSize {
		end := off + streamChunkSize
		if end > len(input) {
			end = len(input)
		}
		chunk := input[off:end]

		if c.cipherType == catalog.CipherChaCha20Poly1305 {
			nonce, err := arena.GenerateSafeRandomBytes(12)
			if err != nil {
				return nil, err
			}
			aead, err := primitive.NewAEAD(c.cipherType, keyBytes)
			if err != nil {
				return nil, err
			}
			sealed := aead.Seal(nil, nonce, chunk, c.aad)
			out.Write(nonce)
			out.Write(sealed)
		} else {
			nonce := c.iv
			if len(nonce) == 0 {
				nonce = make([]byte, 12)
			}
			stream, err := primitive.NewStreamCipher(c.cipherType, keyBytes, nonce)
			if err != nil {
				return nil, err
			}
			ct := make([]byte, len(chunk))
			stream.XORKeyStream(ct, chunk)
			out.Write(ct)
		}
	}
	return out.Bytes(), nil
}

func (c *chaChaStreamStrategy) StreamDecrypt(key *arena.SDC, input []byte) ([]byte, error) {
	keyBytes, err := sdcBytes(key)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if c.cipherType == catalog.CipherChaCha20Poly1305 {
		const frameOverhead = 12 + 16 // nonce + Poly1305 tag
		for off := 0; off < len(input); {
			remaining := input[off:]
			if len(remaining) < frameOverhead {
				return nil, ErrInvalidAlgorithmInput
			}
			chunkLen := streamChunkSize + frameOverhead
			if chunkLen > len(remaining) {
				chunkLen = len(remaining)
			}
			frame := remaining[:chunkLen]
			nonce := frame[:12]
			sealed := frame[12:]

			aead, err := primitive.NewAEAD(c.cipherType, keyBytes)
			if err != nil {
				return nil, err
			}
			plain, err := aead.Open(nil, nonce, sealed, c.aad)
			if err != nil {
				return nil, ErrAuthenticationFailed
			}
			out.Write(plain)
			off += chunkLen
		}
		return out.Bytes(), nil
	}

	nonce := c.iv
	if len(nonce) == 0 {
		nonce = make([]byte, 12)
	}
	for off := 0; off < len(input); off += streamChunkSize {
		end := off + streamChunkSize
		if end > len(input) {
			end = len(input)
		}
		chunk := input[off:end]
		stream, err := primitive.NewStreamCipher(c.cipherType, keyBytes, nonce)
		if err != nil {
			return nil, err
		}
		pt := make([]byte, len(chunk))
		stream.XORKeyStream(pt, chunk)
		out.Write(pt)
	}
	return out.Bytes(), nil
}

