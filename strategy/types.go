package strategy

import (
	"github.com/entanglement-project/entanglement-core/arena"
	"github.com/entanglement-project/entanglement-core/catalog"
)

// CipherStrategy is the shared contract every cipher strategy implements.
type CipherStrategy interface {
	// SetIV accepts an int (allocate an empty IV of that length), a
	// []byte (set directly), or an *arena.SDC (take ownership of its
	// segment as the IV).
	SetIV(value any) error

	// Encrypt accepts plain as []byte or *arena.SDC. If ivChaining is
	// true and the mode is not ECB, the returned SDC's segment is
	// iv || ciphertext (with the AEAD tag appended for AEAD modes).
	Encrypt(key *arena.SDC, plain any, ivChaining bool) (*arena.SDC, error)

	// Decrypt consumes ciphertext (an *arena.SDC). If ivInference is
	// true, the leading IV-sized prefix of the segment is stripped and
	// used as the IV; otherwise the strategy's previously-set IV applies.
	Decrypt(key *arena.SDC, ciphertext *arena.SDC, ivInference bool) (*arena.SDC, error)
}

// BlockCipherStrategy extends CipherStrategy with mode/padding/digest
// configuration for block ciphers (AES, ARIA).
type BlockCipherStrategy interface {
	CipherStrategy
	SetMode(m catalog.Mode)
	SetPadding(p catalog.Padding)
	SetDigest(d catalog.DigestType)
}

// StreamCipherStrategy extends CipherStrategy with chunked streaming
// operations, processing input in 64 KiB chunks.
type StreamCipherStrategy interface {
	CipherStrategy
	StreamEncrypt(key *arena.SDC, input []byte) ([]byte, error)
	StreamDecrypt(key *arena.SDC, input []byte) ([]byte, error)
}

// AEADCipherStrategy extends CipherStrategy with associated-data handling.
type AEADCipherStrategy interface {
	CipherStrategy
	UpdateAAD(aad []byte)
}

// SignatureStrategy signs and verifies using SDC-held key material.
type SignatureStrategy interface {
	// Sign returns an SDC containing the raw signature bytes. The
	// caller may bind the matching public-key SDC as a child before
	// transmission; privKey must not itself carry the public key as a
	// binding (Sign rejects such a container with
	// ErrPublicKeyBoundToPrivate).
	Sign(privKey *arena.SDC, message []byte) (*arena.SDC, error)

	// Verify consumes a container whose segment is the signature and
	// whose bindings carry [0]=message bytes, [1]=public-key bytes.
	Verify(container *arena.SDC) (bool, error)
}

// KEMStrategy encapsulates and decapsulates using SDC-held key material.
type KEMStrategy interface {
	GenerateKeyPair() (pub, priv *arena.SDC, err error)
	// Encapsulate returns an SDC whose segment is the shared secret and
	// whose first binding is the ciphertext.
	Encapsulate(pub *arena.SDC) (*arena.SDC, error)
	Decapsulate(priv, ciphertext *arena.SDC) (*arena.SDC, error)
}

// ECDHStrategy computes a raw Diffie-Hellman shared secret.
type ECDHStrategy interface {
	ComputeSharedSecret(priv, peerPub *arena.SDC) (*arena.SDC, error)
}

func sdcBytes(s *arena.SDC) ([]byte, error) {
	return s.AsByteBuffer()
}

func asBytes(v any) ([]byte, error) {
	switch x := v.(type) {
	case []byte:
		return x, nil
	case *arena.SDC:
		return sdcBytes(x)
	default:
		return nil, ErrInvalidAlgorithmInput
	}
}
