package primitive

import (
	"testing"

	"github.com/entanglement-project/entanglement-core/catalog"
	"github.com/stretchr/testify/require"
)

func TestNewBlockCipherRejectsWrongKeySize(t *testing.T) {
	_, err := NewBlockCipher(catalog.CipherAES256, make([]byte, 16))
	require.ErrorIs(t, err, ErrInvalidKeySize)
}

func TestNewAEADRoundTrip(t *testing.T) {
	key := make([]byte, 32)
	aead, err := NewAEAD(catalog.CipherChaCha20Poly1305, key)
	require.NoError(t, err)

	nonce := make([]byte, aead.NonceSize())
	plaintext := []byte("hello world")
	ct := aead.Seal(nil, nonce, plaintext, nil)
	pt, err := aead.Open(nil, nonce, ct, nil)
	require.NoError(t, err)
	require.Equal(t, plaintext, pt)
}

func TestNewKEMUnsupportedAlgorithm(t *testing.T) {
	_, err := NewKEM(catalog.KEMType("bogus"))
	require.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestX25519KEMRoundTrip(t *testing.T) {
	k, err := NewKEM(catalog.KEMX25519)
	require.NoError(t, err)

	pub, priv, err := k.GenerateKeyPair()
	require.NoError(t, err)

	ct, ss1, err := k.Encapsulate(pub)
	require.NoError(t, err)

	ss2, err := k.Decapsulate(priv, ct)
	require.NoError(t, err)
	require.Equal(t, ss1, ss2)
}

func TestMLKEM768RoundTrip(t *testing.T) {
	k, err := NewKEM(catalog.KEMMLKEM768)
	require.NoError(t, err)

	pub, priv, err := k.GenerateKeyPair()
	require.NoError(t, err)

	ct, ss1, err := k.Encapsulate(pub)
	require.NoError(t, err)

	ss2, err := k.Decapsulate(priv, ct)
	require.NoError(t, err)
	require.Equal(t, ss1, ss2)
}

func TestEd25519SignerRoundTrip(t *testing.T) {
	s, err := NewSigner(catalog.SigEd25519)
	require.NoError(t, err)

	pub, priv, err := s.GenerateKeyPair()
	require.NoError(t, err)

	msg := []byte("the message")
	sig, err := s.Sign(priv, msg)
	require.NoError(t, err)
	require.NoError(t, s.Verify(pub, msg, sig))

	require.Error(t, s.Verify(pub, []byte("tampered"), sig))
}

func TestMLDSA65SignerRoundTrip(t *testing.T) {
	s, err := NewSigner(catalog.SigMLDSA65)
	require.NoError(t, err)

	pub, priv, err := s.GenerateKeyPair()
	require.NoError(t, err)

	msg := []byte("the message")
	sig, err := s.Sign(priv, msg)
	require.NoError(t, err)
	require.NoError(t, s.Verify(pub, msg, sig))
}
