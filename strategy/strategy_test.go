package strategy

import (
	"testing"

	"github.com/entanglement-project/entanglement-core/arena"
	"github.com/entanglement-project/entanglement-core/catalog"
	"github.com/entanglement-project/entanglement-core/primitive"
	"github.com/stretchr/testify/require"
)

func TestCalculateNonceXorsLastEightBytes(t *testing.T) {
	baseIV := make([]byte, 12)
	nonce := CalculateNonce(baseIV, 1)
	require.Equal(t, byte(1), nonce[11])
	for i := 0; i < 11; i++ {
		require.Equal(t, byte(0), nonce[i])
	}
	// baseIV itself must be untouched (referential transparency).
	for _, b := range baseIV {
		require.Equal(t, byte(0), b)
	}
}

func TestAESGCMRoundTrip(t *testing.T) {
	keyBytes := make([]byte, 32)
	key, err := arena.NewFrom(keyBytes, false)
	require.NoError(t, err)
	defer key.Close()

	s := NewBlockCipherStrategy(catalog.CipherAES256GCM)
	s.SetMode(catalog.ModeAEADGCM)
	require.NoError(t, s.SetIV(12))

	plaintext := []byte("Hello, AES!")
	ct, err := s.Encrypt(key, plaintext, true)
	require.NoError(t, err)
	defer ct.Close()

	pt, err := s.Decrypt(key, ct, true)
	require.NoError(t, err)
	defer pt.Close()

	buf, err := pt.AsByteBuffer()
	require.NoError(t, err)
	require.Equal(t, plaintext, buf)
}

func TestAESCBCRoundTrip(t *testing.T) {
	key, err := arena.NewFrom(make([]byte, 32), false)
	require.NoError(t, err)
	defer key.Close()

	s := NewBlockCipherStrategy(catalog.CipherAES256)
	s.SetMode(catalog.ModeCBC)
	s.SetPadding(catalog.PaddingPKCS5)
	require.NoError(t, s.SetIV(make([]byte, 16)))

	plaintext := []byte("Hello, AES!") // 11 bytes
	ct, err := s.Encrypt(key, plaintext, true)
	require.NoError(t, err)
	defer ct.Close()

	require.Equal(t, 32, ct.Size()) // 16 (iv) + 16 (single padded block)

	pt, err := s.Decrypt(key, ct, true)
	require.NoError(t, err)
	defer pt.Close()
	buf, _ := pt.AsByteBuffer()
	require.Equal(t, plaintext, buf)
}

func TestChaCha20Poly1305TamperDetection(t *testing.T) {
	key, err := arena.NewFrom(make([]byte, 32), false)
	require.NoError(t, err)
	defer key.Close()

	s := NewStreamCipherStrategy(catalog.CipherChaCha20Poly1305)
	s.UpdateAAD([]byte("meta"))

	plaintext := []byte("payload")
	ctBytes, err := s.StreamEncrypt(key, plaintext)
	require.NoError(t, err)

	ctBytes[len(ctBytes)-1] ^= 0x01 // flip a bit of the tag

	_, err = s.StreamDecrypt(key, ctBytes)
	require.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestMLKEM768StrategyCorrectness(t *testing.T) {
	k, err := NewKEMStrategy(catalog.KEMMLKEM768)
	require.NoError(t, err)

	pub, priv, err := k.GenerateKeyPair()
	require.NoError(t, err)
	defer pub.Close()
	defer priv.Close()

	ssEnc, err := k.Encapsulate(pub)
	require.NoError(t, err)
	defer ssEnc.Close()

	ctSDC, ok := ssEnc.Get(0)
	require.True(t, ok)

	ssDec, err := k.Decapsulate(priv, ctSDC)
	require.NoError(t, err)
	defer ssDec.Close()

	encBuf, _ := ssEnc.AsByteBuffer()
	decBuf, _ := ssDec.AsByteBuffer()
	require.Equal(t, encBuf, decBuf)
	require.Len(t, decBuf, 32)
}

func TestKEMSizeValidation(t *testing.T) {
	k, err := NewKEMStrategy(catalog.KEMMLKEM768)
	require.NoError(t, err)

	badPub, err := arena.New(4)
	require.NoError(t, err)
	defer badPub.Close()

	_, err = k.Encapsulate(badPub)
	require.ErrorIs(t, err, ErrInvalidParameterSize)
}

func TestMLDSA65SignatureStrategyRoundTrip(t *testing.T) {
	s, err := NewSignatureStrategy(catalog.SigMLDSA65)
	require.NoError(t, err)

	signer, err := primitive.NewSigner(catalog.SigMLDSA65)
	require.NoError(t, err)
	pubBytes, privBytes, err := signer.GenerateKeyPair()
	require.NoError(t, err)

	priv, err := arena.NewFrom(privBytes, true)
	require.NoError(t, err)
	defer priv.Close()

	msg := []byte("the message")
	sig, err := s.Sign(priv, msg)
	require.NoError(t, err)
	defer sig.Close()

	msgSDC, err := arena.NewFrom(msg, false)
	require.NoError(t, err)
	pubSDC, err := arena.NewFrom(pubBytes, true)
	require.NoError(t, err)
	require.NoError(t, sig.AddContainerDataChild(msgSDC))
	require.NoError(t, sig.AddContainerDataChild(pubSDC))

	ok, err := s.Verify(sig)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSignRejectsPrivateKeyBoundToPublicKey(t *testing.T) {
	s, err := NewSignatureStrategy(catalog.SigEd25519)
	require.NoError(t, err)

	priv, err := arena.New(32)
	require.NoError(t, err)
	defer priv.Close()
	child, err := arena.New(32)
	require.NoError(t, err)
	require.NoError(t, priv.AddContainerDataChild(child))

	_, err = s.Sign(priv, []byte("msg"))
	require.ErrorIs(t, err, ErrPublicKeyBoundToPrivate)
}

func TestX25519ECDHStrategyAgreement(t *testing.T) {
	kem, err := primitive.NewKEM(catalog.KEMX25519)
	require.NoError(t, err)

	aliceP, aliceS, err := kem.GenerateKeyPair()
	require.NoError(t, err)
	bobP, bobS, err := kem.GenerateKeyPair()
	require.NoError(t, err)

	alicePriv, err := arena.NewFrom(aliceS, true)
	require.NoError(t, err)
	defer alicePriv.Close()
	bobPub, err := arena.NewFrom(bobP, true)
	require.NoError(t, err)
	defer bobPub.Close()

	bobPriv, err := arena.NewFrom(bobS, true)
	require.NoError(t, err)
	defer bobPriv.Close()
	alicePub, err := arena.NewFrom(aliceP, true)
	require.NoError(t, err)
	defer alicePub.Close()

	ecdh := NewX25519Strategy()
	ss1, err := ecdh.ComputeSharedSecret(alicePriv, bobPub)
	require.NoError(t, err)
	defer ss1.Close()
	ss2, err := ecdh.ComputeSharedSecret(bobPriv, alicePub)
	require.NoError(t, err)
	defer ss2.Close()

	b1, _ := ss1.AsByteBuffer()
	b2, _ := ss2.AsByteBuffer()
	require.Equal(t, b1, b2)
}
