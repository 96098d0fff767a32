package hybrid

import (
	"testing"

	"github.com/entanglement-project/entanglement-core/arena"
	"github.com/entanglement-project/entanglement-core/catalog"
	"github.com/entanglement-project/entanglement-core/strategy"
	"github.com/stretchr/testify/require"
)

func newTestStrategy(t *testing.T) *Strategy {
	x, err := strategy.NewKEMStrategy(catalog.KEMX25519)
	require.NoError(t, err)
	m, err := strategy.NewKEMStrategy(catalog.KEMMLKEM768)
	require.NoError(t, err)
	return New(x, m)
}

// TestHybridConsistency checks the hybrid key sizes, that the encapsulated
// shared secret is 64 bytes and the ciphertext 1120 bytes, and that
// decapsulation reproduces the encapsulated shared secret.
func TestHybridConsistency(t *testing.T) {
	h := newTestStrategy(t)

	pub, priv, err := h.GenerateKeyPair()
	require.NoError(t, err)
	defer pub.Close()
	defer priv.Close()

	require.Equal(t, hybridEkSize, pub.Size())
	require.Equal(t, hybridDkSize, priv.Size())

	encResult, err := h.Encapsulate(pub)
	require.NoError(t, err)
	defer encResult.Close()

	ssBuf, err := encResult.AsByteBuffer()
	require.NoError(t, err)
	require.Len(t, ssBuf, hybridSsSize)

	ctSDC, ok := encResult.Get(0)
	require.True(t, ok)
	require.Equal(t, hybridCtSize, ctSDC.Size())

	decResult, err := h.Decapsulate(priv, ctSDC)
	require.NoError(t, err)
	defer decResult.Close()

	decBuf, err := decResult.AsByteBuffer()
	require.NoError(t, err)
	require.Equal(t, ssBuf, decBuf)
}

func TestHybridEncapsulateRejectsWrongPublicKeySize(t *testing.T) {
	h := newTestStrategy(t)

	shortPub, err := arena.New(4)
	require.NoError(t, err)
	defer shortPub.Close()

	_, err = h.Encapsulate(shortPub)
	require.ErrorIs(t, err, strategy.ErrInvalidParameterSize)
}
