package registry

import (
	"testing"

	"github.com/entanglement-project/entanglement-core/catalog"
	"github.com/stretchr/testify/require"
)

func TestGlobalRegistryResolvesAllAlgorithms(t *testing.T) {
	reg := Global()

	_, err := reg.BlockCipher(catalog.CipherAES256)
	require.NoError(t, err)

	_, err = reg.StreamCipher(catalog.CipherChaCha20Poly1305)
	require.NoError(t, err)

	_, err = reg.Signature(catalog.SigMLDSA65)
	require.NoError(t, err)

	_, err = reg.KEM(catalog.KEMMLKEM768)
	require.NoError(t, err)

	_, err = reg.KEM(catalog.KEMHybridX25519768)
	require.NoError(t, err)

	_, err = reg.ECDH(catalog.KEMX25519)
	require.NoError(t, err)
}

func TestUnsupportedAlgorithmFails(t *testing.T) {
	reg := Global()
	_, err := reg.KEM(catalog.KEMType("bogus"))
	require.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestEachFactoryCallReturnsFreshInstance(t *testing.T) {
	reg := Global()
	a, err := reg.BlockCipher(catalog.CipherAES256)
	require.NoError(t, err)
	b, err := reg.BlockCipher(catalog.CipherAES256)
	require.NoError(t, err)
	require.NotSame(t, a, b)
}
