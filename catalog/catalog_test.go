package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCipherSizeDetail(t *testing.T) {
	d, ok := CipherAES256.SizeDetail()
	require.True(t, ok)
	require.Equal(t, 32, d.SecretKeySize)

	_, ok = CipherType("bogus").SizeDetail()
	require.False(t, ok)
}

func TestKEMSizeDetailHybridIsComponentSum(t *testing.T) {
	mlkem768, ok := KEMMLKEM768.SizeDetail()
	require.True(t, ok)
	x25519, ok := KEMX25519.SizeDetail()
	require.True(t, ok)
	hybrid, ok := KEMHybridX25519768.SizeDetail()
	require.True(t, ok)

	require.Equal(t, mlkem768.EncapsulationKeySize+x25519.EncapsulationKeySize, hybrid.EncapsulationKeySize)
	require.Equal(t, mlkem768.DecapsulationKeySize+x25519.DecapsulationKeySize, hybrid.DecapsulationKeySize)
	require.Equal(t, mlkem768.CiphertextSize+x25519.CiphertextSize, hybrid.CiphertextSize)
}

func TestPQCClassification(t *testing.T) {
	require.True(t, KEMMLKEM768.PQC())
	require.False(t, KEMX25519.PQC())
	require.True(t, KEMHybridX25519768.PQC())

	require.True(t, SigMLDSA65.PQC())
	require.True(t, SigSLHDSA256S.PQC())
	require.False(t, SigEd25519.PQC())
}

func TestCipherFamily(t *testing.T) {
	require.Equal(t, FamilyAES, CipherAES256GCM.Family())
	require.Equal(t, FamilyARIA, CipherARIA256.Family())
	require.Equal(t, FamilyChaCha20, CipherChaCha20Poly1305.Family())
}

func TestModeAEAD(t *testing.T) {
	require.True(t, ModeAEADGCM.AEAD())
	require.False(t, ModeCBC.AEAD())
}
