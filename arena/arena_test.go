package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewArenaDefaultsToConfined(t *testing.T) {
	a, tk := NewArena()
	require.Equal(t, Confined, a.Mode())
	require.NotNil(t, tk)

	_, err := a.Allocate(16, tk)
	require.NoError(t, err)

	_, err = a.Allocate(16, &Ticket{})
	require.ErrorIs(t, err, ErrWrongThread)
}

func TestMarkServerContextForcesShared(t *testing.T) {
	defer func() { serverSentinel = 0 }()
	MarkServerContext()

	a, tk := NewArena()
	require.Equal(t, Shared, a.Mode())
	require.Nil(t, tk)

	_, err := a.Allocate(16, nil)
	require.NoError(t, err)
}

func TestWithModeOverridesHeuristic(t *testing.T) {
	defer func() { serverSentinel = 0 }()
	MarkServerContext()

	a, tk := NewArena(WithMode(Confined))
	require.Equal(t, Confined, a.Mode())
	require.NotNil(t, tk)
}

func TestArenaCloseInvalidatesSegments(t *testing.T) {
	a, tk := NewArena()
	seg, err := a.Allocate(8, tk)
	require.NoError(t, err)

	require.NoError(t, a.Close())
	require.False(t, a.Alive())

	_, err = seg.Bytes()
	require.ErrorIs(t, err, ErrAlreadyDisposed)

	_, err = a.Allocate(8, tk)
	require.ErrorIs(t, err, ErrAlreadyDisposed)
}

func TestSecureWipe(t *testing.T) {
	buf := []byte("sensitive")
	SecureWipe(buf)
	for _, b := range buf {
		require.Equal(t, byte(0), b)
	}
}
