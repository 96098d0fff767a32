package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSDCZeroizationOnClose(t *testing.T) {
	s, err := NewFrom([]byte("top secret key material"), false)
	require.NoError(t, err)

	buf, err := s.AsByteBuffer()
	require.NoError(t, err)
	require.NotEmpty(t, buf)

	require.NoError(t, s.Close())

	for _, b := range buf {
		require.Equal(t, byte(0), b)
	}
	for _, b := range s.fromData {
		require.Equal(t, byte(0), b)
	}
}

func TestSDCZeroizationOfExportedData(t *testing.T) {
	s, err := NewFrom([]byte("export me"), false)
	require.NoError(t, err)

	exported, err := s.ExportData()
	require.NoError(t, err)
	require.Equal(t, "export me", string(exported))

	require.NoError(t, s.Close())
	require.Nil(t, s.segmentData)
}

func TestSDCClosedOperationsFail(t *testing.T) {
	s, err := New(16)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	require.NoError(t, s.Close()) // idempotent

	_, err = s.AsByteBuffer()
	require.ErrorIs(t, err, ErrAlreadyDisposed)

	_, err = s.AddContainerDataSize(4)
	require.ErrorIs(t, err, ErrAlreadyDisposed)
}

// TestSDCReentrantChildCloseNoDeadlock exercises the snapshot/release/close
// pattern: while the parent closes, another goroutine reads the parent's
// Bindings and closes the child itself, and neither side may deadlock.
func TestSDCReentrantChildCloseNoDeadlock(t *testing.T) {
	parent, err := New(8)
	require.NoError(t, err)

	child, err := parent.AddContainerDataSize(8)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Read the parent and close the child concurrently with the
		// parent's Close walking its (already-snapshotted) children.
		_ = parent.Bindings()
		_ = child.Close()
	}()

	require.NoError(t, parent.Close())
	<-done
}

func TestSDCBindingsClosedByParent(t *testing.T) {
	parent, err := New(4)
	require.NoError(t, err)

	a, err := parent.AddContainerDataSize(4)
	require.NoError(t, err)
	b, err := parent.AddContainerDataSize(4)
	require.NoError(t, err)

	require.NoError(t, parent.Close())
	_, errA := a.AsByteBuffer()
	_, errB := b.AsByteBuffer()
	require.ErrorIs(t, errA, ErrAlreadyDisposed)
	require.ErrorIs(t, errB, ErrAlreadyDisposed)
}

func TestGenerateSafeRandomBytes(t *testing.T) {
	b1, err := GenerateSafeRandomBytes(32)
	require.NoError(t, err)
	b2, err := GenerateSafeRandomBytes(32)
	require.NoError(t, err)
	require.Len(t, b1, 32)
	require.NotEqual(t, b1, b2)
}
