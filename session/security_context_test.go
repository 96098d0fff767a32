package session

import (
	"testing"
	"time"

	"github.com/entanglement-project/entanglement-core/arena"
	"github.com/entanglement-project/entanglement-core/catalog"
	"github.com/stretchr/testify/require"
)

func TestParticipantSecurityContextSequenceCounters(t *testing.T) {
	c := NewParticipantSecurityContext()
	require.Equal(t, uint64(0), c.NextWriteSequence())
	require.Equal(t, uint64(1), c.NextWriteSequence())
	require.Equal(t, uint64(0), c.NextReadSequence())
}

func TestSessionSecurityContextInitializeIdempotent(t *testing.T) {
	c := NewSessionSecurityContext()
	master, err := arena.New(32)
	require.NoError(t, err)

	require.NoError(t, c.Initialize(master, nil, catalog.KEMMLKEM768, catalog.SigMLDSA65, false))
	require.True(t, c.Initialized())

	other, err := arena.New(32)
	require.NoError(t, err)
	require.NoError(t, c.Initialize(other, nil, catalog.KEMMLKEM512, catalog.SigEd25519, true))
	// Idempotent: the second call is a no-op, original master key retained.
	require.Same(t, master, c.MasterKey())
	other.Close()
}

func TestSessionSecurityContextRotateKey(t *testing.T) {
	c := NewSessionSecurityContext()
	master, err := arena.New(32)
	require.NoError(t, err)
	require.NoError(t, c.Initialize(master, nil, catalog.KEMMLKEM768, catalog.SigMLDSA65, false))

	newMaster, err := arena.New(32)
	require.NoError(t, err)
	require.NoError(t, c.RotateKey(newMaster, nil))
	require.Same(t, newMaster, c.MasterKey())
}

func TestSessionSecurityContextNeedsKeyRotation(t *testing.T) {
	c := NewSessionSecurityContext()
	master, err := arena.New(32)
	require.NoError(t, err)
	require.NoError(t, c.Initialize(master, nil, catalog.KEMMLKEM768, catalog.SigMLDSA65, false))

	require.False(t, c.NeedsKeyRotation()) // no interval configured

	c.SetRotationInterval(time.Nanosecond)
	time.Sleep(time.Millisecond)
	require.True(t, c.NeedsKeyRotation())
}

func TestSessionSecurityContextClearThenRotateFails(t *testing.T) {
	c := NewSessionSecurityContext()
	master, err := arena.New(32)
	require.NoError(t, err)
	require.NoError(t, c.Initialize(master, nil, catalog.KEMMLKEM768, catalog.SigMLDSA65, false))

	c.Clear()
	newMaster, err := arena.New(32)
	require.NoError(t, err)
	defer newMaster.Close()
	require.ErrorIs(t, c.RotateKey(newMaster, nil), ErrSecurityContextCleared)
}
