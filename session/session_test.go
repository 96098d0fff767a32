package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddParticipantInvariants(t *testing.T) {
	s := New("", Config{MaxParticipants: 2})
	require.NoError(t, s.Activate())

	p1 := NewParticipant("p1", RoleInitiator, "1.2.3.4", 1024)
	p2 := NewParticipant("p2", RoleResponder, "1.2.3.5", 1024)
	p3 := NewParticipant("p3", RoleResponder, "1.2.3.6", 1024)

	require.NoError(t, s.AddParticipant(p1))
	require.NoError(t, s.AddParticipant(p2))

	err := s.AddParticipant(p3)
	require.ErrorIs(t, err, ErrSessionCapacityExceeded)

	dup := NewParticipant("p1", RoleObserver, "9.9.9.9", 1024)
	err = s.AddParticipant(dup)
	require.ErrorIs(t, err, ErrDuplicateParticipant)

	for _, id := range []string{"p1", "p2"} {
		p, ok := s.GetParticipant(id)
		require.True(t, ok)
		inRole := s.GetParticipantsByRole(p.Role())
		found := false
		for _, rp := range inRole {
			if rp.ID() == id {
				found = true
			}
		}
		require.True(t, found, "role index must reflect id map for %s", id)
	}
}

func TestRemoveParticipantUpdatesBothIndexes(t *testing.T) {
	s := New("", DefaultConfig())
	require.NoError(t, s.Activate())
	p := NewParticipant("p1", RoleInitiator, "1.2.3.4", 1024)
	require.NoError(t, s.AddParticipant(p))

	require.NoError(t, s.RemoveParticipant("p1"))
	_, ok := s.GetParticipant("p1")
	require.False(t, ok)
	require.Empty(t, s.GetParticipantsByRole(RoleInitiator))
}

func TestSessionCloseIsIdempotentAndClosesParticipants(t *testing.T) {
	s := New("", DefaultConfig())
	require.NoError(t, s.Activate())
	p := NewParticipant("p1", RoleInitiator, "1.2.3.4", 1024)
	require.NoError(t, s.AddParticipant(p))

	require.NoError(t, s.Close())
	require.Equal(t, StateClosed, s.State())
	require.Equal(t, ParticipantClosed, p.State())

	require.NoError(t, s.Close()) // idempotent
}

// TestPerParticipantFIFO checks that n single-threaded send calls deliver
// in call order.
func TestPerParticipantFIFO(t *testing.T) {
	p := NewParticipant("p1", RoleInitiator, "1.2.3.4", 0)

	const n = 100
	for i := 0; i < n; i++ {
		p.EnqueueOutbound([]byte(fmt.Sprintf("msg-%d", i)))
	}

	var delivered []string
	writeFn := func(b []byte) (int, error) {
		delivered = append(delivered, string(b))
		return len(b), nil
	}
	drained, err := p.FlushOutbound(writeFn)
	require.NoError(t, err)
	require.True(t, drained)
	require.Len(t, delivered, n)
	for i := 0; i < n; i++ {
		require.Equal(t, fmt.Sprintf("msg-%d", i), delivered[i])
	}
}

func TestFlushOutboundStopsOnPartialWrite(t *testing.T) {
	p := NewParticipant("p1", RoleInitiator, "1.2.3.4", 0)
	p.EnqueueOutbound([]byte("hello"))

	writeFn := func(b []byte) (int, error) { return 2, nil } // accept only 2 bytes
	drained, err := p.FlushOutbound(writeFn)
	require.NoError(t, err)
	require.False(t, drained)
	require.Equal(t, 1, p.OutboundQueueLength())

	writeFn2 := func(b []byte) (int, error) { return len(b), nil }
	drained, err = p.FlushOutbound(writeFn2)
	require.NoError(t, err)
	require.True(t, drained)
}

func TestParticipantStateTransitions(t *testing.T) {
	p := NewParticipant("p1", RoleInitiator, "1.2.3.4", 0)
	require.Equal(t, ParticipantConnecting, p.State())
	require.NoError(t, p.SetState(ParticipantHandshaking))
	require.NoError(t, p.SetState(ParticipantEstablished))
	require.Error(t, p.SetState(ParticipantHandshaking)) // not reachable from ESTABLISHED

	p.Close()
	require.Equal(t, ParticipantClosed, p.State())
	require.NoError(t, p.SetState(ParticipantClosed)) // idempotent
}
