package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManagerCreateGetRemove(t *testing.T) {
	m := NewManager(DefaultConfig(), 0)
	defer m.Close()

	s, err := m.CreateSession("s1")
	require.NoError(t, err)
	require.Equal(t, "s1", s.ID())

	_, err = m.CreateSession("s1")
	require.ErrorIs(t, err, ErrDuplicateSession)

	got, ok := m.GetSession("s1")
	require.True(t, ok)
	require.Same(t, s, got)

	m.RemoveSession("s1")
	_, ok = m.GetSession("s1")
	require.False(t, ok)
}

func TestManagerSweepEvictsExpiredSessions(t *testing.T) {
	m := NewManager(Config{MaxAge: time.Nanosecond}, 0)
	defer m.Close()

	_, err := m.CreateSession("stale")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	m.Sweep()
	require.Equal(t, 0, m.SessionCount())
}

func TestManagerCloseClosesAllSessions(t *testing.T) {
	m := NewManager(DefaultConfig(), 0)
	s, err := m.CreateSession("s1")
	require.NoError(t, err)
	require.NoError(t, s.Activate())

	require.NoError(t, m.Close())
	require.Equal(t, StateClosed, s.State())
}
