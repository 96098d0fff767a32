package transport_test

import (
	"encoding/binary"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/entanglement-project/entanglement-core/catalog"
	"github.com/entanglement-project/entanglement-core/handshake"
	"github.com/entanglement-project/entanglement-core/registry"
	"github.com/entanglement-project/entanglement-core/session"
	"github.com/entanglement-project/entanglement-core/transport"
)

// recordingEvents collects every OnDataReceived payload in arrival order,
// guarded by a mutex since the reactor may dispatch from several
// connections' reader goroutines concurrently.
type recordingEvents struct {
	transport.NoopEvents
	mu       sync.Mutex
	received [][]byte
	errs     []error
}

func (e *recordingEvents) OnDataReceived(_ *session.Participant, plaintext []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.received = append(e.received, append([]byte(nil), plaintext...))
}

func (e *recordingEvents) OnServerError(_ *session.Participant, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errs = append(e.errs, err)
}

func (e *recordingEvents) snapshot() ([][]byte, []error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([][]byte(nil), e.received...), append([]error(nil), e.errs...)
}

func newTestReactor(t *testing.T, events *recordingEvents) (*transport.Reactor, string) {
	t.Helper()
	mgr := session.NewManager(session.DefaultConfig(), 0)
	r := transport.New(mgr, registry.Global(), catalog.KEMHybridX25519768, events, transport.DefaultConfig())
	require.NoError(t, r.Serve("127.0.0.1:0"))
	t.Cleanup(func() { r.Stop() })
	return r, r.Addr().String()
}

// TestReactorHandshakeAndSequentialSends runs a full ML-KEM-hybrid
// handshake followed by 100 sequential sends, checked for FIFO order and for
// no server-side errors.
func TestReactorHandshakeAndSequentialSends(t *testing.T) {
	events := &recordingEvents{}
	_, addr := newTestReactor(t, events)

	kem, err := registry.Global().KEM(catalog.KEMHybridX25519768)
	require.NoError(t, err)

	client, err := transport.Dial(addr, kem, 5*time.Second)
	require.NoError(t, err)
	defer client.Close()

	const n = 100
	for i := 0; i < n; i++ {
		msg := []byte{byte(i), byte(i >> 8)}
		require.NoError(t, client.Send(msg))
	}

	require.Eventually(t, func() bool {
		received, _ := events.snapshot()
		return len(received) == n
	}, 5*time.Second, 10*time.Millisecond)

	received, errs := events.snapshot()
	require.Empty(t, errs)
	for i := 0; i < n; i++ {
		require.Equal(t, byte(i), received[i][0])
		require.Equal(t, byte(i>>8), received[i][1])
	}
}

// TestReactorHandshakeOverflow checks that a ClientHello advertising a
// length beyond handshake.MaxHelloFieldLen aborts the connection instead of
// buffering indefinitely.
func TestReactorHandshakeOverflow(t *testing.T) {
	events := &recordingEvents{}
	_, addr := newTestReactor(t, events)

	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	require.NoError(t, err)
	defer conn.Close()

	frame := make([]byte, 1+4)
	frame[0] = handshake.TypeClientHello
	binary.BigEndian.PutUint32(frame[1:], uint32(handshake.MaxHelloFieldLen+1))
	_, err = conn.Write(frame)
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	buf := make([]byte, 16)
	_, readErr := conn.Read(buf)
	require.Error(t, readErr) // connection closed by the reactor

	require.Eventually(t, func() bool {
		_, errs := events.snapshot()
		return len(errs) > 0
	}, 5*time.Second, 10*time.Millisecond)
}

// TestReactorBroadcast checks that Broadcast reaches every ESTABLISHED
// participant of a session with an independently sequenced record each.
func TestReactorBroadcast(t *testing.T) {
	events := &recordingEvents{}
	r, addr := newTestReactor(t, events)

	kem1, err := registry.Global().KEM(catalog.KEMHybridX25519768)
	require.NoError(t, err)
	kem2, err := registry.Global().KEM(catalog.KEMHybridX25519768)
	require.NoError(t, err)

	c1, err := transport.Dial(addr, kem1, 5*time.Second)
	require.NoError(t, err)
	defer c1.Close()
	c2, err := transport.Dial(addr, kem2, 5*time.Second)
	require.NoError(t, err)
	defer c2.Close()

	time.Sleep(50 * time.Millisecond)

	sessIDs := r.Sessions().ListSessionIDs()
	require.Len(t, sessIDs, 1)
	sess, ok := r.Sessions().GetSession(sessIDs[0])
	require.True(t, ok)
	require.Equal(t, 2, sess.ParticipantCount())

	errs := r.Broadcast(sess, []byte("hello"))
	require.Empty(t, errs)

	msg1, err := c1.Receive()
	require.NoError(t, err)
	require.Equal(t, "hello", string(msg1))

	msg2, err := c2.Receive()
	require.NoError(t, err)
	require.Equal(t, "hello", string(msg2))
}
