package handshake

import (
	"encoding/binary"
	"testing"

	"github.com/entanglement-project/entanglement-core/catalog"
	"github.com/entanglement-project/entanglement-core/strategy"
	"github.com/stretchr/testify/require"
)

func newKEMPair(t *testing.T) (strategy.KEMStrategy, strategy.KEMStrategy) {
	t.Helper()
	client, err := strategy.NewKEMStrategy(catalog.KEMMLKEM768)
	require.NoError(t, err)
	server, err := strategy.NewKEMStrategy(catalog.KEMMLKEM768)
	require.NoError(t, err)
	return client, server
}

// TestHandshakeHappyPath exercises the two-round exchange end to end:
// ClientHello → ServerHello → Finished, both sides deriving the same
// shared secret.
func TestHandshakeHappyPath(t *testing.T) {
	clientKEM, serverKEM := newKEMPair(t)
	client := NewClient(clientKEM)
	server := NewServer(serverKEM)
	defer client.Close()
	defer server.Close()

	helloFrame, err := client.Hello()
	require.NoError(t, err)

	serverHelloFrame, consumed, err := server.ProcessClientHello(helloFrame)
	require.NoError(t, err)
	require.Equal(t, len(helloFrame), consumed)

	finishedFrame, consumed, err := client.ProcessServerHello(serverHelloFrame)
	require.NoError(t, err)
	require.Equal(t, len(serverHelloFrame), consumed)

	consumed, err = server.ProcessFinished(finishedFrame)
	require.NoError(t, err)
	require.Equal(t, 1, consumed)

	clientSS, ok := client.SharedSecret()
	require.True(t, ok)
	serverSS, ok := server.SharedSecret()
	require.True(t, ok)

	clientBytes, err := clientSS.AsByteBuffer()
	require.NoError(t, err)
	serverBytes, err := serverSS.AsByteBuffer()
	require.NoError(t, err)
	require.Equal(t, serverBytes, clientBytes)

	clientSS.Close()
	serverSS.Close()
}

// TestClientHelloOverflowAborts checks that an advertised length exceeding
// the 16 KiB guard aborts immediately rather than attempting to buffer it.
func TestClientHelloOverflowAborts(t *testing.T) {
	frame := make([]byte, 5)
	frame[0] = TypeClientHello
	binary.BigEndian.PutUint32(frame[1:5], uint32(MaxHelloFieldLen+1))

	_, _, err := DecodeClientHello(frame)
	require.ErrorIs(t, err, ErrHandshakeOverflow)
}

func TestClientHelloNegativeLengthOverflow(t *testing.T) {
	frame := make([]byte, 5)
	frame[0] = TypeClientHello
	binary.BigEndian.PutUint32(frame[1:5], uint32(int32(-1)))

	_, _, err := DecodeClientHello(frame)
	require.ErrorIs(t, err, ErrHandshakeOverflow)
}

// TestPartialFrameBuffering checks that a frame split across reads is not
// consumed or misparsed until complete.
func TestPartialFrameBuffering(t *testing.T) {
	full := EncodeClientHello([]byte("ephemeral-public-key-bytes"))

	for split := 0; split < len(full); split++ {
		_, _, err := DecodeClientHello(full[:split])
		require.ErrorIs(t, err, ErrIncompleteFrame, "split at %d must report incomplete, not a decode error", split)
	}

	pub, consumed, err := DecodeClientHello(full)
	require.NoError(t, err)
	require.Equal(t, len(full), consumed)
	require.Equal(t, []byte("ephemeral-public-key-bytes"), pub)
}

func TestUnexpectedMessageRejected(t *testing.T) {
	_, serverKEM := newKEMPair(t)
	server := NewServer(serverKEM)
	defer server.Close()

	badClient := NewClient(serverKEM)
	badClient.step = StepExpectServerHello
	_, _, err := badClient.ProcessServerHello(EncodeFinished())
	require.Error(t, err)

	_, _, err = server.ProcessFinished(EncodeFinished())
	require.ErrorIs(t, err, ErrUnexpectedMessage)
}

func TestAlertRoundTrip(t *testing.T) {
	frame := EncodeAlert(AlertHandshakeFailure)
	code, consumed, err := DecodeAlert(frame)
	require.NoError(t, err)
	require.Equal(t, 2, consumed)
	require.Equal(t, AlertHandshakeFailure, code)
}
