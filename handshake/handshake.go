package handshake

import (
	"github.com/entanglement-project/entanglement-core/arena"
	"github.com/entanglement-project/entanglement-core/strategy"
)

// ClientState drives the initiator side of the two-round handshake: send
// ClientHello, receive ServerHello, derive the shared secret, send
// Finished. Grounded on the teacher's core/handshake.Handshaker state
// machine, adapted from its JSON request/response pair to the spec's
// binary ClientHello/ServerHello/Finished exchange.
type ClientState struct {
	kem strategy.KEMStrategy

	clientPub  *arena.SDC
	clientPriv *arena.SDC
	shared     *arena.SDC
	step       Step
}

func NewClient(kem strategy.KEMStrategy) *ClientState {
	return &ClientState{kem: kem, step: StepExpectClientHello}
}

// Hello generates an ephemeral KEM key pair and returns the ClientHello
// frame to send. It owns clientPub/clientPriv until Close is called.
func (c *ClientState) Hello() ([]byte, error) {
	if c.step != StepExpectClientHello {
		return nil, ErrUnexpectedMessage
	}
	pub, priv, err := c.kem.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	c.clientPub, c.clientPriv = pub, priv

	pubBytes, err := pub.AsByteBuffer()
	if err != nil {
		return nil, err
	}
	c.step = StepExpectServerHello
	return EncodeClientHello(pubBytes), nil
}

// ProcessServerHello decapsulates the ciphertext carried in frame against
// the client's own private key, producing the shared secret, and returns
// the Finished frame to send in response.
func (c *ClientState) ProcessServerHello(frame []byte) (finished []byte, consumed int, err error) {
	if c.step != StepExpectServerHello {
		return nil, 0, ErrUnexpectedMessage
	}
	_, ciphertext, n, err := DecodeServerHello(frame)
	if err != nil {
		return nil, 0, err
	}

	ctSDC, err := arena.NewFrom(ciphertext, false)
	if err != nil {
		return nil, 0, err
	}
	defer ctSDC.Close()

	shared, err := c.kem.Decapsulate(c.clientPriv, ctSDC)
	if err != nil {
		return nil, 0, err
	}
	c.shared = shared
	c.step = StepDone
	return EncodeFinished(), n, nil
}

// SharedSecret returns the derived shared secret once the handshake has
// reached StepDone. The caller must not Close it while still in use.
func (c *ClientState) SharedSecret() (*arena.SDC, bool) {
	return c.shared, c.step == StepDone
}

func (c *ClientState) Step() Step { return c.step }

// Close releases the client's ephemeral key material. Safe to call more
// than once.
func (c *ClientState) Close() {
	if c.clientPub != nil {
		c.clientPub.Close()
		c.clientPub = nil
	}
	if c.clientPriv != nil {
		c.clientPriv.Close()
		c.clientPriv = nil
	}
}

// ServerState drives the responder side: receive ClientHello, encapsulate
// against the client's public key, send ServerHello, receive Finished.
type ServerState struct {
	kem strategy.KEMStrategy

	serverPub  *arena.SDC
	serverPriv *arena.SDC
	shared     *arena.SDC
	step       Step
}

func NewServer(kem strategy.KEMStrategy) *ServerState {
	return &ServerState{kem: kem, step: StepExpectClientHello}
}

// ProcessClientHello parses the ClientHello frame, encapsulates against
// the advertised public key, and returns the ServerHello frame to send.
//
// The server_public_key field of ServerHello carries a fresh ephemeral
// key pair of the server's own; it is not consumed in deriving the
// shared secret here; it is retained so a future extension (certificate
// binding, mutual KEM confirmation) has a slot to use without a wire
// format change. Key agreement itself completes with the ciphertext
// field alone, matching a standard KEM-based exchange: client publishes
// a public key, server returns (ciphertext, implicit shared secret),
// client decapsulates.
func (s *ServerState) ProcessClientHello(frame []byte) (helloResp []byte, consumed int, err error) {
	if s.step != StepExpectClientHello {
		return nil, 0, ErrUnexpectedMessage
	}
	clientPubBytes, n, err := DecodeClientHello(frame)
	if err != nil {
		return nil, 0, err
	}

	clientPub, err := arena.NewFrom(clientPubBytes, false)
	if err != nil {
		return nil, 0, err
	}
	defer clientPub.Close()

	shared, err := s.kem.Encapsulate(clientPub)
	if err != nil {
		return nil, 0, err
	}
	ctSDC, _ := shared.Get(0)
	ctBytes, err := ctSDC.AsByteBuffer()
	if err != nil {
		shared.Close()
		return nil, 0, err
	}

	serverPub, serverPriv, err := s.kem.GenerateKeyPair()
	if err != nil {
		shared.Close()
		return nil, 0, err
	}
	serverPubBytes, err := serverPub.AsByteBuffer()
	if err != nil {
		shared.Close()
		serverPub.Close()
		serverPriv.Close()
		return nil, 0, err
	}

	s.shared = shared
	s.serverPub, s.serverPriv = serverPub, serverPriv
	s.step = StepExpectFinished
	return EncodeServerHello(serverPubBytes, ctBytes), n, nil
}

// ProcessFinished validates the incoming Finished frame and completes the
// handshake.
func (s *ServerState) ProcessFinished(frame []byte) (consumed int, err error) {
	if s.step != StepExpectFinished {
		return 0, ErrUnexpectedMessage
	}
	n, err := DecodeFinished(frame)
	if err != nil {
		return 0, err
	}
	s.step = StepDone
	return n, nil
}

func (s *ServerState) SharedSecret() (*arena.SDC, bool) {
	return s.shared, s.step == StepDone
}

func (s *ServerState) Step() Step { return s.step }

// Close releases the server's ephemeral key material. Safe to call more
// than once.
func (s *ServerState) Close() {
	if s.serverPub != nil {
		s.serverPub.Close()
		s.serverPub = nil
	}
	if s.serverPriv != nil {
		s.serverPriv.Close()
		s.serverPriv = nil
	}
}
