package transport

import (
	"errors"
	"net"
	"time"

	"github.com/entanglement-project/entanglement-core/handshake"
	"github.com/entanglement-project/entanglement-core/session"
	"github.com/entanglement-project/entanglement-core/strategy"
)

// ClientConn is the initiator side of the wire protocol this package's
// Reactor serves: dial, run the two-round handshake, then send/receive
// encrypted data-phase records. This package's own end-to-end tests use it
// as their client.
type ClientConn struct {
	conn   net.Conn
	secCtx *session.ParticipantSecurityContext
	buf    []byte
}

// Dial opens a TCP connection to addr and runs the ClientHello/ServerHello/
// Finished exchange over it, deriving the session key and
// base IV on success. kem must be a freshly constructed strategy (e.g. via
// registry.Global().KEM(catalog.KEMHybridX25519768)); ClientConn does not
// retain ownership of it beyond the handshake.
func Dial(addr string, kem strategy.KEMStrategy, timeout time.Duration) (*ClientConn, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, err
	}
	c := &ClientConn{conn: conn, secCtx: session.NewParticipantSecurityContext()}
	if err := c.handshake(kem, timeout); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

func (c *ClientConn) handshake(kem strategy.KEMStrategy, timeout time.Duration) error {
	if timeout > 0 {
		c.conn.SetDeadline(time.Now().Add(timeout))
		defer c.conn.SetDeadline(time.Time{})
	}

	cs := handshake.NewClient(kem)
	defer cs.Close()

	hello, err := cs.Hello()
	if err != nil {
		return err
	}
	if _, err := c.conn.Write(hello); err != nil {
		return err
	}

	finished, _, err := c.readUntil(func(buf []byte) ([]byte, int, error) {
		return cs.ProcessServerHello(buf)
	})
	if err != nil {
		return err
	}
	if _, err := c.conn.Write(finished); err != nil {
		return err
	}

	shared, ok := cs.SharedSecret()
	if !ok {
		return handshake.ErrUnexpectedMessage
	}
	sharedBytes, err := shared.AsByteBuffer()
	if err != nil {
		return err
	}
	key, baseIV, err := handshake.DeriveSessionKeys(sharedBytes)
	if err != nil {
		return err
	}
	c.secCtx.SetSessionKey(key, "")
	c.secCtx.SetBaseIV(baseIV)
	return nil
}

// readUntil reads chunks into c.buf and calls parse against the accumulated
// bytes until it returns something other than handshake.ErrIncompleteFrame,
// applying the same mark/reset discipline as the server side: never consume
// bytes until a full frame is present.
func (c *ClientConn) readUntil(parse func([]byte) ([]byte, int, error)) ([]byte, int, error) {
	chunk := make([]byte, 4096)
	for {
		out, consumed, err := parse(c.buf)
		if err == nil {
			c.buf = c.buf[consumed:]
			return out, consumed, nil
		}
		if !errors.Is(err, handshake.ErrIncompleteFrame) {
			return nil, 0, err
		}
		n, rerr := c.conn.Read(chunk)
		if n > 0 {
			c.buf = append(c.buf, chunk[:n]...)
		}
		if rerr != nil {
			return nil, 0, rerr
		}
	}
}

// Send encrypts and frames plaintext and writes it to the connection.
func (c *ClientConn) Send(plaintext []byte) error {
	ciphertext, err := encryptRecord(c.secCtx, plaintext)
	if err != nil {
		return err
	}
	_, err = c.conn.Write(encodeDataFrame(ciphertext))
	return err
}

// Receive blocks until one full data-phase record has arrived, decrypts it,
// and returns the plaintext.
func (c *ClientConn) Receive() ([]byte, error) {
	chunk := make([]byte, 32*1024)
	for {
		ciphertext, consumed, err := decodeDataFrame(c.buf)
		if err == nil {
			c.buf = c.buf[consumed:]
			return decryptRecord(c.secCtx, ciphertext)
		}
		if !errors.Is(err, errIncompleteFrame) {
			return nil, err
		}
		n, rerr := c.conn.Read(chunk)
		if n > 0 {
			c.buf = append(c.buf, chunk[:n]...)
		}
		if rerr != nil {
			return nil, rerr
		}
	}
}

// Close closes the underlying connection and releases the security context.
func (c *ClientConn) Close() error {
	c.secCtx.Close()
	return c.conn.Close()
}
