// Package transport implements the single-reactor non-blocking secure
// transport server: accept/read/write demultiplexing, per-participant
// inbound buffer and outbound queue, handshake and data-phase dispatch,
// timeout sweeps, and the send/broadcast API. The single-reactor-thread
// design translates onto goroutines as one reader and one writer goroutine
// per connection, with every mutation of participant/session state funneled
// so the dispatch logic itself never runs concurrently for the same
// participant (the reader goroutine is the sole caller of dispatch for its
// own connection). Grounded on the teacher's
// pkg/agent/transport/websocket/server.go (per-connection goroutine,
// mutex-guarded connection map, read/write deadlines).
package transport

import "time"

// Config holds the reactor's timing and sizing policy.
type Config struct {
	// HandshakeTimeout bounds how long a participant may remain in
	// HANDSHAKING before the sweep closes it.
	HandshakeTimeout time.Duration
	// HandshakeSweepInterval is how often the handshake-timeout sweep runs.
	HandshakeSweepInterval time.Duration
	// SessionSweepInterval is how often expired/idle sessions are swept.
	SessionSweepInterval time.Duration
	// InboundBufferSize is the capacity of each participant's inbound
	// buffer.
	InboundBufferSize int
	// ReadChunkSize is how many bytes the reader goroutine requests from
	// the kernel per Read call.
	ReadChunkSize int
}

// DefaultConfig holds the reactor's default sweep cadences and buffer
// sizes.
func DefaultConfig() Config {
	return Config{
		HandshakeTimeout:       10 * time.Second,
		HandshakeSweepInterval: 1 * time.Second,
		SessionSweepInterval:   5 * time.Second,
		InboundBufferSize:      64 * 1024,
		ReadChunkSize:          32 * 1024,
	}
}
