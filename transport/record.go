package transport

import (
	"encoding/binary"

	"github.com/entanglement-project/entanglement-core/arena"
	"github.com/entanglement-project/entanglement-core/catalog"
	"github.com/entanglement-project/entanglement-core/session"
	"github.com/entanglement-project/entanglement-core/strategy"
)

// maxDataFrameLen guards the data-phase frame length prefix the same way
// handshake.MaxHelloFieldLen guards handshake fields: an attacker-controlled
// length prefix must never be trusted to size an allocation before the
// frame is known to be complete.
const maxDataFrameLen = 1 << 20

// encodeDataFrame prefixes an AES-256-GCM ciphertext (tag included) with
// its 4-byte big-endian length. This is the data-phase wire format this
// core uses under its implicit-nonce design: the nonce itself is never on
// the wire, only the ciphertext.
func encodeDataFrame(ciphertext []byte) []byte {
	out := make([]byte, 4+len(ciphertext))
	binary.BigEndian.PutUint32(out[:4], uint32(len(ciphertext)))
	copy(out[4:], ciphertext)
	return out
}

// decodeDataFrame applies the same mark/reset discipline as
// handshake.readField: it reports errIncompleteFrame without consuming
// anything if buf does not yet hold a full frame.
func decodeDataFrame(buf []byte) (ciphertext []byte, consumed int, err error) {
	if len(buf) < 4 {
		return nil, 0, errIncompleteFrame
	}
	n := int(binary.BigEndian.Uint32(buf[:4]))
	if n < 0 || n > maxDataFrameLen {
		return nil, 0, ErrDataFrameOverflow
	}
	end := 4 + n
	if len(buf) < end {
		return nil, 0, errIncompleteFrame
	}
	return buf[4:end], end, nil
}

// encryptRecord implements the send-path crypto: derive this record's
// nonce from the participant's base IV and next write sequence
// (strategy.CalculateNonce), then AES-256-GCM seal under the session key.
// ivChaining is false: the nonce is never transmitted, only ever rederived.
func encryptRecord(secCtx *session.ParticipantSecurityContext, plaintext []byte) ([]byte, error) {
	nonce := strategy.CalculateNonce(secCtx.BaseIV(), secCtx.NextWriteSequence())

	cs := strategy.NewBlockCipherStrategy(catalog.CipherAES256GCM)
	cs.SetMode(catalog.ModeAEADGCM)
	if err := cs.SetIV(nonce); err != nil {
		return nil, err
	}
	ctSDC, err := cs.Encrypt(secCtx.SessionKey(), plaintext, false)
	if err != nil {
		return nil, err
	}
	defer ctSDC.Close()
	ct, err := ctSDC.AsByteBuffer()
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), ct...), nil
}

// decryptRecord is the receive-path mirror of encryptRecord, advancing the
// read-sequence counter to stay lockstep with the sender's write-sequence:
// the sequence-derived nonce only lines up if records are processed in the
// order they were sent.
func decryptRecord(secCtx *session.ParticipantSecurityContext, ciphertext []byte) ([]byte, error) {
	nonce := strategy.CalculateNonce(secCtx.BaseIV(), secCtx.NextReadSequence())

	cs := strategy.NewBlockCipherStrategy(catalog.CipherAES256GCM)
	cs.SetMode(catalog.ModeAEADGCM)
	if err := cs.SetIV(nonce); err != nil {
		return nil, err
	}
	ctSDC, err := arena.NewFrom(ciphertext, false)
	if err != nil {
		return nil, err
	}
	defer ctSDC.Close()
	ptSDC, err := cs.Decrypt(secCtx.SessionKey(), ctSDC, false)
	if err != nil {
		return nil, err
	}
	defer ptSDC.Close()
	pt, err := ptSDC.AsByteBuffer()
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), pt...), nil
}
