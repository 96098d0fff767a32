package handshake

import "encoding/binary"

// readField applies a mark/reset discipline: it reads a 4-byte
// big-endian length followed by that many bytes, without consuming
// anything from buf until the full field is present. A negative or
// over-guard length is a hard abort (ErrHandshakeOverflow), never a
// "wait for more" signal, since no amount of buffering makes an illegal
// length valid.
func readField(buf []byte, off int) (field []byte, next int, err error) {
	if len(buf) < off+4 {
		return nil, 0, ErrIncompleteFrame
	}
	n := int(int32(binary.BigEndian.Uint32(buf[off : off+4])))
	if n < 0 || n > MaxHelloFieldLen {
		return nil, 0, ErrHandshakeOverflow
	}
	end := off + 4 + n
	if len(buf) < end {
		return nil, 0, ErrIncompleteFrame
	}
	return buf[off+4 : end], end, nil
}

func appendField(dst []byte, field []byte) []byte {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(field)))
	dst = append(dst, lenBuf[:]...)
	return append(dst, field...)
}

// PeekType returns the message type byte without consuming it, or
// ErrIncompleteFrame if buf is empty.
func PeekType(buf []byte) (byte, error) {
	if len(buf) < 1 {
		return 0, ErrIncompleteFrame
	}
	return buf[0], nil
}

// EncodeClientHello builds a ClientHello frame: type(1) || ephemeral KEM
// public key, length-prefixed.
func EncodeClientHello(clientPub []byte) []byte {
	out := make([]byte, 0, 1+4+len(clientPub))
	out = append(out, TypeClientHello)
	return appendField(out, clientPub)
}

// DecodeClientHello parses a ClientHello frame starting at buf[0]. Returns
// ErrIncompleteFrame if buf does not yet hold the full frame.
func DecodeClientHello(buf []byte) (clientPub []byte, consumed int, err error) {
	if len(buf) < 1 {
		return nil, 0, ErrIncompleteFrame
	}
	if buf[0] != TypeClientHello {
		return nil, 0, ErrUnknownMessageType
	}
	field, next, err := readField(buf, 1)
	if err != nil {
		return nil, 0, err
	}
	return field, next, nil
}

// EncodeServerHello builds a ServerHello frame: type(1) || server public
// key, length-prefixed || KEM ciphertext, length-prefixed.
func EncodeServerHello(serverPub, ciphertext []byte) []byte {
	out := make([]byte, 0, 1+4+len(serverPub)+4+len(ciphertext))
	out = append(out, TypeServerHello)
	out = appendField(out, serverPub)
	return appendField(out, ciphertext)
}

func DecodeServerHello(buf []byte) (serverPub, ciphertext []byte, consumed int, err error) {
	if len(buf) < 1 || buf[0] != TypeServerHello {
		return nil, nil, 0, ErrUnknownMessageType
	}
	pub, off, err := readField(buf, 1)
	if err != nil {
		return nil, nil, 0, err
	}
	ct, off2, err := readField(buf, off)
	if err != nil {
		return nil, nil, 0, err
	}
	return pub, ct, off2, nil
}

// EncodeCertificate builds a Certificate frame carrying a signer public
// key or certificate blob, length-prefixed.
func EncodeCertificate(cert []byte) []byte {
	out := make([]byte, 0, 1+4+len(cert))
	out = append(out, TypeCertificate)
	return appendField(out, cert)
}

func DecodeCertificate(buf []byte) (cert []byte, consumed int, err error) {
	if len(buf) < 1 || buf[0] != TypeCertificate {
		return nil, 0, ErrUnknownMessageType
	}
	field, next, err := readField(buf, 1)
	if err != nil {
		return nil, 0, err
	}
	return field, next, nil
}

// EncodeCertificateVerify builds a CertificateVerify frame carrying a
// signature over the transcript, length-prefixed.
func EncodeCertificateVerify(signature []byte) []byte {
	out := make([]byte, 0, 1+4+len(signature))
	out = append(out, TypeCertificateVerify)
	return appendField(out, signature)
}

func DecodeCertificateVerify(buf []byte) (signature []byte, consumed int, err error) {
	if len(buf) < 1 || buf[0] != TypeCertificateVerify {
		return nil, 0, ErrUnknownMessageType
	}
	field, next, err := readField(buf, 1)
	if err != nil {
		return nil, 0, err
	}
	return field, next, nil
}

// EncodeFinished builds a zero-payload Finished frame.
func EncodeFinished() []byte { return []byte{TypeFinished} }

func DecodeFinished(buf []byte) (consumed int, err error) {
	if len(buf) < 1 {
		return 0, ErrIncompleteFrame
	}
	if buf[0] != TypeFinished {
		return 0, ErrUnknownMessageType
	}
	return 1, nil
}

// EncodeKeyUpdate builds a zero-payload KeyUpdate frame, signaling the
// peer to derive and switch to the next ratcheted key.
func EncodeKeyUpdate() []byte { return []byte{TypeKeyUpdate} }

func DecodeKeyUpdate(buf []byte) (consumed int, err error) {
	if len(buf) < 1 {
		return 0, ErrIncompleteFrame
	}
	if buf[0] != TypeKeyUpdate {
		return 0, ErrUnknownMessageType
	}
	return 1, nil
}

// EncodeAlert builds a two-byte alert frame: type(1) || alert code(1).
func EncodeAlert(code AlertCode) []byte { return []byte{TypeAlert, byte(code)} }

func DecodeAlert(buf []byte) (code AlertCode, consumed int, err error) {
	if len(buf) < 2 {
		if len(buf) == 1 && buf[0] == TypeAlert {
			return 0, 0, ErrIncompleteFrame
		}
		return 0, 0, ErrIncompleteFrame
	}
	if buf[0] != TypeAlert {
		return 0, 0, ErrUnknownMessageType
	}
	return AlertCode(buf[1]), 2, nil
}
